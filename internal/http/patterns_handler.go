package http

import (
	"net/http"

	"outlog/internal/compactors"
	"outlog/internal/models"
)

// PatternResponse describes one catalogue entry with its frames parsed.
type PatternResponse struct {
	models.Pattern
	Frames       []models.TraceFrame `json:"frames,omitempty"`
	SuffixFrames []models.TraceFrame `json:"suffixFrames,omitempty"`
}

// PatternsResponse is the body of GET /patterns, in scan order.
type PatternsResponse struct {
	Patterns []PatternResponse `json:"patterns"`
}

type patternsHandler struct {
	compactionService compactors.CompactionService
	marker            string
}

func NewPatternsHandler(compactionService compactors.CompactionService, marker string) AppHttpHandler {
	return &patternsHandler{
		compactionService: compactionService,
		marker:            marker,
	}
}

func (h *patternsHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	patterns := h.compactionService.Patterns()
	resp := PatternsResponse{Patterns: make([]PatternResponse, 0, len(patterns))}
	for _, p := range patterns {
		item := PatternResponse{Pattern: p}
		if p.IsVariableSuffix {
			item.Frames = h.parseFrames(p.PrefixLines)
			item.SuffixFrames = h.parseFrames(p.SuffixBlock)
		} else {
			item.Frames = h.parseFrames(p.Lines)
		}
		resp.Patterns = append(resp.Patterns, item)
	}
	return writeJSON(w, http.StatusOK, resp)
}

// parseFrames skips lines that do not parse; catalogue patterns are validated at startup.
func (h *patternsHandler) parseFrames(lines []string) []models.TraceFrame {
	frames := make([]models.TraceFrame, 0, len(lines))
	for _, line := range lines {
		frame, err := models.ParseTraceFrame(line, h.marker)
		if err != nil {
			continue
		}
		frames = append(frames, frame)
	}
	return frames
}
