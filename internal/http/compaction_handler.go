package http

import (
	"encoding/json"
	"net/http"

	"outlog/internal/compactors"
	"outlog/internal/models"
)

type AppHttpHandler interface {
	Handle(w http.ResponseWriter, r *http.Request) error
}

// CompactionResponse is the body of a successful POST /compactions.
type CompactionResponse struct {
	RequestID  string             `json:"requestId"`
	SourceName string             `json:"sourceName"`
	Lines      []string           `json:"lines"`
	Loops      []models.LoopCount `json:"loops"`
	LinesRead  int                `json:"linesRead"`
	LinesKept  int                `json:"linesKept"`
}

type compactionHandler struct {
	compactionService compactors.CompactionService
	maxBodyBytes      int64
}

func NewCompactionHandler(compactionService compactors.CompactionService, maxBodyBytes int64) AppHttpHandler {
	return &compactionHandler{
		compactionService: compactionService,
		maxBodyBytes:      maxBodyBytes,
	}
}

// Handle processes POST /compactions: the body is a raw outlog, the response its compacted form.
func (h *compactionHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	body := r.Body
	if h.maxBodyBytes > 0 {
		body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)
	}

	result, err := h.compactionService.CompactStream(r.Context(), sourceName(r), body)
	if err != nil {
		return err
	}

	recordCompaction(w, result)

	lines := result.Lines
	if lines == nil {
		lines = []string{}
	}
	return writeJSON(w, http.StatusOK, CompactionResponse{
		RequestID:  requestID(r),
		SourceName: result.SourceName,
		Lines:      lines,
		Loops:      result.Loops.All(),
		LinesRead:  result.LinesRead,
		LinesKept:  result.LinesKept,
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(body)
}
