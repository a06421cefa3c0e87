package reports

import (
	"encoding/json"
	"fmt"
	"io"

	"outlog/internal/models"

	"github.com/charmbracelet/lipgloss"
)

const (
	FormatText = "text"
	FormatJSON = "json"
)

// Renderer writes compaction reports to an output stream.
type Renderer interface {
	// Render writes a whole run: every file, then the totals.
	Render(report *models.RunReport) error
	// RenderFile writes the loops collapsed in one file.
	RenderFile(file *models.FileReport) error
	// RenderPatterns writes a pattern catalogue in scan order.
	RenderPatterns(patterns []models.Pattern) error
}

// NewRenderer returns the renderer for format, writing to w.
func NewRenderer(format string, w io.Writer) (Renderer, error) {
	switch format {
	case FormatText, "":
		return NewTextRenderer(w), nil
	case FormatJSON:
		return NewJSONRenderer(w), nil
	default:
		return nil, fmt.Errorf("unknown report format %q (want %s or %s)", format, FormatText, FormatJSON)
	}
}

// TextRenderer prints the console summary. Styling is dropped when w is not a terminal.
type TextRenderer struct {
	w io.Writer

	styleFile    lipgloss.Style
	stylePattern lipgloss.Style
	styleCount   lipgloss.Style
	styleZero    lipgloss.Style
	styleHeader  lipgloss.Style
}

func NewTextRenderer(w io.Writer) *TextRenderer {
	r := lipgloss.NewRenderer(w)
	return &TextRenderer{
		w:            w,
		styleFile:    r.NewStyle().Foreground(lipgloss.Color("39")).Bold(true), // cyan
		stylePattern: r.NewStyle().Foreground(lipgloss.Color("245")),           // gray
		styleCount:   r.NewStyle().Foreground(lipgloss.Color("220")),           // yellow
		styleZero:    r.NewStyle().Faint(true),
		styleHeader:  r.NewStyle().Bold(true),
	}
}

func (r *TextRenderer) Render(report *models.RunReport) error {
	for _, file := range report.Files {
		if err := r.RenderFile(file); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(r.w, "\n%s\n", r.styleHeader.Render("Total loops across all files:")); err != nil {
		return err
	}
	for _, lc := range report.Totals.All() {
		if err := r.renderCount(lc); err != nil {
			return err
		}
	}
	return nil
}

func (r *TextRenderer) RenderFile(file *models.FileReport) error {
	if _, err := fmt.Fprintf(r.w, "%s\n", r.styleFile.Render(file.SourceName+":")); err != nil {
		return err
	}
	for _, lc := range file.Loops {
		if lc.Count == 0 {
			continue
		}
		if err := r.renderCount(lc); err != nil {
			return err
		}
	}
	return nil
}

// RenderPatterns lists each pattern with its lines indented; suffix block lines are marked with "+".
func (r *TextRenderer) RenderPatterns(patterns []models.Pattern) error {
	for _, p := range patterns {
		name := p.Name
		if p.IsVariableSuffix {
			name += " (prefix + repeated suffix)"
		}
		if _, err := fmt.Fprintf(r.w, "%s\n", r.styleHeader.Render(name)); err != nil {
			return err
		}

		if !p.IsVariableSuffix {
			if err := r.renderLines("  ", p.Lines); err != nil {
				return err
			}
			continue
		}
		if err := r.renderLines("  ", p.PrefixLines); err != nil {
			return err
		}
		if err := r.renderLines(" "+r.styleCount.Render("+"), p.SuffixBlock); err != nil {
			return err
		}
	}
	return nil
}

func (r *TextRenderer) renderLines(lead string, lines []string) error {
	for _, line := range lines {
		if _, err := fmt.Fprintf(r.w, " %s %s\n", lead, r.stylePattern.Render(line)); err != nil {
			return err
		}
	}
	return nil
}

func (r *TextRenderer) renderCount(lc models.LoopCount) error {
	count := r.styleCount.Render(fmt.Sprintf("%d", lc.Count))
	if lc.Count == 0 {
		count = r.styleZero.Render("0")
	}
	_, err := fmt.Fprintf(r.w, "  %s: %s loop(s)\n", r.stylePattern.Render(lc.Pattern), count)
	return err
}

// JSONRenderer prints each report as a single JSON object per line.
type JSONRenderer struct {
	enc *json.Encoder
}

func NewJSONRenderer(w io.Writer) *JSONRenderer {
	return &JSONRenderer{enc: json.NewEncoder(w)}
}

func (r *JSONRenderer) Render(report *models.RunReport) error {
	return r.enc.Encode(report)
}

func (r *JSONRenderer) RenderFile(file *models.FileReport) error {
	return r.enc.Encode(file)
}

func (r *JSONRenderer) RenderPatterns(patterns []models.Pattern) error {
	return r.enc.Encode(patterns)
}
