package models

import (
	"errors"
	"fmt"
	"strings"
)

// Pattern is a loop pattern: a literal run of frame lines that, repeated back to back,
// collapses into one summary line.
//
// A fixed pattern matches Lines. A variable-suffix pattern matches PrefixLines followed
// by one or more repetitions of SuffixBlock; each prefix+suffixes run counts as one loop.
type Pattern struct {
	Name             string   `json:"name" mapstructure:"name"`
	Lines            []string `json:"lines,omitempty" mapstructure:"lines"`
	PrefixLines      []string `json:"prefixLines,omitempty" mapstructure:"prefix_lines"`
	SuffixBlock      []string `json:"suffixBlock,omitempty" mapstructure:"suffix_block"`
	IsVariableSuffix bool     `json:"isVariableSuffix" mapstructure:"is_variable_suffix"`
}

var ErrInvalidPattern = errors.New("invalid pattern")

// SortLength is the key patterns are ordered by, longest first.
func (p Pattern) SortLength() int {
	if p.IsVariableSuffix {
		return len(p.PrefixLines)
	}
	return len(p.Lines)
}

// SummaryLine is the line emitted in place of count collapsed loops.
func (p Pattern) SummaryLine(count int) string {
	return fmt.Sprintf("# %s repeated %d times", p.Name, count)
}

// Validate checks the pattern shape and that every line is a trimmed frame line starting
// with linePrefix, the marker followed by the project root. Other lines never survive
// filtering, so a pattern holding one could never match.
func (p Pattern) Validate(marker, linePrefix string) error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidPattern)
	}

	var groups [][]string
	if p.IsVariableSuffix {
		if len(p.PrefixLines) == 0 || len(p.SuffixBlock) == 0 {
			return fmt.Errorf("%w: %q needs prefix_lines and suffix_block", ErrInvalidPattern, p.Name)
		}
		groups = [][]string{p.PrefixLines, p.SuffixBlock}
	} else {
		if len(p.Lines) == 0 {
			return fmt.Errorf("%w: %q needs lines", ErrInvalidPattern, p.Name)
		}
		groups = [][]string{p.Lines}
	}

	for _, group := range groups {
		for _, line := range group {
			if err := ValidatePatternLine(line, marker, linePrefix); err != nil {
				return fmt.Errorf("%w: %q: %w", ErrInvalidPattern, p.Name, err)
			}
		}
	}
	return nil
}

// ValidatePatternLine checks a single pattern line the way filtered log lines look.
func ValidatePatternLine(line, marker, linePrefix string) error {
	if line != strings.TrimSpace(line) {
		return fmt.Errorf("line %q has surrounding whitespace", line)
	}
	if !strings.HasPrefix(line, linePrefix) {
		return fmt.Errorf("line %q does not start with %q", line, linePrefix)
	}
	_, err := ParseTraceFrame(line, marker)
	return err
}
