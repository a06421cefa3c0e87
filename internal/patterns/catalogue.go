package patterns

import (
	"fmt"
	"sort"

	"outlog/internal/models"
)

// DefaultProjectRoot is where the ReKep sources lived when the default catalogue was captured.
const DefaultProjectRoot = "/home/yifan/Robotics/ReKep/"

// Catalogue is an immutable, ordered list of loop patterns. Longer patterns come first so
// the greedy scan prefers the most specific match; ties keep declaration order.
type Catalogue struct {
	marker   string
	patterns []models.Pattern
}

// New validates patterns against the frame marker and project root and returns them as a
// sorted catalogue.
func New(marker, projectRoot string, patterns []models.Pattern) (*Catalogue, error) {
	if len(patterns) == 0 {
		return nil, fmt.Errorf("%w: catalogue is empty", models.ErrInvalidPattern)
	}

	seen := make(map[string]struct{}, len(patterns))
	sorted := make([]models.Pattern, 0, len(patterns))
	for _, p := range patterns {
		if err := p.Validate(marker, marker+projectRoot); err != nil {
			return nil, err
		}
		if _, dup := seen[p.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate name %q", models.ErrInvalidPattern, p.Name)
		}
		seen[p.Name] = struct{}{}
		sorted = append(sorted, clonePattern(p))
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].SortLength() > sorted[j].SortLength()
	})

	return &Catalogue{marker: marker, patterns: sorted}, nil
}

// Patterns returns a copy of the sorted patterns.
func (c *Catalogue) Patterns() []models.Pattern {
	out := make([]models.Pattern, len(c.patterns))
	for i, p := range c.patterns {
		out[i] = clonePattern(p)
	}
	return out
}

// Names returns pattern names in catalogue order.
func (c *Catalogue) Names() []string {
	names := make([]string, len(c.patterns))
	for i, p := range c.patterns {
		names[i] = p.Name
	}
	return names
}

func (c *Catalogue) Marker() string {
	return c.marker
}

func (c *Catalogue) Len() int {
	return len(c.patterns)
}

// At returns the i-th pattern without copying; callers must not mutate it.
func (c *Catalogue) At(i int) *models.Pattern {
	return &c.patterns[i]
}

func clonePattern(p models.Pattern) models.Pattern {
	p.Lines = append([]string(nil), p.Lines...)
	p.PrefixLines = append([]string(nil), p.PrefixLines...)
	p.SuffixBlock = append([]string(nil), p.SuffixBlock...)
	return p
}
