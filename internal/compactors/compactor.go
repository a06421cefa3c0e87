package compactors

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"outlog/internal/models"
	"outlog/internal/patterns"
)

const (
	defaultMaxLineBytes = 16 * 1024 * 1024
	ctxCheckInterval    = 4096
)

// Compactor collapses consecutive repetitions of catalogue patterns in frame logs.
//
// Example, with "Loop pattern 1" = [subgoal objective, ik solve]:
//
//	>>>>>>/p/main.py(10)run()                       >>>>>>/p/main.py(10)run()
//	>>>>>>/p/subgoal_solver.py(112)objective()      # Loop pattern 1 repeated 3 times
//	>>>>>>/p/ik_solver.py(71)solve()           =>   >>>>>>/p/main.py(42)done()
//	... (pair repeated 3 times) ...
//	>>>>>>/p/main.py(42)done()
//
//go:generate mockgen -source=compactor.go -destination=./mocks/compactor_mock.go -package=mocks
type Compactor interface {
	// Compact runs the greedy scan over already filtered lines.
	Compact(lines []string) ([]string, *models.LoopCounts)
	// CompactReader filters the frame lines of r and compacts them.
	CompactReader(ctx context.Context, sourceName string, r io.Reader) (*models.CompactionResult, error)
	Catalogue() *patterns.Catalogue
}

type compactor struct {
	catalogue    *patterns.Catalogue
	linePrefix   string
	maxLineBytes int
}

// NewCompactor returns a Compactor that keeps lines starting with linePrefix and matches them
// against catalogue. maxLineBytes <= 0 selects the default line limit.
func NewCompactor(catalogue *patterns.Catalogue, linePrefix string, maxLineBytes int) Compactor {
	if maxLineBytes <= 0 {
		maxLineBytes = defaultMaxLineBytes
	}
	return &compactor{
		catalogue:    catalogue,
		linePrefix:   linePrefix,
		maxLineBytes: maxLineBytes,
	}
}

func (c *compactor) Catalogue() *patterns.Catalogue {
	return c.catalogue
}

func (c *compactor) Compact(lines []string) ([]string, *models.LoopCounts) {
	out := make([]string, 0, len(lines))
	loops := models.NewLoopCounts(c.catalogue.Names()...)

	i := 0
	for i < len(lines) {
		matched := false
		for k := 0; k < c.catalogue.Len(); k++ {
			pattern := c.catalogue.At(k)

			if pattern.IsVariableSuffix {
				end, repeats := matchVariableSuffix(lines, i, pattern)
				if repeats == 0 {
					continue
				}
				out = append(out, pattern.SummaryLine(repeats))
				loops.Add(pattern.Name, repeats)
				i = end
				matched = true
				break
			}

			count := 0
			for matchesAt(lines, i, pattern.Lines) {
				count++
				i += len(pattern.Lines)
			}
			if count >= 2 {
				out = append(out, pattern.SummaryLine(count))
				loops.Add(pattern.Name, count)
				matched = true
				break
			}
			if count == 1 {
				out = append(out, pattern.Lines...)
				matched = true
				break
			}
		}

		if !matched {
			out = append(out, lines[i])
			i++
		}
	}

	return out, loops
}

func (c *compactor) CompactReader(ctx context.Context, sourceName string, r io.Reader) (*models.CompactionResult, error) {
	start := time.Now()

	lines, read, err := c.filterLines(ctx, r)
	if err != nil {
		return nil, err
	}

	out, loops := c.Compact(lines)

	metricLinesReadTotal.Add(float64(read))
	metricLinesKeptTotal.Add(float64(len(out)))
	for _, lc := range loops.NonZero() {
		metricLoopsCollapsedTotal.WithLabelValues(lc.Pattern).Add(float64(lc.Count))
	}
	metricCompactionDuration.Observe(time.Since(start).Seconds())

	return &models.CompactionResult{
		SourceName: sourceName,
		Lines:      out,
		Loops:      loops,
		LinesRead:  read,
		LinesKept:  len(out),
	}, nil
}

// filterLines keeps raw lines starting with the line prefix, trimmed of surrounding whitespace.
func (c *compactor) filterLines(ctx context.Context, r io.Reader) ([]string, int, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, min(64*1024, c.maxLineBytes)), c.maxLineBytes)

	var lines []string
	read := 0
	for scanner.Scan() {
		read++
		if read%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, read, err
			}
		}
		raw := scanner.Text()
		if strings.HasPrefix(raw, c.linePrefix) {
			lines = append(lines, strings.TrimSpace(raw))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, read, fmt.Errorf("failed to scan line %d: %w", read+1, err)
	}
	return lines, read, nil
}

// matchVariableSuffix counts prefix+suffix runs starting at start. A run needs at least one
// suffix block. A prefix that follows a counted run but has no suffix of its own is consumed
// with the run; end is only meaningful when repeats > 0.
func matchVariableSuffix(lines []string, start int, pattern *models.Pattern) (end int, repeats int) {
	j := start
	for matchesAt(lines, j, pattern.PrefixLines) {
		j += len(pattern.PrefixLines)
		suffixes := 0
		for matchesAt(lines, j, pattern.SuffixBlock) {
			suffixes++
			j += len(pattern.SuffixBlock)
		}
		if suffixes == 0 {
			break
		}
		repeats++
	}
	return j, repeats
}

func matchesAt(lines []string, i int, block []string) bool {
	if len(block) == 0 || i+len(block) > len(lines) {
		return false
	}
	for k, want := range block {
		if lines[i+k] != want {
			return false
		}
	}
	return true
}
