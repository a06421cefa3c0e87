package models

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// DefaultFrameMarker prefixes every frame line written by the breakpoint hook.
const DefaultFrameMarker = ">>>>>>"

var (
	ErrMalformedFrame = errors.New("malformed trace frame")

	traceFramePattern = regexp.MustCompile(`^(.+)\((\d+)\)(.+)\(\)$`)
)

// TraceFrame is one visited code location, printed by the breakpoint hook as
//
//	>>>>>>/home/yifan/Robotics/ReKep/ik_solver.py(71)solve()
type TraceFrame struct {
	File     string `json:"file"`
	Line     int    `json:"line"`
	Function string `json:"function"`
}

// ParseTraceFrame parses a frame line that starts with marker.
func ParseTraceFrame(line, marker string) (TraceFrame, error) {
	body, ok := strings.CutPrefix(strings.TrimSpace(line), marker)
	if !ok {
		return TraceFrame{}, fmt.Errorf("%w: missing marker %q in %q", ErrMalformedFrame, marker, line)
	}

	m := traceFramePattern.FindStringSubmatch(body)
	if m == nil {
		return TraceFrame{}, fmt.Errorf("%w: %q", ErrMalformedFrame, line)
	}

	lineNo, err := strconv.Atoi(m[2])
	if err != nil {
		return TraceFrame{}, fmt.Errorf("%w: line number %q: %w", ErrMalformedFrame, m[2], err)
	}

	return TraceFrame{File: m[1], Line: lineNo, Function: m[3]}, nil
}

// Format renders the frame the way the breakpoint hook prints it.
func (f TraceFrame) Format(marker string) string {
	return fmt.Sprintf("%s%s(%d)%s()", marker, f.File, f.Line, f.Function)
}

func (f TraceFrame) String() string {
	return f.Format(DefaultFrameMarker)
}
