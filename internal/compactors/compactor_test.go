package compactors

import (
	"bufio"
	"context"
	"strings"
	"testing"

	"outlog/internal/models"
	"outlog/internal/patterns"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testLinePrefix = ">>>>>>/p/"

const (
	framePathObjective    = ">>>>>>/p/path_solver.py(114)objective()"
	frameSubgoalObjective = ">>>>>>/p/subgoal_solver.py(112)objective()"
	frameIKSolve          = ">>>>>>/p/ik_solver.py(71)solve()"
	frameObjectByKeypoint = ">>>>>>/p/environment.py(226)get_object_by_keypoint()"
	frameIsGrasping       = ">>>>>>/p/environment.py(285)is_grasping()"
	frameCamObs           = ">>>>>>/p/environment.py(148)get_cam_obs()"
	frameStep             = ">>>>>>/p/environment.py(527)_step()"
	frameCheckReached     = ">>>>>>/p/environment.py(482)_check_reached_ee()"
	frameMain             = ">>>>>>/p/main.py(10)run()"
)

func newTestCompactor(t *testing.T) Compactor {
	t.Helper()
	catalogue, err := patterns.New(models.DefaultFrameMarker, "/p/", patterns.Default(models.DefaultFrameMarker, "/p/"))
	require.NoError(t, err)
	return NewCompactor(catalogue, testLinePrefix, 0)
}

func repeat(n int, block ...string) []string {
	out := make([]string, 0, n*len(block))
	for i := 0; i < n; i++ {
		out = append(out, block...)
	}
	return out
}

func concat(blocks ...[]string) []string {
	var out []string
	for _, b := range blocks {
		out = append(out, b...)
	}
	return out
}

func TestCompactor_Compact(t *testing.T) {
	t.Parallel()

	ikPrefix := []string{framePathObjective, frameIKSolve, frameIKSolve, frameIKSolve}
	suffix := []string{frameObjectByKeypoint, frameIsGrasping}

	tests := []struct {
		name          string
		lines         []string
		expected      []string
		expectedLoops map[string]int
	}{
		{
			name:     "empty input",
			lines:    nil,
			expected: []string{},
		},
		{
			name:     "unmatched lines pass through",
			lines:    []string{frameMain, frameStep},
			expected: []string{frameMain, frameStep},
		},
		{
			name:          "fixed pattern repeated",
			lines:         concat([]string{frameMain}, repeat(3, frameSubgoalObjective, frameIKSolve), []string{frameMain}),
			expected:      []string{frameMain, "# Loop pattern 1 repeated 3 times", frameMain},
			expectedLoops: map[string]int{"Loop pattern 1": 3},
		},
		{
			name:     "single occurrence is kept verbatim and not counted",
			lines:    []string{frameSubgoalObjective, frameIKSolve, frameMain},
			expected: []string{frameSubgoalObjective, frameIKSolve, frameMain},
		},
		{
			name:          "longer pattern wins over its prefix",
			lines:         repeat(2, frameCamObs, frameStep, frameCheckReached),
			expected:      []string{"# Loop pattern 4 repeated 2 times"},
			expectedLoops: map[string]int{"Loop pattern 4": 2},
		},
		{
			name:          "shorter pattern used when longer does not fit",
			lines:         []string{frameCamObs, frameStep, frameCamObs, frameStep, frameCheckReached},
			expected:      []string{"# Loop pattern 3 repeated 2 times", frameCheckReached},
			expectedLoops: map[string]int{"Loop pattern 3": 2},
		},
		{
			name:          "variable suffix counts prefix runs",
			lines:         concat(ikPrefix, suffix, suffix, ikPrefix, suffix, []string{frameMain}),
			expected:      []string{"# Loop pattern 7 repeated 2 times", frameMain},
			expectedLoops: map[string]int{"Loop pattern 7": 2},
		},
		{
			name:          "variable suffix summarizes a single run",
			lines:         concat(ikPrefix, suffix, suffix, suffix),
			expected:      []string{"# Loop pattern 7 repeated 1 times"},
			expectedLoops: map[string]int{"Loop pattern 7": 1},
		},
		{
			name:          "dangling prefix after a run is consumed with it",
			lines:         concat(ikPrefix, suffix, ikPrefix, []string{frameMain}),
			expected:      []string{"# Loop pattern 7 repeated 1 times", frameMain},
			expectedLoops: map[string]int{"Loop pattern 7": 1},
		},
		{
			name:          "dangling prefix at end of log is consumed",
			lines:         concat(ikPrefix, suffix, suffix, ikPrefix, suffix, ikPrefix),
			expected:      []string{"# Loop pattern 7 repeated 2 times"},
			expectedLoops: map[string]int{"Loop pattern 7": 2},
		},
		{
			name:          "dangling prefix is not scanned again",
			lines:         concat(ikPrefix, suffix, ikPrefix, []string{framePathObjective, frameMain}),
			expected:      []string{"# Loop pattern 7 repeated 1 times", framePathObjective, frameMain},
			expectedLoops: map[string]int{"Loop pattern 7": 1},
		},
		{
			name:     "prefix without suffix falls through to other patterns",
			lines:    []string{framePathObjective, frameIKSolve, frameIKSolve, frameIKSolve, framePathObjective},
			expected: []string{framePathObjective, frameIKSolve, frameIKSolve, frameIKSolve, framePathObjective},
		},
		{
			name:          "solver pattern repeated",
			lines:         repeat(2, frameIKSolve, frameIKSolve, frameIKSolve, framePathObjective),
			expected:      []string{"# Loop pattern 2 repeated 2 times"},
			expectedLoops: map[string]int{"Loop pattern 2": 2},
		},
		{
			name:          "suffix cleanup pattern",
			lines:         repeat(3, frameObjectByKeypoint, frameIsGrasping),
			expected:      []string{"# Loop pattern 5 (suffix cleanup) repeated 3 times"},
			expectedLoops: map[string]int{"Loop pattern 5 (suffix cleanup)": 3},
		},
		{
			name:          "grasp check loop preferred over cleanup",
			lines:         repeat(2, frameIKSolve, frameObjectByKeypoint, frameIsGrasping, frameSubgoalObjective),
			expected:      []string{"# Loop pattern 6 repeated 2 times"},
			expectedLoops: map[string]int{"Loop pattern 6": 2},
		},
		{
			name: "consecutive different loops",
			lines: concat(
				repeat(2, frameSubgoalObjective, frameIKSolve),
				repeat(4, frameCamObs, frameStep),
			),
			expected: []string{
				"# Loop pattern 1 repeated 2 times",
				"# Loop pattern 3 repeated 4 times",
			},
			expectedLoops: map[string]int{"Loop pattern 1": 2, "Loop pattern 3": 4},
		},
	}

	compactor := newTestCompactor(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			out, loops := compactor.Compact(tt.lines)
			assert.Equal(t, tt.expected, out)

			require.Equal(t, compactor.Catalogue().Names(), loops.Names(), "every pattern is tallied")
			for _, name := range loops.Names() {
				assert.Equal(t, tt.expectedLoops[name], loops.Get(name), "loops for %s", name)
			}
		})
	}
}

func TestCompactor_CompactReader_FiltersAndTrims(t *testing.T) {
	t.Parallel()

	compactor := newTestCompactor(t)
	input := strings.Join([]string{
		"Loading robot description...",
		frameMain + "   ",
		"  " + frameMain, // leading whitespace: not a frame line
		frameSubgoalObjective + "\r",
		frameIKSolve,
		">>>>>>/other/project.py(1)f()",
		frameSubgoalObjective,
		frameIKSolve,
		"[warn] joint limit reached",
	}, "\n")

	result, err := compactor.CompactReader(context.Background(), "run_0.log", strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, "run_0.log", result.SourceName)
	assert.Equal(t, []string{frameMain, "# Loop pattern 1 repeated 2 times"}, result.Lines)
	assert.Equal(t, 9, result.LinesRead)
	assert.Equal(t, 2, result.LinesKept)
	assert.Equal(t, 2, result.Loops.Get("Loop pattern 1"))
}

func TestCompactor_CompactReader_LineTooLong(t *testing.T) {
	t.Parallel()

	catalogue, err := patterns.New(models.DefaultFrameMarker, "/p/", patterns.Default(models.DefaultFrameMarker, "/p/"))
	require.NoError(t, err)
	compactor := NewCompactor(catalogue, testLinePrefix, 64)

	_, err = compactor.CompactReader(context.Background(), "big.log", strings.NewReader(strings.Repeat("x", 200)+"\n"))
	assert.ErrorIs(t, err, bufio.ErrTooLong)
}

func TestCompactor_CompactReader_ContextCanceled(t *testing.T) {
	t.Parallel()

	compactor := newTestCompactor(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	input := strings.Repeat(frameMain+"\n", 2*ctxCheckInterval)
	_, err := compactor.CompactReader(ctx, "run.log", strings.NewReader(input))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMatchesAt(t *testing.T) {
	t.Parallel()

	lines := []string{"a", "b", "c"}
	assert.True(t, matchesAt(lines, 1, []string{"b", "c"}))
	assert.False(t, matchesAt(lines, 2, []string{"c", "d"}), "block past the end never matches")
	assert.False(t, matchesAt(lines, 0, nil), "empty block never matches")
}

func BenchmarkCompactor_Compact(b *testing.B) {
	catalogue, err := patterns.New(models.DefaultFrameMarker, "/p/", patterns.Default(models.DefaultFrameMarker, "/p/"))
	require.NoError(b, err)
	compactor := NewCompactor(catalogue, testLinePrefix, 0)

	lines := concat(
		repeat(5000, frameSubgoalObjective, frameIKSolve),
		repeat(5000, frameIKSolve, frameIKSolve, frameIKSolve, framePathObjective),
		repeat(1000, frameMain),
	)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		compactor.Compact(lines)
	}
}
