package patterns

import (
	"testing"

	"outlog/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_DefaultCatalogueOrder(t *testing.T) {
	t.Parallel()

	catalogue, err := New(models.DefaultFrameMarker, DefaultProjectRoot, Default(models.DefaultFrameMarker, DefaultProjectRoot))
	require.NoError(t, err)

	assert.Equal(t, []string{
		"Loop pattern 7",
		"Loop pattern 2",
		"Loop pattern 6",
		"Loop pattern 4",
		"Loop pattern 1",
		"Loop pattern 3",
		"Loop pattern 5 (suffix cleanup)",
	}, catalogue.Names())
	assert.Equal(t, 7, catalogue.Len())
	assert.Equal(t, models.DefaultFrameMarker, catalogue.Marker())
}

func TestDefault_UsesProjectRoot(t *testing.T) {
	t.Parallel()

	defaults := Default(models.DefaultFrameMarker, "/srv/rekep/")
	require.NotEmpty(t, defaults)

	assert.Equal(t, ">>>>>>/srv/rekep/subgoal_solver.py(112)objective()", defaults[1].Lines[0])
	assert.Equal(t, ">>>>>>/srv/rekep/ik_solver.py(71)solve()", defaults[1].Lines[1])
	assert.Equal(t, []string{
		">>>>>>/srv/rekep/environment.py(226)get_object_by_keypoint()",
		">>>>>>/srv/rekep/environment.py(285)is_grasping()",
	}, defaults[0].SuffixBlock)
}

func TestNew_RejectsInvalidCatalogues(t *testing.T) {
	t.Parallel()

	valid := models.Pattern{Name: "a", Lines: []string{">>>>>>/p/x.py(1)f()"}}

	tests := []struct {
		name     string
		patterns []models.Pattern
	}{
		{name: "empty", patterns: nil},
		{name: "duplicate names", patterns: []models.Pattern{valid, valid}},
		{name: "invalid pattern", patterns: []models.Pattern{{Name: "b"}}},
		{name: "line outside project root", patterns: []models.Pattern{
			{Name: "c", Lines: []string{">>>>>>/elsewhere/x.py(1)f()"}},
		}},
		{name: "untrimmed line", patterns: []models.Pattern{
			{Name: "d", Lines: []string{">>>>>>/p/x.py(1)f() "}},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(models.DefaultFrameMarker, "/p/", tt.patterns)
			assert.ErrorIs(t, err, models.ErrInvalidPattern)
		})
	}
}

func TestCatalogue_PatternsAreCopies(t *testing.T) {
	t.Parallel()

	catalogue, err := New(models.DefaultFrameMarker, "/p/", []models.Pattern{
		{Name: "a", Lines: []string{">>>>>>/p/x.py(1)f()"}},
	})
	require.NoError(t, err)

	got := catalogue.Patterns()
	got[0].Lines[0] = "mutated"

	assert.Equal(t, ">>>>>>/p/x.py(1)f()", catalogue.At(0).Lines[0])
}
