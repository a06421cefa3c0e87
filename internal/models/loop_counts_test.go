package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoopCounts_KeepsFirstSeenOrder(t *testing.T) {
	t.Parallel()

	lc := NewLoopCounts("Loop pattern 7", "Loop pattern 2", "Loop pattern 6")
	lc.Add("Loop pattern 6", 3)
	lc.Add("Loop pattern 2", 5)
	lc.Add("Loop pattern 6", 1)

	assert.Equal(t, []string{"Loop pattern 7", "Loop pattern 2", "Loop pattern 6"}, lc.Names())
	assert.Equal(t, []LoopCount{
		{Pattern: "Loop pattern 2", Count: 5},
		{Pattern: "Loop pattern 6", Count: 4},
	}, lc.NonZero())
	assert.Equal(t, 0, lc.Get("Loop pattern 7"))
	assert.Equal(t, 9, lc.Total())
}

func TestLoopCounts_Merge(t *testing.T) {
	t.Parallel()

	totals := NewLoopCounts("a", "b")
	file1 := NewLoopCounts("a", "b")
	file1.Add("a", 2)
	file2 := NewLoopCounts("a", "b")
	file2.Add("b", 7)
	file2.Add("a", 1)

	totals.Merge(file1)
	totals.Merge(file2)
	totals.Merge(nil)

	assert.Equal(t, []LoopCount{{Pattern: "a", Count: 3}, {Pattern: "b", Count: 7}}, totals.All())
}

func TestLoopCounts_ZeroValueUsable(t *testing.T) {
	t.Parallel()

	var lc LoopCounts
	lc.Add("x", 1)
	assert.Equal(t, 1, lc.Get("x"))
}

func TestLoopCounts_JSONKeepsOrder(t *testing.T) {
	t.Parallel()

	lc := NewLoopCounts("z", "a")
	lc.Add("a", 4)

	data, err := json.Marshal(lc)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"pattern":"z","count":0},{"pattern":"a","count":4}]`, string(data))

	var decoded LoopCounts
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, lc.All(), decoded.All())
}
