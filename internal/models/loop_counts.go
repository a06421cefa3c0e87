package models

import "encoding/json"

// LoopCount is the number of collapsed loops for one pattern.
type LoopCount struct {
	Pattern string `json:"pattern"`
	Count   int    `json:"count"`
}

// LoopCounts tallies collapsed loops per pattern name and remembers the order
// names were first seen, so reports list patterns in catalogue order.
type LoopCounts struct {
	order  []string
	counts map[string]int
}

// NewLoopCounts returns a tally with a zero entry for each name.
func NewLoopCounts(names ...string) *LoopCounts {
	lc := &LoopCounts{counts: make(map[string]int, len(names))}
	for _, name := range names {
		lc.Add(name, 0)
	}
	return lc
}

func (lc *LoopCounts) Add(name string, n int) {
	if lc.counts == nil {
		lc.counts = make(map[string]int)
	}
	if _, ok := lc.counts[name]; !ok {
		lc.order = append(lc.order, name)
	}
	lc.counts[name] += n
}

func (lc *LoopCounts) Get(name string) int {
	return lc.counts[name]
}

// Merge adds every count of other into lc.
func (lc *LoopCounts) Merge(other *LoopCounts) {
	if other == nil {
		return
	}
	for _, name := range other.order {
		lc.Add(name, other.counts[name])
	}
}

func (lc *LoopCounts) Names() []string {
	return append([]string(nil), lc.order...)
}

// All returns every entry, zeros included, in order.
func (lc *LoopCounts) All() []LoopCount {
	out := make([]LoopCount, 0, len(lc.order))
	for _, name := range lc.order {
		out = append(out, LoopCount{Pattern: name, Count: lc.counts[name]})
	}
	return out
}

// NonZero returns the entries with a positive count, in order.
func (lc *LoopCounts) NonZero() []LoopCount {
	out := make([]LoopCount, 0, len(lc.order))
	for _, name := range lc.order {
		if c := lc.counts[name]; c > 0 {
			out = append(out, LoopCount{Pattern: name, Count: c})
		}
	}
	return out
}

func (lc *LoopCounts) Total() int {
	total := 0
	for _, c := range lc.counts {
		total += c
	}
	return total
}

// MarshalJSON encodes the tally as an ordered list.
func (lc *LoopCounts) MarshalJSON() ([]byte, error) {
	return json.Marshal(lc.All())
}

func (lc *LoopCounts) UnmarshalJSON(data []byte) error {
	var entries []LoopCount
	if err := json.Unmarshal(data, &entries); err != nil {
		return err
	}
	*lc = LoopCounts{counts: make(map[string]int, len(entries))}
	for _, e := range entries {
		lc.Add(e.Pattern, e.Count)
	}
	return nil
}
