package models

// CompactionResult is the outcome of compacting one log.
type CompactionResult struct {
	SourceName string      `json:"sourceName"`
	OutputName string      `json:"outputName,omitempty"`
	Lines      []string    `json:"lines"`
	Loops      *LoopCounts `json:"loops"`
	LinesRead  int         `json:"linesRead"`
	LinesKept  int         `json:"linesKept"`
}
