package models

import "time"

// RunReport summarizes one compaction run over a log directory.
//
// Example JSON:
//
//	{
//	  "runId": "01ARZ3NDEKTSV4RRFFQ69G5FAV",
//	  "inputDir": "/home/yifan/Robotics/ReKep/output_logs",
//	  "startedAt": "2026-10-17T09:00:00Z",
//	  "finishedAt": "2026-10-17T09:00:02Z",
//	  "files": [
//	    {
//	      "sourceName": "run_0.log",
//	      "outputName": "concise_logs/run_0.filtered.log",
//	      "linesRead": 48211,
//	      "linesKept": 35,
//	      "loops": [{"pattern": "Loop pattern 2", "count": 9120}]
//	    }
//	  ],
//	  "totals": [
//	    {"pattern": "Loop pattern 7", "count": 0},
//	    {"pattern": "Loop pattern 2", "count": 9120}
//	  ]
//	}
type RunReport struct {
	RunID      string        `json:"runId"`
	InputDir   string        `json:"inputDir"`
	StartedAt  time.Time     `json:"startedAt"`
	FinishedAt time.Time     `json:"finishedAt"`
	Files      []*FileReport `json:"files"`
	Totals     *LoopCounts   `json:"totals"`
}

// FileReport is the per-file part of a RunReport. Loops only lists non-zero patterns.
type FileReport struct {
	SourceName string      `json:"sourceName"`
	OutputName string      `json:"outputName"`
	LinesRead  int         `json:"linesRead"`
	LinesKept  int         `json:"linesKept"`
	Loops      []LoopCount `json:"loops"`
}

// NewFileReport builds the report entry for a compaction result.
func NewFileReport(result *CompactionResult) *FileReport {
	return &FileReport{
		SourceName: result.SourceName,
		OutputName: result.OutputName,
		LinesRead:  result.LinesRead,
		LinesKept:  result.LinesKept,
		Loops:      result.Loops.NonZero(),
	}
}
