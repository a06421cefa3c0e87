package events

import (
	"time"
)

const (
	OpCreate = "create"
	OpWrite  = "write"
)

// CompactionRequestedEvent asks for one outlog to be compacted again because it changed
// on disk. Events for the same source name always land on the same partition, so a file
// is never compacted by two workers at once.
//
// Example JSON:
//
//	{
//	  "sourceName": "run_3/outlog.log",
//	  "op": "write",
//	  "detectedAt": "2026-10-17T09:12:44Z"
//	}
type CompactionRequestedEvent struct {
	SourceName string    `json:"sourceName"`
	Op         string    `json:"op"`
	DetectedAt time.Time `json:"detectedAt"`
}

// PartitionKey routes the event; it is the source name relative to the watched dir.
func (e CompactionRequestedEvent) PartitionKey() string {
	return e.SourceName
}
