package streams

import (
	"context"
	"fmt"

	"outlog/internal/events"
)

// CompactionProducer publishes CompactionRequestedEvents to a partitioned queue.
//
// The partition key is the source name, so every change to one outlog is routed to the
// same lane and compacted by the same worker in the order it was detected. Two writers
// never race on the same filtered log, while different outlogs compact in parallel.
//
//go:generate mockgen -source=compaction_producer.go -destination=./mocks/compaction_producer_mock.go -package=mocks
type CompactionProducer interface {
	Produce(ctx context.Context, event *events.CompactionRequestedEvent) error
}

type compactionProducer struct {
	queue *PartitionedQueue[events.CompactionRequestedEvent]
}

func NewCompactionProducer(queue *PartitionedQueue[events.CompactionRequestedEvent]) CompactionProducer {
	return &compactionProducer{
		queue: queue,
	}
}

func (producer *compactionProducer) Produce(ctx context.Context, event *events.CompactionRequestedEvent) error {
	if event == nil || event.SourceName == "" {
		return fmt.Errorf("compaction event without source name")
	}
	if err := producer.queue.Publish(ctx, event.PartitionKey(), *event); err != nil {
		return err
	}
	metricCompactionRequestedProducedTotal.WithLabelValues(streamCompactionRequested).Inc()
	return nil
}
