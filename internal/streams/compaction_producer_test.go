package streams

import (
	"context"
	"testing"
	"time"

	"outlog/internal/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompactionProducer_Produce(t *testing.T) {
	t.Parallel()

	queue := NewPartitionedQueue[events.CompactionRequestedEvent](3, 4)
	producer := NewCompactionProducer(queue)

	event := &events.CompactionRequestedEvent{SourceName: "run_1.log", Op: events.OpWrite, DetectedAt: time.Now()}
	require.NoError(t, producer.Produce(context.Background(), event))

	got := <-queue.Partition(partitionIndex("run_1.log", 3))
	assert.Equal(t, *event, got)
}

func TestCompactionProducer_Produce_RejectsEmptySource(t *testing.T) {
	t.Parallel()

	producer := NewCompactionProducer(NewPartitionedQueue[events.CompactionRequestedEvent](1, 1))

	assert.Error(t, producer.Produce(context.Background(), nil))
	assert.Error(t, producer.Produce(context.Background(), &events.CompactionRequestedEvent{}))
}

func TestCompactionProducer_Produce_ContextCanceled(t *testing.T) {
	t.Parallel()

	queue := NewPartitionedQueue[events.CompactionRequestedEvent](1, 1)
	producer := NewCompactionProducer(queue)
	require.NoError(t, producer.Produce(context.Background(), &events.CompactionRequestedEvent{SourceName: "a.log"}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := producer.Produce(ctx, &events.CompactionRequestedEvent{SourceName: "a.log"})
	assert.ErrorIs(t, err, context.Canceled)
}
