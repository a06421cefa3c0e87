package streams

import (
	"context"
	"encoding/binary"
	"hash/fnv"
	"sync"
)

type PartitionedQueue[T any] struct {
	partitions []chan T
	closeOnce  sync.Once
}

const (
	defaultNumPartitions = 4
	defaultBuffer        = 128
)

// NewPartitionedQueue creates numPartitions buffered lanes. Non-positive arguments fall
// back to the defaults.
func NewPartitionedQueue[T any](numPartitions, buffer int) *PartitionedQueue[T] {
	if numPartitions <= 0 {
		numPartitions = defaultNumPartitions
	}
	if buffer <= 0 {
		buffer = defaultBuffer
	}
	channels := make([]chan T, numPartitions)
	for i := range channels {
		channels[i] = make(chan T, buffer)
	}
	return &PartitionedQueue[T]{partitions: channels}
}

func (queue *PartitionedQueue[T]) PartitionCount() int { return len(queue.partitions) }

// Partition returns the receive side of lane idx.
func (queue *PartitionedQueue[T]) Partition(idx int) <-chan T {
	return queue.partitions[idx]
}

// Publish blocks until the lane owning partitionKey accepts msg or ctx is done.
func (queue *PartitionedQueue[T]) Publish(ctx context.Context, partitionKey string, msg T) error {
	idx := partitionIndex(partitionKey, len(queue.partitions))
	select {
	case <-ctx.Done():
		return ctx.Err()
	case queue.partitions[idx] <- msg:
		return nil
	}
}

// Close closes every lane. Publishing after Close panics.
func (queue *PartitionedQueue[T]) Close() {
	queue.closeOnce.Do(func() {
		for _, ch := range queue.partitions {
			close(ch)
		}
	})
}

func partitionIndex(key string, n int) int {
	hash := fnv.New32a()
	_, _ = hash.Write([]byte(key))
	sum := hash.Sum(nil)
	v := binary.BigEndian.Uint32(sum)
	return int(v % uint32(n))
}
