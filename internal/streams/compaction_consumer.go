package streams

import (
	"context"
	"fmt"
	"runtime/debug"
	"strconv"
	"sync"

	"outlog/internal/compactors"
	"outlog/internal/events"
	"outlog/internal/models"
	"outlog/internal/shared/loggers"
	"outlog/internal/shared/metrics"
	"outlog/internal/shared/svcerrors"
	"outlog/internal/shared/ulid"
)

// CompactedFunc is called after an outlog was compacted by a consumer worker.
type CompactedFunc func(ctx context.Context, result *models.CompactionResult)

//go:generate mockgen -source=compaction_consumer.go -destination=./mocks/compaction_consumer_mock.go -package=mocks
type CompactionConsumer interface {
	Start(ctx context.Context)
	Stop()
}

type compactionConsumer struct {
	queue             *PartitionedQueue[events.CompactionRequestedEvent]
	compactionService compactors.CompactionService
	onCompacted       CompactedFunc

	wg sync.WaitGroup

	logger loggers.Logger
}

// NewCompactionConsumer creates a consumer; onCompacted may be nil.
func NewCompactionConsumer(queue *PartitionedQueue[events.CompactionRequestedEvent], compactionService compactors.CompactionService, onCompacted CompactedFunc, logger loggers.Logger) CompactionConsumer {
	return &compactionConsumer{
		queue:             queue,
		compactionService: compactionService,
		onCompacted:       onCompacted,
		logger:            logger,
	}
}

// Start spawns 1 worker goroutine per partition.
// Each partition is a single-writer lane for the outlogs routed to it by the producer.
func (consumer *compactionConsumer) Start(ctx context.Context) {
	for partitionIndex := 0; partitionIndex < consumer.queue.PartitionCount(); partitionIndex++ {
		ch := consumer.queue.Partition(partitionIndex)
		consumer.wg.Add(1)
		go func() {
			defer consumer.wg.Done()
			consumer.runPartitionWorker(ctx, partitionIndex, ch)
		}()
	}
}

// Stop waits for the workers. Close the queue first: workers compact every event still
// buffered in their partition and exit once it is closed and empty. Cancelling the Start ctx
// abandons the backlog instead.
func (consumer *compactionConsumer) Stop() {
	consumer.wg.Wait()
}

func (consumer *compactionConsumer) runPartitionWorker(ctx context.Context, partitionIndex int, ch <-chan events.CompactionRequestedEvent) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			consumer.handle(ctx, partitionIndex, event)
		}
	}
}

func (consumer *compactionConsumer) handle(ctx context.Context, partitionIndex int, event events.CompactionRequestedEvent) {
	ctx = consumer.logger.With().
		Str(loggers.FieldPartitionId, strconv.Itoa(partitionIndex)).
		Str(loggers.FieldRequestID, ulid.NewULID()).
		Str(loggers.FieldSourceName, event.SourceName).
		Logger().WithContext(ctx)

	// Handle panic recovery to prevent worker goroutine from crashing
	defer func() {
		if r := recover(); r != nil {
			loggers.Ctx(ctx).Error().
				Bytes(loggers.FieldErrorStack, debug.Stack()).
				Msg("consumer panic recovered")

			var panicErr error
			if err, ok := r.(error); ok {
				panicErr = err
			} else {
				panicErr = fmt.Errorf("%v", r)
			}

			svcErr := svcerrors.NewInternalErrorPanic(panicErr)
			metricCompactionRequestedConsumedTotal.WithLabelValues(streamCompactionRequested, svcErr.Code).Inc()
		}
	}()

	result, err := consumer.compactionService.CompactFile(ctx, event.SourceName)
	if err != nil {
		code := svcerrors.NewInternalErrorUndefined(err).Code
		if svcErr, ok := svcerrors.As(err); ok {
			code = svcErr.Code
		}
		loggers.Ctx(ctx).Warn().Err(err).Str(loggers.FieldErrorCode, code).Msg("compaction failed")
		metricCompactionRequestedConsumedTotal.WithLabelValues(streamCompactionRequested, code).Inc()
		return
	}

	metricCompactionRequestedConsumedTotal.WithLabelValues(streamCompactionRequested, metrics.ValueNoError).Inc()
	loggers.Ctx(ctx).Info().
		Str(loggers.FieldOutputName, result.OutputName).
		Int(loggers.FieldLoops, result.Loops.Total()).
		Msg("outlog recompacted")
	if consumer.onCompacted != nil {
		consumer.onCompacted(ctx, result)
	}
}
