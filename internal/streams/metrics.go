package streams

import (
	"outlog/internal/shared/metrics"
)

var (
	streamCompactionRequested = "compaction_requested"

	metricCompactionRequestedProducedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubStream,
			Name:      "compaction_requested_published_total",
		},
		[]string{"stream_id"},
	)

	metricCompactionRequestedConsumedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubStream,
			Name:      "compaction_requested_consumed_total",
		},
		[]string{"stream_id", metrics.FieldErrorCode},
	)
)
