package compactors

import (
	"outlog/internal/shared/metrics"
)

var (
	metricLinesReadTotal = metrics.NewCounter(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubCompaction,
			Name:      "lines_read_total",
		},
	)

	metricLinesKeptTotal = metrics.NewCounter(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubCompaction,
			Name:      "lines_kept_total",
		},
	)

	// metricLoopsCollapsedTotal counts loops replaced by a summary line, per pattern name.
	metricLoopsCollapsedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubCompaction,
			Name:      "loops_collapsed_total",
		},
		[]string{"pattern"},
	)

	metricFilesCompactedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubCompaction,
			Name:      "files_compacted_total",
		},
		[]string{metrics.FieldErrorCode},
	)

	metricCompactionDuration = metrics.NewHistogram(
		metrics.HistogramOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubCompaction,
			Name:      "duration_seconds",
			Buckets:   metrics.ExponentialBuckets(0.001, 4, 8),
		},
	)
)
