package watchers

import (
	"outlog/internal/shared/metrics"
)

var (
	metricEventsTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubWatch,
			Name:      "fs_events_total",
		},
		[]string{"op", "outcome"},
	)
)

const (
	outcomeQueued    = "queued"
	outcomeIgnored   = "ignored"
	outcomeDebounced = "debounced"
	outcomeFailed    = "failed"
)
