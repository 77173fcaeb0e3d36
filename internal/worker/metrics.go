// Package worker periodically recomputes analytics reports and publishes
// them for downstream consumers.
package worker

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ReportsGenerated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cadence_reports_generated_total",
			Help: "Total number of reports generated",
		},
		[]string{"kind"},
	)
	RecomputeFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cadence_recompute_failures_total",
			Help: "Total number of failed recompute runs",
		},
		[]string{"stage"},
	)
	ReportDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cadence_report_generation_seconds",
			Help:    "Report generation duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"kind"},
	)
	TasksObserved = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cadence_tasks_observed",
			Help: "Number of tasks seen in the last recompute run",
		},
	)
)
