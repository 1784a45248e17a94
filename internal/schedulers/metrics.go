package schedulers

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	iterationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "qsched",
		Name:      "iterations_total",
		Help:      "Scheduler iterations executed (one quantum each).",
	})

	completedProcessesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "qsched",
		Name:      "completed_processes_total",
		Help:      "Processes whose burst time reached zero.",
	})

	runsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "qsched",
		Name:      "runs_total",
		Help:      "Simulation runs by result.",
	}, []string{"result"})

	selectedReward = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "qsched",
		Name:      "selected_reward",
		Help:      "Reward of the process chosen by the q-table.",
		Buckets:   prometheus.LinearBuckets(-4, 1, 12),
	})

	snapshotPublishDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "qsched",
		Name:      "snapshot_publish_duration_seconds",
		Help:      "Time spent publishing one snapshot.",
		Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
	})
)
