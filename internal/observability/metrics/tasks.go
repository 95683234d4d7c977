package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	TaskOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "task_operations_total",
			Help: "Total number of task operations by operation and result",
		},
		[]string{"operation", "result"},
	)

	TaskListSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "task_list_size",
			Help:    "Number of tasks returned per list request",
			Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 250, 1000},
		},
	)
)
