package service

import (
	"github.com/AlibekovAA/tasklist/backend/internal/observability/metrics"
)

func recordOperation(operation, result string) {
	metrics.TaskOperationsTotal.WithLabelValues(operation, result).Inc()
}

func observeListSize(n int) {
	metrics.TaskListSize.Observe(float64(n))
}
