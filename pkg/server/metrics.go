package server

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/iptecharch/ofc-server/pkg/ncerr"
)

const resultSuccess = "success"

type operationMetrics struct {
	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
}

func newOperationMetrics() *operationMetrics {
	return &operationMetrics{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ofc",
			Subsystem: "datastore",
			Name:      "operations_total",
			Help:      "Number of datastore operations by operation, datastore and result",
		}, []string{"operation", "datastore", "result"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "ofc",
			Subsystem: "datastore",
			Name:      "operation_duration_seconds",
			Help:      "Duration of datastore operations",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
	}
}

func (m *operationMetrics) register(reg prometheus.Registerer) {
	reg.MustRegister(m.operations, m.duration)
}

// observe records an operation started at start. The result label is the
// error-tag of a failed operation.
func (m *operationMetrics) observe(operation string, ds string, start time.Time, err error) {
	m.duration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	m.operations.WithLabelValues(operation, ds, resultLabel(err)).Inc()
}

func resultLabel(err error) string {
	if err == nil {
		return resultSuccess
	}
	var ne *ncerr.Error
	if errors.As(err, &ne) {
		return string(ne.Tag)
	}
	return string(ncerr.TagOperationFailed)
}
