package metric

import (
	"github.com/prometheus/client_golang/prometheus"
)

var _ Orders = (*orderMetrics)(nil)

type orderMetrics struct {
	operations *prometheus.CounterVec
	overdue    prometheus.Gauge
}

func newOrderMetrics(reg prometheus.Registerer) *orderMetrics {
	operations := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "orders_operations_total",
			Help: "Total number of order operations by operation and result",
		},
		[]string{"operation", "result"},
	)

	overdue := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "orders_overdue",
		Help: "Number of overdue orders found by the last check",
	})

	reg.MustRegister(operations, overdue)

	return &orderMetrics{
		operations: operations,
		overdue:    overdue,
	}
}

func (m *orderMetrics) Operation(operation, result string) {
	m.operations.WithLabelValues(operation, result).Inc()
}

func (m *orderMetrics) Overdue(count int) {
	m.overdue.Set(float64(count))
}
