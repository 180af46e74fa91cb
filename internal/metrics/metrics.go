package metrics

import (
	"github.com/drakos74/slp/internal/math/ml"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	Train = "train"
	Test  = "test"
	Micro = "micro"
	Macro = "macro"
)

var Observer = NewMetrics()

func init() {
	prometheus.MustRegister(Observer.prometheus.Collectors()...)
}

type Metrics struct {
	prometheus Prometheus
}

// NewMetrics creates a new unregistered set of metrics.
func NewMetrics() *Metrics {
	return &Metrics{prometheus: NewPrometheusMetrics()}
}

// Progress counts one training sample.
func (m *Metrics) Progress(model string, done, total int) {
	m.prometheus.Samples.WithLabelValues(model, Train).Inc()
}

// Test tracks the results of a test run.
func (m *Metrics) Test(report ml.Report) {
	m.prometheus.Samples.WithLabelValues(report.Model, Test).Add(float64(report.Samples))
	m.prometheus.Accuracy.WithLabelValues(report.Model).Set(report.Accuracy)
	m.prometheus.Precision.WithLabelValues(report.Model, Micro).Set(report.MicroPrecision)
	m.prometheus.Precision.WithLabelValues(report.Model, Macro).Set(report.MacroPrecision)
	m.prometheus.Recall.WithLabelValues(report.Model, Micro).Set(report.MicroRecall)
	m.prometheus.Recall.WithLabelValues(report.Model, Macro).Set(report.MacroRecall)
}
