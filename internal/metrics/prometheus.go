package metrics

import "github.com/prometheus/client_golang/prometheus"

type Prometheus struct {
	Samples   *prometheus.CounterVec
	Accuracy  *prometheus.GaugeVec
	Precision *prometheus.GaugeVec
	Recall    *prometheus.GaugeVec
}

func NewPrometheusMetrics() Prometheus {
	return Prometheus{
		Samples: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "slp",
				Name:      "samples",
				Help:      "samples processed by the model",
			}, []string{"model", "process"}),
		Accuracy: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "slp",
				Name:      "accuracy",
				Help:      "accuracy of the last test run",
			}, []string{"model"}),
		Precision: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "slp",
				Name:      "precision",
				Help:      "averaged precision of the last test run",
			}, []string{"model", "average"}),
		Recall: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "slp",
				Name:      "recall",
				Help:      "averaged recall of the last test run",
			}, []string{"model", "average"}),
	}
}

// Collectors returns all the collectors for registration.
func (p Prometheus) Collectors() []prometheus.Collector {
	return []prometheus.Collector{p.Samples, p.Accuracy, p.Precision, p.Recall}
}
