// Package metrics registers the service's Prometheus instrumentation.
// Exposed on the HTTP API at /metrics.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const metricPrefix = "safesite_"

var (
	registerOnce sync.Once

	cyclesTotal *prometheus.CounterVec
	alertsTotal *prometheus.CounterVec

	safetyScore    prometheus.Gauge
	predictedScore prometheus.Gauge
)

// Init registers all metrics with the default registry. Safe to call more
// than once.
func Init() {
	registerOnce.Do(func() {
		cyclesTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "cycles_total",
				Help: "Monitoring cycles by snapshot read result",
			},
			[]string{"result"},
		)
		alertsTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "alerts_total",
				Help: "Triage alerts by kind and delivery outcome",
			},
			[]string{"kind", "outcome"},
		)
		safetyScore = prometheus.NewGauge(prometheus.GaugeOpts{
			Name: metricPrefix + "safety_score",
			Help: "Current composite safety score (0-100)",
		})
		predictedScore = prometheus.NewGauge(prometheus.GaugeOpts{
			Name: metricPrefix + "predicted_safety_score",
			Help: "Safety score of the one-step-ahead forecast (0-100)",
		})

		prometheus.MustRegister(cyclesTotal, alertsTotal, safetyScore, predictedScore)
	})
}

// ObserveCycle records one completed cycle with its snapshot read result
// ("ok", "absent", "corrupt").
func ObserveCycle(result string) {
	if cyclesTotal != nil {
		cyclesTotal.WithLabelValues(result).Inc()
	}
}

// ObserveAlert records a triage alert with its delivery outcome
// ("sent", "suppressed", "failed", "disabled").
func ObserveAlert(kind, outcome string) {
	if alertsTotal != nil {
		alertsTotal.WithLabelValues(kind, outcome).Inc()
	}
}

// SetScores updates the current and predicted score gauges.
func SetScores(current, predicted int) {
	if safetyScore != nil {
		safetyScore.Set(float64(current))
	}
	if predictedScore != nil {
		predictedScore.Set(float64(predicted))
	}
}
