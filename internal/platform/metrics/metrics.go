package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "bodycomp"

var (
	// Ingestas por origen (http|mqtt|cli) y resultado (created|rejected|failed).
	IngestionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ingestions_total",
		Help:      "Measurement ingestion attempts by source and outcome.",
	}, []string{"source", "outcome"})

	// Latencia de llamadas a Notion (list|update_schema|create_row).
	StoreCallDurationSeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "store_call_duration_seconds",
		Help:      "Duration of calls to the external structured store.",
		Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
	}, []string{"op", "outcome"})

	RateLimitDroppedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rate_limit_dropped_total",
		Help:      "Requests rejected by the per-client rate limiter.",
	})

	MQTTMessagesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "mqtt_messages_total",
		Help:      "MQTT measurement messages by outcome.",
	}, []string{"outcome"})
)

func MustRegister(reg prometheus.Registerer) {
	reg.MustRegister(
		IngestionsTotal,
		StoreCallDurationSeconds,
		RateLimitDroppedTotal,
		MQTTMessagesTotal,
	)
}

// Handler expone el registry en formato Prometheus.
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})
}

// Outcome normaliza un error a la etiqueta de resultado.
func Outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
