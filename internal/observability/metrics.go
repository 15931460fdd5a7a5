// Package observability defines the Prometheus metrics of the bridge.
package observability

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/lone-faerie/tempconv/temperature"
)

const namespace = "tempconv"

// Metrics holds the counters for parsed literals and conversions.
type Metrics struct {
	Parses      *prometheus.CounterVec // labels: outcome={ok,empty,invalid,number}
	Conversions *prometheus.CounterVec // labels: from, to, outcome={ok,unsupported,error}
	Published   *prometheus.CounterVec // labels: outcome={ok,error}
}

// NewMetrics creates the metrics and registers them with reg. A nil reg
// registers with [prometheus.DefaultRegisterer].
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &Metrics{
		Parses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "parses_total",
			Help:      "Temperature literals parsed, by outcome.",
		}, []string{"outcome"}),
		Conversions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "conversions_total",
			Help:      "Temperature conversions, by source unit, target unit and outcome.",
		}, []string{"from", "to", "outcome"}),
		Published: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_published_total",
			Help:      "MQTT messages published by the bridge, by outcome.",
		}, []string{"outcome"}),
	}
	reg.MustRegister(m.Parses, m.Conversions, m.Published)
	return m
}

// ParseOutcome classifies the error returned by [temperature.Parse].
func ParseOutcome(err error) string {
	var nerr *temperature.NumberError
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, temperature.ErrEmpty):
		return "empty"
	case errors.As(err, &nerr):
		return "number"
	default:
		return "invalid"
	}
}

// ObserveParse counts the result of a parse.
func (m *Metrics) ObserveParse(err error) {
	m.Parses.WithLabelValues(ParseOutcome(err)).Inc()
}

// ObserveConversion counts the result of converting from one unit to another.
func (m *Metrics) ObserveConversion(from, to temperature.Unit, err error) {
	outcome := "ok"
	switch {
	case errors.Is(err, temperature.ErrNotSupported):
		outcome = "unsupported"
	case err != nil:
		outcome = "error"
	}
	m.Conversions.WithLabelValues(from.Name(), to.Name(), outcome).Inc()
}

// ObservePublish counts the result of publishing a message.
func (m *Metrics) ObservePublish(err error) {
	if err != nil {
		m.Published.WithLabelValues("error").Inc()
		return
	}
	m.Published.WithLabelValues("ok").Inc()
}
