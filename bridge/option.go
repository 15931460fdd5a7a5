package bridge

import (
	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/lone-faerie/tempconv/internal/observability"
	"github.com/lone-faerie/tempconv/log"
	"github.com/lone-faerie/tempconv/temperature"
)

type Option func(*Bridge)

// WithClient makes the bridge use c instead of a client built from the config.
func WithClient(c mqtt.Client) Option {
	return func(b *Bridge) {
		b.client = c
	}
}

// WithMetrics makes the bridge record its activity in m.
func WithMetrics(m *observability.Metrics) Option {
	return func(b *Bridge) {
		b.metrics = m
	}
}

// WithUnits overrides the units each input is converted to.
func WithUnits(u ...temperature.Unit) Option {
	return func(b *Bridge) {
		b.units = u
	}
}

// WithLogLevel routes the MQTT client's logs at or above level to the
// process logger.
func WithLogLevel(level log.Level) Option {
	return func(b *Bridge) {
		var noop mqtt.NOOPLogger
		mqtt.ERROR, mqtt.CRITICAL, mqtt.WARN, mqtt.DEBUG = noop, noop, noop, noop
		if level <= log.LevelError {
			mqtt.ERROR = log.ErrorLogger()
			mqtt.CRITICAL = log.ErrorLogger()
		}
		if level <= log.LevelWarn {
			mqtt.WARN = log.WarnLogger()
		}
		if level <= log.LevelDebug {
			mqtt.DEBUG = log.DebugLogger()
		}
	}
}
