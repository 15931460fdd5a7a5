// Package bridge converts temperature literals received over MQTT and
// publishes the results.
//
// Every message on the input topic is trimmed and parsed. The input itself
// and its conversions are published as literals such as "98.42 °F" to
// <output_prefix>/<unit name>, e.g. "tempconv/output/fahrenheit". Literals
// that can't be parsed or converted produce a message on
// <output_prefix>/error instead.
package bridge

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/lone-faerie/tempconv/config"
	"github.com/lone-faerie/tempconv/internal/observability"
	"github.com/lone-faerie/tempconv/log"
	"github.com/lone-faerie/tempconv/temperature"
)

const defaultWriteTimeout = 5 * time.Second

// Bridge is the MQTT client that converts temperatures published to the
// input topic.
type Bridge struct {
	client  mqtt.Client
	metrics *observability.Metrics
	units   []temperature.Unit

	inputTopic   string
	outputPrefix string
	stopTopic    string
	qos          byte
	retained     bool
	timeout      time.Duration

	once sync.Once
	done chan struct{}
}

// New returns a new Bridge configured by cfg and opts. The bridge must have
// [Bridge.Connect] and [Bridge.Start] called on it before it converts
// anything.
func New(cfg *config.Config, opts ...Option) *Bridge {
	b := &Bridge{
		units:        cfg.Units(),
		inputTopic:   cfg.Bridge.InputTopic,
		outputPrefix: strings.TrimSuffix(cfg.Bridge.OutputPrefix, "/"),
		stopTopic:    cfg.TopicPrefix + "/bridge/stop",
		qos:          cfg.Bridge.QoS,
		retained:     cfg.Bridge.Retained,
		timeout:      cfg.MQTT.WriteTimeout,
		done:         make(chan struct{}),
	}
	if b.timeout <= 0 {
		b.timeout = defaultWriteTimeout
	}
	if cfg.MQTT.LogLevel < log.LevelDisabled {
		WithLogLevel(cfg.MQTT.LogLevel)(b)
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.client == nil {
		b.client = mqtt.NewClient(cfg.MQTT.ClientOptions())
	}
	return b
}

// waitToken waits for the first of ctx.Done() or t.Done() and returns
// t.Error(), or ctx.Err() if the context finished first.
func waitToken(ctx context.Context, t mqtt.Token) error {
	select {
	case <-t.Done():
		return t.Error()
	default:
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.Done():
	}
	return t.Error()
}

// Connect connects to the broker.
func (b *Bridge) Connect(ctx context.Context) error {
	return waitToken(ctx, b.client.Connect())
}

// Start subscribes to the input and stop topics and publishes the birth
// message, if enabled.
func (b *Bridge) Start(ctx context.Context) error {
	t := b.client.Subscribe(b.inputTopic, b.qos, b.handleInput)
	if err := waitToken(ctx, t); err != nil {
		return err
	}
	log.Info("Subscribed", "topic", b.inputTopic)

	t = b.client.Subscribe(b.stopTopic, 0, func(_ mqtt.Client, msg mqtt.Message) {
		msg.Ack()
		log.Info("Received stop message")
		b.stop()
	})
	if err := waitToken(ctx, t); err != nil {
		return err
	}

	return b.publishStatus(ctx, true)
}

// Run connects, starts the bridge and blocks until ctx is done or a stop
// message is received, then disconnects.
func (b *Bridge) Run(ctx context.Context) error {
	if err := b.Connect(ctx); err != nil {
		return err
	}
	defer b.Disconnect()

	if err := b.Start(ctx); err != nil {
		return err
	}

	select {
	case <-ctx.Done():
	case <-b.done:
	}
	return nil
}

// Done returns a channel that is closed once a stop message is received or
// the bridge is disconnected.
func (b *Bridge) Done() <-chan struct{} {
	return b.done
}

// Connected reports whether the connection to the broker is open.
func (b *Bridge) Connected() bool {
	return b.client.IsConnectionOpen()
}

func (b *Bridge) stop() {
	b.once.Do(func() { close(b.done) })
}

// Disconnect publishes the will message, if enabled, and ends the
// connection with the broker.
func (b *Bridge) Disconnect() {
	defer b.stop()
	if !b.client.IsConnected() {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), b.timeout)
	defer cancel()
	if err := b.publishStatus(ctx, false); err != nil {
		log.Warn("Unable to publish LWT on graceful disconnect", "err", err)
	}
	b.client.Disconnect(250)
	log.Info("Disconnected")
}

func (b *Bridge) publishStatus(ctx context.Context, online bool) error {
	opts := b.client.OptionsReader()
	if !opts.WillEnabled() || opts.WillTopic() == "" {
		return nil
	}
	payload := opts.WillPayload()
	if online {
		payload = []byte("online")
	}
	t := b.client.Publish(opts.WillTopic(), opts.WillQos(), opts.WillRetained(), payload)
	return waitToken(ctx, t)
}

func (b *Bridge) publish(topic, payload string) error {
	t := b.client.Publish(topic, b.qos, b.retained, payload)
	var err error
	if !t.WaitTimeout(b.timeout) {
		err = errors.New("publish to " + topic + " timed out")
	} else {
		err = t.Error()
	}
	if b.metrics != nil {
		b.metrics.ObservePublish(err)
	}
	if err != nil {
		log.Warn("Unable to publish", "topic", topic, "err", err)
	}
	return err
}

func (b *Bridge) publishError(err error) {
	b.publish(b.outputPrefix+"/error", err.Error())
}

func (b *Bridge) handleInput(_ mqtt.Client, msg mqtt.Message) {
	msg.Ack()
	b.Convert(strings.TrimSpace(string(msg.Payload())))
}

// Convert parses s and publishes it and its conversions. Failures are
// published to the error topic and returned.
func (b *Bridge) Convert(s string) error {
	t, err := temperature.Parse(s)
	if b.metrics != nil {
		b.metrics.ObserveParse(err)
	}
	if err != nil {
		log.Warn("Invalid input", "input", s, "err", err)
		b.publishError(err)
		return err
	}

	out, err := temperature.ConvertTo(t, b.units...)
	if err != nil {
		log.Warn("Conversion failed", "input", t, "err", err)
		b.publishError(err)
		return err
	}
	if b.metrics != nil {
		for _, o := range out {
			b.metrics.ObserveConversion(t.Unit, o.Unit, nil)
		}
	}
	log.Debug("Converted", "input", t, "outputs", len(out))

	var errs []error
	for _, o := range append([]temperature.Temperature{t}, out...) {
		if err := b.publish(b.outputPrefix+"/"+o.Unit.Name(), o.String()); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
