// Package mock provides an in-memory [mqtt.Client] for tests.
package mock

import (
	"strings"
	"sync"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// Message is a message published through a [Client].
type Message struct {
	Topic    string
	QoS      byte
	Retained bool
	Payload  string
}

// Client records published messages and delivers messages to subscribers
// on demand. It never touches the network.
type Client struct {
	connected bool
	opts      *mqtt.ClientOptions
	handlers  map[string]mqtt.MessageHandler
	published []Message
	mu        sync.Mutex
}

// NewClient returns a disconnected Client using o for [Client.OptionsReader].
func NewClient(o *mqtt.ClientOptions) *Client {
	if o == nil {
		o = mqtt.NewClientOptions()
	}
	return &Client{
		opts:     o,
		handlers: make(map[string]mqtt.MessageHandler),
	}
}

func (c *Client) IsConnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connected
}

func (c *Client) IsConnectionOpen() bool {
	return c.IsConnected()
}

func (c *Client) Connect() mqtt.Token {
	c.mu.Lock()
	c.connected = true
	c.mu.Unlock()
	if c.opts.OnConnect != nil {
		c.opts.OnConnect(c)
	}
	return &mqtt.DummyToken{}
}

func (c *Client) Disconnect(_ uint) {
	c.mu.Lock()
	c.connected = false
	c.mu.Unlock()
}

func (c *Client) Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token {
	var p string
	switch v := payload.(type) {
	case []byte:
		p = string(v)
	case string:
		p = v
	}
	c.mu.Lock()
	c.published = append(c.published, Message{topic, qos, retained, p})
	c.mu.Unlock()
	return &mqtt.DummyToken{}
}

func (c *Client) Subscribe(topic string, _ byte, callback mqtt.MessageHandler) mqtt.Token {
	c.mu.Lock()
	c.handlers[topic] = callback
	c.mu.Unlock()
	return &mqtt.DummyToken{}
}

func (c *Client) SubscribeMultiple(filters map[string]byte, callback mqtt.MessageHandler) mqtt.Token {
	for topic, qos := range filters {
		c.Subscribe(topic, qos, callback)
	}
	return &mqtt.DummyToken{}
}

func (c *Client) Unsubscribe(topics ...string) mqtt.Token {
	c.mu.Lock()
	for _, topic := range topics {
		delete(c.handlers, topic)
	}
	c.mu.Unlock()
	return &mqtt.DummyToken{}
}

func (c *Client) AddRoute(topic string, callback mqtt.MessageHandler) {
	c.Subscribe(topic, 0, callback)
}

func (c *Client) OptionsReader() mqtt.ClientOptionsReader {
	return mqtt.NewOptionsReader(c.opts)
}

// Deliver passes payload to the handler subscribed to topic, as the broker
// would. It reports whether a handler was subscribed.
func (c *Client) Deliver(topic, payload string) bool {
	c.mu.Lock()
	h, ok := c.handlers[topic]
	c.mu.Unlock()
	if !ok {
		return false
	}
	h(c, &message{topic: topic, payload: []byte(payload)})
	return true
}

// Published returns the messages published so far.
func (c *Client) Published() []Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Message(nil), c.published...)
}

// PublishedTo returns the payloads published to topics with the given prefix.
func (c *Client) PublishedTo(prefix string) map[string][]string {
	out := make(map[string][]string)
	for _, m := range c.Published() {
		if strings.HasPrefix(m.Topic, prefix) {
			out[m.Topic] = append(out[m.Topic], m.Payload)
		}
	}
	return out
}

// Subscribed reports whether a handler is subscribed to topic.
func (c *Client) Subscribed(topic string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.handlers[topic]
	return ok
}

type message struct {
	topic   string
	payload []byte
}

func (m *message) Duplicate() bool   { return false }
func (m *message) Qos() byte         { return 0 }
func (m *message) Retained() bool    { return false }
func (m *message) MessageID() uint16 { return 0 }
func (m *message) Ack()              {}
func (m *message) Topic() string     { return m.topic }
func (m *message) Payload() []byte   { return m.payload }
