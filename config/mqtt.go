package config

import (
	"crypto/tls"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/lone-faerie/tempconv/log"
)

// MQTTConfig is the configuration for the MQTT client.
//
// See [mqtt.ClientOptions]
type MQTTConfig struct {
	// Broker is the URI of the broker in the form scheme://host:port, where
	// scheme is one of "tcp", "ssl" or "ws".
	Broker   string `yaml:"broker"`
	ClientID string `yaml:"client_id,omitempty"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	// KeepAlive is how long the client waits before pinging the broker.
	KeepAlive time.Duration `yaml:"keep_alive,omitempty"`
	// CertFile and KeyFile are PEM-encoded. TLS is only used if both are set.
	CertFile string `yaml:"cert_file,omitempty"`
	KeyFile  string `yaml:"key_file,omitempty"`
	// ReconnectInterval is the longest the client waits between reconnection attempts.
	ReconnectInterval time.Duration `yaml:"reconnect_interval,omitempty"`
	// ConnectTimeout of 0 means the client never times out when connecting.
	ConnectTimeout time.Duration `yaml:"connect_timeout,omitempty"`
	PingTimeout    time.Duration `yaml:"ping_timeout,omitempty"`
	WriteTimeout   time.Duration `yaml:"write_timeout,omitempty"`
	// BirthWillEnabled enables the "online"/"offline" status messages on
	// BirthWillTopic. The default topic is "~/bridge/status".
	BirthWillEnabled bool   `yaml:"birth_lwt_enabled"`
	BirthWillTopic   string `yaml:"birth_lwt_topic"`
	// LogLevel is the level the MQTT client package logs at.
	LogLevel log.Level `yaml:"log_level"`

	tlsCert *tls.Certificate
}

var DefaultMQTT = MQTTConfig{
	Broker:           "$TEMPCONV_BROKER_ADDRESS",
	Username:         "$TEMPCONV_BROKER_USERNAME",
	Password:         "$TEMPCONV_BROKER_PASSWORD",
	BirthWillEnabled: true,
	BirthWillTopic:   "~/bridge/status",
	LogLevel:         log.LevelDisabled,
}

// ClientOptions returns cfg as [mqtt.ClientOptions] for [mqtt.NewClient].
func (cfg *MQTTConfig) ClientOptions() *mqtt.ClientOptions {
	o := mqtt.NewClientOptions()
	o.AddBroker(cfg.Broker)
	o.SetClientID(cfg.ClientID)
	o.SetUsername(cfg.Username).SetPassword(cfg.Password)
	o.SetResumeSubs(true)
	// Handlers wait on publish tokens.
	o.SetOrderMatters(false)

	if cfg.KeepAlive > 0 {
		o.SetKeepAlive(cfg.KeepAlive)
	}
	if cfg.ReconnectInterval > 0 {
		o.SetMaxReconnectInterval(cfg.ReconnectInterval)
	}
	if cfg.ConnectTimeout > 0 {
		o.SetConnectTimeout(cfg.ConnectTimeout)
	}
	if cfg.PingTimeout > 0 {
		o.SetPingTimeout(cfg.PingTimeout)
	}
	if cfg.WriteTimeout > 0 {
		o.SetWriteTimeout(cfg.WriteTimeout)
	}
	if cfg.BirthWillEnabled {
		o.SetWill(cfg.BirthWillTopic, "offline", 1, true)
	}
	if cfg.CertFile != "" && cfg.KeyFile != "" {
		o.SetTLSConfig(&tls.Config{
			GetClientCertificate: cfg.getCertificate,
		})
	}

	return o
}

func (cfg *MQTTConfig) getCertificate(_ *tls.CertificateRequestInfo) (*tls.Certificate, error) {
	if cfg.tlsCert == nil {
		cert, err := tls.LoadX509KeyPair(cfg.CertFile, cfg.KeyFile)
		if err != nil {
			return nil, err
		}
		cfg.tlsCert = &cert
	}
	return cfg.tlsCert, nil
}

// IsZero indicates whether cfg is the default value.
func (cfg MQTTConfig) IsZero() bool {
	return cfg == DefaultMQTT
}
