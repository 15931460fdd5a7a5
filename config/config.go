// Package config provides the structures used for configuration.
package config

import (
	"errors"
	"io"
	"os"
	"reflect"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/lone-faerie/tempconv/config/secrets"
	"github.com/lone-faerie/tempconv/internal/byteutil"
	"github.com/lone-faerie/tempconv/log"
	"github.com/lone-faerie/tempconv/temperature"
)

// Config contains the configuration for the converter, the MQTT bridge and
// logging. It should be created with [Default], [Read] or [Load], which
// expand environment variables and secrets.
type Config struct {
	// DefaultInput is converted when the user enters an empty line.
	DefaultInput string `yaml:"default_input"`
	// Targets restricts conversions to the listed units. By default every
	// other unit is a target.
	Targets []temperature.Unit `yaml:"targets,omitempty"`
	// TopicPrefix replaces "~" at either end of every topic.
	TopicPrefix string        `yaml:"topic_prefix"`
	Log         LogConfig     `yaml:"log,omitempty"`
	MQTT        MQTTConfig    `yaml:"mqtt,omitempty"`
	Bridge      BridgeConfig  `yaml:"bridge,omitempty"`
	Metrics     MetricsConfig `yaml:"metrics,omitempty"`
}

// BridgeConfig configures the topics used by the MQTT bridge.
type BridgeConfig struct {
	// InputTopic receives temperature literals. The default is "~/input".
	InputTopic string `yaml:"input_topic"`
	// OutputPrefix is the parent of the per-unit result topics and of the
	// "error" topic. The default is "~/output".
	OutputPrefix string `yaml:"output_prefix"`
	QoS          byte   `yaml:"qos,omitempty"`
	Retained     bool   `yaml:"retained,omitempty"`
}

// MetricsConfig configures the Prometheus endpoint of the bridge.
type MetricsConfig struct {
	// Addr is the listen address for /metrics. Empty disables the endpoint.
	Addr string `yaml:"addr,omitempty"`
}

var defaultBridge = BridgeConfig{
	InputTopic:   "~/input",
	OutputPrefix: "~/output",
}

var defaultCfg = Config{
	DefaultInput: "36.9C",
	TopicPrefix:  "tempconv",
	Log:          defaultLog,
	MQTT:         DefaultMQTT,
	Bridge:       defaultBridge,
}

// Default returns the configuration used when no config file is provided.
func Default() *Config {
	cfg := defaultCfg
	cfg.load()
	return &cfg
}

// Read returns the Config parsed from the YAML read from r. Fields missing
// from the document keep their default values.
func Read(r io.Reader) (*Config, error) {
	cfg := defaultCfg
	if err := yaml.NewDecoder(r).Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	cfg.load()
	return &cfg, nil
}

// Load returns the Config parsed from the given YAML files. If no file is
// given or the first one does not exist, the default config is returned. Any
// directories are expanded to the files they contain.
func Load(file ...string) (*Config, error) {
	log.Info("Loading config", "path", file)
	if len(file) == 0 {
		return Default(), nil
	}
	if _, err := os.Stat(file[0]); err != nil {
		log.Info("Config not found, using defaults", "path", file[0])
		return Default(), nil
	}
	r := byteutil.NewMultiFileReader(file...)
	defer r.Close()
	return Read(r)
}

func (cfg *Config) load() {
	expandValue(reflect.ValueOf(cfg).Elem())
	if cfg.TopicPrefix == "" {
		cfg.TopicPrefix = defaultCfg.TopicPrefix
	}
	cfg.MQTT.BirthWillTopic = ReplaceBase(cfg.TopicPrefix, cfg.MQTT.BirthWillTopic)
	cfg.Bridge.InputTopic = ReplaceBase(cfg.TopicPrefix, cfg.Bridge.InputTopic)
	cfg.Bridge.OutputPrefix = ReplaceBase(cfg.TopicPrefix, cfg.Bridge.OutputPrefix)
	log.Debug("Topics", "input", cfg.Bridge.InputTopic, "output", cfg.Bridge.OutputPrefix)
}

// Units returns the units conversions should target: Targets if set,
// otherwise every unit.
func (cfg *Config) Units() []temperature.Unit {
	if len(cfg.Targets) > 0 {
		return cfg.Targets
	}
	return temperature.Units()
}

// ReplaceBase replaces a "~" at the start or end of topic with base.
func ReplaceBase(base, topic string) string {
	if s, ok := strings.CutPrefix(topic, "~/"); ok {
		topic = base + "/" + s
	}
	if s, ok := strings.CutSuffix(topic, "/~"); ok {
		topic = s + "/" + base
	}
	return topic
}

func expandValue(v reflect.Value) {
	switch v.Kind() {
	case reflect.String:
		if v.CanSet() {
			v.SetString(Expand(v.String()))
		}
	case reflect.Struct:
		n := v.NumField()
		for i := 0; i < n; i++ {
			expandValue(v.Field(i))
		}
	case reflect.Slice, reflect.Array:
		n := v.Len()
		for i := 0; i < n; i++ {
			expandValue(v.Index(i))
		}
	case reflect.Pointer:
		if !v.IsNil() {
			expandValue(v.Elem())
		}
	}
}

// Expand replaces ${var} or $var in s according to the environment, and
// replaces "!secret name" with the contents of the secret file.
func Expand(s string) string {
	if secret, ok := secrets.CutPrefix(s); ok {
		return secrets.MustRead(secret, "")
	}
	return os.ExpandEnv(s)
}

// Write writes the YAML encoding of cfg to w.
func (cfg *Config) Write(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close()

	enc.SetIndent(2)
	return enc.Encode(cfg)
}
