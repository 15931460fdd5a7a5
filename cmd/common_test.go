package cmd

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lone-faerie/tempconv/bridge"
	"github.com/lone-faerie/tempconv/config"
	"github.com/lone-faerie/tempconv/internal/cleanup"
	"github.com/lone-faerie/tempconv/log"
	"github.com/lone-faerie/tempconv/mock"
)

func TestMaybeWithPort(t *testing.T) {
	tests := []struct {
		addr string
		port int
		want string
	}{
		{"localhost", 1883, "localhost:1883"},
		{"127.0.0.1", 1883, "127.0.0.1:1883"},
		{"tcp://broker:1884", 1883, "tcp://broker:1884"},
		{"broker", -1, "broker"},
	}
	for _, tt := range tests {
		if got := maybeWithPort(tt.addr, tt.port); got != tt.want {
			t.Errorf("maybeWithPort(%q, %d) = %q, wanted %q", tt.addr, tt.port, got, tt.want)
		}
	}
}

func TestFindConfig(t *testing.T) {
	assert.Equal(t, []string{"a.yaml"}, findConfig([]string{"a.yaml"}))

	t.Setenv("TEMPCONV_CONFIG_PATH", "a.yaml,conf.d")
	assert.Equal(t, []string{"a.yaml", "conf.d"}, findConfig(nil))

	os.Unsetenv("TEMPCONV_CONFIG_PATH")
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	assert.Equal(t, []string{filepath.Join("/xdg", "tempconv.yaml")}, findConfig(nil))

	os.Unsetenv("XDG_CONFIG_HOME")
	t.Setenv("HOME", "/home/user")
	assert.Equal(t, []string{filepath.Join("/home/user", ".config", "tempconv.yaml")}, findConfig(nil))
}

func TestSetLogHandlerFile(t *testing.T) {
	defer log.SetTextHandler(os.Stderr)

	path := filepath.Join(t.TempDir(), "tempconv.log")
	cfg := config.Default()
	cfg.Log.Output = path
	cfg.Log.Format = "json"
	cfg.Log.Level = log.LevelInfo

	setLogHandler(cfg, os.Stderr)
	log.Info("hello", "unit", "kelvin")
	cleanup.Cleanup()

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"msg":"hello"`)
	assert.Contains(t, string(b), `"unit":"kelvin"`)
}

func TestBridgeFlags(t *testing.T) {
	opts := bridgeOptions{
		brokerOptions: brokerOptions{
			rootOptions: &rootOptions{},
			broker:      "localhost",
			port:        1884,
			username:    "user",
		},
		inputTopic:  "~/in",
		metricsAddr: ":9090",
	}
	cfg := config.Default()
	opts.apply(cfg)

	assert.Equal(t, "localhost:1884", cfg.MQTT.Broker)
	assert.Equal(t, "user", cfg.MQTT.Username)
	assert.Equal(t, "tempconv/in", cfg.Bridge.InputTopic)
	assert.Equal(t, ":9090", cfg.Metrics.Addr)
	assert.Equal(t, "tempconv/output", cfg.Bridge.OutputPrefix)
}

func TestRunBridge(t *testing.T) {
	cfg := config.Default()
	client := mock.NewClient(cfg.MQTT.ClientOptions())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errc := make(chan error, 1)
	go func() { errc <- runBridge(ctx, cfg, bridge.WithClient(client)) }()

	require.Eventually(t, func() bool {
		return len(client.PublishedTo("tempconv/bridge/status")) > 0
	}, time.Second, 5*time.Millisecond)
	require.True(t, client.Deliver("tempconv/input", "0K"))
	cancel()

	select {
	case err := <-errc:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("bridge did not stop")
	}

	assert.Equal(t, []string{"-273.15 °C"}, client.PublishedTo("tempconv/output/")["tempconv/output/celsius"])
	assert.Equal(t, []string{"online", "offline"}, client.PublishedTo("tempconv/bridge/status")["tempconv/bridge/status"])
	assert.False(t, client.IsConnected())
}

func TestStopBridge(t *testing.T) {
	cfg := config.Default()
	cfg.MQTT.ClientID = "tempconv"

	opts := stopClientOptions(cfg)
	assert.False(t, opts.WillEnabled)
	assert.Equal(t, "tempconv-stop", opts.ClientID)
	assert.True(t, cfg.MQTT.BirthWillEnabled)

	client := mock.NewClient(opts)
	require.NoError(t, stopBridge(context.Background(), client, "tempconv/bridge/stop"))

	assert.Equal(t, map[string][]string{"tempconv/bridge/stop": {""}}, client.PublishedTo("tempconv/bridge/"))
	assert.False(t, client.IsConnected())
}
