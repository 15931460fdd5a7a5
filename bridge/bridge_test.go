package bridge

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lone-faerie/tempconv/config"
	"github.com/lone-faerie/tempconv/internal/observability"
	"github.com/lone-faerie/tempconv/mock"
	"github.com/lone-faerie/tempconv/temperature"
)

func testBridge(t *testing.T, opts ...Option) (*Bridge, *mock.Client, *observability.Metrics) {
	t.Helper()

	cfg := config.Default()
	client := mock.NewClient(cfg.MQTT.ClientOptions())
	m := observability.NewMetrics(prometheus.NewRegistry())

	b := New(cfg, append([]Option{WithClient(client), WithMetrics(m)}, opts...)...)

	ctx := context.Background()
	require.NoError(t, b.Connect(ctx))
	require.NoError(t, b.Start(ctx))
	return b, client, m
}

func TestBridgeStart(t *testing.T) {
	_, client, _ := testBridge(t)

	assert.True(t, client.IsConnected())
	assert.True(t, client.Subscribed("tempconv/input"))
	assert.True(t, client.Subscribed("tempconv/bridge/stop"))
	assert.Equal(t, map[string][]string{
		"tempconv/bridge/status": {"online"},
	}, client.PublishedTo("tempconv/bridge/"))
}

func TestBridgeConvert(t *testing.T) {
	_, client, m := testBridge(t)

	require.True(t, client.Deliver("tempconv/input", " 36.9C\n"))

	assert.Equal(t, map[string][]string{
		"tempconv/output/celsius":    {"36.9 °C"},
		"tempconv/output/fahrenheit": {"98.42 °F"},
		"tempconv/output/kelvin":     {"310.05 K"},
	}, client.PublishedTo("tempconv/output/"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Parses.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Conversions.WithLabelValues("celsius", "kelvin", "ok")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.Published.WithLabelValues("ok")))
}

func TestBridgeConvertUnits(t *testing.T) {
	b, client, _ := testBridge(t, WithUnits(temperature.Celsius))

	require.NoError(t, b.Convert("0K"))

	assert.Equal(t, map[string][]string{
		"tempconv/output/kelvin":  {"0 K"},
		"tempconv/output/celsius": {"-273.15 °C"},
	}, client.PublishedTo("tempconv/output/"))
}

func TestBridgeInvalidInput(t *testing.T) {
	var tests = []struct {
		in      string
		want    error
		outcome string
	}{
		{"", temperature.ErrEmpty, "empty"},
		{"abc", temperature.ErrInvalid, "invalid"},
		{"100X", temperature.ErrInvalid, "invalid"},
	}
	for _, tt := range tests {
		t.Run(tt.outcome+"/"+tt.in, func(t *testing.T) {
			b, client, m := testBridge(t)

			err := b.Convert(tt.in)
			assert.ErrorIs(t, err, tt.want)

			got := client.PublishedTo("tempconv/output/")
			require.Len(t, got, 1)
			require.Len(t, got["tempconv/output/error"], 1)
			assert.Equal(t, err.Error(), got["tempconv/output/error"][0])
			assert.Equal(t, 1.0, testutil.ToFloat64(m.Parses.WithLabelValues(tt.outcome)))
		})
	}
}

func TestBridgeStop(t *testing.T) {
	b, client, _ := testBridge(t)

	select {
	case <-b.Done():
		t.Fatal("bridge done before stop message")
	default:
	}

	require.True(t, client.Deliver("tempconv/bridge/stop", ""))

	select {
	case <-b.Done():
	case <-time.After(time.Second):
		t.Fatal("bridge not done after stop message")
	}

	b.Disconnect()
	assert.False(t, client.IsConnected())
	assert.Equal(t, []string{"online", "offline"}, client.PublishedTo("tempconv/bridge/status")["tempconv/bridge/status"])
}

func TestBridgeRun(t *testing.T) {
	cfg := config.Default()
	client := mock.NewClient(cfg.MQTT.ClientOptions())
	b := New(cfg, WithClient(client))

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- b.Run(ctx) }()

	require.Eventually(t, func() bool {
		return len(client.PublishedTo("tempconv/bridge/status")) > 0
	}, time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-errc:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
	assert.False(t, client.IsConnected())
}

func TestBridgeConnected(t *testing.T) {
	b, _, _ := testBridge(t)
	assert.True(t, b.Connected())

	b.Disconnect()
	assert.False(t, b.Connected())
}
