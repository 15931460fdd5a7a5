package cmd

import (
	"context"
	_ "embed"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/lone-faerie/tempconv/bridge"
	"github.com/lone-faerie/tempconv/config"
	"github.com/lone-faerie/tempconv/internal/cleanup"
	"github.com/lone-faerie/tempconv/internal/observability"
	"github.com/lone-faerie/tempconv/log"
)

//go:embed help/bridge.md
var bridgeHelp string

type bridgeOptions struct {
	brokerOptions

	inputTopic  string
	metricsAddr string
}

// NewCmdBridge returns the [cobra.Command] used for running the MQTT bridge.
//
// Usage:
//
//	tempconv bridge [--config <path>]... [flags]
//
// Flags:
//
//	-b, --broker string         MQTT broker address
//	-p, --port int              MQTT broker port (default 1883)
//	    --username string       MQTT client username
//	    --password string       MQTT client password
//	    --cert string           MQTT TLS certificate file (PEM encoded)
//	    --key string            MQTT TLS private key file (PEM encoded)
//	    --input string          Topic to read temperature literals from
//	    --metrics-addr string   Address to serve Prometheus metrics on
func NewCmdBridge(root *rootOptions) *cobra.Command {
	opts := bridgeOptions{brokerOptions: brokerOptions{rootOptions: root}}

	cmd := &cobra.Command{
		Use:   "bridge [--config <path>]... [flags]",
		Short: "Run the MQTT conversion bridge",
		Long:  bridgeHelp,
		Example: `  tempconv bridge --config config.yaml
  tempconv bridge --broker 127.0.0.1:1883 --username tempconv --password p@55w0rd
  tempconv bridge --metrics-addr :9090`,
		GroupID: "commands",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.setup(cmd)
			if err != nil {
				return err
			}
			opts.apply(cfg)
			return runBridge(cmd.Context(), cfg)
		},
		DisableFlagsInUseLine: true,
	}

	cmd.Flags().SortFlags = false
	opts.addFlags(cmd)
	cmd.Flags().StringVar(&opts.inputTopic, "input", "", "Topic to read temperature literals from")
	cmd.Flags().StringVar(&opts.metricsAddr, "metrics-addr", "", "Address to serve Prometheus metrics on")

	return cmd
}

// apply overrides cfg with the flags that were set.
func (opts *bridgeOptions) apply(cfg *config.Config) {
	opts.brokerOptions.apply(cfg)

	if opts.inputTopic != "" {
		cfg.Bridge.InputTopic = config.ReplaceBase(cfg.TopicPrefix, opts.inputTopic)
	}

	if opts.metricsAddr != "" {
		cfg.Metrics.Addr = opts.metricsAddr
	}
}

func runBridge(ctx context.Context, cfg *config.Config, opts ...bridge.Option) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Metrics.Addr != "" {
		opts = append(opts, bridge.WithMetrics(observability.NewMetrics(nil)))
	}

	b := bridge.New(cfg, opts...)

	if cfg.Metrics.Addr != "" {
		srv := observability.NewServer(cfg.Metrics.Addr, nil, b.Connected)
		srv.Start()
		cleanup.Register(func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			srv.Shutdown(ctx)
		})
	}

	log.Debug("MQTT broker", "addr", cfg.MQTT.Broker)
	if err := b.Run(ctx); err != nil {
		log.Error("Bridge stopped", err)
		return &ExitError{err, 1}
	}
	log.Info("Done")
	return nil
}
