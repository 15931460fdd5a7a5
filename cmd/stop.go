package cmd

import (
	"context"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/spf13/cobra"

	"github.com/lone-faerie/tempconv/config"
	"github.com/lone-faerie/tempconv/log"
)

const stopTimeout = 10 * time.Second

// NewCmdStop returns the [cobra.Command] used for stopping a running bridge by
// publishing to its stop topic, <topic_prefix>/bridge/stop.
//
// Usage:
//
//	tempconv stop [flags]
//
// Flags:
//
//	-b, --broker string     MQTT broker address
//	-p, --port int          MQTT broker port (default 1883)
//	    --username string   MQTT client username
//	    --password string   MQTT client password
//	    --cert string       MQTT TLS certificate file (PEM encoded)
//	    --key string        MQTT TLS private key file (PEM encoded)
func NewCmdStop(root *rootOptions) *cobra.Command {
	opts := brokerOptions{rootOptions: root}

	cmd := &cobra.Command{
		Use:     "stop",
		Short:   "Stop a running bridge",
		GroupID: "commands",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.setup(cmd)
			if err != nil {
				return err
			}
			opts.apply(cfg)

			ctx, cancel := context.WithTimeout(cmd.Context(), stopTimeout)
			defer cancel()

			if err := stopBridge(ctx, mqtt.NewClient(stopClientOptions(cfg)), cfg.TopicPrefix+"/bridge/stop"); err != nil {
				return &ExitError{err, 1}
			}
			return nil
		},
	}

	cmd.Flags().SortFlags = false
	opts.addFlags(cmd)

	return cmd
}

// stopClientOptions returns the options of a short-lived client that neither
// takes over the bridge's session nor triggers its will message.
func stopClientOptions(cfg *config.Config) *mqtt.ClientOptions {
	m := cfg.MQTT
	m.BirthWillEnabled = false
	if m.ClientID != "" {
		m.ClientID += "-stop"
	}
	return m.ClientOptions()
}

func stopBridge(ctx context.Context, client mqtt.Client, topic string) error {
	if err := waitToken(ctx, client.Connect()); err != nil {
		return err
	}
	defer client.Disconnect(250)

	log.Debug("Stopping bridge", "topic", topic)
	return waitToken(ctx, client.Publish(topic, 1, false, []byte{}))
}

func waitToken(ctx context.Context, t mqtt.Token) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.Done():
		return t.Error()
	}
}
