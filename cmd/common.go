package cmd

import (
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lone-faerie/tempconv/config"
	"github.com/lone-faerie/tempconv/internal/cleanup"
	"github.com/lone-faerie/tempconv/log"
)

const fullDocsFooter = `Full documentation is available at:
https://pkg.go.dev/github.com/lone-faerie/tempconv`

// ExitError is an error that should cause the program to exit with the given code.
type ExitError struct {
	Err  error
	Code int
}

func (e *ExitError) Error() string {
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// findConfig returns paths if non-empty, otherwise the first defined value of
// $TEMPCONV_CONFIG_PATH, $XDG_CONFIG_HOME/tempconv.yaml or
// $HOME/.config/tempconv.yaml.
func findConfig(paths []string) []string {
	const defaultConfigFile = "tempconv.yaml"

	if len(paths) > 0 {
		return paths
	}

	if env, ok := os.LookupEnv("TEMPCONV_CONFIG_PATH"); ok {
		return strings.Split(env, ",")
	}

	if xdg, ok := os.LookupEnv("XDG_CONFIG_HOME"); ok {
		return []string{filepath.Join(xdg, defaultConfigFile)}
	}

	home, err := os.UserHomeDir()
	cobra.CheckErr(err)

	return []string{filepath.Join(home, ".config", defaultConfigFile)}
}

// loadConfig loads the config found by [findConfig]. A missing file is not an
// error.
func loadConfig(paths []string) (*config.Config, error) {
	cfg, err := config.Load(findConfig(paths)...)
	if err != nil {
		return nil, &ExitError{err, 1}
	}
	return cfg, nil
}

// brokerOptions holds the flags shared by the commands that connect to the
// MQTT broker.
type brokerOptions struct {
	*rootOptions

	broker   string
	port     int
	username string
	password string
	certFile string
	keyFile  string
}

func (opts *brokerOptions) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&opts.broker, "broker", "b", "", "MQTT broker address")
	cmd.Flags().IntVarP(&opts.port, "port", "p", 1883, "MQTT broker port")
	cmd.Flags().StringVar(&opts.username, "username", "", "MQTT client username")
	cmd.Flags().StringVar(&opts.password, "password", "", "MQTT client password")
	cmd.Flags().StringVar(&opts.certFile, "cert", "", "MQTT TLS certificate file (PEM encoded)")
	cmd.Flags().StringVar(&opts.keyFile, "key", "", "MQTT TLS private key file (PEM encoded)")

	cmd.MarkFlagFilename("cert", "pem", "crt")
	cmd.MarkFlagFilename("key", "pem", "key")
}

// apply overrides cfg with the flags that were set.
func (opts *brokerOptions) apply(cfg *config.Config) {
	if opts.broker != "" {
		cfg.MQTT.Broker = maybeWithPort(opts.broker, opts.port)
	}

	if opts.username != "" {
		cfg.MQTT.Username = opts.username
	}

	if opts.password != "" {
		cfg.MQTT.Password = opts.password
	}

	if opts.certFile != "" {
		cfg.MQTT.CertFile = opts.certFile
	}

	if opts.keyFile != "" {
		cfg.MQTT.KeyFile = opts.keyFile
	}
}

func maybeWithPort(addr string, port int) string {
	var hasPort bool

	if last := addr[len(addr)-1]; '0' <= last && last <= '9' {
		for _, c := range addr {
			switch {
			case c == ':':
				hasPort = true
			case '0' <= c && c <= '9':
			default:
				hasPort = false
			}
		}
	}

	if hasPort || port < 0 {
		return addr
	}

	return addr + ":" + strconv.Itoa(port)
}

func setLogHandler(cfg *config.Config, stderr io.Writer) {
	var w io.Writer

	switch strings.ToLower(cfg.Log.Output) {
	case "", "stderr":
		w = stderr
	case "stdout":
		w = os.Stdout
	case "discard":
		log.SetHandler(log.DiscardHandler)
		return
	default:
		f, err := os.OpenFile(cfg.Log.Output, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0o640)
		if err != nil {
			log.Error(
				"Unable to open log file, deferring to stderr",
				err,
				"path", cfg.Log.Output,
			)

			w = stderr

			break
		}

		w = f

		cleanup.Register(func() { f.Close() })
	}

	log.SetLogLevel(cfg.Log.Level)

	switch strings.ToLower(cfg.Log.Format) {
	case "json":
		log.SetJSONHandler(w)
	default:
		log.SetTextHandler(w)
	}
}
