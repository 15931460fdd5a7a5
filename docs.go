// Package tempconv converts temperatures between Celsius, Fahrenheit and Kelvin.
//
// The conversion engine lives in [github.com/lone-faerie/tempconv/temperature].
// The tempconv command converts a single literal such as "36.9C" or "98.6 °F",
// and "tempconv bridge" converts literals published to an MQTT broker.
//
// Configuration can be loaded from multiple YAML files, including from directories.
// If no config file is specified, the default path(s) will be determined by the first
// defined value of $TEMPCONV_CONFIG_PATH, $XDG_CONFIG_HOME/tempconv.yaml, or $HOME/.config/tempconv.yaml.
// In the case of $TEMPCONV_CONFIG_PATH, the value may be a comma-separated list of paths. If none of
// these files exist, the default configuration will be used, which looks for the following
// environment variables:
//
//   - broker:   $TEMPCONV_BROKER_ADDRESS
//   - username: $TEMPCONV_BROKER_USERNAME
//   - password: $TEMPCONV_BROKER_PASSWORD
//
// Full documentation is available at:
// https://pkg.go.dev/github.com/lone-faerie/tempconv
package tempconv
