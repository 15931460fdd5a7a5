// Command tempconv converts temperatures between Celsius, Fahrenheit and
// Kelvin, either one at a time or as an MQTT bridge.
package main

import (
	"errors"
	"os"

	"github.com/lone-faerie/tempconv/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		var exit *cmd.ExitError
		if errors.As(err, &exit) {
			os.Exit(exit.Code)
		}
		os.Exit(1)
	}
}
