package config

import "github.com/lone-faerie/tempconv/log"

// LogConfig configures the process-wide logger.
type LogConfig struct {
	Level log.Level `yaml:"level"`
	// Output is "stderr" (default), "stdout", "discard" or a file path.
	Output string `yaml:"output,omitempty"`
	// Format is "text" (default) or "json".
	Format string `yaml:"format,omitempty"`
}

var defaultLog = LogConfig{
	Level: log.LevelWarn,
}
