package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	// Path is a task file or a directory searched recursively for task files.
	Path string

	LogFormat string
	LogLevel  string
}

// NewConfig validates the given configuration.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.Path == "" {
		return nil, errors.New("Path is a required configuration field and cannot be empty")
	}

	return &cfg, nil
}
