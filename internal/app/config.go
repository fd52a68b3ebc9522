package app

import "fmt"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	// GraphPath points at a .hcl graph document, or a directory holding
	// exactly one.
	GraphPath string
	// Requested lists the node indices to evaluate; empty means the
	// graph's sinks.
	Requested []int
	// Runs is how many times to evaluate the graph against the same
	// cache, demonstrating incremental reuse.
	Runs int
	// LogLevel is one of debug, info, warn, error.
	LogLevel string
	// LogFormat is text or json.
	LogFormat string
}

// NewConfig validates a configuration and applies defaults.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.GraphPath == "" {
		return nil, fmt.Errorf("graph path must not be empty")
	}
	if cfg.Runs <= 0 {
		cfg.Runs = 1
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}
	for _, idx := range cfg.Requested {
		if idx < 0 {
			return nil, fmt.Errorf("requested node index %d is negative", idx)
		}
	}
	return &cfg, nil
}
