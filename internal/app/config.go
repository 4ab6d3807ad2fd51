package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	// DefinitionPaths are `.hcl` files or directories containing them.
	DefinitionPaths []string

	// TemplateName is the template to compile, "main" by default.
	TemplateName string

	LogFormat string
	LogLevel  string
}

// NewConfig validates a Config and applies defaults.
func NewConfig(cfg Config) (*Config, error) {
	if len(cfg.DefinitionPaths) == 0 {
		return nil, errors.New("at least one definition path is required")
	}
	if cfg.TemplateName == "" {
		cfg.TemplateName = "main"
	}
	return &cfg, nil
}
