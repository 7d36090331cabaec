package config

// Config represents the main configuration structure
type Config struct {
	Privacy PrivacyConfig `yaml:"privacy" mapstructure:"privacy"`
	Logging LoggingConfig `yaml:"logging" mapstructure:"logging"`
	Output  OutputConfig  `yaml:"output" mapstructure:"output"`
}

// PrivacyConfig controls which detectors run and how name heuristics are
// thresholded.
type PrivacyConfig struct {
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`

	// Categories lists enabled PII categories by name, or "all".
	Categories []string `yaml:"categories" mapstructure:"categories"`

	// MinNameConfidence is the lowest person-name tier that gets masked:
	// high, medium, or low. Structured categories are unaffected.
	MinNameConfidence string `yaml:"min_name_confidence" mapstructure:"min_name_confidence"`

	// Validate enables the post-hoc readability check on masked output.
	Validate bool `yaml:"validate" mapstructure:"validate"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"` // json or console
	File   struct {
		Enabled bool   `yaml:"enabled" mapstructure:"enabled"`
		Path    string `yaml:"path" mapstructure:"path"`
	} `yaml:"file" mapstructure:"file"`
}

// OutputConfig controls how detection reports are rendered.
type OutputConfig struct {
	Format string `yaml:"format" mapstructure:"format"` // text, json, or yaml
}

// GetDefaults returns a configuration with sensible defaults
func GetDefaults() *Config {
	cfg := &Config{
		Privacy: PrivacyConfig{
			Enabled:           true,
			Categories:        []string{"all"},
			MinNameConfidence: "medium",
			Validate:          true,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Output: OutputConfig{
			Format: "text",
		},
	}
	cfg.Logging.File.Path = "logs/kredact.log"
	return cfg
}
