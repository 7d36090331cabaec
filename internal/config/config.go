package config

import (
	"fmt"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/hanmaum/kredact/internal/pii"
	"github.com/spf13/viper"
)

// Load loads configuration from file and environment variables
func Load(configPath string) (*Config, error) {
	config := GetDefaults()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath("/etc/kredact/")
	viper.AddConfigPath("$HOME/.kredact/")

	// Environment variable overrides
	viper.SetEnvPrefix("KREDACT")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Use specific config file if provided
	if configPath != "" {
		viper.SetConfigFile(configPath)
	}

	if err := viper.ReadInConfig(); err != nil {
		// Config file not found is not an error - we'll use defaults
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if err := viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// validateConfig validates the loaded configuration
func validateConfig(config *Config) error {
	for _, name := range config.Privacy.Categories {
		if name == "all" {
			continue
		}
		if _, err := pii.ParseCategory(name); err != nil {
			return err
		}
	}

	if _, err := pii.ParseConfidence(config.Privacy.MinNameConfidence); err != nil {
		return err
	}

	switch config.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", config.Logging.Level)
	}

	if config.Logging.Format != "json" && config.Logging.Format != "console" {
		return fmt.Errorf("invalid log format: %s (must be json or console)", config.Logging.Format)
	}

	switch config.Output.Format {
	case "text", "json", "yaml":
	default:
		return fmt.Errorf("invalid output format: %s (must be text, json, or yaml)", config.Output.Format)
	}

	return nil
}

// EngineOptions translates the privacy section into engine options.
func (c *Config) EngineOptions() (pii.Options, error) {
	opts := pii.Options{}

	minTier, err := pii.ParseConfidence(c.Privacy.MinNameConfidence)
	if err != nil {
		return opts, err
	}
	opts.MinNameConfidence = minTier

	// Masking disabled entirely: no category is active, text passes through.
	if !c.Privacy.Enabled {
		opts.EnabledCategories = map[pii.Category]bool{}
		return opts, nil
	}

	all := false
	enabled := make(map[pii.Category]bool)
	for _, name := range c.Privacy.Categories {
		if name == "all" {
			all = true
			continue
		}
		cat, err := pii.ParseCategory(name)
		if err != nil {
			return opts, err
		}
		enabled[cat] = true
	}
	if !all {
		opts.EnabledCategories = enabled
	}

	return opts, nil
}

// Watch starts watching the configuration file for changes
func Watch(config *Config, callback func(*Config)) error {
	viper.WatchConfig()
	viper.OnConfigChange(func(e fsnotify.Event) {
		newConfig := &Config{}
		if err := viper.Unmarshal(newConfig); err != nil {
			// Log error but don't crash
			return
		}

		if err := validateConfig(newConfig); err != nil {
			// Log error but don't crash
			return
		}

		callback(newConfig)
	})

	return nil
}
