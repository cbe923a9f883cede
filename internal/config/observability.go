package config

import (
	"fmt"

	"github.com/rs/zerolog"
)

type ObservabilityConfig struct {
	ServiceName string          `koanf:"service_name"`
	Environment string          `koanf:"environment"`
	Logging     LoggingConfig   `koanf:"logging"`
	NewRelic    *NewRelicConfig `koanf:"new_relic"`
}

// LoggingConfig controls log level, format and optional file rotation.
type LoggingConfig struct {
	Level      string `koanf:"level"`
	Format     string `koanf:"format"`
	File       string `koanf:"file"`
	MaxSizeMB  int    `koanf:"max_size_mb"`
	MaxBackups int    `koanf:"max_backups"`
	MaxAgeDays int    `koanf:"max_age_days"`
	Compress   bool   `koanf:"compress"`
}

type NewRelicConfig struct {
	LicenseKey string `koanf:"license_key"`
	AppLogging bool   `koanf:"app_logging"`
}

func DefaultObservabilityConfig() *ObservabilityConfig {
	return &ObservabilityConfig{
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "console",
			MaxSizeMB:  100,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
	}
}

func (o *ObservabilityConfig) Validate() error {
	if _, err := zerolog.ParseLevel(o.Logging.Level); err != nil {
		return fmt.Errorf("logging level %q: %w", o.Logging.Level, err)
	}
	switch o.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging format must be console or json, got %q", o.Logging.Format)
	}
	if o.NewRelic != nil && o.NewRelic.LicenseKey != "" && len(o.NewRelic.LicenseKey) != 40 {
		return fmt.Errorf("new relic license key must be 40 characters")
	}
	return nil
}

// NewRelicEnabled reports whether an APM license key is configured.
func (o *ObservabilityConfig) NewRelicEnabled() bool {
	return o != nil && o.NewRelic != nil && o.NewRelic.LicenseKey != ""
}
