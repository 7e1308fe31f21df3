package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config is the gorecord CLI configuration.
type Config struct {
	Language string `mapstructure:"language"`
	Unknown  string `mapstructure:"unknown"`
	Equality string `mapstructure:"equality"`
	Log      Log    `mapstructure:"log"`
}

// Log configures the zap logger.
type Log struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}

// Load reads gorecord.yaml from the working directory (or file when
// non-empty) and GORECORD_* environment variables on top of the defaults.
// A missing default config file is not an error.
func Load(v *viper.Viper, file string) (*Config, error) {
	if v == nil {
		v = viper.New()
	}
	v.SetDefault("language", "en")
	v.SetDefault("unknown", "strict")
	v.SetDefault("equality", "strict")
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.development", false)

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("gorecord")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("GORECORD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func validate(cfg *Config) error {
	switch cfg.Language {
	case "en", "ja":
	default:
		return fmt.Errorf("language must be en or ja, got: %s", cfg.Language)
	}
	switch cfg.Unknown {
	case "strict", "strip":
	default:
		return fmt.Errorf("unknown must be strict or strip, got: %s", cfg.Unknown)
	}
	switch cfg.Equality {
	case "strict", "lenient":
	default:
		return fmt.Errorf("equality must be strict or lenient, got: %s", cfg.Equality)
	}
	return nil
}
