// Package config provides a reusable loader for mcpkg configuration files
// and environment variables.
package config

import (
	"fmt"

	"github.com/spf13/viper"

	"mcpkg/internal/envutil"
	"mcpkg/internal/errkind"
)

// Config is the unified configuration for an mcpkg invocation. It mirrors
// the structure of the YAML files under cmd/mcpkg/config.
type Config struct {
	Providers map[string]ProviderConfig `mapstructure:"providers" json:"providers"`

	Download struct {
		Parallel int    `mapstructure:"parallel" json:"parallel"`
		Queue    int    `mapstructure:"queue" json:"queue"`
		Dir      string `mapstructure:"dir" json:"dir"`
		TimeoutS int    `mapstructure:"timeout_s" json:"timeout_s"`
	} `mapstructure:"download" json:"download"`

	Cache struct {
		Dir        string `mapstructure:"dir" json:"dir"`
		DefaultTTL int    `mapstructure:"default_ttl_s" json:"default_ttl_s"`
		LRUSize    int    `mapstructure:"lru_size" json:"lru_size"`
	} `mapstructure:"cache" json:"cache"`

	Logging LoggingConfig `mapstructure:"logging" json:"logging"`
}

// ProviderConfig overrides a built-in provider's default base URL, for
// mirrors or self-hosted instances.
type ProviderConfig struct {
	BaseURL string `mapstructure:"base_url" json:"base_url"`
}

// LoggingConfig controls internal/logging's zap setup.
type LoggingConfig struct {
	Level string `mapstructure:"level" json:"level"`
	File  string `mapstructure:"file" json:"file"`
}

// AppConfig holds the configuration loaded via Load or LoadFromEnv.
var AppConfig Config

// Load reads configuration files and merges any environment-specific
// overrides. The resulting configuration is stored in AppConfig and
// returned. If env is empty, only the default configuration is loaded.
func Load(env string) (*Config, error) {
	viper.SetConfigName("default")
	viper.AddConfigPath("cmd/mcpkg/config")
	viper.AddConfigPath("config")
	viper.SetConfigType("yaml")
	if err := viper.ReadInConfig(); err != nil {
		return nil, errkind.Wrap(errkind.IO, err, "load config")
	}

	if env != "" {
		viper.SetConfigName(env)
		if err := viper.MergeInConfig(); err != nil {
			return nil, errkind.Wrap(errkind.IO, err, fmt.Sprintf("merge %s config", env))
		}
	}

	viper.AutomaticEnv()

	if err := viper.Unmarshal(&AppConfig); err != nil {
		return nil, errkind.Wrap(errkind.Parse, err, "unmarshal config")
	}
	return &AppConfig, nil
}

// LoadFromEnv loads configuration using the MCPKG_ENV environment variable.
func LoadFromEnv() (*Config, error) {
	return Load(envutil.OrDefault("MCPKG_ENV", ""))
}
