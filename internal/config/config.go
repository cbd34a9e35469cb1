// Package config loads faq-catalog settings from flags, environment,
// an optional YAML file and built-in defaults, in that order of priority.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable, e.g. FAQ_CATALOG_DB.
const EnvPrefix = "FAQ_CATALOG"

// Output formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatText = "text"
)

// PageSize holds the fixed page sizes of the two list views.
type PageSize struct {
	Browse int `mapstructure:"browse"`
	Table  int `mapstructure:"table"`
}

// Config holds resolved settings.
type Config struct {
	DBPath   string   `mapstructure:"db"`
	LogLevel string   `mapstructure:"log_level"`
	Actor    string   `mapstructure:"actor"`
	Format   string   `mapstructure:"format"`
	PageSize PageSize `mapstructure:"page_size"`
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("db", "")
	v.SetDefault("log_level", "warn")
	v.SetDefault("actor", "")
	v.SetDefault("format", FormatJSON)
	v.SetDefault("page_size.browse", 9)
	v.SetDefault("page_size.table", 15)
}

// Load reads configuration into a Config. cfgFile may be empty, in which case
// ./faq-catalog.yaml and ~/.config/faq-catalog/config.yaml are tried.
// A missing config file is not an error.
func Load(v *viper.Viper, cfgFile string) (*Config, error) {
	SetDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("faq-catalog")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "faq-catalog"))
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.ResolveDefaults(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ResolveDefaults fills derived values and validates the rest.
func (c *Config) ResolveDefaults() error {
	if c.DBPath == "" {
		home, _ := os.UserHomeDir()
		c.DBPath = filepath.Join(home, ".faq-catalog", "catalog.db")
	}
	if c.Actor == "" {
		c.Actor = os.Getenv("USER")
	}
	if c.Actor == "" {
		c.Actor = "staff"
	}

	c.Format = strings.ToLower(c.Format)
	switch c.Format {
	case FormatJSON, FormatYAML, FormatText:
	default:
		return fmt.Errorf("unsupported format %q (use json, yaml or text)", c.Format)
	}

	if c.PageSize.Browse <= 0 || c.PageSize.Table <= 0 {
		return fmt.Errorf("page sizes must be positive (browse=%d, table=%d)", c.PageSize.Browse, c.PageSize.Table)
	}
	return nil
}
