// Package config loads service configuration with precedence
// flags > env > config file > defaults.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable: CONSULTA_HTTP_ADDR sets
// http.addr.
const EnvPrefix = "CONSULTA"

// Config is the full service configuration.
type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	HTTP     HTTPConfig     `mapstructure:"http"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Log      LogConfig      `mapstructure:"log"`
}

// DatabaseConfig holds store settings.
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// HTTPConfig holds API server settings.
type HTTPConfig struct {
	Addr       string `mapstructure:"addr"`
	CORSOrigin string `mapstructure:"cors_origin"`
	// MaxLimit caps the "limite" of filtered queries. 0 disables the cap.
	MaxLimit int `mapstructure:"max_limit"`
}

// AuthConfig holds token and login settings.
type AuthConfig struct {
	JWTSecret          string        `mapstructure:"jwt_secret"`
	TokenTTL           time.Duration `mapstructure:"token_ttl"`
	LoginRatePerMinute int           `mapstructure:"login_rate_per_minute"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration. explicitPath names a config file (YAML, TOML or
// JSON by extension); when empty only env and defaults apply.
func Load(explicitPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if explicitPath != "" {
		v.SetConfigFile(explicitPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("database.path", "consulta.db")

	v.SetDefault("http.addr", ":8000")
	v.SetDefault("http.cors_origin", "http://localhost:5173")
	v.SetDefault("http.max_limit", 0)

	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.token_ttl", "30m")
	v.SetDefault("auth.login_rate_per_minute", 30)

	v.SetDefault("log.level", "INFO")
	v.SetDefault("log.format", "text")
}

func (c *Config) validate() error {
	var errs []error
	if c.Database.Path == "" {
		errs = append(errs, errors.New("database.path must not be empty"))
	}
	if c.HTTP.MaxLimit < 0 {
		errs = append(errs, fmt.Errorf("http.max_limit must be >= 0, got %d", c.HTTP.MaxLimit))
	}
	if c.Auth.TokenTTL <= 0 {
		errs = append(errs, fmt.Errorf("auth.token_ttl must be positive, got %s", c.Auth.TokenTTL))
	}
	if c.Auth.LoginRatePerMinute < 0 {
		errs = append(errs, fmt.Errorf("auth.login_rate_per_minute must be >= 0, got %d", c.Auth.LoginRatePerMinute))
	}
	return errors.Join(errs...)
}

// RequireSecret reports an error when no JWT secret is configured. Only
// commands that issue or check tokens call it.
func (c *Config) RequireSecret() error {
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("auth.jwt_secret is required (set %s_AUTH_JWT_SECRET)", EnvPrefix)
	}
	return nil
}
