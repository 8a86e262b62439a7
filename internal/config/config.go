// Package config handles loading and validating the application configuration
// from YAML files with environment variable substitution.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	domain "github.com/donaldgifford/asc-iap/pkg/types"
)

// Config is the top-level application configuration.
type Config struct {
	ASC     ASCConfig     `yaml:"asc"`
	Batch   BatchConfig   `yaml:"batch"`
	Server  ServerConfig  `yaml:"server"`
	Logging LoggingConfig `yaml:"logging"`
	Notify  NotifyConfig  `yaml:"notify"`
}

// ASCConfig defines App Store Connect credentials and transport settings.
type ASCConfig struct {
	KeyID          string          `yaml:"key_id"`
	IssuerID       string          `yaml:"issuer_id"`
	PrivateKeyPath string          `yaml:"private_key_path"`
	PrivateKey     string          `yaml:"private_key"`
	BaseURL        string          `yaml:"base_url"`
	Timeout        time.Duration   `yaml:"timeout"`
	UploadTimeout  time.Duration   `yaml:"upload_timeout"`
	RateLimit      RateLimitConfig `yaml:"rate_limit"`
}

// RateLimitConfig defines App Store Connect request pacing.
type RateLimitConfig struct {
	PerHour int64 `yaml:"per_hour"`
	Burst   int   `yaml:"burst"`
}

// PrivateKeyPEM returns the inline key, or the contents of PrivateKeyPath.
func (a *ASCConfig) PrivateKeyPEM() (string, error) {
	if a.PrivateKey != "" {
		return a.PrivateKey, nil
	}
	if a.PrivateKeyPath == "" {
		return "", errors.New("asc.private_key or asc.private_key_path is required")
	}
	data, err := os.ReadFile(a.PrivateKeyPath) //nolint:gosec // key path from trusted config
	if err != nil {
		return "", fmt.Errorf("reading private key: %w", err)
	}
	return string(data), nil
}

// BatchConfig defines the defaults applied to every batch run.
type BatchConfig struct {
	Locales       []string `yaml:"locales"`
	BaseTerritory string   `yaml:"base_territory"`
	ExcludeChina  *bool    `yaml:"exclude_china"` // default: true
}

// ExcludeChinaEnabled reports whether excluded territories are removed from
// availability by default.
func (b *BatchConfig) ExcludeChinaEnabled() bool {
	return b.ExcludeChina == nil || *b.ExcludeChina
}

// ServerConfig defines the Echo HTTP server settings.
type ServerConfig struct {
	Host         string        `yaml:"host"`
	Port         int           `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// NotifyConfig defines where batch run reports are sent.
type NotifyConfig struct {
	Discord DiscordConfig `yaml:"discord"`
}

// DiscordConfig defines Discord webhook settings. An empty URL disables it.
type DiscordConfig struct {
	WebhookURL string `yaml:"webhook_url"`
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json, pretty
}

// Load reads and parses a YAML config file, performing environment variable
// substitution and validation.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // config path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return Parse(data)
}

// Parse is Load for config already in memory.
func Parse(data []byte) (*Config, error) {
	// Expand environment variables in the YAML content.
	expanded := os.ExpandEnv(string(data))

	cfg := &Config{}
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}

	applyDefaults(cfg)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Default returns a config with only defaults applied. Commands that do not
// talk to App Store Connect use it when no file is given.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	applyASCDefaults(&cfg.ASC)
	applyBatchDefaults(&cfg.Batch)
	applyServerDefaults(&cfg.Server)
	applyLoggingDefaults(&cfg.Logging)
}

func applyASCDefaults(a *ASCConfig) {
	if a.BaseURL == "" {
		a.BaseURL = "https://api.appstoreconnect.apple.com"
	}
	if a.Timeout == 0 {
		a.Timeout = 30 * time.Second
	}
	if a.UploadTimeout == 0 {
		a.UploadTimeout = 60 * time.Second
	}
	applyRateLimitDefaults(&a.RateLimit)
}

func applyRateLimitDefaults(r *RateLimitConfig) {
	if r.PerHour == 0 {
		r.PerHour = 3600
	}
	if r.Burst == 0 {
		r.Burst = 10
	}
}

func applyBatchDefaults(b *BatchConfig) {
	if len(b.Locales) == 0 {
		b.Locales = []string{"en-US"}
	}
	if b.BaseTerritory == "" {
		b.BaseTerritory = "USA"
	}
}

func applyServerDefaults(s *ServerConfig) {
	if s.Host == "" {
		s.Host = "0.0.0.0"
	}
	if s.Port == 0 {
		s.Port = 8080
	}
	if s.ReadTimeout == 0 {
		s.ReadTimeout = 30 * time.Second
	}
	if s.WriteTimeout == 0 {
		s.WriteTimeout = 30 * time.Second
	}
}

func applyLoggingDefaults(l *LoggingConfig) {
	if l.Level == "" {
		l.Level = "info"
	}
	if l.Format == "" {
		l.Format = "text"
	}
}

func validate(cfg *Config) error {
	var errs []error

	if cfg.ASC.KeyID == "" {
		errs = append(errs, errors.New("asc.key_id is required"))
	}
	if cfg.ASC.IssuerID == "" {
		errs = append(errs, errors.New("asc.issuer_id is required"))
	}
	if cfg.ASC.PrivateKey == "" && cfg.ASC.PrivateKeyPath == "" {
		errs = append(errs, errors.New("asc.private_key or asc.private_key_path is required"))
	}
	if cfg.ASC.PrivateKey != "" && cfg.ASC.PrivateKeyPath != "" {
		errs = append(errs, errors.New("asc.private_key and asc.private_key_path are mutually exclusive"))
	}
	if cfg.ASC.RateLimit.PerHour < 0 || cfg.ASC.RateLimit.Burst < 0 {
		errs = append(errs, errors.New("asc.rate_limit values must not be negative"))
	}

	for _, loc := range cfg.Batch.Locales {
		if _, ok := domain.SupportedLocales[loc]; !ok {
			errs = append(errs, fmt.Errorf("batch.locales: unsupported locale %q", loc))
		}
	}

	if u := cfg.Notify.Discord.WebhookURL; u != "" &&
		!strings.HasPrefix(u, "https://") && !strings.HasPrefix(u, "http://") {
		errs = append(errs, fmt.Errorf("notify.discord.webhook_url must be an http(s) URL (got %q)", u))
	}

	switch strings.ToLower(cfg.Logging.Format) {
	case "text", "json", "pretty":
	default:
		errs = append(
			errs,
			fmt.Errorf("logging.format must be one of: text, json, pretty (got %q)", cfg.Logging.Format),
		)
	}

	return errors.Join(errs...)
}
