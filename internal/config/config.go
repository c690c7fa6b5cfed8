package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config represents the complete application configuration.
type Config struct {
	Site     SiteConfig     `mapstructure:"site"`
	History  HistoryConfig  `mapstructure:"history"`
	Forecast ForecastConfig `mapstructure:"forecast"`
	Alerts   AlertsConfig   `mapstructure:"alerts"`
	Server   ServerConfig   `mapstructure:"server"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// SiteConfig holds the snapshot source and cycle cadence.
type SiteConfig struct {
	SnapshotPath    string        `mapstructure:"snapshot_path"`
	RefreshInterval time.Duration `mapstructure:"refresh_interval"`
	// ProducerCommand is the external batch process run by GET /run_ai,
	// e.g. ["python", "main.py"]. Empty disables the endpoint.
	ProducerCommand []string `mapstructure:"producer_command"`
}

// HistoryConfig holds the rolling window bound.
type HistoryConfig struct {
	Capacity int `mapstructure:"capacity"`
}

// ForecastConfig holds forecasting behavior configuration.
type ForecastConfig struct {
	Engine    string `mapstructure:"engine"` // "trend" or "moving_average"
	Steps     int    `mapstructure:"steps"`
	Window    int    `mapstructure:"window"`
	FitWindow int    `mapstructure:"fit_window"`
}

// AlertsConfig holds Telegram alert delivery configuration.
type AlertsConfig struct {
	Enabled        bool          `mapstructure:"enabled"`
	BotToken       string        `mapstructure:"bot_token"`
	ChatID         string        `mapstructure:"chat_id"`
	Cooldown       time.Duration `mapstructure:"cooldown"`
	MaxRetries     int           `mapstructure:"max_retries"`
	RetryDelayBase time.Duration `mapstructure:"retry_delay_base"`
}

// ServerConfig holds the HTTP API configuration.
type ServerConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	ListenAddr string `mapstructure:"listen_addr"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from file and environment variables.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetConfigFile(path)
	setDefaults(v)

	v.SetEnvPrefix("SAFESITE")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// setDefaults configures default values for all configuration options.
func setDefaults(v *viper.Viper) {
	v.SetDefault("site.snapshot_path", "data.json")
	v.SetDefault("site.refresh_interval", "3s")

	v.SetDefault("history.capacity", 60)

	v.SetDefault("forecast.engine", "trend")
	v.SetDefault("forecast.steps", 12)
	v.SetDefault("forecast.window", 5)
	v.SetDefault("forecast.fit_window", 30)

	v.SetDefault("alerts.enabled", false)
	v.SetDefault("alerts.cooldown", "2m")
	v.SetDefault("alerts.max_retries", 3)
	v.SetDefault("alerts.retry_delay_base", "1s")

	v.SetDefault("server.enabled", true)
	v.SetDefault("server.listen_addr", ":5001")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

// Validate checks that all configuration values are valid.
func (c *Config) Validate() error {
	if c.Site.SnapshotPath == "" {
		return fmt.Errorf("site.snapshot_path is required")
	}
	if c.Site.RefreshInterval < 1*time.Second || c.Site.RefreshInterval > 10*time.Second {
		return fmt.Errorf("site.refresh_interval must be between 1s and 10s")
	}

	if c.History.Capacity < 1 {
		return fmt.Errorf("history.capacity must be at least 1")
	}

	if c.Forecast.Engine != "trend" && c.Forecast.Engine != "moving_average" {
		return fmt.Errorf("forecast.engine must be one of: trend, moving_average")
	}
	if c.Forecast.Steps < 1 {
		return fmt.Errorf("forecast.steps must be at least 1")
	}
	if c.Forecast.Window < 1 {
		return fmt.Errorf("forecast.window must be at least 1")
	}
	if c.Forecast.FitWindow < 3 {
		return fmt.Errorf("forecast.fit_window must be at least 3")
	}

	if c.Alerts.Enabled {
		if c.Alerts.BotToken == "" {
			return fmt.Errorf("alerts.bot_token is required when alerts are enabled")
		}
		if c.Alerts.ChatID == "" {
			return fmt.Errorf("alerts.chat_id is required when alerts are enabled")
		}
	}
	if c.Alerts.Cooldown < 0 {
		return fmt.Errorf("alerts.cooldown must not be negative")
	}

	if c.Server.Enabled && c.Server.ListenAddr == "" {
		return fmt.Errorf("server.listen_addr is required when the server is enabled")
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("logging.level must be one of: debug, info, warn, error")
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[c.Logging.Format] {
		return fmt.Errorf("logging.format must be one of: json, console")
	}

	return nil
}
