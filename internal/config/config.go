package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application.
type Config struct {
	Server    Server    `mapstructure:"server" yaml:"server"`
	Database  Database  `mapstructure:"database" yaml:"database"`
	Logger    Logger    `mapstructure:"logger" yaml:"logger"`
	Stats     Stats     `mapstructure:"stats" yaml:"stats"`
	Reconcile Reconcile `mapstructure:"reconcile" yaml:"reconcile"`
	Client    Client    `mapstructure:"client" yaml:"client"`
}

// Server holds the configuration for the web server.
type Server struct {
	Port int    `mapstructure:"port" yaml:"port"`
	Mode string `mapstructure:"mode" yaml:"mode"` // gin mode: debug, release or test
}

// Database holds the configuration for the database.
type Database struct {
	Driver          string        `mapstructure:"driver" yaml:"driver"` // "sqlite" or "mysql"
	DSN             string        `mapstructure:"dsn" yaml:"dsn"`
	MaxOpenConns    int           `mapstructure:"max_open_conns" yaml:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns" yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime" yaml:"conn_max_lifetime"`
}

// Logger holds the configuration for the logger.
type Logger struct {
	Level      string `mapstructure:"level" yaml:"level"`
	Format     string `mapstructure:"format" yaml:"format"`
	File       string `mapstructure:"file" yaml:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb" yaml:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days" yaml:"max_age_days"`
}

// Stats holds the configuration for statistics queries.
type Stats struct {
	Timezone    string `mapstructure:"timezone" yaml:"timezone"`
	RecentLimit int    `mapstructure:"recent_limit" yaml:"recent_limit"`
}

// Reconcile holds the configuration for the periodic method statistics rebuild.
type Reconcile struct {
	Enabled  bool   `mapstructure:"enabled" yaml:"enabled"`
	Schedule string `mapstructure:"schedule" yaml:"schedule"`
}

// Client holds the configuration for the journal API client used by journalctl.
type Client struct {
	BaseURL        string        `mapstructure:"base_url" yaml:"base_url"`
	Timeout        time.Duration `mapstructure:"timeout" yaml:"timeout"`
	RateLimit      float64       `mapstructure:"rate_limit" yaml:"rate_limit"`
	RateLimitBurst int           `mapstructure:"rate_limit_burst" yaml:"rate_limit_burst"`
}

// Location resolves the configured stats timezone, falling back to UTC.
func (s Stats) Location() (*time.Location, error) {
	if s.Timezone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid stats timezone %q: %w", s.Timezone, err)
	}
	return loc, nil
}

// Default returns the configuration used when no file or environment overrides are present.
func Default() Config {
	return Config{
		Server:   Server{Port: 5050, Mode: "release"},
		Database: Database{Driver: "sqlite", DSN: "journal.db", MaxOpenConns: 10, MaxIdleConns: 5, ConnMaxLifetime: time.Hour},
		Logger:   Logger{Level: "info", Format: "console", MaxSizeMB: 100, MaxBackups: 5, MaxAgeDays: 30},
		Stats:    Stats{Timezone: "UTC", RecentLimit: 5},
		Reconcile: Reconcile{
			Enabled:  false,
			Schedule: "@every 1h",
		},
		Client: Client{BaseURL: "http://localhost:5050/api", Timeout: 10 * time.Second, RateLimit: 10, RateLimitBurst: 5},
	}
}

// LoadConfig reads configuration from file or environment variables.
// A missing config file is not an error; defaults and JOURNAL_* variables apply.
func LoadConfig(path string) (config Config, err error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config") // name of config file (without extension)
	v.SetConfigType("yml")

	// Allow environment variables to override config file
	v.SetEnvPrefix("JOURNAL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v, Default())

	if err = v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return config, fmt.Errorf("read config: %w", err)
		}
		err = nil
	}

	if err = v.Unmarshal(&config); err != nil {
		return config, fmt.Errorf("decode config: %w", err)
	}
	return config, nil
}

func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault("server.port", d.Server.Port)
	v.SetDefault("server.mode", d.Server.Mode)
	v.SetDefault("database.driver", d.Database.Driver)
	v.SetDefault("database.dsn", d.Database.DSN)
	v.SetDefault("database.max_open_conns", d.Database.MaxOpenConns)
	v.SetDefault("database.max_idle_conns", d.Database.MaxIdleConns)
	v.SetDefault("database.conn_max_lifetime", d.Database.ConnMaxLifetime)
	v.SetDefault("logger.level", d.Logger.Level)
	v.SetDefault("logger.format", d.Logger.Format)
	v.SetDefault("logger.file", d.Logger.File)
	v.SetDefault("logger.max_size_mb", d.Logger.MaxSizeMB)
	v.SetDefault("logger.max_backups", d.Logger.MaxBackups)
	v.SetDefault("logger.max_age_days", d.Logger.MaxAgeDays)
	v.SetDefault("stats.timezone", d.Stats.Timezone)
	v.SetDefault("stats.recent_limit", d.Stats.RecentLimit)
	v.SetDefault("reconcile.enabled", d.Reconcile.Enabled)
	v.SetDefault("reconcile.schedule", d.Reconcile.Schedule)
	v.SetDefault("client.base_url", d.Client.BaseURL)
	v.SetDefault("client.timeout", d.Client.Timeout)
	v.SetDefault("client.rate_limit", d.Client.RateLimit)            // requests per second
	v.SetDefault("client.rate_limit_burst", d.Client.RateLimitBurst) // burst size
}

// Save writes the configuration as YAML to path.
func (c Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
