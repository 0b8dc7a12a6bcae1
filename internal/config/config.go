package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/almasov/flashdeck/internal/domain/entities"
	"github.com/almasov/flashdeck/internal/srs"
)

var ErrMissingEnvironmentVariables = errors.New("missing required environment variables")

// Config holds application configuration loaded from files and environment variables.
type Config struct {
	Env       string    `mapstructure:"env"`       // current application environment (local, dev, prod etc)
	DB        DB        `mapstructure:"database"`  // database configuration section
	Scheduler Scheduler `mapstructure:"scheduler"` // spaced-repetition policy section
	Digest    Digest    `mapstructure:"digest"`    // daily digest job section
}

// DB contains database-related configuration parameters.
type DB struct {
	URL             string        `mapstructure:"-"`                 // database connection string loaded from environment
	MaxConnections  int32         `mapstructure:"max_connections"`   // maximum number of open connections in the pool
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"` // maximum lifetime of a single connection
}

// DSN returns the database connection string if it is configured.
func (db DB) DSN() (string, error) {
	if db.URL == "" {
		return "", ErrMissingEnvironmentVariables
	}
	return db.URL, nil
}

// Scheduler configures the scheduling policy. AnchorTimezone is the civil
// time zone for "today" and day-boundary decisions; it has no default and
// must be set explicitly.
//
// The anchor is currently global: every item shares one zone. A per-user
// anchor would change due-set results for multi-region users and is an open
// product question, deliberately not resolved here.
type Scheduler struct {
	AnchorTimezone   string    `mapstructure:"anchor_timezone"`
	InitialIntervals Intervals `mapstructure:"initial_intervals"`
	Factors          Factors   `mapstructure:"factors"`
	MaximumInterval  int       `mapstructure:"maximum_interval"`
}

// Intervals are the first-review intervals in days, one per rating.
type Intervals struct {
	Again int `mapstructure:"again"`
	Hard  int `mapstructure:"hard"`
	Good  int `mapstructure:"good"`
	Easy  int `mapstructure:"easy"`
}

// Factors are the subsequent-review interval multipliers, one per rating.
type Factors struct {
	Again float64 `mapstructure:"again"`
	Hard  float64 `mapstructure:"hard"`
	Good  float64 `mapstructure:"good"`
	Easy  float64 `mapstructure:"easy"`
}

// Digest configures the periodic scheduling digest job.
type Digest struct {
	Enabled bool   `mapstructure:"enabled"`
	Spec    string `mapstructure:"spec"` // cron spec in the anchor zone
}

// Load reads configuration from config files and environment variables.
func Load() (*Config, error) {
	// Initialize Viper instance and base config options.
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")

	// Set default values for configuration keys.
	v.SetDefault("env", "local")
	v.SetDefault("database.max_connections", 20)
	v.SetDefault("database.max_conn_lifetime", "30s")
	v.SetDefault("scheduler.initial_intervals.again", 1)
	v.SetDefault("scheduler.initial_intervals.hard", 2)
	v.SetDefault("scheduler.initial_intervals.good", 4)
	v.SetDefault("scheduler.initial_intervals.easy", 7)
	v.SetDefault("scheduler.factors.again", 0.5)
	v.SetDefault("scheduler.factors.hard", 1.0)
	v.SetDefault("scheduler.factors.good", 1.2)
	v.SetDefault("scheduler.factors.easy", 1.3)
	v.SetDefault("scheduler.maximum_interval", 365)
	v.SetDefault("digest.enabled", true)
	v.SetDefault("digest.spec", "0 6 * * *")

	// Configure environment variable handling and key mapping.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // map nested keys to ENV style names
	v.AutomaticEnv()

	// Bind explicit environment variables to configuration keys.
	_ = v.BindEnv("database_url", "DATABASE_URL")
	_ = v.BindEnv("scheduler.anchor_timezone", "ANCHOR_TIMEZONE")
	_ = v.BindEnv("env", "APP_ENV")

	// Try to read configuration file if present.
	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	// Unmarshal configuration into strongly typed struct.
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	// Load sensitive values from environment variables.
	cfg.DB.URL = v.GetString("database_url")
	if cfg.DB.URL == "" {
		return nil, ErrMissingEnvironmentVariables
	}

	if cfg.Scheduler.AnchorTimezone == "" {
		return nil, fmt.Errorf("scheduler.anchor_timezone must be configured")
	}

	return &cfg, nil
}

// Policy builds and validates the scheduling policy from the loaded config.
func (c *Config) Policy() (srs.Policy, error) {
	anchor, err := entities.ParseAnchorZone(c.Scheduler.AnchorTimezone)
	if err != nil {
		return srs.Policy{}, fmt.Errorf("anchor timezone: %w", err)
	}

	p := srs.Policy{
		InitialAgain:    c.Scheduler.InitialIntervals.Again,
		InitialHard:     c.Scheduler.InitialIntervals.Hard,
		InitialGood:     c.Scheduler.InitialIntervals.Good,
		InitialEasy:     c.Scheduler.InitialIntervals.Easy,
		FactorAgain:     c.Scheduler.Factors.Again,
		FactorHard:      c.Scheduler.Factors.Hard,
		FactorGood:      c.Scheduler.Factors.Good,
		FactorEasy:      c.Scheduler.Factors.Easy,
		MaximumInterval: c.Scheduler.MaximumInterval,
		Anchor:          anchor,
	}

	if err := p.Validate(); err != nil {
		return srs.Policy{}, err
	}

	return p, nil
}
