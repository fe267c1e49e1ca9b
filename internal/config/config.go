// Package config loads service configuration from .env, an optional config
// file, and the environment.
package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/saferoute/backend/internal/domain"
	"github.com/saferoute/backend/internal/risk"
)

// Config holds the full application configuration.
type Config struct {
	Port        string         `mapstructure:"port"`
	Env         string         `mapstructure:"go_env"`
	DatabaseURL string         `mapstructure:"database_url"`
	Incident    IncidentConfig `mapstructure:"incident"`
	Risk        RiskConfig     `mapstructure:"risk"`
	Scoring     ScoringConfig  `mapstructure:"scoring"`
	Zone        ZoneConfig     `mapstructure:"zone"`
	Log         LogConfig      `mapstructure:"log"`
}

// IncidentConfig configures where incidents come from.
type IncidentConfig struct {
	SourceSRID int    `mapstructure:"source_srid"`
	FeedPath   string `mapstructure:"feed_path"`
}

// RiskConfig holds the route-safety policy constants.
type RiskConfig struct {
	ProximityRadiusKm float64 `mapstructure:"proximity_radius_km"`
	CorridorRadiusKm  float64 `mapstructure:"corridor_radius_km"`
	ModerateThreshold int     `mapstructure:"moderate_threshold"`
	HighThreshold     int     `mapstructure:"high_threshold"`
}

// ScoringConfig bounds parallel route scoring.
type ScoringConfig struct {
	Workers int `mapstructure:"workers"`
}

// ZoneConfig controls zone snapshot maintenance.
type ZoneConfig struct {
	RefreshInterval time.Duration `mapstructure:"refresh_interval"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from .env, config.yaml and the environment.
// Nested keys map to upper-case environment names, e.g. risk.high_threshold
// is RISK_HIGH_THRESHOLD.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, eris.Wrap(err, "config: load .env")
	}

	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("port", "8080")
	v.SetDefault("go_env", "development")
	v.SetDefault("database_url", "")
	v.SetDefault("incident.source_srid", 32610)
	v.SetDefault("incident.feed_path", "")
	v.SetDefault("risk.proximity_radius_km", risk.DefaultProximityRadiusKm)
	v.SetDefault("risk.corridor_radius_km", risk.DefaultCorridorRadiusKm)
	v.SetDefault("risk.moderate_threshold", risk.DefaultModerateThreshold)
	v.SetDefault("risk.high_threshold", risk.DefaultHighThreshold)
	v.SetDefault("scoring.workers", 4)
	v.SetDefault("zone.refresh_interval", "0s")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Policy converts the risk settings into an evaluation policy.
func (c *Config) Policy() risk.Policy {
	return risk.Policy{
		ProximityRadiusKm: c.Risk.ProximityRadiusKm,
		CorridorRadiusKm:  c.Risk.CorridorRadiusKm,
		Classifier: risk.Classifier{
			ModerateThreshold: c.Risk.ModerateThreshold,
			HighThreshold:     c.Risk.HighThreshold,
		},
	}
}

// Validate rejects settings the service cannot run with.
func (c *Config) Validate() error {
	if err := c.Policy().Validate(); err != nil {
		return eris.Wrap(err, "config: risk policy")
	}
	if c.Scoring.Workers < 1 {
		return eris.Wrapf(domain.ErrInvalidArgument, "config: scoring.workers must be at least 1, got %d", c.Scoring.Workers)
	}
	if c.Zone.RefreshInterval < 0 {
		return eris.Wrapf(domain.ErrInvalidArgument, "config: zone.refresh_interval must not be negative, got %s", c.Zone.RefreshInterval)
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
