package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the overall application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Clock    ClockConfig    `yaml:"clock"`
	Manager  ManagerConfig  `yaml:"manager"`
	Photo    PhotoConfig    `yaml:"photo"`
	Monitor  MonitorConfig  `yaml:"monitor"`
}

// ServerConfig holds the kiosk HTTP server configuration.
type ServerConfig struct {
	Port                  int     `yaml:"port"`
	RateLimitPerSec       float64 `yaml:"rate_limit_per_sec"`
	RateLimitBurst        int     `yaml:"rate_limit_burst"`
	ReportCacheTTLSeconds int     `yaml:"report_cache_ttl_seconds"`
}

// DatabaseConfig holds the database connection configuration. The kiosk runs
// on a local SQLite file by default; postgres is available for back-office
// deployments that consolidate several tablets.
type DatabaseConfig struct {
	Driver                 string `yaml:"driver"` // "sqlite" (default) or "postgres"
	DSN                    string `yaml:"dsn"`
	MaxOpenConns           int    `yaml:"max_open_conns"`
	MaxIdleConns           int    `yaml:"max_idle_conns"`
	ConnMaxLifetimeMinutes int    `yaml:"conn_max_lifetime_minutes"`
}

// ClockConfig holds the shift lifecycle policy knobs.
type ClockConfig struct {
	CooldownMinutes       int `yaml:"cooldown_minutes"`
	MinShiftMinutes       int `yaml:"min_shift_minutes"`
	WarnShiftHours        int `yaml:"warn_shift_hours"`
	MaxShiftHours         int `yaml:"max_shift_hours"`
	BreakThresholdMinutes int `yaml:"break_threshold_minutes"`
	BreakMinutes          int `yaml:"break_minutes"`
}

// ManagerConfig holds the manager PIN settings. PINHash is a bcrypt hash of
// the shared manager PIN.
type ManagerConfig struct {
	PINHash         string `yaml:"pin_hash"`
	ValiditySeconds int    `yaml:"validity_seconds"`
}

// PhotoConfig controls the clock-event photo capture collaborator.
type PhotoConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Dir       string `yaml:"dir"`
	SpoolPath string `yaml:"spool_path"`
}

// MonitorConfig controls the background long-shift watcher.
type MonitorConfig struct {
	Enabled         bool `yaml:"enabled"`
	IntervalSeconds int  `yaml:"interval_seconds"`
}

// Load reads the configuration from the given path and applies defaults.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg Config
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, err
	}

	cfg.ApplyDefaults()

	if cfg.Manager.PINHash == "" {
		return nil, fmt.Errorf("manager.pin_hash must be configured")
	}

	return &cfg, nil
}

// ApplyDefaults fills in zero-valued policy fields. Exported so tests can
// build a Config without a file on disk.
func (cfg *Config) ApplyDefaults() {
	if cfg.Server.Port <= 0 {
		cfg.Server.Port = 8170
	}
	if cfg.Server.RateLimitPerSec <= 0 {
		cfg.Server.RateLimitPerSec = 10
	}
	if cfg.Server.RateLimitBurst <= 0 {
		cfg.Server.RateLimitBurst = 5
	}
	if cfg.Server.ReportCacheTTLSeconds <= 0 {
		cfg.Server.ReportCacheTTLSeconds = 60
	}

	if cfg.Database.Driver == "" {
		cfg.Database.Driver = "sqlite"
	}
	if cfg.Database.DSN == "" {
		cfg.Database.DSN = "./data/timeclock.db"
	}
	if cfg.Database.MaxOpenConns <= 0 {
		cfg.Database.MaxOpenConns = 1
	}
	if cfg.Database.MaxIdleConns <= 0 {
		cfg.Database.MaxIdleConns = 1
	}
	if cfg.Database.ConnMaxLifetimeMinutes <= 0 {
		cfg.Database.ConnMaxLifetimeMinutes = 60
	}

	if cfg.Clock.CooldownMinutes <= 0 {
		cfg.Clock.CooldownMinutes = 4 * 60
	}
	if cfg.Clock.MinShiftMinutes <= 0 {
		cfg.Clock.MinShiftMinutes = 1
	}
	if cfg.Clock.WarnShiftHours <= 0 {
		cfg.Clock.WarnShiftHours = 12
	}
	if cfg.Clock.MaxShiftHours <= 0 {
		cfg.Clock.MaxShiftHours = 16
	}
	if cfg.Clock.BreakThresholdMinutes <= 0 {
		cfg.Clock.BreakThresholdMinutes = 6 * 60
	}
	if cfg.Clock.BreakMinutes <= 0 {
		cfg.Clock.BreakMinutes = 30
	}

	if cfg.Manager.ValiditySeconds <= 0 {
		cfg.Manager.ValiditySeconds = 60
	}

	if cfg.Photo.Dir == "" {
		cfg.Photo.Dir = "./data/photos"
	}
	if cfg.Photo.SpoolPath == "" {
		cfg.Photo.SpoolPath = "./data/camera/latest.jpg"
	}

	if cfg.Monitor.IntervalSeconds <= 0 {
		cfg.Monitor.IntervalSeconds = 300
	}
}

// Cooldown returns the configured rest period between shifts.
func (c ClockConfig) Cooldown() time.Duration {
	return time.Duration(c.CooldownMinutes) * time.Minute
}

// MinShift returns the minimum shift length accepted at clock-out.
func (c ClockConfig) MinShift() time.Duration {
	return time.Duration(c.MinShiftMinutes) * time.Minute
}

// WarnShift returns the soft-warning threshold for long shifts.
func (c ClockConfig) WarnShift() time.Duration {
	return time.Duration(c.WarnShiftHours) * time.Hour
}

// MaxShift returns the hard ceiling on shift length at clock-out.
func (c ClockConfig) MaxShift() time.Duration {
	return time.Duration(c.MaxShiftHours) * time.Hour
}

// BreakThreshold returns the raw duration above which a break is deducted.
func (c ClockConfig) BreakThreshold() time.Duration {
	return time.Duration(c.BreakThresholdMinutes) * time.Minute
}

// BreakDuration returns the deducted break length.
func (c ClockConfig) BreakDuration() time.Duration {
	return time.Duration(c.BreakMinutes) * time.Minute
}

// Interval returns how often the long-shift watcher scans open shifts.
func (c MonitorConfig) Interval() time.Duration {
	return time.Duration(c.IntervalSeconds) * time.Second
}

// Validity returns the PIN session validity window.
func (c ManagerConfig) Validity() time.Duration {
	return time.Duration(c.ValiditySeconds) * time.Second
}
