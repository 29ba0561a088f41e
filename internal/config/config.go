// Package config resolves runtime settings from defaults, an optional YAML
// overlay file and SMARTPROMPTS_* environment variables, in that order.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/alexanderramin/smartprompts/internal/frequency"
	"gopkg.in/yaml.v3"
)

// Config holds everything the binary needs before wiring services.
type Config struct {
	DBPath                    string `yaml:"db"`
	Timezone                  string `yaml:"timezone"`
	DashboardLimit            int    `yaml:"dashboardLimit"`
	InlineLimit               int    `yaml:"inlineLimit"`
	DismissCooldownHours      int    `yaml:"dismissCooldownHours"`
	CelebrationCooldownHours  int    `yaml:"celebrationCooldownHours"`
	PermanentDismissThreshold int    `yaml:"permanentDismissThreshold"`
	CelebrationQueueSize      int    `yaml:"celebrationQueueSize"`
	LogEvents                 bool   `yaml:"logEvents"`
}

// DefaultConfig returns the built-in settings. The timezone is empty,
// which means host local time.
func DefaultConfig() Config {
	freq := frequency.DefaultConfig()
	return Config{
		DBPath:                    defaultDBPath(),
		DashboardLimit:            freq.DashboardLimit,
		InlineLimit:               freq.InlineLimit,
		DismissCooldownHours:      int(freq.DismissCooldown / time.Hour),
		CelebrationCooldownHours:  int(freq.CelebrationCooldown / time.Hour),
		PermanentDismissThreshold: freq.PermanentDismissThreshold,
		CelebrationQueueSize:      freq.CelebrationQueueSize,
	}
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "smartprompts.db"
	}
	return filepath.Join(home, ".smartprompts", "smartprompts.db")
}

// LoadConfig applies the overlay file named by SMARTPROMPTS_CONFIG and then
// the environment on top of the defaults. Invalid env values are ignored; an
// unreadable overlay or unknown timezone is an error.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()

	if path := os.Getenv("SMARTPROMPTS_CONFIG"); path != "" {
		if err := applyFile(&cfg, path); err != nil {
			return cfg, err
		}
	}

	if v := os.Getenv("SMARTPROMPTS_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("SMARTPROMPTS_TZ"); v != "" {
		cfg.Timezone = v
	}
	if v := os.Getenv("SMARTPROMPTS_LOG_EVENTS"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.LogEvents = b
		}
	}
	applyPositiveIntEnv(&cfg.DashboardLimit, "SMARTPROMPTS_DASHBOARD_LIMIT")
	applyPositiveIntEnv(&cfg.InlineLimit, "SMARTPROMPTS_INLINE_LIMIT")
	applyPositiveIntEnv(&cfg.DismissCooldownHours, "SMARTPROMPTS_DISMISS_COOLDOWN_HOURS")
	applyPositiveIntEnv(&cfg.CelebrationCooldownHours, "SMARTPROMPTS_CELEBRATION_COOLDOWN_HOURS")
	applyPositiveIntEnv(&cfg.PermanentDismissThreshold, "SMARTPROMPTS_PERMANENT_DISMISS_THRESHOLD")
	applyPositiveIntEnv(&cfg.CelebrationQueueSize, "SMARTPROMPTS_CELEBRATION_QUEUE_SIZE")

	if _, err := cfg.Location(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func applyFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config %s: %w", path, err)
	}
	// Unmarshal into the populated struct so absent keys keep their defaults.
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	return nil
}

func applyPositiveIntEnv(dst *int, envName string) {
	v := os.Getenv(envName)
	if v == "" {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return
	}
	*dst = n
}

// Location resolves Timezone. Empty means time.Local.
func (c Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// Frequency maps the settings onto the frequency manager's tunables.
func (c Config) Frequency() frequency.Config {
	return frequency.Config{
		DismissCooldown:           time.Duration(c.DismissCooldownHours) * time.Hour,
		CelebrationCooldown:       time.Duration(c.CelebrationCooldownHours) * time.Hour,
		PermanentDismissThreshold: c.PermanentDismissThreshold,
		DashboardLimit:            c.DashboardLimit,
		InlineLimit:               c.InlineLimit,
		CelebrationQueueSize:      c.CelebrationQueueSize,
	}
}
