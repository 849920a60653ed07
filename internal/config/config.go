package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/Zachkp/portfolio/internal/projects"
)

// EnvPrefix namespaces environment overrides. Nested keys use a double
// underscore: PORTFOLIO_CONTACT__SEND_DELAY=1s.
const EnvPrefix = "PORTFOLIO_"

// Config is the full runtime configuration.
type Config struct {
	Port      int             `koanf:"port"`
	Log       LogConfig       `koanf:"log"`
	Contact   ContactConfig   `koanf:"contact"`
	Projects  ProjectsConfig  `koanf:"projects"`
	Session   SessionConfig   `koanf:"session"`
	Analytics AnalyticsConfig `koanf:"analytics"`
	Admin     AdminConfig     `koanf:"admin"`
	Content   ContentConfig   `koanf:"content"`
}

// LogConfig selects the log level and an optional file sink.
type LogConfig struct {
	Level string `koanf:"level"`
	File  string `koanf:"file"`
}

// ContactConfig tunes the simulated send cycle.
type ContactConfig struct {
	SendDelay       time.Duration `koanf:"send_delay"`
	ResetDelay      time.Duration `koanf:"reset_delay"`
	SimulateFailure bool          `koanf:"simulate_failure"`
}

// ProjectsConfig picks how the filter and search combine.
type ProjectsConfig struct {
	MatchMode string `koanf:"match_mode"`
}

// SessionConfig controls visitor session lifetime and cookies.
type SessionConfig struct {
	TTL           time.Duration `koanf:"ttl"`
	SweepInterval time.Duration `koanf:"sweep_interval"`
	SecureCookie  bool          `koanf:"secure_cookie"`
}

// AnalyticsConfig controls visit tracking and its retention.
type AnalyticsConfig struct {
	Enabled   bool          `koanf:"enabled"`
	DBPath    string        `koanf:"db_path"`
	Retention time.Duration `koanf:"retention"`
}

// AdminConfig holds the dashboard credentials.
type AdminConfig struct {
	Username string `koanf:"username"`
	Password string `koanf:"password"`
}

// ContentConfig points at an alternative content catalog.
type ContentConfig struct {
	Path string `koanf:"path"`
}

// Default returns the settings used when nothing overrides them.
func Default() *Config {
	return &Config{
		Port: 8080,
		Log: LogConfig{
			Level: "info",
		},
		Contact: ContactConfig{
			SendDelay:  2000 * time.Millisecond,
			ResetDelay: 5000 * time.Millisecond,
		},
		Projects: ProjectsConfig{
			MatchMode: string(projects.Independent),
		},
		Session: SessionConfig{
			TTL:           30 * time.Minute,
			SweepInterval: time.Minute,
		},
		Analytics: AnalyticsConfig{
			Enabled:   true,
			DBPath:    "data/portfolio.db",
			Retention: 365 * 24 * time.Hour,
		},
		Admin: AdminConfig{
			Username: "admin",
			Password: "admin123",
		},
	}
}

// Load layers defaults, the YAML file at path (if present) and
// PORTFOLIO_* environment variables. PORT is honoured for hosts that set
// it.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := Default()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("accessing config %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		return strings.ReplaceAll(key, "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	if port := os.Getenv("PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT %q: %w", port, err)
		}
		cfg.Port = p
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}
	if c.Contact.SendDelay < 0 {
		return fmt.Errorf("contact.send_delay must not be negative")
	}
	if c.Contact.ResetDelay < 0 {
		return fmt.Errorf("contact.reset_delay must not be negative")
	}
	if _, err := projects.ParseMatchMode(c.Projects.MatchMode); err != nil {
		return fmt.Errorf("projects.match_mode: %w", err)
	}
	if c.Session.TTL <= 0 {
		return fmt.Errorf("session.ttl must be positive")
	}
	if c.Session.SweepInterval <= 0 {
		return fmt.Errorf("session.sweep_interval must be positive")
	}
	if c.Analytics.Enabled && c.Analytics.DBPath == "" {
		return fmt.Errorf("analytics.db_path is required when analytics is enabled")
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.Log.Level)
	}
	return nil
}

// Addr is the listen address.
func (c *Config) Addr() string {
	return ":" + strconv.Itoa(c.Port)
}
