// Package config loads and saves the azimut configuration file.
//
// Settings come from, in increasing precedence: built-in defaults, the
// YAML file, and AZIMUT_* environment variables (AZIMUT_STORAGE_ROOT,
// AZIMUT_BACKEND, ...).
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/HendryAvila/azimut/internal/logging"
	"github.com/HendryAvila/azimut/internal/recommend"
	"github.com/HendryAvila/azimut/internal/store"
)

// EnvPrefix is the prefix of environment overrides.
const EnvPrefix = "AZIMUT"

// FileName is the default config file name inside the storage root.
const FileName = "config.yaml"

// ErrInvalidBackend is returned for an unknown storage backend.
var ErrInvalidBackend = errors.New("invalid storage backend")

// Config holds every runtime setting.
type Config struct {
	StorageRoot        string        `mapstructure:"storage_root"`
	Backend            string        `mapstructure:"backend"`
	SessionTTL         time.Duration `mapstructure:"session_ttl"`
	LogLevel           string        `mapstructure:"log_level"`
	LogFormat          string        `mapstructure:"log_format"`
	MaxRecommendations int           `mapstructure:"max_recommendations"`
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() Config {
	home, _ := os.UserHomeDir()
	return Config{
		StorageRoot:        filepath.Join(home, ".azimut"),
		Backend:            store.BackendJSON,
		SessionTTL:         store.DefaultSessionTTL,
		LogLevel:           "info",
		LogFormat:          logging.FormatText,
		MaxRecommendations: recommend.DefaultLimit,
	}
}

// DefaultPath returns the config file path under the default root.
func DefaultPath() string {
	return filepath.Join(DefaultConfig().StorageRoot, FileName)
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if strings.TrimSpace(c.StorageRoot) == "" {
		return fmt.Errorf("storage_root must not be empty")
	}
	switch c.Backend {
	case store.BackendJSON, store.BackendSQLite:
	default:
		return fmt.Errorf("%w %q: want %q or %q", ErrInvalidBackend, c.Backend, store.BackendJSON, store.BackendSQLite)
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("session_ttl must be positive, got %s", c.SessionTTL)
	}
	if c.MaxRecommendations < 0 {
		return fmt.Errorf("max_recommendations must not be negative, got %d", c.MaxRecommendations)
	}
	switch c.LogFormat {
	case logging.FormatText, logging.FormatJSON:
	default:
		return fmt.Errorf("log_format %q: want %q or %q", c.LogFormat, logging.FormatText, logging.FormatJSON)
	}
	return nil
}

func newViper() *viper.Viper {
	v := viper.New()
	d := DefaultConfig()
	v.SetDefault("storage_root", d.StorageRoot)
	v.SetDefault("backend", d.Backend)
	v.SetDefault("session_ttl", d.SessionTTL.String())
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("log_format", d.LogFormat)
	v.SetDefault("max_recommendations", d.MaxRecommendations)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the config at path. A blank path or a missing file yields
// the defaults with environment overrides applied.
func Load(path string) (Config, error) {
	v := newViper()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			v.SetConfigType("yaml")
			if err := v.ReadInConfig(); err != nil {
				return Config{}, fmt.Errorf("reading config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("checking config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	cfg.StorageRoot = expandHome(cfg.StorageRoot)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// fileConfig is the on-disk shape. Durations are written as strings.
type fileConfig struct {
	StorageRoot        string `yaml:"storage_root"`
	Backend            string `yaml:"backend"`
	SessionTTL         string `yaml:"session_ttl"`
	LogLevel           string `yaml:"log_level"`
	LogFormat          string `yaml:"log_format"`
	MaxRecommendations int    `yaml:"max_recommendations"`
}

// Save writes cfg to path as YAML, creating the directory if needed.
func Save(path string, cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(fileConfig{
		StorageRoot:        cfg.StorageRoot,
		Backend:            cfg.Backend,
		SessionTTL:         cfg.SessionTTL.String(),
		LogLevel:           cfg.LogLevel,
		LogFormat:          cfg.LogFormat,
		MaxRecommendations: cfg.MaxRecommendations,
	})
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

func expandHome(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	return p
}
