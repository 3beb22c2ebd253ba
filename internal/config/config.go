// Package config loads and saves julmat's TOML configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Config holds all julmat configuration.
type Config struct {
	General    GeneralConfig    `toml:"general"`
	Store      StoreConfig      `toml:"store"`
	Server     ServerConfig     `toml:"server"`
	Appearance AppearanceConfig `toml:"appearance"`
	Logging    LoggingConfig    `toml:"logging"`
}

// GeneralConfig holds data source and locale preferences.
type GeneralConfig struct {
	DataSource      string `toml:"data_source"`
	DefaultCategory string `toml:"default_category"`
	Locale          string `toml:"locale"`
	ExportPath      string `toml:"export_path,omitempty"`
}

// StoreConfig selects where checklist status is persisted.
type StoreConfig struct {
	Backend    string      `toml:"backend"` // sqlite, redis or memory
	SQLitePath string      `toml:"sqlite_path,omitempty"`
	Redis      RedisConfig `toml:"redis"`
}

// RedisConfig holds settings for the redis backend.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password,omitempty"`
	DB       int    `toml:"db"`
	Prefix   string `toml:"prefix"`
}

// ServerConfig holds settings for `julmat serve`.
type ServerConfig struct {
	Addr         string  `toml:"addr"`
	ReadOnly     bool    `toml:"read_only"`
	RateLimitRPS float64 `toml:"rate_limit_rps"`
	RateBurst    int     `toml:"rate_burst"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// LoggingConfig holds zerolog settings.
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // console or json
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			DataSource:      "data.json",
			DefaultCategory: "Övrigt",
			Locale:          "sv",
		},
		Store: StoreConfig{
			Backend: "sqlite",
			Redis: RedisConfig{
				Addr:   "127.0.0.1:6379",
				Prefix: "julmat:",
			},
		},
		Server: ServerConfig{
			Addr:         "127.0.0.1:8788",
			RateLimitRPS: 5,
			RateBurst:    10,
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "console",
		},
	}
}

// Dir returns the XDG-compliant config directory.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "julmat")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "julmat")
}

// DataDir returns the XDG-compliant data directory that holds the status db.
func DataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "julmat")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "julmat")
}

// Path returns the full path to the config file.
func Path() string {
	return filepath.Join(Dir(), "config.toml")
}

// SQLitePath returns the configured status db path or the default one.
func (c Config) SQLitePath() string {
	if c.Store.SQLitePath != "" {
		return c.Store.SQLitePath
	}
	return filepath.Join(DataDir(), "status.db")
}

// ExportPath returns the default export file location.
func (c Config) ExportPath() string {
	if c.General.ExportPath != "" {
		return c.General.ExportPath
	}
	return "julmat-status.json"
}

// Load reads the config file, returning defaults if it doesn't exist, then
// applies environment overrides. A .env file in the working directory is
// loaded first when present.
func Load() (Config, error) {
	return LoadFrom(Path())
}

// LoadFrom is Load with an explicit config file path.
func LoadFrom(path string) (Config, error) {
	_ = godotenv.Load() // optional .env; real env vars take precedence

	cfg := DefaultConfig()

	data, err := os.ReadFile(path) //nolint:gosec // path is the user's config file
	if err != nil {
		if os.IsNotExist(err) {
			applyEnv(&cfg)
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("JULMAT_DATA"); v != "" {
		cfg.General.DataSource = v
	}
	if v := os.Getenv("JULMAT_BACKEND"); v != "" {
		cfg.Store.Backend = v
	}
	if v := os.Getenv("JULMAT_REDIS_ADDR"); v != "" {
		cfg.Store.Redis.Addr = v
	}
	if v := os.Getenv("JULMAT_REDIS_PASSWORD"); v != "" {
		cfg.Store.Redis.Password = v
	}
	if v := os.Getenv("JULMAT_REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Store.Redis.DB = n
		}
	}
}

// Save writes the config to disk.
func Save(cfg Config) error {
	return SaveTo(Path(), cfg)
}

// SaveTo writes the config to path, creating its directory.
func SaveTo(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(Path())
	return err == nil
}
