package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"webpconv/internal/common"
)

const (
	appDirName     = "WebPConverter"
	configFileName = "config.toml"
	databaseName   = "database.sqlite3"
)

// Conversion holds the defaults applied to a fresh session.
type Conversion struct {
	DefaultQuality int `toml:"default_quality"`
	DefaultScale   int `toml:"default_scale"`
	Workers        int `toml:"workers"` // 0 picks a value from the CPU count
}

// Logging controls log output.
type Logging struct {
	Level string `toml:"level"`
}

// Config holds application configuration
type Config struct {
	AppDataDir   string     `toml:"app_data_dir"`
	DatabasePath string     `toml:"database_path"`
	Conversion   Conversion `toml:"conversion"`
	Logging      Logging    `toml:"logging"`

	Logger *slog.Logger `toml:"-"`
}

// Default returns the built-in configuration.
func Default() Config {
	appDataDir := getAppDataDir()
	return Config{
		AppDataDir:   appDataDir,
		DatabasePath: filepath.Join(appDataDir, databaseName),
		Conversion: Conversion{
			DefaultQuality: common.DefaultQuality,
			DefaultScale:   common.DefaultScale,
		},
		Logging: Logging{Level: "info"},
	}
}

// DefaultConfigPath returns the location of the optional config file.
func DefaultConfigPath() string {
	return filepath.Join(getAppDataDir(), configFileName)
}

// Load reads the optional TOML file at path (or the default location when
// path is empty), applies it on top of the defaults and validates the
// result. It returns the resolved path and whether the file existed.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	cfg.Logger = NewLogger(cfg.Logging.Level, os.Stderr)
	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if strings.TrimSpace(path) == "" {
		path = DefaultConfigPath()
	}

	absolute, err := filepath.Abs(filepath.Clean(path))
	if err != nil {
		return "", false, fmt.Errorf("resolve config path %q: %w", path, err)
	}

	info, err := os.Stat(absolute)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return absolute, false, nil
		}
		return "", false, fmt.Errorf("stat config: %w", err)
	}
	if info.IsDir() {
		return "", false, fmt.Errorf("config path %q is a directory", absolute)
	}
	return absolute, true, nil
}

func (c *Config) normalize() {
	c.AppDataDir = strings.TrimSpace(c.AppDataDir)
	if c.AppDataDir == "" {
		c.AppDataDir = getAppDataDir()
	}
	c.DatabasePath = strings.TrimSpace(c.DatabasePath)
	if c.DatabasePath == "" {
		c.DatabasePath = filepath.Join(c.AppDataDir, databaseName)
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
}

// EnsureDirectories creates the app data directory and the database parent.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.AppDataDir, filepath.Dir(c.DatabasePath)} {
		if err := os.MkdirAll(dir, common.DefaultFilePermissions); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// Encode renders the effective configuration as TOML.
func (c *Config) Encode() ([]byte, error) {
	data, err := toml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return data, nil
}

func getAppDataDir() string {
	if dir, ok := os.LookupEnv("WEBPCONV_DATA_DIR"); ok && strings.TrimSpace(dir) != "" {
		return dir
	}
	if base, err := os.UserConfigDir(); err == nil {
		return filepath.Join(base, appDirName)
	}
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, "."+strings.ToLower(appDirName))
}
