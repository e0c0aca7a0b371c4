package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/julianstephens/habitlog/internal/analytics"
	"github.com/julianstephens/habitlog/internal/constants"
)

// Config is the optional on-disk configuration. Command-line flags override it.
type Config struct {
	DBPath       string `toml:"db_path"`
	Debug        bool   `toml:"debug"`
	LogLevel     string `toml:"log_level"`
	DefaultRange string `toml:"default_range"`
	Workers      int    `toml:"workers"`
}

func DefaultConfig() *Config {
	return &Config{
		DBPath:       constants.DefaultDBPath,
		DefaultRange: string(analytics.PresetLast7Days),
		Workers:      constants.DefaultWorkers,
	}
}

// Manager loads and saves the configuration file.
type Manager struct {
	config     *Config
	configPath string
}

func NewManager(path string) *Manager {
	return &Manager{configPath: path}
}

// Load reads the file if it exists. A missing file yields the defaults.
func (m *Manager) Load() (*Config, error) {
	path, err := ExpandPath(m.configPath)
	if err != nil {
		return nil, err
	}
	m.configPath = path

	if _, err := os.Stat(path); os.IsNotExist(err) {
		m.config = DefaultConfig()
		return m.config, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	m.config = cfg
	return cfg, nil
}

// Save writes cfg to the manager's path, creating the directory if needed.
func (m *Manager) Save(cfg *Config) error {
	if err := validate(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	path, err := ExpandPath(m.configPath)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	m.configPath = path
	m.config = cfg
	return nil
}

func (m *Manager) Config() *Config {
	return m.config
}

func (m *Manager) Path() string {
	return m.configPath
}

// Range returns the configured default preset.
func (c *Config) Range() analytics.Preset {
	p, err := analytics.ParsePreset(c.DefaultRange)
	if err != nil {
		return analytics.PresetLast7Days
	}
	return p
}

func validate(cfg *Config) error {
	var errs []string

	if strings.TrimSpace(cfg.DBPath) == "" {
		errs = append(errs, "db_path cannot be empty")
	}
	if cfg.Workers < 1 || cfg.Workers > constants.MaxWorkers {
		errs = append(errs, fmt.Sprintf("workers must be between 1 and %d", constants.MaxWorkers))
	}
	if cfg.DefaultRange != "" {
		p, err := analytics.ParsePreset(cfg.DefaultRange)
		if err != nil {
			errs = append(errs, err.Error())
		} else if p == analytics.PresetCustom {
			errs = append(errs, "default_range cannot be custom")
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path[1:], "/")), nil
}
