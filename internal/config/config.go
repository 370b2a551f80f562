package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
)

// Config holds the unified application configuration
type Config struct {
	Dir          string `json:"dir"`
	Store        string `json:"store"`
	SeedText     string `json:"seed_text"`
	DefaultSheet string `json:"default_sheet"`
}

// Settings represents the config file structure
type Settings struct {
	Dir          string `json:"dir,omitempty"`
	Store        string `json:"store,omitempty"`
	SeedText     string `json:"seed_text,omitempty"`
	DefaultSheet string `json:"default_sheet,omitempty"`
}

// CLIFlags holds parsed CLI flags
type CLIFlags struct {
	Dir   string
	Store string
}

var globalConfig *Config

// Load loads configuration with priority: CLI flags > env vars > config file > default
func Load(flags CLIFlags) (*Config, error) {
	defaultDir, err := GetDefaultDir()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Dir:   defaultDir,
		Store: "json",
	}

	// Config file first for base values
	configPath, err := getConfigPath()
	if err == nil {
		if fileConfig, err := loadConfigFile(configPath); err == nil {
			if fileConfig.Dir != "" {
				cfg.Dir = expandPath(fileConfig.Dir)
			}
			if fileConfig.Store != "" {
				cfg.Store = fileConfig.Store
			}
			cfg.SeedText = fileConfig.SeedText
			cfg.DefaultSheet = fileConfig.DefaultSheet
		}
	}

	// Priority 2: environment variables override config file
	if envDir := os.Getenv("TASKY_DIR"); envDir != "" {
		cfg.Dir = expandPath(envDir)
	}
	if envStore := os.Getenv("TASKY_STORE"); envStore != "" {
		cfg.Store = envStore
	}

	// Priority 1: CLI flags override everything
	if flags.Dir != "" {
		cfg.Dir = expandPath(flags.Dir)
	}
	if flags.Store != "" {
		cfg.Store = flags.Store
	}

	globalConfig = cfg
	return cfg, nil
}

// Get returns the loaded config
func Get() *Config {
	return globalConfig
}

// GetDefaultDir returns the default data directory path
func GetDefaultDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, "tasky"), nil
}

// getConfigPath returns the path to the configuration file
func getConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "tasky", "config.json"), nil
}

// loadConfigFile loads configuration from the settings file
func loadConfigFile(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var settings Settings
	if err := json.Unmarshal(data, &settings); err != nil {
		return nil, err
	}

	return &settings, nil
}

// EnsureDir ensures the data directory exists
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0755)
}

// NotesDir returns the directory the JSON file store uses
func (c *Config) NotesDir() string {
	return filepath.Join(c.Dir, "notes")
}

// DBPath returns the sqlite database path
func (c *Config) DBPath() string {
	return filepath.Join(c.Dir, "tasky.db")
}

// EnsureConfigFile creates the config file with defaults if it doesn't exist
func EnsureConfigFile() error {
	configPath, err := getConfigPath()
	if err != nil {
		return err
	}

	if _, err := os.Stat(configPath); err == nil {
		return nil
	}

	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return err
	}

	defaultDir, err := GetDefaultDir()
	if err != nil {
		return err
	}

	settings := Settings{
		Dir:   defaultDir,
		Store: "json",
	}

	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0644)
}

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(homeDir, path[2:])
	}
	return path
}
