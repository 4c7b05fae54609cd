package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	API      APIConfig      `mapstructure:"api"`
	Database DatabaseConfig `mapstructure:"database"`
	Import   ImportConfig   `mapstructure:"import"`
	Dates    DateConfig     `mapstructure:"dates"`
	Log      LogConfig      `mapstructure:"log"`
}

type APIConfig struct {
	BaseURL     string        `mapstructure:"base_url"`
	WebURL      string        `mapstructure:"web_url"`
	HTTPTimeout time.Duration `mapstructure:"http_timeout"`
	UserAgent   string        `mapstructure:"user_agent"`
	PageSize    int           `mapstructure:"page_size"`
	Opener      string        `mapstructure:"opener"`
}

type DatabaseConfig struct {
	Path        string        `mapstructure:"path"`
	Timeout     time.Duration `mapstructure:"timeout"`
	SearchIndex string        `mapstructure:"search_index"`
}

type ImportConfig struct {
	PollInterval  time.Duration `mapstructure:"poll_interval"`
	BackoffFactor float64       `mapstructure:"backoff_factor"`
	MaxInterval   time.Duration `mapstructure:"max_interval"`
	MaxAttempts   int           `mapstructure:"max_attempts"`
	Timeout       time.Duration `mapstructure:"timeout"`
}

type DateConfig struct {
	// Strict fails on unparseable dates instead of substituting the
	// current time.
	Strict bool `mapstructure:"strict"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	Path  string `mapstructure:"path"`
}

func defaultConfig() *Config {
	homeDir, _ := os.UserHomeDir()
	dbPath := filepath.Join(homeDir, ".quill.db")
	searchIndexPath := filepath.Join(homeDir, ".config", "quill", "index.bleve")

	return &Config{
		API: APIConfig{
			BaseURL:     "http://localhost:8080/api",
			WebURL:      "http://localhost:3000",
			HTTPTimeout: 30 * time.Second,
			UserAgent:   "quill/1.0 (story platform client)",
			PageSize:    20,
		},
		Database: DatabaseConfig{
			Path:        dbPath,
			Timeout:     1 * time.Second,
			SearchIndex: searchIndexPath,
		},
		Import: ImportConfig{
			PollInterval:  2 * time.Second,
			BackoffFactor: 1.0,
			MaxInterval:   30 * time.Second,
			MaxAttempts:   0,
			Timeout:       10 * time.Minute,
		},
		Dates: DateConfig{
			Strict: false,
		},
		Log: LogConfig{
			Level: "off",
			Path:  "",
		},
	}
}

func Load(configPath string) (*Config, error) {
	v := viper.New()

	cfg := defaultConfig()
	v.SetDefault("api", cfg.API)
	v.SetDefault("database", cfg.Database)
	v.SetDefault("import", cfg.Import)
	v.SetDefault("dates", cfg.Dates)
	v.SetDefault("log", cfg.Log)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		homeDir, _ := os.UserHomeDir()
		configDir := filepath.Join(homeDir, ".config", "quill")

		v.SetConfigName("config")
		v.SetConfigType("toml")
		v.AddConfigPath(configDir)
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("QUILL")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	expandPaths(&config)

	return &config, nil
}

// expandPath expands ~ to home directory and converts to absolute path
func expandPath(path string) string {
	if path == "" {
		return path
	}

	if len(path) >= 2 && path[:2] == "~/" {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path[2:])
	}

	if !filepath.IsAbs(path) {
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
	}

	return path
}

func expandPaths(cfg *Config) {
	cfg.Database.Path = expandPath(cfg.Database.Path)
	cfg.Database.SearchIndex = expandPath(cfg.Database.SearchIndex)
	cfg.Log.Path = expandPath(cfg.Log.Path)
}

func Save(config *Config, path string) error {
	v := viper.New()

	// Durations are written as strings so the TOML stays hand-editable.
	apiCfg := map[string]interface{}{
		"base_url":     config.API.BaseURL,
		"web_url":      config.API.WebURL,
		"http_timeout": config.API.HTTPTimeout.String(),
		"user_agent":   config.API.UserAgent,
		"page_size":    config.API.PageSize,
		"opener":       config.API.Opener,
	}

	dbCfg := map[string]interface{}{
		"path":         config.Database.Path,
		"timeout":      config.Database.Timeout.String(),
		"search_index": config.Database.SearchIndex,
	}

	importCfg := map[string]interface{}{
		"poll_interval":  config.Import.PollInterval.String(),
		"backoff_factor": config.Import.BackoffFactor,
		"max_interval":   config.Import.MaxInterval.String(),
		"max_attempts":   config.Import.MaxAttempts,
		"timeout":        config.Import.Timeout.String(),
	}

	v.Set("api", apiCfg)
	v.Set("database", dbCfg)
	v.Set("import", importCfg)
	v.Set("dates", config.Dates)
	v.Set("log", config.Log)

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	return v.WriteConfigAs(path)
}

func GenerateDefaultConfig(path string) error {
	return Save(defaultConfig(), path)
}
