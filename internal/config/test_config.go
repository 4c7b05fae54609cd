package config

import "time"

// TestConfig returns a config suitable for testing
func TestConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:     "http://localhost:8080/api",
			HTTPTimeout: 5 * time.Second,
			UserAgent:   "quill-test/1.0",
			PageSize:    20,
		},
		Database: DatabaseConfig{
			Path:    ":memory:", // Use in-memory database for tests
			Timeout: 1 * time.Second,
		},
		Import: ImportConfig{
			PollInterval:  10 * time.Millisecond,
			BackoffFactor: 1.0,
			MaxAttempts:   5,
			Timeout:       time.Second,
		},
		Dates: defaultConfig().Dates,
		Log:   defaultConfig().Log,
	}
}
