package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/natureviewrelax/bible-audio-journey-sub000/internal/constants"
)

// Config holds all application configuration
type Config struct {
	Port             string
	DBPath           string
	DataDir          string
	CorpusURL        string
	DefaultAudioBase string
	LogLevel         string
	LogFormat        string
	AdminUsername    string
	AdminPassword    string
	EditorUsername   string
	EditorPassword   string
}

// Load loads configuration from environment variables with defaults
func Load() *Config {
	return &Config{
		Port:             getEnv("PORT", constants.DefaultPort),
		DBPath:           getEnv("DB_PATH", constants.DefaultDBPath),
		DataDir:          getEnv("DATA_DIR", constants.DefaultDataDir),
		CorpusURL:        getEnv("CORPUS_URL", constants.DefaultCorpusURL),
		DefaultAudioBase: getEnv("DEFAULT_AUDIO_BASE", constants.DefaultAudioBase),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		LogFormat:        getEnv("LOG_FORMAT", "text"),
		AdminUsername:    getEnv("ADMIN_USERNAME", constants.DefaultAdminUsername),
		AdminPassword:    getEnv("ADMIN_PASSWORD", ""),
		EditorUsername:   getEnv("EDITOR_USERNAME", ""),
		EditorPassword:   getEnv("EDITOR_PASSWORD", ""),
	}
}

// Validate validates the configuration and returns detailed errors
func (c *Config) Validate() error {
	var errors []string

	if c.Port == "" {
		errors = append(errors, "PORT cannot be empty")
	} else {
		port, err := strconv.Atoi(c.Port)
		if err != nil {
			errors = append(errors, fmt.Sprintf("PORT must be a valid number, got: %s", c.Port))
		} else if port < 1 || port > 65535 {
			errors = append(errors, fmt.Sprintf("PORT must be between 1 and 65535, got: %d", port))
		}
	}

	if c.DBPath == "" {
		errors = append(errors, "DB_PATH cannot be empty")
	}

	if c.DataDir == "" {
		errors = append(errors, "DATA_DIR cannot be empty")
	}

	if c.CorpusURL == "" {
		errors = append(errors, "CORPUS_URL cannot be empty")
	} else if _, err := url.Parse(c.CorpusURL); err != nil {
		errors = append(errors, fmt.Sprintf("CORPUS_URL is not a valid URL: %s", c.CorpusURL))
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		errors = append(errors, fmt.Sprintf("LOG_LEVEL must be one of: debug, info, warn, error, got: %s", c.LogLevel))
	}

	validLogFormats := map[string]bool{
		"text": true,
		"json": true,
	}
	if !validLogFormats[c.LogFormat] {
		errors = append(errors, fmt.Sprintf("LOG_FORMAT must be one of: text, json, got: %s", c.LogFormat))
	}

	if c.AdminUsername == "" {
		errors = append(errors, "ADMIN_USERNAME cannot be empty")
	}

	if c.AdminPassword == "" {
		errors = append(errors, "ADMIN_PASSWORD cannot be empty")
	}

	// Editor credentials are optional, but must come as a pair.
	if (c.EditorUsername == "") != (c.EditorPassword == "") {
		errors = append(errors, "EDITOR_USERNAME and EDITOR_PASSWORD must be set together")
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(errors, "\n  - "))
	}

	return nil
}

// getEnv retrieves an environment variable with a fallback default
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
