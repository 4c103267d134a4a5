// Package config reads slidegen settings from the environment, optionally
// seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Env var prefix shared by every setting.
const Prefix = "SLIDEGEN_"

// Defaults applied when a variable is unset.
const (
	DefaultAddr         = ":8080"
	DefaultOutputDir    = "output"
	DefaultTheme        = "slidegen"
	DefaultThemeVariant = "light"
	DefaultImageTimeout = 15 * time.Second
	DefaultLLMModel     = "gpt-4o-mini"
	DefaultEnv          = "development"
)

type Config struct {
	Addr         string
	TemplatesDir string
	OutputDir    string
	Theme        string
	ThemeVariant string
	ImageTimeout time.Duration
	Env          string

	// AssetsDir roots local image paths for the HTTP server. Empty refuses
	// them.
	AssetsDir string
	// RemoteImages lets the HTTP server fetch http(s) image references.
	RemoteImages bool

	LLM LLMConfig
}

type LLMConfig struct {
	APIKey  string
	BaseURL string
	Model   string
}

// Load reads the configuration. Files are loaded with godotenv first and
// never override variables already present in the environment; a missing
// file is an error only when it was named explicitly.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		_ = godotenv.Load()
	} else {
		for _, file := range envFiles {
			if strings.TrimSpace(file) == "" {
				continue
			}
			if err := godotenv.Load(file); err != nil {
				return nil, fmt.Errorf("config: load env file %s: %w", file, err)
			}
		}
	}

	timeout, err := parseDuration(getEnv("IMAGE_TIMEOUT", ""), DefaultImageTimeout)
	if err != nil {
		return nil, err
	}

	remote, err := parseBool("REMOTE_IMAGES")
	if err != nil {
		return nil, err
	}

	return &Config{
		Addr:         getEnv("ADDR", DefaultAddr),
		TemplatesDir: getEnv("TEMPLATES_DIR", ""),
		OutputDir:    getEnv("OUTPUT_DIR", DefaultOutputDir),
		Theme:        getEnv("THEME", DefaultTheme),
		ThemeVariant: getEnv("THEME_VARIANT", DefaultThemeVariant),
		ImageTimeout: timeout,
		Env:          getEnv("ENV", DefaultEnv),
		AssetsDir:    getEnv("ASSETS_DIR", ""),
		RemoteImages: remote,
		LLM: LLMConfig{
			APIKey:  getEnv("LLM_API_KEY", ""),
			BaseURL: getEnv("LLM_BASE_URL", ""),
			Model:   getEnv("LLM_MODEL", DefaultLLMModel),
		},
	}, nil
}

// IsProduction reports whether ENV is "production".
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// RequireLLM fails when no model API key is configured.
func (c *Config) RequireLLM() error {
	if strings.TrimSpace(c.LLM.APIKey) == "" {
		return errors.New("config: " + Prefix + "LLM_API_KEY is not set")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(Prefix + key); ok && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return fallback
}

func parseBool(key string) (bool, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return false, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("config: invalid %s%s %q", Prefix, key, raw)
	}
	return value, nil
}

// parseDuration accepts Go durations ("20s") or bare seconds ("20").
func parseDuration(raw string, fallback time.Duration) (time.Duration, error) {
	if raw == "" {
		return fallback, nil
	}
	if d, err := time.ParseDuration(raw); err == nil {
		if d <= 0 {
			return 0, fmt.Errorf("config: %sIMAGE_TIMEOUT must be positive, got %q", Prefix, raw)
		}
		return d, nil
	}
	var secs int
	if _, err := fmt.Sscanf(raw, "%d", &secs); err != nil || secs <= 0 || fmt.Sprint(secs) != raw {
		return 0, fmt.Errorf("config: invalid %sIMAGE_TIMEOUT %q", Prefix, raw)
	}
	return time.Duration(secs) * time.Second, nil
}
