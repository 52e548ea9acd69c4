// Package config loads the test context settings from the environment.
// A .env file in the working directory is read first when present.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"business_selector/domain/entities"
	"business_selector/domain/errs"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Driver names a browser session implementation
type Driver string

const (
	DriverPlaywright Driver = "playwright"
	DriverSelenium   Driver = "selenium"
	DriverStatic     Driver = "static"
)

// Config is everything the entry point needs to build a test context
type Config struct {
	Context entities.ContextConfig

	Driver       Driver
	Headless     bool
	DriverPath   string
	ChromeBinary string
	LogLevel     logrus.Level

	// DotEnvErr is why no .env file was read, nil when one was
	DotEnvErr error
}

// Load - reads .env (optional) and the environment
func Load() (*Config, error) {
	// .env is optional; the caller logs why it was skipped once a logger exists
	envErr := godotenv.Load()

	cfg, err := FromLookup(os.LookupEnv)
	if err != nil {
		return nil, err
	}
	cfg.DotEnvErr = envErr
	return cfg, nil
}

// FromLookup - builds a Config from an environment lookup function
func FromLookup(lookup func(string) (string, bool)) (*Config, error) {
	get := func(key string) string {
		v, _ := lookup(key)
		return strings.TrimSpace(v)
	}

	cfg := &Config{
		Context: entities.ContextConfig{
			AssetPath:        get("ASSET_PATH"),
			SelectorFilePath: get("SELECTOR_FILE_PATH"),
			URLFilePath:      get("URL_FILE_PATH"),
			BaseURL:          get("BASE_URL"),
			Timeout:          entities.DefaultTimeout,
		},
		Driver:       DriverPlaywright,
		Headless:     true,
		DriverPath:   get("BROWSER_DRIVER_PATH"),
		ChromeBinary: get("CHROME_BINARY_PATH"),
		LogLevel:     logrus.InfoLevel,
	}

	if raw := get("TIMEOUT"); raw != "" {
		seconds, err := strconv.Atoi(raw)
		if err != nil || seconds <= 0 {
			return nil, errs.Newf(errs.Configuration, "TIMEOUT must be a positive number of seconds, got %q", raw)
		}
		cfg.Context.Timeout = time.Duration(seconds) * time.Second
	}

	if raw := get("BROWSER_DRIVER"); raw != "" {
		switch d := Driver(strings.ToLower(raw)); d {
		case DriverPlaywright, DriverSelenium, DriverStatic:
			cfg.Driver = d
		default:
			return nil, errs.Newf(errs.Configuration, "unknown BROWSER_DRIVER %q", raw)
		}
	}

	if raw := get("HEADLESS"); raw != "" {
		headless, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, errs.Newf(errs.Configuration, "HEADLESS must be a boolean, got %q", raw)
		}
		cfg.Headless = headless
	}

	if raw := get("LOG_LEVEL"); raw != "" {
		level, err := logrus.ParseLevel(raw)
		if err != nil {
			return nil, errs.Wrap(errs.Configuration, "invalid LOG_LEVEL", err)
		}
		cfg.LogLevel = level
	}

	if err := cfg.Context.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// NewLogger - creates the logger shared by every component
func (c *Config) NewLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(c.LogLevel)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	return logger
}

func (c *Config) String() string {
	return fmt.Sprintf("driver=%s base_url=%s selectors=%s urls=%s timeout=%v",
		c.Driver, c.Context.BaseURL, c.Context.SelectorFilePath, c.Context.URLFilePath, c.Context.Timeout)
}
