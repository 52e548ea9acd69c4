package entities

import (
	"fmt"
	"strings"
	"time"

	"business_selector/domain/errs"
)

// DefaultTimeout applies when no timeout is configured
const DefaultTimeout = 30000 * time.Millisecond

// ContextConfig is the immutable record a test context is built from
type ContextConfig struct {
	AssetPath        string
	SelectorFilePath string
	URLFilePath      string
	Timeout          time.Duration
	BaseURL          string
}

// ValidationError lists every missing required setting
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("configuration validation failed:\n  - %s", strings.Join(e.Missing, "\n  - "))
}

// Validate - checks that the table paths are set
func (c ContextConfig) Validate() error {
	var missing []string
	if c.SelectorFilePath == "" {
		missing = append(missing, `Value "selectorFilePath" not set in config`)
	}
	if c.URLFilePath == "" {
		missing = append(missing, `Value "urlFilePath" not set in config`)
	}
	if len(missing) > 0 {
		return errs.Wrap(errs.Configuration, "invalid context configuration", &ValidationError{Missing: missing})
	}
	return nil
}

// WaitTimeout - returns the configured timeout or the default
func (c ContextConfig) WaitTimeout() time.Duration {
	if c.Timeout <= 0 {
		return DefaultTimeout
	}
	return c.Timeout
}

// PageURL - joins a URL fragment onto the base URL.
// A fragment of "/" yields the base URL unchanged; no separator is inserted.
func (c ContextConfig) PageURL(frag string) string {
	url := c.BaseURL
	if frag != "/" {
		url += frag
	}
	return url
}
