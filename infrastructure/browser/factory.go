package browser

import (
	"fmt"

	"business_selector/domain/interfaces"
	"business_selector/infrastructure/config"

	"github.com/sirupsen/logrus"
)

// NewSession - opens the session implementation selected by cfg.Driver
func NewSession(cfg *config.Config, logger *logrus.Logger) (interfaces.Session, error) {
	switch cfg.Driver {
	case config.DriverPlaywright:
		return NewPlaywrightSession(PlaywrightOptions{Headless: cfg.Headless}, logger)
	case config.DriverSelenium:
		return NewSeleniumSession(SeleniumOptions{
			DriverPath:   cfg.DriverPath,
			ChromeBinary: cfg.ChromeBinary,
			Headless:     cfg.Headless,
		}, logger)
	case config.DriverStatic:
		return NewStaticSession(nil, logger), nil
	default:
		return nil, fmt.Errorf("unsupported browser driver %q", cfg.Driver)
	}
}
