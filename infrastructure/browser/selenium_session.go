package browser

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"business_selector/domain/entities"
	"business_selector/domain/interfaces"

	"github.com/sirupsen/logrus"
	"github.com/tebeka/selenium"
	"github.com/tebeka/selenium/chrome"
)

const (
	defaultDriverPort    = 9515
	seleniumPollInterval = 100 * time.Millisecond
)

// SeleniumOptions configures the WebDriver-backed session
type SeleniumOptions struct {
	DriverPath   string
	ChromeBinary string
	Port         int
	Headless     bool
}

// SeleniumSession drives Chrome through ChromeDriver
type SeleniumSession struct {
	wd      selenium.WebDriver
	service *selenium.Service
	logger  *logrus.Logger
}

// findChromeDriver - finds ChromeDriver executable path
func findChromeDriver(configured string) (string, error) {
	if configured != "" {
		if _, err := os.Stat(configured); err == nil {
			return configured, nil
		}
	}

	commonPaths := []string{
		"/usr/local/bin/chromedriver",
		"/usr/bin/chromedriver",
		"/opt/homebrew/bin/chromedriver",
		filepath.Join(os.Getenv("HOME"), "bin", "chromedriver"),
	}

	for _, path := range commonPaths {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	if path, err := exec.LookPath("chromedriver"); err == nil {
		return path, nil
	}

	return "", fmt.Errorf("chromedriver not found. Please install it or set BROWSER_DRIVER_PATH environment variable")
}

// findChromeBinary - finds Chrome/Chromium browser executable path
func findChromeBinary(configured string) string {
	if configured != "" {
		if _, err := os.Stat(configured); err == nil {
			return configured
		}
	}

	chromePaths := []string{
		"/Applications/Google Chrome.app/Contents/MacOS/Google Chrome",
		"/Applications/Chromium.app/Contents/MacOS/Chromium",
		"/usr/bin/google-chrome",
		"/usr/bin/chromium",
		"/usr/bin/chromium-browser",
	}

	for _, path := range chromePaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	for _, name := range []string{"google-chrome", "chromium", "chromium-browser"} {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}

	return ""
}

// NewSeleniumSession - starts ChromeDriver and opens a WebDriver session
func NewSeleniumSession(opts SeleniumOptions, logger *logrus.Logger) (*SeleniumSession, error) {
	driverPath, err := findChromeDriver(opts.DriverPath)
	if err != nil {
		return nil, fmt.Errorf("failed to find chromedriver: %w", err)
	}
	logger.Infof("Using ChromeDriver at: %s", driverPath)

	port := opts.Port
	if port == 0 {
		port = defaultDriverPort
	}

	service, err := selenium.NewChromeDriverService(driverPath, port)
	if err != nil {
		return nil, fmt.Errorf("failed to start chromedriver: %w", err)
	}

	caps := selenium.Capabilities{
		"browserName": "chrome",
	}

	chromeCaps := chrome.Capabilities{
		Args: []string{
			"--disable-dev-shm-usage",
			"--no-sandbox",
		},
	}
	if opts.Headless {
		chromeCaps.Args = append(chromeCaps.Args, "--headless=new")
	}
	if binary := findChromeBinary(opts.ChromeBinary); binary != "" {
		logger.Infof("Using Chrome binary at: %s", binary)
		chromeCaps.Path = binary
	}
	caps.AddChrome(chromeCaps)

	wd, err := selenium.NewRemote(caps, fmt.Sprintf("http://localhost:%d/wd/hub", port))
	if err != nil {
		service.Stop()
		if strings.Contains(err.Error(), "cannot find Chrome binary") {
			return nil, fmt.Errorf("failed to create webdriver: Chrome browser not found. Please install Google Chrome or set CHROME_BINARY_PATH environment variable. Error: %w", err)
		}
		return nil, fmt.Errorf("failed to create webdriver: %w", err)
	}

	return &SeleniumSession{
		wd:      wd,
		service: service,
		logger:  logger,
	}, nil
}

// Visit - navigates browser to specified URL
func (s *SeleniumSession) Visit(ctx context.Context, url string) error {
	s.logger.Debugf("Navigating to: %s", url)
	if err := s.wd.SwitchFrame(nil); err != nil {
		s.logger.Warnf("Failed to reset frame focus: %v", err)
	}
	return s.wd.Get(url)
}

// Find - returns the first element matching css in the focused frame
func (s *SeleniumSession) Find(ctx context.Context, css string) (interfaces.Element, bool, error) {
	found, err := s.wd.FindElements(selenium.ByCSSSelector, css)
	if err != nil {
		return nil, false, err
	}
	if len(found) == 0 {
		return nil, false, nil
	}
	return &seleniumElement{wd: s.wd, el: found[0]}, true, nil
}

// SwitchToIFrame - focuses the iframe matching selector, or the top document when empty
func (s *SeleniumSession) SwitchToIFrame(ctx context.Context, selector string) error {
	if selector == "" {
		return s.wd.SwitchFrame(nil)
	}

	frame, err := s.wd.FindElement(selenium.ByCSSSelector, selector)
	if err != nil {
		return fmt.Errorf("iframe not found: %w", err)
	}
	return s.wd.SwitchFrame(frame)
}

// Wait - evaluates cond.Script until it returns true or timeout passes
func (s *SeleniumSession) Wait(ctx context.Context, timeout time.Duration, cond entities.WaitCondition) error {
	script := "return " + cond.Script + ";"

	err := s.wd.WaitWithTimeoutAndInterval(func(wd selenium.WebDriver) (bool, error) {
		if err := ctx.Err(); err != nil {
			return false, err
		}
		result, err := wd.ExecuteScript(script, nil)
		if err != nil {
			s.logger.Debugf("Wait condition for %s failed: %v", cond.Selector, err)
			return false, nil
		}
		ok, _ := result.(bool)
		return ok, nil
	}, timeout, seleniumPollInterval)

	if ctx.Err() != nil {
		return ctx.Err()
	}
	if err != nil {
		s.logger.Debugf("Stopped waiting for %s to be %s: %v", cond.Selector, cond.Expect, err)
	}
	return nil
}

// HasContent - checks the body text of the focused frame
func (s *SeleniumSession) HasContent(ctx context.Context, text string) (bool, error) {
	body, err := s.wd.FindElement(selenium.ByTagName, "body")
	if err != nil {
		return false, err
	}
	content, err := body.Text()
	if err != nil {
		return false, err
	}
	return strings.Contains(content, text), nil
}

// Close - closes browser and stops ChromeDriver service
func (s *SeleniumSession) Close() error {
	if s.wd != nil {
		s.wd.Quit()
	}
	if s.service != nil {
		s.service.Stop()
	}
	return nil
}

type seleniumElement struct {
	wd selenium.WebDriver
	el selenium.WebElement
}

// selectScript selects the option whose value or label equals arguments[1];
// arguments[2] keeps the existing selection of a multi-select
const selectScript = `
var select = arguments[0], wanted = arguments[1], additive = arguments[2];
var match = null;
for (var i = 0; i < select.options.length; i++) {
	var option = select.options[i];
	if (option.value === wanted || option.text.trim() === wanted) {
		match = option;
		break;
	}
}
if (!match) {
	return false;
}
if (!additive || !select.multiple) {
	for (var j = 0; j < select.options.length; j++) {
		select.options[j].selected = false;
	}
}
match.selected = true;
select.dispatchEvent(new Event('input', { bubbles: true }));
select.dispatchEvent(new Event('change', { bubbles: true }));
return true;
`

func (e *seleniumElement) Find(ctx context.Context, css string) (interfaces.Element, bool, error) {
	found, err := e.el.FindElements(selenium.ByCSSSelector, css)
	if err != nil {
		return nil, false, err
	}
	if len(found) == 0 {
		return nil, false, nil
	}
	return &seleniumElement{wd: e.wd, el: found[0]}, true, nil
}

func (e *seleniumElement) Click(ctx context.Context) error {
	return e.el.Click()
}

func (e *seleniumElement) SetValue(ctx context.Context, value string) error {
	if err := e.el.Clear(); err != nil {
		return fmt.Errorf("failed to clear element: %w", err)
	}
	return e.el.SendKeys(value)
}

func (e *seleniumElement) SelectOption(ctx context.Context, option string, additive bool) error {
	result, err := e.wd.ExecuteScript(selectScript, []interface{}{e.el, option, additive})
	if err != nil {
		return err
	}
	if ok, _ := result.(bool); !ok {
		return fmt.Errorf("option %q not found", option)
	}
	return nil
}

func (e *seleniumElement) Check(ctx context.Context) error {
	return e.el.Click()
}

func (e *seleniumElement) Uncheck(ctx context.Context) error {
	return e.el.Click()
}

func (e *seleniumElement) IsChecked(ctx context.Context) (bool, error) {
	return e.el.IsSelected()
}

func (e *seleniumElement) Value(ctx context.Context) (string, error) {
	return e.el.GetAttribute("value")
}

func (e *seleniumElement) Text(ctx context.Context) (string, error) {
	return e.el.Text()
}

func (e *seleniumElement) IsVisible(ctx context.Context) (bool, error) {
	return e.el.IsDisplayed()
}

func (e *seleniumElement) AttachFile(ctx context.Context, path string) error {
	return e.el.SendKeys(path)
}

func (e *seleniumElement) MouseOver(ctx context.Context) error {
	return e.el.MoveTo(0, 0)
}

var (
	_ interfaces.Session = (*SeleniumSession)(nil)
	_ interfaces.Element = (*seleniumElement)(nil)
)
