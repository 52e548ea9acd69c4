package browser

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"business_selector/domain/entities"
	"business_selector/domain/interfaces"

	"github.com/playwright-community/playwright-go"
	"github.com/sirupsen/logrus"
)

// PlaywrightOptions configures the Playwright-backed session
type PlaywrightOptions struct {
	Headless bool
	// NavigationTimeout bounds Visit; zero means 30s
	NavigationTimeout time.Duration
}

// PlaywrightSession drives Chromium through Playwright.
// Searches run in the focused frame, which is the main frame until an iframe is focused.
type PlaywrightSession struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	context playwright.BrowserContext
	page    playwright.Page
	frame   playwright.Frame
	opts    PlaywrightOptions
	logger  *logrus.Logger
}

// NewPlaywrightSession - launches Chromium and opens a page
func NewPlaywrightSession(opts PlaywrightOptions, logger *logrus.Logger) (*PlaywrightSession, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright: %w", err)
	}

	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(opts.Headless),
		Args: []string{
			"--disable-dev-shm-usage",
			"--no-sandbox",
		},
	})
	if err != nil {
		pw.Stop()
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	context, err := browser.NewContext(playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{
			Width:  1280,
			Height: 720,
		},
		JavaScriptEnabled: playwright.Bool(true),
		IgnoreHttpsErrors: playwright.Bool(true),
	})
	if err != nil {
		browser.Close()
		pw.Stop()
		return nil, fmt.Errorf("failed to create context: %w", err)
	}

	page, err := context.NewPage()
	if err != nil {
		context.Close()
		browser.Close()
		pw.Stop()
		return nil, fmt.Errorf("failed to create page: %w", err)
	}

	page.OnDialog(func(dialog playwright.Dialog) {
		dialog.Accept()
	})

	return &PlaywrightSession{
		pw:      pw,
		browser: browser,
		context: context,
		page:    page,
		frame:   page.MainFrame(),
		opts:    opts,
		logger:  logger,
	}, nil
}

// Visit - navigates the page and refocuses the main frame
func (s *PlaywrightSession) Visit(ctx context.Context, url string) error {
	timeout := s.opts.NavigationTimeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	s.logger.Debugf("Navigating to: %s", url)
	_, err := s.page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateLoad,
		Timeout:   playwright.Float(float64(timeout.Milliseconds())),
	})
	s.frame = s.page.MainFrame()
	return err
}

// Find - returns the first match of css in the focused frame
func (s *PlaywrightSession) Find(ctx context.Context, css string) (interfaces.Element, bool, error) {
	return firstLocated(s.frame.Locator(css))
}

// SwitchToIFrame - focuses the content frame of the iframe matching selector
func (s *PlaywrightSession) SwitchToIFrame(ctx context.Context, selector string) error {
	if selector == "" {
		s.frame = s.page.MainFrame()
		return nil
	}

	handle, err := s.frame.Locator(selector).First().ElementHandle()
	if err != nil {
		return fmt.Errorf("iframe not found: %w", err)
	}
	frame, err := handle.ContentFrame()
	if err != nil {
		return fmt.Errorf("failed to enter iframe: %w", err)
	}
	if frame == nil {
		return fmt.Errorf("element %s is not an iframe", selector)
	}

	s.frame = frame
	return nil
}

// Wait - polls cond.Script in the focused frame; a timeout returns nil
func (s *PlaywrightSession) Wait(ctx context.Context, timeout time.Duration, cond entities.WaitCondition) error {
	_, err := s.frame.WaitForFunction(cond.Script, nil, playwright.FrameWaitForFunctionOptions{
		Timeout: playwright.Float(float64(timeout.Milliseconds())),
	})
	if err != nil {
		if errors.Is(err, playwright.ErrTimeout) {
			s.logger.Debugf("Stopped waiting for %s to be %s after %v", cond.Selector, cond.Expect, timeout)
			return nil
		}
		return err
	}
	return nil
}

// HasContent - checks the rendered text of the focused frame
func (s *PlaywrightSession) HasContent(ctx context.Context, text string) (bool, error) {
	content, err := s.frame.Locator("body").InnerText()
	if err != nil {
		return false, err
	}
	return strings.Contains(content, text), nil
}

// Close - closes the browser and stops playwright
func (s *PlaywrightSession) Close() error {
	var closeErr error

	if s.context != nil {
		if err := s.context.Close(); err != nil && !isClosedError(err) {
			closeErr = fmt.Errorf("failed to close context: %w", err)
		}
		s.context = nil
	}

	if s.browser != nil {
		if err := s.browser.Close(); err != nil && !isClosedError(err) {
			if closeErr != nil {
				closeErr = fmt.Errorf("%v; failed to close browser: %w", closeErr, err)
			} else {
				closeErr = fmt.Errorf("failed to close browser: %w", err)
			}
		}
		s.browser = nil
	}

	if s.pw != nil {
		if err := s.pw.Stop(); err != nil && closeErr == nil {
			closeErr = fmt.Errorf("failed to stop playwright: %w", err)
		}
		s.pw = nil
	}

	return closeErr
}

// isClosedError - reports errors from closing something already closed
func isClosedError(err error) bool {
	errStr := err.Error()
	return strings.Contains(errStr, "closed") || strings.Contains(errStr, "target closed")
}

func firstLocated(locator playwright.Locator) (interfaces.Element, bool, error) {
	count, err := locator.Count()
	if err != nil {
		return nil, false, err
	}
	if count == 0 {
		return nil, false, nil
	}
	return &playwrightElement{locator: locator.First()}, true, nil
}

type playwrightElement struct {
	locator playwright.Locator
}

func (e *playwrightElement) Find(ctx context.Context, css string) (interfaces.Element, bool, error) {
	return firstLocated(e.locator.Locator(css))
}

func (e *playwrightElement) Click(ctx context.Context) error {
	return e.locator.Click()
}

func (e *playwrightElement) SetValue(ctx context.Context, value string) error {
	return e.locator.Fill(value)
}

func (e *playwrightElement) SelectOption(ctx context.Context, option string, additive bool) error {
	var current []string
	if additive {
		var err error
		if current, err = e.selectedValues(); err != nil {
			return err
		}
	}

	_, err := e.locator.SelectOption(optionSet(current, option))
	return err
}

// optionSet - keeps the current selection and adds option, matched by value or label
func optionSet(current []string, option string) playwright.SelectOptionValues {
	wanted := make([]string, 0, len(current)+1)
	wanted = append(wanted, current...)
	wanted = append(wanted, option)
	return playwright.SelectOptionValues{ValuesOrLabels: &wanted}
}

// selectedValues - reads the selected values of a multiple select; single selects report none
func (e *playwrightElement) selectedValues() ([]string, error) {
	result, err := e.locator.Evaluate(`el => el.multiple ? Array.from(el.selectedOptions).map(o => o.value) : []`, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to read selection: %w", err)
	}

	raw, _ := result.([]interface{})
	values := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			values = append(values, s)
		}
	}
	return values, nil
}

func (e *playwrightElement) Check(ctx context.Context) error {
	return e.locator.Check()
}

func (e *playwrightElement) Uncheck(ctx context.Context) error {
	return e.locator.Uncheck()
}

func (e *playwrightElement) IsChecked(ctx context.Context) (bool, error) {
	return e.locator.IsChecked()
}

func (e *playwrightElement) Value(ctx context.Context) (string, error) {
	return e.locator.InputValue()
}

func (e *playwrightElement) Text(ctx context.Context) (string, error) {
	return e.locator.InnerText()
}

func (e *playwrightElement) IsVisible(ctx context.Context) (bool, error) {
	return e.locator.IsVisible()
}

func (e *playwrightElement) AttachFile(ctx context.Context, path string) error {
	return e.locator.SetInputFiles([]string{path})
}

func (e *playwrightElement) MouseOver(ctx context.Context) error {
	return e.locator.Hover()
}

var (
	_ interfaces.Session = (*PlaywrightSession)(nil)
	_ interfaces.Element = (*playwrightElement)(nil)
)
