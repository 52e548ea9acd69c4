package dispatcher

import (
	"context"
	"fmt"

	"business_selector/application/locator"
	"business_selector/application/resolver"
	"business_selector/application/visibility"
	"business_selector/domain/entities"
	"business_selector/domain/errs"
	"business_selector/domain/interfaces"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// Dispatcher runs business-vocabulary steps against one browser session.
// Steps execute sequentially; a Dispatcher is not safe for concurrent use.
type Dispatcher struct {
	session  interfaces.Session
	resolver *resolver.Resolver
	locator  *locator.Locator
	waiter   *visibility.Waiter
	config   entities.ContextConfig
	fs       afero.Fs
	logger   *logrus.Logger
}

// NewDispatcher - creates a dispatcher over session and store.
// fs is used to check attachment files.
func NewDispatcher(session interfaces.Session, store interfaces.LookupStore, cfg entities.ContextConfig, fs afero.Fs, logger *logrus.Logger) *Dispatcher {
	res := resolver.NewResolver(store)
	return &Dispatcher{
		session:  session,
		resolver: res,
		locator:  locator.NewLocator(session, res),
		waiter:   visibility.NewWaiter(session, res, logger),
		config:   cfg,
		fs:       fs,
		logger:   logger,
	}
}

// GoToPage - navigates to the page registered under pageName
func (d *Dispatcher) GoToPage(ctx context.Context, pageName string) error {
	frag, err := d.resolver.URL(pageName)
	if err != nil {
		return err
	}

	url := d.config.PageURL(frag)
	d.logger.Infof("Navigating to: %s", url)

	if err := d.session.Visit(ctx, url); err != nil {
		return fmt.Errorf("failed to navigate to %s: %w", url, err)
	}
	return nil
}

// FocusIFrame - moves the search root into the named iframe
func (d *Dispatcher) FocusIFrame(ctx context.Context, elementName string) error {
	selector, err := d.resolver.Selector(elementName)
	if err != nil {
		return err
	}

	d.logger.Infof("Focusing iframe: %s", selector)
	if err := d.session.SwitchToIFrame(ctx, selector); err != nil {
		return fmt.Errorf("failed to focus iframe %s: %w", elementName, err)
	}
	return nil
}

// RefocusPrimaryPage - returns the search root to the top-level page
func (d *Dispatcher) RefocusPrimaryPage(ctx context.Context) error {
	d.logger.Info("Refocusing on the primary page")
	if err := d.session.SwitchToIFrame(ctx, ""); err != nil {
		return fmt.Errorf("failed to refocus on the primary page: %w", err)
	}
	return nil
}

// ShouldSeeOnPage - asserts the page contains the text registered under textName
func (d *Dispatcher) ShouldSeeOnPage(ctx context.Context, textName string) error {
	text, err := d.resolver.Selector(textName)
	if err != nil {
		return err
	}

	found, err := d.session.HasContent(ctx, text)
	if err != nil {
		return fmt.Errorf("failed to read page content: %w", err)
	}
	if !found {
		return &errs.Error{
			Code:     errs.AssertionMismatch,
			Message:  fmt.Sprintf("'%s' (%s) not found on the page", text, textName),
			Expected: text,
		}
	}
	return nil
}

// WaitForComponent - waits for a component to appear or disappear within the configured timeout
func (d *Dispatcher) WaitForComponent(ctx context.Context, elementName string, expect entities.Visibility) error {
	d.logger.Infof("Waiting for %s to be %s", elementName, expect)
	return d.waiter.WaitFor(ctx, elementName, expect, d.config.WaitTimeout())
}
