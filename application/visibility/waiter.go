package visibility

import (
	"context"
	"fmt"
	"time"

	"business_selector/application/resolver"
	"business_selector/domain/entities"
	"business_selector/domain/errs"
	"business_selector/domain/interfaces"

	"github.com/sirupsen/logrus"
)

// Waiter blocks a step until a component reaches the expected visibility
type Waiter struct {
	session  interfaces.Session
	resolver *resolver.Resolver
	logger   *logrus.Logger
}

// NewWaiter - creates a waiter polling session
func NewWaiter(session interfaces.Session, resolver *resolver.Resolver, logger *logrus.Logger) *Waiter {
	return &Waiter{session: session, resolver: resolver, logger: logger}
}

// WaitFor - waits up to timeout for term to become visible or hidden, then re-checks the page.
func (w *Waiter) WaitFor(ctx context.Context, term string, expect entities.Visibility, timeout time.Duration) error {
	selector, err := w.resolver.Selector(term)
	if err != nil {
		return err
	}

	started := time.Now()
	if err := w.session.Wait(ctx, timeout, NewCondition(selector, expect)); err != nil {
		return fmt.Errorf("failed to wait for %s: %w", term, err)
	}
	w.logger.Debugf("Waited %v for %s to be %s", time.Since(started), term, expect)

	return w.verify(ctx, term, selector, expect)
}

// verify - makes the pass/fail decision the wait itself cannot make
func (w *Waiter) verify(ctx context.Context, term, selector string, expect entities.Visibility) error {
	el, found, err := w.session.Find(ctx, selector)
	if err != nil {
		return fmt.Errorf("failed to find %s: %w", term, err)
	}

	if !found || el == nil {
		if expect == entities.Visible {
			return errs.Newf(errs.VisibilityTimeout, "Component %s does not appear on the page", term)
		}
		return nil
	}

	visible, err := el.IsVisible(ctx)
	if err != nil {
		return fmt.Errorf("failed to check visibility of %s: %w", term, err)
	}

	switch {
	case expect == entities.Hidden && visible:
		return errs.Newf(errs.VisibilityTimeout, "Component %s is still visible", term)
	case expect == entities.Visible && !visible:
		return errs.Newf(errs.VisibilityTimeout, "Component %s is on page but not visible", term)
	}
	return nil
}
