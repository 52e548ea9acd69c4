package locator

import (
	"context"
	"fmt"

	"business_selector/application/resolver"
	"business_selector/domain/errs"
	"business_selector/domain/interfaces"
)

// Locator finds DOM nodes by business name
type Locator struct {
	session  interfaces.Session
	resolver *resolver.Resolver
}

// NewLocator - creates a locator searching session
func NewLocator(session interfaces.Session, resolver *resolver.Resolver) *Locator {
	return &Locator{session: session, resolver: resolver}
}

// Locate - finds the first node for term under scope, or the page root when scope is nil.
// A missing node is an ElementNotFound error.
func (l *Locator) Locate(ctx context.Context, term string, scope interfaces.Element) (interfaces.Element, error) {
	presence, err := l.Probe(ctx, term, scope)
	if err != nil {
		return nil, err
	}
	if !presence.Found {
		return nil, errs.Newf(errs.ElementNotFound, "Element %s using selector %s not found", term, presence.Selector)
	}
	return presence.Element, nil
}

// Probe - looks for term under scope and reports whether it was found.
// It fails only when term cannot be resolved or the session errors.
func (l *Locator) Probe(ctx context.Context, term string, scope interfaces.Element) (interfaces.Presence, error) {
	selector, err := l.resolver.Selector(term)
	if err != nil {
		return interfaces.Presence{}, err
	}

	var root interfaces.Scope = l.session
	if scope != nil {
		root = scope
	}

	el, found, err := root.Find(ctx, selector)
	if err != nil {
		return interfaces.Presence{}, fmt.Errorf("failed to find %s: %w", term, err)
	}
	if !found || el == nil {
		return interfaces.Presence{Selector: selector}, nil
	}
	return interfaces.Presence{Element: el, Found: true, Selector: selector}, nil
}
