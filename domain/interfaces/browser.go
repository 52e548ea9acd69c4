package interfaces

import (
	"context"
	"time"

	"business_selector/domain/entities"
)

// Scope is anything a CSS search can start from: the current page or a located element
type Scope interface {
	// Find returns the first node matching css, or found=false when nothing matches
	Find(ctx context.Context, css string) (el Element, found bool, err error)
}

// Element is a live handle to one DOM node, valid for the current step only
type Element interface {
	Scope

	// Click clicks the node
	Click(ctx context.Context) error

	// SetValue replaces the value of a form field
	SetValue(ctx context.Context, value string) error

	// SelectOption selects an option by value or label; additive keeps existing selections
	SelectOption(ctx context.Context, option string, additive bool) error

	// Check ticks a checkbox
	Check(ctx context.Context) error

	// Uncheck clears a checkbox
	Uncheck(ctx context.Context) error

	// IsChecked reports the checkbox state
	IsChecked(ctx context.Context) (bool, error)

	// Value returns the current form value
	Value(ctx context.Context) (string, error)

	// Text returns the rendered text
	Text(ctx context.Context) (string, error)

	// IsVisible reports whether the node is rendered visibly
	IsVisible(ctx context.Context) (bool, error)

	// AttachFile sets a file input to the given absolute path
	AttachFile(ctx context.Context, path string) error

	// MouseOver moves the pointer over the node
	MouseOver(ctx context.Context) error
}

// Session is one browser automation session
type Session interface {
	Scope

	// Visit navigates to a URL and resets frame focus to the primary page
	Visit(ctx context.Context, url string) error

	// SwitchToIFrame moves the search root into the iframe matching selector;
	// an empty selector returns to the primary page
	SwitchToIFrame(ctx context.Context, selector string) error

	// Wait blocks until cond holds or timeout elapses. Running out of time is not an error.
	Wait(ctx context.Context, timeout time.Duration, cond entities.WaitCondition) error

	// HasContent reports whether the page text contains text
	HasContent(ctx context.Context, text string) (bool, error)

	// Close releases the session
	Close() error
}

// Presence is the explicit outcome of probing for an element that may be absent
type Presence struct {
	Element  Element
	Found    bool
	Selector string
}
