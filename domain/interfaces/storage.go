package interfaces

// LookupStore resolves business terms against the selector and URL tables
type LookupStore interface {
	// ResolveSelector returns the CSS selector configured for term
	ResolveSelector(term string) (string, error)

	// ResolveURL returns the URL fragment configured for term
	ResolveURL(term string) (string, error)
}
