package resolver

import (
	"business_selector/domain/interfaces"
)

// Resolver turns business names into selectors and URL fragments.
// It is the only consumer of the lookup store.
type Resolver struct {
	store interfaces.LookupStore
}

// NewResolver - creates a resolver over store
func NewResolver(store interfaces.LookupStore) *Resolver {
	return &Resolver{store: store}
}

// Selector - resolves a business name to a CSS selector
func (r *Resolver) Selector(term string) (string, error) {
	return r.store.ResolveSelector(term)
}

// URL - resolves a business name to a URL fragment
func (r *Resolver) URL(term string) (string, error) {
	return r.store.ResolveURL(term)
}
