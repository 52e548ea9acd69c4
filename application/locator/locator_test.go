package locator

import (
	"context"
	"testing"

	"business_selector/application/resolver"
	"business_selector/domain/errs"
	"business_selector/internal/sessiontest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tableStore map[string]string

func (t tableStore) ResolveSelector(term string) (string, error) {
	if v, ok := t[term]; ok {
		return v, nil
	}
	return "", errs.Newf(errs.TermNotFound, "Selector: %s not found in selectors file", term)
}

func (t tableStore) ResolveURL(term string) (string, error) {
	return "", errs.Newf(errs.TermNotFound, "URL: %s not found in urls file", term)
}

func newLocator(session *sessiontest.Session) *Locator {
	store := tableStore{
		"Results":     ".results",
		"Result item": "li.item",
		"Banner":      "#banner",
	}
	return NewLocator(session, resolver.NewResolver(store))
}

func TestLocate_ReturnsFirstMatch(t *testing.T) {
	session := sessiontest.NewSession().
		Add("li.item", sessiontest.NewNode("first"), sessiontest.NewNode("second"))

	el, err := newLocator(session).Locate(context.Background(), "Result item", nil)
	require.NoError(t, err)
	assert.Equal(t, "first", el.(*sessiontest.Node).ID)
}

func TestLocate_ZeroMatchesIsElementNotFound(t *testing.T) {
	session := sessiontest.NewSession()

	el, err := newLocator(session).Locate(context.Background(), "Banner", nil)
	require.Error(t, err)
	assert.Nil(t, el)
	assert.Equal(t, errs.ElementNotFound, errs.CodeOf(err))
	assert.Contains(t, err.Error(), "#banner")
}

func TestLocate_UnknownTermMakesNoSessionCalls(t *testing.T) {
	session := sessiontest.NewSession()

	_, err := newLocator(session).Locate(context.Background(), "Missing Field", nil)
	require.Error(t, err)
	assert.Equal(t, errs.TermNotFound, errs.CodeOf(err))
	assert.Empty(t, session.Calls)
}

func TestLocate_ScopedSearch(t *testing.T) {
	results := sessiontest.NewNode("results").Add("li.item", sessiontest.NewNode("scoped"))
	session := sessiontest.NewSession().
		Add(".results", results).
		Add("li.item", sessiontest.NewNode("page-level"))
	loc := newLocator(session)
	ctx := context.Background()

	scope, err := loc.Locate(ctx, "Results", nil)
	require.NoError(t, err)

	el, err := loc.Locate(ctx, "Result item", scope)
	require.NoError(t, err)
	assert.Equal(t, "scoped", el.(*sessiontest.Node).ID)
}

func TestProbe_ReportsAbsenceWithoutError(t *testing.T) {
	results := sessiontest.NewNode("results")
	session := sessiontest.NewSession().
		Add(".results", results).
		Add("li.item", sessiontest.NewNode("outside"))
	loc := newLocator(session)
	ctx := context.Background()

	scope, err := loc.Locate(ctx, "Results", nil)
	require.NoError(t, err)

	presence, err := loc.Probe(ctx, "Result item", scope)
	require.NoError(t, err)
	assert.False(t, presence.Found)
	assert.Equal(t, "li.item", presence.Selector)
	assert.Nil(t, presence.Element)
}
