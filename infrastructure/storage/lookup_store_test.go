package storage

import (
	"fmt"
	"testing"

	"business_selector/domain/entities"
	"business_selector/domain/errs"

	"github.com/sirupsen/logrus"
	logrustest "github.com/sirupsen/logrus/hooks/test"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// countingFs counts how often each path is opened
type countingFs struct {
	afero.Fs
	opens map[string]int
}

func (c *countingFs) Open(name string) (afero.File, error) {
	c.opens[name]++
	return c.Fs.Open(name)
}

func newTestStore(t *testing.T, files map[string]string) (*LookupStore, *countingFs) {
	t.Helper()

	mem := afero.NewMemMapFs()
	for path, content := range files {
		require.NoError(t, afero.WriteFile(mem, path, []byte(content), 0644))
	}
	fs := &countingFs{Fs: mem, opens: map[string]int{}}

	logger, _ := logrustest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	cfg := entities.ContextConfig{
		SelectorFilePath: "/features/selectors.yml",
		URLFilePath:      "/features/urls.yml",
	}
	return NewLookupStore(fs, cfg, logger), fs
}

const selectorsYAML = `
Login button: "#login-btn"
Email: "input[name='email']"
Search results: ".results li"
`

const urlsYAML = `
Home: /
Login page: /login
`

func TestLookupStore_ResolvesConfiguredValues(t *testing.T) {
	store, _ := newTestStore(t, map[string]string{
		"/features/selectors.yml": selectorsYAML,
		"/features/urls.yml":      urlsYAML,
	})

	sel, err := store.ResolveSelector("Login button")
	require.NoError(t, err)
	assert.Equal(t, "#login-btn", sel)

	sel, err = store.ResolveSelector("Email")
	require.NoError(t, err)
	assert.Equal(t, "input[name='email']", sel)

	url, err := store.ResolveURL("Login page")
	require.NoError(t, err)
	assert.Equal(t, "/login", url)

	url, err = store.ResolveURL("Home")
	require.NoError(t, err)
	assert.Equal(t, "/", url)
}

func TestLookupStore_LoadsEachTableOnce(t *testing.T) {
	store, fs := newTestStore(t, map[string]string{
		"/features/selectors.yml": selectorsYAML,
		"/features/urls.yml":      urlsYAML,
	})

	for i := 0; i < 3; i++ {
		_, err := store.ResolveSelector("Login button")
		require.NoError(t, err)
		_, err = store.ResolveURL("Home")
		require.NoError(t, err)
	}
	_, err := store.ResolveSelector("Missing Field")
	require.Error(t, err)

	assert.Equal(t, 1, fs.opens["/features/selectors.yml"])
	assert.Equal(t, 1, fs.opens["/features/urls.yml"])
}

func TestLookupStore_TablesLoadIndependently(t *testing.T) {
	store, fs := newTestStore(t, map[string]string{
		"/features/selectors.yml": selectorsYAML,
	})

	_, err := store.ResolveSelector("Email")
	require.NoError(t, err)
	assert.Zero(t, fs.opens["/features/urls.yml"], "url table must stay unloaded")
}

func TestLookupStore_TermNotFound(t *testing.T) {
	store, _ := newTestStore(t, map[string]string{
		"/features/selectors.yml": selectorsYAML,
		"/features/urls.yml":      urlsYAML,
	})

	_, err := store.ResolveSelector("login button")
	require.Error(t, err)
	assert.Equal(t, errs.TermNotFound, errs.CodeOf(err))
	assert.Contains(t, err.Error(), "login button")

	_, err = store.ResolveURL("Checkout")
	require.Error(t, err)
	assert.Equal(t, errs.TermNotFound, errs.CodeOf(err))
}

func TestLookupStore_LoadFailures(t *testing.T) {
	tests := []struct {
		name    string
		files   map[string]string
		cfg     *entities.ContextConfig
		wantErr errs.Code
	}{
		{
			name:    "missing file",
			files:   map[string]string{},
			wantErr: errs.FileNotFound,
		},
		{
			name:    "empty file",
			files:   map[string]string{"/features/selectors.yml": ""},
			wantErr: errs.Parse,
		},
		{
			name:    "not a mapping",
			files:   map[string]string{"/features/selectors.yml": "- one\n- two\n"},
			wantErr: errs.Parse,
		},
		{
			name:    "malformed yaml",
			files:   map[string]string{"/features/selectors.yml": "Login button: [unterminated\n"},
			wantErr: errs.Parse,
		},
		{
			name:    "path not configured",
			files:   map[string]string{},
			cfg:     &entities.ContextConfig{URLFilePath: "/features/urls.yml"},
			wantErr: errs.Configuration,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, _ := newTestStore(t, tt.files)
			if tt.cfg != nil {
				store = NewLookupStore(store.fs, *tt.cfg, store.logger)
			}

			_, err := store.ResolveSelector("Login button")
			require.Error(t, err)
			assert.Equal(t, tt.wantErr, errs.CodeOf(err))
		})
	}
}

func TestLookupStore_FailedLoadIsRetriedNextCall(t *testing.T) {
	store, fs := newTestStore(t, map[string]string{})

	_, err := store.ResolveSelector("Email")
	require.Error(t, err)

	require.NoError(t, afero.WriteFile(fs.Fs, "/features/selectors.yml", []byte(selectorsYAML), 0644))
	sel, err := store.ResolveSelector("Email")
	require.NoError(t, err)
	assert.Equal(t, "input[name='email']", sel)
}

func TestLookupStore_ResolutionProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		terms := rapid.MapOfN(
			rapid.StringMatching(`[A-Za-z][A-Za-z ]{0,20}[A-Za-z]`),
			rapid.StringMatching(`[#.][a-z][a-z0-9-]{0,15}`),
			1, 10,
		).Draw(rt, "terms")
		absent := rapid.StringMatching(`[0-9]{3,8}`).Draw(rt, "absent")

		var doc string
		for term, sel := range terms {
			doc += fmt.Sprintf("%q: %q\n", term, sel)
		}

		mem := afero.NewMemMapFs()
		if err := afero.WriteFile(mem, "/s.yml", []byte(doc), 0644); err != nil {
			rt.Fatalf("write: %v", err)
		}
		logger, _ := logrustest.NewNullLogger()
		store := NewLookupStore(mem, entities.ContextConfig{SelectorFilePath: "/s.yml", URLFilePath: "/u.yml"}, logger)

		for term, want := range terms {
			got, err := store.ResolveSelector(term)
			if err != nil {
				rt.Fatalf("ResolveSelector(%q): %v", term, err)
			}
			if got != want {
				rt.Fatalf("ResolveSelector(%q) = %q, want %q", term, got, want)
			}
		}
		if _, err := store.ResolveSelector(absent); !errs.Is(err, errs.TermNotFound) {
			rt.Fatalf("ResolveSelector(%q) error = %v, want term_not_found", absent, err)
		}
	})
}
