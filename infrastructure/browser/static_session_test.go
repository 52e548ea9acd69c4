package browser

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"business_selector/domain/entities"
	"business_selector/infrastructure/config"

	logrustest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const loginPage = `<!doctype html>
<html><body>
  <nav><a id="home-link" href="/">Home</a></nav>
  <h1>Sign in</h1>
  <form>
    <input name="email" value="">
    <input type="hidden" name="csrf" value="t0k3n">
    <textarea id="notes">old</textarea>
    <input type="checkbox" id="remember" checked>
    <select id="country">
      <option value="uk" selected>United Kingdom</option>
      <option value="fr">France</option>
    </select>
    <select id="tags" multiple>
      <option value="red" selected>Red</option>
      <option value="blue">Blue</option>
    </select>
    <input type="file" id="avatar">
  </form>
  <div class="flash" style="display: none">Saved</div>
  <section hidden><p class="nested">inside hidden section</p></section>
  <ul class="results"><li class="item">First</li><li class="item">Second</li></ul>
  <iframe id="inline" srcdoc="&lt;p id='greeting'&gt;Hello from inline&lt;/p&gt;"></iframe>
  <iframe id="remote" src="/frame"></iframe>
</body></html>`

const homePage = `<html><body><h1>Welcome   home</h1></body></html>`

const framePage = `<html><body><input id="card" value=""><a id="back" href="/">Back</a></body></html>`

func newStaticServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, homePage)
	})
	mux.HandleFunc("/login", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, loginPage)
	})
	mux.HandleFunc("/frame", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, framePage)
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func newStatic(t *testing.T) (*StaticSession, *httptest.Server) {
	t.Helper()

	server := newStaticServer(t)
	logger, _ := logrustest.NewNullLogger()
	session := NewStaticSession(server.Client(), logger)
	require.NoError(t, session.Visit(context.Background(), server.URL+"/login"))
	return session, server
}

func TestStaticSession_FindFirstAndScoped(t *testing.T) {
	session, _ := newStatic(t)
	ctx := context.Background()

	el, found, err := session.Find(ctx, "li.item")
	require.NoError(t, err)
	require.True(t, found)
	text, _ := el.Text(ctx)
	assert.Equal(t, "First", text)

	results, found, err := session.Find(ctx, ".results")
	require.NoError(t, err)
	require.True(t, found)

	_, found, err = results.Find(ctx, "li.item")
	require.NoError(t, err)
	assert.True(t, found)

	_, found, err = results.Find(ctx, "#remember")
	require.NoError(t, err)
	assert.False(t, found)

	_, found, err = session.Find(ctx, "#missing")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestStaticSession_FormState(t *testing.T) {
	session, _ := newStatic(t)
	ctx := context.Background()

	find := func(css string) *staticElement {
		el, found, err := session.Find(ctx, css)
		require.NoError(t, err)
		require.True(t, found, css)
		return el.(*staticElement)
	}

	email := find("input[name='email']")
	require.NoError(t, email.SetValue(ctx, "a@b.com"))
	value, _ := find("input[name='email']").Value(ctx)
	assert.Equal(t, "a@b.com", value)

	notes := find("#notes")
	require.NoError(t, notes.SetValue(ctx, "new"))
	value, _ = notes.Value(ctx)
	assert.Equal(t, "new", value)

	remember := find("#remember")
	checked, _ := remember.IsChecked(ctx)
	assert.True(t, checked)
	require.NoError(t, remember.Uncheck(ctx))
	checked, _ = find("#remember").IsChecked(ctx)
	assert.False(t, checked)

	country := find("#country")
	require.NoError(t, country.SelectOption(ctx, "France", true))
	value, _ = country.Value(ctx)
	assert.Equal(t, "fr", value, "additive select on a single select replaces")
	assert.Error(t, country.SelectOption(ctx, "Germany", false))

	tags := find("#tags")
	require.NoError(t, tags.SelectOption(ctx, "blue", true))
	assert.Equal(t, 2, tags.sel.Find("option[selected]").Length())
	require.NoError(t, tags.SelectOption(ctx, "Blue", false))
	assert.Equal(t, 1, tags.sel.Find("option[selected]").Length())

	avatar := find("#avatar")
	require.NoError(t, avatar.AttachFile(ctx, "/assets/avatar.png"))
	value, _ = avatar.Value(ctx)
	assert.Equal(t, "/assets/avatar.png", value)
}

func TestStaticSession_Visibility(t *testing.T) {
	session, _ := newStatic(t)
	ctx := context.Background()

	tests := map[string]bool{
		"h1":                  true,
		".flash":              false,
		".nested":             false,
		"input[name='csrf']":  false,
		"input[name='email']": true,
	}
	for css, want := range tests {
		el, found, err := session.Find(ctx, css)
		require.NoError(t, err)
		require.True(t, found, css)
		visible, err := el.IsVisible(ctx)
		require.NoError(t, err)
		assert.Equal(t, want, visible, css)
	}
}

func TestStaticSession_ClickFollowsLinks(t *testing.T) {
	session, server := newStatic(t)
	ctx := context.Background()

	link, found, err := session.Find(ctx, "#home-link")
	require.NoError(t, err)
	require.True(t, found)
	require.NoError(t, link.Click(ctx))

	assert.Equal(t, server.URL+"/", session.CurrentURL())
	ok, err := session.HasContent(ctx, "Welcome home")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestStaticSession_LoadHTMLResolvesLinksAgainstPageURL(t *testing.T) {
	server := newStaticServer(t)
	logger, _ := logrustest.NewNullLogger()
	session := NewStaticSession(server.Client(), logger)
	ctx := context.Background()

	require.NoError(t, session.LoadHTML(server.URL+"/checkout/", `<a id="back" href="../login">Back</a><p>Review order</p>`))
	assert.Equal(t, server.URL+"/checkout/", session.CurrentURL())

	ok, err := session.HasContent(ctx, "Review order")
	require.NoError(t, err)
	assert.True(t, ok)

	link, found, err := session.Find(ctx, "#back")
	require.NoError(t, err)
	require.True(t, found)
	require.NoError(t, link.Click(ctx))

	assert.Equal(t, server.URL+"/login", session.CurrentURL())
	_, found, err = session.Find(ctx, "#remember")
	require.NoError(t, err)
	assert.True(t, found)
}

func TestStaticSession_IFrames(t *testing.T) {
	session, _ := newStatic(t)
	ctx := context.Background()

	require.NoError(t, session.SwitchToIFrame(ctx, "#inline"))
	ok, err := session.HasContent(ctx, "Hello from inline")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, session.SwitchToIFrame(ctx, ""))
	require.NoError(t, session.SwitchToIFrame(ctx, "#remote"))
	_, found, err := session.Find(ctx, "#card")
	require.NoError(t, err)
	assert.True(t, found)

	require.NoError(t, session.SwitchToIFrame(ctx, ""))
	_, found, err = session.Find(ctx, "#card")
	require.NoError(t, err)
	assert.False(t, found)

	assert.Error(t, session.SwitchToIFrame(ctx, "#no-frame"))
}

func TestStaticSession_WaitReturnsImmediately(t *testing.T) {
	session, _ := newStatic(t)

	started := time.Now()
	err := session.Wait(context.Background(), time.Minute, entities.WaitCondition{Selector: ".flash", Expect: entities.Visible})
	require.NoError(t, err)
	assert.Less(t, time.Since(started), time.Second)
}

func TestStaticSession_VisitErrors(t *testing.T) {
	server := newStaticServer(t)
	logger, _ := logrustest.NewNullLogger()
	session := NewStaticSession(server.Client(), logger)
	ctx := context.Background()

	_, _, err := session.Find(ctx, "h1")
	assert.Error(t, err, "no page loaded")

	assert.Error(t, session.Visit(ctx, server.URL+"/nope"))
}

func TestNewSession_Static(t *testing.T) {
	logger, _ := logrustest.NewNullLogger()

	session, err := NewSession(&config.Config{Driver: config.DriverStatic}, logger)
	require.NoError(t, err)
	assert.IsType(t, &StaticSession{}, session)
	assert.NoError(t, session.Close())

	_, err = NewSession(&config.Config{Driver: "lynx"}, logger)
	assert.Error(t, err)
}
