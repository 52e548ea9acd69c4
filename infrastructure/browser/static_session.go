package browser

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"business_selector/domain/entities"
	"business_selector/domain/interfaces"

	"github.com/PuerkitoBio/goquery"
	"github.com/sirupsen/logrus"
)

// StaticSession works on server-rendered HTML without running scripts.
// Form interactions change the parsed document only; nothing is submitted.
type StaticSession struct {
	client *http.Client
	logger *logrus.Logger

	url   *url.URL
	doc   *goquery.Document
	frame *goquery.Document
	// frameURL is the base for links inside the focused frame
	frameURL *url.URL
}

// NewStaticSession - creates a static session fetching pages with client
func NewStaticSession(client *http.Client, logger *logrus.Logger) *StaticSession {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &StaticSession{client: client, logger: logger}
}

// Visit - fetches and parses url
func (s *StaticSession) Visit(ctx context.Context, rawURL string) error {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid url %s: %w", rawURL, err)
	}

	doc, err := s.fetch(ctx, parsed)
	if err != nil {
		return err
	}

	s.url = parsed
	s.doc = doc
	s.frame = nil
	s.frameURL = nil
	return nil
}

// LoadHTML - replaces the current page with html as if it had been served from pageURL
func (s *StaticSession) LoadHTML(pageURL, html string) error {
	parsed, err := url.Parse(pageURL)
	if err != nil {
		return fmt.Errorf("invalid url %s: %w", pageURL, err)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return fmt.Errorf("failed to parse HTML: %w", err)
	}

	s.url = parsed
	s.doc = doc
	s.frame = nil
	s.frameURL = nil
	return nil
}

func (s *StaticSession) fetch(ctx context.Context, target *url.URL) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("received status code %d from %s", resp.StatusCode, target)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return doc, nil
}

func (s *StaticSession) root() (*goquery.Selection, error) {
	if s.frame != nil {
		return s.frame.Selection, nil
	}
	if s.doc == nil {
		return nil, fmt.Errorf("no page loaded")
	}
	return s.doc.Selection, nil
}

func (s *StaticSession) base() *url.URL {
	if s.frameURL != nil {
		return s.frameURL
	}
	return s.url
}

// Find - returns the first match of css in the focused document
func (s *StaticSession) Find(ctx context.Context, css string) (interfaces.Element, bool, error) {
	root, err := s.root()
	if err != nil {
		return nil, false, err
	}
	return s.first(root.Find(css))
}

func (s *StaticSession) first(sel *goquery.Selection) (interfaces.Element, bool, error) {
	if sel.Length() == 0 {
		return nil, false, nil
	}
	return &staticElement{session: s, sel: sel.First()}, true, nil
}

// SwitchToIFrame - focuses an iframe's srcdoc or fetched src document
func (s *StaticSession) SwitchToIFrame(ctx context.Context, selector string) error {
	if selector == "" {
		s.frame = nil
		s.frameURL = nil
		return nil
	}

	root, err := s.root()
	if err != nil {
		return err
	}
	iframe := root.Find(selector).First()
	if iframe.Length() == 0 {
		return fmt.Errorf("iframe not found: %s", selector)
	}

	if srcdoc, ok := iframe.Attr("srcdoc"); ok {
		doc, err := goquery.NewDocumentFromReader(strings.NewReader(srcdoc))
		if err != nil {
			return fmt.Errorf("failed to parse iframe srcdoc: %w", err)
		}
		s.frame = doc
		s.frameURL = s.base()
		return nil
	}

	src, ok := iframe.Attr("src")
	if !ok || s.base() == nil {
		return fmt.Errorf("iframe %s has no document", selector)
	}
	target, err := s.base().Parse(strings.TrimSpace(src))
	if err != nil {
		return fmt.Errorf("invalid iframe src %q: %w", src, err)
	}
	doc, err := s.fetch(ctx, target)
	if err != nil {
		return err
	}
	s.frame = doc
	s.frameURL = target
	return nil
}

// Wait - static documents never change on their own, so the condition is checked once
func (s *StaticSession) Wait(ctx context.Context, timeout time.Duration, cond entities.WaitCondition) error {
	root, err := s.root()
	if err != nil {
		return err
	}

	sel := root.Find(cond.Selector).First()
	shown := sel.Length() > 0 && isRendered(sel)
	if (cond.Expect == entities.Visible) != shown {
		s.logger.Debugf("Static page does not satisfy %s for %s; not waiting", cond.Expect, cond.Selector)
	}
	return nil
}

// HasContent - checks whitespace-normalized body text
func (s *StaticSession) HasContent(ctx context.Context, text string) (bool, error) {
	root, err := s.root()
	if err != nil {
		return false, err
	}
	body := root.Find("body")
	if body.Length() == 0 {
		body = root
	}
	return strings.Contains(normalizeSpace(body.Text()), normalizeSpace(text)), nil
}

// Close - drops the loaded documents
func (s *StaticSession) Close() error {
	s.doc = nil
	s.frame = nil
	s.client.CloseIdleConnections()
	return nil
}

// CurrentURL - returns the URL of the loaded page
func (s *StaticSession) CurrentURL() string {
	if s.url == nil {
		return ""
	}
	return s.url.String()
}

type staticElement struct {
	session *StaticSession
	sel     *goquery.Selection
}

func (e *staticElement) Find(ctx context.Context, css string) (interfaces.Element, bool, error) {
	return e.session.first(e.sel.Find(css))
}

// Click - follows links; other elements have no script to run
func (e *staticElement) Click(ctx context.Context) error {
	link := e.sel.Closest("a[href]")
	if link.Length() == 0 {
		e.session.logger.Debugf("Click on <%s> has no effect on a static page", goquery.NodeName(e.sel))
		return nil
	}

	href, _ := link.Attr("href")
	base := e.session.base()
	if base == nil {
		return fmt.Errorf("cannot follow %q without a loaded page", href)
	}
	target, err := base.Parse(strings.TrimSpace(href))
	if err != nil {
		return fmt.Errorf("invalid link %q: %w", href, err)
	}
	return e.session.Visit(ctx, target.String())
}

func (e *staticElement) SetValue(ctx context.Context, value string) error {
	if goquery.NodeName(e.sel) == "textarea" {
		e.sel.SetText(value)
		return nil
	}
	e.sel.SetAttr("value", value)
	return nil
}

func (e *staticElement) SelectOption(ctx context.Context, option string, additive bool) error {
	if goquery.NodeName(e.sel) != "select" {
		return fmt.Errorf("element is a <%s>, not a <select>", goquery.NodeName(e.sel))
	}

	options := e.sel.Find("option")
	match := options.FilterFunction(func(_ int, o *goquery.Selection) bool {
		return optionValue(o) == option || normalizeSpace(o.Text()) == option
	}).First()
	if match.Length() == 0 {
		return fmt.Errorf("option %q not found", option)
	}

	_, multiple := e.sel.Attr("multiple")
	if !additive || !multiple {
		options.RemoveAttr("selected")
	}
	match.SetAttr("selected", "selected")
	return nil
}

func (e *staticElement) Check(ctx context.Context) error {
	e.sel.SetAttr("checked", "checked")
	return nil
}

func (e *staticElement) Uncheck(ctx context.Context) error {
	e.sel.RemoveAttr("checked")
	return nil
}

func (e *staticElement) IsChecked(ctx context.Context) (bool, error) {
	_, ok := e.sel.Attr("checked")
	return ok, nil
}

func (e *staticElement) Value(ctx context.Context) (string, error) {
	switch goquery.NodeName(e.sel) {
	case "textarea":
		return e.sel.Text(), nil
	case "select":
		selected := e.sel.Find("option[selected]").First()
		if selected.Length() == 0 {
			selected = e.sel.Find("option").First()
		}
		if selected.Length() == 0 {
			return "", nil
		}
		return optionValue(selected), nil
	}
	value, _ := e.sel.Attr("value")
	return value, nil
}

func (e *staticElement) Text(ctx context.Context) (string, error) {
	return normalizeSpace(e.sel.Text()), nil
}

func (e *staticElement) IsVisible(ctx context.Context) (bool, error) {
	return isRendered(e.sel), nil
}

func (e *staticElement) AttachFile(ctx context.Context, path string) error {
	e.sel.SetAttr("value", path)
	return nil
}

func (e *staticElement) MouseOver(ctx context.Context) error {
	return nil
}

// isRendered - reports whether neither the node nor an ancestor is hidden by markup
func isRendered(sel *goquery.Selection) bool {
	if goquery.NodeName(sel) == "input" {
		if t, _ := sel.Attr("type"); strings.EqualFold(t, "hidden") {
			return false
		}
	}

	hidden := false
	sel.AddSelection(sel.Parents()).EachWithBreak(func(_ int, node *goquery.Selection) bool {
		if _, ok := node.Attr("hidden"); ok {
			hidden = true
			return false
		}
		style, _ := node.Attr("style")
		style = strings.ToLower(strings.ReplaceAll(style, " ", ""))
		if strings.Contains(style, "display:none") || strings.Contains(style, "visibility:hidden") {
			hidden = true
			return false
		}
		return true
	})
	return !hidden
}

func optionValue(o *goquery.Selection) string {
	if v, ok := o.Attr("value"); ok {
		return v
	}
	return normalizeSpace(o.Text())
}

func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

var (
	_ interfaces.Session = (*StaticSession)(nil)
	_ interfaces.Element = (*staticElement)(nil)
)
