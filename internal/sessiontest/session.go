// Package sessiontest provides an in-memory browser session that records every call.
package sessiontest

import (
	"context"
	"fmt"
	"strings"
	"time"

	"business_selector/domain/entities"
	"business_selector/domain/interfaces"
)

// DefaultPollInterval is the simulated polling cadence of Wait
const DefaultPollInterval = 100 * time.Millisecond

// Call is one recorded session or element call
type Call struct {
	Method string
	Target string
	Arg    string
}

// Session is a scriptable fake. Matches are keyed by the exact CSS string.
type Session struct {
	URL     string
	Content string
	Frames  map[string]map[string][]*Node

	// PollInterval is the simulated time between condition checks in Wait
	PollInterval time.Duration
	// OnPoll runs before each condition check, with the zero-based poll number
	OnPoll func(poll int)
	// Waited is the simulated time the last Wait blocked for
	Waited time.Duration

	Calls []Call

	root  map[string][]*Node
	frame string
}

// NewSession - creates an empty fake session
func NewSession() *Session {
	return &Session{
		Frames:       map[string]map[string][]*Node{},
		PollInterval: DefaultPollInterval,
		root:         map[string][]*Node{},
	}
}

// Add - registers nodes as matches of css on the primary page
func (s *Session) Add(css string, nodes ...*Node) *Session {
	for _, n := range nodes {
		n.attach(s)
	}
	s.root[css] = append(s.root[css], nodes...)
	return s
}

// AddInFrame - registers nodes as matches of css inside the iframe found by frameSelector
func (s *Session) AddInFrame(frameSelector, css string, nodes ...*Node) *Session {
	if s.Frames[frameSelector] == nil {
		s.Frames[frameSelector] = map[string][]*Node{}
	}
	for _, n := range nodes {
		n.attach(s)
	}
	s.Frames[frameSelector][css] = append(s.Frames[frameSelector][css], nodes...)
	return s
}

// Remove - drops every match of css from the primary page
func (s *Session) Remove(css string) {
	delete(s.root, css)
}

// Count - returns how often method was called
func (s *Session) Count(method string) int {
	n := 0
	for _, c := range s.Calls {
		if c.Method == method {
			n++
		}
	}
	return n
}

func (s *Session) record(method, target, arg string) {
	s.Calls = append(s.Calls, Call{Method: method, Target: target, Arg: arg})
}

func (s *Session) matches() map[string][]*Node {
	if s.frame != "" {
		return s.Frames[s.frame]
	}
	return s.root
}

// Find - returns the first registered match of css
func (s *Session) Find(ctx context.Context, css string) (interfaces.Element, bool, error) {
	s.record("Find", css, "")
	return first(s.matches()[css])
}

// Visit - records navigation and returns focus to the primary page
func (s *Session) Visit(ctx context.Context, url string) error {
	s.record("Visit", url, "")
	s.URL = url
	s.frame = ""
	return nil
}

// SwitchToIFrame - moves the search root into a registered frame
func (s *Session) SwitchToIFrame(ctx context.Context, selector string) error {
	s.record("SwitchToIFrame", selector, "")
	if selector != "" {
		if _, ok := s.Frames[selector]; !ok {
			return fmt.Errorf("no iframe matches %s", selector)
		}
	}
	s.frame = selector
	return nil
}

// Wait - polls cond at PollInterval simulated steps without sleeping
func (s *Session) Wait(ctx context.Context, timeout time.Duration, cond entities.WaitCondition) error {
	s.record("Wait", cond.Selector, string(cond.Expect))

	interval := s.PollInterval
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	polls := int(timeout / interval)
	for i := 0; i <= polls; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if s.OnPoll != nil {
			s.OnPoll(i)
		}
		if s.satisfied(cond) {
			s.Waited = time.Duration(i) * interval
			return nil
		}
	}
	s.Waited = timeout
	return nil
}

func (s *Session) satisfied(cond entities.WaitCondition) bool {
	nodes := s.matches()[cond.Selector]
	if cond.Expect == entities.Hidden {
		return len(nodes) == 0 || nodes[0].Hidden
	}
	return len(nodes) > 0 && !nodes[0].Hidden
}

// HasContent - checks Content for text
func (s *Session) HasContent(ctx context.Context, text string) (bool, error) {
	s.record("HasContent", text, "")
	return strings.Contains(s.Content, text), nil
}

// Close - records the close
func (s *Session) Close() error {
	s.record("Close", "", "")
	return nil
}

var _ interfaces.Session = (*Session)(nil)

func first(nodes []*Node) (interfaces.Element, bool, error) {
	if len(nodes) == 0 {
		return nil, false, nil
	}
	return nodes[0], true, nil
}
