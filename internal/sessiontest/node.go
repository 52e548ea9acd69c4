package sessiontest

import (
	"context"
	"fmt"

	"business_selector/domain/interfaces"
)

// Node is a fake DOM node
type Node struct {
	ID         string
	InputValue string
	InnerText  string
	Checked    bool
	Hidden     bool
	Selected   []string
	// Options restricts what SelectOption accepts; nil accepts anything
	Options  []string
	File     string
	Children map[string][]*Node

	sess *Session
}

// NewNode - creates a visible node identified by id
func NewNode(id string) *Node {
	return &Node{ID: id, Children: map[string][]*Node{}}
}

// Add - registers children as matches of css under this node
func (n *Node) Add(css string, children ...*Node) *Node {
	if n.Children == nil {
		n.Children = map[string][]*Node{}
	}
	for _, c := range children {
		if n.sess != nil {
			c.attach(n.sess)
		}
	}
	n.Children[css] = append(n.Children[css], children...)
	return n
}

func (n *Node) attach(s *Session) {
	n.sess = s
	for _, children := range n.Children {
		for _, c := range children {
			c.attach(s)
		}
	}
}

func (n *Node) record(method, arg string) {
	if n.sess != nil {
		n.sess.record(method, n.ID, arg)
	}
}

// Find - returns the first child registered for css
func (n *Node) Find(ctx context.Context, css string) (interfaces.Element, bool, error) {
	n.record("Find", css)
	return first(n.Children[css])
}

// Click - records the click
func (n *Node) Click(ctx context.Context) error {
	n.record("Click", "")
	return nil
}

// SetValue - replaces InputValue
func (n *Node) SetValue(ctx context.Context, value string) error {
	n.record("SetValue", value)
	n.InputValue = value
	return nil
}

// SelectOption - replaces or extends Selected
func (n *Node) SelectOption(ctx context.Context, option string, additive bool) error {
	n.record("SelectOption", option)
	if n.Options != nil && !contains(n.Options, option) {
		return fmt.Errorf("option %q not found in %s", option, n.ID)
	}
	if additive {
		if !contains(n.Selected, option) {
			n.Selected = append(n.Selected, option)
		}
	} else {
		n.Selected = []string{option}
	}
	n.InputValue = option
	return nil
}

// Check - ticks the box
func (n *Node) Check(ctx context.Context) error {
	n.record("Check", "")
	n.Checked = true
	return nil
}

// Uncheck - clears the box
func (n *Node) Uncheck(ctx context.Context) error {
	n.record("Uncheck", "")
	n.Checked = false
	return nil
}

// IsChecked - returns Checked
func (n *Node) IsChecked(ctx context.Context) (bool, error) {
	n.record("IsChecked", "")
	return n.Checked, nil
}

// Value - returns InputValue
func (n *Node) Value(ctx context.Context) (string, error) {
	n.record("Value", "")
	return n.InputValue, nil
}

// Text - returns InnerText
func (n *Node) Text(ctx context.Context) (string, error) {
	n.record("Text", "")
	return n.InnerText, nil
}

// IsVisible - returns !Hidden
func (n *Node) IsVisible(ctx context.Context) (bool, error) {
	n.record("IsVisible", "")
	return !n.Hidden, nil
}

// AttachFile - stores path in File
func (n *Node) AttachFile(ctx context.Context, path string) error {
	n.record("AttachFile", path)
	n.File = path
	return nil
}

// MouseOver - records the hover
func (n *Node) MouseOver(ctx context.Context) error {
	n.record("MouseOver", "")
	return nil
}

var _ interfaces.Element = (*Node)(nil)

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
