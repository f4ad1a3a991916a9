package view

import (
	"strings"
	"sync"

	"github.com/BrandonKowalski/navigator/pkg/navigator/animit"
	"github.com/BrandonKowalski/navigator/pkg/navigator/constants"
)

// Element is the part of a DOM element the navigator and its animators use.
type Element interface {
	animit.Target

	// AppendChild attaches child as the last child of the element.
	AppendChild(child Element)
	// InsertBefore attaches sibling to the element's parent, just before the element.
	InsertBefore(sibling Element)
	// Detach removes the element from its parent. Detaching a detached element is a no-op.
	Detach()
	// Attached reports whether the element currently has a parent.
	Attached() bool

	SetHidden(hidden bool)
	Hidden() bool

	Text() string
	SetText(text string)
}

// treeMu guards every Node. Animation timers, fetch goroutines and render
// loops all touch the same trees.
var treeMu sync.RWMutex

// Node is a headless Element. It keeps structure, text, visibility and the
// animated style in memory so that transitions can be observed or rendered.
type Node struct {
	Tag   string
	Attrs map[string]string

	text       string
	parent     *Node
	children   []*Node
	hidden     bool
	style      animit.Style
	transition animit.Transition
	detaches   int
}

// NewNode creates a detached node.
func NewNode(tag string, attrs map[string]string) *Node {
	if attrs == nil {
		attrs = make(map[string]string)
	}
	return &Node{
		Tag:   tag,
		Attrs: attrs,
		style: make(animit.Style),
	}
}

// NewContainer creates the element that hosts navigator pages.
func NewContainer() *Node {
	return NewNode("navigator", map[string]string{"class": "navigator"})
}

// NewScrim creates the translucent mask slid under a moving page.
func NewScrim() Element {
	n := NewNode("div", map[string]string{"class": constants.ScrimClass})
	n.style["background-color"] = "black"
	return n
}

func asNode(e Element) *Node {
	n, _ := e.(*Node)
	return n
}

func (n *Node) removeLocked() {
	if n.parent == nil {
		return
	}
	siblings := n.parent.children
	for i, c := range siblings {
		if c == n {
			n.parent.children = append(siblings[:i], siblings[i+1:]...)
			break
		}
	}
	n.parent = nil
	n.detaches++
}

func (n *Node) AppendChild(child Element) {
	c := asNode(child)
	if c == nil {
		return
	}
	treeMu.Lock()
	defer treeMu.Unlock()

	c.removeLocked()
	c.parent = n
	n.children = append(n.children, c)
}

func (n *Node) InsertBefore(sibling Element) {
	s := asNode(sibling)
	if s == nil || s == n {
		return
	}
	treeMu.Lock()
	defer treeMu.Unlock()

	if n.parent == nil {
		return
	}
	s.removeLocked()
	parent := n.parent
	for i, c := range parent.children {
		if c == n {
			parent.children = append(parent.children[:i], append([]*Node{s}, parent.children[i:]...)...)
			s.parent = parent
			return
		}
	}
}

func (n *Node) Detach() {
	treeMu.Lock()
	defer treeMu.Unlock()
	n.removeLocked()
}

func (n *Node) Attached() bool {
	treeMu.RLock()
	defer treeMu.RUnlock()
	return n.parent != nil
}

// Detaches returns how many times the node was removed from a parent.
func (n *Node) Detaches() int {
	treeMu.RLock()
	defer treeMu.RUnlock()
	return n.detaches
}

func (n *Node) SetHidden(hidden bool) {
	treeMu.Lock()
	defer treeMu.Unlock()
	n.hidden = hidden
}

func (n *Node) Hidden() bool {
	treeMu.RLock()
	defer treeMu.RUnlock()
	return n.hidden
}

func (n *Node) Text() string {
	treeMu.RLock()
	defer treeMu.RUnlock()
	return n.text
}

func (n *Node) SetText(text string) {
	treeMu.Lock()
	defer treeMu.Unlock()
	n.text = text
}

func (n *Node) ApplyStyle(style animit.Style, t animit.Transition) {
	treeMu.Lock()
	defer treeMu.Unlock()
	for k, v := range style {
		n.style[k] = v
	}
	n.transition = t
}

func (n *Node) ResetStyle(t animit.Transition) {
	treeMu.Lock()
	defer treeMu.Unlock()
	for k := range n.style {
		if k == "background-color" && n.hasClassLocked(constants.ScrimClass) {
			continue
		}
		delete(n.style, k)
	}
	n.transition = t
}

// Style returns a copy of the current style.
func (n *Node) Style() animit.Style {
	treeMu.RLock()
	defer treeMu.RUnlock()
	out := make(animit.Style, len(n.style))
	for k, v := range n.style {
		out[k] = v
	}
	return out
}

// Transition returns the transition used by the last style change.
func (n *Node) Transition() animit.Transition {
	treeMu.RLock()
	defer treeMu.RUnlock()
	return n.transition
}

// Parent returns the parent node, or nil when detached.
func (n *Node) Parent() *Node {
	treeMu.RLock()
	defer treeMu.RUnlock()
	return n.parent
}

// Children returns a snapshot of the child nodes.
func (n *Node) Children() []*Node {
	treeMu.RLock()
	defer treeMu.RUnlock()
	out := make([]*Node, len(n.children))
	copy(out, n.children)
	return out
}

func (n *Node) hasClassLocked(class string) bool {
	for _, c := range strings.Fields(n.Attrs["class"]) {
		if c == class {
			return true
		}
	}
	return false
}

// HasClass reports whether the class attribute contains class.
func (n *Node) HasClass(class string) bool {
	treeMu.RLock()
	defer treeMu.RUnlock()
	return n.hasClassLocked(class)
}

// Find returns the first descendant (depth-first) carrying class.
func (n *Node) Find(class string) *Node {
	treeMu.RLock()
	defer treeMu.RUnlock()
	return n.findLocked(func(c *Node) bool { return c.hasClassLocked(class) })
}

// FindTag returns the first descendant (depth-first) with the given tag.
func (n *Node) FindTag(tag string) *Node {
	treeMu.RLock()
	defer treeMu.RUnlock()
	return n.findLocked(func(c *Node) bool { return c.Tag == tag })
}

func (n *Node) findLocked(match func(*Node) bool) *Node {
	for _, c := range n.children {
		if match(c) {
			return c
		}
		if found := c.findLocked(match); found != nil {
			return found
		}
	}
	return nil
}
