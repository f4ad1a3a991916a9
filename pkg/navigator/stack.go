package navigator

import (
	"github.com/BrandonKowalski/navigator/pkg/navigator/view"
	"github.com/google/uuid"
)

// PageRecord represents a single entry in the navigation stack.
// It owns the page element and scope while it is on the stack.
type PageRecord struct {
	ID         string              // Unique per push, even for repeated locators
	Name       string              // Locator the page was pushed with
	Element    view.Element        // Page root element
	Scope      *view.Scope         // Child scope, destroyed when the record leaves the stack
	Controller view.PageController // Toolbar and content accessors
	Options    PushOptions         // Options given at push time, with the resolved animator
}

func newPageRecord(name string, page *view.Page, scope *view.Scope, opts PushOptions) *PageRecord {
	return &PageRecord{
		ID:         uuid.NewString(),
		Name:       name,
		Element:    page.Root,
		Scope:      scope,
		Controller: page.Controller,
		Options:    opts,
	}
}

// Toolbar returns the page toolbar, or nil when the page has none.
func (p *PageRecord) Toolbar() *view.Toolbar {
	if p == nil || p.Controller == nil {
		return nil
	}
	return p.Controller.Toolbar()
}

// HasToolbar reports whether the page exposes a toolbar.
func (p *PageRecord) HasToolbar() bool {
	return p.Toolbar() != nil
}

// ContentElement returns the page body, falling back to the page element.
func (p *PageRecord) ContentElement() view.Element {
	if p.Controller != nil {
		if c := p.Controller.ContentElement(); c != nil {
			return c
		}
	}
	return p.Element
}

// pageStack holds page records in navigation order.
// It is not safe for concurrent use; the Navigator guards it.
type pageStack struct {
	entries []*PageRecord
}

func newPageStack() *pageStack {
	return &pageStack{
		entries: make([]*PageRecord, 0),
	}
}

// push adds a new record to the top of the stack.
func (s *pageStack) push(p *PageRecord) {
	s.entries = append(s.entries, p)
}

// pop removes and returns the top record.
// Returns nil if the stack is empty.
func (s *pageStack) pop() *PageRecord {
	if len(s.entries) == 0 {
		return nil
	}
	p := s.entries[len(s.entries)-1]
	s.entries[len(s.entries)-1] = nil
	s.entries = s.entries[:len(s.entries)-1]
	return p
}

// peek returns the top record without removing it.
// Returns nil if the stack is empty.
func (s *pageStack) peek() *PageRecord {
	return s.fromTop(0)
}

// fromTop returns the record depth levels below the top, or nil.
func (s *pageStack) fromTop(depth int) *PageRecord {
	i := len(s.entries) - 1 - depth
	if i < 0 || i >= len(s.entries) {
		return nil
	}
	return s.entries[i]
}

func (s *pageStack) len() int {
	return len(s.entries)
}

// snapshot returns a copy of the records, bottom first.
func (s *pageStack) snapshot() []*PageRecord {
	out := make([]*PageRecord, len(s.entries))
	copy(out, s.entries)
	return out
}

// clear removes every record and returns them, bottom first.
func (s *pageStack) clear() []*PageRecord {
	out := s.entries
	s.entries = make([]*PageRecord, 0)
	return out
}
