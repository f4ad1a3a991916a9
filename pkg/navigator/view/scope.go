package view

import "sync"

// Scope holds the values a page binds against. Scopes form a tree: a page
// scope is a child of the navigator's scope and is destroyed together with
// its page record.
type Scope struct {
	mu        sync.RWMutex
	parent    *Scope
	values    map[string]any
	children  []*Scope
	onDestroy []func()
	destroyed bool
}

// NewScope creates a root scope.
func NewScope() *Scope {
	return &Scope{values: make(map[string]any)}
}

// New creates a child scope. Lookups fall through to the parent.
func (s *Scope) New() *Scope {
	child := NewScope()
	child.parent = s

	s.mu.Lock()
	s.children = append(s.children, child)
	s.mu.Unlock()

	return child
}

func (s *Scope) Set(key string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
}

// Get returns the value bound to key in this scope or the nearest ancestor.
func (s *Scope) Get(key string) (any, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		cur.mu.RLock()
		v, ok := cur.values[key]
		cur.mu.RUnlock()
		if ok {
			return v, true
		}
	}
	return nil, false
}

// OnDestroy registers fn to run when the scope is destroyed.
func (s *Scope) OnDestroy(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onDestroy = append(s.onDestroy, fn)
}

// Destroy tears down the scope and its children. Calling it again is a no-op.
func (s *Scope) Destroy() {
	s.mu.Lock()
	if s.destroyed {
		s.mu.Unlock()
		return
	}
	s.destroyed = true
	children := s.children
	hooks := s.onDestroy
	s.children = nil
	s.onDestroy = nil
	s.values = make(map[string]any)
	parent := s.parent
	s.mu.Unlock()

	for _, c := range children {
		c.Destroy()
	}
	for _, fn := range hooks {
		fn()
	}

	if parent != nil {
		parent.mu.Lock()
		for i, c := range parent.children {
			if c == s {
				parent.children = append(parent.children[:i], parent.children[i+1:]...)
				break
			}
		}
		parent.mu.Unlock()
	}
}

func (s *Scope) Destroyed() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.destroyed
}
