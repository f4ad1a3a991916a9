package navigator

import (
	"fmt"
	"reflect"
	"sort"
	"sync"

	"github.com/BrandonKowalski/navigator/pkg/navigator/animit"
	"github.com/BrandonKowalski/navigator/pkg/navigator/constants"
)

// Animator performs the visual transition between two pages.
//
// Push animates enter in over leave; leave is nil for the first page.
// Pop animates leave out and enter back in; enter may be nil.
// Both must call done exactly once, after every visual effect settled.
type Animator interface {
	Push(enter, leave *PageRecord, done func())
	Pop(enter, leave *PageRecord, done func())
}

// AnimatorFuncs adapts a pair of functions to the Animator interface.
// Both functions are required for registration.
type AnimatorFuncs struct {
	PushFunc func(enter, leave *PageRecord, done func())
	PopFunc  func(enter, leave *PageRecord, done func())
}

func (a AnimatorFuncs) Push(enter, leave *PageRecord, done func()) {
	a.PushFunc(enter, leave, done)
}

func (a AnimatorFuncs) Pop(enter, leave *PageRecord, done func()) {
	a.PopFunc(enter, leave, done)
}

func (a AnimatorFuncs) validate() error {
	if a.PushFunc == nil || a.PopFunc == nil {
		return ErrInvalidAnimator
	}
	return nil
}

// NoneAnimator switches pages without any visual transition.
type NoneAnimator struct{}

func (NoneAnimator) Push(enter, leave *PageRecord, done func()) { done() }
func (NoneAnimator) Pop(enter, leave *PageRecord, done func())  { done() }

func validateAnimator(a Animator) error {
	switch v := a.(type) {
	case nil:
		return ErrInvalidAnimator
	case AnimatorFuncs:
		return v.validate()
	case *AnimatorFuncs:
		if v == nil {
			return ErrInvalidAnimator
		}
		return v.validate()
	case *SlideAnimator:
		if v == nil {
			return ErrInvalidAnimator
		}
		return nil
	}

	// Typed nils of any other animator type.
	rv := reflect.ValueOf(a)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		if rv.IsNil() {
			return ErrInvalidAnimator
		}
	}
	return nil
}

// Registry maps transition names to animators.
type Registry struct {
	mu        sync.RWMutex
	animators map[string]Animator
}

// NewRegistry creates a registry seeded with the stock animators:
// "default" and "slideLeft" slide on clock, "none" does not animate.
func NewRegistry(clock animit.Clock) *Registry {
	slide := NewSlideAnimator(WithSlideClock(clock))
	return &Registry{
		animators: map[string]Animator{
			constants.AnimatorDefault:   slide,
			constants.AnimatorSlideLeft: slide,
			constants.AnimatorNone:      NoneAnimator{},
		},
	}
}

// Register adds an animator under name. The registry is left unchanged when
// the animator is incomplete or the name is taken.
func (r *Registry) Register(name string, a Animator) error {
	if err := validateAnimator(a); err != nil {
		return fmt.Errorf("register %q: %w", name, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.animators[name]; exists {
		return fmt.Errorf("register %q: %w", name, ErrAnimatorExists)
	}
	r.animators[name] = a
	return nil
}

// Lookup returns the animator registered under name.
func (r *Registry) Lookup(name string) (Animator, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.animators[name]
	return a, ok
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.animators))
	for name := range r.animators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var defaultRegistry = NewRegistry(animit.SystemClock())

// DefaultRegistry returns the process-wide registry used by navigators that
// were not given one.
func DefaultRegistry() *Registry {
	return defaultRegistry
}

// RegisterAnimator adds an animator to the process-wide registry.
func RegisterAnimator(name string, a Animator) error {
	return defaultRegistry.Register(name, a)
}
