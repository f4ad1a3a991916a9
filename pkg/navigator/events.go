package navigator

import (
	"sync"
	"time"

	"go.uber.org/atomic"
)

// Handler receives the payload of an emitted event.
type Handler func(payload any)

type subscription struct {
	id uint64
	fn Handler
}

// Emitter is a minimal publish/subscribe hub keyed by event name.
// Handlers run synchronously, in registration order, on the emitting goroutine.
type Emitter struct {
	mu       sync.RWMutex
	nextID   uint64
	handlers map[string][]subscription
}

func NewEmitter() *Emitter {
	return &Emitter{handlers: make(map[string][]subscription)}
}

// On registers fn for name and returns a function removing it.
func (e *Emitter) On(name string, fn Handler) (off func()) {
	if fn == nil {
		return func() {}
	}

	e.mu.Lock()
	e.nextID++
	id := e.nextID
	e.handlers[name] = append(e.handlers[name], subscription{id: id, fn: fn})
	e.mu.Unlock()

	return func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		subs := e.handlers[name]
		for i, s := range subs {
			if s.id == id {
				e.handlers[name] = append(subs[:i:i], subs[i+1:]...)
				return
			}
		}
	}
}

// Emit calls every handler registered for name with payload.
func (e *Emitter) Emit(name string, payload any) {
	e.mu.RLock()
	subs := make([]subscription, len(e.handlers[name]))
	copy(subs, e.handlers[name])
	e.mu.RUnlock()

	for _, s := range subs {
		s.fn(payload)
	}
}

// PushEvent is the payload of postPush.
type PushEvent struct {
	EnterPage   *PageRecord // Page that was pushed
	LeavePage   *PageRecord // Previous top, nil for the first page
	Navigator   *Navigator
	RequestedAt time.Time
	CompletedAt time.Time
}

// PopEvent is the payload of postPop.
type PopEvent struct {
	LeavePage   *PageRecord // Page that was removed
	EnterPage   *PageRecord // New top
	Navigator   *Navigator
	RequestedAt time.Time
	CompletedAt time.Time
}

// PrePopEvent is the payload of prePop. Handlers may cancel the pop.
type PrePopEvent struct {
	Navigator   *Navigator
	CurrentPage *PageRecord

	canceled atomic.Bool
}

// Cancel prevents the pop that emitted the event.
func (e *PrePopEvent) Cancel() {
	e.canceled.Store(true)
}

func (e *PrePopEvent) Canceled() bool {
	return e.canceled.Load()
}

// ErrorEvent is the payload of error events.
type ErrorEvent struct {
	Err       error
	Navigator *Navigator
}
