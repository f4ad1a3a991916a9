package navigator

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/BrandonKowalski/navigator/pkg/navigator/animit"
	"github.com/BrandonKowalski/navigator/pkg/navigator/constants"
	"github.com/BrandonKowalski/navigator/pkg/navigator/internal"
	"github.com/BrandonKowalski/navigator/pkg/navigator/view"
	"go.uber.org/atomic"
)

// Navigator manages page navigation backed by a page stack.
//
// Pushes, pops and resets are queued behind a DoorLock and run one at a
// time, in call order. Each operation holds the lock until its transition
// finished, so a later request never observes a half-inserted page.
type Navigator struct {
	container        view.Element
	resolver         ContentResolver
	binder           Binder
	registry         *Registry
	scope            *view.Scope
	clock            animit.Clock
	insertDelay      time.Duration
	logger           *slog.Logger
	onError          func(error)
	localizer        *Localizer
	defaultAnimation string
	ctx              context.Context

	lock   *DoorLock
	events *Emitter

	mu    sync.RWMutex
	stack *pageStack
}

// New creates a Navigator inserting pages into container and loading them
// through resolver. A nil container gets a fresh headless container.
func New(container view.Element, resolver ContentResolver, opts ...Option) *Navigator {
	if container == nil {
		container = view.NewContainer()
	}

	n := &Navigator{
		container:   container,
		resolver:    resolver,
		binder:      view.NewHTMLBinder(),
		registry:    DefaultRegistry(),
		scope:       view.NewScope(),
		clock:       animit.SystemClock(),
		insertDelay: constants.DefaultInsertDelay,
		logger:      internal.GetInternalLogger(),
		ctx:         context.Background(),
		events:      NewEmitter(),
		stack:       newPageStack(),
	}
	for _, opt := range opts {
		opt(n)
	}
	n.lock = NewDoorLock(n.logger)
	return n
}

// resolveOptions copies opts and settles the animator: an explicit
// instance wins, then the named animation, then the navigator default,
// then the registry's "default" entry.
func (n *Navigator) resolveOptions(opts *PushOptions) (PushOptions, error) {
	var o PushOptions
	if opts != nil {
		o = *opts
	}

	if o.Animator != nil {
		if err := validateAnimator(o.Animator); err != nil {
			return o, err
		}
		return o, nil
	}

	name := o.Animation
	if name == "" {
		name = n.defaultAnimation
	}
	if name == "" {
		name = constants.AnimatorDefault
	}

	a, ok := n.registry.Lookup(name)
	if !ok {
		return o, fmt.Errorf("%w: %q", ErrUnknownAnimator, name)
	}
	o.Animator = a
	return o, nil
}

// PushPage queues locator to be loaded and pushed onto the stack.
//
// Invalid options and unknown animations are returned immediately and
// nothing is queued. Failures once the push has started (fetch errors,
// markup without a page element) go to the error handler and leave the
// stack unchanged.
func (n *Navigator) PushPage(locator string, opts *PushOptions) error {
	o, err := n.resolveOptions(opts)
	if err != nil {
		return err
	}

	requested := time.Now()
	return n.lock.Enter(func(unlock UnlockFunc) {
		n.logger.Debug("push started", "locator", locator)
		n.load("push", locator, o, requested, false, unlock)
	})
}

// ResetToPage queues a reset: once every earlier operation finished, the
// page is loaded and replaces the whole stack without animation.
// The old pages stay in place if the new one cannot be loaded.
func (n *Navigator) ResetToPage(locator string, opts *PushOptions) error {
	o, err := n.resolveOptions(opts)
	if err != nil {
		return err
	}

	requested := time.Now()
	return n.lock.Enter(func(unlock UnlockFunc) {
		n.logger.Debug("reset started", "locator", locator)
		n.load("reset", locator, o, requested, true, unlock)
	})
}

func (n *Navigator) load(op, locator string, o PushOptions, requested time.Time, reset bool, unlock UnlockFunc) {
	if n.resolver == nil {
		n.fail(&NavigationError{Op: op, Locator: locator, Err: fmt.Errorf("no content resolver")}, unlock)
		return
	}

	if markup, ok := n.resolver.Cached(locator); ok {
		n.build(op, locator, markup, o, requested, reset, unlock)
		return
	}

	go func() {
		markup, err := n.resolver.Fetch(n.ctx, locator)
		if err != nil {
			n.fail(&NavigationError{Op: op, Locator: locator, Err: err}, unlock)
			return
		}
		n.build(op, locator, markup, o, requested, reset, unlock)
	}()
}

func (n *Navigator) build(op, locator, markup string, o PushOptions, requested time.Time, reset bool, unlock UnlockFunc) {
	scope := n.scope.New()
	for k, v := range o.Params {
		scope.Set(k, v)
	}

	page, err := n.binder.Bind(markup, scope)
	if err != nil {
		scope.Destroy()
		n.fail(&NavigationError{Op: op, Locator: locator, Err: err}, unlock)
		return
	}

	insert := func() {
		n.insert(locator, page, scope, o, requested, reset, unlock)
	}
	if n.insertDelay <= 0 {
		insert()
		return
	}
	n.clock.AfterFunc(n.insertDelay, insert)
}

func (n *Navigator) insert(locator string, page *view.Page, scope *view.Scope, o PushOptions, requested time.Time, reset bool, unlock UnlockFunc) {
	record := newPageRecord(locator, page, scope, o)

	n.mu.Lock()
	var removed []*PageRecord
	if reset {
		removed = n.stack.clear()
	}
	leave := n.stack.peek()
	n.stack.push(record)
	offscreen := n.stack.fromTop(2)
	depth := n.stack.len()
	n.mu.Unlock()

	for _, p := range removed {
		p.Element.Detach()
		p.Scope.Destroy()
	}
	if offscreen != nil {
		offscreen.Element.SetHidden(true)
	}
	n.localizeBackLabel(record, leave)

	event := &PushEvent{
		EnterPage:   record,
		LeavePage:   leave,
		Navigator:   n,
		RequestedAt: requested,
	}
	done := n.completion("push", func() {
		event.CompletedAt = time.Now()
		n.release(unlock)
		n.logger.Debug("push finished", "locator", locator, "depth", depth)
		n.events.Emit(constants.EventPostPush, event)
	})

	n.container.AppendChild(record.Element)

	if leave == nil {
		done()
		return
	}
	o.Animator.Push(record, leave, done)
}

// PopPage removes the current page. It fails with ErrStackEmpty when only
// the root page is left and with ErrPopCanceled when a prePop handler
// canceled it; in both cases nothing is queued.
func (n *Navigator) PopPage() error {
	n.mu.RLock()
	current := n.stack.peek()
	size := n.stack.len()
	n.mu.RUnlock()

	if size <= 1 {
		return ErrStackEmpty
	}

	pre := &PrePopEvent{Navigator: n, CurrentPage: current}
	n.events.Emit(constants.EventPrePop, pre)
	if pre.Canceled() {
		n.logger.Debug("pop canceled", "locator", current.Name)
		n.events.Emit(constants.EventPopCanceled, pre)
		return ErrPopCanceled
	}

	requested := time.Now()
	return n.lock.Enter(func(unlock UnlockFunc) {
		n.pop(requested, unlock)
	})
}

func (n *Navigator) pop(requested time.Time, unlock UnlockFunc) {
	n.mu.Lock()
	// Earlier queued pops may have drained the stack since PopPage checked.
	if n.stack.len() <= 1 {
		n.mu.Unlock()
		n.fail(&NavigationError{Op: "pop", Err: ErrStackEmpty}, unlock)
		return
	}
	leave := n.stack.pop()
	enter := n.stack.peek()
	below := n.stack.fromTop(1)
	n.mu.Unlock()

	enter.Element.SetHidden(false)
	if below != nil {
		below.Element.SetHidden(false)
	}

	event := &PopEvent{
		LeavePage:   leave,
		EnterPage:   enter,
		Navigator:   n,
		RequestedAt: requested,
	}
	done := n.completion("pop", func() {
		leave.Element.Detach()
		leave.Scope.Destroy()
		event.CompletedAt = time.Now()
		n.release(unlock)
		n.logger.Debug("pop finished", "locator", leave.Name)
		n.events.Emit(constants.EventPostPop, event)
	})

	animator := leave.Options.Animator
	if animator == nil {
		animator = NoneAnimator{}
	}
	animator.Pop(enter, leave, done)
}

// completion guards an animator callback so only the first call counts.
func (n *Navigator) completion(op string, fn func()) func() {
	called := atomic.NewBool(false)
	return func() {
		if !called.CompareAndSwap(false, true) {
			n.logger.Warn("animator completed more than once", "op", op)
			return
		}
		fn()
	}
}

func (n *Navigator) release(unlock UnlockFunc) {
	if err := unlock(); err != nil {
		n.logger.Error("failed to release navigator lock", "error", err)
	}
}

func (n *Navigator) fail(err error, unlock UnlockFunc) {
	n.logger.Error("navigation failed", "error", err)
	n.report(err)
	n.release(unlock)
}

func (n *Navigator) report(err error) {
	if n.onError != nil {
		n.onError(err)
	}
	n.events.Emit(constants.EventError, &ErrorEvent{Err: err, Navigator: n})
}

func (n *Navigator) localizeBackLabel(enter, leave *PageRecord) {
	if n.localizer == nil || leave == nil {
		return
	}
	label := region(enter, toolbarBackLabel)
	if label == nil || label.Text() != "" {
		return
	}

	title := ""
	if leave.Controller != nil {
		title = leave.Controller.Title()
	}
	label.SetText(n.localizer.BackLabel(title))
}

// GetCurrentPage returns the top of the stack, or nil before the first push.
func (n *Navigator) GetCurrentPage() *PageRecord {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.stack.peek()
}

// GetPages returns the stack, bottom first. The slice is a snapshot; the
// records themselves are live and must not be modified.
func (n *Navigator) GetPages() []*PageRecord {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.stack.snapshot()
}

// Len returns the stack depth.
func (n *Navigator) Len() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.stack.len()
}

// Busy reports whether an operation is in flight.
func (n *Navigator) Busy() bool {
	return n.lock.IsLocked()
}

// Container returns the element pages are inserted into.
func (n *Navigator) Container() view.Element {
	return n.container
}

// WaitIdle blocks until every operation queued before the call finished.
// An operation whose animator never completes blocks it until ctx is done.
func (n *Navigator) WaitIdle(ctx context.Context) error {
	idle := make(chan struct{})
	if err := n.lock.WaitUnlock(func() { close(idle) }); err != nil {
		return err
	}

	select {
	case <-idle:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// On registers a handler for a navigator event and returns a function
// removing it.
func (n *Navigator) On(name string, fn Handler) func() {
	return n.events.On(name, fn)
}

// Emit publishes a custom event to the navigator's handlers.
func (n *Navigator) Emit(name string, payload any) {
	n.events.Emit(name, payload)
}

// OnPrePop registers a handler that may cancel pops.
func (n *Navigator) OnPrePop(fn func(*PrePopEvent)) func() {
	return n.events.On(constants.EventPrePop, func(p any) {
		if e, ok := p.(*PrePopEvent); ok {
			fn(e)
		}
	})
}

// OnPostPush registers a handler called after each push finished.
func (n *Navigator) OnPostPush(fn func(*PushEvent)) func() {
	return n.events.On(constants.EventPostPush, func(p any) {
		if e, ok := p.(*PushEvent); ok {
			fn(e)
		}
	})
}

// OnPostPop registers a handler called after each pop finished.
func (n *Navigator) OnPostPop(fn func(*PopEvent)) func() {
	return n.events.On(constants.EventPostPop, func(p any) {
		if e, ok := p.(*PopEvent); ok {
			fn(e)
		}
	})
}

// OnError registers a handler for failures of queued operations.
func (n *Navigator) OnError(fn func(*ErrorEvent)) func() {
	return n.events.On(constants.EventError, func(p any) {
		if e, ok := p.(*ErrorEvent); ok {
			fn(e)
		}
	})
}
