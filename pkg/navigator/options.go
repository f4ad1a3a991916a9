package navigator

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"
	"time"

	"github.com/BrandonKowalski/navigator/pkg/navigator/animit"
	"github.com/BrandonKowalski/navigator/pkg/navigator/view"
	"github.com/mitchellh/mapstructure"
)

// PushOptions configures a push or reset.
type PushOptions struct {
	// Animation names a registered animator, e.g. "none" or "slideLeft".
	Animation string `mapstructure:"animation"`
	// Animator takes precedence over Animation. After the push it holds the
	// animator that was used, which is also the one used to pop the page.
	Animator Animator `mapstructure:"-"`
	// Params are bound into the page scope before the markup is bound.
	Params map[string]any `mapstructure:"params"`
}

// DecodePushOptions converts declarative options, such as a map read from a
// script or config file, into PushOptions. A nil value yields zero options.
func DecodePushOptions(raw any) (*PushOptions, error) {
	if raw == nil {
		return &PushOptions{}, nil
	}

	switch v := raw.(type) {
	case PushOptions:
		return &v, nil
	case *PushOptions:
		if v == nil {
			return &PushOptions{}, nil
		}
		return v, nil
	}

	if k := reflect.TypeOf(raw).Kind(); k != reflect.Map && k != reflect.Struct {
		return nil, fmt.Errorf("%w: got %T", ErrInvalidOptions, raw)
	}

	var opts PushOptions
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      &opts,
		ErrorUnused: true,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidOptions, err)
	}
	return &opts, nil
}

// Binder turns page markup into a page bound to scope.
type Binder interface {
	Bind(markup string, scope *view.Scope) (*view.Page, error)
}

// ContentResolver supplies page markup by locator.
type ContentResolver interface {
	// Cached returns markup available without I/O.
	Cached(locator string) (string, bool)
	// Fetch retrieves markup, blocking until it arrives or fails.
	Fetch(ctx context.Context, locator string) (string, error)
}

// Option configures a Navigator.
type Option func(*Navigator)

// WithScope sets the scope page scopes are created under.
func WithScope(scope *view.Scope) Option {
	return func(n *Navigator) {
		n.scope = scope
	}
}

// WithBinder replaces the default HTML binder.
func WithBinder(b Binder) Option {
	return func(n *Navigator) {
		n.binder = b
	}
}

// WithRegistry sets the animator registry used to resolve animation names.
func WithRegistry(r *Registry) Option {
	return func(n *Navigator) {
		n.registry = r
	}
}

// WithClock sets the clock used for the DOM insertion delay.
func WithClock(clock animit.Clock) Option {
	return func(n *Navigator) {
		n.clock = clock
	}
}

// WithInsertDelay sets the pause between binding a page and inserting it.
// Zero inserts synchronously.
func WithInsertDelay(d time.Duration) Option {
	return func(n *Navigator) {
		n.insertDelay = d
	}
}

// WithLogger configures a logger for the Navigator and its lock.
func WithLogger(logger *slog.Logger) Option {
	return func(n *Navigator) {
		n.logger = logger
	}
}

// WithErrorHandler receives errors of queued operations, such as failed
// fetches. Errors are logged either way.
func WithErrorHandler(fn func(error)) Option {
	return func(n *Navigator) {
		n.onError = fn
	}
}

// WithLocalizer fills empty back-button labels with a localized "Back".
func WithLocalizer(l *Localizer) Option {
	return func(n *Navigator) {
		n.localizer = l
	}
}

// WithDefaultAnimation sets the animation used when a push names none.
func WithDefaultAnimation(name string) Option {
	return func(n *Navigator) {
		n.defaultAnimation = name
	}
}

// WithContext sets the context passed to content fetches.
func WithContext(ctx context.Context) Option {
	return func(n *Navigator) {
		n.ctx = ctx
	}
}
