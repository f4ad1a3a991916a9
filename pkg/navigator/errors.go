package navigator

import (
	"errors"
	"fmt"

	"github.com/BrandonKowalski/navigator/pkg/navigator/view"
)

// Sentinel errors for programmer errors and flow control.
var (
	// ErrLockNotHeld indicates an unlock of a token that is not held,
	// typically a double release.
	ErrLockNotHeld = errors.New("navigator: lock token is not held")

	// ErrNilCallback indicates a nil waiter or turn callback.
	ErrNilCallback = errors.New("navigator: callback must not be nil")

	// ErrInvalidOptions indicates push options that are not an options object.
	ErrInvalidOptions = errors.New("navigator: options must be an object")

	// ErrUnknownAnimator indicates an animation name missing from the registry.
	ErrUnknownAnimator = errors.New("navigator: animator is not registered")

	// ErrInvalidAnimator indicates a value that does not implement both
	// Push and Pop.
	ErrInvalidAnimator = errors.New("navigator: animator must implement push and pop")

	// ErrAnimatorExists indicates a registration under a name already taken.
	ErrAnimatorExists = errors.New("navigator: animator name already registered")

	// ErrStackEmpty indicates a pop while only the root page remains.
	ErrStackEmpty = errors.New("navigator: page stack is empty")

	// ErrPopCanceled indicates a prePop handler canceled the pop.
	// This is a normal flow control error, not a failure.
	ErrPopCanceled = errors.New("navigator: pop canceled")

	// ErrNoPageElement indicates markup without a single page root element.
	ErrNoPageElement = view.ErrNoPageElement
)

// NavigationError reports a queued navigation operation that could not
// complete. The stack and lock are left as they were before the operation.
type NavigationError struct {
	Op      string // Operation that failed ("push", "pop", "reset")
	Locator string // Page locator, empty for pops
	Err     error  // Underlying error
}

func (e *NavigationError) Error() string {
	if e.Locator != "" {
		return fmt.Sprintf("navigator: %s %q: %v", e.Op, e.Locator, e.Err)
	}
	return fmt.Sprintf("navigator: %s: %v", e.Op, e.Err)
}

func (e *NavigationError) Unwrap() error {
	return e.Err
}

// IsNavigationError checks if an error came from a queued operation.
func IsNavigationError(err error) bool {
	var navErr *NavigationError
	return errors.As(err, &navErr)
}

// IsCanceled checks if an error indicates a canceled pop.
func IsCanceled(err error) bool {
	return errors.Is(err, ErrPopCanceled)
}
