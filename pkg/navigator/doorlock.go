package navigator

import (
	"log/slog"
	"sync"

	"github.com/BrandonKowalski/navigator/pkg/navigator/internal"
	"go.uber.org/atomic"
)

var lockIDs = atomic.NewUint64(0)

// UnlockFunc releases the lock token it was returned for.
// It returns ErrLockNotHeld when the token was already released.
type UnlockFunc func() error

type waiter struct {
	fn    func()
	enter func(UnlockFunc)
}

// DoorLock serializes navigation operations. Any number of tokens may be
// held at once; the door counts as locked while at least one is held.
// Waiters queue while the door is locked and are released in FIFO order
// once it is unlocked.
//
// Waiter callbacks are invoked synchronously by whichever call unlocked the
// door, never while the DoorLock's own mutex is held.
type DoorLock struct {
	mu      sync.Mutex
	held    map[uint64]struct{}
	waiters []waiter
	logger  *slog.Logger
}

// NewDoorLock creates an unlocked DoorLock. A nil logger disables lock logs.
func NewDoorLock(logger *slog.Logger) *DoorLock {
	if logger == nil {
		logger = internal.NewNop()
	}
	return &DoorLock{
		held:   make(map[uint64]struct{}),
		logger: logger,
	}
}

// Lock registers a new token and returns the function releasing it.
func (d *DoorLock) Lock() UnlockFunc {
	d.mu.Lock()
	unlock := d.lockLocked()
	d.mu.Unlock()
	return unlock
}

func (d *DoorLock) lockLocked() UnlockFunc {
	id := lockIDs.Inc()
	d.held[id] = struct{}{}
	d.logger.Debug("lock", "id", id)

	return func() error {
		return d.unlock(id)
	}
}

func (d *DoorLock) unlock(id uint64) error {
	d.mu.Lock()
	if _, ok := d.held[id]; !ok {
		d.mu.Unlock()
		return ErrLockNotHeld
	}
	delete(d.held, id)
	d.mu.Unlock()

	d.logger.Debug("unlock", "id", id)
	d.drain()
	return nil
}

// drain releases queued waiters while the door stays unlocked.
func (d *DoorLock) drain() {
	for {
		d.mu.Lock()
		if len(d.held) > 0 || len(d.waiters) == 0 {
			d.mu.Unlock()
			return
		}
		w := d.waiters[0]
		d.waiters = d.waiters[1:]

		if w.enter != nil {
			unlock := d.lockLocked()
			d.mu.Unlock()
			w.enter(unlock)
			continue
		}
		d.mu.Unlock()
		w.fn()
	}
}

// busyLocked reports whether a new caller has to queue. Waiters still
// being drained go first even though no token is held.
func (d *DoorLock) busyLocked() bool {
	return len(d.held) > 0 || len(d.waiters) > 0
}

// WaitUnlock runs fn immediately when the door is unlocked, otherwise
// queues it until every held token has been released.
func (d *DoorLock) WaitUnlock(fn func()) error {
	if fn == nil {
		return ErrNilCallback
	}

	d.mu.Lock()
	if d.busyLocked() {
		d.waiters = append(d.waiters, waiter{fn: fn})
		d.mu.Unlock()
		return nil
	}
	d.mu.Unlock()

	fn()
	return nil
}

// Enter waits for the door like WaitUnlock and then runs fn holding a fresh
// token. The token is taken in the same step that releases the waiter, so
// no other goroutine can lock the door in between.
func (d *DoorLock) Enter(fn func(unlock UnlockFunc)) error {
	if fn == nil {
		return ErrNilCallback
	}

	d.mu.Lock()
	if d.busyLocked() {
		d.waiters = append(d.waiters, waiter{enter: fn})
		d.mu.Unlock()
		return nil
	}
	unlock := d.lockLocked()
	d.mu.Unlock()

	fn(unlock)
	return nil
}

// IsLocked reports whether at least one token is held.
func (d *DoorLock) IsLocked() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.held) > 0
}

// Waiting returns the number of queued waiters.
func (d *DoorLock) Waiting() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.waiters)
}
