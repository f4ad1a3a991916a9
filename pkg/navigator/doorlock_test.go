package navigator_test

import (
	"sync"
	"testing"

	"github.com/BrandonKowalski/navigator/pkg/navigator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoorLock_WaitUnlockRunsImmediatelyWhenOpen(t *testing.T) {
	lock := navigator.NewDoorLock(nil)

	ran := false
	require.NoError(t, lock.WaitUnlock(func() { ran = true }))
	assert.True(t, ran)
	assert.False(t, lock.IsLocked())
}

func TestDoorLock_WaitersRunInOrderAfterLastRelease(t *testing.T) {
	lock := navigator.NewDoorLock(nil)

	first := lock.Lock()
	second := lock.Lock()
	assert.True(t, lock.IsLocked())

	var order []int
	for i := 1; i <= 3; i++ {
		i := i
		require.NoError(t, lock.WaitUnlock(func() { order = append(order, i) }))
	}
	assert.Equal(t, 3, lock.Waiting())

	require.NoError(t, first())
	assert.Empty(t, order)
	assert.True(t, lock.IsLocked())

	require.NoError(t, second())
	assert.Equal(t, []int{1, 2, 3}, order)
	assert.Equal(t, 0, lock.Waiting())
	assert.False(t, lock.IsLocked())
}

func TestDoorLock_WaiterRelockingHoldsTheRest(t *testing.T) {
	lock := navigator.NewDoorLock(nil)
	unlock := lock.Lock()

	var relock navigator.UnlockFunc
	var order []string
	require.NoError(t, lock.WaitUnlock(func() {
		order = append(order, "first")
		relock = lock.Lock()
	}))
	require.NoError(t, lock.WaitUnlock(func() { order = append(order, "second") }))

	require.NoError(t, unlock())
	assert.Equal(t, []string{"first"}, order)
	assert.True(t, lock.IsLocked())
	assert.Equal(t, 1, lock.Waiting())

	require.NoError(t, relock())
	assert.Equal(t, []string{"first", "second"}, order)
}

func TestDoorLock_DoubleReleaseFails(t *testing.T) {
	lock := navigator.NewDoorLock(nil)
	unlock := lock.Lock()

	require.NoError(t, unlock())
	assert.ErrorIs(t, unlock(), navigator.ErrLockNotHeld)
	assert.False(t, lock.IsLocked())
}

func TestDoorLock_NilCallbacks(t *testing.T) {
	lock := navigator.NewDoorLock(nil)

	assert.ErrorIs(t, lock.WaitUnlock(nil), navigator.ErrNilCallback)
	assert.ErrorIs(t, lock.Enter(nil), navigator.ErrNilCallback)
	assert.Equal(t, 0, lock.Waiting())
}

func TestDoorLock_EnterHoldsTokenDuringTurn(t *testing.T) {
	lock := navigator.NewDoorLock(nil)
	outer := lock.Lock()

	var turns []string
	var held navigator.UnlockFunc
	require.NoError(t, lock.Enter(func(unlock navigator.UnlockFunc) {
		turns = append(turns, "enter")
		held = unlock
	}))
	require.NoError(t, lock.WaitUnlock(func() { turns = append(turns, "wait") }))

	require.NoError(t, outer())
	assert.Equal(t, []string{"enter"}, turns)
	assert.True(t, lock.IsLocked())

	require.NoError(t, held())
	assert.Equal(t, []string{"enter", "wait"}, turns)
}

func TestDoorLock_ConcurrentEntersAreSerialized(t *testing.T) {
	lock := navigator.NewDoorLock(nil)

	var (
		mu      sync.Mutex
		active  int
		maxSeen int
		wg      sync.WaitGroup
	)

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			assert.NoError(t, lock.Enter(func(unlock navigator.UnlockFunc) {
				mu.Lock()
				active++
				if active > maxSeen {
					maxSeen = active
				}
				mu.Unlock()

				go func() {
					defer wg.Done()
					mu.Lock()
					active--
					mu.Unlock()
					assert.NoError(t, unlock())
				}()
			}))
		}()
	}

	wg.Wait()
	assert.Equal(t, 1, maxSeen)
	assert.False(t, lock.IsLocked())
}
