package navigator_test

import (
	"testing"

	"github.com/BrandonKowalski/navigator/pkg/navigator"
	"github.com/BrandonKowalski/navigator/pkg/navigator/animit"
	"github.com/BrandonKowalski/navigator/pkg/navigator/content"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noop(enter, leave *navigator.PageRecord, done func()) { done() }

type fadeAnimator struct {
	duration int
}

func (f *fadeAnimator) Push(enter, leave *navigator.PageRecord, done func()) {
	_ = f.duration
	done()
}

func (f *fadeAnimator) Pop(enter, leave *navigator.PageRecord, done func()) {
	_ = f.duration
	done()
}

func TestRegistry_SeededAnimators(t *testing.T) {
	r := navigator.NewRegistry(animit.NewManualClock())

	assert.Equal(t, []string{"default", "none", "slideLeft"}, r.Names())

	def, ok := r.Lookup("default")
	require.True(t, ok)
	slide, ok := r.Lookup("slideLeft")
	require.True(t, ok)
	assert.Same(t, def, slide)

	none, ok := r.Lookup("none")
	require.True(t, ok)
	assert.Equal(t, navigator.NoneAnimator{}, none)
}

func TestRegistry_RegisterCustom(t *testing.T) {
	r := navigator.NewRegistry(animit.NewManualClock())

	fade := navigator.AnimatorFuncs{PushFunc: noop, PopFunc: noop}
	require.NoError(t, r.Register("fade", fade))

	got, ok := r.Lookup("fade")
	require.True(t, ok)
	assert.NotNil(t, got)
	assert.Contains(t, r.Names(), "fade")
}

func TestRegistry_RejectsInvalidAnimators(t *testing.T) {
	cases := map[string]navigator.Animator{
		"nil":          nil,
		"missing pop":  navigator.AnimatorFuncs{PushFunc: noop},
		"missing push": navigator.AnimatorFuncs{PopFunc: noop},
		"nil pointer":  (*navigator.AnimatorFuncs)(nil),
		"nil slide":    (*navigator.SlideAnimator)(nil),
		"nil custom":   (*fadeAnimator)(nil),
	}

	for name, a := range cases {
		t.Run(name, func(t *testing.T) {
			r := navigator.NewRegistry(animit.NewManualClock())
			before := r.Names()

			err := r.Register("broken", a)
			assert.ErrorIs(t, err, navigator.ErrInvalidAnimator)
			assert.Equal(t, before, r.Names())
		})
	}
}

func TestRegistry_AcceptsCustomPointer(t *testing.T) {
	r := navigator.NewRegistry(animit.NewManualClock())
	require.NoError(t, r.Register("fade", &fadeAnimator{duration: 1}))
}

func TestPushPage_RejectsNilCustomAnimator(t *testing.T) {
	resolver := content.NewResolver(nil)
	resolver.Preload("home.html", `<page title="Home"></page>`)
	nav := navigator.New(nil, resolver, navigator.WithInsertDelay(0))

	err := nav.PushPage("home.html", &navigator.PushOptions{Animator: (*fadeAnimator)(nil)})
	assert.ErrorIs(t, err, navigator.ErrInvalidAnimator)
	assert.False(t, nav.Busy())
	assert.Equal(t, 0, nav.Len())
}

func TestRegistry_RejectsDuplicateNames(t *testing.T) {
	r := navigator.NewRegistry(animit.NewManualClock())
	before, _ := r.Lookup("none")

	err := r.Register("none", navigator.AnimatorFuncs{PushFunc: noop, PopFunc: noop})
	assert.ErrorIs(t, err, navigator.ErrAnimatorExists)

	after, _ := r.Lookup("none")
	assert.Equal(t, before, after)
}

func TestNoneAnimatorCompletesImmediately(t *testing.T) {
	calls := 0
	navigator.NoneAnimator{}.Push(nil, nil, func() { calls++ })
	navigator.NoneAnimator{}.Pop(nil, nil, func() { calls++ })
	assert.Equal(t, 2, calls)
}
