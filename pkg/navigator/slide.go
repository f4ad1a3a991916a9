package navigator

import (
	"time"

	"github.com/BrandonKowalski/navigator/pkg/navigator/animit"
	"github.com/BrandonKowalski/navigator/pkg/navigator/constants"
	"github.com/BrandonKowalski/navigator/pkg/navigator/view"
)

// Transforms used by the slide transition.
const (
	translateHome       = "translate3d(0, 0, 0)"
	translateOffRight   = "translate3d(100%, 0, 0)"
	translateOffLeft    = "translate3d(-100%, 0, 0)"
	translateDimmed     = "translate3d(-25%, 0, 0)"
	translateCenterAway = "translate3d(-36%, 0, 0)"
)

var transparentToolbar = animit.Style{
	"background":       "none",
	"background-color": "rgba(0, 0, 0, 0)",
	"border-color":     "rgba(0, 0, 0, 0)",
}

func at(transform, opacity string) animit.Style {
	s := animit.Style{"transform": transform}
	if opacity != "" {
		s["opacity"] = opacity
	}
	return s
}

func fade(opacity string) animit.Style {
	return animit.Style{"opacity": opacity}
}

// SlideAnimator slides the entering page in from the right while the
// leaving page drifts left and dims, with a black scrim underneath the
// moving pages. When the pages have toolbars the toolbar regions animate
// on their own.
//
// Push takes the toolbar path only when both pages have a toolbar. Pop takes
// it when both or neither have one; with mixed toolbars both directions fall
// back to animating the page elements.
type SlideAnimator struct {
	clock      animit.Clock
	duration   time.Duration
	settle     time.Duration
	scrimDelay time.Duration
	timing     string
	newScrim   func() view.Element
}

// SlideOption configures a SlideAnimator.
type SlideOption func(*SlideAnimator)

// WithSlideClock sets the clock driving the animation steps.
func WithSlideClock(clock animit.Clock) SlideOption {
	return func(s *SlideAnimator) {
		s.clock = clock
	}
}

// WithSlideDuration overrides the slide duration.
func WithSlideDuration(d time.Duration) SlideOption {
	return func(s *SlideAnimator) {
		s.duration = d
	}
}

// WithScrimFactory sets how scrim elements are created. A nil factory
// disables the scrim.
func WithScrimFactory(fn func() view.Element) SlideOption {
	return func(s *SlideAnimator) {
		s.newScrim = fn
	}
}

func NewSlideAnimator(opts ...SlideOption) *SlideAnimator {
	s := &SlideAnimator{
		clock:      animit.SystemClock(),
		duration:   constants.SlideDuration,
		settle:     constants.SlideSettle,
		scrimDelay: constants.ScrimClearDelay,
		timing:     constants.SlideTimingCurve,
		newScrim:   view.NewScrim,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func pushUsesToolbars(enter, leave *PageRecord) bool {
	return enter.HasToolbar() && leave.HasToolbar()
}

func popUsesToolbars(enter, leave *PageRecord) bool {
	return enter.HasToolbar() == leave.HasToolbar()
}

type toolbarRegion func(*view.Toolbar) view.Element

var (
	toolbarElement   toolbarRegion = func(t *view.Toolbar) view.Element { return t.Element }
	toolbarBackLabel toolbarRegion = func(t *view.Toolbar) view.Element { return t.BackLabel }
	toolbarCenter    toolbarRegion = func(t *view.Toolbar) view.Element { return t.Center }
	toolbarLeft      toolbarRegion = func(t *view.Toolbar) view.Element { return t.Left }
	toolbarRight     toolbarRegion = func(t *view.Toolbar) view.Element { return t.Right }
)

func region(p *PageRecord, pick toolbarRegion) view.Element {
	tb := p.Toolbar()
	if tb == nil {
		return nil
	}
	return pick(tb)
}

// track starts a track on e, or an inert one when e is missing.
func track(e view.Element) *animit.Track {
	if e == nil {
		return animit.New(nil)
	}
	return animit.New(e)
}

func (s *SlideAnimator) move(e view.Element, from, to animit.Style) *animit.Track {
	return track(e).
		Queue(from, 0, "").
		Queue(to, s.duration, s.timing)
}

// scrim slides a mask in just before below and removes it after the
// clear delay.
func (s *SlideAnimator) scrim(below *PageRecord) *animit.Track {
	if below == nil || below.Element == nil || s.newScrim == nil {
		return animit.New(nil)
	}

	mask := s.newScrim()
	below.Element.InsertBefore(mask)

	return track(mask).
		Wait(s.scrimDelay).
		Call(func(done func()) {
			mask.Detach()
			done()
		})
}

// Push implements Animator.
func (s *SlideAnimator) Push(enter, leave *PageRecord, done func()) {
	if leave == nil {
		animit.RunAll(s.clock, done,
			s.move(enter.Element, at(translateOffRight, ""), at(translateHome, "")).
				ResetStyle(animit.Transition{}),
		)
		return
	}

	mask := s.scrim(leave)

	if pushUsesToolbars(enter, leave) {
		animit.RunAll(s.clock, done,
			mask,

			s.move(enter.ContentElement(), at(translateOffRight, ""), at(translateHome, "")).
				ResetStyle(animit.Transition{}),

			track(region(enter, toolbarElement)).
				Queue(transparentToolbar, 0, "").
				Wait(s.settle).
				ResetStyle(animit.Transition{Duration: s.settle, Timing: "linear"}),

			s.move(region(enter, toolbarBackLabel), at(translateOffRight, "0"), at(translateHome, "1")).
				Wait(s.duration).
				ResetStyle(animit.Transition{}),

			s.move(region(enter, toolbarCenter), at(translateOffRight, "0"), at(translateHome, "1")).
				Wait(s.duration).
				ResetStyle(animit.Transition{}),

			s.move(region(enter, toolbarLeft), fade("0"), fade("1")).
				Wait(s.duration).
				ResetStyle(animit.Transition{}),

			s.move(region(enter, toolbarRight), fade("0"), fade("1")).
				Wait(s.duration).
				ResetStyle(animit.Transition{}),

			s.move(leave.ContentElement(), at(translateHome, "1"), at(translateDimmed, "0.9")).
				Wait(s.settle).
				ResetStyle(animit.Transition{}),

			s.move(region(leave, toolbarBackLabel), at(translateHome, "1"), at(translateOffLeft, "0")).
				Wait(s.settle).
				ResetStyle(animit.Transition{}),

			s.move(region(leave, toolbarCenter), at(translateHome, "1"), at(translateCenterAway, "0")).
				Wait(s.settle).
				ResetStyle(animit.Transition{}),

			s.move(region(leave, toolbarLeft), fade("1"), fade("0")).
				Wait(s.settle).
				ResetStyle(animit.Transition{}),

			s.move(region(leave, toolbarRight), fade("1"), fade("0")).
				Wait(s.settle).
				ResetStyle(animit.Transition{}),
		)
		return
	}

	animit.RunAll(s.clock, done,
		mask,

		s.move(enter.Element, at(translateOffRight, ""), at(translateHome, "")).
			ResetStyle(animit.Transition{}),

		s.move(leave.Element, at(translateHome, "1"), at(translateDimmed, "0.9")).
			Wait(s.settle).
			ResetStyle(animit.Transition{}),
	)
}

// Pop implements Animator.
func (s *SlideAnimator) Pop(enter, leave *PageRecord, done func()) {
	if enter == nil {
		animit.RunAll(s.clock, done,
			s.move(leave.Element, at(translateHome, ""), at(translateOffRight, "")).
				Wait(s.settle),
		)
		return
	}

	mask := s.scrim(enter)

	if popUsesToolbars(enter, leave) {
		animit.RunAll(s.clock, done,
			mask,

			s.move(enter.ContentElement(), at(translateDimmed, "0.9"), at(translateHome, "1")).
				Wait(s.duration).
				ResetStyle(animit.Transition{}),

			s.move(region(enter, toolbarBackLabel), at(translateOffLeft, "0"), at(translateHome, "1")).
				ResetStyle(animit.Transition{}),

			s.move(region(enter, toolbarCenter), at(translateCenterAway, "0"), at(translateHome, "1")).
				ResetStyle(animit.Transition{}),

			s.move(region(enter, toolbarLeft), fade("0"), fade("1")).
				ResetStyle(animit.Transition{}),

			s.move(region(enter, toolbarRight), fade("0"), fade("1")).
				ResetStyle(animit.Transition{}),

			s.move(leave.ContentElement(), at(translateHome, ""), at(translateOffRight, "")).
				Wait(s.settle),

			track(region(leave, toolbarElement)).
				Queue(transparentToolbar, 0, "").
				Wait(s.duration),

			s.move(region(leave, toolbarBackLabel), at(translateHome, "1"), at(translateOffRight, "0")),

			s.move(region(leave, toolbarCenter), at(translateHome, "1"), at(translateOffRight, "0")),

			s.move(region(leave, toolbarLeft), at(translateHome, "1"), at(translateHome, "0")),

			s.move(region(leave, toolbarRight), at(translateHome, "1"), at(translateHome, "0")),
		)
		return
	}

	animit.RunAll(s.clock, done,
		mask,

		s.move(enter.Element, at(translateDimmed, "0.9"), at(translateHome, "1")).
			Wait(s.duration).
			ResetStyle(animit.Transition{}),

		s.move(leave.Element, at(translateHome, ""), at(translateOffRight, "")).
			Wait(s.settle),
	)
}
