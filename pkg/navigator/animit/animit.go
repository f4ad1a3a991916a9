// Package animit sequences style animations for page transitions.
//
// Each animated element gets a Track: an ordered list of declarative steps
// (apply a style over a duration, wait, reset, run a callback). RunAll
// starts any number of tracks together and reports once every one of them
// has finished.
//
//	animit.RunAll(clock, done,
//	    animit.New(enter).
//	        Queue(animit.Style{"transform": "translate3d(100%, 0, 0)"}, 0, "").
//	        Queue(animit.Style{"transform": "translate3d(0, 0, 0)"}, 400*time.Millisecond, curve).
//	        ResetStyle(animit.Transition{}),
//	    animit.New(leave).
//	        Queue(animit.Style{"opacity": "0.9"}, 400*time.Millisecond, curve),
//	)
package animit

import (
	"sync"
	"time"

	"go.uber.org/atomic"
)

// Style is a set of style property values keyed by property name.
type Style map[string]string

// Keys returns the property names of the style.
func (s Style) Keys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	return keys
}

// Transition describes how a style change is animated.
type Transition struct {
	Duration time.Duration
	Timing   string // timing function, e.g. "linear" or a cubic-bezier
}

// Target is an element whose style can be animated.
type Target interface {
	// ApplyStyle sets the given properties, transitioning with t.
	ApplyStyle(style Style, t Transition)
	// ResetStyle removes every property applied through ApplyStyle.
	ResetStyle(t Transition)
}

type stepKind int

const (
	stepStyle stepKind = iota
	stepWait
	stepReset
	stepCall
)

type step struct {
	kind       stepKind
	style      Style
	transition Transition
	fn         func(done func())
}

// Track is the ordered list of steps for a single target.
type Track struct {
	target Target
	steps  []step
}

// New creates an empty track for target. A nil target yields a track that
// completes immediately without running any step.
func New(target Target) *Track {
	return &Track{target: target}
}

// Queue applies style and waits d before the next step.
func (t *Track) Queue(style Style, d time.Duration, timing string) *Track {
	t.steps = append(t.steps, step{
		kind:       stepStyle,
		style:      style,
		transition: Transition{Duration: d, Timing: timing},
	})
	return t
}

// Wait pauses the track for d.
func (t *Track) Wait(d time.Duration) *Track {
	t.steps = append(t.steps, step{kind: stepWait, transition: Transition{Duration: d}})
	return t
}

// ResetStyle clears the animated properties, transitioning with tr.
func (t *Track) ResetStyle(tr Transition) *Track {
	t.steps = append(t.steps, step{kind: stepReset, transition: tr})
	return t
}

// Call runs fn and continues once fn calls done.
func (t *Track) Call(fn func(done func())) *Track {
	t.steps = append(t.steps, step{kind: stepCall, fn: fn})
	return t
}

// Len returns the number of steps in the track.
func (t *Track) Len() int {
	return len(t.steps)
}

// Play runs the steps in order and calls done once the last one finished.
func (t *Track) Play(clock Clock, done func()) {
	if t == nil || t.target == nil {
		done()
		return
	}

	var run func(i int)
	run = func(i int) {
		if i == len(t.steps) {
			done()
			return
		}

		s := t.steps[i]
		next := func() { run(i + 1) }

		switch s.kind {
		case stepStyle:
			t.target.ApplyStyle(s.style, s.transition)
			after(clock, s.transition.Duration, next)
		case stepWait:
			after(clock, s.transition.Duration, next)
		case stepReset:
			t.target.ResetStyle(s.transition)
			after(clock, s.transition.Duration, next)
		case stepCall:
			var once sync.Once
			s.fn(func() { once.Do(next) })
		}
	}
	run(0)
}

func after(clock Clock, d time.Duration, f func()) {
	if d <= 0 {
		f()
		return
	}
	clock.AfterFunc(d, f)
}

// RunAll plays every track concurrently and calls done exactly once after
// all of them finished.
func RunAll(clock Clock, done func(), tracks ...*Track) {
	if done == nil {
		done = func() {}
	}
	if len(tracks) == 0 {
		done()
		return
	}

	remaining := atomic.NewInt32(int32(len(tracks)))
	for _, track := range tracks {
		var once sync.Once
		track.Play(clock, func() {
			once.Do(func() {
				if remaining.Dec() == 0 {
					done()
				}
			})
		})
	}
}
