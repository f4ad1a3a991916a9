package navigator

import (
	"testing"
	"time"

	"github.com/BrandonKowalski/navigator/pkg/navigator/animit"
	"github.com/BrandonKowalski/navigator/pkg/navigator/constants"
	"github.com/BrandonKowalski/navigator/pkg/navigator/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	plainMarkup   = `<page><div class="page-content">plain</div></page>`
	toolbarMarkup = `<page title="Bar">
  <toolbar>
    <div class="left"><span class="back-label">Back</span></div>
    <div class="center">Bar</div>
    <div class="right">Edit</div>
  </toolbar>
  <div class="page-content">body</div>
</page>`
)

func record(t *testing.T, name, markup string) *PageRecord {
	t.Helper()
	page, err := view.NewHTMLBinder().Bind(markup, view.NewScope())
	require.NoError(t, err)
	return newPageRecord(name, page, view.NewScope(), PushOptions{})
}

func mounted(t *testing.T, markups ...string) (*view.Node, []*PageRecord) {
	t.Helper()
	container := view.NewContainer()
	var records []*PageRecord
	for i, m := range markups {
		r := record(t, string(rune('a'+i)), m)
		container.AppendChild(r.Element)
		records = append(records, r)
	}
	return container, records
}

func asNode(t *testing.T, e view.Element) *view.Node {
	t.Helper()
	n, ok := e.(*view.Node)
	require.True(t, ok)
	return n
}

func scrims(container *view.Node) int {
	count := 0
	for _, c := range container.Children() {
		if c.HasClass(constants.ScrimClass) {
			count++
		}
	}
	return count
}

func TestToolbarPathSelection(t *testing.T) {
	bar := &PageRecord{Controller: &fakeController{toolbar: &view.Toolbar{}}}
	plain := &PageRecord{Controller: &fakeController{}}

	tests := []struct {
		name        string
		enter       *PageRecord
		leave       *PageRecord
		pushToolbar bool
		popToolbar  bool
	}{
		{"both toolbars", bar, bar, true, true},
		{"neither", plain, plain, false, true},
		{"enter only", bar, plain, false, false},
		{"leave only", plain, bar, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.pushToolbar, pushUsesToolbars(tt.enter, tt.leave))
			assert.Equal(t, tt.popToolbar, popUsesToolbars(tt.enter, tt.leave))
		})
	}
}

type fakeController struct {
	toolbar *view.Toolbar
}

func (c *fakeController) ContentElement() view.Element { return nil }
func (c *fakeController) Toolbar() *view.Toolbar       { return c.toolbar }
func (c *fakeController) Title() string                { return "" }

func TestSlideAnimator_PushElementPath(t *testing.T) {
	clock := animit.NewManualClock()
	slide := NewSlideAnimator(WithSlideClock(clock))
	container, pages := mounted(t, plainMarkup, plainMarkup)
	leave, enter := pages[0], pages[1]

	done := 0
	slide.Push(enter, leave, func() { done++ })

	assert.Equal(t, 1, scrims(container))
	assert.True(t, container.Children()[0].HasClass(constants.ScrimClass))

	x, ok := view.TranslateX(asNode(t, enter.Element).Style())
	require.True(t, ok)
	assert.Equal(t, 0.0, x)
	assert.Equal(t, constants.SlideDuration, asNode(t, enter.Element).Transition().Duration)

	x, ok = view.TranslateX(asNode(t, leave.Element).Style())
	require.True(t, ok)
	assert.Equal(t, -25.0, x)
	assert.InDelta(t, 0.9, view.Opacity(asNode(t, leave.Element).Style()), 1e-9)

	clock.Advance(constants.ScrimClearDelay)
	assert.Equal(t, 0, scrims(container))
	assert.Empty(t, asNode(t, enter.Element).Style())
	assert.Equal(t, 0, done)

	clock.Advance(constants.SlideSettle)
	assert.Equal(t, 1, done)
	assert.Empty(t, asNode(t, leave.Element).Style())

	clock.Advance(time.Second)
	assert.Equal(t, 1, done)
	assert.Equal(t, 0, clock.Pending())
}

func TestSlideAnimator_PushToolbarPath(t *testing.T) {
	clock := animit.NewManualClock()
	slide := NewSlideAnimator(WithSlideClock(clock))
	_, pages := mounted(t, toolbarMarkup, toolbarMarkup)
	leave, enter := pages[0], pages[1]

	done := 0
	slide.Push(enter, leave, func() { done++ })

	// Toolbar regions animate on their own; the page roots stay put.
	assert.Empty(t, asNode(t, enter.Element).Style())
	assert.Empty(t, asNode(t, leave.Element).Style())

	enterLabel := asNode(t, enter.Toolbar().BackLabel)
	assert.Equal(t, "1", enterLabel.Style()["opacity"])
	leaveLabel := asNode(t, leave.Toolbar().BackLabel)
	assert.Equal(t, "0", leaveLabel.Style()["opacity"])
	x, ok := view.TranslateX(leaveLabel.Style())
	require.True(t, ok)
	assert.Equal(t, -100.0, x)

	leaveCenter := asNode(t, leave.Toolbar().Center)
	x, ok = view.TranslateX(leaveCenter.Style())
	require.True(t, ok)
	assert.Equal(t, -36.0, x)

	clock.Advance(constants.SlideDuration)
	assert.Equal(t, 0, done)

	clock.Advance(constants.SlideDuration)
	assert.Equal(t, 1, done)
	assert.Empty(t, enterLabel.Style())
	assert.Empty(t, asNode(t, enter.Toolbar().Element).Style())
}

func TestSlideAnimator_PopElementPath(t *testing.T) {
	clock := animit.NewManualClock()
	slide := NewSlideAnimator(WithSlideClock(clock))
	container, pages := mounted(t, toolbarMarkup, plainMarkup)
	enter, leave := pages[0], pages[1]

	done := 0
	slide.Pop(enter, leave, func() { done++ })

	assert.Equal(t, 1, scrims(container))

	x, ok := view.TranslateX(asNode(t, leave.Element).Style())
	require.True(t, ok)
	assert.Equal(t, 100.0, x)

	x, ok = view.TranslateX(asNode(t, enter.Element).Style())
	require.True(t, ok)
	assert.Equal(t, 0.0, x)

	clock.Advance(2 * constants.SlideDuration)
	assert.Equal(t, 1, done)
	assert.Equal(t, 0, scrims(container))
	assert.Empty(t, asNode(t, enter.Element).Style())
}

func TestSlideAnimator_PopWithoutEnterPage(t *testing.T) {
	clock := animit.NewManualClock()
	slide := NewSlideAnimator(WithSlideClock(clock))
	container, pages := mounted(t, plainMarkup)

	done := 0
	slide.Pop(nil, pages[0], func() { done++ })
	assert.Equal(t, 0, scrims(container))

	clock.Advance(constants.SlideDuration + constants.SlideSettle)
	assert.Equal(t, 1, done)
}

func TestSlideAnimator_WithoutScrim(t *testing.T) {
	clock := animit.NewManualClock()
	slide := NewSlideAnimator(WithSlideClock(clock), WithScrimFactory(nil), WithSlideDuration(100*time.Millisecond))
	container, pages := mounted(t, plainMarkup, plainMarkup)

	done := 0
	slide.Push(pages[1], pages[0], func() { done++ })
	assert.Equal(t, 0, scrims(container))

	clock.Advance(100*time.Millisecond + constants.SlideSettle)
	assert.Equal(t, 1, done)
}
