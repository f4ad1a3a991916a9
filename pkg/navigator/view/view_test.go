package view_test

import (
	"testing"

	"github.com/BrandonKowalski/navigator/pkg/navigator/animit"
	"github.com/BrandonKowalski/navigator/pkg/navigator/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const settingsMarkup = `
<page title="{{title}}">
  <toolbar>
    <div class="left"><span class="back-label"></span></div>
    <div class="center">{{title}}</div>
    <div class="right">Edit</div>
  </toolbar>
  <div class="page-content">Hello {{user.name}}</div>
</page>`

func TestHTMLBinder_BindsToolbarAndContent(t *testing.T) {
	scope := view.NewScope()
	scope.Set("title", "Settings")
	scope.Set("user.name", "Ada")

	page, err := view.NewHTMLBinder().Bind(settingsMarkup, scope)
	require.NoError(t, err)

	assert.Equal(t, "page", page.Root.Tag)
	assert.Equal(t, "Settings", page.Controller.Title())

	content, ok := page.Controller.ContentElement().(*view.Node)
	require.True(t, ok)
	assert.Equal(t, "Hello Ada", content.Text())

	tb := page.Controller.Toolbar()
	require.NotNil(t, tb)
	assert.NotNil(t, tb.Element)
	assert.NotNil(t, tb.BackLabel)
	assert.Equal(t, "Settings", tb.Center.Text())
	assert.Equal(t, "Edit", tb.Right.Text())
	assert.NotNil(t, tb.Left)
}

func TestHTMLBinder_PageWithoutToolbar(t *testing.T) {
	page, err := view.NewHTMLBinder().Bind(`<page><p>plain</p></page>`, view.NewScope())
	require.NoError(t, err)

	assert.Nil(t, page.Controller.Toolbar())
	assert.Equal(t, view.Element(page.Root), page.Controller.ContentElement())
}

func TestHTMLBinder_MissingRegionsAreNil(t *testing.T) {
	page, err := view.NewHTMLBinder().Bind(`<page><toolbar><div class="center">x</div></toolbar></page>`, nil)
	require.NoError(t, err)

	tb := page.Controller.Toolbar()
	require.NotNil(t, tb)
	assert.Nil(t, tb.BackLabel)
	assert.Nil(t, tb.Left)
	assert.Nil(t, tb.Right)
	assert.NotNil(t, tb.Center)
}

func TestHTMLBinder_RejectsInvalidRoots(t *testing.T) {
	cases := map[string]string{
		"empty":      "",
		"text only":  "just text",
		"wrong root": "<div></div>",
		"two pages":  "<page></page><page></page>",
		"leading":    "hi <page></page>",
	}

	binder := view.NewHTMLBinder()
	for name, markup := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := binder.Bind(markup, view.NewScope())
			assert.ErrorIs(t, err, view.ErrNoPageElement)
		})
	}
}

func TestNode_TreeOperations(t *testing.T) {
	container := view.NewContainer()
	a := view.NewNode("page", nil)
	b := view.NewNode("page", nil)

	container.AppendChild(a)
	container.AppendChild(b)
	assert.Equal(t, []*view.Node{a, b}, container.Children())

	scrim := view.NewScrim()
	b.InsertBefore(scrim)
	assert.Equal(t, []*view.Node{a, scrim.(*view.Node), b}, container.Children())
	assert.True(t, scrim.Attached())

	scrim.Detach()
	scrim.Detach()
	assert.False(t, scrim.Attached())
	assert.Equal(t, 1, scrim.(*view.Node).Detaches())
	assert.Equal(t, []*view.Node{a, b}, container.Children())
}

func TestNode_InsertBeforeDetachedIsNoop(t *testing.T) {
	lone := view.NewNode("page", nil)
	scrim := view.NewScrim()
	lone.InsertBefore(scrim)
	assert.False(t, scrim.Attached())
}

func TestNode_StyleLifecycle(t *testing.T) {
	n := view.NewNode("div", nil)
	n.ApplyStyle(animit.Style{"opacity": "0.5", "transform": "translate3d(-25%, 0, 0)"}, animit.Transition{Timing: "linear"})

	assert.Equal(t, "0.5", n.Style()["opacity"])
	assert.Equal(t, "linear", n.Transition().Timing)

	n.ResetStyle(animit.Transition{})
	assert.Empty(t, n.Style())

	scrim := view.NewScrim().(*view.Node)
	scrim.ApplyStyle(animit.Style{"opacity": "0.2"}, animit.Transition{})
	scrim.ResetStyle(animit.Transition{})
	assert.Equal(t, animit.Style{"background-color": "black"}, scrim.Style())
}

func TestTranslateX(t *testing.T) {
	cases := []struct {
		transform string
		want      float64
		ok        bool
	}{
		{"", 0, true},
		{"translate3d(100%, 0px, 0px)", 100, true},
		{"translate3D(-25%, 0px, 0px)", -25, true},
		{"translate3d(0, 0, 0)", 0, true},
		{"translate3D(0px, 0px, 0px)", 0, true},
		{"translate3d(12px, 0, 0)", 0, false},
		{"rotate(4deg)", 0, false},
	}

	for _, tc := range cases {
		style := animit.Style{}
		if tc.transform != "" {
			style["transform"] = tc.transform
		}
		got, ok := view.TranslateX(style)
		assert.Equal(t, tc.ok, ok, tc.transform)
		assert.InDelta(t, tc.want, got, 0.001, tc.transform)
	}
}

func TestOpacity(t *testing.T) {
	assert.Equal(t, 1.0, view.Opacity(animit.Style{}))
	assert.Equal(t, 0.9, view.Opacity(animit.Style{"opacity": "0.9"}))
	assert.Equal(t, 0.0, view.Opacity(animit.Style{"opacity": "-2"}))
	assert.Equal(t, 1.0, view.Opacity(animit.Style{"opacity": "bogus"}))
}

func TestScope_LookupAndDestroy(t *testing.T) {
	root := view.NewScope()
	root.Set("app", "demo")

	child := root.New()
	child.Set("page", "a")
	grandchild := child.New()

	v, ok := grandchild.Get("app")
	assert.True(t, ok)
	assert.Equal(t, "demo", v)

	destroyed := 0
	grandchild.OnDestroy(func() { destroyed++ })

	child.Destroy()
	child.Destroy()

	assert.True(t, child.Destroyed())
	assert.True(t, grandchild.Destroyed())
	assert.Equal(t, 1, destroyed)
	assert.False(t, root.Destroyed())

	_, ok = child.Get("page")
	assert.False(t, ok)
}
