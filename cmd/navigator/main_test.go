package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/BrandonKowalski/navigator/pkg/navigator"
	"github.com/BrandonKowalski/navigator/pkg/navigator/content"
	"github.com/BrandonKowalski/navigator/pkg/navigator/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadScript(t *testing.T) {
	script, err := LoadScript(strings.NewReader(`
steps:
  - push: home.html
  - push: detail.html
    options:
      animation: none
      params: {title: Portal}
  - pop: true
  - reset: home.html
`))
	require.NoError(t, err)
	require.Len(t, script.Steps, 4)

	assert.Equal(t, "push home.html", script.Steps[0].String())
	assert.Equal(t, "none", script.Steps[1].Options["animation"])
	assert.Equal(t, "pop", script.Steps[2].String())
	assert.Equal(t, "reset home.html", script.Steps[3].String())
}

func TestLoadScript_Invalid(t *testing.T) {
	cases := map[string]string{
		"empty":        `steps: []`,
		"two ops":      "steps:\n  - push: a\n    pop: true\n",
		"no op":        "steps:\n  - options: {animation: none}\n",
		"pop options":  "steps:\n  - pop: true\n    options: {animation: none}\n",
		"not a script": `[1, 2`,
	}

	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadScript(strings.NewReader(body))
			assert.Error(t, err)
		})
	}
}

func testNavigator(t *testing.T) *navigator.Navigator {
	t.Helper()
	resolver := content.NewResolver(nil)
	resolver.Preload("home.html", `<page title="Home"></page>`)
	resolver.Preload("detail.html", `<page title="{{title}}"></page>`)
	resolver.Preload("broken.html", `<div>not a page</div>`)

	return navigator.New(nil, resolver,
		navigator.WithInsertDelay(0),
		navigator.WithDefaultAnimation("none"),
	)
}

func TestStep_Run(t *testing.T) {
	nav := testNavigator(t)
	script, err := LoadScript(strings.NewReader(`
steps:
  - push: home.html
  - push: detail.html
    options:
      params: {title: Portal}
`))
	require.NoError(t, err)

	for _, step := range script.Steps {
		require.NoError(t, step.Run(nav))
	}

	var out bytes.Buffer
	printStack(&out, nav)
	assert.Equal(t, "2 page(s)\n  2. detail.html \"Portal\"\n  1. home.html \"Home\"\n", out.String())

	bad := Step{Push: "home.html", Options: map[string]any{"speed": 1}}
	assert.ErrorIs(t, bad.Run(nav), navigator.ErrInvalidOptions)
}

func TestRunHeadless_PopAfterQueuedPushes(t *testing.T) {
	resolver := content.NewResolver(nil)
	resolver.Preload("home.html", `<page title="Home"></page>`)
	resolver.Preload("detail.html", `<page title="{{title}}"></page>`)
	nav := navigator.New(nil, resolver,
		navigator.WithInsertDelay(20*time.Millisecond),
		navigator.WithDefaultAnimation("none"),
	)

	var failures []error
	nav.OnError(func(e *navigator.ErrorEvent) {
		failures = append(failures, e.Err)
	})

	script, err := LoadScript(strings.NewReader(`
steps:
  - push: home.html
  - push: detail.html
    options:
      params: {title: Portal}
  - pop: true
  - push: detail.html
    options:
      params: {title: Second}
  - pop: true
`))
	require.NoError(t, err)

	require.NoError(t, runHeadless(nav, script, 5*time.Second))
	assert.Empty(t, failures)

	var out bytes.Buffer
	printStack(&out, nav)
	assert.Equal(t, "1 page(s)\n  1. home.html \"Home\"\n", out.String())
}

func TestRunHeadless_ResetAfterPop(t *testing.T) {
	resolver := content.NewResolver(nil)
	resolver.Preload("home.html", `<page title="Home"></page>`)
	resolver.Preload("detail.html", `<page title="Detail"></page>`)
	nav := navigator.New(nil, resolver,
		navigator.WithInsertDelay(20*time.Millisecond),
		navigator.WithDefaultAnimation("none"),
	)

	script, err := LoadScript(strings.NewReader(`
steps:
  - push: home.html
  - push: detail.html
  - pop: true
  - reset: detail.html
`))
	require.NoError(t, err)
	require.NoError(t, runHeadless(nav, script, 5*time.Second))

	pages := nav.GetPages()
	require.Len(t, pages, 1)
	assert.Equal(t, "detail.html", pages[0].Name)
}

func decodeStack(t *testing.T, rec *httptest.ResponseRecorder) stackJSON {
	t.Helper()
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var out stackJSON
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
	return out
}

func TestServer_Navigation(t *testing.T) {
	nav := testNavigator(t)
	reg := prometheus.NewRegistry()
	collector, err := metrics.NewCollector(reg)
	require.NoError(t, err)
	defer collector.Observe(nav)()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "home.html"), []byte(`<page title="Home"></page>`), 0o644))

	handler := newServer(nav, dir, reg)
	do := func(method, path, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, strings.NewReader(body))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}

	stack := decodeStack(t, do(http.MethodPost, "/navigator/push", `{"locator": "home.html"}`))
	require.Len(t, stack.Pages, 1)
	assert.Equal(t, "Home", stack.Pages[0].Title)

	stack = decodeStack(t, do(http.MethodPost, "/navigator/push",
		`{"locator": "detail.html", "options": {"params": {"title": "Portal"}}}`))
	require.Len(t, stack.Pages, 2)
	assert.Equal(t, "Portal", stack.Pages[1].Title)
	assert.False(t, stack.Busy)

	stack = decodeStack(t, do(http.MethodPost, "/navigator/pop", ``))
	assert.Len(t, stack.Pages, 1)

	rec := do(http.MethodPost, "/navigator/pop", ``)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(http.MethodPost, "/navigator/push", `{"locator": "home.html", "options": {"animation": "spin"}}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(http.MethodPost, "/navigator/push", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	stack = decodeStack(t, do(http.MethodGet, "/navigator/", ``))
	assert.Len(t, stack.Pages, 1)

	rec = do(http.MethodGet, "/pages/home.html", ``)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `title="Home"`)

	rec = do(http.MethodGet, "/metrics", ``)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "navigator_push_total 2")
	assert.Contains(t, rec.Body.String(), "navigator_pop_total 1")
}

func TestServer_ReportsFailedLoads(t *testing.T) {
	nav := testNavigator(t)
	handler := newServer(nav, "", prometheus.NewRegistry())
	do := func(path, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}

	stack := decodeStack(t, do("/navigator/push", `{"locator": "home.html"}`))
	require.Len(t, stack.Pages, 1)

	rec := do("/navigator/push", `{"locator": "missing.html"}`)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "missing.html")

	rec = do("/navigator/reset", `{"locator": "broken.html"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = do("/navigator/pop", ``)
	assert.Equal(t, http.StatusConflict, rec.Code)

	stack = decodeStack(t, do("/navigator/push", `{"locator": "detail.html", "options": {"params": {"title": "Portal"}}}`))
	assert.Len(t, stack.Pages, 2)
}
