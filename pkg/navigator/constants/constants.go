// Package constants defines shared constants and configuration values
// used throughout the navigator packages.
package constants

import (
	"os"
	"time"
)

// Development is the environment variable value for development mode.
const Development = "DEV"

// Environment variables read by the navigator.
const (
	EnvironmentEnvVar  = "ENVIRONMENT"
	LogLevelEnvVar     = "NAVIGATOR_LOG_LEVEL"
	LogPathEnvVar      = "NAVIGATOR_LOG_PATH"
	LanguageEnvVar     = "NAVIGATOR_LANG"
	WindowWidthEnvVar  = "WINDOW_WIDTH"
	WindowHeightEnvVar = "WINDOW_HEIGHT"
)

// IsDevMode returns true if running in development mode (ENVIRONMENT=DEV).
func IsDevMode() bool {
	return os.Getenv(EnvironmentEnvVar) == Development
}

// Animator registry names that are always present.
const (
	AnimatorDefault   = "default"
	AnimatorNone      = "none"
	AnimatorSlideLeft = "slideLeft"
)

// Event names emitted by the Navigator.
const (
	EventPrePop      = "prePop"
	EventPopCanceled = "popCanceled"
	EventPostPush    = "postPush"
	EventPostPop     = "postPop"
	EventError       = "error"
)

// Markup conventions understood by the HTML binder.
const (
	PageTag           = "page"
	ToolbarTag        = "toolbar"
	ContentClass      = "page-content"
	BackLabelClass    = "back-label"
	CenterItemsClass  = "center"
	LeftItemsClass    = "left"
	RightItemsClass   = "right"
	ScrimClass        = "navigator-scrim"
	DefaultCacheSize  = 32
	DefaultFetchLimit = 1 << 20 // bytes read from a single template response
)

// Slide transition timing.
const (
	SlideDuration    = 400 * time.Millisecond
	SlideSettle      = 200 * time.Millisecond
	ScrimClearDelay  = 400 * time.Millisecond
	SlideTimingCurve = "cubic-bezier(.1, .7, .1, 1)"
)

// DefaultInsertDelay throttles DOM insertion to roughly one animation frame.
const DefaultInsertDelay = time.Second / 60
