package view

import (
	"strconv"
	"strings"

	"github.com/BrandonKowalski/navigator/pkg/navigator/animit"
)

// TranslateX extracts the horizontal offset, in percent, from a
// "translate3d(X%, Y, Z)" transform. It returns 0 when the style has no
// transform and false when the transform cannot be read.
func TranslateX(style animit.Style) (float64, bool) {
	transform, ok := style["transform"]
	if !ok || transform == "" || transform == "none" {
		return 0, true
	}

	lower := strings.ToLower(strings.TrimSpace(transform))
	if !strings.HasPrefix(lower, "translate3d(") || !strings.HasSuffix(lower, ")") {
		return 0, false
	}

	args := strings.Split(lower[len("translate3d("):len(lower)-1], ",")
	if len(args) == 0 {
		return 0, false
	}

	x := strings.TrimSpace(args[0])
	switch {
	case strings.HasSuffix(x, "%"):
		x = strings.TrimSuffix(x, "%")
	case strings.HasSuffix(x, "px"):
		// Only zero pixel offsets are used by the stock animators.
		x = strings.TrimSuffix(x, "px")
		if v, err := strconv.ParseFloat(x, 64); err != nil || v != 0 {
			return 0, false
		}
		return 0, true
	}

	v, err := strconv.ParseFloat(x, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Opacity reads the opacity property, defaulting to fully opaque.
func Opacity(style animit.Style) float64 {
	raw, ok := style["opacity"]
	if !ok {
		return 1
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 1
	}
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
