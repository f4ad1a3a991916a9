package desktop

import "github.com/veandco/go-sdl2/sdl"

// Theme defines the colors the compositor fills pages with.
type Theme struct {
	BackgroundColor sdl.Color // Behind every page
	PageColor       sdl.Color // Pages without a texture
	ToolbarColor    sdl.Color // Toolbar strip
	AccentColor     sdl.Color // Back chevron
	ScrimAlpha      uint8     // Scrim alpha at full opacity
	ToolbarHeight   int32
}

// DefaultTheme returns a light theme.
func DefaultTheme() Theme {
	return Theme{
		BackgroundColor: HexToColor(0x000000),
		PageColor:       HexToColor(0xFFFFFF),
		ToolbarColor:    HexToColor(0xF6F6F6),
		AccentColor:     HexToColor(0x008080),
		ScrimAlpha:      96,
		ToolbarHeight:   48,
	}
}

// HexToColor converts 0xRRGGBB into an opaque color.
func HexToColor(hex uint32) sdl.Color {
	return sdl.Color{
		R: uint8(hex >> 16 & 0xFF),
		G: uint8(hex >> 8 & 0xFF),
		B: uint8(hex & 0xFF),
		A: 0xFF,
	}
}
