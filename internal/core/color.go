package core

// Color represents a foreground color for a screen cell.
// Uses ANSI 256-color codes for terminal compatibility.
type Color uint8

// Predefined colors for game elements.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
)

// RGB returns the 8-bit red, green and blue components used by
// non-terminal front ends. Values follow the xterm palette.
func (c Color) RGB() (r, g, b uint8) {
	switch c {
	case ColorRed:
		return 205, 0, 0
	case ColorGreen:
		return 0, 205, 0
	case ColorYellow:
		return 205, 205, 0
	case ColorBlue:
		return 0, 0, 238
	case ColorMagenta:
		return 205, 0, 205
	case ColorCyan:
		return 0, 205, 205
	case ColorWhite:
		return 229, 229, 229
	case ColorBrightRed:
		return 255, 0, 0
	case ColorBrightGreen:
		return 0, 255, 0
	case ColorBrightYellow:
		return 255, 255, 0
	case ColorBrightBlue:
		return 92, 92, 255
	case ColorBrightMagenta:
		return 255, 0, 255
	case ColorBrightCyan:
		return 0, 255, 255
	case ColorBrightWhite:
		return 255, 255, 255
	case ColorOrange:
		return 255, 135, 0
	case ColorGray:
		return 138, 138, 138
	default:
		return 200, 200, 200
	}
}
