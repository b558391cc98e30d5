package core

import "fmt"

// Color is a 24-bit cell colour. The zero value is the terminal default.
type Color struct {
	R, G, B uint8
	Set     bool
}

// RGB builds a set colour.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, Set: true}
}

// Hex returns the colour as "#rrggbb", or "" for the terminal default.
func (c Color) Hex() string {
	if !c.Set {
		return ""
	}
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Predefined colors for the character, overlays and the HUD.
var (
	ColorDefault = Color{}
	ColorWhite   = RGB(0xee, 0xee, 0xee)
	ColorBlack   = RGB(0x00, 0x00, 0x00)
	ColorRed     = RGB(0xe0, 0x30, 0x30)
	ColorYellow  = RGB(0xf0, 0xc0, 0x40)
	ColorCyan    = RGB(0x40, 0xc0, 0xd0)
	ColorGray    = RGB(0x80, 0x80, 0x80)
)
