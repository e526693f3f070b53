package vtscreen

import (
	"image/color"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// DefaultPalette is the standard 256-color palette: 16 named colors (0-15), 216 color cube (16-231), 24 grayscale (232-255).
var DefaultPalette = [256]color.RGBA{
	// Standard colors (0-7)
	{0, 0, 0, 255},       // Black
	{205, 49, 49, 255},   // Red
	{13, 188, 121, 255},  // Green
	{229, 229, 16, 255},  // Yellow
	{36, 114, 200, 255},  // Blue
	{188, 63, 188, 255},  // Magenta
	{17, 168, 205, 255},  // Cyan
	{229, 229, 229, 255}, // White

	// Bright colors (8-15)
	{102, 102, 102, 255}, // Bright Black
	{241, 76, 76, 255},   // Bright Red
	{35, 209, 139, 255},  // Bright Green
	{245, 245, 67, 255},  // Bright Yellow
	{59, 142, 234, 255},  // Bright Blue
	{214, 112, 214, 255}, // Bright Magenta
	{41, 184, 219, 255},  // Bright Cyan
	{255, 255, 255, 255}, // Bright White

	// 216 color cube (16-231) and grayscale (232-255) are generated in init.
}

func init() {
	// Generate 216 color cube (16-231)
	i := 16
	for r := 0; r < 6; r++ {
		for g := 0; g < 6; g++ {
			for b := 0; b < 6; b++ {
				DefaultPalette[i] = color.RGBA{
					R: uint8(r * 51),
					G: uint8(g * 51),
					B: uint8(b * 51),
					A: 255,
				}
				i++
			}
		}
	}

	// Generate grayscale (232-255)
	for j := 0; j < 24; j++ {
		gray := uint8(8 + j*10)
		DefaultPalette[232+j] = color.RGBA{gray, gray, gray, 255}
	}
}

// DefaultForeground is the default text color (light gray).
var DefaultForeground = color.RGBA{229, 229, 229, 255}

// DefaultBackground is the default background color (black).
var DefaultBackground = color.RGBA{0, 0, 0, 255}

// Named color indices for semantic colors (used with NamedColor).
const (
	NamedColorForeground       = 256 // Default foreground text color
	NamedColorBackground       = 257 // Default background color
	NamedColorCursor           = 258 // Cursor color
	NamedColorDimBlack         = 259 // Dim black
	NamedColorDimRed           = 260 // Dim red
	NamedColorDimGreen         = 261 // Dim green
	NamedColorDimYellow        = 262 // Dim yellow
	NamedColorDimBlue          = 263 // Dim blue
	NamedColorDimMagenta       = 264 // Dim magenta
	NamedColorDimCyan          = 265 // Dim cyan
	NamedColorDimWhite         = 266 // Dim white
	NamedColorBrightForeground = 267 // Bright foreground (white)
	NamedColorDimForeground    = 268 // Dim foreground
)

// IndexedColor references a color by palette index (0-255).
// Resolution to actual RGBA happens at render time using the palette.
type IndexedColor struct {
	Index int
}

// RGBA implements color.Color, returning a placeholder (actual resolution happens at render time).
func (c *IndexedColor) RGBA() (r, g, b, a uint32) {
	return 0, 0, 0, 0xffff
}

// NamedColor references a color by semantic name (foreground,
// background, or a standard palette slot). Resolution to actual RGBA
// happens at render time using the palette and configured defaults.
type NamedColor struct {
	Name int
}

// RGBA implements color.Color, returning a placeholder (actual resolution happens at render time).
func (c *NamedColor) RGBA() (r, g, b, a uint32) {
	return 0, 0, 0, 0xffff
}

// IsDefaultFg returns true if c is the default-foreground sentinel.
func IsDefaultFg(c color.Color) bool {
	n, ok := c.(*NamedColor)
	return ok && n.Name == NamedColorForeground
}

// IsDefaultBg returns true if c is the default-background sentinel.
func IsDefaultBg(c color.Color) bool {
	n, ok := c.(*NamedColor)
	return ok && n.Name == NamedColorBackground
}

// colorsEqual compares two pen colors in a type-aware way: two
// default-foreground sentinels are equal regardless of the RGB they
// resolve to, two palette references compare by index, and concrete
// colors compare by channel values.
func colorsEqual(a, b color.Color) bool {
	if a == nil || b == nil {
		return a == b
	}

	switch av := a.(type) {
	case *NamedColor:
		bv, ok := b.(*NamedColor)
		return ok && av.Name == bv.Name
	case *IndexedColor:
		bv, ok := b.(*IndexedColor)
		return ok && av.Index == bv.Index
	}

	if _, ok := b.(*NamedColor); ok {
		return false
	}
	if _, ok := b.(*IndexedColor); ok {
		return false
	}

	ar, ag, ab, aa := a.RGBA()
	br, bg, bb, ba := b.RGBA()
	return ar == br && ag == bg && ab == bb && aa == ba
}

// ResolveColor converts a pen color to concrete RGBA using the default
// palette and the screen's configured default colors.
func (s *Screen) ResolveColor(c color.Color, fg bool) color.RGBA {
	defFg := s.defaultFg
	defBg := s.defaultBg

	if c == nil {
		if fg {
			return defFg
		}
		return defBg
	}

	switch v := c.(type) {
	case color.RGBA:
		return v
	case *IndexedColor:
		if v.Index >= 0 && v.Index < 256 {
			return DefaultPalette[v.Index]
		}
		if fg {
			return defFg
		}
		return defBg
	case *NamedColor:
		switch {
		case v.Name >= 0 && v.Name < 16:
			return DefaultPalette[v.Name]
		case v.Name == NamedColorForeground:
			return defFg
		case v.Name == NamedColorBackground:
			return defBg
		case v.Name == NamedColorCursor:
			return defFg
		case v.Name >= NamedColorDimBlack && v.Name <= NamedColorDimWhite:
			return DimColor(DefaultPalette[v.Name-NamedColorDimBlack])
		case v.Name == NamedColorBrightForeground:
			return DefaultPalette[15]
		case v.Name == NamedColorDimForeground:
			return DimColor(defFg)
		default:
			if fg {
				return defFg
			}
			return defBg
		}
	default:
		r, g, b, a := c.RGBA()
		return color.RGBA{
			R: uint8(r >> 8),
			G: uint8(g >> 8),
			B: uint8(b >> 8),
			A: uint8(a >> 8),
		}
	}
}

// DimColor derives the faint variant of a concrete color by blending it
// toward black in RGB space.
func DimColor(c color.RGBA) color.RGBA {
	base, ok := colorful.MakeColor(c)
	if !ok {
		return c
	}
	dim := base.BlendRgb(colorful.Color{R: 0, G: 0, B: 0}, 0.34)
	r, g, b := dim.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: c.A}
}
