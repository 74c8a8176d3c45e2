// Package color implements the Color tagged union and Style bitflags of the
// cell model: Default, Indexed(0..15), Palette(0..255), and Rgb(r,g,b), plus
// the lossy downgrade path from Rgb down to a 256 or 16 color approximation.
package color

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Kind tags which variant a Color holds.
type Kind int

const (
	// KindDefault is the terminal's default foreground/background.
	KindDefault Kind = iota
	// KindIndexed is one of the 16 standard ANSI colors (0..15).
	KindIndexed
	// KindPalette is an xterm 256-color palette index (0..255).
	KindPalette
	// KindRGB is a true-color 24-bit value.
	KindRGB
)

// Color is a tagged union over the four color representations the wire
// protocol supports.
type Color struct {
	Kind    Kind
	Index   uint8 // valid for KindIndexed (0..15) and KindPalette (0..255)
	R, G, B uint8 // valid for KindRGB
}

// Default is the terminal's default color.
var Default = Color{Kind: KindDefault}

// Indexed returns one of the 16 standard ANSI colors. n is taken mod 16.
func Indexed(n uint8) Color {
	return Color{Kind: KindIndexed, Index: n % 16}
}

// Palette returns an xterm 256-color palette entry.
func Palette(n uint8) Color {
	return Color{Kind: KindPalette, Index: n}
}

// RGB returns a true-color value. The conversion to other representations is
// lossless going in (the bits are stored verbatim) and lossy only when later
// downgraded via Downgrade.
func RGB(r, g, b uint8) Color {
	return Color{Kind: KindRGB, R: r, G: g, B: b}
}

// Grayscale maps n (0..23) onto the xterm 256-color grayscale ramp, which
// starts at palette index 232 and runs for 24 steps.
func Grayscale(n uint8) Color {
	if n > 23 {
		n = 23
	}
	return Palette(232 + n)
}

// xterm256 holds the RGB values of the 256-color palette, used by Downgrade
// to find the nearest entry to an arbitrary RGB color.
var xterm256 = buildXterm256Table()

// Downgrade converts c to the requested target Kind. Converting to the
// color's own Kind is the identity. Converting
// KindIndexed/KindPalette up to KindRGB looks up the canonical palette
// entry. Converting down from KindRGB is lossy: it picks the nearest color
// in the target space by Euclidean distance in CIE-Lab space (via
// go-colorful), not naive RGB distance, so perceptually close grays and
// hues land on the right index.
func (c Color) Downgrade(target Kind) Color {
	if c.Kind == target {
		return c
	}

	switch target {
	case KindDefault:
		return Default

	case KindRGB:
		switch c.Kind {
		case KindIndexed:
			t := xterm256[c.Index%16]
			return RGB(t[0], t[1], t[2])
		case KindPalette:
			t := xterm256[c.Index]
			return RGB(t[0], t[1], t[2])
		default:
			return RGB(0, 0, 0)
		}

	case KindPalette:
		r, g, b := c.rgbTriplet()
		return Palette(nearestPaletteIndex(r, g, b, 0, 256))

	case KindIndexed:
		r, g, b := c.rgbTriplet()
		return Indexed(nearestPaletteIndex(r, g, b, 0, 16))
	}
	return c
}

func (c Color) rgbTriplet() (uint8, uint8, uint8) {
	switch c.Kind {
	case KindRGB:
		return c.R, c.G, c.B
	case KindIndexed:
		t := xterm256[c.Index%16]
		return t[0], t[1], t[2]
	case KindPalette:
		t := xterm256[c.Index]
		return t[0], t[1], t[2]
	default:
		return 0, 0, 0
	}
}

// nearestPaletteIndex scans xterm256[lo:hi) and returns the index (absolute,
// not offset by lo) whose color is perceptually closest to (r,g,b).
func nearestPaletteIndex(r, g, b uint8, lo, hi int) uint8 {
	target, _ := colorful.MakeColor(toRGBA(r, g, b))
	best := lo
	bestDist := math.MaxFloat64
	for i := lo; i < hi; i++ {
		t := xterm256[i]
		candidate, _ := colorful.MakeColor(toRGBA(t[0], t[1], t[2]))
		d := target.DistanceLab(candidate)
		if d < bestDist {
			bestDist = d
			best = i
		}
	}
	return uint8(best)
}

func toRGBA(r, g, b uint8) rgbaColor {
	return rgbaColor{r, g, b}
}

// rgbaColor adapts a plain uint8 triplet to color.Color so it can feed
// go-colorful's colorful.MakeColor.
type rgbaColor struct {
	r, g, b uint8
}

func (c rgbaColor) RGBA() (r, g, b, a uint32) {
	r = uint32(c.r) * 0x101
	g = uint32(c.g) * 0x101
	b = uint32(c.b) * 0x101
	a = 0xffff
	return
}

// buildXterm256Table computes the canonical xterm 256-color palette: 16
// standard colors, a 6x6x6 color cube (indices 16..231), and a 24-step
// grayscale ramp (indices 232..255).
func buildXterm256Table() [256][3]uint8 {
	var t [256][3]uint8

	// Standard 16 (matches common xterm defaults).
	standard := [16][3]uint8{
		{0, 0, 0}, {205, 0, 0}, {0, 205, 0}, {205, 205, 0},
		{0, 0, 238}, {205, 0, 205}, {0, 205, 205}, {229, 229, 229},
		{127, 127, 127}, {255, 0, 0}, {0, 255, 0}, {255, 255, 0},
		{92, 92, 255}, {255, 0, 255}, {0, 255, 255}, {255, 255, 255},
	}
	for i, c := range standard {
		t[i] = c
	}

	// 6x6x6 color cube.
	levels := [6]uint8{0, 95, 135, 175, 215, 255}
	idx := 16
	for r := 0; r < 6; r++ {
		for g := 0; g < 6; g++ {
			for b := 0; b < 6; b++ {
				t[idx] = [3]uint8{levels[r], levels[g], levels[b]}
				idx++
			}
		}
	}

	// Grayscale ramp, 232..255.
	for i := 0; i < 24; i++ {
		v := uint8(8 + i*10)
		t[232+i] = [3]uint8{v, v, v}
	}

	return t
}
