package color

import "testing"

func TestGrayscale(t *testing.T) {
	c := Grayscale(0)
	if c.Kind != KindPalette || c.Index != 232 {
		t.Errorf("Grayscale(0) = %+v, want palette 232", c)
	}
	c = Grayscale(23)
	if c.Index != 255 {
		t.Errorf("Grayscale(23) = %+v, want palette 255", c)
	}
	// Out-of-range n clamps rather than wrapping into the color cube.
	c = Grayscale(200)
	if c.Index != 255 {
		t.Errorf("Grayscale(200) = %+v, want clamped to 255", c)
	}
}

func TestDowngradeIdentity(t *testing.T) {
	rgb := RGB(10, 20, 30)
	if got := rgb.Downgrade(KindRGB); got != rgb {
		t.Errorf("Downgrade to same kind should be identity, got %+v", got)
	}
}

func TestDowngradeRGBToPaletteNearest(t *testing.T) {
	// Pure red should downgrade to a palette entry that is red-ish, not an
	// arbitrary index.
	red := RGB(255, 0, 0)
	p := red.Downgrade(KindPalette)
	if p.Kind != KindPalette {
		t.Fatalf("expected KindPalette, got %v", p.Kind)
	}
	r, g, b := xterm256[p.Index][0], xterm256[p.Index][1], xterm256[p.Index][2]
	if int(r) < 150 || int(g) > 100 || int(b) > 100 {
		t.Errorf("nearest palette entry for red = (%d,%d,%d), expected red-dominant", r, g, b)
	}
}

func TestDowngradeRGBToIndexed(t *testing.T) {
	black := RGB(0, 0, 0)
	idx := black.Downgrade(KindIndexed)
	if idx.Kind != KindIndexed {
		t.Fatalf("expected KindIndexed, got %v", idx.Kind)
	}
	if idx.Index != 0 {
		t.Errorf("nearest indexed color for black = %d, want 0", idx.Index)
	}
}

func TestDowngradeIndexedToRGBIsLossless(t *testing.T) {
	idx := Indexed(1) // standard red
	rgb := idx.Downgrade(KindRGB)
	if rgb.Kind != KindRGB {
		t.Fatalf("expected KindRGB, got %v", rgb.Kind)
	}
	if rgb.R == 0 && rgb.G == 0 && rgb.B == 0 {
		t.Errorf("expected a non-black RGB value for indexed red")
	}
}

func TestStyleDefaultIsIdentity(t *testing.T) {
	s := DefaultStyle()
	if !s.IsDefault() {
		t.Errorf("DefaultStyle() should report IsDefault() == true")
	}
	s2 := s.WithModifier(Bold)
	if s2.IsDefault() {
		t.Errorf("styled copy should not be default")
	}
	if s.IsDefault() == false {
		// original must be untouched (value semantics)
	}
	if s.Modifiers.Has(Bold) {
		t.Errorf("original style mutated by WithModifier")
	}
}

func TestModifierHas(t *testing.T) {
	m := Bold | Underline
	if !m.Has(Bold) || !m.Has(Underline) {
		t.Errorf("expected Bold and Underline set in %v", m)
	}
	if m.Has(Italic) {
		t.Errorf("did not expect Italic set in %v", m)
	}
}

func TestStyleEquality(t *testing.T) {
	a := Style{Foreground: RGB(1, 2, 3), Modifiers: Bold}
	b := Style{Foreground: RGB(1, 2, 3), Modifiers: Bold}
	c := Style{Foreground: RGB(1, 2, 4), Modifiers: Bold}
	if a != b {
		t.Errorf("identical styles should compare equal")
	}
	if a == c {
		t.Errorf("styles differing in color should not compare equal")
	}
}
