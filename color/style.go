package color

// Modifier is a single SGR modifier bit.
type Modifier uint16

const (
	Bold Modifier = 1 << iota
	Dim
	Italic
	Underline
	SlowBlink
	RapidBlink
	Reverse
	Hidden
	Strikethrough
)

// Has reports whether m is set in the modifier bitset.
func (m Modifier) Has(flag Modifier) bool { return m&flag != 0 }

// Style is a foreground color, a background color, and a set of modifier
// bits. Styles compare by value: two Styles with identical
// fields are equal, which is what the renderer relies on to decide whether
// an SGR sequence needs to be re-emitted.
type Style struct {
	Foreground Color
	Background Color
	Modifiers  Modifier
}

// DefaultStyle is the identity element: default colors, no modifiers.
func DefaultStyle() Style {
	return Style{Foreground: Default, Background: Default}
}

// IsDefault reports whether s equals DefaultStyle().
func (s Style) IsDefault() bool {
	return s == DefaultStyle()
}

// WithModifier returns a copy of s with flag added to its modifier set.
func (s Style) WithModifier(flag Modifier) Style {
	s.Modifiers |= flag
	return s
}

// WithForeground returns a copy of s with the given foreground color.
func (s Style) WithForeground(c Color) Style {
	s.Foreground = c
	return s
}

// WithBackground returns a copy of s with the given background color.
func (s Style) WithBackground(c Color) Style {
	s.Background = c
	return s
}
