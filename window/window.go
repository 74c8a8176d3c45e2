// Package window implements independent rectangular windows with
// z-order, focus, border compositing, and event routing. Compositing
// reuses buffer.Merge's transparent-space rule, so a window's blank
// interior never punches holes into what's beneath it.
package window

import (
	"github.com/fox0430/celina-core/buffer"
	"github.com/fox0430/celina-core/color"
	"github.com/fox0430/celina-core/geometry"
	"github.com/fox0430/celina-core/input"
)

// ID uniquely identifies a window within a Manager. Ids are monotonically
// issued and never reused.
type ID uint64

// State is the visibility state of a window.
type State int

const (
	StateNormal State = iota
	StateMinimized
	StateHidden
)

// BorderChars is the glyph set drawn at the four corners and along the
// two edges.
type BorderChars struct {
	TopLeft, TopRight, BottomLeft, BottomRight rune
	Horizontal, Vertical                       rune
}

// Border describes whether a window draws a frame, which edges are
// enabled, and the style the frame is drawn in. A corner is only drawn
// when both of its adjacent edges are enabled.
type Border struct {
	Top, Bottom, Left, Right bool
	Chars                    BorderChars
	Style                    color.Style
}

// DefaultBorder returns a four-sided border using the single-line
// box-drawing glyph set (┌─┐ │ │ └─┘).
func DefaultBorder() Border {
	return Border{
		Top: true, Bottom: true, Left: true, Right: true,
		Chars: BorderChars{
			TopLeft: '┌', TopRight: '┐', BottomLeft: '└', BottomRight: '┘',
			Horizontal: '─', Vertical: '│',
		},
		Style: color.DefaultStyle(),
	}
}

// KeyHandler receives a Key event routed to the focused window; its
// return reports whether the event was consumed.
type KeyHandler func(ev input.Event) bool

// MouseHandler receives a Mouse event already translated to the window's
// content-local coordinates.
type MouseHandler func(ev input.Event) bool

// ResizeHandler is invoked with the new terminal size on every window
// that has one registered.
type ResizeHandler func(size geometry.Size)

// Window is an owned rectangle with a title, optional border, independent
// content buffer, and visibility/focus state.
type Window struct {
	id ID

	Area  geometry.Rect
	Title string

	Border *Border

	Content *buffer.Buffer

	State   State
	Modal   bool
	Focused bool // focus request when added; the Manager then keeps it equal to the live focus

	OnKey    KeyHandler
	OnMouse  MouseHandler
	OnResize ResizeHandler
}

// New allocates a window over area with a content buffer sized to its
// interior. Pass a nil border for a borderless window.
func New(area geometry.Rect, title string, border *Border) *Window {
	w := &Window{
		Area:   area,
		Title:  title,
		Border: border,
		State:  StateNormal,
	}
	w.Content = buffer.New(w.ContentArea())
	return w
}

// ID returns the window's id, zero until it has been added to a Manager.
func (w *Window) ID() ID { return w.id }

// ContentArea is the interior of Area after the border inset, in
// absolute (not window-local) coordinates.
func (w *Window) ContentArea() geometry.Rect {
	r := w.Area
	if w.Border == nil {
		return r
	}
	top, bottom, left, right := 0, 0, 0, 0
	if w.Border.Top {
		top = 1
	}
	if w.Border.Bottom {
		bottom = 1
	}
	if w.Border.Left {
		left = 1
	}
	if w.Border.Right {
		right = 1
	}
	x := r.X + left
	y := r.Y + top
	width := r.Width - left - right
	height := r.Height - top - bottom
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return geometry.Rect{X: x, Y: y, Width: width, Height: height}
}

// Visible reports whether the window participates in rendering and event
// routing: only State == StateNormal does.
func (w *Window) Visible() bool { return w.State == StateNormal }

// Resize mutates the window's rect and reallocates its content buffer to
// match the new interior, preserving overlapping content.
func (w *Window) Resize(size geometry.Size) {
	w.Area.Width = size.Width
	w.Area.Height = size.Height
	w.Content.Resize(w.ContentArea())
}

// Move mutates the window's position and translates its content buffer's
// area to match, preserving every cell (a plain translation has no
// intersection to lose, unlike Resize's area-shape change). Buffer.Resize
// isn't used here: its preserve-by-absolute-coordinate rule is for a
// buffer staying anchored while its shape changes, not for one sliding to
// a new origin.
func (w *Window) Move(pos geometry.Position) {
	oldContentArea := w.Content.Area()
	w.Area.X = pos.X
	w.Area.Y = pos.Y
	newContentArea := w.ContentArea()

	translated := buffer.New(newContentArea)
	for y := 0; y < oldContentArea.Height; y++ {
		for x := 0; x < oldContentArea.Width; x++ {
			cell := w.Content.Get(oldContentArea.X+x, oldContentArea.Y+y)
			translated.Set(newContentArea.X+x, newContentArea.Y+y, cell)
		}
	}
	w.Content = translated
}
