// Package input is the Input Decoder: a byte-stream to
// Event state machine covering keys, mouse, bracketed paste, focus, and
// resize notification.
package input

import "github.com/fox0430/celina-core/geometry"

// Kind tags which variant of Event is populated — an enum-tagged struct
// rather than an interface + type switch.
type Kind int

const (
	KindKey Kind = iota
	KindMouse
	KindPaste
	KindResize
	KindFocusIn
	KindFocusOut
	KindQuit
	KindUnknown
)

// KeyCode enumerates the non-character keys the decoder can produce.
type KeyCode int

const (
	KeyChar KeyCode = iota
	KeyEnter
	KeyTab
	KeyBackTab
	KeySpace
	KeyBackspace
	KeyEscape
	KeyArrowUp
	KeyArrowDown
	KeyArrowLeft
	KeyArrowRight
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyInsert
	KeyDelete
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
)

// Modifiers is a bitset of Ctrl/Shift/Alt.
type Modifiers uint8

const (
	ModCtrl Modifiers = 1 << iota
	ModShift
	ModAlt
)

// Has reports whether flag is set in the modifier bitset.
func (m Modifiers) Has(flag Modifiers) bool { return m&flag != 0 }

// MouseButton enumerates the buttons and wheel directions.
type MouseButton int

const (
	MouseNone MouseButton = iota
	MouseLeft
	MouseMiddle
	MouseRight
	MouseWheelUp
	MouseWheelDown
)

// MouseEventKind distinguishes press/release/move/drag for a Mouse event.
type MouseEventKind int

const (
	MousePress MouseEventKind = iota
	MouseRelease
	MouseMove
	MouseDrag
)

// Event is a tagged union over every input the decoder can produce.
// Only the fields relevant to Kind are meaningful.
type Event struct {
	Kind Kind

	// Key fields (Kind == KindKey).
	Key       KeyCode
	Char      rune
	Modifiers Modifiers

	// Mouse fields (Kind == KindMouse).
	MouseKind MouseEventKind
	Button    MouseButton
	Pos       geometry.Position

	// Paste fields (Kind == KindPaste).
	Text string
}

func keyEvent(code KeyCode, ch rune, mods Modifiers) Event {
	return Event{Kind: KindKey, Key: code, Char: ch, Modifiers: mods}
}
