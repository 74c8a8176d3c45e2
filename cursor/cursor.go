// Package cursor implements the logical cursor position/visibility/style
// tracked independently of the cell grid, and lazily emitted by the
// renderer only when it changes.
package cursor

import "github.com/fox0430/celina-core/geometry"

// Style selects the DECSCUSR cursor shape, n in 0..6:
//
//	0/1 blinking block, 2 steady block, 3 blinking underline,
//	4 steady underline, 5 blinking bar, 6 steady bar.
type Style int

const (
	StyleDefault Style = iota
	StyleBlinkingBlock
	StyleSteadyBlock
	StyleBlinkingUnderline
	StyleSteadyUnderline
	StyleBlinkingBar
	StyleSteadyBar
)

// Manager holds the application's logical cursor state. The renderer reads
// it once per frame via Snapshot and records what it actually emitted via
// RecordEmitted so that DECSCUSR is only sent when the requested style
// changes.
type Manager struct {
	pos     geometry.Position
	visible bool
	style   Style

	lastEmittedStyle Style
	everEmitted      bool
}

// NewManager returns a Manager with the cursor visible at the origin in
// the default style.
func NewManager() *Manager {
	return &Manager{visible: true, style: StyleDefault}
}

// MoveTo sets the logical cursor position.
func (m *Manager) MoveTo(pos geometry.Position) { m.pos = pos }

// Position returns the logical cursor position.
func (m *Manager) Position() geometry.Position { return m.pos }

// SetVisible toggles cursor visibility.
func (m *Manager) SetVisible(visible bool) { m.visible = visible }

// Visible reports whether the cursor is currently visible.
func (m *Manager) Visible() bool { return m.visible }

// SetStyle sets the requested cursor style.
func (m *Manager) SetStyle(s Style) { m.style = s }

// Style returns the requested cursor style.
func (m *Manager) Style() Style { return m.style }

// Snapshot is the cursor state as of the start of a render pass.
type Snapshot struct {
	Pos          geometry.Position
	Visible      bool
	Style        Style
	StyleChanged bool // true iff Style differs from the last RecordEmitted call
}

// Snapshot captures the current logical state, computing whether the style
// differs from what was last actually emitted.
func (m *Manager) Snapshot() Snapshot {
	changed := !m.everEmitted || m.style != m.lastEmittedStyle
	return Snapshot{Pos: m.pos, Visible: m.visible, Style: m.style, StyleChanged: changed}
}

// RecordEmitted updates the manager's notion of "what style was last sent
// to the terminal", so the next Snapshot's StyleChanged reflects reality.
func (m *Manager) RecordEmitted(s Style) {
	m.lastEmittedStyle = s
	m.everEmitted = true
}
