package window

import (
	"github.com/fox0430/celina-core/buffer"
	"github.com/fox0430/celina-core/geometry"
	"github.com/fox0430/celina-core/input"
)

// Manager owns the z-ordered window list and the single focused window.
// windows[len-1] is always the topmost.
type Manager struct {
	windows  []*Window
	focused  ID
	hasFocus bool
	nextID   ID
}

// NewManager returns an empty Manager. Ids start at 1 so the zero ID can
// mean "no window".
func NewManager() *Manager {
	return &Manager{nextID: 1}
}

// AddWindow assigns w a fresh id, appends it as the new topmost window,
// and auto-focuses it if the list was empty or w.Focused was requested.
func (m *Manager) AddWindow(w *Window) ID {
	w.id = m.nextID
	m.nextID++
	m.windows = append(m.windows, w)

	if len(m.windows) == 1 || w.Focused {
		m.setFocus(w.id)
	}
	return w.id
}

// RemoveWindow removes id from the list if present. If it was focused,
// focus moves to the new topmost visible window, or to none.
func (m *Manager) RemoveWindow(id ID) bool {
	idx := m.indexOf(id)
	if idx < 0 {
		return false
	}
	wasFocused := m.hasFocus && m.focused == id

	m.windows = append(m.windows[:idx], m.windows[idx+1:]...)

	if wasFocused {
		m.hasFocus = false
		for i := len(m.windows) - 1; i >= 0; i-- {
			if m.windows[i].Visible() {
				m.setFocus(m.windows[i].id)
				break
			}
		}
	}
	return true
}

// FocusWindow focuses id and brings it to the front if id exists and is
// visible, clearing focus on every other window. Otherwise focus and order
// are left unchanged. Returns whether the focus change succeeded.
func (m *Manager) FocusWindow(id ID) bool {
	idx := m.indexOf(id)
	if idx < 0 || !m.windows[idx].Visible() {
		return false
	}
	w := m.windows[idx]
	m.windows = append(m.windows[:idx], m.windows[idx+1:]...)
	m.windows = append(m.windows, w)
	m.setFocus(id)
	return true
}

// SendToBack moves id to index 0, the bottom of the z-order. Returns whether id was found.
func (m *Manager) SendToBack(id ID) bool {
	idx := m.indexOf(id)
	if idx < 0 {
		return false
	}
	w := m.windows[idx]
	m.windows = append(m.windows[:idx], m.windows[idx+1:]...)
	m.windows = append([]*Window{w}, m.windows...)
	return true
}

// MoveWindow mutates the window's rect; out-of-bounds positions are the
// caller's responsibility.
func (m *Manager) MoveWindow(id ID, pos geometry.Position) bool {
	w := m.Window(id)
	if w == nil {
		return false
	}
	w.Move(pos)
	return true
}

// ResizeWindow mutates the window's rect; out-of-bounds sizes are the
// caller's responsibility.
func (m *Manager) ResizeWindow(id ID, size geometry.Size) bool {
	w := m.Window(id)
	if w == nil {
		return false
	}
	w.Resize(size)
	return true
}

// FindAt returns the topmost visible window whose area contains pos.
func (m *Manager) FindAt(pos geometry.Position) *Window {
	for i := len(m.windows) - 1; i >= 0; i-- {
		w := m.windows[i]
		if w.Visible() && w.Area.Contains(pos) {
			return w
		}
	}
	return nil
}

// Window returns the window with the given id, or nil.
func (m *Manager) Window(id ID) *Window {
	if idx := m.indexOf(id); idx >= 0 {
		return m.windows[idx]
	}
	return nil
}

// Windows returns the z-ordered window list, bottom to top. The slice is
// shared with the Manager's internal state and must not be mutated.
func (m *Manager) Windows() []*Window { return m.windows }

// FocusedWindow returns the currently focused window, or nil.
func (m *Manager) FocusedWindow() *Window {
	if !m.hasFocus {
		return nil
	}
	return m.Window(m.focused)
}

func (m *Manager) indexOf(id ID) int {
	for i, w := range m.windows {
		if w.id == id {
			return i
		}
	}
	return -1
}

func (m *Manager) setFocus(id ID) {
	for _, w := range m.windows {
		w.Focused = false
	}
	if w := m.Window(id); w != nil {
		w.Focused = true
	}
	m.focused = id
	m.hasFocus = true
}

// DispatchKey routes a Key event to the focused window's handler, if
// any, and reports whether it was consumed. A modal focused window still
// has nowhere else for an unconsumed event to go, so unconsumed events
// are swallowed either way.
func (m *Manager) DispatchKey(ev input.Event) bool {
	w := m.FocusedWindow()
	if w == nil || !w.Visible() || w.OnKey == nil {
		return false
	}
	return w.OnKey(ev)
}

// DispatchMouse routes a Mouse event to the topmost visible window under
// the pointer, translating its position to that window's content-local
// coordinates before invoking the handler.
func (m *Manager) DispatchMouse(ev input.Event) bool {
	w := m.FindAt(ev.Pos)
	if w == nil || w.OnMouse == nil {
		return false
	}
	contentOrigin := w.ContentArea().TopLeft()
	local := ev
	local.Pos = geometry.Position{X: ev.Pos.X - contentOrigin.X, Y: ev.Pos.Y - contentOrigin.Y}
	return w.OnMouse(local)
}

// BroadcastResize invokes every visible window's resize handler with the
// new terminal size.
func (m *Manager) BroadcastResize(size geometry.Size) {
	for _, w := range m.windows {
		if w.Visible() && w.OnResize != nil {
			w.OnResize(size)
		}
	}
}

// Render composites every visible window onto back, bottom to top:
// border and title drawn into a per-window scratch buffer, the window's
// content merged on top of that, then the whole scratch buffer merged
// onto back at the window's origin.
func (m *Manager) Render(back *buffer.Buffer) {
	for _, w := range m.windows {
		if !w.Visible() {
			continue
		}
		scratch := buffer.New(geometry.Rect{Width: w.Area.Width, Height: w.Area.Height})
		if w.Border != nil {
			drawBorder(scratch, *w.Border, w.Title)
		}
		contentOffset := geometry.Position{
			X: w.ContentArea().X - w.Area.X,
			Y: w.ContentArea().Y - w.Area.Y,
		}
		scratch.Merge(w.Content, contentOffset)
		back.Merge(scratch, w.Area.TopLeft())
	}
}
