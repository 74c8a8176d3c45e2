// Package terminal is the Terminal Driver: raw-mode
// transition, alternate-screen and feature-mode toggles, size query, and
// suspend/resume, exposed as a scoped setup -> body -> cleanup resource.
package terminal

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"golang.org/x/term"

	"github.com/fox0430/celina-core/ansi"
	"github.com/fox0430/celina-core/geometry"
)

// Error is returned for fatal terminal-driver failures: raw-mode setup or
// a write failure during setup. When Open returns an Error, no mode has
// been changed, so there is nothing for the caller to clean up.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string { return fmt.Sprintf("terminal: %s: %v", e.Op, e.Err) }
func (e *Error) Unwrap() error { return e.Err }

// features records which optional modes are currently enabled, so Suspend
// can disable them and Resume can restore exactly what was on.
type features struct {
	altScreen    bool
	mouse        bool
	bracketPaste bool
	focusEvents  bool
	syncOutput   bool
}

// Terminal is the scoped resource wrapping stdin/stdout raw-mode state and
// the currently-enabled feature set.
type Terminal struct {
	in  *os.File
	out *os.File

	raw       *rawState
	wantRaw   bool
	feat      features
	size      geometry.Size
	suspended bool
}

// Open enables raw mode and returns a Terminal. Open is the one operation
// whose failure is fatal; the caller must still not
// leak resources, so a failed Open never leaves raw mode half-applied.
func Open(in, out *os.File) (*Terminal, error) {
	return open(in, out, true)
}

// OpenCooked acquires the terminal without the raw-mode transition, for
// applications that opt out of raw mode in their config. Feature toggles
// and size queries work as usual; Suspend/Resume skip the termios dance.
func OpenCooked(in, out *os.File) (*Terminal, error) {
	return open(in, out, false)
}

func open(in, out *os.File, rawMode bool) (*Terminal, error) {
	if !isatty.IsTerminal(in.Fd()) && !isatty.IsCygwinTerminal(in.Fd()) {
		return nil, &Error{Op: "open", Err: fmt.Errorf("stdin is not a terminal")}
	}

	t := &Terminal{in: in, out: out, wantRaw: rawMode}
	if rawMode {
		raw, err := enableRawMode(in)
		if err != nil {
			return nil, &Error{Op: "enable_raw_mode", Err: err}
		}
		t.raw = raw
	}
	t.size = t.queredSize()
	return t, nil
}

// Close restores cooked mode. It is best-effort: errors are swallowed so
// that cleanup never fails to run to completion.
func (t *Terminal) Close() {
	if t.feat.mouse {
		t.out.WriteString(ansi.DisableMouse)
	}
	if t.feat.bracketPaste {
		t.out.WriteString(ansi.DisableBracketedPaste)
	}
	if t.feat.focusEvents {
		t.out.WriteString(ansi.DisableFocusEvents)
	}
	if t.feat.syncOutput {
		t.out.WriteString(ansi.EndSyncUpdate)
	}
	if t.feat.altScreen {
		t.out.WriteString(ansi.ExitAltScreen)
	}
	t.out.WriteString(ansi.ShowCursor)
	_ = disableRawMode(t.in, t.raw)
}

// EnableAlternateScreen / DisableAlternateScreen toggle ESC[?1049h/l.
func (t *Terminal) EnableAlternateScreen() {
	t.out.WriteString(ansi.EnterAltScreen)
	t.feat.altScreen = true
}

func (t *Terminal) DisableAlternateScreen() {
	t.out.WriteString(ansi.ExitAltScreen)
	t.feat.altScreen = false
}

// EnableMouse / DisableMouse toggle SGR mouse mode + button tracking.
func (t *Terminal) EnableMouse() {
	t.out.WriteString(ansi.EnableMouse)
	t.feat.mouse = true
}

func (t *Terminal) DisableMouse() {
	t.out.WriteString(ansi.DisableMouse)
	t.feat.mouse = false
}

// EnableBracketedPaste / DisableBracketedPaste toggle ?2004h/l.
func (t *Terminal) EnableBracketedPaste() {
	t.out.WriteString(ansi.EnableBracketedPaste)
	t.feat.bracketPaste = true
}

func (t *Terminal) DisableBracketedPaste() {
	t.out.WriteString(ansi.DisableBracketedPaste)
	t.feat.bracketPaste = false
}

// EnableFocusEvents / DisableFocusEvents toggle ?1004h/l.
func (t *Terminal) EnableFocusEvents() {
	t.out.WriteString(ansi.EnableFocusEvents)
	t.feat.focusEvents = true
}

func (t *Terminal) DisableFocusEvents() {
	t.out.WriteString(ansi.DisableFocusEvents)
	t.feat.focusEvents = false
}

// EnableSyncOutput / DisableSyncOutput toggle DEC mode 2026 for the whole
// session, letting the renderer skip its own per-frame BSU/ESU wrap.
func (t *Terminal) EnableSyncOutput() {
	t.out.WriteString(ansi.BeginSyncUpdate)
	t.feat.syncOutput = true
}

func (t *Terminal) DisableSyncOutput() {
	t.out.WriteString(ansi.EndSyncUpdate)
	t.feat.syncOutput = false
}

// SyncOutputEnabled reports whether sync output is currently on for the
// whole session (for wiring into render.Renderer.SetSyncOutputExternal).
func (t *Terminal) SyncOutputEnabled() bool { return t.feat.syncOutput }

// SetWindowTitle emits OSC 0 (icon name + window title).
func (t *Terminal) SetWindowTitle(title string) {
	var buf []byte
	buf = ansi.AppendWindowTitle(buf, title)
	t.out.Write(buf)
}

// SetIconName emits OSC 1 (icon name only).
func (t *Terminal) SetIconName(name string) {
	var buf []byte
	buf = ansi.AppendIconName(buf, name)
	t.out.Write(buf)
}

// GetSize returns the cached terminal size.
func (t *Terminal) GetSize() geometry.Size { return t.size }

// UpdateSize re-queries the terminal and refreshes the cached size,
// returning the new value.
func (t *Terminal) UpdateSize() geometry.Size {
	t.size = t.queredSize()
	return t.size
}

func (t *Terminal) queredSize() geometry.Size {
	if w, h, err := term.GetSize(int(t.out.Fd())); err == nil && w > 0 && h > 0 {
		return geometry.Size{Width: w, Height: h}
	}
	if w, h, ok := ioctlWinsize(int(t.out.Fd())); ok {
		return geometry.Size{Width: w, Height: h}
	}
	return geometry.Size{Width: 80, Height: 24}
}

// Suspend saves the current feature flags, disables every optional mode,
// and returns to cooked mode — for shelling out to an external program.
// Resume must be called to return to the prior state.
func (t *Terminal) Suspend() error {
	if t.suspended {
		return nil
	}
	saved := t.feat
	t.Close()
	t.suspended = true
	t.feat = saved
	return nil
}

// Resume restores raw mode and every feature flag that was on before
// Suspend. The caller must force a full redraw afterwards; the terminal's
// contents are unknown after a shell-out.
func (t *Terminal) Resume() error {
	if !t.suspended {
		return nil
	}
	if t.wantRaw {
		raw, err := enableRawMode(t.in)
		if err != nil {
			return &Error{Op: "enable_raw_mode", Err: err}
		}
		t.raw = raw
	}
	t.suspended = false

	if t.feat.altScreen {
		t.out.WriteString(ansi.EnterAltScreen)
	}
	if t.feat.mouse {
		t.out.WriteString(ansi.EnableMouse)
	}
	if t.feat.bracketPaste {
		t.out.WriteString(ansi.EnableBracketedPaste)
	}
	if t.feat.focusEvents {
		t.out.WriteString(ansi.EnableFocusEvents)
	}
	if t.feat.syncOutput {
		t.out.WriteString(ansi.BeginSyncUpdate)
	}
	t.UpdateSize()
	return nil
}
