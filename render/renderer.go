// Package render implements the differential renderer: diffing a back
// buffer against the terminal's last-known (front) state and emitting only
// the ANSI bytes needed to transition one to the other.
package render

import (
	"io"

	"github.com/fox0430/celina-core/ansi"
	"github.com/fox0430/celina-core/buffer"
	"github.com/fox0430/celina-core/color"
	"github.com/fox0430/celina-core/cursor"
)

// Renderer owns the front buffer — what the terminal last received — and
// drives the per-frame output byte stream. The back buffer it diffs
// against each call is supplied by the caller (the tick loop owns it).
type Renderer struct {
	front *buffer.Buffer

	// syncOutputExternal is true when DEC 2026 synchronized output was
	// already enabled for the whole session at terminal setup, so the
	// per-frame BSU/ESU wrap would be redundant.
	syncOutputExternal bool
}

// New creates a Renderer with no remembered front-buffer state. The first
// call to Render always behaves as a forced render, regardless of the force
// argument, since there is nothing yet to diff against.
func New() *Renderer {
	return &Renderer{}
}

// NewWithFront creates a Renderer seeded with an explicit front buffer,
// primarily for tests that want to control the starting terminal state.
func NewWithFront(front *buffer.Buffer) *Renderer {
	return &Renderer{front: front}
}

// SetSyncOutputExternal records whether DEC 2026 sync mode is already
// enabled for the session, so per-frame wrapping is skipped.
func (r *Renderer) SetSyncOutputExternal(enabled bool) {
	r.syncOutputExternal = enabled
}

// Render diffs back against the renderer's remembered front-buffer state
// (or, if force is true, against a synthetic all-empty buffer, plus a
// leading clear-screen), emits the resulting ANSI byte stream to w
// including cursor compositing from cm, and then adopts back as the new
// front state.
func (r *Renderer) Render(w io.Writer, back *buffer.Buffer, cm *cursor.Manager, force bool) error {
	var front *buffer.Buffer
	if force || r.front == nil || r.front.Area() != back.Area() {
		front = buffer.New(back.Area())
		force = true
	} else {
		front = r.front
	}

	var buf []byte
	if force {
		buf = append(buf, ansi.ClearScreen...)
	}

	buf = diffRender(buf, front, back)
	buf = appendCursorCompositing(buf, cm)

	if !r.syncOutputExternal {
		final := make([]byte, 0, len(buf)+len(ansi.BeginSyncUpdate)+len(ansi.EndSyncUpdate))
		final = append(final, ansi.BeginSyncUpdate...)
		final = append(final, buf...)
		final = append(final, ansi.EndSyncUpdate...)
		buf = final
	}

	if _, err := w.Write(buf); err != nil {
		return err
	}

	r.front = back.Clone()
	r.front.ClearDirty()
	return nil
}

// diffRender appends the cell-by-cell diff of front -> back to buf,
// applying the wide-cell tie-break rules.
func diffRender(buf []byte, front, back *buffer.Buffer) []byte {
	area := back.Area()

	curX, curY := -1, -1
	lastStyle := color.DefaultStyle()
	wroteAny := false
	lastHyperlink := ""
	hyperlinkOpen := false

	for y := area.Y; y < area.Bottom(); y++ {
		for x := area.X; x < area.Right(); x++ {
			backCell := back.Get(x, y)
			frontCell := front.Get(x, y)
			changed := backCell != frontCell

			// A wide->narrow transition at the cell to our left forces us
			// to redraw regardless of whether we ourselves changed,
			// because the display width at that position shrank.
			forced := false
			if !changed && x > area.X {
				leftFront := front.Get(x-1, y)
				leftBack := back.Get(x-1, y)
				if leftFront.Width == 2 && leftBack.Width != 2 {
					forced = true
				}
			}
			if !changed && !forced {
				continue
			}

			if backCell.Width == 0 {
				// Continuation cell: never drawn on its own. If the
				// preceding wide cell changed, it already emitted a
				// two-column-wide glyph covering this position; if it
				// didn't change, there is nothing to redraw here either.
				continue
			}

			if x != curX || y != curY {
				buf = ansi.AppendCursorPosition(buf, y+1, x+1)
				curX, curY = x, y
			}

			if backCell.Style != lastStyle {
				buf = ansi.AppendSGR(buf, backCell.Style)
				lastStyle = backCell.Style
			}

			if backCell.Hyperlink != lastHyperlink {
				if hyperlinkOpen {
					buf = ansi.AppendHyperlinkClose(buf)
					hyperlinkOpen = false
				}
				if backCell.Hyperlink != "" {
					buf = ansi.AppendHyperlinkOpen(buf, backCell.Hyperlink)
					hyperlinkOpen = true
				}
				lastHyperlink = backCell.Hyperlink
			}

			sym := backCell.Symbol
			if sym == "" {
				sym = " "
			}
			buf = append(buf, sym...)

			width := backCell.Width
			if width <= 0 {
				width = 1
			}
			curX += width
			wroteAny = true
		}
	}

	if hyperlinkOpen {
		buf = ansi.AppendHyperlinkClose(buf)
	}
	if wroteAny {
		buf = append(buf, ansi.SGRReset...)
	}
	return buf
}

// appendCursorCompositing emits the final cursor positioning for the
// frame: absolute position + show-cursor (with a DECSCUSR style change if
// needed) when visible, or hide-cursor otherwise.
func appendCursorCompositing(buf []byte, cm *cursor.Manager) []byte {
	if cm == nil {
		return buf
	}
	snap := cm.Snapshot()
	if !snap.Visible {
		buf = append(buf, ansi.HideCursor...)
		return buf
	}

	buf = ansi.AppendCursorPosition(buf, snap.Pos.Y+1, snap.Pos.X+1)
	buf = append(buf, ansi.ShowCursor...)
	if snap.StyleChanged {
		buf = ansi.AppendDECSCUSR(buf, snap.Style)
	}
	cm.RecordEmitted(snap.Style)
	return buf
}
