// Package ansi holds the outbound terminal wire protocol shared by the
// renderer (cell/cursor/SGR output) and the terminal driver (mode
// toggles, title, alt screen). Every sequence is hand-assembled with
// strconv, not fmt.Sprintf, so emitting a cell never allocates.
package ansi

import (
	"strconv"

	"github.com/fox0430/celina-core/color"
	"github.com/fox0430/celina-core/cursor"
)

const esc = "\x1b"

// Fixed sequences that never need runtime parameters.
const (
	ShowCursor            = esc + "[?25h"
	HideCursor            = esc + "[?25l"
	ClearScreen           = esc + "[2J"
	ClearLine             = esc + "[2K"
	SGRReset              = esc + "[0m"
	EnterAltScreen        = esc + "[?1049h"
	ExitAltScreen         = esc + "[?1049l"
	SaveCursor            = esc + "7"
	RestoreCursor         = esc + "8"
	EnableMouse           = esc + "[?1000h" + esc + "[?1006h"
	DisableMouse          = esc + "[?1006l" + esc + "[?1000l"
	EnableBracketedPaste  = esc + "[?2004h"
	DisableBracketedPaste = esc + "[?2004l"
	EnableFocusEvents     = esc + "[?1004h"
	DisableFocusEvents    = esc + "[?1004l"
	BeginSyncUpdate       = esc + "[?2026h"
	EndSyncUpdate         = esc + "[?2026l"
)

// AppendCursorPosition appends "ESC [ {row}; {col} H" (1-based).
func AppendCursorPosition(buf []byte, row, col int) []byte {
	buf = append(buf, esc[0], '[')
	buf = strconv.AppendInt(buf, int64(row), 10)
	buf = append(buf, ';')
	buf = strconv.AppendInt(buf, int64(col), 10)
	buf = append(buf, 'H')
	return buf
}

// AppendRelativeMove appends "ESC [ {n} {dir}" where dir is one of
// 'A' (up), 'B' (down), 'C' (right), 'D' (left).
func AppendRelativeMove(buf []byte, n int, dir byte) []byte {
	buf = append(buf, esc[0], '[')
	buf = strconv.AppendInt(buf, int64(n), 10)
	buf = append(buf, dir)
	return buf
}

// AppendDECSCUSR appends "ESC [ {n} SP q" selecting the given cursor style.
func AppendDECSCUSR(buf []byte, style cursor.Style) []byte {
	buf = append(buf, esc[0], '[')
	buf = strconv.AppendInt(buf, int64(style), 10)
	buf = append(buf, ' ', 'q')
	return buf
}

// AppendHyperlinkOpen appends "ESC ] 8;; {uri} ESC \".
func AppendHyperlinkOpen(buf []byte, uri string) []byte {
	buf = append(buf, esc[0], ']', '8', ';', ';')
	buf = append(buf, uri...)
	buf = append(buf, esc[0], '\\')
	return buf
}

// AppendHyperlinkClose appends "ESC ] 8;; ESC \".
func AppendHyperlinkClose(buf []byte) []byte {
	buf = append(buf, esc[0], ']', '8', ';', ';', esc[0], '\\')
	return buf
}

// AppendWindowTitle appends "ESC ] 0; {title} BEL".
func AppendWindowTitle(buf []byte, title string) []byte {
	buf = append(buf, esc[0], ']', '0', ';')
	buf = append(buf, title...)
	buf = append(buf, 0x07)
	return buf
}

// AppendIconName appends "ESC ] 1; {name} BEL".
func AppendIconName(buf []byte, name string) []byte {
	buf = append(buf, esc[0], ']', '1', ';')
	buf = append(buf, name...)
	buf = append(buf, 0x07)
	return buf
}

var modifierCodes = []struct {
	flag color.Modifier
	code int
}{
	{color.Bold, 1},
	{color.Dim, 2},
	{color.Italic, 3},
	{color.Underline, 4},
	{color.SlowBlink, 5},
	{color.RapidBlink, 6},
	{color.Reverse, 7},
	{color.Hidden, 8},
	{color.Strikethrough, 9},
}

// AppendSGR appends the full SGR sequence selecting style st, always
// leading with a reset (0) so the result is never order-dependent on
// whatever SGR state the terminal was previously in.
func AppendSGR(buf []byte, st color.Style) []byte {
	buf = append(buf, esc[0], '[')
	buf = append(buf, '0')

	for _, m := range modifierCodes {
		if st.Modifiers.Has(m.flag) {
			buf = append(buf, ';')
			buf = strconv.AppendInt(buf, int64(m.code), 10)
		}
	}

	buf = appendSGRColor(buf, st.Foreground, false)
	buf = appendSGRColor(buf, st.Background, true)

	buf = append(buf, 'm')
	return buf
}

// appendSGRColor appends the ";..." parameters selecting fg/bg color c.
// Default colors append nothing (the leading "0" already reset to default).
func appendSGRColor(buf []byte, c color.Color, background bool) []byte {
	switch c.Kind {
	case color.KindDefault:
		return buf
	case color.KindIndexed:
		base := 30
		if background {
			base = 40
		}
		n := int(c.Index)
		if n >= 8 {
			// Bright variants: 90+n (fg) / 100+n (bg).
			base += 60
			n -= 8
		}
		buf = append(buf, ';')
		buf = strconv.AppendInt(buf, int64(base+n), 10)
		return buf
	case color.KindPalette:
		code := 38
		if background {
			code = 48
		}
		buf = append(buf, ';')
		buf = strconv.AppendInt(buf, int64(code), 10)
		buf = append(buf, ';', '5', ';')
		buf = strconv.AppendInt(buf, int64(c.Index), 10)
		return buf
	case color.KindRGB:
		code := 38
		if background {
			code = 48
		}
		buf = append(buf, ';')
		buf = strconv.AppendInt(buf, int64(code), 10)
		buf = append(buf, ';', '2', ';')
		buf = strconv.AppendInt(buf, int64(c.R), 10)
		buf = append(buf, ';')
		buf = strconv.AppendInt(buf, int64(c.G), 10)
		buf = append(buf, ';')
		buf = strconv.AppendInt(buf, int64(c.B), 10)
		return buf
	}
	return buf
}
