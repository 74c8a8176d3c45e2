package input

import (
	"time"
	"unicode/utf8"

	"github.com/fox0430/celina-core/geometry"
)

// escTimeout is the "escape-vs-CSI" disambiguation window.
const escTimeout = 20 * time.Millisecond

// csiTimeout bounds how long a partially-read CSI/SS3/mouse sequence waits
// for its next byte before being abandoned.
const csiTimeout = 50 * time.Millisecond

// sgrMouseMaxBytes bounds an SGR mouse sequence's parameter bytes so a
// malformed stream can't spin the decoder forever.
const sgrMouseMaxBytes = 20

// source is anything the decoder can pull timed bytes from: a real
// terminal fd's non-blocking poll loop in production, or a canned byte
// slice in tests.
type source interface {
	next(timeout time.Duration) (b byte, ok bool)
}

// Decoder turns a byte source into Events. It is not itself concurrent —
// Run wraps it in a single reader goroutine that owns all decoder state.
type Decoder struct {
	pasteEnabled bool

	inPaste    bool
	pasteBuf   []byte
	pasteMatch int // bytes of the 6-byte terminator matched so far
}

// New returns a Decoder with bracketed paste collection disabled; the
// application enables it to match whatever it told the terminal driver.
func New() *Decoder {
	return &Decoder{}
}

// SetBracketedPasteEnabled toggles whether ESC[200~ starts paste
// collection. When disabled, the sequence is decoded as an ordinary CSI
// numeric (KeyEscape via classifyNumericTilde's default case).
func (d *Decoder) SetBracketedPasteEnabled(enabled bool) {
	d.pasteEnabled = enabled
}

// decodeOne blocks (up to the source's own timeouts) for at most one
// logical event. It returns ok=false when the source has nothing more to
// offer right now (EOF or a full read timeout with no bytes pending).
func (d *Decoder) decodeOne(src source) (Event, bool) {
	b, ok := src.next(0)
	if !ok {
		return Event{}, false
	}
	return d.decodeByte(b, src), true
}

func (d *Decoder) decodeByte(b byte, src source) Event {
	if d.inPaste {
		return d.collectPasteByte(b, src)
	}

	switch {
	case b == 0x03:
		return Event{Kind: KindQuit}
	case b == 0x1b:
		return d.decodeEscape(src)
	case b == 0x09:
		return keyEvent(KeyTab, 0, 0)
	case b == 0x0a || b == 0x0d:
		return keyEvent(KeyEnter, 0, 0)
	case b == 0x20:
		return keyEvent(KeySpace, ' ', 0)
	case b == 0x08 || b == 0x7f:
		return keyEvent(KeyBackspace, 0, 0)
	case b == 0x00:
		return keyEvent(KeyChar, '@', ModCtrl)
	case b >= 0x1c && b <= 0x1f:
		return keyEvent(KeyChar, ctrlDigitRune(b), ModCtrl)
	case b >= 0x01 && b <= 0x1a:
		return keyEvent(KeyChar, rune(b+0x60), ModCtrl)
	default:
		return d.decodeUTF8(b, src)
	}
}

// ctrlDigitRune maps 0x1C..0x1F to the conventional Ctrl+\\ ] ^ _ letters.
func ctrlDigitRune(b byte) rune {
	switch b {
	case 0x1c:
		return '\\'
	case 0x1d:
		return ']'
	case 0x1e:
		return '^'
	case 0x1f:
		return '_'
	default:
		return '?'
	}
}

func (d *Decoder) decodeEscape(src source) Event {
	next, ok := src.next(escTimeout)
	if !ok {
		return keyEvent(KeyEscape, 0, 0)
	}
	switch next {
	case '[':
		return d.decodeCSI(src)
	case 'O':
		return d.decodeSS3(src)
	default:
		return keyEvent(KeyChar, rune(next), ModAlt)
	}
}

func (d *Decoder) decodeSS3(src source) Event {
	b, ok := src.next(csiTimeout)
	if !ok {
		return keyEvent(KeyEscape, 0, 0)
	}
	switch b {
	case 'A':
		return keyEvent(KeyArrowUp, 0, 0)
	case 'B':
		return keyEvent(KeyArrowDown, 0, 0)
	case 'C':
		return keyEvent(KeyArrowRight, 0, 0)
	case 'D':
		return keyEvent(KeyArrowLeft, 0, 0)
	case 'H':
		return keyEvent(KeyHome, 0, 0)
	case 'F':
		return keyEvent(KeyEnd, 0, 0)
	case 'P':
		return keyEvent(KeyF1, 0, 0)
	case 'Q':
		return keyEvent(KeyF2, 0, 0)
	case 'R':
		return keyEvent(KeyF3, 0, 0)
	case 'S':
		return keyEvent(KeyF4, 0, 0)
	default:
		return keyEvent(KeyEscape, 0, 0)
	}
}

// isFinalByte reports whether b terminates a CSI parameter sequence.
func isFinalByte(b byte) bool { return b >= 0x40 && b <= 0x7e }

func (d *Decoder) decodeCSI(src source) Event {
	var params []byte
	for {
		b, ok := src.next(csiTimeout)
		if !ok {
			return keyEvent(KeyEscape, 0, 0)
		}
		if isFinalByte(b) {
			return d.dispatchCSI(params, b, src)
		}
		params = append(params, b)
		if len(params) > sgrMouseMaxBytes {
			return keyEvent(KeyEscape, 0, 0)
		}
	}
}

func (d *Decoder) dispatchCSI(params []byte, final byte, src source) Event {
	p := string(params)

	switch final {
	case 'A':
		return arrowWithModifier(KeyArrowUp, p)
	case 'B':
		return arrowWithModifier(KeyArrowDown, p)
	case 'C':
		return arrowWithModifier(KeyArrowRight, p)
	case 'D':
		return arrowWithModifier(KeyArrowLeft, p)
	case 'H':
		return arrowWithModifier(KeyHome, p)
	case 'F':
		return arrowWithModifier(KeyEnd, p)
	case 'Z':
		return keyEvent(KeyBackTab, 0, 0)
	case 'I':
		return Event{Kind: KindFocusIn}
	case 'O':
		return Event{Kind: KindFocusOut}
	case 'M':
		if len(p) > 0 && p[0] == '<' {
			return decodeSGRMouse(p[1:], true)
		}
		return d.decodeX10Mouse(src)
	case 'm':
		if len(p) > 0 && p[0] == '<' {
			return decodeSGRMouse(p[1:], false)
		}
		return keyEvent(KeyEscape, 0, 0)
	case '~':
		if d.pasteEnabled && p == "200" {
			d.inPaste = true
			d.pasteBuf = d.pasteBuf[:0]
			d.pasteMatch = 0
			return d.collectPasteStart(src)
		}
		return classifyNumericTilde(p)
	default:
		return keyEvent(KeyEscape, 0, 0)
	}
}

// arrowWithModifier handles both the bare form ("A") and the modified
// form ("1;2A") of cursor-key and Home/End CSI sequences.
func arrowWithModifier(code KeyCode, p string) Event {
	mods := parseTrailingModifier(p)
	return keyEvent(code, 0, mods)
}

// parseTrailingModifier decodes the ";m" suffix shared by both the arrow
// and numeric-tilde CSI forms.
func parseTrailingModifier(p string) Modifiers {
	idx := -1
	for i := 0; i < len(p); i++ {
		if p[i] == ';' {
			idx = i
		}
	}
	if idx < 0 || idx+1 >= len(p) {
		return 0
	}
	switch p[idx+1:] {
	case "2":
		return ModShift
	case "3":
		return ModAlt
	case "4":
		return ModShift | ModAlt
	case "5":
		return ModCtrl
	case "6":
		return ModCtrl | ModShift
	case "7":
		return ModCtrl | ModAlt
	case "8":
		return ModCtrl | ModShift | ModAlt
	default:
		return 0
	}
}

// classifyNumericTilde maps the digit / two-digit tilde-terminated CSI
// parameters onto their keys, stripping any trailing modifier.
func classifyNumericTilde(p string) Event {
	key := p
	mods := Modifiers(0)
	for i := 0; i < len(p); i++ {
		if p[i] == ';' {
			key = p[:i]
			mods = parseTrailingModifier(p)
			break
		}
	}

	switch key {
	case "1":
		return keyEvent(KeyHome, 0, mods)
	case "2":
		return keyEvent(KeyInsert, 0, mods)
	case "3":
		return keyEvent(KeyDelete, 0, mods)
	case "4":
		return keyEvent(KeyEnd, 0, mods)
	case "5":
		return keyEvent(KeyPageUp, 0, mods)
	case "6":
		return keyEvent(KeyPageDown, 0, mods)
	case "11":
		return keyEvent(KeyF1, 0, mods)
	case "12":
		return keyEvent(KeyF2, 0, mods)
	case "13":
		return keyEvent(KeyF3, 0, mods)
	case "14":
		return keyEvent(KeyF4, 0, mods)
	case "15":
		return keyEvent(KeyF5, 0, mods)
	case "17":
		return keyEvent(KeyF6, 0, mods)
	case "18":
		return keyEvent(KeyF7, 0, mods)
	case "19":
		return keyEvent(KeyF8, 0, mods)
	case "20":
		return keyEvent(KeyF9, 0, mods)
	case "21":
		return keyEvent(KeyF10, 0, mods)
	case "23":
		return keyEvent(KeyF11, 0, mods)
	case "24":
		return keyEvent(KeyF12, 0, mods)
	default:
		return keyEvent(KeyEscape, 0, 0)
	}
}

// decodeX10Mouse reads the 3 raw bytes following "ESC [ M". X10 has no
// distinct release byte: a button field of 3 in the low bits means
// "buttons released"; anything else is a press.
func (d *Decoder) decodeX10Mouse(src source) Event {
	cb, ok1 := src.next(csiTimeout)
	cx, ok2 := src.next(csiTimeout)
	cy, ok3 := src.next(csiTimeout)
	if !ok1 || !ok2 || !ok3 {
		return Event{Kind: KindUnknown}
	}
	cbVal := int(cb) - 32
	press := cbVal&0x03 != 0x03
	button, kind, mods := decodeMouseButtonByte(cbVal, press)
	pos := geometry.Position{X: int(cx) - 32, Y: int(cy) - 32}
	return Event{Kind: KindMouse, MouseKind: kind, Button: button, Modifiers: mods, Pos: pos}
}

// decodeSGRMouse decodes the "b;x;y" body of an SGR mouse sequence; press
// is true for the 'M' terminator, false for 'm' (release).
func decodeSGRMouse(body string, press bool) Event {
	bStr, xStr, yStr, ok := splitThree(body)
	if !ok {
		return Event{Kind: KindUnknown}
	}
	cb := atoiOr(bStr, -1)
	x := atoiOr(xStr, 0)
	y := atoiOr(yStr, 0)
	if cb < 0 {
		return Event{Kind: KindUnknown}
	}
	button, kind, mods := decodeMouseButtonByte(cb, press)
	return Event{Kind: KindMouse, MouseKind: kind, Button: button, Modifiers: mods, Pos: geometry.Position{X: x - 1, Y: y - 1}}
}

// decodeMouseButtonByte is the bit decoding shared by the X10 and SGR
// formats: bits 0-1 select the button, bit 6 flags wheel, bit 5 flags
// drag, bits 2-4 encode modifiers.
func decodeMouseButtonByte(cb int, press bool) (MouseButton, MouseEventKind, Modifiers) {
	mods := Modifiers(0)
	if cb&0x04 != 0 {
		mods |= ModShift
	}
	if cb&0x08 != 0 {
		mods |= ModAlt
	}
	if cb&0x10 != 0 {
		mods |= ModCtrl
	}

	if cb&0x40 != 0 {
		if cb&0x01 != 0 {
			return MouseWheelDown, MousePress, mods
		}
		return MouseWheelUp, MousePress, mods
	}

	var button MouseButton
	switch cb & 0x03 {
	case 0:
		button = MouseLeft
	case 1:
		button = MouseMiddle
	case 2:
		button = MouseRight
	case 3:
		button = MouseNone
	}

	if cb&0x20 != 0 {
		return button, MouseDrag, mods
	}
	if !press {
		return button, MouseRelease, mods
	}
	return button, MousePress, mods
}

func splitThree(s string) (a, b, c string, ok bool) {
	i := indexByte(s, ';')
	if i < 0 {
		return "", "", "", false
	}
	rest := s[i+1:]
	j := indexByte(rest, ';')
	if j < 0 {
		return "", "", "", false
	}
	return s[:i], rest[:j], rest[j+1:], true
}

func indexByte(s string, c byte) int {
	for i := 0; i < len(s); i++ {
		if s[i] == c {
			return i
		}
	}
	return -1
}

func atoiOr(s string, fallback int) int {
	if s == "" {
		return fallback
	}
	n := 0
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return fallback
		}
		n = n*10 + int(s[i]-'0')
	}
	return n
}

// pasteTerminator is the 6-byte sequence ending bracketed paste.
var pasteTerminator = []byte("\x1b[201~")

// collectPasteStart begins reading the pasted payload immediately after
// ESC[200~ was recognized: there is no pending byte yet, so it reads the
// first one itself.
func (d *Decoder) collectPasteStart(src source) Event {
	next, ok := src.next(csiTimeout)
	if !ok {
		d.inPaste = false
		return Event{Kind: KindPaste, Text: string(d.pasteBuf)}
	}
	return d.collectPasteByte(next, src)
}

// collectPasteByte folds one already-read byte into the paste-terminator
// match, then keeps reading until the 6-byte terminator completes or the
// source runs dry. Tracking how many trailing bytes match the terminator
// so far means literal occurrences of a prefix of "ESC[201~" inside the
// pasted text don't truncate it early.
func (d *Decoder) collectPasteByte(b byte, src source) Event {
	next := b
	for {
		if next == pasteTerminator[d.pasteMatch] {
			d.pasteMatch++
			if d.pasteMatch == len(pasteTerminator) {
				d.inPaste = false
				text := string(d.pasteBuf)
				d.pasteBuf = nil
				d.pasteMatch = 0
				return Event{Kind: KindPaste, Text: text}
			}
		} else {
			// Mismatch: flush any bytes provisionally held back as a
			// partial terminator match, then restart matching from next.
			if d.pasteMatch > 0 {
				d.pasteBuf = append(d.pasteBuf, pasteTerminator[:d.pasteMatch]...)
				d.pasteMatch = 0
			}
			if next == pasteTerminator[0] {
				d.pasteMatch = 1
			} else {
				d.pasteBuf = append(d.pasteBuf, next)
			}
		}

		var ok bool
		next, ok = src.next(csiTimeout)
		if !ok {
			d.inPaste = false
			if d.pasteMatch > 0 {
				d.pasteBuf = append(d.pasteBuf, pasteTerminator[:d.pasteMatch]...)
				d.pasteMatch = 0
			}
			text := string(d.pasteBuf)
			d.pasteBuf = nil
			return Event{Kind: KindPaste, Text: text}
		}
	}
}

// decodeUTF8 reassembles a multi-byte grapheme given its leading byte.
// A truncated or malformed sequence emits a KeyChar whose Char is the lead
// byte's value; the continuation bytes read before the break are not part
// of the event.
func (d *Decoder) decodeUTF8(lead byte, src source) Event {
	n := utf8CodepointLen(lead)
	if n <= 1 {
		return keyEvent(KeyChar, rune(lead), 0)
	}

	buf := make([]byte, 1, 4)
	buf[0] = lead
	for i := 1; i < n; i++ {
		next, ok := src.next(csiTimeout)
		if !ok || next&0xc0 != 0x80 {
			break
		}
		buf = append(buf, next)
	}

	r, size := utf8.DecodeRune(buf)
	if r == utf8.RuneError && size <= 1 {
		return keyEvent(KeyChar, rune(buf[0]), 0)
	}
	return keyEvent(KeyChar, r, 0)
}

// utf8CodepointLen reports the total byte length a leading byte implies
// (1/2/3/4), defaulting to 1 for continuation or invalid lead bytes.
func utf8CodepointLen(lead byte) int {
	switch {
	case lead&0x80 == 0x00:
		return 1
	case lead&0xe0 == 0xc0:
		return 2
	case lead&0xf0 == 0xe0:
		return 3
	case lead&0xf8 == 0xf0:
		return 4
	default:
		return 1
	}
}
