package input

import (
	"testing"
	"time"
)

// sliceSource is a deterministic source for tests: each call immediately
// returns the next byte, or !ok once exhausted — equivalent to every
// pending timeout expiring instantly, which is exactly what "no more
// bytes queued" looks like from the decoder's point of view.
type sliceSource struct {
	data []byte
	i    int
}

func (s *sliceSource) next(_ time.Duration) (byte, bool) {
	if s.i >= len(s.data) {
		return 0, false
	}
	b := s.data[s.i]
	s.i++
	return b, true
}

func decodeAll(t *testing.T, d *Decoder, data []byte) []Event {
	t.Helper()
	src := &sliceSource{data: data}
	var events []Event
	for {
		ev, ok := d.decodeOne(src)
		if !ok {
			return events
		}
		events = append(events, ev)
	}
}

func TestQuitOnCtrlC(t *testing.T) {
	events := decodeAll(t, New(), []byte{0x03})
	if len(events) != 1 || events[0].Kind != KindQuit {
		t.Fatalf("got %+v, want single Quit event", events)
	}
}

func TestCtrlLetter(t *testing.T) {
	events := decodeAll(t, New(), []byte{0x01}) // Ctrl+A
	if len(events) != 1 || events[0].Key != KeyChar || events[0].Char != 'a' || !events[0].Modifiers.Has(ModCtrl) {
		t.Fatalf("got %+v, want Ctrl+a", events)
	}
}

func TestTabEnterSpaceBackspace(t *testing.T) {
	events := decodeAll(t, New(), []byte{0x09, 0x0d, 0x20, 0x7f})
	want := []KeyCode{KeyTab, KeyEnter, KeySpace, KeyBackspace}
	if len(events) != len(want) {
		t.Fatalf("got %d events, want %d", len(events), len(want))
	}
	for i, k := range want {
		if events[i].Key != k {
			t.Errorf("event %d: got key %v, want %v", i, events[i].Key, k)
		}
	}
}

func TestBareEscapeOnTimeout(t *testing.T) {
	events := decodeAll(t, New(), []byte{0x1b})
	if len(events) != 1 || events[0].Key != KeyEscape {
		t.Fatalf("got %+v, want Escape", events)
	}
}

func TestArrowKeysCSI(t *testing.T) {
	events := decodeAll(t, New(), []byte("\x1b[A\x1b[B\x1b[C\x1b[D"))
	want := []KeyCode{KeyArrowUp, KeyArrowDown, KeyArrowRight, KeyArrowLeft}
	if len(events) != len(want) {
		t.Fatalf("got %d events, want %d: %+v", len(events), len(want), events)
	}
	for i, k := range want {
		if events[i].Key != k {
			t.Errorf("event %d: got %v, want %v", i, events[i].Key, k)
		}
	}
}

func TestShiftArrowModifier(t *testing.T) {
	events := decodeAll(t, New(), []byte("\x1b[1;2A"))
	if len(events) != 1 || events[0].Key != KeyArrowUp || !events[0].Modifiers.Has(ModShift) {
		t.Fatalf("got %+v, want Shift+Up", events)
	}
}

func TestSS3FunctionKeys(t *testing.T) {
	events := decodeAll(t, New(), []byte("\x1bOP\x1bOQ"))
	if len(events) != 2 || events[0].Key != KeyF1 || events[1].Key != KeyF2 {
		t.Fatalf("got %+v, want F1, F2", events)
	}
}

func TestNumericTildeHomeDelete(t *testing.T) {
	events := decodeAll(t, New(), []byte("\x1b[1~\x1b[3~"))
	if len(events) != 2 || events[0].Key != KeyHome || events[1].Key != KeyDelete {
		t.Fatalf("got %+v, want Home, Delete", events)
	}
}

func TestBackTabAndFocusEvents(t *testing.T) {
	events := decodeAll(t, New(), []byte("\x1b[Z\x1b[I\x1b[O"))
	if len(events) != 3 {
		t.Fatalf("got %d events, want 3: %+v", len(events), events)
	}
	if events[0].Key != KeyBackTab {
		t.Errorf("expected BackTab, got %+v", events[0])
	}
	if events[1].Kind != KindFocusIn {
		t.Errorf("expected FocusIn, got %+v", events[1])
	}
	if events[2].Kind != KindFocusOut {
		t.Errorf("expected FocusOut, got %+v", events[2])
	}
}

func TestSGRMousePressAndRelease(t *testing.T) {
	events := decodeAll(t, New(), []byte("\x1b[<0;10;20M\x1b[<0;10;20m"))
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2: %+v", len(events), events)
	}
	if events[0].Kind != KindMouse || events[0].MouseKind != MousePress || events[0].Button != MouseLeft {
		t.Errorf("expected left press, got %+v", events[0])
	}
	if events[0].Pos.X != 9 || events[0].Pos.Y != 19 {
		t.Errorf("expected 0-based (9,19), got %+v", events[0].Pos)
	}
	if events[1].Kind != KindMouse || events[1].MouseKind != MouseRelease {
		t.Errorf("expected release, got %+v", events[1])
	}
}

func TestSGRMouseWheel(t *testing.T) {
	events := decodeAll(t, New(), []byte("\x1b[<64;5;5M"))
	if len(events) != 1 || events[0].Button != MouseWheelUp {
		t.Fatalf("got %+v, want WheelUp", events)
	}
}

func TestX10Mouse(t *testing.T) {
	// ESC [ M <button+32> <x+32> <y+32>
	data := []byte{0x1b, '[', 'M', byte(0 + 32), byte(5 + 32), byte(5 + 32)}
	events := decodeAll(t, New(), data)
	if len(events) != 1 || events[0].Kind != KindMouse || events[0].Button != MouseLeft {
		t.Fatalf("got %+v, want left press", events)
	}
	if events[0].Pos.X != 5 || events[0].Pos.Y != 5 {
		t.Errorf("expected (5,5), got %+v", events[0].Pos)
	}
}

func TestBracketedPasteWithEmbeddedPartialTerminator(t *testing.T) {
	d := New()
	d.SetBracketedPasteEnabled(true)

	// Payload contains a literal "ESC[20" that is NOT the real terminator
	// (missing the final "1~"), followed by the real terminator.
	payload := "hello \x1b[20 world"
	data := []byte("\x1b[200~" + payload + "\x1b[201~")
	events := decodeAll(t, d, data)

	if len(events) != 1 || events[0].Kind != KindPaste {
		t.Fatalf("got %+v, want single Paste event", events)
	}
	if events[0].Text != payload {
		t.Errorf("got paste text %q, want %q", events[0].Text, payload)
	}
}

func TestUTF8Reassembly(t *testing.T) {
	events := decodeAll(t, New(), []byte("中"))
	if len(events) != 1 || events[0].Key != KeyChar || events[0].Char != '中' {
		t.Fatalf("got %+v, want single rune 中", events)
	}
}

func TestCtrlSymbolKeys(t *testing.T) {
	events := decodeAll(t, New(), []byte{0x1c, 0x1d, 0x1e, 0x1f})
	want := []rune{'\\', ']', '^', '_'}
	if len(events) != len(want) {
		t.Fatalf("got %d events, want %d", len(events), len(want))
	}
	for i, r := range want {
		if events[i].Char != r || !events[i].Modifiers.Has(ModCtrl) {
			t.Errorf("event %d: got %+v, want Ctrl+%q", i, events[i], r)
		}
	}
}
