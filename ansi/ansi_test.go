package ansi

import (
	"testing"

	"github.com/fox0430/celina-core/color"
	"github.com/fox0430/celina-core/cursor"
)

func TestAppendCursorPosition(t *testing.T) {
	got := string(AppendCursorPosition(nil, 1, 1))
	want := "\x1b[1;1H"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestAppendSGRPlainModifier(t *testing.T) {
	st := color.Style{Modifiers: color.Bold}
	got := string(AppendSGR(nil, st))
	want := "\x1b[0;1m"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestAppendSGRIndexedBright(t *testing.T) {
	st := color.Style{Foreground: color.Indexed(9)} // bright red
	got := string(AppendSGR(nil, st))
	want := "\x1b[0;91m"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestAppendSGRPalette(t *testing.T) {
	st := color.Style{Background: color.Palette(200)}
	got := string(AppendSGR(nil, st))
	want := "\x1b[0;48;5;200m"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestAppendSGRRGB(t *testing.T) {
	st := color.Style{Foreground: color.RGB(1, 2, 3)}
	got := string(AppendSGR(nil, st))
	want := "\x1b[0;38;2;1;2;3m"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestAppendDECSCUSR(t *testing.T) {
	got := string(AppendDECSCUSR(nil, cursor.StyleSteadyBar))
	want := "\x1b[6 q"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestAppendHyperlink(t *testing.T) {
	got := string(AppendHyperlinkOpen(nil, "https://example.com"))
	want := "\x1b]8;;https://example.com\x1b\\"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	gotClose := string(AppendHyperlinkClose(nil))
	wantClose := "\x1b]8;;\x1b\\"
	if gotClose != wantClose {
		t.Errorf("got %q, want %q", gotClose, wantClose)
	}
}
