package celina

import (
	"testing"

	"github.com/fox0430/celina-core/buffer"
	"github.com/fox0430/celina-core/geometry"
	"github.com/fox0430/celina-core/input"
	"github.com/fox0430/celina-core/window"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if !cfg.RawMode || !cfg.AlternateScreen {
		t.Errorf("expected raw mode and alternate screen on by default")
	}
	if cfg.TargetFPS != 60 {
		t.Errorf("expected default target FPS 60, got %d", cfg.TargetFPS)
	}
	if cfg.WindowMode || cfg.MouseCapture || cfg.BracketedPaste || cfg.FocusEvents {
		t.Errorf("expected every optional feature off by default")
	}
}

func TestNewAppWindowModeAllocatesManager(t *testing.T) {
	cfg := DefaultConfig()
	cfg.WindowMode = true
	app := NewApp(cfg)

	w := window.New(geometry.Rect{Width: 10, Height: 5}, "t", nil)
	id := app.AddWindow(w)

	if app.GetFocusedWindow() == nil || app.GetFocusedWindow().ID() != id {
		t.Errorf("expected the first added window to be auto-focused")
	}
	if len(app.GetWindows()) != 1 {
		t.Errorf("expected one window, got %d", len(app.GetWindows()))
	}
}

func TestOnEventAndOnRenderReturnAppForChaining(t *testing.T) {
	app := NewApp(DefaultConfig())
	got := app.OnEvent(func(input.Event) bool { return true }).
		OnRender(func(*buffer.Buffer) {})
	if got != app {
		t.Errorf("expected OnEvent/OnRender to return the same *App for chaining")
	}
}

func TestQuitBeforeRunIsANoOp(t *testing.T) {
	app := NewApp(DefaultConfig())
	app.Quit() // must not panic when called before Run
}

func TestSuspendResumeBeforeRunReturnError(t *testing.T) {
	app := NewApp(DefaultConfig())
	if err := app.Suspend(); err == nil {
		t.Errorf("expected Suspend before Run to return an error")
	}
	if err := app.Resume(); err == nil {
		t.Errorf("expected Resume before Run to return an error")
	}
}

func TestSizeBeforeRunIsZero(t *testing.T) {
	app := NewApp(DefaultConfig())
	if app.Size() != (geometry.Size{}) {
		t.Errorf("expected zero size before Run, got %+v", app.Size())
	}
}
