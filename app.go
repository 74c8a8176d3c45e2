// Package celina wires the leaf engines (geometry/color/buffer/cursor/
// render/terminal/input/tick/window) into the application-facing API: an
// AppConfig builder, an event handler and a render handler, and a
// Run/Quit/Suspend/Resume lifecycle.
package celina

import (
	"context"
	"fmt"
	"os"

	"github.com/fox0430/celina-core/geometry"
	"github.com/fox0430/celina-core/input"
	"github.com/fox0430/celina-core/terminal"
	"github.com/fox0430/celina-core/tick"
	"github.com/fox0430/celina-core/window"
)

// AppConfig configures the terminal features an App enables at startup.
// A plain struct; parsing flags or config files into it is the caller's
// business.
type AppConfig struct {
	Title           string
	AlternateScreen bool
	MouseCapture    bool
	RawMode         bool
	WindowMode      bool
	BracketedPaste  bool
	FocusEvents     bool
	TargetFPS       int
}

// DefaultConfig returns the conventional defaults: raw mode and the
// alternate screen on, mouse/paste/focus off, 60 FPS, window mode off.
func DefaultConfig() AppConfig {
	return AppConfig{
		RawMode:         true,
		AlternateScreen: true,
		TargetFPS:       60,
	}
}

// App is the application shell: it owns the terminal driver, the input
// decoder, the tick loop, and (when WindowMode is set) the window
// manager, and drives them through one Run call until quit.
type App struct {
	cfg AppConfig

	term    *terminal.Terminal
	decoder *input.Decoder
	loop    *tick.Loop
	windows *window.Manager

	onEvent  tick.EventHandler
	onRender tick.RenderHandler

	stopResize func()
	readerDone chan struct{}

	cancel context.CancelFunc
}

// NewApp constructs an App from cfg. Terminal and loop resources are not
// acquired until Run is called.
func NewApp(cfg AppConfig) *App {
	a := &App{cfg: cfg}
	if cfg.WindowMode {
		a.windows = window.NewManager()
	}
	return a
}

// OnEvent registers the event handler.
func (a *App) OnEvent(h tick.EventHandler) *App {
	a.onEvent = h
	return a
}

// OnRender registers the render handler.
func (a *App) OnRender(h tick.RenderHandler) *App {
	a.onRender = h
	return a
}

// AddWindow adds w to the window manager and returns its assigned id.
// Only meaningful when cfg.WindowMode is set.
func (a *App) AddWindow(w *window.Window) window.ID {
	return a.windows.AddWindow(w)
}

// RemoveWindow removes a window by id.
func (a *App) RemoveWindow(id window.ID) bool {
	return a.windows.RemoveWindow(id)
}

// FocusWindow focuses and raises a window by id.
func (a *App) FocusWindow(id window.ID) bool {
	return a.windows.FocusWindow(id)
}

// GetFocusedWindow returns the currently focused window, or nil.
func (a *App) GetFocusedWindow() *window.Window {
	return a.windows.FocusedWindow()
}

// GetWindows returns the window manager's z-ordered window list.
func (a *App) GetWindows() []*window.Window {
	return a.windows.Windows()
}

// Run acquires the terminal, enables the configured features, and drives
// the tick loop until ctx is canceled, the user handler requests a stop,
// or Quit is called. Once Open has succeeded, cleanup runs on every exit
// path, including when the tick loop returns an error; a failed Open
// returns at once and leaves the terminal unchanged.
func (a *App) Run(ctx context.Context) error {
	open := terminal.Open
	if !a.cfg.RawMode {
		open = terminal.OpenCooked
	}
	term, err := open(os.Stdin, os.Stdout)
	if err != nil {
		return err
	}
	a.term = term
	defer term.Close()

	if a.cfg.AlternateScreen {
		term.EnableAlternateScreen()
		defer term.DisableAlternateScreen()
	}
	if a.cfg.MouseCapture {
		term.EnableMouse()
		defer term.DisableMouse()
	}
	if a.cfg.BracketedPaste {
		term.EnableBracketedPaste()
		defer term.DisableBracketedPaste()
	}
	if a.cfg.FocusEvents {
		term.EnableFocusEvents()
		defer term.DisableFocusEvents()
	}
	if a.cfg.Title != "" {
		term.SetWindowTitle(a.cfg.Title)
	}

	a.stopResize = tick.WatchResize()
	defer a.stopResize()

	runCtx, cancel := context.WithCancel(ctx)
	a.cancel = cancel
	defer cancel()

	a.readerDone = make(chan struct{})
	defer close(a.readerDone)

	a.decoder = input.New()
	a.decoder.SetBracketedPasteEnabled(a.cfg.BracketedPaste)
	rawCh := input.StartReader(int(os.Stdin.Fd()), a.readerDone)
	events := a.decoder.Run(rawCh, a.readerDone)

	a.loop = tick.NewLoop(term.GetSize(), a.cfg.TargetFPS, os.Stdout, term)
	a.loop.Windows = a.windows
	a.loop.OnEvent = a.routeEvent
	a.loop.OnRender = a.onRender

	return a.loop.Run(runCtx, events)
}

// routeEvent intercepts Quit events (Ctrl-C) before handing everything
// else to the user's handler, returning false (which stops the tick loop)
// as soon as either requests a stop.
func (a *App) routeEvent(ev input.Event) bool {
	if ev.Kind == input.KindQuit {
		return false
	}
	if a.onEvent == nil {
		return true
	}
	return a.onEvent(ev)
}

// Quit requests shutdown. The current tick completes (no partial render
// is committed) and Run returns once the loop observes the canceled
// context.
func (a *App) Quit() {
	if a.cancel != nil {
		a.cancel()
	}
}

// Suspend transitions to cooked mode for a shell-out, e.g. launching an
// external editor.
func (a *App) Suspend() error {
	if a.term == nil {
		return fmt.Errorf("celina: Suspend called before Run")
	}
	return a.term.Suspend()
}

// Resume transitions back to raw mode and the previously enabled feature
// set, and forces the next render to be a full redraw.
func (a *App) Resume() error {
	if a.term == nil {
		return fmt.Errorf("celina: Resume called before Run")
	}
	if err := a.term.Resume(); err != nil {
		return err
	}
	a.loop.Resize(a.term.GetSize())
	return nil
}

// Size returns the terminal's last-known size.
func (a *App) Size() geometry.Size {
	if a.term == nil {
		return geometry.Size{}
	}
	return a.term.GetSize()
}
