package tick

import (
	"context"
	"fmt"
	"io"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/fox0430/celina-core/buffer"
	"github.com/fox0430/celina-core/cursor"
	"github.com/fox0430/celina-core/geometry"
	"github.com/fox0430/celina-core/input"
	"github.com/fox0430/celina-core/render"
	"github.com/fox0430/celina-core/window"
)

// MaxEventsPerTick bounds how many events are drained from the decoder
// per iteration before the render gate is checked again.
const MaxEventsPerTick = 5

// EventHandler receives every decoded event after window routing has had
// a chance to consume it. Returning false requests that the loop stop.
type EventHandler func(ev input.Event) bool

// RenderHandler paints the application's own content into back, before
// the window manager composites any windows on top of it.
type RenderHandler func(back *buffer.Buffer)

// ResizeSource abstracts the piece of the terminal driver the tick loop
// needs on a resize: re-querying the OS for the new size. Satisfied by
// *terminal.Terminal.
type ResizeSource interface {
	UpdateSize() geometry.Size
}

// Loop is the Tick Loop & FPS Governor: it owns the
// governor, the back buffer, the renderer, the cursor manager, and
// (optionally) a window manager, and drives one tick procedure per
// iteration against an already-decoded event stream.
type Loop struct {
	Governor *Governor
	Renderer *render.Renderer
	Cursor   *cursor.Manager
	Windows  *window.Manager // nil when not running in window mode

	Terminal ResizeSource
	Out      io.Writer

	OnEvent  EventHandler
	OnRender RenderHandler

	back            *buffer.Buffer
	lastResizeCount uint64
	forceNextRender bool
}

// NewLoop builds a Loop over the given initial terminal size. Callers
// must set OnEvent/OnRender (and Windows, if running windowed) before
// calling Run.
func NewLoop(size geometry.Size, targetFPS int, out io.Writer, term ResizeSource) *Loop {
	return &Loop{
		Governor:        NewGovernor(targetFPS),
		Renderer:        render.New(),
		Cursor:          cursor.NewManager(),
		Terminal:        term,
		Out:             out,
		back:            buffer.New(geometry.Rect{Width: size.Width, Height: size.Height}),
		lastResizeCount: ResizeCount(),
		forceNextRender: true,
	}
}

// Resize replaces the back buffer with one sized to size, preserving
// intersecting content, and marks the next render as forced.
func (l *Loop) Resize(size geometry.Size) {
	l.back.Resize(geometry.Rect{Width: size.Width, Height: size.Height})
	l.forceNextRender = true
}

// errQuit is runLoop's internal signal that OnEvent requested a stop; Run
// translates it back to a nil error since it is not a failure.
var errQuit = quitError{}

type quitError struct{}

func (quitError) Error() string { return "tick: quit requested" }

// HandlerError reports a panic that escaped a user-supplied handler
// (OnEvent, OnRender, or a window handler). The loop converts it to a stop
// and Run returns it after the caller's cleanup defers have run.
type HandlerError struct {
	Recovered any
}

func (e *HandlerError) Error() string {
	return fmt.Sprintf("tick: handler panicked: %v", e.Recovered)
}

// Run drives the tick procedure against
// events, until ctx is canceled, events closes, or OnEvent returns false.
// It runs the loop body inside a single-member errgroup so a render-gate
// error propagates through the same context-first shutdown path a
// cooperative scheduler would use to cancel ctx itself.
func (l *Loop) Run(ctx context.Context, events <-chan input.Event) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = &HandlerError{Recovered: r}
			}
		}()
		err = l.runLoop(gctx, events)
		if err == errQuit {
			err = nil
		}
		return err
	})

	if err := g.Wait(); err != nil && err != context.Canceled {
		return err
	}
	return nil
}

func (l *Loop) runLoop(ctx context.Context, events <-chan input.Event) error {
	for {
		if stop := l.checkResize(); stop {
			return errQuit
		}

		timeout := l.Governor.PollTimeout()
		timer := time.NewTimer(timeout)

		drained := 0
	drain:
		for drained < MaxEventsPerTick {
			select {
			case <-ctx.Done():
				timer.Stop()
				return nil
			case ev, ok := <-events:
				if !ok {
					timer.Stop()
					return nil
				}
				drained++
				if stop := l.dispatch(ev); stop {
					timer.Stop()
					return errQuit
				}
			case <-timer.C:
				break drain
			}
		}
		timer.Stop()

		if l.Governor.ShouldRender() {
			if err := l.renderFrame(); err != nil {
				return err
			}
		}
	}
}

// dispatch routes ev to the window manager first (if windowed), then
// unconditionally to the user handler, and reports whether the loop
// should stop. The window handler's consumed return value is for the
// window's own bookkeeping; it does not gate whether the
// application-level handler also sees the event.
func (l *Loop) dispatch(ev input.Event) (stop bool) {
	if l.Windows != nil {
		switch ev.Kind {
		case input.KindKey:
			l.Windows.DispatchKey(ev)
		case input.KindMouse:
			l.Windows.DispatchMouse(ev)
		}
	}
	return !l.callOnEvent(ev)
}

func (l *Loop) callOnEvent(ev input.Event) bool {
	if l.OnEvent == nil {
		return true
	}
	return l.OnEvent(ev)
}

// checkResize compares the shared resize counter against the last value
// this loop observed; a change resizes the back buffer once regardless
// of how many SIGWINCH signals arrived in between. Reports whether the user handler
// requested a stop while handling the Resize event.
func (l *Loop) checkResize() (stop bool) {
	count := ResizeCount()
	if count == l.lastResizeCount {
		return false
	}
	l.lastResizeCount = count

	size := l.Terminal.UpdateSize()
	l.Resize(size)

	if l.Windows != nil {
		l.Windows.BroadcastResize(size)
	}
	return !l.callOnEvent(input.Event{Kind: input.KindResize})
}

// renderFrame is the render gate: paint the user's
// content, composite windows on top, diff-render to the terminal, and
// advance the governor's frame pacing.
func (l *Loop) renderFrame() error {
	l.Governor.StartFrame()

	if l.OnRender != nil {
		l.OnRender(l.back)
	}
	if l.Windows != nil {
		l.Windows.Render(l.back)
	}

	force := l.forceNextRender
	l.forceNextRender = false

	if err := l.Renderer.Render(l.Out, l.back, l.Cursor, force); err != nil {
		return err
	}

	l.Governor.EndFrame()
	return nil
}

// Back returns the loop's back buffer, for callers (e.g. App) that need
// to know its current area without reaching into render internals.
func (l *Loop) Back() *buffer.Buffer { return l.back }
