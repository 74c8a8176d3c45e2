// Package tick implements the Tick Loop & FPS Governor: the
// event/render scheduler that blocks on input with a dynamically computed
// timeout, drains a bounded batch of events per iteration, and renders at
// most once per frame.
package tick

import (
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
)

// resizeCounter is the only process-wide mutable state in the module: a
// SIGWINCH handler increments it with an atomic add and returns
// immediately. The increment is the only thing that happens on the
// signal path, so multiple tick loops in the same process each observe
// every resize exactly once, instead of racing to resize a buffer from
// the signal goroutine.
var resizeCounter atomic.Uint64

// WatchResize installs a SIGWINCH handler that increments the shared
// resize counter and returns a stop function that removes it. The
// forwarding goroutine only touches the counter — no buffers, no locks —
// so it stays signal-safe in spirit even though Go delivers signals to a
// regular goroutine rather than a true signal handler.
func WatchResize() (stop func()) {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGWINCH)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-ch:
				resizeCounter.Add(1)
			case <-done:
				return
			}
		}
	}()
	return func() {
		signal.Stop(ch)
		close(done)
	}
}

// ResizeCount returns the current value of the shared resize counter, for
// a tick loop to compare against the value it last observed.
func ResizeCount() uint64 { return resizeCounter.Load() }
