//go:build unix

package input

import (
	"time"

	"golang.org/x/sys/unix"
)

// pollIntervalMs bounds how long a single poll waits before re-checking
// the done channel, so StartReader's goroutine always shuts down promptly.
const pollIntervalMs = 100

// HasInput reports whether at least one byte can be read from fd within
// timeout without blocking.
func HasInput(fd int, timeout time.Duration) bool {
	ms := int(timeout / time.Millisecond)
	if ms < 0 {
		ms = 0
	}
	fds := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLIN}}
	n, err := unix.Poll(fds, ms)
	if err != nil {
		return false
	}
	return n > 0
}

// ReadChar reads one byte from fd without blocking past what has_input
// already confirmed is available; ok is false when nothing was available.
func ReadChar(fd int) (byte, bool) {
	var buf [1]byte
	n, err := unix.Read(fd, buf[:])
	if err != nil || n == 0 {
		return 0, false
	}
	return buf[0], true
}

// StartReader spawns the single goroutine that owns all reads from fd,
// polling with a bounded interval so it notices done promptly, and
// forwards every byte read to the returned channel for Decoder.Run to
// consume.
func StartReader(fd int, done <-chan struct{}) <-chan byte {
	rawCh := make(chan byte, 256)
	go func() {
		defer close(rawCh)
		for {
			select {
			case <-done:
				return
			default:
			}

			if !HasInput(fd, pollIntervalMs*time.Millisecond) {
				continue
			}
			b, ok := ReadChar(fd)
			if !ok {
				continue
			}
			select {
			case rawCh <- b:
			case <-done:
				return
			}
		}
	}()
	return rawCh
}
