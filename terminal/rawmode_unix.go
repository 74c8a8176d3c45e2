//go:build unix

package terminal

import (
	"os"

	"golang.org/x/sys/unix"
)

// rawState is the saved termios needed to restore cooked mode.
type rawState struct {
	termios unix.Termios
}

// ioctlTermiosRequest is TCGETS/TCSETS on Linux; other unix targets define
// their own request numbers via unix's per-GOOS constants, which
// golang.org/x/sys/unix already resolves for us.
func enableRawMode(f *os.File) (*rawState, error) {
	fd := int(f.Fd())
	orig, err := unix.IoctlGetTermios(fd, ioctlGetTermios)
	if err != nil {
		return nil, err
	}

	raw := *orig
	raw.Iflag &^= unix.ICRNL | unix.IXON | unix.BRKINT | unix.INPCK | unix.ISTRIP
	raw.Oflag &^= unix.OPOST
	raw.Lflag &^= unix.ECHO | unix.ICANON | unix.ISIG
	raw.Cflag |= unix.CS8
	raw.Cc[unix.VMIN] = 1
	raw.Cc[unix.VTIME] = 0

	if err := unix.IoctlSetTermios(fd, ioctlSetTermios, &raw); err != nil {
		return nil, err
	}
	return &rawState{termios: *orig}, nil
}

func disableRawMode(f *os.File, s *rawState) error {
	if s == nil {
		return nil
	}
	return unix.IoctlSetTermios(int(f.Fd()), ioctlSetTermios, &s.termios)
}

// ioctlWinsize queries TIOCGWINSZ directly, used as the fallback behind
// golang.org/x/term.GetSize.
func ioctlWinsize(fd int) (width, height int, ok bool) {
	ws, err := unix.IoctlGetWinsize(fd, unix.TIOCGWINSZ)
	if err != nil {
		return 0, 0, false
	}
	return int(ws.Col), int(ws.Row), true
}
