//go:build linux || darwin

package console

import (
	"os"

	"golang.org/x/sys/unix"
)

// Terminal toggles echo on an interactive terminal
type Terminal struct {
	fd       int
	original unix.Termios
}

// NewTerminal creates a terminal controller for f. It fails when f is not a
// terminal.
func NewTerminal(f *os.File) (*Terminal, error) {
	fd := int(f.Fd())
	termios, err := unix.IoctlGetTermios(fd, ioctlGetTermios)
	if err != nil {
		return nil, err
	}
	return &Terminal{fd: fd, original: *termios}, nil
}

// DisableEcho stops the terminal from echoing typed characters while keeping
// line editing
func (t *Terminal) DisableEcho() error {
	silent := t.original
	silent.Lflag &^= unix.ECHO
	silent.Lflag |= unix.ICANON | unix.ISIG
	silent.Iflag |= unix.ICRNL
	return unix.IoctlSetTermios(t.fd, ioctlSetTermios, &silent)
}

// Restore restores the mode the terminal had when the controller was created
func (t *Terminal) Restore() error {
	return unix.IoctlSetTermios(t.fd, ioctlSetTermios, &t.original)
}
