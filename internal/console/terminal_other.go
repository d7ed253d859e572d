//go:build !linux && !darwin

package console

import (
	"errors"
	"os"
)

// ErrNotSupported is returned where echo control is not implemented
var ErrNotSupported = errors.New("terminal echo control not supported")

// Terminal is a stub on platforms without termios
type Terminal struct{}

// NewTerminal always fails; passwords are then read with echo enabled
func NewTerminal(*os.File) (*Terminal, error) {
	return nil, ErrNotSupported
}

// DisableEcho is a no-op
func (t *Terminal) DisableEcho() error { return nil }

// Restore is a no-op
func (t *Terminal) Restore() error { return nil }
