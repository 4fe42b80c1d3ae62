// Package rawmode switches the controlling terminal in and out of raw mode
// and reports its size
package rawmode

import (
	"fmt"
	"os"

	"golang.org/x/term"
)

// Winsize represents terminal window dimensions in a platform-agnostic way
type Winsize struct {
	Row    uint16
	Col    uint16
	Xpixel uint16
	Ypixel uint16
}

// State is the terminal configuration saved by Enable
type State struct {
	fd    int
	saved *term.State
}

// Enable puts stdin in raw mode and returns the previous configuration
func Enable() (*State, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return nil, fmt.Errorf("stdin is not a terminal")
	}
	saved, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("failed to enable raw mode: %w", err)
	}
	return &State{fd: fd, saved: saved}, nil
}

// Restore returns the terminal to the configuration saved by Enable
func Restore(s *State) error {
	if s == nil {
		return nil
	}
	return term.Restore(s.fd, s.saved)
}
