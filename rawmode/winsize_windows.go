//go:build windows

package rawmode

import (
	"os"

	"golang.org/x/term"
)

// GetWindowSize returns the size of the console on stdout. Pixel sizes are
// not available on Windows.
func GetWindowSize() (Winsize, error) {
	w, h, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return Winsize{}, err
	}
	return Winsize{Row: uint16(h), Col: uint16(w)}, nil
}
