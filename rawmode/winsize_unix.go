//go:build !windows

package rawmode

import (
	"os"

	"golang.org/x/sys/unix"
)

// GetWindowSize returns the size of the terminal on stdout
func GetWindowSize() (Winsize, error) {
	ws, err := unix.IoctlGetWinsize(int(os.Stdout.Fd()), unix.TIOCGWINSZ)
	if err != nil {
		return Winsize{}, err
	}
	return Winsize{Row: ws.Row, Col: ws.Col, Xpixel: ws.Xpixel, Ypixel: ws.Ypixel}, nil
}
