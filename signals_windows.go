//go:build windows

package main

import (
	"time"

	"github.com/slzatz/vix/rawmode"
)

// setupSignalHandling sets up platform-specific signal handling
// On Windows, we use polling to detect terminal resize since SIGWINCH doesn't exist
func setupSignalHandling(app *App) {
	go func() {
		ws, err := rawmode.GetWindowSize()
		if err != nil {
			return // If we can't get initial size, skip resize detection
		}
		prev := ws

		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()

		for range ticker.C {
			current, err := rawmode.GetWindowSize()
			if err != nil {
				continue
			}
			if current.Row != prev.Row || current.Col != prev.Col {
				app.signalHandler()
				prev = current
			}
		}
	}()
}
