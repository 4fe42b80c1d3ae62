//go:build !windows

package main

import (
	"os"
	"os/signal"

	"golang.org/x/sys/unix"
)

// setupSignalHandling forwards terminal resizes to the app
func setupSignalHandling(app *App) {
	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, unix.SIGWINCH)

	go func() {
		for range signalChan {
			app.signalHandler()
		}
	}()
}
