package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/slzatz/vix/config"
	"github.com/slzatz/vix/core/log"
	"github.com/slzatz/vix/rawmode"
	"github.com/slzatz/vix/terminal"
	"github.com/slzatz/vix/vim"
	"github.com/slzatz/vix/vim/fileio"
	"github.com/slzatz/vix/vim/govim"
	"github.com/slzatz/vix/vim/viminfo"
	"github.com/slzatz/vix/vim/wrap"
)

// App owns the terminal, the editing session and its collaborators
type App struct {
	Config  *config.Config
	Screen  *Screen
	Session *vim.Session
	Disk    *fileio.Disk
	Store   *viminfo.Store
	Run     bool

	origTermCfg *rawmode.State
	keys        *terminal.Reader
	resize      chan struct{}
}

// NewApp builds the editor for file (which may be empty or not yet exist)
// and wires its collaborators. store may be nil when viminfo is disabled.
func NewApp(cfg *config.Config, file string, store *viminfo.Store, in io.Reader, out io.Writer) (*App, error) {
	disk := fileio.NewDisk()
	mapper := wrap.New(80, cfg.Editor.TabStop)
	screen := NewScreen(out, mapper)

	buf := govim.NewBuffer()
	if file != "" {
		lines, err := disk.ReadLines(file)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			screen.SetStatus(fmt.Sprintf("%q [New File]", file))
		case err != nil:
			return nil, fmt.Errorf("failed to read %s: %w", file, err)
		default:
			buf = govim.NewBuffer(lines...)
			screen.SetStatus(fmt.Sprintf("%q %dL", file, len(lines)))
			if disk.Foreign(file) {
				screen.SetStatus(fmt.Sprintf("%q is being edited by another instance; writes will fail", file))
			}
		}
		buf.SetName(file)
	}

	e := govim.NewEditor(buf, cfg.Editor.Options())
	e.SetPresenter(screen)
	e.SetScreen(mapper)
	e.SetFileSystem(disk)
	e.SetHelper(NewMarkdownHelper(func() int { return screen.screenCols }))

	var hs vim.HistoryStore
	if store != nil {
		hs = store
	}
	return &App{
		Config:  cfg,
		Screen:  screen,
		Session: vim.NewSession(e, hs),
		Disk:    disk,
		Store:   store,
		keys:    terminal.NewReader(in),
		resize:  make(chan struct{}, 1),
	}, nil
}

// signalHandler is called when the terminal is resized
func (a *App) signalHandler() {
	select {
	case a.resize <- struct{}{}:
	default:
	}
}

func (a *App) updateWindowSize() {
	if err := a.Screen.GetWindowSize(); err != nil {
		log.Warn("could not get window size", "error", err)
		return
	}
	a.Session.Editor().SetViewport(a.Screen.textLines, a.Screen.screenCols)
}

// HandleKey runs one key through the session. A key typed while echoed
// output is showing dismisses it; Enter, Space and Esc are consumed.
func (a *App) HandleKey(k govim.Key) {
	if a.Screen.Echoing() {
		a.Screen.Dismiss()
		if k.Name == govim.KeyEnter || k.IsRune(' ') || k.IsEsc() {
			return
		}
	}
	a.Screen.ClearStatus()
	// errors are already on the status line
	_ = a.Session.HandleKey(k)
	if a.Session.Editor().QuitRequested() {
		a.Run = false
	}
}

func (a *App) MainLoop() {
	keys := make(chan govim.Key)
	readErr := make(chan error, 1)
	go func() {
		for {
			k, err := a.keys.ReadKey()
			if errors.Is(err, terminal.ErrNoInput) {
				continue
			}
			if err != nil {
				readErr <- err
				return
			}
			keys <- k
		}
	}()

	a.updateWindowSize()
	a.Screen.Refresh(a.Session)
	for a.Run {
		select {
		case k := <-keys:
			a.HandleKey(k)
		case <-a.resize:
			a.updateWindowSize()
		case err := <-readErr:
			log.Error("readkey problem", "error", err)
			a.Run = false
			continue
		}
		a.Screen.Refresh(a.Session)
	}
}

// Cleanup saves the session state, releases file locks and restores the
// terminal
func (a *App) Cleanup() {
	if err := a.Session.Close(); err != nil {
		log.Warn("could not save session state", "error", err)
	}
	if a.Store != nil {
		if err := a.Store.Close(); err != nil {
			log.Warn("could not close viminfo", "error", err)
		}
	}
	if err := a.Disk.Close(); err != nil {
		log.Warn("could not release file locks", "error", err)
	}
	a.Screen.Clear()
	if err := rawmode.Restore(a.origTermCfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: disabling raw mode: %s\r\n", err)
	}
}
