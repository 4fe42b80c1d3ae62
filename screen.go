package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/slzatz/vix/rawmode"
	"github.com/slzatz/vix/vim"
	"github.com/slzatz/vix/vim/govim"
	"github.com/slzatz/vix/vim/wrap"
)

const hitEnter = "Press ENTER or type command to continue"

// Screen draws the buffer window, the status line and echoed output. It is
// the editor's Presenter.
type Screen struct {
	out         io.Writer
	screenCols  int
	screenLines int //total number of screen lines
	textLines   int // screen lines less the status line
	ws          rawmode.Winsize
	mapper      *wrap.Mapper

	status string
	echo   []string
	bell   bool
}

func NewScreen(out io.Writer, mapper *wrap.Mapper) *Screen {
	return &Screen{out: out, mapper: mapper, screenCols: 80, screenLines: 24, textLines: 23}
}

func (s *Screen) SetStatus(text string) { s.status = text }

// ClearStatus removes the status message before the next key is handled
func (s *Screen) ClearStatus() { s.status = "" }

func (s *Screen) Echo(lines ...string) { s.echo = append(s.echo, lines...) }

func (s *Screen) Bell() { s.bell = true }

// Echoing reports whether echoed lines are waiting to be dismissed
func (s *Screen) Echoing() bool { return len(s.echo) > 0 }

// Dismiss clears echoed output
func (s *Screen) Dismiss() { s.echo = nil }

// GetWindowSize reads the terminal size and resizes the text area
func (s *Screen) GetWindowSize() error {
	ws, err := rawmode.GetWindowSize()
	if err != nil {
		return err
	}
	s.ws = ws
	s.Resize(int(ws.Row), int(ws.Col))
	return nil
}

// Resize sets the screen dimensions. One line is kept for the status line.
func (s *Screen) Resize(lines, cols int) {
	s.screenLines = max(lines, 2)
	s.screenCols = max(cols, 1)
	s.textLines = s.screenLines - 1
	s.mapper.SetWidth(s.screenCols)
}

// Refresh redraws the whole screen for the session state
func (s *Screen) Refresh(sess *vim.Session) {
	var ab strings.Builder
	ab.WriteString("\x1b[?25l") //hides the cursor
	ab.WriteString("\x1b[H")

	if s.Echoing() {
		s.drawEcho(&ab)
	} else {
		s.drawText(&ab, sess.Editor())
		s.drawStatusBar(&ab, sess)
		s.placeCursor(&ab, sess)
	}
	if s.bell {
		ab.WriteString("\a")
		s.bell = false
	}
	ab.WriteString("\x1b[?25h") //shows the cursor
	fmt.Fprint(s.out, ab.String())
}

func (s *Screen) drawText(ab *strings.Builder, e *govim.Editor) {
	buf := e.Buffer()
	y := 0
	for row := e.Top(); row < buf.Len() && y < s.textLines; row++ {
		for _, seg := range s.mapper.Render(buf.Line(row)) {
			if y == s.textLines {
				break
			}
			ab.WriteString(seg)
			ab.WriteString("\x1b[K\r\n")
			y++
		}
	}
	for ; y < s.textLines; y++ {
		ab.WriteString("\x1b[34m~\x1b[0m\x1b[K\r\n")
	}
}

// drawStatusBar shows, in order of preference, the open command line, the
// last status message or the mode, with pending keys and the cursor
// position on the right
func (s *Screen) drawStatusBar(ab *strings.Builder, sess *vim.Session) {
	e := sess.Editor()
	left := s.status
	switch prompt, text, ok := sess.CommandLine(); {
	case ok:
		left = string(prompt) + text
	case left == "" && e.Mode() == govim.ModeInsert:
		left = "-- INSERT --"
	case left == "" && e.Mode() == govim.ModeReplace:
		left = "-- REPLACE --"
	}
	pos := e.Cursor()
	right := fmt.Sprintf("%-10s %d,%d", sess.Pending(), pos.Row+1, pos.Col+1)

	fmt.Fprintf(ab, "\x1b[%d;1H\x1b[K", s.screenLines)
	room := s.screenCols - runewidth.StringWidth(right) - 1
	if room < 10 {
		ab.WriteString(runewidth.Truncate(left, s.screenCols, ""))
		return
	}
	left = runewidth.Truncate(left, room, "")
	ab.WriteString(left)
	ab.WriteString(strings.Repeat(" ", s.screenCols-runewidth.StringWidth(left)-runewidth.StringWidth(right)))
	ab.WriteString(right)
}

func (s *Screen) placeCursor(ab *strings.Builder, sess *vim.Session) {
	if prompt, text, ok := sess.CommandLine(); ok {
		col := runewidth.StringWidth(string(prompt) + text)
		fmt.Fprintf(ab, "\x1b[%d;%dH", s.screenLines, min(col+1, s.screenCols))
		return
	}
	e := sess.Editor()
	row, col := s.mapper.ScreenPosition(e.Buffer(), e.Cursor(), e.Top())
	row = max(min(row, s.textLines-1), 0)
	fmt.Fprintf(ab, "\x1b[%d;%dH", row+1, min(col+1, s.screenCols))
}

// drawEcho shows the last screenful of echoed lines above the hit-enter
// prompt
func (s *Screen) drawEcho(ab *strings.Builder) {
	lines := s.echo
	if len(lines) > s.textLines {
		lines = lines[len(lines)-s.textLines:]
	}
	ab.WriteString("\x1b[2J\x1b[H")
	for _, line := range lines {
		// rendered help carries its own styling and is already wrapped
		if !strings.Contains(line, "\x1b") {
			line = runewidth.Truncate(line, s.screenCols, "")
		}
		ab.WriteString(line)
		ab.WriteString("\x1b[K\r\n")
	}
	fmt.Fprintf(ab, "\x1b[%d;1H\x1b[K\x1b[32m%s\x1b[0m", s.screenLines, hitEnter)
}

// Clear erases the screen and sends the cursor home
func (s *Screen) Clear() {
	fmt.Fprint(s.out, "\x1b[2J\x1b[H")
}
