// Package vim ties the editing engine to an input loop. A Session takes
// key events one at a time and routes them by mode: normal mode keys go
// through the key-sequence machine, insert and replace mode keys straight
// to the editor, and command-line keys build an ex command or a search
// pattern that runs on Enter.
package vim

import (
	"errors"
	"fmt"

	"github.com/slzatz/vix/core/log"
	"github.com/slzatz/vix/vim/ex"
	"github.com/slzatz/vix/vim/govim"
)

// History kinds shared with the store
const (
	CommandHistory = "cmd"
	SearchHistory  = "search"
)

// HistoryStore persists command-line history and the unnamed register
// between sessions
type HistoryStore interface {
	AddHistory(kind, line string) error
	History(kind string) ([]string, error)
	SaveRegister(r govim.Register) error
	LoadRegister() (govim.Register, bool, error)
}

type Session struct {
	editor  *govim.Editor
	machine *govim.Machine
	store   HistoryStore

	line        []rune
	searchCount int
	history     map[string][]string
	recall      int // index into the history while recalling with Up/Down
	draft       string
}

// NewSession creates a session on e. store may be nil; otherwise history
// and the unnamed register are loaded from it.
func NewSession(e *govim.Editor, store HistoryStore) *Session {
	s := &Session{
		editor:  e,
		machine: govim.NewMachine(),
		store:   store,
		history: make(map[string][]string),
		recall:  -1,
	}
	if store == nil {
		return s
	}
	for _, kind := range []string{CommandHistory, SearchHistory} {
		lines, err := store.History(kind)
		if err != nil {
			log.Warn("could not load history", "kind", kind, "error", err)
			continue
		}
		s.history[kind] = lines
	}
	if r, ok, err := store.LoadRegister(); err != nil {
		log.Warn("could not load register", "error", err)
	} else if ok {
		e.SetRegister(r)
	}
	return s
}

func (s *Session) Editor() *govim.Editor { return s.editor }

// Pending returns the normal mode keys typed so far
func (s *Session) Pending() string { return s.machine.Pending() }

// CommandLine returns the prompt and text of the command line while one is
// open
func (s *Session) CommandLine() (rune, string, bool) {
	if s.editor.Mode() != govim.ModeCommandLine {
		return 0, "", false
	}
	return s.editor.CommandPrompt(), string(s.line), true
}

// HandleKey processes one key event. Errors are shown on the status line
// (with a bell for invalid key sequences) and also returned; the session
// stays usable after any error.
func (s *Session) HandleKey(k govim.Key) error {
	var err error
	switch s.editor.Mode() {
	case govim.ModeInsert, govim.ModeReplace:
		err = s.editor.InsertKey(k)
	case govim.ModeCommandLine:
		err = s.commandLineKey(k)
	default:
		err = s.normalKey(k)
	}
	if err != nil {
		s.report(err)
	}
	return err
}

func (s *Session) report(err error) {
	p := s.editor.Presenter()
	var seq *govim.InvalidSequenceError
	if errors.As(err, &seq) {
		p.Bell()
	}
	p.SetStatus(err.Error())
	log.Debug("key error", "error", err)
}

func (s *Session) normalKey(k govim.Key) error {
	idle := s.machine.Pending() == ""
	res := s.machine.Feed(k)
	switch res.Kind {
	case govim.ResultInvalid:
		return res.Err
	case govim.ResultCompleted:
		d := res.Descriptor
		if d.Key.IsEsc() && idle {
			s.editor.Presenter().Bell()
		}
		if err := s.editor.Dispatch(d); err != nil {
			return err
		}
		if s.editor.Mode() == govim.ModeCommandLine {
			s.openCommandLine(d.Count)
		}
	}
	return nil
}

// openCommandLine starts an empty command line. A count before : becomes
// the range of that many lines from the cursor.
func (s *Session) openCommandLine(count int) {
	s.line = s.line[:0]
	s.recall = -1
	s.searchCount = 0
	switch {
	case s.editor.CommandPrompt() != ':':
		s.searchCount = count
	case count == 1:
		s.line = []rune(".")
	case count > 1:
		s.line = []rune(fmt.Sprintf(".,.+%d", count-1))
	}
}

func (s *Session) kind() string {
	if s.editor.CommandPrompt() == ':' {
		return CommandHistory
	}
	return SearchHistory
}

func (s *Session) commandLineKey(k govim.Key) error {
	switch {
	case k.IsEsc() || k == govim.Ctrl('c'):
		s.closeCommandLine()
	case k.Name == govim.KeyEnter || k.IsRune('\r'):
		return s.submit()
	case k.Name == govim.KeyBackspace || k == govim.Ctrl('h'):
		if len(s.line) == 0 {
			s.closeCommandLine()
			return nil
		}
		s.line = s.line[:len(s.line)-1]
	case k == govim.Ctrl('u'):
		s.line = s.line[:0]
	case k.Name == govim.KeyUp:
		s.recallHistory(-1)
	case k.Name == govim.KeyDown:
		s.recallHistory(1)
	case k.Name == govim.KeyTab:
		s.line = append(s.line, '\t')
	case k.Printable():
		s.line = append(s.line, k.Rune)
	default:
		s.editor.Presenter().Bell()
	}
	return nil
}

func (s *Session) closeCommandLine() {
	s.line = s.line[:0]
	s.recall = -1
	s.editor.SetMode(govim.ModeNormal)
}

// recallHistory steps through the history of the open command line. The
// text typed before recalling is restored when stepping past the newest
// entry.
func (s *Session) recallHistory(step int) {
	entries := s.history[s.kind()]
	if len(entries) == 0 {
		s.editor.Presenter().Bell()
		return
	}
	if s.recall < 0 {
		if step > 0 {
			s.editor.Presenter().Bell()
			return
		}
		s.draft = string(s.line)
		s.recall = len(entries)
	}
	next := s.recall + step
	switch {
	case next < 0:
		s.editor.Presenter().Bell()
		return
	case next >= len(entries):
		s.recall = -1
		s.line = []rune(s.draft)
		return
	}
	s.recall = next
	s.line = []rune(entries[next])
}

// submit runs the command line. The editor is back in normal mode before
// the command runs so that commands opening insert mode or failing leave
// it in a consistent state.
func (s *Session) submit() error {
	text := string(s.line)
	prompt := s.editor.CommandPrompt()
	count := s.searchCount
	s.closeCommandLine()
	s.remember(s.kind(), text)

	if prompt == ':' {
		return s.Run(text)
	}
	return s.editor.Execute(govim.NewSearch(text, prompt == '/', count))
}

// Run parses and executes an ex command line
func (s *Session) Run(line string) error {
	cmd, err := ex.Parse(line)
	if err != nil {
		return err
	}
	return s.editor.Execute(cmd)
}

// remember adds line to the kind history, dropping an earlier copy
func (s *Session) remember(kind, line string) {
	if line == "" {
		return
	}
	entries := s.history[kind]
	for i, old := range entries {
		if old == line {
			entries = append(entries[:i], entries[i+1:]...)
			break
		}
	}
	s.history[kind] = append(entries, line)
	if s.store != nil {
		if err := s.store.AddHistory(kind, line); err != nil {
			log.Warn("could not save history", "kind", kind, "error", err)
		}
	}
}

// History returns the command-line history of kind, oldest first
func (s *Session) History(kind string) []string {
	return append([]string(nil), s.history[kind]...)
}

// Close saves the unnamed register
func (s *Session) Close() error {
	if s.store == nil {
		return nil
	}
	if err := s.store.SaveRegister(s.editor.Register()); err != nil {
		return fmt.Errorf("failed to save register: %w", err)
	}
	return nil
}
