package govim

import (
	"fmt"

	"github.com/samber/mo"

	"github.com/slzatz/vix/core/log"
)

// Options are the editor settings changeable with :set
type Options struct {
	ShiftWidth int
	TabStop    int
	IgnoreCase bool
	WrapScan   bool
	UndoLevels int
}

// DefaultOptions mirror vi's defaults
var DefaultOptions = Options{
	ShiftWidth: 8,
	TabStop:    8,
	WrapScan:   true,
	UndoLevels: 1000,
}

// SubstituteSpec remembers the last :s for :& and empty patterns
type SubstituteSpec struct {
	Pattern     string
	Replacement string
	Flags       string
}

type lastChange struct {
	desc  CommandDescriptor
	typed string
}

type overwrite struct {
	orig rune
	had  bool
}

// Editor owns the buffer, cursor, undo history and unnamed register. It is
// used from a single goroutine: one key or command line is processed fully
// before the next is read.
type Editor struct {
	buf      *Buffer
	cursor   Position
	wantCol  int
	mode     Mode
	history  *History
	register Register
	options  Options

	presenter Presenter
	screen    ScreenMapper
	files     FileSystem
	helper    Helper

	top    int // first buffer row shown in the window
	height int
	width  int

	// insert and replace mode state
	opened      Opener
	typed       []rune
	overwritten []overwrite

	operatorPending bool

	lastSearch        string
	lastSearchForward bool
	lastFind          JumpDescriptor
	lastSub           *SubstituteSpec
	last              *lastChange
	prompt            rune
	quit              bool
}

// NewEditor creates an editor on buf
func NewEditor(buf *Buffer, opts Options) *Editor {
	if buf == nil {
		buf = NewBuffer()
	}
	return &Editor{
		buf:               buf,
		options:           opts,
		history:           NewHistory(opts.UndoLevels),
		presenter:         nopPresenter{},
		height:            24,
		width:             80,
		lastSearchForward: true,
	}
}

func (e *Editor) SetPresenter(p Presenter)    { e.presenter = p }
func (e *Editor) SetScreen(s ScreenMapper)    { e.screen = s }
func (e *Editor) SetFileSystem(fs FileSystem) { e.files = fs }
func (e *Editor) SetHelper(h Helper)          { e.helper = h }
func (e *Editor) Presenter() Presenter        { return e.presenter }
func (e *Editor) FileSystem() FileSystem      { return e.files }
func (e *Editor) Helper() Helper              { return e.helper }
func (e *Editor) Buffer() *Buffer             { return e.buf }
func (e *Editor) Mode() Mode                  { return e.mode }
func (e *Editor) History() *History           { return e.history }
func (e *Editor) Options() Options            { return e.options }
func (e *Editor) SetOptions(opts Options)     { e.options = opts }
func (e *Editor) Register() Register          { return e.register }
func (e *Editor) SetRegister(r Register)      { e.register = r }
func (e *Editor) Top() int                    { return e.top }
func (e *Editor) QuitRequested() bool         { return e.quit }
func (e *Editor) RequestQuit()                { e.quit = true }

// LastSubstitute returns the last :s, or nil
func (e *Editor) LastSubstitute() *SubstituteSpec { return e.lastSub }

// SetLastSubstitute records the last :s
func (e *Editor) SetLastSubstitute(s SubstituteSpec) { e.lastSub = &s }

// CommandPrompt returns the character that opened the command line
// (':', '/' or '?')
func (e *Editor) CommandPrompt() rune { return e.prompt }

// SetMode changes the input mode. Insert and replace mode are entered only
// through modeful commands.
func (e *Editor) SetMode(m Mode) { e.mode = m }

// SetViewport records the window size used by page motions and scrolling
func (e *Editor) SetViewport(height, width int) {
	if height > 0 {
		e.height = height
	}
	if width > 0 {
		e.width = width
	}
	e.ScrollToCursor()
}

// LastSearch returns the last search pattern and direction
func (e *Editor) LastSearch() (string, bool) {
	return e.lastSearch, e.lastSearchForward
}

// SetLastSearch records the last search pattern
func (e *Editor) SetLastSearch(pattern string, forward bool) {
	e.lastSearch = pattern
	e.lastSearchForward = forward
}

// Status shows a message on the status line
func (e *Editor) Status(format string, args ...any) {
	e.presenter.SetStatus(fmt.Sprintf(format, args...))
}

// Cursor returns the cursor position
func (e *Editor) Cursor() Position { return e.cursor }

// SetCursor moves the cursor, clamping it to the buffer. In normal mode the
// cursor cannot sit past the last character of a line.
func (e *Editor) SetCursor(pos Position) {
	e.cursor = e.clamp(pos, e.mode == ModeNormal && !e.operatorPending)
	e.wantCol = e.cursor.Col
}

func (e *Editor) setCursorKeepColumn(pos Position) {
	e.cursor = e.clamp(pos, e.mode == ModeNormal && !e.operatorPending)
}

func (e *Editor) clamp(pos Position, normal bool) Position {
	if e.buf.Len() == 0 {
		return Position{}
	}
	if pos.Row < 0 {
		pos.Row = 0
	}
	if pos.Row >= e.buf.Len() {
		pos.Row = e.buf.Len() - 1
	}
	max := e.buf.LineLen(pos.Row)
	if normal && max > 0 {
		max--
	}
	if pos.Col > max {
		pos.Col = max
	}
	if pos.Col < 0 {
		pos.Col = 0
	}
	return pos
}

// Execute runs cmd under the command protocol: undoable commands are pushed
// on the history, modeful commands open insert or replace mode and are
// pushed when they are closed.
func (e *Editor) Execute(cmd Command) error {
	if e.opened != nil {
		return ErrNotClosed
	}
	if err := cmd.Execute(e); err != nil {
		log.Debug("command failed", "command", fmt.Sprintf("%T", cmd), "error", err)
		return err
	}
	if cmd.IsModeful() {
		if op, ok := cmd.(Opener); ok && (e.mode == ModeInsert || e.mode == ModeReplace) {
			e.opened = op
			return nil
		}
	}
	if cmd.IsUndoable() && changed(cmd) {
		e.history.Push(cmd)
	}
	e.setCursorKeepColumn(e.cursor)
	e.ScrollToCursor()
	return nil
}

// changed reports whether an undoable command actually changed something
func changed(cmd Command) bool {
	if c, ok := cmd.(interface{ changed() bool }); ok {
		return c.changed()
	}
	return true
}

// Dispatch builds the command for a descriptor and executes it. Reusable
// changes are remembered for '.'.
func (e *Editor) Dispatch(d CommandDescriptor) error {
	cmd, err := NewCommand(e, d)
	if err != nil {
		return err
	}
	if err := e.Execute(cmd); err != nil {
		return err
	}
	if cmd.IsReusable() && cmd.IsUndoable() {
		e.last = &lastChange{desc: d}
	}
	return nil
}

// Undo undoes the most recent change
func (e *Editor) Undo() error {
	if err := e.history.Undo(e); err != nil {
		return err
	}
	e.SetCursor(e.cursor)
	e.ScrollToCursor()
	log.Debug("undo", "cursor", e.cursor.String())
	return nil
}

// Redo re-applies the most recently undone change
func (e *Editor) Redo() error {
	if err := e.history.Redo(e); err != nil {
		return err
	}
	e.SetCursor(e.cursor)
	e.ScrollToCursor()
	log.Debug("redo", "cursor", e.cursor.String())
	return nil
}

// Repeat re-runs the last reusable change at the cursor. A count replaces
// the original count.
func (e *Editor) Repeat(count int) error {
	if e.last == nil {
		return ErrNoPreviousEdit
	}
	d := e.last.desc
	if count > 0 {
		d.Count = count
		if j, ok := d.Range.Get(); ok {
			j.Count = 0
			d.Range = mo.Some(j)
		}
	}
	cmd, err := NewCommand(e, d)
	if err != nil {
		return err
	}
	if op, ok := cmd.(Opener); ok && cmd.IsModeful() {
		closed, err := e.replay(op, e.last.typed)
		if closed != nil && changed(closed) {
			e.history.Push(closed)
		}
		e.ScrollToCursor()
		return err
	}
	return e.Execute(cmd)
}

// beginInsert is called by modeful commands from Execute
func (e *Editor) beginInsert(m Mode) {
	e.mode = m
	e.typed = e.typed[:0]
	e.overwritten = e.overwritten[:0]
}

// endInsert returns to normal mode, moving the cursor back one character as
// vi does when leaving insert mode
func (e *Editor) endInsert() {
	e.mode = ModeNormal
	if e.cursor.Col > 0 {
		e.cursor.Col--
	}
	e.SetCursor(e.cursor)
}

// InsertKey handles a key typed in insert or replace mode
func (e *Editor) InsertKey(k Key) error {
	if e.opened == nil {
		return ErrNotClosed
	}
	switch {
	case k.IsEsc():
		return e.closeOpened()
	case k.Name == KeyEnter || k.IsRune('\r'):
		return e.typeRune('\n')
	case k.Name == KeyTab:
		return e.typeRune('\t')
	case k.Name == KeyBackspace || (k.Mods == ModCtrl && k.Rune == 'h'):
		return e.backspace()
	case k.Printable():
		return e.typeRune(k.Rune)
	default:
		e.presenter.Bell()
	}
	return nil
}

// TypedText returns what has been typed since insert mode was entered
func (e *Editor) TypedText() string { return string(e.typed) }

func (e *Editor) closeOpened() error {
	text := string(e.typed)
	closed, err := e.opened.Close(e, text)
	e.opened = nil
	e.endInsert()
	if closed != nil && closed.IsUndoable() && changed(closed) {
		e.history.Push(closed)
	}
	if e.last != nil {
		e.last.typed = text
	}
	e.ScrollToCursor()
	return err
}

func (e *Editor) typeRune(r rune) error {
	if e.mode == ModeReplace && r != '\n' {
		if orig, ok := e.buf.RuneAt(e.cursor); ok {
			if _, err := e.buf.DeleteRange(e.cursor, Position{Row: e.cursor.Row, Col: e.cursor.Col + 1}); err != nil {
				return err
			}
			e.overwritten = append(e.overwritten, overwrite{orig: orig, had: true})
		} else {
			e.overwritten = append(e.overwritten, overwrite{})
		}
	} else if e.mode == ModeReplace {
		e.overwritten = append(e.overwritten, overwrite{})
	}
	end, err := e.buf.InsertText(e.cursor, string(r))
	if err != nil {
		return err
	}
	e.cursor = end
	e.wantCol = end.Col
	e.typed = append(e.typed, r)
	return nil
}

func (e *Editor) backspace() error {
	if len(e.typed) == 0 {
		e.presenter.Bell()
		return nil
	}
	prev := e.cursor
	if prev.Col > 0 {
		prev.Col--
	} else {
		prev = Position{Row: prev.Row - 1, Col: e.buf.LineLen(prev.Row - 1)}
	}
	if _, err := e.buf.DeleteRange(prev, e.cursor); err != nil {
		return err
	}
	e.cursor = prev
	e.typed = e.typed[:len(e.typed)-1]
	if e.mode == ModeReplace && len(e.overwritten) > 0 {
		ov := e.overwritten[len(e.overwritten)-1]
		e.overwritten = e.overwritten[:len(e.overwritten)-1]
		if ov.had {
			if _, err := e.buf.InsertText(prev, string(ov.orig)); err != nil {
				return err
			}
		}
	}
	return nil
}

// replay re-runs an opener and re-types text rune by rune, as if the user
// typed it, then closes it without pushing it on the history
func (e *Editor) replay(op Opener, text string) (Command, error) {
	if err := op.Execute(e); err != nil {
		return nil, err
	}
	for _, r := range text {
		if err := e.typeRune(r); err != nil {
			e.endInsert()
			return nil, err
		}
	}
	closed, err := op.Close(e, text)
	e.endInsert()
	return closed, err
}

// ScrollToCursor adjusts the window top row so the cursor is visible
func (e *Editor) ScrollToCursor() {
	if e.cursor.Row < e.top {
		e.top = e.cursor.Row
		return
	}
	if e.screen == nil {
		if e.cursor.Row >= e.top+e.height {
			e.top = e.cursor.Row - e.height + 1
		}
		return
	}
	for e.top < e.cursor.Row {
		row, _ := e.screen.ScreenPosition(e.buf, e.cursor, e.top)
		if row < e.height {
			break
		}
		e.top++
	}
}

// ReplaceBuffer swaps in new content, clearing history. Used by :e.
func (e *Editor) ReplaceBuffer(name string, lines []string) {
	e.buf.Reload(lines)
	e.buf.SetName(name)
	e.history.Clear()
	e.top = 0
	e.SetCursor(Position{})
}
