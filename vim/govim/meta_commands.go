package govim

// NopCommand does nothing. Esc in normal mode completes to it.
type NopCommand struct{ metaBase }

func (NopCommand) Execute(*Editor) error { return nil }

// UndoCommand undoes count changes (u)
type UndoCommand struct {
	metaBase
	count int
}

// NewUndo creates an undo command
func NewUndo(count int) *UndoCommand { return &UndoCommand{count: count} }

func (c *UndoCommand) Execute(e *Editor) error {
	for i := 0; i < atLeastOne(c.count); i++ {
		if err := e.Undo(); err != nil {
			if i > 0 {
				return nil
			}
			return err
		}
	}
	return nil
}

// RedoCommand redoes count changes (Ctrl-R)
type RedoCommand struct {
	metaBase
	count int
}

// NewRedo creates a redo command
func NewRedo(count int) *RedoCommand { return &RedoCommand{count: count} }

func (c *RedoCommand) Execute(e *Editor) error {
	for i := 0; i < atLeastOne(c.count); i++ {
		if err := e.Redo(); err != nil {
			if i > 0 {
				return nil
			}
			return err
		}
	}
	return nil
}

// RepeatCommand repeats the last change (.)
type RepeatCommand struct {
	metaBase
	count int
}

func (c *RepeatCommand) Execute(e *Editor) error { return e.Repeat(c.count) }

// CommandLineCommand opens the command line for an ex command (:) or a
// search (/ ?)
type CommandLineCommand struct {
	metaBase
	prompt rune
}

func (c *CommandLineCommand) Execute(e *Editor) error {
	e.mode = ModeCommandLine
	e.prompt = c.prompt
	return nil
}

// SearchCommand moves to the next match of a pattern typed after / or ?
type SearchCommand struct {
	motionBase
	pattern string
	forward bool
	count   int
}

// NewSearch creates a search; an empty pattern repeats the last one
func NewSearch(pattern string, forward bool, count int) *SearchCommand {
	return &SearchCommand{pattern: pattern, forward: forward, count: count}
}

func (c *SearchCommand) Execute(e *Editor) error {
	start := e.cursor
	if err := e.Search(c.pattern, c.forward); err != nil {
		e.cursor = start
		return execErr("search", err)
	}
	for i := 1; i < c.count; i++ {
		if !searchNext(e, 1, 0) {
			break
		}
	}
	e.SetCursor(e.cursor)
	return nil
}

// WriteQuitCommand writes the buffer if it was modified and quits (ZZ, :x)
type WriteQuitCommand struct {
	metaBase
	name   string
	always bool
}

// NewWriteQuit creates the write-and-quit command. always writes even an
// unmodified buffer (:wq).
func NewWriteQuit(name string, always bool) *WriteQuitCommand {
	return &WriteQuitCommand{name: name, always: always}
}

func (c *WriteQuitCommand) Execute(e *Editor) error {
	if c.always || e.buf.IsModified() || c.name != "" {
		if err := e.Write(c.name); err != nil {
			return err
		}
	}
	e.quit = true
	return nil
}

// QuitCommand quits, refusing when there are unsaved changes unless forced
// (:q, :q!, ZQ)
type QuitCommand struct {
	metaBase
	force bool
}

// NewQuit creates a quit command
func NewQuit(force bool) *QuitCommand { return &QuitCommand{force: force} }

func (c *QuitCommand) Execute(e *Editor) error {
	if e.buf.IsModified() && !c.force {
		return execErr("quit", ErrModified)
	}
	e.quit = true
	return nil
}

// FileInfoCommand shows the file name and position (Ctrl-G)
type FileInfoCommand struct{ metaBase }

func (FileInfoCommand) Execute(e *Editor) error {
	e.presenter.SetStatus(e.FileInfo())
	return nil
}
