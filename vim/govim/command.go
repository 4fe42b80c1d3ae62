package govim

// Command is an executable, reversible editor action. Every movement,
// mode entry, text mutation, file and meta action implements it.
type Command interface {
	// Execute applies the command. On error the buffer and cursor are left
	// as they were.
	Execute(e *Editor) error

	// Undo restores buffer content and cursor to their values before Execute.
	Undo(e *Editor) error

	// Redo re-performs the edit from scratch and returns the command
	// representing the freshly applied edit, or nil if there is none.
	Redo(e *Editor) (Command, error)

	// IsReusable reports whether the repeat facility may re-invoke it
	IsReusable() bool

	// IsModeful reports whether executing it leaves the editor in insert or
	// replace mode, capturing typed text until Esc
	IsModeful() bool

	// IsUndoable reports whether it is pushed on the undo history
	IsUndoable() bool
}

// Opener is implemented by modeful commands. Execute leaves the command
// opened; Close receives the text typed before Esc and returns the closed,
// undoable command that goes on the history. An opened command is never on
// the history, so it cannot be undone before it is closed.
type Opener interface {
	Command
	Close(e *Editor, typed string) (Command, error)
}

// baseCommand provides the default capability flags and no-op undo/redo
type baseCommand struct{}

func (baseCommand) Undo(*Editor) error            { return nil }
func (baseCommand) Redo(*Editor) (Command, error) { return nil, nil }
func (baseCommand) IsReusable() bool              { return true }
func (baseCommand) IsModeful() bool               { return false }
func (baseCommand) IsUndoable() bool              { return false }

// motionBase is embedded by movement commands: not undoable and not
// repeatable with '.'
type motionBase struct{ baseCommand }

func (motionBase) IsReusable() bool { return false }

// editBase is embedded by text-mutating commands
type editBase struct{ baseCommand }

func (editBase) IsUndoable() bool { return true }

// metaBase is embedded by commands acting on the editor itself (undo, redo,
// repeat, mode entry)
type metaBase struct{ baseCommand }

func (metaBase) IsReusable() bool { return false }

// History is the undo stack. index points at the last applied command;
// -1 means there is nothing to undo.
type History struct {
	commands []Command
	index    int
	limit    int
}

// NewHistory creates an empty history keeping at most limit entries
// (0 means unbounded)
func NewHistory(limit int) *History {
	return &History{index: -1, limit: limit}
}

// Push adds an executed command, discarding anything that was undone
func (h *History) Push(cmd Command) {
	h.commands = append(h.commands[:h.index+1], cmd)
	if h.limit > 0 && len(h.commands) > h.limit {
		drop := len(h.commands) - h.limit
		h.commands = append([]Command{}, h.commands[drop:]...)
	}
	h.index = len(h.commands) - 1
}

// Undo undoes the command at the top of the history
func (h *History) Undo(e *Editor) error {
	if h.index < 0 {
		return ErrNothingToUndo
	}
	if err := h.commands[h.index].Undo(e); err != nil {
		return err
	}
	h.index--
	return nil
}

// Redo re-performs the most recently undone command. The fresh command
// replaces the old entry.
func (h *History) Redo(e *Editor) error {
	if h.index >= len(h.commands)-1 {
		return ErrNothingToRedo
	}
	fresh, err := h.commands[h.index+1].Redo(e)
	if err != nil {
		return err
	}
	if fresh == nil {
		return ErrNothingToRedo
	}
	h.index++
	h.commands[h.index] = fresh
	return nil
}

// CanUndo reports whether there is a command to undo
func (h *History) CanUndo() bool { return h.index >= 0 }

// CanRedo reports whether there is an undone command to redo
func (h *History) CanRedo() bool { return h.index < len(h.commands)-1 }

// Len returns the number of commands on the history, undone ones included
func (h *History) Len() int { return len(h.commands) }

// SetLimit changes the number of entries kept, dropping the oldest ones
func (h *History) SetLimit(limit int) {
	h.limit = limit
	if limit > 0 && len(h.commands) > limit {
		drop := len(h.commands) - limit
		h.commands = append([]Command{}, h.commands[drop:]...)
		h.index -= drop
		if h.index < -1 {
			h.index = -1
		}
	}
}

// Clear empties the history
func (h *History) Clear() {
	h.commands = nil
	h.index = -1
}
