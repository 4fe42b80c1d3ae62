package govim

// change is one reversible text replacement: deleted is the text that was
// at the position before, inserted the text that is there after
type change struct {
	at       Position
	deleted  string
	inserted string
}

func (c change) apply(b *Buffer) error {
	if c.deleted != "" {
		if _, err := b.DeleteRange(c.at, Advance(c.at, c.deleted)); err != nil {
			return err
		}
	}
	if c.inserted != "" {
		if _, err := b.InsertText(c.at, c.inserted); err != nil {
			return err
		}
	}
	return nil
}

func (c change) revert(b *Buffer) error {
	if c.inserted != "" {
		if _, err := b.DeleteRange(c.at, Advance(c.at, c.inserted)); err != nil {
			return err
		}
	}
	if c.deleted != "" {
		if _, err := b.InsertText(c.at, c.deleted); err != nil {
			return err
		}
	}
	return nil
}

// edit records the changes made by a command together with the cursor
// before and after, and implements Undo and Redo for commands embedding it
type edit struct {
	changes []change
	before  Position
	after   Position
	reg     *Register
}

func (ed *edit) begin(e *Editor) {
	ed.changes = ed.changes[:0]
	ed.before = e.cursor
	ed.reg = nil
}

// insert inserts text at pos and returns the position after it
func (ed *edit) insert(e *Editor, pos Position, text string) (Position, error) {
	end, err := e.buf.InsertText(pos, text)
	if err != nil {
		return pos, err
	}
	ed.changes = append(ed.changes, change{at: pos, inserted: text})
	return end, nil
}

// remove deletes the text between start and end and returns it
func (ed *edit) remove(e *Editor, start, end Position) (string, error) {
	text, err := e.buf.DeleteRange(start, end)
	if err != nil {
		return "", err
	}
	if text != "" {
		ed.changes = append(ed.changes, change{at: start, deleted: text})
	}
	return text, nil
}

// replace swaps the text between start and end for text
func (ed *edit) replace(e *Editor, start, end Position, text string) error {
	old, err := e.buf.DeleteRange(start, end)
	if err != nil {
		return err
	}
	if _, err := e.buf.InsertText(start, text); err != nil {
		_, _ = e.buf.InsertText(start, old)
		return err
	}
	ed.changes = append(ed.changes, change{at: start, deleted: old, inserted: text})
	return nil
}

// record notes a change that has already been applied to the buffer
func (ed *edit) record(c change) {
	ed.changes = append(ed.changes, c)
}

// ensureLine gives an empty buffer its first line so there is somewhere to
// put text
func (ed *edit) ensureLine(e *Editor) error {
	if e.buf.Len() > 0 {
		return nil
	}
	_, err := ed.insert(e, Position{}, "\n")
	return err
}

func (ed *edit) yank(e *Editor, text string, linewise bool) {
	ed.reg = &Register{Text: text, Linewise: linewise}
	e.register = *ed.reg
}

// rollback reverts whatever has been applied so far; used when Execute fails
// half way
func (ed *edit) rollback(e *Editor) {
	for i := len(ed.changes) - 1; i >= 0; i-- {
		_ = ed.changes[i].revert(e.buf)
	}
	ed.changes = ed.changes[:0]
	e.cursor = ed.before
}

func (ed *edit) finish(e *Editor, cursor Position) {
	e.SetCursor(cursor)
	ed.after = e.cursor
}

func (ed *edit) changed() bool {
	return len(ed.changes) > 0
}

func (ed *edit) Undo(e *Editor) error {
	for i := len(ed.changes) - 1; i >= 0; i-- {
		if err := ed.changes[i].revert(e.buf); err != nil {
			return execErr("undo", err)
		}
	}
	e.SetCursor(ed.before)
	return nil
}

func (ed *edit) Redo(e *Editor) (Command, error) {
	fresh := &appliedEdit{edit: ed.clone()}
	if err := fresh.apply(e); err != nil {
		return nil, execErr("redo", err)
	}
	return fresh, nil
}

func (ed *edit) clone() edit {
	c := *ed
	c.changes = append([]change(nil), ed.changes...)
	return c
}

func (ed *edit) apply(e *Editor) error {
	e.cursor = ed.before
	for i, c := range ed.changes {
		if err := c.apply(e.buf); err != nil {
			for j := i - 1; j >= 0; j-- {
				_ = ed.changes[j].revert(e.buf)
			}
			return err
		}
	}
	if ed.reg != nil {
		e.register = *ed.reg
	}
	e.SetCursor(ed.after)
	return nil
}

// appliedEdit is the command returned by Redo: the same changes applied
// again to the state they were recorded against
type appliedEdit struct {
	editBase
	edit
}

func (a *appliedEdit) Execute(e *Editor) error { return a.apply(e) }

// Composite groups commands into a single undo step. The commands are run
// through Run as they are built; Execute on the composite does nothing.
type Composite struct {
	editBase
	commands []Command
	before   Position
	after    Position
}

// NewComposite creates an empty composite anchored at the cursor
func NewComposite(e *Editor) *Composite {
	return &Composite{before: e.cursor}
}

// Run executes cmd as part of the composite. Undoable commands are
// collected; others are executed only.
func (c *Composite) Run(e *Editor, cmd Command) error {
	if err := cmd.Execute(e); err != nil {
		return err
	}
	if cmd.IsUndoable() {
		c.commands = append(c.commands, cmd)
	}
	return nil
}

// Len returns the number of undoable commands collected
func (c *Composite) Len() int { return len(c.commands) }

// Changed reports whether any collected command changed the buffer
func (c *Composite) Changed() bool { return c.changed() }

func (c *Composite) changed() bool {
	for _, cmd := range c.commands {
		if changed(cmd) {
			return true
		}
	}
	return false
}

// Close records the cursor after the last command
func (c *Composite) Close(e *Editor) { c.after = e.cursor }

func (c *Composite) Execute(*Editor) error { return nil }

func (c *Composite) Undo(e *Editor) error {
	for i := len(c.commands) - 1; i >= 0; i-- {
		if err := c.commands[i].Undo(e); err != nil {
			return err
		}
	}
	e.SetCursor(c.before)
	return nil
}

func (c *Composite) Redo(e *Editor) (Command, error) {
	fresh := &Composite{before: c.before, after: c.after}
	for _, cmd := range c.commands {
		next, err := cmd.Redo(e)
		if err != nil {
			return nil, err
		}
		if next != nil {
			fresh.commands = append(fresh.commands, next)
		}
	}
	e.SetCursor(c.after)
	return fresh, nil
}
