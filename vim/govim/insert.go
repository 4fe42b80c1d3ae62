package govim

import "errors"

type insertKind int

const (
	insertBefore insertKind = iota
	insertLineStart
	appendAfter
	appendLineEnd
	openBelow
	openAbove
	changeRegion
	replaceMode
)

// InsertCommand is the modeful command behind i I a A o O R and the change
// operator. Execute opens it: the cursor moves to where typing starts and
// the editor enters insert or replace mode. Close captures the typed text
// and returns the closed command that goes on the history.
type InsertCommand struct {
	editBase
	edit
	kind  insertKind
	count int

	// change operator: the motion to resolve, or the region once resolved
	jump   JumpDescriptor
	region *Region

	at     Position
	typed  string
	closed bool
}

func newInsert(kind insertKind, count int) *InsertCommand {
	return &InsertCommand{kind: kind, count: count}
}

// NewChange creates the change operator for jump. A jump whose key is 'c'
// changes whole lines.
func NewChange(count int, jump JumpDescriptor) *InsertCommand {
	return &InsertCommand{kind: changeRegion, count: count, jump: jump}
}

func (c *InsertCommand) IsModeful() bool { return !c.closed }

func (c *InsertCommand) Execute(e *Editor) error {
	c.begin(e)
	if err := c.prepare(e); err != nil {
		c.rollback(e)
		return execErr("insert", err)
	}
	e.cursor = c.at
	e.wantCol = c.at.Col
	if c.kind == replaceMode {
		e.beginInsert(ModeReplace)
	} else {
		e.beginInsert(ModeInsert)
	}
	return nil
}

// prepare makes the changes that precede typing and sets c.at
func (c *InsertCommand) prepare(e *Editor) error {
	if c.kind == changeRegion {
		return c.prepareChange(e)
	}
	if err := c.ensureLine(e); err != nil {
		return err
	}
	cur := e.cursor
	if cur.Row >= e.buf.Len() {
		cur.Row = e.buf.Len() - 1
	}
	line := e.lineRunes(cur.Row)
	switch c.kind {
	case insertLineStart:
		c.at = Position{Row: cur.Row, Col: len(indentOf(line))}
	case appendAfter:
		c.at = cur
		if len(line) > 0 {
			c.at.Col++
		}
	case appendLineEnd:
		c.at = Position{Row: cur.Row, Col: len(line)}
	case openBelow:
		end, err := c.insert(e, Position{Row: cur.Row, Col: len(line)}, "\n")
		if err != nil {
			return err
		}
		c.at = end
	case openAbove:
		if _, err := c.insert(e, Position{Row: cur.Row}, "\n"); err != nil {
			return err
		}
		c.at = Position{Row: cur.Row}
	default:
		c.at = cur
	}
	return nil
}

func (c *InsertCommand) prepareChange(e *Editor) error {
	if e.buf.Len() == 0 {
		if err := c.ensureLine(e); err != nil {
			return err
		}
		c.region = &Region{}
	}
	if c.region == nil {
		r, err := ResolveRegion(e, Rune('c'), c.count, c.jump)
		switch {
		case errors.Is(err, ErrMotionFailed) && e.buf.LineLen(e.cursor.Row) == 0:
			r = Region{Start: e.cursor, End: e.cursor}
		case err != nil:
			return err
		}
		c.region = &r
	}
	r := *c.region
	if r.Linewise {
		text, err := e.buf.Slice(r.Start, r.End)
		if err != nil {
			return err
		}
		last := r.End.Row - 1
		if _, err := c.remove(e, r.Start, Position{Row: last, Col: e.buf.LineLen(last)}); err != nil {
			return err
		}
		c.yank(e, text, true)
		c.at = r.Start
		return nil
	}
	text, err := c.remove(e, r.Start, r.End)
	if err != nil {
		return err
	}
	if text != "" {
		c.yank(e, text, false)
	}
	c.at = r.Start
	return nil
}

// Close captures typed, applies the count and returns the closed command,
// or nil when nothing changed. When the repeated text would be too large
// only the typed text is kept and ErrTooLarge is returned with the command.
func (c *InsertCommand) Close(e *Editor, typed string) (Command, error) {
	closed := *c
	closed.edit = c.clone()
	closed.closed = true
	closed.typed = typed

	var failed error
	text := typed
	if c.count > 1 && typed != "" && c.kind != changeRegion {
		unit := typed
		if c.kind == openBelow || c.kind == openAbove {
			unit = "\n" + typed
		}
		extra, err := repeatText(unit, c.count-1)
		if err == nil {
			var end Position
			if end, err = e.buf.InsertText(e.cursor, extra); err == nil {
				e.cursor = end
				text += extra
			}
		}
		failed = execErr("insert", err)
	}

	var orig []rune
	if c.kind == replaceMode {
		for _, ov := range e.overwritten {
			if ov.had {
				orig = append(orig, ov.orig)
			}
		}
	}
	if text != "" || len(orig) > 0 {
		closed.record(change{at: c.at, deleted: string(orig), inserted: text})
	}
	closed.after = e.cursor
	if !closed.changed() {
		return nil, failed
	}
	return &closed, failed
}

// Redo re-opens a fresh command at the same place and re-types the
// captured text
func (c *InsertCommand) Redo(e *Editor) (Command, error) {
	fresh := &InsertCommand{kind: c.kind, count: c.count, jump: c.jump, region: c.region}
	e.cursor = c.before
	closed, err := e.replay(fresh, c.typed)
	// a count too large the first time was recorded without its repeats
	if err != nil && !errors.Is(err, ErrTooLarge) {
		return nil, execErr("redo", err)
	}
	if closed == nil {
		return nil, nil
	}
	return closed, nil
}

func indentOf(line []rune) string {
	n := 0
	for n < len(line) && (line[n] == ' ' || line[n] == '\t') {
		n++
	}
	return string(line[:n])
}
