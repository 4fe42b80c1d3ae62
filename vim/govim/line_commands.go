package govim

import "strings"

// InsertLinesCommand inserts whole lines below a row (:t, :m, :r)
type InsertLinesCommand struct {
	editBase
	edit
	row   int
	lines []string
}

// NewInsertLines creates a command inserting lines below row, or above the
// first line when row is -1
func NewInsertLines(row int, lines []string) *InsertLinesCommand {
	return &InsertLinesCommand{row: row, lines: lines}
}

func (c *InsertLinesCommand) Execute(e *Editor) error {
	c.begin(e)
	if len(c.lines) == 0 {
		return nil
	}
	if c.row < -1 || c.row >= e.buf.Len() {
		return execErr("insert lines", ErrOutOfRange)
	}
	at := Position{Row: c.row + 1}
	if _, err := c.insert(e, at, strings.Join(c.lines, "\n")+"\n"); err != nil {
		c.rollback(e)
		return execErr("insert lines", err)
	}
	last := c.row + len(c.lines)
	c.finish(e, Position{Row: last, Col: firstNonBlank(e.lineRunes(last))})
	return nil
}

// SetLineCommand replaces the text of one line (:s)
type SetLineCommand struct {
	editBase
	edit
	row  int
	text string
}

// NewSetLine creates a command replacing the text of line row. The text
// may contain newlines, splitting the line.
func NewSetLine(row int, text string) *SetLineCommand {
	return &SetLineCommand{row: row, text: text}
}

func (c *SetLineCommand) Execute(e *Editor) error {
	c.begin(e)
	if c.row < 0 || c.row >= e.buf.Len() {
		return execErr("set line", ErrOutOfRange)
	}
	if e.buf.Line(c.row) == c.text {
		return nil
	}
	end := Position{Row: c.row, Col: e.buf.LineLen(c.row)}
	if err := c.replace(e, Position{Row: c.row}, end, c.text); err != nil {
		c.rollback(e)
		return execErr("set line", err)
	}
	last := c.row + strings.Count(c.text, "\n")
	c.finish(e, Position{Row: last, Col: firstNonBlank(e.lineRunes(last))})
	return nil
}

// FirstNonBlank returns the column of the first non-blank character of row
func (e *Editor) FirstNonBlank(row int) int {
	return firstNonBlank(e.lineRunes(row))
}
