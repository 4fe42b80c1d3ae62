package govim

import (
	"fmt"
	"math"
	"strings"
	"unicode"
)

// MotionCommand moves the cursor
type MotionCommand struct {
	motionBase
	jump JumpDescriptor
}

// NewMotion creates the movement command for jump
func NewMotion(jump JumpDescriptor) *MotionCommand {
	return &MotionCommand{jump: jump}
}

func (c *MotionCommand) Execute(e *Editor) error {
	m, ok := motionHandlers[c.jump.Key]
	if !ok {
		return execErr("motion", fmt.Errorf("%s: %w", c.jump.Key, ErrMotionFailed))
	}
	n := c.jump.Count
	if !m.absolute {
		n = atLeastOne(n)
	}
	start := e.cursor
	if !m.fn(e, n, c.jump.Arg) {
		e.cursor = start
		if c.jump.Key.IsRune('n') || c.jump.Key.IsRune('N') {
			return execErr("search", fmt.Errorf("%s: %w", e.lastSearch, ErrPatternNotFound))
		}
		return ErrMotionFailed
	}
	switch {
	case m.kind == motionToEOL:
		e.setCursorKeepColumn(e.cursor)
		e.wantCol = math.MaxInt
	case m.vertical:
		e.setCursorKeepColumn(e.cursor)
	default:
		e.SetCursor(e.cursor)
	}
	return nil
}

// DeleteCommand deletes a region and puts the text in the unnamed
// register. The region is resolved from the motion when the command runs.
type DeleteCommand struct {
	editBase
	edit
	count  int
	jump   JumpDescriptor
	region *Region
	noYank bool
}

// NewDelete creates the delete operator for jump
func NewDelete(count int, jump JumpDescriptor) *DeleteCommand {
	return &DeleteCommand{count: count, jump: jump}
}

// NewDeleteRegion creates a command deleting r
func NewDeleteRegion(r Region) *DeleteCommand {
	return &DeleteCommand{region: &r}
}

// NewDeleteLines creates a command deleting lines [start, end)
func NewDeleteLines(start, end int) *DeleteCommand {
	return NewDeleteRegion(LineRegion(start, end))
}

// NewRemoveLines deletes lines [start, end) leaving the register alone
// (:m)
func NewRemoveLines(start, end int) *DeleteCommand {
	c := NewDeleteLines(start, end)
	c.noYank = true
	return c
}

func (c *DeleteCommand) Execute(e *Editor) error {
	c.begin(e)
	r, err := c.resolve(e, Rune('d'))
	if err != nil {
		return err
	}
	text, err := c.remove(e, r.Start, r.End)
	if err != nil {
		c.rollback(e)
		return execErr("delete", err)
	}
	if text == "" {
		e.cursor = c.before
		return nil
	}
	if !c.noYank {
		c.yank(e, text, r.Linewise)
	}
	cursor := r.Start
	if r.Linewise {
		row := r.Start.Row
		row = max(min(row, e.buf.Len()-1), 0)
		cursor = Position{Row: row, Col: firstNonBlank(e.lineRunes(row))}
		if n := r.Lines(); n > 2 {
			e.Status("%d fewer lines", n)
		}
	}
	c.finish(e, cursor)
	return nil
}

// resolve returns the command's region, resolving the motion the first
// time
func (c *DeleteCommand) resolve(e *Editor, op Key) (Region, error) {
	if c.region != nil {
		return *c.region, nil
	}
	r, err := ResolveRegion(e, op, c.count, c.jump)
	if err != nil {
		return r, err
	}
	c.region = &r
	return r, nil
}

// YankCommand copies a region to the unnamed register
type YankCommand struct {
	metaBase
	count  int
	jump   JumpDescriptor
	region *Region
}

// NewYank creates the yank operator for jump
func NewYank(count int, jump JumpDescriptor) *YankCommand {
	return &YankCommand{count: count, jump: jump}
}

// NewYankLines creates a command yanking lines [start, end)
func NewYankLines(start, end int) *YankCommand {
	r := LineRegion(start, end)
	return &YankCommand{region: &r}
}

func (c *YankCommand) Execute(e *Editor) error {
	orig := e.cursor
	r := Region{}
	if c.region != nil {
		r = *c.region
	} else {
		var err error
		if r, err = ResolveRegion(e, Rune('y'), c.count, c.jump); err != nil {
			return err
		}
	}
	text, err := e.buf.Slice(r.Start, r.End)
	if err != nil {
		e.cursor = orig
		return execErr("yank", err)
	}
	e.register = Register{Text: text, Linewise: r.Linewise}
	if r.Linewise {
		if n := r.Lines(); n > 2 {
			e.Status("%d lines yanked", n)
		}
		if r.Start.Row == orig.Row || c.region != nil {
			e.cursor = orig
		} else {
			e.cursor = Position{Row: r.Start.Row, Col: orig.Col}
		}
	}
	return nil
}

// PutCommand pastes the unnamed register after or before the cursor
type PutCommand struct {
	editBase
	edit
	count  int
	before bool
	row    int
	atRow  bool
}

// NewPut creates a put command. before selects P over p.
func NewPut(count int, before bool) *PutCommand {
	return &PutCommand{count: count, before: before}
}

// NewPutLines creates a command putting the register below line row, or
// above the first line when row is -1. Used by :put style ex commands.
func NewPutLines(row int) *PutCommand {
	return &PutCommand{count: 1, row: row, atRow: true}
}

func (c *PutCommand) Execute(e *Editor) error {
	c.begin(e)
	reg := e.register
	if reg.Text == "" {
		return execErr("put", fmt.Errorf("E353: nothing in register"))
	}
	text, err := repeatText(reg.Text, atLeastOne(c.count))
	if err != nil {
		return execErr("put", err)
	}

	if reg.Linewise {
		if !strings.HasSuffix(text, "\n") {
			text += "\n"
		}
		row := e.cursor.Row
		switch {
		case c.atRow:
			row = c.row + 1
		case e.buf.Len() == 0:
			row = 0
		case !c.before:
			row++
		}
		at := Position{Row: row}
		if _, err := c.insert(e, at, text); err != nil {
			c.rollback(e)
			return execErr("put", err)
		}
		c.finish(e, Position{Row: row, Col: firstNonBlank(e.lineRunes(row))})
		return nil
	}

	if err := c.ensureLine(e); err != nil {
		return execErr("put", err)
	}
	at := e.cursor
	if !c.before && e.buf.LineLen(at.Row) > 0 {
		at.Col++
	}
	end, err := c.insert(e, at, text)
	if err != nil {
		c.rollback(e)
		return execErr("put", err)
	}
	cursor := at
	if end.Row == at.Row {
		cursor = Position{Row: end.Row, Col: end.Col - 1}
	}
	c.finish(e, cursor)
	return nil
}

// ReplaceCharCommand replaces count characters with the same character (r)
type ReplaceCharCommand struct {
	editBase
	edit
	count int
	arg   rune
}

func (c *ReplaceCharCommand) Execute(e *Editor) error {
	c.begin(e)
	n := atLeastOne(c.count)
	start := e.cursor
	if start.Col+n > e.buf.LineLen(start.Row) {
		return ErrMotionFailed
	}
	end := Position{Row: start.Row, Col: start.Col + n}
	if err := c.replace(e, start, end, strings.Repeat(string(c.arg), n)); err != nil {
		c.rollback(e)
		return execErr("replace", err)
	}
	c.finish(e, Position{Row: start.Row, Col: end.Col - 1})
	return nil
}

// ToggleCaseCommand switches the case of count characters and moves past
// them (~)
type ToggleCaseCommand struct {
	editBase
	edit
	count int
}

func (c *ToggleCaseCommand) Execute(e *Editor) error {
	c.begin(e)
	line := e.lineRunes(e.cursor.Row)
	if len(line) == 0 {
		return ErrMotionFailed
	}
	start := e.cursor
	end := start.Col + atLeastOne(c.count)
	if end > len(line) {
		end = len(line)
	}
	toggled := make([]rune, 0, end-start.Col)
	for _, r := range line[start.Col:end] {
		switch {
		case unicode.IsUpper(r):
			r = unicode.ToLower(r)
		case unicode.IsLower(r):
			r = unicode.ToUpper(r)
		}
		toggled = append(toggled, r)
	}
	if err := c.replace(e, start, Position{Row: start.Row, Col: end}, string(toggled)); err != nil {
		c.rollback(e)
		return execErr("toggle case", err)
	}
	c.finish(e, Position{Row: start.Row, Col: end})
	return nil
}

// JoinCommand joins lines, putting one space between them (J, :j)
type JoinCommand struct {
	editBase
	edit
	row   int
	lines int
	exact bool
}

// NewJoin creates a command joining lines lines starting at row. Fewer
// than two lines join two.
func NewJoin(row, lines int) *JoinCommand {
	return &JoinCommand{row: row, lines: lines, exact: true}
}

func (c *JoinCommand) Execute(e *Editor) error {
	c.begin(e)
	row := e.cursor.Row
	if c.exact {
		row = c.row
	}
	joins := c.lines - 1
	if joins < 1 {
		joins = 1
	}
	if row+1 >= e.buf.Len() {
		return ErrMotionFailed
	}
	if row+joins >= e.buf.Len() {
		joins = e.buf.Len() - 1 - row
	}
	var cursor Position
	for i := 0; i < joins; i++ {
		line := e.lineRunes(row)
		next := e.lineRunes(row + 1)
		lead := len(indentOf(next))
		sep := " "
		switch {
		case lead == len(next):
			sep = ""
		case len(line) == 0:
			sep = ""
		case unicode.IsSpace(line[len(line)-1]):
			sep = ""
		case next[lead] == ')':
			sep = ""
		}
		start := Position{Row: row, Col: len(line)}
		if err := c.replace(e, start, Position{Row: row + 1, Col: lead}, sep); err != nil {
			c.rollback(e)
			return execErr("join", err)
		}
		cursor = start
		if sep == "" && cursor.Col > 0 {
			cursor.Col--
		}
	}
	c.finish(e, cursor)
	return nil
}

// ShiftCommand shifts lines left or right by shiftwidth (> <, :> :<)
type ShiftCommand struct {
	editBase
	edit
	left   bool
	times  int
	count  int
	jump   JumpDescriptor
	region *Region
}

// NewShift creates the shift operator for jump
func NewShift(left bool, count int, jump JumpDescriptor) *ShiftCommand {
	return &ShiftCommand{left: left, times: 1, count: count, jump: jump}
}

// NewShiftLines creates a command shifting lines [start, end) times
// shiftwidths
func NewShiftLines(start, end int, left bool, times int) *ShiftCommand {
	r := LineRegion(start, end)
	return &ShiftCommand{left: left, times: times, region: &r}
}

func (c *ShiftCommand) Execute(e *Editor) error {
	c.begin(e)
	r := Region{}
	if c.region != nil {
		r = *c.region
	} else {
		op := Rune('>')
		if c.left {
			op = Rune('<')
		}
		var err error
		if r, err = ResolveRegion(e, op, c.count, c.jump); err != nil {
			return err
		}
	}
	last := r.End.Row
	if !r.Linewise {
		last = r.End.Row + 1
	}
	sw := e.options.ShiftWidth * atLeastOne(c.times)
	for row := r.Start.Row; row < last && row < e.buf.Len(); row++ {
		line := e.lineRunes(row)
		if len(line) == 0 {
			continue
		}
		indent := indentOf(line)
		width := e.indentWidth(indent)
		if c.left {
			width -= sw
			if width < 0 {
				width = 0
			}
		} else {
			width += sw
		}
		shifted := strings.Repeat(" ", width)
		if shifted == indent {
			continue
		}
		if err := c.replace(e, Position{Row: row}, Position{Row: row, Col: len([]rune(indent))}, shifted); err != nil {
			c.rollback(e)
			return execErr("shift", err)
		}
	}
	if n := last - r.Start.Row; n > 2 {
		e.Status("%d lines shifted", n)
	}
	c.finish(e, Position{Row: r.Start.Row, Col: firstNonBlank(e.lineRunes(r.Start.Row))})
	return nil
}

// indentWidth is the display width of leading white space
func (e *Editor) indentWidth(indent string) int {
	ts := e.options.TabStop
	if ts <= 0 {
		ts = 8
	}
	w := 0
	for _, r := range indent {
		if r == '\t' {
			w += ts - w%ts
		} else {
			w++
		}
	}
	return w
}
