package ex

import (
	"errors"
	"fmt"
	"strings"

	"github.com/samber/mo"

	"github.com/slzatz/vix/core/log"
	"github.com/slzatz/vix/vim/govim"
)

// runner is a parsed ex command. It runs inside a composite so that one
// command line is one undo step.
type runner interface {
	run(e *govim.Editor, c *govim.Composite) error
}

// LineCommand is a parsed command line. Its changes go on the history as a
// single entry when it runs; the line command itself is not kept.
type LineCommand struct {
	cmd  runner
	text string
}

func (c *LineCommand) Execute(e *govim.Editor) error {
	cursor := e.Cursor()
	comp := govim.NewComposite(e)
	if err := c.cmd.run(e, comp); err != nil {
		if comp.Len() > 0 {
			if undoErr := comp.Undo(e); undoErr != nil {
				log.Error("rollback failed", "command", c.text, "error", undoErr)
			}
		}
		e.SetCursor(cursor)
		log.Debug("ex command failed", "command", c.text, "error", err)
		return err
	}
	comp.Close(e)
	if comp.Changed() {
		e.History().Push(comp)
	}
	log.Debug("ex command", "command", c.text)
	return nil
}

func (c *LineCommand) Undo(*govim.Editor) error                  { return nil }
func (c *LineCommand) Redo(*govim.Editor) (govim.Command, error) { return nil, nil }
func (c *LineCommand) IsReusable() bool                          { return false }
func (c *LineCommand) IsModeful() bool                           { return false }
func (c *LineCommand) IsUndoable() bool                          { return false }

// String returns the command line the command was parsed from
func (c *LineCommand) String() string { return c.text }

type nopCommand struct{}

func (nopCommand) run(*govim.Editor, *govim.Composite) error { return nil }

// runCommand adapts a govim command
type runCommand struct{ cmd govim.Command }

func (c runCommand) run(e *govim.Editor, comp *govim.Composite) error {
	return comp.Run(e, c.cmd)
}

func moveTo(e *govim.Editor, row int) {
	if row >= e.Buffer().Len() {
		row = e.Buffer().Len() - 1
	}
	if row < 0 {
		row = 0
	}
	e.SetCursor(govim.Position{Row: row, Col: e.FirstNonBlank(row)})
}

// withCount narrows [start, end) to count lines starting at the last line
// of the range
func withCount(e *govim.Editor, start, end, count int) (int, int) {
	if count <= 0 {
		return start, end
	}
	start = end - 1
	return start, min(start+count, e.Buffer().Len())
}

type gotoCommand struct{ addr Address }

func (c gotoCommand) run(e *govim.Editor, _ *govim.Composite) error {
	n := e.Buffer().Len()
	var line int
	if c.addr.Simple.Kind == LineNumber && !c.addr.Relative {
		line = min(c.addr.Simple.Line+c.addr.Offset, n)
	} else {
		var err error
		if line, err = c.addr.Resolve(e); err != nil {
			return err
		}
	}
	moveTo(e, line-1)
	return nil
}

type printCommand struct {
	rng    mo.Option[LineRange]
	number bool
}

func (c printCommand) run(e *govim.Editor, _ *govim.Composite) error {
	start, end, err := resolveLines(e, c.rng, currentLine)
	if err != nil {
		return err
	}
	out := make([]string, 0, end-start)
	for row := start; row < end; row++ {
		line := e.Buffer().Line(row)
		if c.number {
			line = fmt.Sprintf("%3d %s", row+1, line)
		}
		out = append(out, line)
	}
	e.Presenter().Echo(out...)
	moveTo(e, end-1)
	return nil
}

type lineNumberCommand struct{ rng mo.Option[LineRange] }

func (c lineNumberCommand) run(e *govim.Editor, _ *govim.Composite) error {
	last := e.Buffer().Len()
	if r, ok := c.rng.Get(); ok {
		var err error
		if _, last, err = r.Resolve(e); err != nil {
			return err
		}
	}
	e.Presenter().Echo(fmt.Sprint(last))
	return nil
}

type deleteCommand struct {
	rng   mo.Option[LineRange]
	count int
}

func (c deleteCommand) run(e *govim.Editor, comp *govim.Composite) error {
	start, end, err := resolveLines(e, c.rng, currentLine)
	if err != nil {
		return err
	}
	start, end = withCount(e, start, end, c.count)
	return comp.Run(e, govim.NewDeleteLines(start, end))
}

type yankCommand struct {
	rng   mo.Option[LineRange]
	count int
}

func (c yankCommand) run(e *govim.Editor, comp *govim.Composite) error {
	start, end, err := resolveLines(e, c.rng, currentLine)
	if err != nil {
		return err
	}
	start, end = withCount(e, start, end, c.count)
	return comp.Run(e, govim.NewYankLines(start, end))
}

// resolveTarget resolves the line after which text goes; 0 puts it above
// the first line
func resolveTarget(e *govim.Editor, rng mo.Option[LineRange]) (int, error) {
	r, ok := rng.Get()
	if !ok {
		first, _ := currentLine(e)
		return first, nil
	}
	_, last, err := r.Resolve(e)
	return last, err
}

type putCommand struct{ rng mo.Option[LineRange] }

func (c putCommand) run(e *govim.Editor, comp *govim.Composite) error {
	line, err := resolveTarget(e, c.rng)
	if err != nil {
		return err
	}
	return comp.Run(e, govim.NewPutLines(line-1))
}

var errMoveIntoItself = errors.New("E134: cannot move a range of lines into itself")

type moveCommand struct {
	rng  mo.Option[LineRange]
	dest Address
	copy bool
}

func (c moveCommand) run(e *govim.Editor, comp *govim.Composite) error {
	start, end, err := resolveLines(e, c.rng, currentLine)
	if err != nil {
		return err
	}
	line, err := c.dest.Resolve(e)
	if err != nil {
		return err
	}
	dest := line - 1
	lines := e.Buffer().Lines()[start:end]
	n := end - start

	if c.copy {
		return comp.Run(e, govim.NewInsertLines(dest, lines))
	}
	switch {
	case dest >= start && dest < end-1:
		return errMoveIntoItself
	case dest == end-1 || dest == start-1:
		moveTo(e, end-1)
		return nil
	case dest >= end:
		if err := comp.Run(e, govim.NewInsertLines(dest, lines)); err != nil {
			return err
		}
		if err := comp.Run(e, govim.NewRemoveLines(start, end)); err != nil {
			return err
		}
		moveTo(e, dest)
	default:
		if err := comp.Run(e, govim.NewRemoveLines(start, end)); err != nil {
			return err
		}
		if err := comp.Run(e, govim.NewInsertLines(dest, lines)); err != nil {
			return err
		}
		moveTo(e, dest+n)
	}
	if n > 2 {
		e.Status("%d lines moved", n)
	}
	return nil
}

type joinCommand struct {
	rng   mo.Option[LineRange]
	count int
}

func (c joinCommand) run(e *govim.Editor, comp *govim.Composite) error {
	start, end, err := resolveLines(e, c.rng, currentLine)
	if err != nil {
		return err
	}
	lines := end - start
	if c.count > 0 {
		start, lines = end-1, c.count
	}
	return comp.Run(e, govim.NewJoin(start, lines))
}

type shiftCommand struct {
	rng   mo.Option[LineRange]
	left  bool
	times int
	count int
}

func (c shiftCommand) run(e *govim.Editor, comp *govim.Composite) error {
	start, end, err := resolveLines(e, c.rng, currentLine)
	if err != nil {
		return err
	}
	start, end = withCount(e, start, end, c.count)
	return comp.Run(e, govim.NewShiftLines(start, end, c.left, c.times))
}

type readCommand struct {
	rng  mo.Option[LineRange]
	name string
}

func (c readCommand) run(e *govim.Editor, comp *govim.Composite) error {
	line, err := resolveTarget(e, c.rng)
	if err != nil {
		return err
	}
	lines, err := e.ReadLines(c.name)
	if err != nil {
		return err
	}
	if err := comp.Run(e, govim.NewInsertLines(line-1, lines)); err != nil {
		return err
	}
	e.Status("%dL read", len(lines))
	return nil
}

type writeCommand struct {
	rng  mo.Option[LineRange]
	name string
}

func (c writeCommand) run(e *govim.Editor, _ *govim.Composite) error {
	if c.rng.IsAbsent() {
		return e.Write(c.name)
	}
	start, end, err := resolveLines(e, c.rng, wholeBuffer)
	if err != nil {
		return err
	}
	return e.WriteLines(c.name, start, end)
}

type editCommand struct {
	name  string
	force bool
}

func (c editCommand) run(e *govim.Editor, _ *govim.Composite) error {
	return e.Edit(c.name, c.force)
}

type helpCommand struct{ topic string }

func (c helpCommand) run(e *govim.Editor, _ *govim.Composite) error {
	topic := strings.TrimPrefix(c.topic, ":")
	if h := e.Helper(); h != nil {
		lines, err := h.Help(topic)
		if err != nil {
			return err
		}
		e.Presenter().Echo(lines...)
		return nil
	}
	text, ok := Help(topic)
	if !ok {
		text, ok = govim.NormalHelp(topic)
	}
	if !ok {
		return fmt.Errorf("E149: sorry, no help for %s", topic)
	}
	e.Presenter().Echo(strings.Split(strings.TrimRight(text, "\n"), "\n")...)
	return nil
}
