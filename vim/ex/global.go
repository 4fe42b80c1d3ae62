package ex

import (
	"fmt"

	"github.com/samber/mo"

	"github.com/slzatz/vix/core/log"
	"github.com/slzatz/vix/vim/govim"
)

// globalCommand runs a sub-command on every line matching (or, inverted,
// not matching) a pattern. Matching lines are marked first and visited in
// order, skipping lines an earlier sub-command deleted. The sub-command
// tokens are parsed again for each line so that its addresses resolve
// against that line.
type globalCommand struct {
	rng     mo.Option[LineRange]
	pattern string
	invert  bool
	sub     []Token
}

func (c globalCommand) run(e *govim.Editor, comp *govim.Composite) error {
	start, end, err := resolveLines(e, c.rng, wholeBuffer)
	if err != nil {
		return err
	}
	pattern, err := e.ResolvePattern(c.pattern)
	if err != nil {
		return err
	}
	e.SetLastSearch(pattern, true)
	re, err := govim.CompilePattern(pattern, e.Options().IgnoreCase)
	if err != nil {
		return err
	}

	// Matching lines are collected before anything changes
	var rows []int
	for row := start; row < end; row++ {
		ok, err := e.MatchLine(re, row)
		if err != nil {
			return err
		}
		if ok != c.invert {
			rows = append(rows, row)
		}
	}
	if len(rows) == 0 {
		if c.invert {
			return fmt.Errorf("pattern found in every line: %s", pattern)
		}
		return fmt.Errorf("E486: pattern not found: %s", pattern)
	}

	marks := e.Buffer().MarkLines(rows)
	defer e.Buffer().Unmark(marks)
	for i := range marks.Len() {
		target := marks.Row(i)
		if target < 0 {
			continue
		}
		e.SetCursor(govim.Position{Row: target})
		cmd, err := c.subCommand()
		if err != nil {
			return err
		}
		if err := cmd.run(e, comp); err != nil {
			return err
		}
	}
	log.Debug("global", "pattern", pattern, "lines", len(rows), "invert", c.invert)
	return nil
}

func (c globalCommand) subCommand() (runner, error) {
	if len(c.sub) <= 1 {
		return printCommand{}, nil
	}
	return parseTokens(c.sub)
}
