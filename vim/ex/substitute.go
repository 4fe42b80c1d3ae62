package ex

import (
	"fmt"
	"strings"

	"github.com/samber/mo"

	"github.com/slzatz/vix/vim/govim"
)

// substituteCommand is :s. A repeat takes pattern and replacement from the
// last substitute (:s without a pattern, :&); keepFlags also reuses its
// flags (:&&).
type substituteCommand struct {
	rng         mo.Option[LineRange]
	pattern     string
	replacement string
	flags       string
	count       int
	repeat      bool
	keepFlags   bool
}

func (c substituteCommand) run(e *govim.Editor, comp *govim.Composite) error {
	pattern, replacement, flags := c.pattern, c.replacement, c.flags
	if c.repeat {
		last := e.LastSubstitute()
		if last == nil {
			return govim.ErrNoPattern
		}
		pattern, replacement = last.Pattern, last.Replacement
		if c.keepFlags {
			flags = last.Flags + flags
		}
	} else {
		var err error
		if pattern, err = e.ResolvePattern(pattern); err != nil {
			return err
		}
	}
	e.SetLastSubstitute(govim.SubstituteSpec{Pattern: pattern, Replacement: replacement, Flags: flags})
	e.SetLastSearch(pattern, true)

	ignoreCase := e.Options().IgnoreCase
	for _, f := range flags {
		switch f {
		case 'i':
			ignoreCase = true
		case 'I':
			ignoreCase = false
		}
	}
	re, err := govim.CompilePattern(pattern, ignoreCase)
	if err != nil {
		return err
	}
	repl := expandReplacement(replacement)
	n := 1
	if strings.ContainsRune(flags, 'g') {
		n = -1
	}

	start, end, err := resolveLines(e, c.rng, currentLine)
	if err != nil {
		return err
	}
	start, end = withCount(e, start, end, c.count)

	lastRow, lines := -1, 0
	for row := start; row < end; row++ {
		ok, err := e.MatchLine(re, row)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		out, err := re.Replace(e.Buffer().Line(row), repl, -1, n)
		if err != nil {
			return fmt.Errorf("substitute: %w", err)
		}
		if err := comp.Run(e, govim.NewSetLine(row, out)); err != nil {
			return err
		}
		added := strings.Count(out, "\n")
		row += added
		end += added
		lastRow = row
		lines++
	}
	if lastRow < 0 {
		return fmt.Errorf("E486: pattern not found: %s", pattern)
	}
	moveTo(e, lastRow)
	if lines > 2 {
		e.Status("%d lines changed", lines)
	}
	return nil
}

// expandReplacement converts a vi replacement string to regexp2 syntax:
// & and \0 are the whole match, \1 to \9 groups, \r and \n split the line
func expandReplacement(s string) string {
	var sb strings.Builder
	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case r == '$':
			sb.WriteString("$$")
		case r == '&':
			sb.WriteString("$0")
		case r == '\\' && i+1 < len(runes):
			i++
			next := runes[i]
			switch {
			case next >= '0' && next <= '9':
				fmt.Fprintf(&sb, "${%c}", next)
			case next == 'r' || next == 'n':
				sb.WriteByte('\n')
			case next == 't':
				sb.WriteByte('\t')
			case next == '$':
				sb.WriteString("$$")
			default:
				sb.WriteRune(next)
			}
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
