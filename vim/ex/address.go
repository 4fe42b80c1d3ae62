package ex

import (
	"fmt"

	"github.com/samber/mo"

	"github.com/slzatz/vix/vim/govim"
)

// SimpleKind is the base of a line address
type SimpleKind int

const (
	LineNumber SimpleKind = iota
	CurrentLine
	FirstLine
	LastLine
	AllLines
	PatternLine
)

// Simple is an address without offsets: a line number, one of the symbolic
// lines or a pattern searched forward from the current line
type Simple struct {
	Kind    SimpleKind
	Line    int
	Pattern string
}

// Address is a simple address plus the sum of its +/- offsets. A relative
// address has no simple part and counts from the current line.
type Address struct {
	Simple   Simple
	Offset   int
	Relative bool
}

// LineRange is one or two addresses
type LineRange struct {
	Start Address
	End   mo.Option[Address]
}

var errInvalidRange = fmt.Errorf("E16: invalid range")

// Resolve returns the 1-based line number the address refers to in the
// current buffer. 0 means the position before the first line.
func (a Address) Resolve(e *govim.Editor) (int, error) {
	n := e.Buffer().Len()
	current := 0
	if n > 0 {
		current = e.Cursor().Row + 1
	}
	line := current
	if !a.Relative {
		switch a.Simple.Kind {
		case LineNumber:
			line = a.Simple.Line
		case FirstLine:
			line = min(1, n)
		case LastLine, AllLines:
			line = n
		case PatternLine:
			row, err := findLine(e, a.Simple.Pattern)
			if err != nil {
				return 0, err
			}
			line = row + 1
		}
	}
	line += a.Offset
	if line < 0 || line > n {
		return 0, errInvalidRange
	}
	return line, nil
}

// findLine searches forward from the line after the cursor for pattern,
// wrapping around the buffer
func findLine(e *govim.Editor, pattern string) (int, error) {
	pattern, err := e.ResolvePattern(pattern)
	if err != nil {
		return 0, err
	}
	e.SetLastSearch(pattern, true)
	if e.Buffer().Len() == 0 {
		return 0, fmt.Errorf("E486: pattern not found: %s", pattern)
	}
	re, err := govim.CompilePattern(pattern, e.Options().IgnoreCase)
	if err != nil {
		return 0, err
	}
	n := e.Buffer().Len()
	cur := e.Cursor().Row
	for i := 1; i <= n; i++ {
		row := (cur + i) % n
		ok, err := e.MatchLine(re, row)
		if err != nil {
			return 0, err
		}
		if ok {
			return row, nil
		}
	}
	return 0, fmt.Errorf("E486: pattern not found: %s", pattern)
}

// Resolve returns the first and last line numbers of the range, in order.
// A lone % covers the whole buffer.
func (r LineRange) Resolve(e *govim.Editor) (int, int, error) {
	if r.Start.Simple.Kind == AllLines && !r.Start.Relative && r.End.IsAbsent() {
		n := e.Buffer().Len()
		return min(1, n), n, nil
	}
	first, err := r.Start.Resolve(e)
	if err != nil {
		return 0, 0, err
	}
	if r.Start.Simple.Kind == AllLines && !r.Start.Relative {
		first = min(1, e.Buffer().Len())
	}
	last := first
	if end, ok := r.End.Get(); ok {
		if last, err = end.Resolve(e); err != nil {
			return 0, 0, err
		}
	}
	if first > last {
		first, last = last, first
	}
	return first, last, nil
}

// resolveLines resolves an optional range to 0-based rows [start, end),
// using def when the range was omitted. The range must name existing lines.
func resolveLines(e *govim.Editor, rng mo.Option[LineRange], def func(*govim.Editor) (int, int)) (int, int, error) {
	var first, last int
	if r, ok := rng.Get(); ok {
		var err error
		if first, last, err = r.Resolve(e); err != nil {
			return 0, 0, err
		}
	} else {
		first, last = def(e)
	}
	if first == 0 && e.Buffer().Len() > 0 {
		first, last = 1, max(last, 1)
	}
	if first < 1 || last > e.Buffer().Len() {
		return 0, 0, errInvalidRange
	}
	return first - 1, last, nil
}

func currentLine(e *govim.Editor) (int, int) {
	if e.Buffer().Len() == 0 {
		return 0, 0
	}
	row := e.Cursor().Row + 1
	return row, row
}

func wholeBuffer(e *govim.Editor) (int, int) {
	n := e.Buffer().Len()
	return min(1, n), n
}

func lastLine(e *govim.Editor) (int, int) {
	n := e.Buffer().Len()
	return n, n
}

func (a Address) String() string {
	s := ""
	if !a.Relative {
		switch a.Simple.Kind {
		case LineNumber:
			s = fmt.Sprint(a.Simple.Line)
		case CurrentLine:
			s = "."
		case FirstLine:
			s = "^"
		case LastLine:
			s = "$"
		case AllLines:
			s = "%"
		case PatternLine:
			s = "/" + a.Simple.Pattern + "/"
		}
	}
	if a.Offset != 0 {
		s += fmt.Sprintf("%+d", a.Offset)
	}
	return s
}
