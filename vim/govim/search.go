package govim

import (
	"fmt"
	"strings"
	"time"

	"github.com/dlclark/regexp2"
)

// MatchTimeout bounds a single match attempt of a pathological pattern.
// A match that runs out of time is an error, not a miss.
var MatchTimeout = 2 * time.Second

// CompilePattern compiles a search pattern. Patterns use regexp2 syntax;
// an escaped delimiter ("\/" or "\?") stands for the delimiter itself.
func CompilePattern(pattern string, ignoreCase bool) (*regexp2.Regexp, error) {
	pattern = strings.ReplaceAll(pattern, `\/`, "/")
	pattern = strings.ReplaceAll(pattern, `\?`, `\x3f`)
	opts := regexp2.None
	if ignoreCase {
		opts |= regexp2.IgnoreCase
	}
	re, err := regexp2.Compile(pattern, opts)
	if err != nil {
		return nil, fmt.Errorf("E486: bad pattern %q: %w", pattern, err)
	}
	re.MatchTimeout = MatchTimeout
	return re, nil
}

// ResolvePattern returns pattern, or the last search pattern when it is
// empty
func (e *Editor) ResolvePattern(pattern string) (string, error) {
	if pattern != "" {
		return pattern, nil
	}
	if e.lastSearch == "" {
		return "", ErrNoPattern
	}
	return e.lastSearch, nil
}

// MatchLine reports whether re matches somewhere on line row
func (e *Editor) MatchLine(re *regexp2.Regexp, row int) (bool, error) {
	ok, err := re.MatchRunes(e.lineRunes(row))
	if err != nil {
		return false, fmt.Errorf("line %d: %w", row+1, err)
	}
	return ok, nil
}

// FindPattern searches for pattern starting next to from, in the given
// direction, wrapping around the buffer when wrapscan is set. The match
// under from itself is skipped.
func (e *Editor) FindPattern(pattern string, from Position, forward bool) (Position, error) {
	re, err := CompilePattern(pattern, e.options.IgnoreCase)
	if err != nil {
		return from, err
	}
	n := e.buf.Len()
	if n == 0 {
		return from, ErrPatternNotFound
	}
	if forward {
		for i := 0; i <= n; i++ {
			row := from.Row + i
			if row >= n {
				if !e.options.WrapScan {
					break
				}
				row -= n
			}
			start := 0
			if i == 0 {
				start = from.Col + 1
			}
			col, ok, err := firstMatchFrom(re, e.lineRunes(row), start)
			if err != nil {
				return from, err
			}
			if ok {
				if i == n && col > from.Col {
					break
				}
				return Position{Row: row, Col: col}, nil
			}
		}
		return from, ErrPatternNotFound
	}
	for i := 0; i <= n; i++ {
		row := from.Row - i
		if row < 0 {
			if !e.options.WrapScan {
				break
			}
			row += n
		}
		limit := -1
		if i == 0 {
			limit = from.Col
		}
		col, ok, err := lastMatchBefore(re, e.lineRunes(row), limit)
		if err != nil {
			return from, err
		}
		if ok {
			if i == n && col < from.Col {
				break
			}
			return Position{Row: row, Col: col}, nil
		}
	}
	return from, ErrPatternNotFound
}

func firstMatchFrom(re *regexp2.Regexp, line []rune, start int) (int, bool, error) {
	if start > len(line) {
		return 0, false, nil
	}
	m, err := re.FindRunesMatchStartingAt(line, start)
	if err != nil || m == nil {
		return 0, false, err
	}
	return m.Index, true, nil
}

// lastMatchBefore returns the last match starting before limit (-1 means no
// limit)
func lastMatchBefore(re *regexp2.Regexp, line []rune, limit int) (int, bool, error) {
	m, err := re.FindRunesMatch(line)
	found, col := false, 0
	for err == nil && m != nil {
		if limit >= 0 && m.Index >= limit {
			break
		}
		found, col = true, m.Index
		m, err = re.FindNextMatch(m)
	}
	return col, found, err
}

// Search moves to the next match of pattern and remembers it for n and N
func (e *Editor) Search(pattern string, forward bool) error {
	pattern, err := e.ResolvePattern(pattern)
	if err != nil {
		return err
	}
	e.SetLastSearch(pattern, forward)
	pos, err := e.FindPattern(pattern, e.cursor, forward)
	if err != nil {
		return err
	}
	e.SetCursor(pos)
	return nil
}

func searchRepeat(e *Editor, count int, reverse bool) bool {
	if e.lastSearch == "" {
		return false
	}
	forward := e.lastSearchForward != reverse
	pos := e.cursor
	for i := 0; i < count; i++ {
		next, err := e.FindPattern(e.lastSearch, pos, forward)
		if err != nil {
			return false
		}
		pos = next
	}
	e.cursor = pos
	return true
}

func searchNext(e *Editor, count int, _ rune) bool { return searchRepeat(e, count, false) }
func searchPrev(e *Editor, count int, _ rune) bool { return searchRepeat(e, count, true) }
