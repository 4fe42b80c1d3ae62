// Package wrap maps buffer positions to screen cells. Lines wider than the
// window wrap onto following screen rows; wide characters take two cells
// and tabs expand to the next tab stop.
package wrap

import (
	"strings"
	"unicode"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"

	"github.com/slzatz/vix/vim/govim"
)

// Mapper lays out buffer lines in a window of a given width. A width of 0
// disables wrapping.
type Mapper struct {
	width   int
	tabStop int
}

// New creates a mapper for a window width cells wide
func New(width, tabStop int) *Mapper {
	m := &Mapper{}
	m.SetWidth(width)
	m.SetTabStop(tabStop)
	return m
}

func (m *Mapper) SetWidth(width int) { m.width = max(width, 0) }

func (m *Mapper) Width() int { return m.width }

func (m *Mapper) SetTabStop(ts int) {
	if ts < 1 {
		ts = 8
	}
	m.tabStop = ts
}

// cell is where one rune column is drawn, relative to the line's first
// screen row
type cell struct {
	row, col, width int
}

// layout places every rune column of line, plus the end of line position.
// Runes after the first of a grapheme cluster share its cell with width 0.
func (m *Mapper) layout(line string) []cell {
	cells := make([]cell, 0, len(line)+1)
	row, col := 0, 0
	g := uniseg.NewGraphemes(line)
	for g.Next() {
		runes := g.Runes()
		w := m.clusterWidth(g.Str(), col)
		if m.width > 0 && col > 0 && col+w > m.width {
			row, col = row+1, 0
			if runes[0] == '\t' {
				w = m.clusterWidth("\t", 0)
			}
		}
		cells = append(cells, cell{row: row, col: col, width: w})
		for range runes[1:] {
			cells = append(cells, cell{row: row, col: col})
		}
		col += w
	}
	if m.width > 0 && col >= m.width {
		row, col = row+1, 0
	}
	return append(cells, cell{row: row, col: col})
}

func (m *Mapper) clusterWidth(cluster string, col int) int {
	if cluster == "\t" {
		w := m.tabStop - col%m.tabStop
		if m.width > 0 {
			w = min(w, m.width-col%m.width)
		}
		return w
	}
	w := runewidth.StringWidth(cluster)
	if w == 0 && cluster != "" {
		// control characters are shown as a single cell
		w = 1
	}
	return w
}

// Height returns the number of screen rows line takes
func (m *Mapper) Height(line string) int {
	cells := m.layout(line)
	last := cells[len(cells)-1]
	if len(cells) > 1 && last.col == 0 && last.row > 0 {
		return last.row
	}
	return last.row + 1
}

// ScreenPosition returns the screen row and column of pos when the window
// starts at buffer row top. Rows above top are negative.
func (m *Mapper) ScreenPosition(lines govim.LineSource, pos govim.Position, top int) (int, int) {
	row := 0
	if pos.Row >= top {
		for r := top; r < pos.Row; r++ {
			row += m.Height(lines.Line(r))
		}
	} else {
		for r := pos.Row; r < top; r++ {
			row -= m.Height(lines.Line(r))
		}
	}
	cells := m.layout(lines.Line(pos.Row))
	c := cells[min(max(pos.Col, 0), len(cells)-1)]
	return row + c.row, c.col
}

// BufferPosition maps a screen cell back to the buffer position drawn
// there. A cell past the end of a line maps to the line's end.
func (m *Mapper) BufferPosition(lines govim.LineSource, top, row, col int) govim.Position {
	n := lines.Len()
	if n == 0 {
		return govim.Position{}
	}
	r := max(top, 0)
	for ; r < n-1; r++ {
		h := m.Height(lines.Line(r))
		if row < h {
			break
		}
		row -= h
	}
	cells := m.layout(lines.Line(r))
	last := cells[len(cells)-1]
	if row > last.row {
		return govim.Position{Row: r, Col: len(cells) - 1}
	}
	found := -1
	for i, c := range cells[:len(cells)-1] {
		if c.row != row || c.width == 0 {
			continue
		}
		found = i
		if col < c.col+c.width {
			break
		}
	}
	if found < 0 {
		return govim.Position{Row: r, Col: len(cells) - 1}
	}
	return govim.Position{Row: r, Col: found}
}

// Render returns the screen rows of line with tabs expanded
func (m *Mapper) Render(line string) []string {
	cells := m.layout(line)
	rows := make([]strings.Builder, m.Height(line))
	runes := []rune(line)
	for i, r := range runes {
		c := cells[i]
		sb := &rows[c.row]
		switch {
		case r == '\t':
			sb.WriteString(strings.Repeat(" ", c.width))
		case unicode.IsControl(r):
			sb.WriteRune('?')
		default:
			sb.WriteRune(r)
		}
	}
	out := make([]string, len(rows))
	for i := range rows {
		out[i] = rows[i].String()
	}
	return out
}
