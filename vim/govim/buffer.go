package govim

import (
	"fmt"
	"strings"
)

// Buffer is the ordered sequence of lines being edited. Lines are stored as
// rune slices so columns are character offsets. The flat text view of a
// buffer is every line followed by a newline; {Len(), 0} is the end of text.
type Buffer struct {
	lines    [][]rune
	name     string
	modified bool
	lastTick int
	marks    []*LineMarks
}

// LineMarks follows a set of lines through edits. A mark whose line was
// deleted reads -1.
type LineMarks struct {
	rows []int
}

// Len returns the number of marks
func (m *LineMarks) Len() int { return len(m.rows) }

// Row returns the current row of mark i, or -1 when its line is gone
func (m *LineMarks) Row(i int) int { return m.rows[i] }

// NewBuffer creates a buffer holding lines
func NewBuffer(lines ...string) *Buffer {
	b := &Buffer{}
	b.setLines(lines)
	return b
}

func (b *Buffer) setLines(lines []string) {
	b.adjustMarks(0, len(b.lines), 0)
	b.lines = make([][]rune, len(lines))
	for i, line := range lines {
		b.lines[i] = []rune(line)
	}
}

// Name returns the file name associated with the buffer
func (b *Buffer) Name() string { return b.name }

// SetName sets the file name associated with the buffer
func (b *Buffer) SetName(name string) { b.name = name }

// Len returns the number of lines
func (b *Buffer) Len() int { return len(b.lines) }

// Line returns line row, or "" when row is out of range
func (b *Buffer) Line(row int) string {
	if row < 0 || row >= len(b.lines) {
		return ""
	}
	return string(b.lines[row])
}

// LineLen returns the number of characters on line row
func (b *Buffer) LineLen(row int) int {
	if row < 0 || row >= len(b.lines) {
		return 0
	}
	return len(b.lines[row])
}

// RuneAt returns the character at pos and whether there is one
func (b *Buffer) RuneAt(pos Position) (rune, bool) {
	if pos.Row < 0 || pos.Row >= len(b.lines) || pos.Col < 0 || pos.Col >= len(b.lines[pos.Row]) {
		return 0, false
	}
	return b.lines[pos.Row][pos.Col], true
}

// Lines returns a copy of all lines
func (b *Buffer) Lines() []string {
	result := make([]string, len(b.lines))
	for i, line := range b.lines {
		result[i] = string(line)
	}
	return result
}

// IsModified returns whether the buffer has been modified since it was
// loaded or written
func (b *Buffer) IsModified() bool { return b.modified }

// SetModified sets or clears the modified flag
func (b *Buffer) SetModified(modified bool) { b.modified = modified }

// LastChangedTick returns a counter incremented by every mutation
func (b *Buffer) LastChangedTick() int { return b.lastTick }

// Reload replaces the whole content; only used by explicit (re)loads
func (b *Buffer) Reload(lines []string) {
	b.setLines(lines)
	b.modified = false
	b.lastTick++
}

func (b *Buffer) markModified() {
	b.modified = true
	b.lastTick++
}

// MarkLines starts tracking rows. Call Unmark when done.
func (b *Buffer) MarkLines(rows []int) *LineMarks {
	m := &LineMarks{rows: append([]int(nil), rows...)}
	b.marks = append(b.marks, m)
	return m
}

// Unmark stops tracking m
func (b *Buffer) Unmark(m *LineMarks) {
	for i, other := range b.marks {
		if other == m {
			b.marks = append(b.marks[:i], b.marks[i+1:]...)
			return
		}
	}
}

// adjustMarks drops marks on rows [first, last) and moves marks at or
// after last by delta
func (b *Buffer) adjustMarks(first, last, delta int) {
	for _, m := range b.marks {
		for i, row := range m.rows {
			switch {
			case row < first:
			case row < last:
				m.rows[i] = -1
			default:
				m.rows[i] = row + delta
			}
		}
	}
}

// valid reports whether pos is inside the buffer or at the end of text
func (b *Buffer) valid(pos Position) bool {
	if pos.Row == len(b.lines) {
		return pos.Col == 0
	}
	return pos.Row >= 0 && pos.Row < len(b.lines) && pos.Col >= 0 && pos.Col <= len(b.lines[pos.Row])
}

// Slice returns the text between start and end (end exclusive). Line breaks
// are returned as "\n".
func (b *Buffer) Slice(start, end Position) (string, error) {
	if !b.valid(start) || !b.valid(end) || end.Less(start) {
		return "", fmt.Errorf("slice %s-%s: %w", start, end, ErrOutOfRange)
	}
	if start.Row == end.Row {
		if start.Row == len(b.lines) {
			return "", nil
		}
		return string(b.lines[start.Row][start.Col:end.Col]), nil
	}
	var sb strings.Builder
	sb.WriteString(string(b.lines[start.Row][start.Col:]))
	sb.WriteByte('\n')
	for row := start.Row + 1; row < end.Row; row++ {
		sb.WriteString(string(b.lines[row]))
		sb.WriteByte('\n')
	}
	if end.Row < len(b.lines) {
		sb.WriteString(string(b.lines[end.Row][:end.Col]))
	}
	return sb.String(), nil
}

// InsertText inserts text at pos and returns the position just after the
// inserted text. Inserting at the end of text appends lines; a trailing
// newline there does not create an extra empty line.
func (b *Buffer) InsertText(pos Position, text string) (Position, error) {
	if !b.valid(pos) {
		return pos, fmt.Errorf("insert at %s: %w", pos, ErrOutOfRange)
	}
	if text == "" {
		return pos, nil
	}
	parts := strings.Split(text, "\n")

	if pos.Row == len(b.lines) {
		if parts[len(parts)-1] == "" {
			parts = parts[:len(parts)-1]
		}
		for _, part := range parts {
			b.lines = append(b.lines, []rune(part))
		}
		b.markModified()
		if strings.HasSuffix(text, "\n") {
			return Position{Row: len(b.lines)}, nil
		}
		return Position{Row: len(b.lines) - 1, Col: len(b.lines[len(b.lines)-1])}, nil
	}

	line := b.lines[pos.Row]
	prefix := append([]rune{}, line[:pos.Col]...)
	suffix := append([]rune{}, line[pos.Col:]...)

	if len(parts) == 1 {
		inserted := []rune(parts[0])
		newLine := append(prefix, inserted...)
		newLine = append(newLine, suffix...)
		b.lines[pos.Row] = newLine
		b.markModified()
		return Position{Row: pos.Row, Col: pos.Col + len(inserted)}, nil
	}

	if pos.Col == 0 {
		b.adjustMarks(pos.Row, pos.Row, len(parts)-1)
	} else {
		b.adjustMarks(pos.Row+1, pos.Row+1, len(parts)-1)
	}
	newLines := make([][]rune, 0, len(parts))
	newLines = append(newLines, append(prefix, []rune(parts[0])...))
	for _, part := range parts[1 : len(parts)-1] {
		newLines = append(newLines, []rune(part))
	}
	last := []rune(parts[len(parts)-1])
	end := Position{Row: pos.Row + len(parts) - 1, Col: len(last)}
	newLines = append(newLines, append(last, suffix...))

	rest := append([][]rune{}, b.lines[pos.Row+1:]...)
	b.lines = append(append(b.lines[:pos.Row], newLines...), rest...)
	b.markModified()
	return end, nil
}

// DeleteRange removes the text between start and end (end exclusive) and
// returns it
func (b *Buffer) DeleteRange(start, end Position) (string, error) {
	text, err := b.Slice(start, end)
	if err != nil {
		return "", err
	}
	if text == "" {
		return "", nil
	}

	if end.Row == len(b.lines) {
		// Deleting through the end of text
		if start.Col == 0 {
			b.adjustMarks(start.Row, len(b.lines), 0)
			b.lines = b.lines[:start.Row]
		} else {
			b.adjustMarks(start.Row+1, len(b.lines), 0)
			b.lines[start.Row] = append([]rune{}, b.lines[start.Row][:start.Col]...)
			b.lines = b.lines[:start.Row+1]
		}
		b.markModified()
		return text, nil
	}

	removed := end.Row - start.Row
	if start.Col == 0 && end.Col == 0 {
		b.adjustMarks(start.Row, end.Row, -removed)
	} else {
		b.adjustMarks(start.Row+1, end.Row+1, -removed)
	}
	joined := append([]rune{}, b.lines[start.Row][:start.Col]...)
	joined = append(joined, b.lines[end.Row][end.Col:]...)
	rest := append([][]rune{}, b.lines[end.Row+1:]...)
	b.lines = append(append(b.lines[:start.Row], joined), rest...)
	b.markModified()
	return text, nil
}

// ReplaceLines replaces lines [start, end) with lines
func (b *Buffer) ReplaceLines(start, end int, lines []string) error {
	if start < 0 || end < start || end > len(b.lines) {
		return fmt.Errorf("replace lines %d-%d: %w", start, end, ErrOutOfRange)
	}
	b.adjustMarks(min(start+len(lines), end), end, len(lines)-(end-start))
	newLines := make([][]rune, len(lines))
	for i, line := range lines {
		newLines[i] = []rune(line)
	}
	rest := append([][]rune{}, b.lines[end:]...)
	b.lines = append(append(b.lines[:start], newLines...), rest...)
	b.markModified()
	return nil
}

// LineRegion returns the line-wise region covering lines [start, end)
func LineRegion(start, end int) Region {
	return Region{Start: Position{Row: start}, End: Position{Row: end}, Linewise: true}
}

// Advance returns the position reached by walking text forward from start,
// splitting on embedded newlines. It recomputes the end of an inserted or
// deleted span without re-resolving the motion that produced it.
func Advance(start Position, text string) Position {
	pos := start
	for _, r := range text {
		if r == '\n' {
			pos.Row++
			pos.Col = 0
			continue
		}
		pos.Col++
	}
	return pos
}
