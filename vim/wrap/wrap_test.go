package wrap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/slzatz/vix/vim/govim"
)

func TestRender(t *testing.T) {
	tests := []struct {
		name  string
		width int
		line  string
		want  []string
	}{
		{"empty", 4, "", []string{""}},
		{"fits", 4, "abc", []string{"abc"}},
		{"exact fit", 4, "abcd", []string{"abcd"}},
		{"wraps", 4, "abcdef", []string{"abcd", "ef"}},
		{"tab", 0, "a\tb", []string{"a   b"}},
		{"wide chars", 5, "日本語", []string{"日本", "語"}},
		{"combining", 0, "e\u0301x", []string{"e\u0301x"}},
		{"control", 0, "a\x01b", []string{"a?b"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := New(tc.width, 4)
			assert.Equal(t, tc.want, m.Render(tc.line))
			assert.Equal(t, len(tc.want), m.Height(tc.line))
		})
	}
}

func TestScreenPosition(t *testing.T) {
	m := New(4, 8)
	lines := govim.NewBuffer("abcdef", "xy", "e\u0301x")
	tests := []struct {
		pos      govim.Position
		top      int
		row, col int
	}{
		{govim.Position{Row: 0, Col: 2}, 0, 0, 2},
		{govim.Position{Row: 0, Col: 5}, 0, 1, 1},
		{govim.Position{Row: 0, Col: 6}, 0, 1, 2},
		{govim.Position{Row: 1, Col: 1}, 0, 2, 1},
		{govim.Position{Row: 1, Col: 0}, 1, 0, 0},
		{govim.Position{Row: 0, Col: 4}, 1, -1, 0},
		{govim.Position{Row: 2, Col: 2}, 0, 3, 1},
	}
	for _, tc := range tests {
		row, col := m.ScreenPosition(lines, tc.pos, tc.top)
		assert.Equal(t, tc.row, row, "row of %s", tc.pos)
		assert.Equal(t, tc.col, col, "col of %s", tc.pos)
	}
}

func TestBufferPosition(t *testing.T) {
	m := New(4, 8)
	lines := govim.NewBuffer("abcdef", "xy")
	assert.Equal(t, govim.Position{Row: 0, Col: 5}, m.BufferPosition(lines, 0, 1, 1))
	assert.Equal(t, govim.Position{Row: 0, Col: 5}, m.BufferPosition(lines, 0, 1, 3))
	assert.Equal(t, govim.Position{Row: 1, Col: 0}, m.BufferPosition(lines, 0, 2, 0))
	assert.Equal(t, govim.Position{Row: 1, Col: 1}, m.BufferPosition(lines, 1, 0, 1))
	assert.Equal(t, govim.Position{Row: 1, Col: 2}, m.BufferPosition(lines, 0, 9, 0))
	assert.Equal(t, govim.Position{}, m.BufferPosition(govim.NewBuffer(), 0, 3, 3))

	wide := govim.NewBuffer("日本語")
	assert.Equal(t, govim.Position{Row: 0, Col: 1}, New(5, 8).BufferPosition(wide, 0, 0, 3))
}

// Every character maps to a screen cell that maps back to it
func TestRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		width := rapid.IntRange(1, 12).Draw(t, "width")
		ts := rapid.IntRange(1, 8).Draw(t, "tabstop")
		lines := rapid.SliceOfN(
			rapid.StringOf(rapid.SampledFrom([]rune("ab \t日本x"))), 1, 5,
		).Draw(t, "lines")
		buf := govim.NewBuffer(lines...)
		m := New(width, ts)

		prevRow := -1
		for r := range lines {
			for c := range []rune(lines[r]) {
				pos := govim.Position{Row: r, Col: c}
				row, col := m.ScreenPosition(buf, pos, 0)
				if row < prevRow {
					t.Fatalf("%s drawn on row %d above row %d", pos, row, prevRow)
				}
				prevRow = row
				if got := m.BufferPosition(buf, 0, row, col); got != pos {
					t.Fatalf("%s -> (%d,%d) -> %s", pos, row, col, got)
				}
			}
		}
	})
}
