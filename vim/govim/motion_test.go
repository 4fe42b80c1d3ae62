package govim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var motionLines = []string{
	"Line one",
	"Line two is longer",
	"Line three",
	"Line four",
}

func TestBasicMotions(t *testing.T) {
	tests := []struct {
		keys string
		want Position
	}{
		{"h", Position{2, 4}},
		{"l", Position{2, 6}},
		{"k", Position{1, 5}},
		{"j", Position{3, 5}},
		{"0", Position{2, 0}},
		{"^", Position{2, 0}},
		{"$", Position{2, 9}},
		{"2$", Position{3, 8}},
		{"w", Position{3, 0}},
		{"e", Position{2, 9}},
		{"b", Position{2, 0}},
		{"G", Position{3, 0}},
		{"2G", Position{1, 0}},
		{"3l", Position{2, 8}},
		{"10l", Position{2, 9}},
		{"fe", Position{2, 8}},
		{"te", Position{2, 7}},
		{"Fi", Position{2, 1}},
		{"Ti", Position{2, 2}},
		{"+", Position{3, 0}},
		{"-", Position{1, 0}},
		{"_", Position{2, 0}},
		{"<CR>", Position{3, 0}},
		{"<BS>", Position{2, 4}},
		{" ", Position{2, 6}},
		{"<Left>", Position{2, 4}},
		{"<Down>", Position{3, 5}},
	}

	for _, tc := range tests {
		t.Run(tc.keys, func(t *testing.T) {
			e := newTestEditor(Position{2, 5}, motionLines...)
			mustRun(t, e, tc.keys)
			assert.Equal(t, tc.want, e.Cursor())
			assert.Equal(t, motionLines, e.Buffer().Lines())
			assert.False(t, e.History().CanUndo(), "motions are not undoable")
		})
	}
}

func TestVerticalMotionKeepsColumn(t *testing.T) {
	e := newTestEditor(Position{1, 15}, motionLines...)

	mustRun(t, e, "j")
	assert.Equal(t, Position{2, 9}, e.Cursor())
	mustRun(t, e, "j")
	assert.Equal(t, Position{3, 8}, e.Cursor())
	mustRun(t, e, "k")
	assert.Equal(t, Position{2, 9}, e.Cursor())
	mustRun(t, e, "k")
	assert.Equal(t, Position{1, 15}, e.Cursor())

	// a horizontal motion resets the wanted column
	mustRun(t, e, "hj")
	assert.Equal(t, Position{2, 9}, e.Cursor())
	mustRun(t, e, "k")
	assert.Equal(t, Position{1, 14}, e.Cursor())
}

func TestDollarSticksToLineEnd(t *testing.T) {
	e := newTestEditor(Position{}, motionLines...)
	mustRun(t, e, "$j")
	assert.Equal(t, Position{1, 17}, e.Cursor())
	mustRun(t, e, "j")
	assert.Equal(t, Position{2, 9}, e.Cursor())
}

func TestWordMotions(t *testing.T) {
	tests := []struct {
		name  string
		start Position
		keys  string
		want  Position
	}{
		{"word stops at punctuation", Position{0, 0}, "w", Position{0, 3}},
		{"word after punctuation", Position{0, 0}, "2w", Position{0, 4}},
		{"third word", Position{0, 0}, "3w", Position{0, 8}},
		{"big word", Position{0, 0}, "W", Position{0, 8}},
		{"word end", Position{0, 0}, "e", Position{0, 2}},
		{"big word end", Position{0, 0}, "E", Position{0, 6}},
		{"back word", Position{0, 8}, "b", Position{0, 4}},
		{"back big word", Position{0, 8}, "B", Position{0, 0}},
		{"word to next line", Position{0, 8}, "w", Position{1, 2}},
		{"word end across line", Position{0, 10}, "e", Position{1, 4}},
		{"back word across line", Position{1, 2}, "b", Position{0, 8}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := newTestEditor(tc.start, "foo.bar baz", "  qux")
			mustRun(t, e, tc.keys)
			assert.Equal(t, tc.want, e.Cursor())
		})
	}
}

func TestWordStopsAtEmptyLine(t *testing.T) {
	e := newTestEditor(Position{}, "one", "", "two")
	mustRun(t, e, "w")
	assert.Equal(t, Position{1, 0}, e.Cursor())
	mustRun(t, e, "w")
	assert.Equal(t, Position{2, 0}, e.Cursor())
}

func TestFindRepeat(t *testing.T) {
	tests := []struct {
		keys string
		want int
	}{
		{"fe", 2},
		{"2fe", 11},
		{"fe;", 11},
		{"fe;;", 12},
		{"fe;;,", 11},
		{"te", 1},
		{"te;", 10},
		{"$Fo;", 0},
		{"$Fe,", 12},
	}
	for _, tc := range tests {
		t.Run(tc.keys, func(t *testing.T) {
			e := newTestEditor(Position{}, "one two three")
			mustRun(t, e, tc.keys)
			assert.Equal(t, Position{0, tc.want}, e.Cursor())
		})
	}
}

func TestMatchingBracket(t *testing.T) {
	tests := []struct {
		start, want int
	}{
		{0, 8},
		{8, 0},
		{3, 5},
		{1, 5},
		{5, 3},
	}
	for _, tc := range tests {
		e := newTestEditor(Position{0, tc.start}, "(a [b] c)")
		mustRun(t, e, "%")
		assert.Equal(t, Position{0, tc.want}, e.Cursor(), "from %d", tc.start)
	}

	e := newTestEditor(Position{}, "if (a {", "  b", "}) x")
	mustRun(t, e, "%")
	assert.Equal(t, Position{2, 1}, e.Cursor())
}

func TestSentenceMotions(t *testing.T) {
	e := newTestEditor(Position{}, "Hello there. How are you?  Fine.")
	mustRun(t, e, ")")
	assert.Equal(t, Position{0, 13}, e.Cursor())
	mustRun(t, e, ")")
	assert.Equal(t, Position{0, 27}, e.Cursor())
	mustRun(t, e, "(")
	assert.Equal(t, Position{0, 13}, e.Cursor())
	mustRun(t, e, "2(")
	assert.Equal(t, Position{0, 0}, e.Cursor())
}

func TestParagraphMotions(t *testing.T) {
	e := newTestEditor(Position{}, "a", "b", "", "c", "d")
	mustRun(t, e, "}")
	assert.Equal(t, Position{2, 0}, e.Cursor())
	mustRun(t, e, "}")
	assert.Equal(t, Position{4, 0}, e.Cursor())
	mustRun(t, e, "{")
	assert.Equal(t, Position{2, 0}, e.Cursor())
	mustRun(t, e, "{")
	assert.Equal(t, Position{0, 0}, e.Cursor())
}

func TestPageMotions(t *testing.T) {
	lines := make([]string, 100)
	for i := range lines {
		lines[i] = "x"
	}
	e := newTestEditor(Position{}, lines...)
	e.SetViewport(24, 80)

	mustRun(t, e, "<C-f>")
	assert.Equal(t, 22, e.Top())
	assert.Equal(t, Position{22, 0}, e.Cursor())

	mustRun(t, e, "<C-b>")
	assert.Equal(t, 0, e.Top())
	assert.Equal(t, Position{0, 0}, e.Cursor())
}

func TestFailedMotions(t *testing.T) {
	tests := []struct {
		name  string
		start Position
		keys  string
	}{
		{"up from first line", Position{0, 3}, "k"},
		{"down from last line", Position{3, 3}, "j"},
		{"left from column 0", Position{1, 0}, "h"},
		{"right from last column", Position{0, 7}, "l"},
		{"find missing", Position{0, 0}, "fz"},
		{"repeat without find", Position{0, 0}, ";"},
		{"word at end of buffer", Position{3, 8}, "w"},
		{"no bracket", Position{0, 0}, "%"},
		{"next without search", Position{0, 0}, "n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := newTestEditor(tc.start, motionLines...)
			err := run(e, tc.keys)
			require.Error(t, err)
			assert.Equal(t, tc.start, e.Cursor())
		})
	}
}

func TestModeTransitions(t *testing.T) {
	e := newTestEditor(Position{}, "abc")
	assert.Equal(t, ModeNormal, e.Mode())

	mustRun(t, e, "i")
	assert.Equal(t, ModeInsert, e.Mode())
	mustRun(t, e, "<Esc>")
	assert.Equal(t, ModeNormal, e.Mode())

	mustRun(t, e, "R")
	assert.Equal(t, ModeReplace, e.Mode())
	mustRun(t, e, "<Esc>")
	assert.Equal(t, ModeNormal, e.Mode())

	mustRun(t, e, ":")
	assert.Equal(t, ModeCommandLine, e.Mode())
	assert.Equal(t, ':', e.CommandPrompt())
}
