package govim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fourLines = []string{
	"First line of text",
	"Second line with more text",
	"Third line is here",
	"Fourth and final line",
}

type editCase struct {
	name       string
	lines      []string
	cursor     Position
	keys       string
	wantLines  []string
	wantCursor Position
}

var editCases = []editCase{
	// delete operator
	{"delete word", fourLines, Position{0, 6}, "dw",
		[]string{"First of text", fourLines[1], fourLines[2], fourLines[3]}, Position{0, 6}},
	{"delete line", fourLines, Position{1, 3}, "dd",
		[]string{fourLines[0], fourLines[2], fourLines[3]}, Position{1, 0}},
	{"delete three lines", fourLines, Position{0, 0}, "3dd",
		[]string{fourLines[3]}, Position{0, 0}},
	{"delete past last line", fourLines, Position{2, 0}, "5dd",
		[]string{fourLines[0], fourLines[1]}, Position{1, 0}},
	{"delete line down", fourLines, Position{1, 0}, "dj",
		[]string{fourLines[0], fourLines[3]}, Position{1, 0}},
	{"delete line up", fourLines, Position{1, 0}, "dk",
		[]string{fourLines[1], fourLines[2], fourLines[3]}, Position{0, 0}},
	{"delete two lines up", fourLines, Position{3, 0}, "2dk",
		[]string{fourLines[0], fourLines[3]}, Position{1, 0}},
	{"delete to last line", fourLines, Position{2, 4}, "dG",
		[]string{fourLines[0], fourLines[1]}, Position{1, 0}},
	{"delete to end of line", []string{"hello world"}, Position{0, 5}, "d$",
		[]string{"hello"}, Position{0, 4}},
	{"delete back word", []string{"hello world"}, Position{0, 6}, "db",
		[]string{"world"}, Position{0, 0}},
	{"delete to char", []string{"one two three"}, Position{0, 0}, "dfe",
		[]string{" two three"}, Position{0, 0}},
	{"delete till char", []string{"one two three"}, Position{0, 0}, "dte",
		[]string{"e two three"}, Position{0, 0}},
	{"count after operator", []string{"a b c d"}, Position{0, 0}, "d2w",
		[]string{"c d"}, Position{0, 0}},
	{"count before operator", []string{"a b c d"}, Position{0, 0}, "2dw",
		[]string{"c d"}, Position{0, 0}},
	{"counts multiply", []string{"a b c d e"}, Position{0, 0}, "2d2w",
		[]string{"e"}, Position{0, 0}},
	{"delete word at end of line", []string{"one two", "three"}, Position{0, 4}, "dw",
		[]string{"one ", "three"}, Position{0, 3}},
	{"delete to paragraph end", []string{"a", "b", "", "c"}, Position{0, 0}, "d}",
		[]string{"", "c"}, Position{0, 0}},

	// shorthands
	{"x", []string{"abc"}, Position{0, 1}, "x", []string{"ac"}, Position{0, 1}},
	{"count x", []string{"abcdef"}, Position{0, 1}, "3x", []string{"aef"}, Position{0, 1}},
	{"x on last char", []string{"abc"}, Position{0, 2}, "x", []string{"ab"}, Position{0, 1}},
	{"X", []string{"abc"}, Position{0, 2}, "X", []string{"ac"}, Position{0, 1}},
	{"D", []string{"hello world"}, Position{0, 5}, "D", []string{"hello"}, Position{0, 4}},
	{"del key", []string{"abc"}, Position{0, 0}, "<Del>", []string{"bc"}, Position{0, 0}},

	// change and insert
	{"change word", []string{"hello world"}, Position{0, 0}, "cwHi<Esc>",
		[]string{"Hi world"}, Position{0, 1}},
	{"change word on blank", []string{"a  b"}, Position{0, 1}, "cw-<Esc>",
		[]string{"a-b"}, Position{0, 1}},
	{"change line", []string{"  abc", "d"}, Position{0, 3}, "ccnew<Esc>",
		[]string{"new", "d"}, Position{0, 2}},
	{"change to end of line", []string{"hello world"}, Position{0, 5}, "C!<Esc>",
		[]string{"hello!"}, Position{0, 5}},
	{"substitute char", []string{"abc"}, Position{0, 1}, "s1<Esc>",
		[]string{"a1c"}, Position{0, 1}},
	{"substitute line", []string{"  abc", "d"}, Position{0, 0}, "Sx<Esc>",
		[]string{"x", "d"}, Position{0, 0}},
	{"insert", []string{"bar"}, Position{0, 0}, "ifoo<Esc>", []string{"foobar"}, Position{0, 2}},
	{"insert with count", []string{""}, Position{0, 0}, "3ia<Esc>", []string{"aaa"}, Position{0, 2}},
	{"append", []string{"bar"}, Position{0, 0}, "afoo<Esc>", []string{"bfooar"}, Position{0, 3}},
	{"append at line end", []string{"bar"}, Position{0, 0}, "Ax<Esc>", []string{"barx"}, Position{0, 3}},
	{"insert at first non-blank", []string{"  bar"}, Position{0, 4}, "I-<Esc>",
		[]string{"  -bar"}, Position{0, 2}},
	{"open below", []string{"a", "b"}, Position{0, 0}, "onew<Esc>",
		[]string{"a", "new", "b"}, Position{1, 2}},
	{"open above", []string{"a", "b"}, Position{1, 0}, "Onew<Esc>",
		[]string{"a", "new", "b"}, Position{1, 2}},
	{"open below with count", []string{"a"}, Position{0, 0}, "2ox<Esc>",
		[]string{"a", "x", "x"}, Position{2, 0}},
	{"insert line break", []string{"ab"}, Position{0, 1}, "i<CR><Esc>",
		[]string{"a", "b"}, Position{1, 0}},
	{"replace mode", []string{"abc"}, Position{0, 0}, "Rxy<Esc>", []string{"xyc"}, Position{0, 1}},

	// put
	{"yank line put below", []string{"a", "b"}, Position{0, 0}, "yyp",
		[]string{"a", "a", "b"}, Position{1, 0}},
	{"yank line put above", []string{"a", "b"}, Position{0, 0}, "yyP",
		[]string{"a", "a", "b"}, Position{0, 0}},
	{"swap chars", []string{"ab"}, Position{0, 0}, "xp", []string{"ba"}, Position{0, 1}},
	{"swap lines", []string{"a", "b"}, Position{0, 0}, "ddp", []string{"b", "a"}, Position{1, 0}},
	{"put with count", []string{"ab"}, Position{0, 0}, "yl3p", []string{"aaaab"}, Position{0, 3}},
	{"yank word put", []string{"one two"}, Position{0, 0}, "ywP", []string{"one one two"}, Position{0, 3}},

	// single-line edits
	{"join", []string{"a", "  b"}, Position{0, 0}, "J", []string{"a b"}, Position{0, 1}},
	{"join three", []string{"a", "b", "c", "d"}, Position{0, 0}, "3J",
		[]string{"a b c", "d"}, Position{0, 3}},
	{"join closing paren", []string{"f(", ")"}, Position{0, 0}, "J", []string{"f()"}, Position{0, 1}},
	{"join blank line", []string{"a", ""}, Position{0, 0}, "J", []string{"a"}, Position{0, 0}},
	{"toggle case", []string{"abC"}, Position{0, 0}, "~", []string{"AbC"}, Position{0, 1}},
	{"toggle case count", []string{"abC"}, Position{0, 0}, "3~", []string{"ABc"}, Position{0, 2}},
	{"replace char", []string{"abc"}, Position{0, 1}, "rx", []string{"axc"}, Position{0, 1}},
	{"replace chars", []string{"abc"}, Position{0, 1}, "2rx", []string{"axx"}, Position{0, 2}},
	{"shift right", []string{"a"}, Position{0, 0}, ">>", []string{"    a"}, Position{0, 4}},
	{"shift left", []string{"      a"}, Position{0, 0}, "<<", []string{"  a"}, Position{0, 2}},
	{"shift down", []string{"a", "b", "c"}, Position{0, 0}, ">j", []string{"    a", "    b", "c"}, Position{0, 4}},
}

func TestEditingOperations(t *testing.T) {
	for _, tc := range editCases {
		t.Run(tc.name, func(t *testing.T) {
			e := newTestEditor(tc.cursor, tc.lines...)
			mustRun(t, e, tc.keys)
			assert.Equal(t, tc.wantLines, e.Buffer().Lines())
			assert.Equal(t, tc.wantCursor, e.Cursor())
			assert.Equal(t, ModeNormal, e.Mode())
		})
	}
}

func TestEditingUndoRedo(t *testing.T) {
	for _, tc := range editCases {
		t.Run(tc.name, func(t *testing.T) {
			e := newTestEditor(tc.cursor, tc.lines...)
			mustRun(t, e, tc.keys)
			after := e.Buffer().Lines()

			for e.History().CanUndo() {
				require.NoError(t, e.Undo())
			}
			assert.Equal(t, tc.lines, e.Buffer().Lines())
			assert.Equal(t, tc.cursor, e.Cursor())

			for e.History().CanRedo() {
				require.NoError(t, e.Redo())
			}
			assert.Equal(t, after, e.Buffer().Lines())
		})
	}
}

func TestDoubledOperatorEquivalence(t *testing.T) {
	for _, keys := range []string{"dd", "1dd", "d_", "d1d", "1d1d"} {
		t.Run(keys, func(t *testing.T) {
			e := newTestEditor(Position{1, 2}, fourLines...)
			mustRun(t, e, keys)
			assert.Equal(t, []string{fourLines[0], fourLines[2], fourLines[3]}, e.Buffer().Lines())
			assert.Equal(t, Register{Text: fourLines[1] + "\n", Linewise: true}, e.Register())
		})
	}
}

func TestEditingErrors(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		pos   Position
		keys  string
	}{
		{"X at line start", []string{"abc"}, Position{0, 0}, "X"},
		{"dk on first line", []string{"abc", "d"}, Position{0, 0}, "dk"},
		{"find missing char", []string{"abc"}, Position{0, 0}, "dfz"},
		{"put empty register", []string{"abc"}, Position{0, 0}, "p"},
		{"replace past end", []string{"abc"}, Position{0, 2}, "3rx"},
		{"join last line", []string{"abc"}, Position{0, 0}, "J"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := newTestEditor(tc.pos, tc.lines...)
			assert.Error(t, run(e, tc.keys))
			assert.Equal(t, tc.lines, e.Buffer().Lines())
			assert.Equal(t, tc.pos, e.Cursor())
			assert.False(t, e.History().CanUndo())
		})
	}
}

func TestHugeCountInsert(t *testing.T) {
	e := newTestEditor(Position{}, "x")
	err := run(e, "99999999iab<Esc>")
	assert.ErrorIs(t, err, ErrTooLarge)
	_, ok := IsExecError(err)
	assert.True(t, ok)
	assert.Equal(t, ModeNormal, e.Mode())
	assert.Equal(t, []string{"abx"}, e.Buffer().Lines())

	require.NoError(t, e.Undo())
	assert.Equal(t, []string{"x"}, e.Buffer().Lines())
	require.NoError(t, e.Redo())
	assert.Equal(t, []string{"abx"}, e.Buffer().Lines())
}

func TestHugeCountPut(t *testing.T) {
	e := newTestEditor(Position{}, "z")
	mustRun(t, e, "yy")
	err := run(e, "99999999p")
	assert.ErrorIs(t, err, ErrTooLarge)
	assert.Equal(t, []string{"z"}, e.Buffer().Lines())
	assert.False(t, e.History().CanUndo())

	mustRun(t, e, "3p")
	assert.Equal(t, []string{"z", "z", "z", "z"}, e.Buffer().Lines())
}

func TestInvalidSequences(t *testing.T) {
	for _, keys := range []string{"dx", "dc", "dq", "Zx", "d<C-g>"} {
		t.Run(keys, func(t *testing.T) {
			e := newTestEditor(Position{}, "abc")
			err := run(e, keys)
			_, ok := IsInvalidSequence(err)
			assert.True(t, ok, "got %v", err)
			assert.Equal(t, []string{"abc"}, e.Buffer().Lines())
		})
	}
}

func TestYankLeavesBuffer(t *testing.T) {
	p := &recordingPresenter{}
	e := newTestEditor(Position{}, fourLines...)
	e.SetPresenter(p)
	mustRun(t, e, "3yy")
	assert.Equal(t, fourLines, e.Buffer().Lines())
	assert.Equal(t, "3 lines yanked", p.status)
	assert.False(t, e.History().CanUndo())
	assert.True(t, e.Register().Linewise)
}

func TestChangeWithEmptyRegion(t *testing.T) {
	e := newTestEditor(Position{1, 0}, "a", "", "b")
	mustRun(t, e, "cwx<Esc>")
	assert.Equal(t, []string{"a", "x", "b"}, e.Buffer().Lines())
}
