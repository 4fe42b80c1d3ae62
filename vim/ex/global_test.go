package ex

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slzatz/vix/vim/govim"
)

func TestGlobal(t *testing.T) {
	tests := []struct {
		line  string
		lines []string
		want  []string
	}{
		{"g/a/d", []string{"a", "b", "a", "b"}, []string{"b", "b"}},
		{"v/a/d", []string{"a", "b", "a", "b"}, []string{"a", "a"}},
		{"g!/a/d", []string{"a", "b", "a", "b"}, []string{"a", "a"}},
		{"global/^$/d", []string{"x", "", "", "y"}, []string{"x", "y"}},
		{"g/a/.,+1d", []string{"a", "x", "b", "a", "y"}, []string{"b"}},
		{"g/o/s/o/0/g", []string{"foo", "bar", "boo"}, []string{"f00", "bar", "b00"}},
		{"g/^/m0", []string{"1", "2", "3"}, []string{"3", "2", "1"}},
		{"g/a/t$", []string{"a", "b", "a"}, []string{"a", "b", "a", "a", "a"}},
		{"g/a/t$", []string{"a", "x", "a", "y"}, []string{"a", "x", "a", "y", "a", "a"}},
		{"2,3g/a/d", []string{"a", "a", "a", "a"}, []string{"a", "a"}},
		{"g/x/>", []string{"x", "y"}, []string{"    x", "y"}},
		{"g/a/j", []string{"a", "b", "c"}, []string{"a b", "c"}},
	}
	for _, tc := range tests {
		t.Run(tc.line, func(t *testing.T) {
			e, _ := newTestEditor(tc.lines...)
			mustExec(t, e, tc.line)
			assert.Equal(t, tc.want, e.Buffer().Lines())

			require.NoError(t, e.Undo())
			assert.Equal(t, tc.lines, e.Buffer().Lines())
			assert.False(t, e.History().CanUndo(), "a global is one undo step")
		})
	}
}

func TestGlobalPrintsByDefault(t *testing.T) {
	e, p := newTestEditor("apple", "banana", "avocado")
	mustExec(t, e, "g/^a/")
	assert.Equal(t, []string{"apple", "avocado"}, p.echoed)
	assert.Equal(t, 2, e.Cursor().Row)

	p.echoed = nil
	mustExec(t, e, "g/an/#")
	assert.Equal(t, []string{"  2 banana"}, p.echoed)
	assert.False(t, e.History().CanUndo())
}

func TestGlobalNoMatch(t *testing.T) {
	e, _ := newTestEditor("a", "b")
	err := exec(e, "g/zzz/d")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "E486")

	err = exec(e, "v/./d")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "every line")
	assert.Equal(t, []string{"a", "b"}, e.Buffer().Lines())
}

func TestMatchTimeoutAborts(t *testing.T) {
	old := govim.MatchTimeout
	govim.MatchTimeout = time.Millisecond
	t.Cleanup(func() { govim.MatchTimeout = old })

	lines := []string{"aab", strings.Repeat("a", 40) + "b", "c"}
	for _, line := range []string{`g/(a+)+$/d`, `%s/(a+)+$/x/`} {
		t.Run(line, func(t *testing.T) {
			e, _ := newTestEditor(lines...)
			err := exec(e, line)
			require.Error(t, err)
			assert.NotContains(t, err.Error(), "E486")
			assert.Equal(t, lines, e.Buffer().Lines())
			assert.False(t, e.History().CanUndo())
		})
	}
}

func TestGlobalRollsBackOnFailure(t *testing.T) {
	e, _ := newTestEditor("a1", "b", "a2")
	e.SetCursor(govim.Position{Row: 1})
	err := exec(e, "g/a/.,+1d")
	assert.ErrorIs(t, err, errInvalidRange)
	assert.Equal(t, []string{"a1", "b", "a2"}, e.Buffer().Lines())
	assert.Equal(t, govim.Position{Row: 1}, e.Cursor())
	assert.False(t, e.History().CanUndo())
}

func TestGlobalSetsLastSearch(t *testing.T) {
	e, _ := newTestEditor("foo", "bar", "foo")
	mustExec(t, e, "g/bar/s//baz/")
	assert.Equal(t, []string{"foo", "baz", "foo"}, e.Buffer().Lines())

	pattern, ok := e.LastSearch()
	assert.True(t, ok)
	assert.Equal(t, "bar", pattern)
}

func TestGlobalParseErrors(t *testing.T) {
	for _, line := range []string{"g", "g/a/g/b/d", "v/a/v/b/", "g/a/bogus"} {
		t.Run(line, func(t *testing.T) {
			_, err := Parse(line)
			require.Error(t, err)
			_, ok := govim.IsParseError(err)
			assert.True(t, ok)
		})
	}
	_, err := Parse("g/a/g/b/d")
	assert.Contains(t, err.Error(), "E147")
}
