package govim

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var searchLines = []string{
	"The quick brown fox",
	"jumps over the lazy dog",
	"the end",
}

func TestBasicSearch(t *testing.T) {
	e := newTestEditor(Position{}, searchLines...)

	require.NoError(t, e.Search("the", true))
	assert.Equal(t, Position{1, 11}, e.Cursor())

	mustRun(t, e, "n")
	assert.Equal(t, Position{2, 0}, e.Cursor())

	// wraps around to the top
	mustRun(t, e, "n")
	assert.Equal(t, Position{1, 11}, e.Cursor())

	mustRun(t, e, "N")
	assert.Equal(t, Position{2, 0}, e.Cursor())

	pattern, forward := e.LastSearch()
	assert.Equal(t, "the", pattern)
	assert.True(t, forward)
}

func TestBackwardSearch(t *testing.T) {
	e := newTestEditor(Position{2, 4}, searchLines...)

	require.NoError(t, e.Search("o", false))
	assert.Equal(t, Position{1, 21}, e.Cursor())

	// n keeps the direction of the search, N reverses it
	mustRun(t, e, "n")
	assert.Equal(t, Position{1, 6}, e.Cursor())
	mustRun(t, e, "N")
	assert.Equal(t, Position{1, 21}, e.Cursor())
}

func TestSearchOptions(t *testing.T) {
	e := newTestEditor(Position{1, 11}, searchLines...)
	opts := e.Options()
	opts.IgnoreCase = true
	e.SetOptions(opts)

	require.NoError(t, e.Search("THE", false))
	assert.Equal(t, Position{0, 0}, e.Cursor())

	opts.WrapScan = false
	e.SetOptions(opts)
	e.SetCursor(Position{2, 0})
	assert.ErrorIs(t, e.Search("the", true), ErrPatternNotFound)
	assert.Equal(t, Position{2, 0}, e.Cursor())
}

func TestSearchSingleMatchWraps(t *testing.T) {
	e := newTestEditor(Position{0, 4}, "abc abc")
	require.NoError(t, e.Search("abc", true))
	assert.Equal(t, Position{0, 0}, e.Cursor())
	require.NoError(t, e.Search("abc", true))
	assert.Equal(t, Position{0, 4}, e.Cursor())
}

func TestSearchPatterns(t *testing.T) {
	e := newTestEditor(Position{}, searchLines...)

	assert.ErrorIs(t, e.Search("", true), ErrNoPattern)

	require.NoError(t, e.Search("fox", true))
	e.SetCursor(Position{})
	require.NoError(t, e.Search("", true))
	assert.Equal(t, Position{0, 16}, e.Cursor())

	err := e.Search("(", true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "E486")

	re, err := CompilePattern(`a\/b`, false)
	require.NoError(t, err)
	ok, err := re.MatchString("x a/b y")
	require.NoError(t, err)
	assert.True(t, ok)

	re, err = CompilePattern(`l[a-z]+y`, false)
	require.NoError(t, err)
	ok, err = e.MatchLine(re, 1)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = e.MatchLine(re, 0)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMatchTimeoutIsAnError(t *testing.T) {
	old := MatchTimeout
	MatchTimeout = time.Millisecond
	t.Cleanup(func() { MatchTimeout = old })

	e := newTestEditor(Position{}, "start", strings.Repeat("a", 40)+"b")
	re, err := CompilePattern(`(a+)+$`, false)
	require.NoError(t, err)
	_, err = e.MatchLine(re, 1)
	assert.ErrorContains(t, err, "line 2")

	_, err = e.FindPattern(`(a+)+$`, Position{}, true)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrPatternNotFound)
}

func TestSearchCommand(t *testing.T) {
	e := newTestEditor(Position{}, searchLines...)
	require.NoError(t, e.Execute(NewSearch("o", true, 3)))
	assert.Equal(t, Position{1, 6}, e.Cursor())

	err := e.Execute(NewSearch("zzz", true, 1))
	assert.ErrorIs(t, err, ErrPatternNotFound)
	assert.Equal(t, Position{1, 6}, e.Cursor())
	assert.False(t, e.History().CanUndo())
}

func TestDeleteToSearchMatch(t *testing.T) {
	e := newTestEditor(Position{}, searchLines...)
	require.NoError(t, e.Search("quick", true))
	e.SetCursor(Position{})

	mustRun(t, e, "dn")
	assert.Equal(t, "quick brown fox", e.Buffer().Line(0))

	mustRun(t, e, "u")
	assert.Equal(t, searchLines, e.Buffer().Lines())
}
