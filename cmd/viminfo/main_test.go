package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slzatz/vix/vim/govim"
	"github.com/slzatz/vix/vim/viminfo"
)

func TestReport(t *testing.T) {
	store, err := viminfo.Open("sqlite", filepath.Join(t.TempDir(), "viminfo.db"), "notes.txt")
	require.NoError(t, err)
	defer store.Close()
	require.NoError(t, store.AddHistory(viminfo.Commands, "%s/a/b/g"))
	require.NoError(t, store.AddHistory(viminfo.Searches, "foo"))
	require.NoError(t, store.SaveRegister(govim.Register{Text: "line\n", Linewise: true}))

	var out bytes.Buffer
	require.NoError(t, report(&out, store, 5))
	text := out.String()
	assert.Contains(t, text, "notes.txt")
	assert.Contains(t, text, "  1 %s/a/b/g")
	assert.Contains(t, text, "  1 foo")
	assert.Contains(t, text, `Register (linewise):`)
	assert.Contains(t, text, `"line\n"`)
}

func TestConfirm(t *testing.T) {
	assert.True(t, confirm(strings.NewReader("y\n"), ""))
	assert.True(t, confirm(strings.NewReader("Yes\n"), ""))
	assert.False(t, confirm(strings.NewReader("\n"), ""))
	assert.False(t, confirm(strings.NewReader(""), ""))
}
