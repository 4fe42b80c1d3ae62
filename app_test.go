package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slzatz/vix/config"
	"github.com/slzatz/vix/core/log"
	"github.com/slzatz/vix/vim/govim"
	"github.com/slzatz/vix/vim/viminfo"
)

func newTestApp(t *testing.T, content string) (*App, string, *bytes.Buffer) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "notes.txt")
	if content != "" {
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	out := &bytes.Buffer{}
	app, err := NewApp(config.Default(), path, nil, strings.NewReader(""), out)
	require.NoError(t, err)
	t.Cleanup(func() { app.Disk.Close() })
	app.Screen.Resize(10, 40)
	app.Run = true
	return app, path, out
}

func typeKeys(app *App, keys string) {
	for _, k := range govim.ParseKeys(keys) {
		app.HandleKey(k)
	}
}

func TestEditAndWrite(t *testing.T) {
	app, path, _ := newTestApp(t, "hello\nworld\n")
	assert.Contains(t, app.Screen.status, "2L")

	typeKeys(app, "ddpAagain<Esc>:wq<CR>")
	assert.False(t, app.Run)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "world\nhelloagain\n", string(b))
}

func TestNewFile(t *testing.T) {
	app, path, _ := newTestApp(t, "")
	assert.Contains(t, app.Screen.status, "New File")

	typeKeys(app, "ifirst<Esc>:w<CR>")
	assert.Contains(t, app.Screen.status, "written")
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "first\n", string(b))
}

func TestQuitRefusedWhenModified(t *testing.T) {
	app, _, _ := newTestApp(t, "a\n")
	typeKeys(app, "x:q<CR>")
	assert.True(t, app.Run)
	assert.NotEmpty(t, app.Screen.status)

	typeKeys(app, ":q!<CR>")
	assert.False(t, app.Run)
}

func TestRefresh(t *testing.T) {
	app, _, out := newTestApp(t, "alpha\nbeta\n")
	app.Screen.Refresh(app.Session)
	screen := out.String()
	assert.Contains(t, screen, "alpha")
	assert.Contains(t, screen, "beta")
	assert.Contains(t, screen, "~")
	assert.Contains(t, screen, "1,1")

	out.Reset()
	typeKeys(app, ":2")
	app.Screen.Refresh(app.Session)
	assert.Contains(t, out.String(), ":2")

	out.Reset()
	typeKeys(app, "<Esc>i")
	app.Screen.Refresh(app.Session)
	assert.Contains(t, out.String(), "-- INSERT --")
}

func TestEchoIsDismissed(t *testing.T) {
	app, _, out := newTestApp(t, "one\ntwo\n")
	typeKeys(app, ":%p<CR>")
	require.True(t, app.Screen.Echoing())

	app.Screen.Refresh(app.Session)
	assert.Contains(t, out.String(), hitEnter)

	require.Equal(t, 1, app.Session.Editor().Cursor().Row)

	// the dismissing key is handled unless it is Enter, Space or Esc
	typeKeys(app, "k")
	assert.False(t, app.Screen.Echoing())
	assert.Equal(t, 0, app.Session.Editor().Cursor().Row)

	typeKeys(app, ":p<CR><CR>")
	assert.False(t, app.Screen.Echoing())
	assert.Equal(t, 0, app.Session.Editor().Cursor().Row)
}

func TestBell(t *testing.T) {
	app, _, out := newTestApp(t, "a\n")
	typeKeys(app, "<Esc>")
	app.Screen.Refresh(app.Session)
	assert.Contains(t, out.String(), "\a")

	out.Reset()
	app.Screen.Refresh(app.Session)
	assert.NotContains(t, out.String(), "\a")
}

func TestHelpIsRendered(t *testing.T) {
	app, _, _ := newTestApp(t, "a\n")
	typeKeys(app, ":help substitute<CR>")
	require.True(t, app.Screen.Echoing())
	assert.Contains(t, strings.Join(app.Screen.echo, "\n"), "substitute")

	typeKeys(app, "<CR>:help nosuchthing<CR>")
	assert.Contains(t, app.Screen.status, "E149")
}

func TestHelpText(t *testing.T) {
	text, ok := helpText("")
	require.True(t, ok)
	assert.Contains(t, text, "# Ex commands")
	assert.Contains(t, text, "Normal mode")

	_, ok = helpText("<C-g>")
	assert.True(t, ok)
	_, ok = helpText("zzz")
	assert.False(t, ok)
}

func TestViminfoRoundTrip(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "viminfo.db")
	path := filepath.Join(t.TempDir(), "f.txt")
	require.NoError(t, os.WriteFile(path, []byte("x\ny\n"), 0o644))

	store, err := viminfo.Open("sqlite", dbPath, path)
	require.NoError(t, err)
	app, err := NewApp(config.Default(), path, store, strings.NewReader(""), &bytes.Buffer{})
	require.NoError(t, err)
	typeKeys(app, "yy:2<CR>")
	require.NoError(t, app.Session.Close())
	require.NoError(t, store.Close())
	require.NoError(t, app.Disk.Close())

	store, err = viminfo.Open("sqlite", dbPath, path)
	require.NoError(t, err)
	defer store.Close()
	history, err := store.History(viminfo.Commands)
	require.NoError(t, err)
	assert.Equal(t, []string{"2"}, history)
	r, ok, err := store.LoadRegister()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "x\n", r.Text)
}

func TestDetermineSQLiteDriver(t *testing.T) {
	assert.Equal(t, "sqlite", DetermineSQLiteDriver(&Options{}, "go").GetSQLiteDriverName())
	assert.Equal(t, "sqlite", DetermineSQLiteDriver(&Options{GoSQLite: true}, "cgo").GetSQLiteDriverName())

	want := "sqlite"
	if IsCGOSQLiteAvailable() {
		want = "sqlite3"
	}
	assert.Equal(t, want, DetermineSQLiteDriver(&Options{CGOSQLite: true}, "go").GetSQLiteDriverName())
	assert.Equal(t, want, DetermineSQLiteDriver(&Options{}, "cgo").GetSQLiteDriverName())
	assert.Equal(t, "modernc.org/sqlite (Pure Go)", DetermineSQLiteDriver(&Options{}, "go").GetSQLiteDriverDisplayName())
}

func TestSetupLogging(t *testing.T) {
	cfg := config.Default()
	cfg.Log.File = filepath.Join(t.TempDir(), "vix.log")
	t.Cleanup(func() {
		log.SetLevel(log.ParseLevel("off"))
		log.SetOutput(os.Stderr)
	})
	f, err := setupLogging(cfg, true)
	require.NoError(t, err)
	require.NotNil(t, f)
	defer f.Close()
	_, err = os.Stat(cfg.Log.File)
	assert.NoError(t, err)
}
