package fileio

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadLines(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		content string
		want    []string
	}{
		{"", []string{}},
		{"one\n", []string{"one"}},
		{"one\ntwo", []string{"one", "two"}},
		{"one\n\n", []string{"one", ""}},
		{"\n", []string{""}},
	}
	for i, tc := range tests {
		name := filepath.Join(dir, "f"+string(rune('a'+i)))
		require.NoError(t, os.WriteFile(name, []byte(tc.content), 0o644))

		d := NewDisk()
		got, err := d.ReadLines(name)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, "content %q", tc.content)
		require.NoError(t, d.Close())
	}
}

func TestReadMissing(t *testing.T) {
	_, err := NewDisk().ReadLines(filepath.Join(t.TempDir(), "missing"))
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestWriteLines(t *testing.T) {
	name := filepath.Join(t.TempDir(), "out.txt")
	d := NewDisk()
	defer d.Close()

	require.NoError(t, d.WriteLines(name, []string{"a", "", "b"}))
	data, err := os.ReadFile(name)
	require.NoError(t, err)
	assert.Equal(t, "a\n\nb\n", string(data))

	require.NoError(t, os.Chmod(name, 0o600))
	require.NoError(t, d.WriteLines(name, nil))
	info, err := os.Stat(name)
	require.NoError(t, err)
	assert.Equal(t, int64(0), info.Size())
	assert.Equal(t, fs.FileMode(0o600), info.Mode().Perm())

	entries, err := os.ReadDir(filepath.Dir(name))
	require.NoError(t, err)
	for _, e := range entries {
		assert.NotContains(t, e.Name(), ".tmp", "temp file left behind")
	}
}

func TestLocking(t *testing.T) {
	name := filepath.Join(t.TempDir(), "shared.txt")
	require.NoError(t, os.WriteFile(name, []byte("x\n"), 0o644))

	first := NewDisk()
	_, err := first.ReadLines(name)
	require.NoError(t, err)
	assert.FileExists(t, LockPath(name))

	second := NewDisk()
	lines, err := second.ReadLines(name)
	require.NoError(t, err)
	assert.Equal(t, []string{"x"}, lines)
	assert.True(t, second.Foreign(name))
	assert.ErrorIs(t, second.WriteLines(name, []string{"y"}), ErrLocked)

	require.NoError(t, first.WriteLines(name, []string{"z"}))
	require.NoError(t, first.Close())
	assert.NoFileExists(t, LockPath(name))

	require.NoError(t, second.WriteLines(name, []string{"y"}))
	assert.False(t, second.Foreign(name))
	require.NoError(t, second.Close())
}

func TestLockPath(t *testing.T) {
	assert.Equal(t, filepath.Join("dir", ".file.txt.vix.lock"), LockPath(filepath.Join("dir", "file.txt")))
}
