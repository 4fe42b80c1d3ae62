package terminal

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slzatz/vix/vim/govim"
)

func readAll(t *testing.T, input string) []govim.Key {
	t.Helper()
	r := NewReader(strings.NewReader(input))
	var keys []govim.Key
	for {
		k, err := r.ReadKey()
		if err == io.EOF {
			return keys
		}
		require.NoError(t, err)
		keys = append(keys, k)
	}
}

func TestReadKey(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []govim.Key
	}{
		{"plain", "dw", []govim.Key{govim.Rune('d'), govim.Rune('w')}},
		{"unicode", "é", []govim.Key{govim.Rune('é')}},
		{"enter", "\r", []govim.Key{govim.Named(govim.KeyEnter)}},
		{"backspace", "\x7f", []govim.Key{govim.Named(govim.KeyBackspace)}},
		{"tab", "\t", []govim.Key{govim.Named(govim.KeyTab)}},
		{"control", "\x12\x15", []govim.Key{govim.Ctrl('r'), govim.Ctrl('u')}},
		{"lone escape", "\x1b", []govim.Key{govim.Named(govim.KeyEsc)}},
		{"arrows", "\x1b[A\x1b[B\x1bOC", []govim.Key{
			govim.Named(govim.KeyUp), govim.Named(govim.KeyDown), govim.Named(govim.KeyRight),
		}},
		{"paging", "\x1b[5~\x1b[6~", []govim.Key{govim.Named(govim.KeyPageUp), govim.Named(govim.KeyPageDown)}},
		{"delete", "\x1b[3~x", []govim.Key{govim.Named(govim.KeyDelete), govim.Rune('x')}},
		{"alt", "\x1bx", []govim.Key{{Rune: 'x', Mods: govim.ModAlt}}},
		{"unknown sequence", "\x1b[9", []govim.Key{govim.Named(govim.KeyEsc)}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, readAll(t, tc.input))
		})
	}
}

func TestDecodedKeysDriveTheEditor(t *testing.T) {
	keys := readAll(t, "\x1b")
	require.Len(t, keys, 1)
	assert.True(t, keys[0].IsEsc())

	keys = readAll(t, "\x08")
	assert.Equal(t, "<BS>", keys[0].String())
}
