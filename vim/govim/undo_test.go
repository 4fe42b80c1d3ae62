package govim

import (
	"testing"

	"pgregory.net/rapid"
)

var propertyCommands = []string{
	"x", "3x", "X", "D", "dd", "2dd", "dw", "db", "de", "d$", "d0", "dj", "dk", "dG",
	"d}", "d{", "dfa", "dta", "J", "3J", "~", "3~", "rx", ">>", "<<", ">j",
	"yyp", "yyP", "ywp", "p", "P",
	"cwab<Esc>", "ccz<Esc>", "C!<Esc>", "s-<Esc>", "S<Esc>",
	"ihi<Esc>", "a<CR><Esc>", "A.<Esc>", "I#<Esc>", "ox<Esc>", "Oy<Esc>", "2ok<Esc>",
	"Rzz<Esc>", "Rabc<BS><Esc>",
	"j", "k", "w", "b", "$", "0", "G", "l",
}

func bufferGen() *rapid.Generator[[]string] {
	line := rapid.StringOfN(rapid.SampledFrom([]rune("ab  .")), 0, 8, -1)
	return rapid.SliceOfN(line, 0, 6)
}

// Every command that lands on the history undoes to the exact buffer and
// cursor it started from, and redoing it gives back the same buffer.
func TestUndoRestoresState(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		lines := bufferGen().Draw(t, "lines")
		e := newTestEditor(Position{}, lines...)
		row := rapid.IntRange(0, max(0, len(lines)-1)).Draw(t, "row")
		col := rapid.IntRange(0, 8).Draw(t, "col")
		e.SetCursor(Position{Row: row, Col: col})

		cmds := rapid.SliceOfN(rapid.SampledFrom(propertyCommands), 1, 12).Draw(t, "cmds")
		for _, keys := range cmds {
			before := e.Buffer().Lines()
			cursor := e.Cursor()
			index := e.History().index

			err := run(e, keys)
			if e.Mode() != ModeNormal {
				t.Fatalf("%q left the editor in %s mode", keys, e.Mode())
			}
			if err != nil {
				if !equalLines(before, e.Buffer().Lines()) {
					t.Fatalf("%q failed with %v but changed the buffer", keys, err)
				}
				continue
			}
			if e.History().index == index {
				continue
			}
			after := e.Buffer().Lines()

			if err := e.Undo(); err != nil {
				t.Fatalf("undo %q: %v", keys, err)
			}
			if !equalLines(before, e.Buffer().Lines()) {
				t.Fatalf("undo %q: got %q, want %q", keys, e.Buffer().Lines(), before)
			}
			if e.Cursor() != cursor {
				t.Fatalf("undo %q: cursor %v, want %v", keys, e.Cursor(), cursor)
			}

			if err := e.Redo(); err != nil {
				t.Fatalf("redo %q: %v", keys, err)
			}
			if !equalLines(after, e.Buffer().Lines()) {
				t.Fatalf("redo %q: got %q, want %q", keys, e.Buffer().Lines(), after)
			}
		}
	})
}

// Undoing everything returns to the initial buffer
func TestUndoAll(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		lines := bufferGen().Draw(t, "lines")
		e := newTestEditor(Position{}, lines...)
		cmds := rapid.SliceOfN(rapid.SampledFrom(propertyCommands), 1, 12).Draw(t, "cmds")
		for _, keys := range cmds {
			_ = run(e, keys)
		}
		final := e.Buffer().Lines()
		for e.History().CanUndo() {
			if err := e.Undo(); err != nil {
				t.Fatalf("undo: %v", err)
			}
		}
		if !equalLines(lines, e.Buffer().Lines()) {
			t.Fatalf("got %q, want %q", e.Buffer().Lines(), lines)
		}
		for e.History().CanRedo() {
			if err := e.Redo(); err != nil {
				t.Fatalf("redo: %v", err)
			}
		}
		if !equalLines(final, e.Buffer().Lines()) {
			t.Fatalf("after redo got %q, want %q", e.Buffer().Lines(), final)
		}
	})
}

func equalLines(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
