package ex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

type tok struct {
	typ  TokenType
	text string
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		line string
		want []tok
	}{
		{"", nil},
		{":2,3d", []tok{{Colon, ":"}, {Number, "2"}, {Separator, ","}, {Number, "3"}, {Command, "d"}}},
		{"1,$p", []tok{{Number, "1"}, {Separator, ","}, {Symbol, "$"}, {Command, "p"}}},
		{".+2", []tok{{Symbol, "."}, {Symbol, "+"}, {Number, "2"}}},
		{"%s/a\\/b/c/gi 3", []tok{{Symbol, "%"}, {Command, "s"}, {Pattern, `a\/b`}, {Replacement, "c"}, {Option, "gi"}, {Number, "3"}}},
		{"s/a/b", []tok{{Command, "s"}, {Pattern, "a"}, {Replacement, "b"}}},
		{"s#a/b#c#", []tok{{Command, "s"}, {Pattern, "a/b"}, {Replacement, "c"}}},
		{"s//x/", []tok{{Command, "s"}, {Pattern, ""}, {Replacement, "x"}}},
		{"set sw=4 noic", []tok{{Command, "set"}, {Command, "sw"}, {Symbol, "="}, {Number, "4"}, {Command, "noic"}}},
		{"w my file.txt  ", []tok{{Command, "w"}, {Filename, "my file.txt"}}},
		{"e! other", []tok{{Command, "e"}, {Symbol, "!"}, {Filename, "other"}}},
		{"wq", []tok{{Command, "wq"}}},
		{"r", []tok{{Command, "r"}}},
		{"g/x/d", []tok{{Command, "g"}, {Pattern, "x"}, {Command, "d"}}},
		{"g!/x/s/a/b/g", []tok{{Command, "g"}, {Symbol, "!"}, {Pattern, "x"}, {Command, "s"}, {Pattern, "a"}, {Replacement, "b"}, {Option, "g"}}},
		{"/abc/", []tok{{Pattern, "abc"}}},
		{"/abc", []tok{{Illegal, "/abc"}}},
		{"s/abc", []tok{{Command, "s"}, {Illegal, "abc"}}},
		{"%>>", []tok{{Symbol, "%"}, {Symbol, ">"}, {Symbol, ">"}}},
		{"&&", []tok{{Symbol, "&"}, {Symbol, "&"}}},
		{"@", []tok{{Illegal, "@"}}},
		{"h :s", []tok{{Command, "h"}, {Filename, ":s"}}},
	}

	for _, tc := range tests {
		t.Run(tc.line, func(t *testing.T) {
			tokens := Tokenize(tc.line)
			got := make([]tok, 0, len(tokens)-1)
			for _, tk := range tokens[:len(tokens)-1] {
				got = append(got, tok{tk.Type, tk.Text})
			}
			if tc.want == nil {
				tc.want = []tok{}
			}
			assert.Equal(t, tc.want, got)
			assert.Equal(t, EndOfInput, tokens[len(tokens)-1].Type)
		})
	}
}

func TestTokenPositions(t *testing.T) {
	tokens := Tokenize(" 12, $d")
	assert.Equal(t, 1, tokens[0].Pos)
	assert.Equal(t, 3, tokens[1].Pos)
	assert.Equal(t, 5, tokens[2].Pos)
	assert.Equal(t, 6, tokens[3].Pos)
	assert.Equal(t, 7, tokens[4].Pos)
}

func TestTokenString(t *testing.T) {
	assert.Equal(t, `Number("12")`, Tokenize("12")[0].String())
	assert.Equal(t, "EOI", Tokenize("")[0].String())
	assert.Equal(t, "Replacement", Replacement.String())
}

// Any line ends in exactly one EndOfInput, and tokens never overlap
func TestTokenizeTotal(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		line := rapid.StringOf(rapid.SampledFrom([]rune(" :,.$%+-/\\!#=&<>sgwrqpd12ab@"))).Draw(t, "line")
		tokens := Tokenize(line)
		eoi := 0
		last := -1
		for _, tk := range tokens {
			if tk.Type == EndOfInput {
				eoi++
			}
			if tk.Pos < last {
				t.Fatalf("token %v at %d before %d", tk, tk.Pos, last)
			}
			last = tk.Pos
		}
		if eoi != 1 || tokens[len(tokens)-1].Type != EndOfInput {
			t.Fatalf("tokens %v do not end in exactly one EndOfInput", tokens)
		}
	})
}
