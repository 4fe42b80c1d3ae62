package ex

import (
	"fmt"
	"strings"
	"unicode"
)

// TokenType classifies a token of an ex command line
type TokenType int

const (
	Colon TokenType = iota
	Command
	Option
	Number
	Symbol
	Pattern
	Replacement
	Filename
	Separator
	EndOfInput
	Illegal
)

var tokenNames = [...]string{
	Colon:       "Colon",
	Command:     "Command",
	Option:      "Option",
	Number:      "Number",
	Symbol:      "Symbol",
	Pattern:     "Pattern",
	Replacement: "Replacement",
	Filename:    "Filename",
	Separator:   "Separator",
	EndOfInput:  "EndOfInput",
	Illegal:     "Illegal",
}

func (t TokenType) String() string {
	if int(t) < len(tokenNames) {
		return tokenNames[t]
	}
	return fmt.Sprintf("TokenType(%d)", int(t))
}

// Token is one lexical unit. Pos is the rune offset of the token in the
// line.
type Token struct {
	Type TokenType
	Text string
	Pos  int
}

func (t Token) String() string {
	if t.Type == EndOfInput {
		return "EOI"
	}
	return fmt.Sprintf("%s(%q)", t.Type, t.Text)
}

func (t Token) is(typ TokenType, text string) bool {
	return t.Type == typ && t.Text == text
}

const eof = -1

const symbols = "!#=.-+*%$^<>&"

// commands whose argument is the rest of the line
var fileCommands = map[string]bool{
	"r": true, "read": true,
	"w": true, "write": true,
	"e": true, "edit": true,
	"wq": true, "x": true, "xit": true,
	"h": true, "help": true,
}

var substituteCommands = map[string]bool{"s": true, "substitute": true}

type lexer struct {
	input  []rune
	pos    int
	tokens []Token
}

// Tokenize splits an ex command line into tokens. The result always ends
// with exactly one EndOfInput token.
func Tokenize(line string) []Token {
	l := &lexer{input: []rune(line)}
	l.run()
	return l.tokens
}

func (l *lexer) next() rune {
	if l.pos >= len(l.input) {
		l.pos++
		return eof
	}
	r := l.input[l.pos]
	l.pos++
	return r
}

func (l *lexer) backup() {
	l.pos--
}

func (l *lexer) peek() rune {
	r := l.next()
	l.backup()
	return r
}

func (l *lexer) emit(typ TokenType, start int, text string) {
	l.tokens = append(l.tokens, Token{Type: typ, Text: text, Pos: start})
}

func (l *lexer) skipSpace() {
	for {
		r := l.next()
		if r == eof || !unicode.IsSpace(r) {
			l.backup()
			return
		}
	}
}

func (l *lexer) run() {
	for {
		l.skipSpace()
		start := l.pos
		r := l.next()
		switch {
		case r == eof:
			l.emit(EndOfInput, start, "")
			return
		case r == ':':
			l.emit(Colon, start, ":")
		case r == ',':
			l.emit(Separator, start, ",")
		case strings.ContainsRune(symbols, r):
			l.emit(Symbol, start, string(r))
		case isDigit(r):
			l.backup()
			l.emit(Number, start, l.scanWhile(isDigit))
		case r == '/':
			text, ok := l.scanDelimited('/')
			if !ok {
				l.emit(Illegal, start, "/"+text)
				l.emit(EndOfInput, l.pos, "")
				return
			}
			l.emit(Pattern, start, text)
		case unicode.IsLetter(r):
			l.backup()
			word := l.scanWhile(unicode.IsLetter)
			l.emit(Command, start, word)
			switch {
			case substituteCommands[word] && isDelimiter(l.peek()):
				if !l.substitute() {
					return
				}
			case fileCommands[word]:
				l.file()
				l.emit(EndOfInput, l.pos, "")
				return
			}
		default:
			l.emit(Illegal, start, string(r))
		}
	}
}

func (l *lexer) scanWhile(ok func(rune) bool) string {
	var sb strings.Builder
	for {
		r := l.next()
		if r == eof || !ok(r) {
			l.backup()
			return sb.String()
		}
		sb.WriteRune(r)
	}
}

// scanDelimited reads up to an unescaped delim and returns the raw text in
// between. The delimiter is consumed; ok is false at end of line.
func (l *lexer) scanDelimited(delim rune) (string, bool) {
	var sb strings.Builder
	escaped := false
	for {
		r := l.next()
		switch {
		case r == eof:
			l.backup()
			return sb.String(), false
		case escaped:
			escaped = false
		case r == '\\':
			escaped = true
		case r == delim:
			return sb.String(), true
		}
		sb.WriteRune(r)
	}
}

// substitute scans the pattern, replacement and flags of :s. It returns
// false after emitting the final tokens of a malformed command.
func (l *lexer) substitute() bool {
	delim := l.next()
	start := l.pos
	pattern, ok := l.scanDelimited(delim)
	if !ok {
		l.emit(Illegal, start, pattern)
		l.emit(EndOfInput, l.pos, "")
		return false
	}
	l.emit(Pattern, start, pattern)

	start = l.pos
	replacement, _ := l.scanDelimited(delim)
	l.emit(Replacement, start, replacement)

	start = l.pos
	if flags := l.scanWhile(isFlag); flags != "" {
		l.emit(Option, start, flags)
	}
	return true
}

// file scans an optional ! and the rest of the line as one Filename
func (l *lexer) file() {
	if l.peek() == '!' {
		l.emit(Symbol, l.pos, "!")
		l.next()
	}
	l.skipSpace()
	start := l.pos
	name := strings.TrimRightFunc(string(l.input[min(l.pos, len(l.input)):]), unicode.IsSpace)
	if name != "" {
		l.emit(Filename, start, name)
	}
	l.pos = len(l.input)
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func isFlag(r rune) bool { return r == 'g' || r == 'i' || r == 'I' }

// isDelimiter reports whether r can delimit a substitute pattern
func isDelimiter(r rune) bool {
	if r == eof || r == '\\' || r == '"' || r == '|' {
		return false
	}
	return !unicode.IsLetter(r) && !unicode.IsDigit(r) && !unicode.IsSpace(r)
}
