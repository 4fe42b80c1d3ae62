package ex

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/samber/mo"

	"github.com/slzatz/vix/core/log"
	"github.com/slzatz/vix/vim/govim"
)

// verbParser parses what follows the verb of a command line
type verbParser func(p *parser, rng mo.Option[LineRange]) (runner, error)

// parser is a recursive-descent parser over an immutable token slice.
// Backtracking resets the index to a saved mark.
type parser struct {
	tokens []Token
	pos    int
}

// Parse parses an ex command line (with or without the leading colon)
// into a command for Editor.Execute
func Parse(line string) (govim.Command, error) {
	cmd, err := parseTokens(Tokenize(line))
	if err != nil {
		log.Debug("ex parse failed", "line", line, "error", err)
		return nil, err
	}
	return &LineCommand{cmd: cmd, text: line}, nil
}

func parseTokens(tokens []Token) (runner, error) {
	for _, t := range tokens {
		if t.Type == Illegal {
			return nil, &govim.ParseError{Pos: t.Pos, Msg: fmt.Sprintf("unexpected %q", t.Text)}
		}
	}
	p := &parser{tokens: tokens}
	for p.accept(Colon, ":") {
	}
	if p.atEnd() {
		return nopCommand{}, nil
	}
	return p.command()
}

func (p *parser) peek() Token { return p.tokens[p.pos] }

func (p *parser) next() Token {
	t := p.tokens[p.pos]
	if t.Type != EndOfInput {
		p.pos++
	}
	return t
}

func (p *parser) accept(typ TokenType, text string) bool {
	if p.peek().is(typ, text) {
		p.next()
		return true
	}
	return false
}

func (p *parser) atEnd() bool { return p.peek().Type == EndOfInput }

func (p *parser) mark() int { return p.pos }

func (p *parser) reset(mark int) { p.pos = mark }

func (p *parser) errorf(format string, args ...any) error {
	return &govim.ParseError{Pos: p.peek().Pos, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) end() error {
	if !p.atEnd() {
		return p.errorf("trailing characters: %s", p.peek().Text)
	}
	return nil
}

// command := simple_command | complex_command
func (p *parser) command() (runner, error) {
	m := p.mark()
	if cmd, ok := p.simpleCommand(); ok {
		return cmd, nil
	}
	p.reset(m)
	return p.complexCommand()
}

// simple_command := ("q"|"quit") "!"? EOI | ("wq"|"x") Filename? EOI | address EOI
func (p *parser) simpleCommand() (runner, bool) {
	t := p.peek()
	if t.Type == Command {
		switch t.Text {
		case "q", "quit":
			p.next()
			force := p.accept(Symbol, "!")
			return runCommand{govim.NewQuit(force)}, p.atEnd()
		case "wq", "x", "xit":
			p.next()
			p.accept(Symbol, "!")
			name := p.filename()
			return runCommand{govim.NewWriteQuit(name, t.Text == "wq")}, p.atEnd()
		}
		return nil, false
	}
	addr, ok, err := p.address()
	if err != nil || !ok || !p.atEnd() {
		return nil, false
	}
	return gotoCommand{addr: addr}, true
}

// complex_command := line_range? verb
func (p *parser) complexCommand() (runner, error) {
	var rng mo.Option[LineRange]
	r, ok, err := p.lineRange()
	if err != nil {
		return nil, err
	}
	if ok {
		rng = mo.Some(r)
	}

	t := p.peek()
	if t.Type != Command && t.Type != Symbol {
		return nil, p.errorf("not an editor command: %s", t.Text)
	}
	p.next()
	verb, ok := verbs.Lookup(t.Text)
	if !ok {
		msg := fmt.Sprintf("not an editor command: %s", t.Text)
		if suggestions := verbs.Suggest(t.Text); len(suggestions) > 0 && len(suggestions) <= 3 {
			msg += fmt.Sprintf(" (did you mean %s?)", strings.Join(suggestions, ", "))
		}
		return nil, &govim.ParseError{Pos: t.Pos, Msg: msg}
	}
	return verb(p, rng)
}

// line_range := address ("," address)?
func (p *parser) lineRange() (LineRange, bool, error) {
	start, ok, err := p.address()
	if err != nil || !ok {
		return LineRange{}, false, err
	}
	r := LineRange{Start: start}
	if p.accept(Separator, ",") {
		end, ok, err := p.address()
		if err != nil {
			return r, false, err
		}
		if !ok {
			return r, false, p.errorf("missing address after ,")
		}
		r.End = mo.Some(end)
	}
	return r, true, nil
}

// address := simple (("+"|"-") Number?)* | (("+"|"-") Number?)+
func (p *parser) address() (Address, bool, error) {
	var a Address
	t := p.peek()
	switch {
	case t.Type == Number:
		n, err := p.number()
		if err != nil {
			return a, false, err
		}
		a.Simple = Simple{Kind: LineNumber, Line: n}
	case t.is(Symbol, "$"):
		p.next()
		a.Simple = Simple{Kind: LastLine}
	case t.is(Symbol, "^"):
		p.next()
		a.Simple = Simple{Kind: FirstLine}
	case t.is(Symbol, "."):
		p.next()
		a.Simple = Simple{Kind: CurrentLine}
	case t.is(Symbol, "%"):
		p.next()
		a.Simple = Simple{Kind: AllLines}
	case t.Type == Pattern:
		p.next()
		a.Simple = Simple{Kind: PatternLine, Pattern: t.Text}
	case t.is(Symbol, "+"), t.is(Symbol, "-"):
		a.Relative = true
	default:
		return a, false, nil
	}
	for {
		t := p.peek()
		if !t.is(Symbol, "+") && !t.is(Symbol, "-") {
			return a, true, nil
		}
		p.next()
		n := 1
		if p.peek().Type == Number {
			var err error
			if n, err = p.number(); err != nil {
				return a, false, err
			}
		}
		if t.Text == "-" {
			n = -n
		}
		a.Offset += n
	}
}

func (p *parser) number() (int, error) {
	t := p.next()
	n, err := strconv.Atoi(t.Text)
	if err != nil {
		return 0, &govim.ParseError{Pos: t.Pos, Msg: fmt.Sprintf("bad number %s", t.Text)}
	}
	return n, nil
}

// count parses an optional trailing count
func (p *parser) count() (int, error) {
	if p.peek().Type != Number {
		return 0, nil
	}
	n, err := p.number()
	if err == nil && n == 0 {
		err = p.errorf("E939: positive count required")
	}
	return n, err
}

func (p *parser) filename() string {
	if p.peek().Type == Filename {
		return p.next().Text
	}
	return ""
}

func parsePrint(number bool) verbParser {
	return func(p *parser, rng mo.Option[LineRange]) (runner, error) {
		return printCommand{rng: rng, number: number}, p.end()
	}
}

func parseLineNumber(p *parser, rng mo.Option[LineRange]) (runner, error) {
	return lineNumberCommand{rng: rng}, p.end()
}

func parseDelete(p *parser, rng mo.Option[LineRange]) (runner, error) {
	n, err := p.count()
	if err != nil {
		return nil, err
	}
	return deleteCommand{rng: rng, count: n}, p.end()
}

func parseYank(p *parser, rng mo.Option[LineRange]) (runner, error) {
	n, err := p.count()
	if err != nil {
		return nil, err
	}
	return yankCommand{rng: rng, count: n}, p.end()
}

func parsePut(p *parser, rng mo.Option[LineRange]) (runner, error) {
	return putCommand{rng: rng}, p.end()
}

// flags accepts substitute flags lexed either as an Option or, after & or
// a bare s, as a Command made of flag letters
func (p *parser) flags() string {
	t := p.peek()
	if t.Type == Option || t.Type == Command && strings.Trim(t.Text, "giI") == "" {
		p.next()
		return t.Text
	}
	return ""
}

func parseSubstitute(p *parser, rng mo.Option[LineRange]) (runner, error) {
	cmd := substituteCommand{rng: rng}
	if p.peek().Type == Pattern {
		cmd.pattern = p.next().Text
		t := p.next()
		if t.Type != Replacement {
			return nil, &govim.ParseError{Pos: t.Pos, Msg: "replacement expected"}
		}
		cmd.replacement = t.Text
	} else {
		cmd.repeat = true
		cmd.keepFlags = p.accept(Symbol, "&")
	}
	cmd.flags = p.flags()
	n, err := p.count()
	if err != nil {
		return nil, err
	}
	cmd.count = n
	return cmd, p.end()
}

func parseRepeatSubstitute(p *parser, rng mo.Option[LineRange]) (runner, error) {
	cmd := substituteCommand{rng: rng, repeat: true}
	cmd.keepFlags = p.accept(Symbol, "&")
	cmd.flags = p.flags()
	n, err := p.count()
	if err != nil {
		return nil, err
	}
	cmd.count = n
	return cmd, p.end()
}

func parseGlobal(invert bool) verbParser {
	return func(p *parser, rng mo.Option[LineRange]) (runner, error) {
		cmd := globalCommand{rng: rng, invert: invert}
		if p.accept(Symbol, "!") {
			cmd.invert = true
		}
		t := p.next()
		if t.Type != Pattern {
			return nil, &govim.ParseError{Pos: t.Pos, Msg: "E476: pattern expected"}
		}
		cmd.pattern = t.Text
		cmd.sub = append([]Token(nil), p.tokens[p.pos:]...)
		p.pos = len(p.tokens) - 1

		sub, err := cmd.subCommand()
		if err != nil {
			return nil, err
		}
		if _, nested := sub.(globalCommand); nested {
			return nil, &govim.ParseError{Pos: t.Pos, Msg: "E147: cannot do :global recursive"}
		}
		return cmd, nil
	}
}

func parseMove(copyLines bool) verbParser {
	return func(p *parser, rng mo.Option[LineRange]) (runner, error) {
		dest, ok, err := p.address()
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, p.errorf("E14: invalid address")
		}
		return moveCommand{rng: rng, dest: dest, copy: copyLines}, p.end()
	}
}

func parseJoin(p *parser, rng mo.Option[LineRange]) (runner, error) {
	n, err := p.count()
	if err != nil {
		return nil, err
	}
	return joinCommand{rng: rng, count: n}, p.end()
}

func parseShift(left bool) verbParser {
	return func(p *parser, rng mo.Option[LineRange]) (runner, error) {
		cmd := shiftCommand{rng: rng, left: left, times: 1}
		sym := ">"
		if left {
			sym = "<"
		}
		for p.accept(Symbol, sym) {
			cmd.times++
		}
		n, err := p.count()
		if err != nil {
			return nil, err
		}
		cmd.count = n
		return cmd, p.end()
	}
}

func parseRead(p *parser, rng mo.Option[LineRange]) (runner, error) {
	if p.peek().is(Symbol, "!") {
		return nil, p.errorf("shell commands are not supported")
	}
	return readCommand{rng: rng, name: p.filename()}, p.end()
}

func parseWrite(p *parser, rng mo.Option[LineRange]) (runner, error) {
	p.accept(Symbol, "!")
	return writeCommand{rng: rng, name: p.filename()}, p.end()
}

func parseWriteQuit(always bool) verbParser {
	return func(p *parser, _ mo.Option[LineRange]) (runner, error) {
		p.accept(Symbol, "!")
		return runCommand{govim.NewWriteQuit(p.filename(), always)}, p.end()
	}
}

func parseQuit(p *parser, _ mo.Option[LineRange]) (runner, error) {
	force := p.accept(Symbol, "!")
	return runCommand{govim.NewQuit(force)}, p.end()
}

func parseEdit(p *parser, _ mo.Option[LineRange]) (runner, error) {
	force := p.accept(Symbol, "!")
	return editCommand{name: p.filename(), force: force}, p.end()
}

func parseUndo(p *parser, _ mo.Option[LineRange]) (runner, error) {
	return runCommand{govim.NewUndo(1)}, p.end()
}

func parseRedo(p *parser, _ mo.Option[LineRange]) (runner, error) {
	return runCommand{govim.NewRedo(1)}, p.end()
}

func parseSet(p *parser, _ mo.Option[LineRange]) (runner, error) {
	var cmd setCommand
	for !p.atEnd() {
		t := p.next()
		if t.Type != Command {
			return nil, &govim.ParseError{Pos: t.Pos, Msg: fmt.Sprintf("E518: unknown option: %s", t.Text)}
		}
		s := setting{name: t.Text}
		if p.accept(Symbol, "=") {
			if p.peek().Type != Number {
				return nil, p.errorf("E521: number required after =")
			}
			n, err := p.number()
			if err != nil {
				return nil, err
			}
			s.value = mo.Some(n)
		}
		cmd.settings = append(cmd.settings, s)
	}
	return cmd, nil
}

func parseHelp(p *parser, _ mo.Option[LineRange]) (runner, error) {
	return helpCommand{topic: p.filename()}, p.end()
}
