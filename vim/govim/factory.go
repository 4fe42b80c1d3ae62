package govim

import (
	"fmt"

	"github.com/samber/mo"

	"github.com/slzatz/vix/vim/registry"
)

// commandFactory builds the command for a completed descriptor
type commandFactory func(e *Editor, d CommandDescriptor) (Command, error)

var normalCommands = newNormalRegistry()

func insertFactory(kind insertKind) commandFactory {
	return func(_ *Editor, d CommandDescriptor) (Command, error) {
		return newInsert(kind, d.Count), nil
	}
}

// operatorFactory handles d c y > < with a motion or doubled
func operatorFactory(e *Editor, d CommandDescriptor) (Command, error) {
	if d.Key.IsRune('Z') && d.Arg == 'Q' {
		return NewQuit(true), nil
	}
	jump, ok := d.Range.Get()
	if !ok {
		return nil, &InvalidSequenceError{Keys: d.Key.String(), Reason: "operator needs a motion"}
	}
	count := countProduct(d.Count, jump.Count)
	jump.Count = 0
	switch d.Key.Rune {
	case 'd':
		return NewDelete(count, jump), nil
	case 'c':
		return NewChange(count, jump), nil
	case 'y':
		return NewYank(count, jump), nil
	case '>':
		return NewShift(false, count, jump), nil
	case '<':
		return NewShift(true, count, jump), nil
	case 'Z':
		return NewWriteQuit("", false), nil
	}
	return nil, &InvalidSequenceError{Keys: d.String(), Reason: "unknown operator"}
}

// doubled returns a descriptor for op applied to count whole lines
func doubled(op rune, count int) CommandDescriptor {
	return CommandDescriptor{Key: Rune(op), Range: mo.Some(JumpDescriptor{Count: count, Key: Rune(op)})}
}

// withMotion returns a descriptor for op applied to motion key
func withMotion(op rune, count int, key Key) CommandDescriptor {
	return CommandDescriptor{Key: Rune(op), Range: mo.Some(JumpDescriptor{Count: count, Key: key})}
}

func newNormalRegistry() *registry.Registry[commandFactory] {
	r := registry.New[commandFactory]()

	// Insert mode entry
	r.Register("i", insertFactory(insertBefore), registry.Info{
		Description: "Insert text before the cursor",
		Usage:       "[count]i",
		Category:    "Insert",
	})
	r.Register("I", insertFactory(insertLineStart), registry.Info{
		Description: "Insert text before the first non-blank of the line",
		Usage:       "[count]I",
		Category:    "Insert",
	})
	r.Register("a", insertFactory(appendAfter), registry.Info{
		Description: "Append text after the cursor",
		Usage:       "[count]a",
		Category:    "Insert",
	})
	r.Register("A", insertFactory(appendLineEnd), registry.Info{
		Description: "Append text at the end of the line",
		Usage:       "[count]A",
		Category:    "Insert",
	})
	r.Register("o", insertFactory(openBelow), registry.Info{
		Description: "Open a new line below the cursor",
		Usage:       "[count]o",
		Category:    "Insert",
	})
	r.Register("O", insertFactory(openAbove), registry.Info{
		Description: "Open a new line above the cursor",
		Usage:       "[count]O",
		Category:    "Insert",
	})
	r.Register("R", insertFactory(replaceMode), registry.Info{
		Description: "Enter replace mode: typed characters overwrite the text",
		Usage:       "[count]R",
		Category:    "Insert",
	})

	// Operators
	for _, op := range []struct {
		key, desc string
	}{
		{"d", "Delete the text the motion moves over"},
		{"c", "Delete the text the motion moves over and start insert mode"},
		{"y", "Yank the text the motion moves over"},
		{">", "Shift lines right by shiftwidth"},
		{"<", "Shift lines left by shiftwidth"},
	} {
		r.Register(op.key, operatorFactory, registry.Info{
			Description: op.desc,
			Usage:       "[count]" + op.key + "[count]{motion}",
			Category:    "Operators",
			Examples:    []string{op.key + "w", "3" + op.key + op.key},
		})
	}
	r.Register("Z", operatorFactory, registry.Info{
		Description: "ZZ writes the file if modified and quits; ZQ quits without writing",
		Usage:       "ZZ",
		Category:    "Files",
	})

	// Editing without a range
	r.Register("x", func(e *Editor, d CommandDescriptor) (Command, error) {
		return operatorFactory(e, withMotion('d', d.Count, Rune('l')))
	}, registry.Info{
		Aliases:     []string{Named(KeyDelete).String()},
		Description: "Delete characters under and after the cursor",
		Usage:       "[count]x",
		Category:    "Editing",
	})
	r.Register("X", func(e *Editor, d CommandDescriptor) (Command, error) {
		return operatorFactory(e, withMotion('d', d.Count, Rune('h')))
	}, registry.Info{
		Description: "Delete characters before the cursor",
		Usage:       "[count]X",
		Category:    "Editing",
	})
	r.Register("D", func(e *Editor, d CommandDescriptor) (Command, error) {
		return operatorFactory(e, withMotion('d', d.Count, Rune('$')))
	}, registry.Info{
		Description: "Delete to the end of the line",
		Usage:       "[count]D",
		Category:    "Editing",
	})
	r.Register("C", func(e *Editor, d CommandDescriptor) (Command, error) {
		return operatorFactory(e, withMotion('c', d.Count, Rune('$')))
	}, registry.Info{
		Description: "Change to the end of the line",
		Usage:       "[count]C",
		Category:    "Editing",
	})
	r.Register("s", func(e *Editor, d CommandDescriptor) (Command, error) {
		return operatorFactory(e, withMotion('c', d.Count, Rune('l')))
	}, registry.Info{
		Description: "Substitute characters: delete them and start insert mode",
		Usage:       "[count]s",
		Category:    "Editing",
	})
	r.Register("S", func(e *Editor, d CommandDescriptor) (Command, error) {
		return operatorFactory(e, doubled('c', d.Count))
	}, registry.Info{
		Description: "Substitute whole lines",
		Usage:       "[count]S",
		Category:    "Editing",
	})
	r.Register("Y", func(e *Editor, d CommandDescriptor) (Command, error) {
		return operatorFactory(e, doubled('y', d.Count))
	}, registry.Info{
		Description: "Yank whole lines",
		Usage:       "[count]Y",
		Category:    "Editing",
	})
	r.Register("p", func(_ *Editor, d CommandDescriptor) (Command, error) {
		return NewPut(d.Count, false), nil
	}, registry.Info{
		Description: "Put the unnamed register after the cursor",
		Usage:       "[count]p",
		Category:    "Editing",
	})
	r.Register("P", func(_ *Editor, d CommandDescriptor) (Command, error) {
		return NewPut(d.Count, true), nil
	}, registry.Info{
		Description: "Put the unnamed register before the cursor",
		Usage:       "[count]P",
		Category:    "Editing",
	})
	r.Register("r", func(_ *Editor, d CommandDescriptor) (Command, error) {
		return &ReplaceCharCommand{count: d.Count, arg: d.Arg}, nil
	}, registry.Info{
		Description: "Replace characters with {char}",
		Usage:       "[count]r{char}",
		Category:    "Editing",
	})
	r.Register("~", func(_ *Editor, d CommandDescriptor) (Command, error) {
		return &ToggleCaseCommand{count: d.Count}, nil
	}, registry.Info{
		Description: "Switch the case of characters",
		Usage:       "[count]~",
		Category:    "Editing",
	})
	r.Register("J", func(e *Editor, d CommandDescriptor) (Command, error) {
		return &JoinCommand{lines: d.Count}, nil
	}, registry.Info{
		Description: "Join lines",
		Usage:       "[count]J",
		Category:    "Editing",
	})

	// Undo, redo, repeat
	r.Register("u", func(_ *Editor, d CommandDescriptor) (Command, error) {
		return NewUndo(d.Count), nil
	}, registry.Info{
		Description: "Undo changes",
		Usage:       "[count]u",
		Category:    "Undo",
	})
	r.Register(Ctrl('r').String(), func(_ *Editor, d CommandDescriptor) (Command, error) {
		return NewRedo(d.Count), nil
	}, registry.Info{
		Description: "Redo changes that were undone",
		Usage:       "[count]<C-r>",
		Category:    "Undo",
	})
	r.Register(".", func(_ *Editor, d CommandDescriptor) (Command, error) {
		return &RepeatCommand{count: d.Count}, nil
	}, registry.Info{
		Description: "Repeat the last change, with count replacing the original count",
		Usage:       "[count].",
		Category:    "Undo",
	})

	// Command line
	for _, p := range []struct {
		key  rune
		desc string
	}{
		{':', "Enter an ex command"},
		{'/', "Search forward for a pattern"},
		{'?', "Search backward for a pattern"},
	} {
		prompt := p.key
		r.Register(string(prompt), func(_ *Editor, _ CommandDescriptor) (Command, error) {
			return &CommandLineCommand{prompt: prompt}, nil
		}, registry.Info{
			Description: p.desc,
			Usage:       string(prompt),
			Category:    "Command line",
		})
	}

	r.Register(Ctrl('g').String(), func(_ *Editor, _ CommandDescriptor) (Command, error) {
		return FileInfoCommand{}, nil
	}, registry.Info{
		Description: "Show the file name and cursor position",
		Usage:       "<C-g>",
		Category:    "Files",
	})
	r.Register(Ctrl('l').String(), func(_ *Editor, _ CommandDescriptor) (Command, error) {
		return NopCommand{}, nil
	}, registry.Info{
		Description: "Redraw the screen",
		Usage:       "<C-l>",
		Category:    "Files",
	})
	return r
}

// NewCommand builds the concrete command for a descriptor produced by the
// key-sequence machine
func NewCommand(e *Editor, d CommandDescriptor) (Command, error) {
	switch {
	case d.Key.IsEsc():
		return NopCommand{}, nil
	case d.Key.Name == KeyEnter && d.Range.IsAbsent():
		return NewMotion(JumpDescriptor{Count: d.Count, Key: d.Key}), nil
	case d.Range.IsAbsent() && IsMotion(d.Key):
		return NewMotion(JumpDescriptor{Count: d.Count, Key: d.Key, Arg: d.Arg}), nil
	}
	factory, ok := normalCommands.Lookup(d.Key.String())
	if !ok {
		return nil, &InvalidSequenceError{Keys: d.String(), Reason: fmt.Sprintf("%s is not a command", d.Key)}
	}
	return factory(e, d)
}

// NormalHelp returns markdown help for normal mode commands: a single key,
// a category, or everything when topic is empty
func NormalHelp(topic string) (string, bool) {
	if topic == "" {
		return normalCommands.FormatAllHelp("Normal mode"), true
	}
	if text, ok := normalCommands.FormatCommandHelp(topic); ok {
		return text, true
	}
	return normalCommands.FormatCategoryHelp(topic)
}
