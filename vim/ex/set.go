package ex

import (
	"fmt"
	"sort"
	"strings"

	"github.com/samber/mo"

	"github.com/slzatz/vix/vim/govim"
)

type option struct {
	short  string
	get    func(o govim.Options) any
	setInt func(o *govim.Options, n int)
	setOn  func(o *govim.Options, on bool)
}

var options = map[string]option{
	"ignorecase": {
		short: "ic",
		get:   func(o govim.Options) any { return o.IgnoreCase },
		setOn: func(o *govim.Options, on bool) { o.IgnoreCase = on },
	},
	"wrapscan": {
		short: "ws",
		get:   func(o govim.Options) any { return o.WrapScan },
		setOn: func(o *govim.Options, on bool) { o.WrapScan = on },
	},
	"shiftwidth": {
		short:  "sw",
		get:    func(o govim.Options) any { return o.ShiftWidth },
		setInt: func(o *govim.Options, n int) { o.ShiftWidth = n },
	},
	"tabstop": {
		short:  "ts",
		get:    func(o govim.Options) any { return o.TabStop },
		setInt: func(o *govim.Options, n int) { o.TabStop = n },
	},
	"undolevels": {
		short:  "ul",
		get:    func(o govim.Options) any { return o.UndoLevels },
		setInt: func(o *govim.Options, n int) { o.UndoLevels = n },
	},
}

func lookupOption(name string) (string, option, bool) {
	if opt, ok := options[name]; ok {
		return name, opt, true
	}
	for long, opt := range options {
		if opt.short == name {
			return long, opt, true
		}
	}
	return "", option{}, false
}

func formatOption(name string, o govim.Options) string {
	switch v := options[name].get(o).(type) {
	case bool:
		if v {
			return "  " + name
		}
		return "no" + name
	default:
		return fmt.Sprintf("  %s=%v", name, v)
	}
}

type setting struct {
	name  string
	value mo.Option[int]
}

type setCommand struct{ settings []setting }

func (c setCommand) run(e *govim.Editor, _ *govim.Composite) error {
	opts := e.Options()
	if len(c.settings) == 0 {
		names := make([]string, 0, len(options))
		for name := range options {
			names = append(names, name)
		}
		sort.Strings(names)
		out := make([]string, len(names))
		for i, name := range names {
			out[i] = formatOption(name, opts)
		}
		e.Presenter().Echo(out...)
		return nil
	}

	var shown []string
	for _, s := range c.settings {
		name, on := s.name, true
		long, opt, ok := lookupOption(name)
		if !ok && strings.HasPrefix(name, "no") {
			name, on = strings.TrimPrefix(name, "no"), false
			long, opt, ok = lookupOption(name)
			ok = ok && opt.setOn != nil
		}
		if !ok {
			return fmt.Errorf("E518: unknown option: %s", s.name)
		}
		n, hasValue := s.value.Get()
		switch {
		case opt.setOn != nil && hasValue:
			return fmt.Errorf("E474: invalid argument: %s=%d", s.name, n)
		case opt.setOn != nil:
			opt.setOn(&opts, on)
		case hasValue:
			if n < 0 || n == 0 && long != "undolevels" {
				return fmt.Errorf("E487: argument must be positive: %s=%d", s.name, n)
			}
			opt.setInt(&opts, n)
		default:
			shown = append(shown, formatOption(long, opts))
		}
	}
	if opts.UndoLevels != e.Options().UndoLevels {
		e.History().SetLimit(opts.UndoLevels)
	}
	e.SetOptions(opts)
	if len(shown) > 0 {
		e.Presenter().Echo(shown...)
	}
	return nil
}
