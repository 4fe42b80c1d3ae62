package govim

import (
	"fmt"

	"github.com/samber/mo"
)

// Mode is the editor input mode
type Mode int

const (
	ModeNormal Mode = iota
	ModeInsert
	ModeReplace
	ModeCommandLine
)

func (m Mode) String() string {
	switch m {
	case ModeInsert:
		return "insert"
	case ModeReplace:
		return "replace"
	case ModeCommandLine:
		return "command"
	default:
		return "normal"
	}
}

// Position is a buffer position. Col is a character (rune) offset and may
// equal the line length (append position).
type Position struct {
	Row int
	Col int
}

// Less reports whether p comes before q in row-major order
func (p Position) Less(q Position) bool {
	if p.Row != q.Row {
		return p.Row < q.Row
	}
	return p.Col < q.Col
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Row, p.Col)
}

// Region is a resolved span of the buffer. End is exclusive and Start <= End.
// Line-wise regions have Col 0 on both ends.
type Region struct {
	Start    Position
	End      Position
	Linewise bool
}

// Ordered returns the region with its endpoints swapped if needed
func (r Region) Ordered() Region {
	if r.End.Less(r.Start) {
		r.Start, r.End = r.End, r.Start
	}
	return r
}

// Empty reports whether the region spans nothing
func (r Region) Empty() bool {
	return r.Start == r.End
}

// Lines is the number of whole lines in a line-wise region
func (r Region) Lines() int {
	return r.End.Row - r.Start.Row
}

// Register is the unnamed register
type Register struct {
	Text     string
	Linewise bool
}

// JumpDescriptor is a motion together with its repeat count.
// Arg holds the target character of f, F, t and T.
type JumpDescriptor struct {
	Count int
	Key   Key
	Arg   rune
}

// CommandDescriptor is the fully resolved output of the key-sequence
// machine or of the ex parser
type CommandDescriptor struct {
	Count int
	Key   Key
	Arg   rune
	Range mo.Option[JumpDescriptor]
}

// Doubled reports whether the descriptor is a doubled operator (dd, cc, yy)
func (d CommandDescriptor) Doubled() bool {
	j, ok := d.Range.Get()
	return ok && j.Key == d.Key
}

func (d CommandDescriptor) String() string {
	s := fmt.Sprintf("%d%s", d.Count, d.Key)
	if d.Arg != 0 {
		s += string(d.Arg)
	}
	if j, ok := d.Range.Get(); ok {
		s += fmt.Sprintf("(%d%s", j.Count, j.Key)
		if j.Arg != 0 {
			s += string(j.Arg)
		}
		s += ")"
	}
	return s
}
