package govim

import (
	"fmt"
	"strings"

	"github.com/samber/mo"
)

// State is a pending state of the key-sequence machine
type State int

const (
	StateStart State = iota
	StateAccumulateDigits
	StateCommandComposing
	StateCommandAndDigits
	StateDigitsAndCommand
	StateDigitsAndCommandAndDigits
	// StateAwaitingArgument waits for the target character of f, F, t, T
	// or r
	StateAwaitingArgument
)

var stateNames = [...]string{
	"Start",
	"AccumulateDigits",
	"CommandComposing",
	"CommandAndDigits",
	"DigitsAndCommand",
	"DigitsAndCommandAndDigits",
	"AwaitingArgument",
}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// ResultKind tells what a key did to the machine
type ResultKind int

const (
	ResultStart ResultKind = iota
	ResultPending
	ResultCompleted
	ResultInvalid
)

// Result is the outcome of feeding keys to the machine. Descriptor is set
// when Kind is ResultCompleted, Err when Kind is ResultInvalid.
type Result struct {
	Kind       ResultKind
	State      State
	Descriptor CommandDescriptor
	Err        *InvalidSequenceError
}

// editKeys complete from Start or AccumulateDigits and cannot follow an
// operator
var editKeys = map[Key]bool{
	Rune('i'): true, Rune('I'): true, Rune('a'): true, Rune('A'): true,
	Rune('o'): true, Rune('O'): true, Rune('s'): true, Rune('S'): true,
	Rune('x'): true, Rune('X'): true, Rune('r'): true, Rune('R'): true,
	Rune('D'): true, Rune('p'): true, Rune('P'): true, Rune('~'): true,
	Rune('u'): true, Rune('C'): true, Rune('Y'): true, Rune('J'): true,
	Rune('.'): true, Rune(':'): true, Rune('/'): true, Rune('?'): true,
	Ctrl('r'): true, Ctrl('g'): true, Ctrl('l'): true,
	Named(KeyDelete): true,
}

// operatorKeys take a motion or are doubled
var operatorKeys = map[Key]bool{
	Rune('d'): true, Rune('c'): true, Rune('y'): true,
	Rune('>'): true, Rune('<'): true, Rune('Z'): true,
}

// IsOperator reports whether k is an operator key
func IsOperator(k Key) bool { return operatorKeys[k] }

// IsEditKey reports whether k is an editing key that takes no range
func IsEditKey(k Key) bool { return editKeys[k] }

func digitValue(k Key) (int, bool) {
	if k.Name != KeyNone || k.Mods != 0 || k.Rune < '0' || k.Rune > '9' {
		return 0, false
	}
	return int(k.Rune - '0'), true
}

// Machine is the incremental key-sequence state machine. Feed it one key
// at a time; after a completed or invalid result it is back at Start.
type Machine struct {
	state   State
	count   int
	op      Key
	digits  int
	pending CommandDescriptor
	keys    []Key
}

// NewMachine returns a machine in the Start state
func NewMachine() *Machine {
	return &Machine{}
}

// State returns the current pending state
func (m *Machine) State() State { return m.state }

// Pending returns the keys typed so far in the current sequence
func (m *Machine) Pending() string {
	var sb strings.Builder
	for _, k := range m.keys {
		sb.WriteString(k.String())
	}
	return sb.String()
}

// Reset discards buffered input
func (m *Machine) Reset() {
	*m = Machine{keys: m.keys[:0]}
}

// Feed advances the machine by one key
func (m *Machine) Feed(k Key) Result {
	m.keys = append(m.keys, k)

	if k.IsEsc() {
		return m.complete(CommandDescriptor{Count: m.count, Key: Named(KeyEsc)})
	}
	if k.Name == KeyEnter {
		return m.complete(CommandDescriptor{Count: m.count, Key: k})
	}

	if m.state == StateAwaitingArgument {
		return m.argument(k)
	}

	d, isDigit := digitValue(k)
	switch m.state {
	case StateStart:
		if k.IsRune('0') {
			return m.complete(CommandDescriptor{Key: k})
		}
		if isDigit {
			m.count = d
			return m.pendingIn(StateAccumulateDigits)
		}
		return m.first(k)

	case StateAccumulateDigits:
		if isDigit {
			if m.count > (MaxCount-d)/10 {
				return m.invalid("count exceeds %d", MaxCount)
			}
			m.count = m.count*10 + d
			return m.pendingIn(StateAccumulateDigits)
		}
		return m.first(k)

	case StateCommandComposing, StateDigitsAndCommand:
		if isDigit && d != 0 {
			m.digits = d
			if m.state == StateCommandComposing {
				return m.pendingIn(StateCommandAndDigits)
			}
			return m.pendingIn(StateDigitsAndCommandAndDigits)
		}
		return m.afterOperator(k)

	case StateCommandAndDigits, StateDigitsAndCommandAndDigits:
		if isDigit {
			if m.digits > (MaxCount-d)/10 {
				return m.invalid("count exceeds %d", MaxCount)
			}
			m.digits = m.digits*10 + d
			return m.pendingIn(m.state)
		}
		return m.afterOperator(k)
	}
	return m.invalid("unexpected state %s", m.state)
}

// first handles the key that follows an optional count
func (m *Machine) first(k Key) Result {
	switch {
	case IsMotion(k):
		desc := CommandDescriptor{Count: m.count, Key: k}
		if motionNeedsArg(k) {
			return m.await(desc)
		}
		return m.complete(desc)

	case IsOperator(k):
		m.op = k
		if m.state == StateAccumulateDigits {
			return m.pendingIn(StateDigitsAndCommand)
		}
		return m.pendingIn(StateCommandComposing)

	case IsEditKey(k):
		desc := CommandDescriptor{Count: m.count, Key: k}
		if k.IsRune('r') {
			return m.await(desc)
		}
		return m.complete(desc)
	}
	return m.invalid("%s is not a command", k)
}

// afterOperator handles the key following an operator and its digits
func (m *Machine) afterOperator(k Key) Result {
	if k == m.op {
		return m.complete(CommandDescriptor{
			Count: m.count,
			Key:   m.op,
			Range: mo.Some(JumpDescriptor{Count: m.digits, Key: k}),
		})
	}
	if m.op.IsRune('Z') {
		if k.IsRune('Q') {
			return m.complete(CommandDescriptor{Key: m.op, Arg: 'Q'})
		}
		return m.invalid("Z must be followed by Z or Q")
	}
	switch {
	case IsMotion(k):
		desc := CommandDescriptor{
			Count: m.count,
			Key:   m.op,
			Range: mo.Some(JumpDescriptor{Count: m.digits, Key: k}),
		}
		if motionNeedsArg(k) {
			return m.await(desc)
		}
		return m.complete(desc)
	case IsOperator(k):
		return m.invalid("operator %s cannot follow operator %s", k, m.op)
	case IsEditKey(k):
		return m.invalid("%s cannot follow operator %s", k, m.op)
	}
	return m.invalid("%s is not a motion", k)
}

func (m *Machine) argument(k Key) Result {
	if !k.Printable() && k.Name != KeyTab {
		return m.invalid("%s is not a character", k)
	}
	r := k.Rune
	if k.Name == KeyTab {
		r = '\t'
	}
	desc := m.pending
	if j, ok := desc.Range.Get(); ok {
		j.Arg = r
		desc.Range = mo.Some(j)
	} else {
		desc.Arg = r
	}
	return m.complete(desc)
}

func (m *Machine) await(desc CommandDescriptor) Result {
	m.pending = desc
	return m.pendingIn(StateAwaitingArgument)
}

func (m *Machine) pendingIn(s State) Result {
	m.state = s
	return Result{Kind: ResultPending, State: s}
}

func (m *Machine) complete(desc CommandDescriptor) Result {
	m.Reset()
	return Result{Kind: ResultCompleted, State: StateStart, Descriptor: desc}
}

func (m *Machine) invalid(format string, args ...any) Result {
	err := &InvalidSequenceError{Keys: m.Pending(), Reason: fmt.Sprintf(format, args...)}
	m.Reset()
	return Result{Kind: ResultInvalid, State: StateStart, Err: err}
}

// Compose runs keys through a fresh machine. The first completed or invalid
// result ends the sequence; remaining keys are ignored.
func Compose(keys []Key) Result {
	if len(keys) == 0 {
		return Result{Kind: ResultStart}
	}
	m := NewMachine()
	var res Result
	for _, k := range keys {
		res = m.Feed(k)
		if res.Kind == ResultCompleted || res.Kind == ResultInvalid {
			return res
		}
	}
	return res
}
