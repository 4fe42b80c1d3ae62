package govim

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNothingToUndo   = errors.New("already at oldest change")
	ErrNothingToRedo   = errors.New("already at newest change")
	ErrOutOfRange      = errors.New("position out of range")
	ErrMotionFailed    = errors.New("motion failed")
	ErrPatternNotFound = errors.New("pattern not found")
	ErrNoFileName      = errors.New("no file name")
	ErrNotClosed       = errors.New("insert has not been closed")
	ErrModified        = errors.New("no write since last change (add ! to override)")
	ErrEmptyBuffer     = errors.New("buffer is empty")
	ErrNoPreviousEdit  = errors.New("no previous change to repeat")
	ErrNoPattern       = errors.New("E35: no previous regular expression")
	ErrTooLarge        = errors.New("E340: result too large")
)

const (
	// MaxCount is the largest count the key machine accepts
	MaxCount = 99999999
	// MaxTextSize bounds the bytes a single repeated insert or put may add
	MaxTextSize = 1 << 24
)

// repeatText is strings.Repeat bounded by MaxTextSize
func repeatText(s string, n int) (string, error) {
	if n <= 0 || s == "" {
		return "", nil
	}
	if n > MaxTextSize/len(s) {
		return "", ErrTooLarge
	}
	return strings.Repeat(s, n), nil
}

// ParseError is a malformed ex command line
type ParseError struct {
	Pos int
	Msg string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("E492: %s (at %d)", e.Msg, e.Pos)
}

// IsParseError checks if an error is a ParseError
func IsParseError(err error) (*ParseError, bool) {
	var parseErr *ParseError
	if errors.As(err, &parseErr) {
		return parseErr, true
	}
	return nil, false
}

// InvalidSequenceError is a key sequence rejected by the grammar.
// The buffered keys must be discarded.
type InvalidSequenceError struct {
	Keys   string
	Reason string
}

func (e *InvalidSequenceError) Error() string {
	return fmt.Sprintf("invalid key sequence %q: %s", e.Keys, e.Reason)
}

// IsInvalidSequence checks if an error is an InvalidSequenceError
func IsInvalidSequence(err error) (*InvalidSequenceError, bool) {
	var seqErr *InvalidSequenceError
	if errors.As(err, &seqErr) {
		return seqErr, true
	}
	return nil, false
}

// ExecError is a failure while executing a command. The buffer and cursor
// are left as they were before the command.
type ExecError struct {
	Op  string
	Err error
}

func (e *ExecError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ExecError) Unwrap() error {
	return e.Err
}

// IsExecError checks if an error is an ExecError
func IsExecError(err error) (*ExecError, bool) {
	var execErr *ExecError
	if errors.As(err, &execErr) {
		return execErr, true
	}
	return nil, false
}

func execErr(op string, err error) error {
	if err == nil {
		return nil
	}
	if _, ok := IsExecError(err); ok {
		return err
	}
	return &ExecError{Op: op, Err: err}
}
