package govim

import (
	"errors"
	"fmt"

	"github.com/slzatz/vix/core/log"
)

var errNoFileSystem = errors.New("no file system")

func (e *Editor) fileName(name string) (string, error) {
	if name != "" {
		return name, nil
	}
	if e.buf.Name() != "" {
		return e.buf.Name(), nil
	}
	return "", ErrNoFileName
}

// WriteLines writes lines [start, end) to name, or to the buffer's file
// when name is empty. Writing the whole buffer to its own file clears the
// modified flag; a buffer without a name takes name.
func (e *Editor) WriteLines(name string, start, end int) error {
	if e.files == nil {
		return execErr("write", errNoFileSystem)
	}
	target, err := e.fileName(name)
	if err != nil {
		return execErr("write", err)
	}
	if start < 0 || end > e.buf.Len() || end < start {
		return execErr("write", ErrOutOfRange)
	}
	lines := e.buf.Lines()[start:end]
	if err := e.files.WriteLines(target, lines); err != nil {
		log.Error("write failed", "file", target, "error", err)
		return execErr("write", err)
	}
	if e.buf.Name() == "" {
		e.buf.SetName(target)
	}
	if target == e.buf.Name() && start == 0 && end == e.buf.Len() {
		e.buf.SetModified(false)
	}
	e.Status("%q %dL written", target, len(lines))
	log.Info("wrote file", "file", target, "lines", len(lines))
	return nil
}

// Write writes the whole buffer
func (e *Editor) Write(name string) error {
	return e.WriteLines(name, 0, e.buf.Len())
}

// ReadLines reads name through the file collaborator
func (e *Editor) ReadLines(name string) ([]string, error) {
	if e.files == nil {
		return nil, execErr("read", errNoFileSystem)
	}
	target, err := e.fileName(name)
	if err != nil {
		return nil, execErr("read", err)
	}
	lines, err := e.files.ReadLines(target)
	if err != nil {
		return nil, execErr("read", fmt.Errorf("%q: %w", target, err))
	}
	return lines, nil
}

// Edit loads name into the buffer, discarding the history. Unsaved changes
// are refused unless force is set.
func (e *Editor) Edit(name string, force bool) error {
	if e.buf.IsModified() && !force {
		return execErr("edit", ErrModified)
	}
	target, err := e.fileName(name)
	if err != nil {
		return execErr("edit", err)
	}
	lines, err := e.ReadLines(target)
	if err != nil {
		return err
	}
	e.ReplaceBuffer(target, lines)
	e.Status("%q %dL", target, len(lines))
	return nil
}

// FileInfo returns the Ctrl-G status text
func (e *Editor) FileInfo() string {
	name := e.buf.Name()
	if name == "" {
		name = "[No Name]"
	}
	mod := ""
	if e.buf.IsModified() {
		mod = " [Modified]"
	}
	n := e.buf.Len()
	pct := 0
	if n > 0 {
		pct = (e.cursor.Row + 1) * 100 / n
	}
	return fmt.Sprintf("%q%s %d lines --%d%%--", name, mod, n, pct)
}
