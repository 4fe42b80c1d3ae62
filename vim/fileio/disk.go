// Package fileio reads and writes buffers on disk. An advisory lock file
// next to each opened file keeps two editors from writing it at once.
package fileio

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"

	"github.com/slzatz/vix/core/log"
)

// ErrLocked is returned when another editor holds the file's lock
var ErrLocked = errors.New("file is being edited by another instance")

const lockSuffix = ".vix.lock"

// Disk is the file collaborator for the editor. It is not safe for
// concurrent use.
type Disk struct {
	locks map[string]*flock.Flock
	// files another instance had locked when they were read
	foreign map[string]bool
}

func NewDisk() *Disk {
	return &Disk{
		locks:   make(map[string]*flock.Flock),
		foreign: make(map[string]bool),
	}
}

// LockPath returns the lock file used for name
func LockPath(name string) string {
	dir, file := filepath.Split(name)
	return filepath.Join(dir, "."+file+lockSuffix)
}

// lock takes the lock for name unless it is already held
func (d *Disk) lock(name string) (bool, error) {
	key, err := filepath.Abs(name)
	if err != nil {
		return false, err
	}
	if l, ok := d.locks[key]; ok && l.Locked() {
		return true, nil
	}
	l := flock.New(LockPath(key))
	locked, err := l.TryLock()
	if err != nil {
		return false, fmt.Errorf("failed to try lock: %w", err)
	}
	if !locked {
		return false, nil
	}
	d.locks[key] = l
	return true, nil
}

// ReadLines reads name as lines. A final newline does not start another
// line. The file stays locked until Close; when another instance holds the
// lock the file is still read but cannot be written.
func (d *Disk) ReadLines(name string) ([]string, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, err
	}
	locked, err := d.lock(name)
	switch {
	case err != nil:
		log.Warn("could not lock file", "file", name, "error", err)
	case !locked:
		log.Warn("file locked by another instance", "file", name)
		d.foreign[name] = true
	}
	return splitLines(string(data)), nil
}

func splitLines(s string) []string {
	if s == "" {
		return []string{}
	}
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}

// Foreign reports whether another instance had name locked when it was
// read
func (d *Disk) Foreign(name string) bool { return d.foreign[name] }

// WriteLines replaces name with lines. The new content goes to a temporary
// file in the same directory which is renamed over name, so a failed write
// leaves the old file alone.
func (d *Disk) WriteLines(name string, lines []string) error {
	locked, err := d.lock(name)
	if err != nil {
		return err
	}
	if !locked {
		return fmt.Errorf("%s: %w", name, ErrLocked)
	}
	delete(d.foreign, name)

	mode := fs.FileMode(0o644)
	if info, err := os.Stat(name); err == nil {
		mode = info.Mode().Perm()
	}
	tmp, err := os.CreateTemp(filepath.Dir(name), "."+filepath.Base(name)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	var sb strings.Builder
	for _, line := range lines {
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	if _, err := tmp.WriteString(sb.String()); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", name, err)
	}
	if err := os.Chmod(tmp.Name(), mode); err != nil {
		return fmt.Errorf("failed to set mode of %s: %w", name, err)
	}
	if err := os.Rename(tmp.Name(), name); err != nil {
		return fmt.Errorf("failed to replace %s: %w", name, err)
	}
	log.Debug("wrote lines", "file", name, "lines", len(lines))
	return nil
}

// Close releases every lock and removes the lock files
func (d *Disk) Close() error {
	var errs []error
	for key, l := range d.locks {
		if err := l.Unlock(); err != nil {
			errs = append(errs, fmt.Errorf("failed to unlock %s: %w", key, err))
			continue
		}
		if err := os.Remove(l.Path()); err != nil && !os.IsNotExist(err) {
			errs = append(errs, fmt.Errorf("failed to remove lock file: %w", err))
		}
		delete(d.locks, key)
	}
	return errors.Join(errs...)
}
