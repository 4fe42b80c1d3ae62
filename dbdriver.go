package main

import (
	"runtime"

	// Import pure Go sqlite driver (available on all platforms)
	_ "modernc.org/sqlite"
)

// SQLiteDriver represents the available SQLite driver options
type SQLiteDriver int

const (
	SQLiteDriverModernC SQLiteDriver = iota // Pure Go implementation (modernc.org/sqlite)
	SQLiteDriverMattn                       // CGO implementation (mattn/go-sqlite3)
)

// SQLiteConfig holds the configuration for SQLite driver selection
type SQLiteConfig struct {
	Driver SQLiteDriver
}

// GetSQLiteDriverName returns the driver name for sql.Open based on the selected driver
func (cfg *SQLiteConfig) GetSQLiteDriverName() string {
	switch cfg.Driver {
	case SQLiteDriverMattn:
		return "sqlite3"
	default:
		return "sqlite"
	}
}

// GetSQLiteDriverDisplayName returns a human-readable name for the driver
func (cfg *SQLiteConfig) GetSQLiteDriverDisplayName() string {
	switch cfg.Driver {
	case SQLiteDriverMattn:
		return "mattn/go-sqlite3 (CGO)"
	default:
		return "modernc.org/sqlite (Pure Go)"
	}
}

// IsCGOSQLiteAvailable checks if the CGO SQLite driver is available
func IsCGOSQLiteAvailable() bool {
	if runtime.GOOS == "windows" {
		return false
	}
	return cgoSQLiteAvailable()
}

// DetermineSQLiteDriver picks the viminfo driver from, in order, the command
// line flags, the configured driver ("go" or "cgo") and what the build
// supports. The CGO driver silently falls back to pure Go when it is not
// compiled in.
func DetermineSQLiteDriver(opts *Options, configured string) *SQLiteConfig {
	cfg := &SQLiteConfig{Driver: SQLiteDriverModernC}

	wantCGO := configured == "cgo"
	switch {
	case opts.GoSQLite:
		wantCGO = false
	case opts.CGOSQLite:
		wantCGO = true
	}
	if wantCGO && IsCGOSQLiteAvailable() {
		cfg.Driver = SQLiteDriverMattn
	}
	return cfg
}
