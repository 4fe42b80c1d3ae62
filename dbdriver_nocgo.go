//go:build !cgo || windows

package main

// cgoSQLiteAvailable reports false in pure Go and Windows builds; the
// viminfo store then always opens with modernc.org/sqlite
func cgoSQLiteAvailable() bool {
	return false
}
