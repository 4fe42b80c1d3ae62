package main

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/slzatz/vix/vim/ex"
	"github.com/slzatz/vix/vim/govim"
)

const version = "0.1.0"

// printVersion prints the version and build information for --version
func printVersion() {
	fmt.Printf("vix %s\n", version)
	fmt.Printf("    Platform: %s\n    Architecture: %s\n    Go Version: %s\n",
		runtime.GOOS, runtime.GOARCH, runtime.Version())
	driver := "modernc.org/sqlite (Pure Go)"
	if IsCGOSQLiteAvailable() {
		driver += ", mattn/go-sqlite3 (CGO)"
	}
	fmt.Printf("    SQLite drivers: %s\n", driver)
}

// MarkdownHelper renders :help text with glamour at the screen width
type MarkdownHelper struct {
	width func() int
}

func NewMarkdownHelper(width func() int) *MarkdownHelper {
	return &MarkdownHelper{width: width}
}

// helpText finds the markdown for topic: ex commands first, then normal
// mode keys. An empty topic covers both.
func helpText(topic string) (string, bool) {
	if topic == "" {
		exHelp, _ := ex.Help("")
		normalHelp, _ := govim.NormalHelp("")
		return exHelp + "\n" + normalHelp, true
	}
	if text, ok := ex.Help(topic); ok {
		return text, true
	}
	return govim.NormalHelp(topic)
}

func (h *MarkdownHelper) Help(topic string) ([]string, error) {
	text, ok := helpText(topic)
	if !ok {
		return nil, fmt.Errorf("E149: sorry, no help for %s", topic)
	}

	options := []glamour.TermRendererOption{
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(max(h.width()-4, 20)),
	}
	r, err := glamour.NewTermRenderer(options...)
	if err != nil {
		return nil, fmt.Errorf("error creating renderer: %w", err)
	}
	out, err := r.Render(text)
	if err != nil {
		return nil, fmt.Errorf("error rendering help: %w", err)
	}
	return strings.Split(strings.TrimRight(out, "\n"), "\n"), nil
}
