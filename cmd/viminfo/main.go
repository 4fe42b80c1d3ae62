// Command viminfo inspects or clears the history database the editor keeps
// between sessions
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jessevdk/go-flags"
	_ "modernc.org/sqlite"

	"github.com/slzatz/vix/config"
	"github.com/slzatz/vix/vim/viminfo"
)

type Options struct {
	Config   string `short:"c" long:"config" description:"Path to the JSON config file" default:"config.json"`
	DB       string `long:"db" description:"Path to the viminfo database (overrides the config)"`
	Sessions int    `short:"s" long:"sessions" description:"Number of recent sessions to list" default:"10"`
	Clear    bool   `long:"clear" description:"Delete all history and the saved register"`
	Yes      bool   `short:"y" long:"yes" description:"Do not ask before clearing"`
}

func main() {
	var opts Options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	path := opts.DB
	if path == "" {
		cfg, err := config.Load(opts.Config)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
		path = cfg.Viminfo.Path
	}
	if _, err := os.Stat(path); err != nil {
		fmt.Fprintf(os.Stderr, "The viminfo database %q does not exist\n", path)
		os.Exit(1)
	}

	store, err := viminfo.Open("sqlite", path, "")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if opts.Clear {
		if !opts.Yes && !confirm(os.Stdin, fmt.Sprintf("Do you want to clear %s? (y or N): ", path)) {
			fmt.Println("exiting ...")
			return
		}
		if err := store.Clear(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("viminfo cleared")
		return
	}

	if err := report(os.Stdout, store, opts.Sessions); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func confirm(in io.Reader, prompt string) bool {
	fmt.Print(prompt)
	res, _ := bufio.NewReader(in).ReadString('\n')
	res = strings.TrimSpace(strings.ToLower(res))
	return strings.HasPrefix(res, "y")
}

// report prints recent sessions, both histories and the saved register
func report(w io.Writer, store *viminfo.Store, sessions int) error {
	recent, err := store.RecentSessions(sessions)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, "Sessions:")
	for _, si := range recent {
		file := si.File
		if file == "" {
			file = "[No Name]"
		}
		fmt.Fprintf(w, "  %s  %s  %s\n", si.Started, si.UUID, file)
	}

	for _, kind := range []struct{ name, title string }{
		{viminfo.Commands, "Command history:"},
		{viminfo.Searches, "Search history:"},
	} {
		lines, err := store.History(kind.name)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, kind.title)
		for i, line := range lines {
			fmt.Fprintf(w, "  %3d %s\n", i+1, line)
		}
	}

	r, ok, err := store.LoadRegister()
	if err != nil {
		return err
	}
	if ok {
		kind := "characterwise"
		if r.Linewise {
			kind = "linewise"
		}
		fmt.Fprintf(w, "Register (%s):\n  %q\n", kind, r.Text)
	}
	return nil
}
