package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jessevdk/go-flags"

	"github.com/slzatz/vix/config"
	"github.com/slzatz/vix/core/log"
	"github.com/slzatz/vix/rawmode"
	"github.com/slzatz/vix/vim/viminfo"
)

type Options struct {
	Config    string `short:"c" long:"config" description:"Path to the JSON config file" default:"config.json"`
	GoSQLite  bool   `long:"go-sqlite" description:"Use the pure Go SQLite driver (modernc.org/sqlite) for viminfo"`
	CGOSQLite bool   `long:"cgo-sqlite" description:"Use the CGO SQLite driver (mattn/go-sqlite3) for viminfo; ignored when not compiled in"`
	NoViminfo bool   `long:"no-viminfo" description:"Do not load or save command history and the unnamed register"`
	Debug     bool   `short:"d" long:"debug" description:"Log at debug level to the log file"`
	Version   bool   `short:"v" long:"version" description:"Print version information and exit"`
	Args      struct {
		File string `positional-arg-name:"file" description:"File to edit"`
	} `positional-args:"yes"`
}

func main() {
	var opts Options
	parser := flags.NewParser(&opts, flags.Default)
	parser.Usage = "[OPTIONS] [file]"

	_, err := parser.Parse()
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}
	if opts.Version {
		printVersion()
		return
	}

	cfg, err := config.Load(opts.Config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	logFile, err := setupLogging(cfg, opts.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error setting up logging: %v\n", err)
		os.Exit(1)
	}
	if logFile != nil {
		defer logFile.Close()
	}

	var store *viminfo.Store
	if !opts.NoViminfo && cfg.Viminfo.Path != "" {
		store, err = openViminfo(cfg, &opts)
		if err != nil {
			// history is a convenience; edit without it
			log.Warn("viminfo disabled", "error", err)
			store = nil
		}
	}

	app, err := NewApp(cfg, opts.Args.File, store, os.Stdin, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	origCfg, err := rawmode.Enable()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error enabling raw mode: %v\n", err)
		os.Exit(1)
	}
	app.origTermCfg = origCfg

	setupSignalHandling(app)
	app.Run = true
	app.MainLoop()
	app.Cleanup()
}

// setupLogging sends log records to the configured file. Logging stays off
// unless a level is configured or --debug is given.
func setupLogging(cfg *config.Config, debug bool) (*os.File, error) {
	level := log.ParseLevel(cfg.Log.Level)
	if debug {
		level = log.ParseLevel("debug")
	}
	log.SetLevel(level)
	if cfg.Log.File == "" {
		return nil, nil
	}
	f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	log.SetOutput(f)
	return f, nil
}

func openViminfo(cfg *config.Config, opts *Options) (*viminfo.Store, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.Viminfo.Path), 0o755); err != nil {
		return nil, err
	}
	driver := DetermineSQLiteDriver(opts, cfg.Viminfo.Driver)
	log.Info("opening viminfo", "path", cfg.Viminfo.Path, "driver", driver.GetSQLiteDriverDisplayName())
	store, err := viminfo.Open(driver.GetSQLiteDriverName(), cfg.Viminfo.Path, opts.Args.File)
	if err != nil {
		return nil, err
	}
	store.SetLimit(cfg.Viminfo.HistoryLimit)
	return store, nil
}
