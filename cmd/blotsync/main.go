// Package main is the entry point for the blotsync tool.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/term"

	"github.com/dshills/blotsync/internal/config"
	"github.com/dshills/blotsync/internal/logging"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// options holds the parsed command line.
type options struct {
	ConfigPath  string
	LogLevel    string
	ScriptPath  string
	Watch       bool
	ShowSurface bool
	NoColor     bool
	File        string
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to load config: %v\n", err)
		return 1
	}
	if opts.LogLevel != "" {
		cfg.Logging.Level = opts.LogLevel
	}

	logger := logging.New(logging.Config{
		Level:  cfg.Logging.ParsedLevel(),
		Output: os.Stderr,
		Prefix: cfg.Logging.Prefix,
	})

	s, err := newSession(cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}
	defer s.Close()

	s.color = !opts.NoColor && term.IsTerminal(int(os.Stdout.Fd()))
	s.showSurface = opts.ShowSurface
	s.out = os.Stdout

	if opts.File != "" {
		if err := s.LoadFile(opts.File); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
	}

	if opts.ScriptPath != "" {
		if err := s.RunScript(opts.ScriptPath); err != nil {
			fmt.Fprintf(os.Stderr, "Error: script failed: %v\n", err)
			return 1
		}
	}

	if err := s.Dump(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	if !opts.Watch {
		return 0
	}

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(signals)

	if err := s.Watch(opts.File, signals); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func parseFlags() options {
	var opts options
	var showVersion bool
	var showHelp bool

	flag.StringVar(&opts.ConfigPath, "config", "", "Path to configuration file")
	flag.StringVar(&opts.ConfigPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&opts.LogLevel, "log-level", "", "Log level (debug, info, warn, error); overrides the config")
	flag.StringVar(&opts.ScriptPath, "script", "", "Lua script to run against the tree")
	flag.StringVar(&opts.ScriptPath, "s", "", "Lua script to run against the tree (shorthand)")
	flag.BoolVar(&opts.Watch, "watch", false, "Keep running and resynchronize on every change to the file")
	flag.BoolVar(&opts.Watch, "w", false, "Keep running and resynchronize on every change to the file (shorthand)")
	flag.BoolVar(&opts.ShowSurface, "surface", false, "Also dump the surface tree")
	flag.BoolVar(&opts.NoColor, "no-color", false, "Disable colored output")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "blotsync - keep a blot tree in step with a surface tree\n\n")
		fmt.Fprintf(os.Stderr, "Usage: blotsync [options] [file]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nEnvironment:\n")
		for _, name := range config.EnvNames() {
			fmt.Fprintf(os.Stderr, "  %s\n", name)
		}
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  blotsync notes.txt              Mirror a file and dump the blot tree\n")
		fmt.Fprintf(os.Stderr, "  blotsync -surface notes.txt     Dump the surface tree too\n")
		fmt.Fprintf(os.Stderr, "  blotsync -s edit.lua notes.txt  Run a script after loading\n")
		fmt.Fprintf(os.Stderr, "  blotsync -w notes.txt           Follow external edits\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("blotsync %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	if opts.LogLevel != "" {
		if _, ok := logging.ParseLevel(opts.LogLevel); !ok {
			fmt.Fprintf(os.Stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", opts.LogLevel)
			os.Exit(1)
		}
	}

	switch flag.NArg() {
	case 0:
	case 1:
		opts.File = flag.Arg(0)
	default:
		fmt.Fprintf(os.Stderr, "Error: expected at most one file, got %d\n", flag.NArg())
		os.Exit(1)
	}

	if opts.Watch && opts.File == "" {
		fmt.Fprintf(os.Stderr, "Error: -watch requires a file\n")
		os.Exit(1)
	}

	return opts
}
