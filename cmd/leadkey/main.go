// Package main is the entry point for the leadkey interactive trainer.
//
// The trainer runs the full keystroke pipeline against a live
// terminal: every key press is offered to the matching engine, and a
// registration mode teaches new sequences through the interactive
// confirmation flow.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rgould/leadkey/internal/config"
	"github.com/rgould/leadkey/internal/keymap"
	"github.com/rgould/leadkey/internal/logging"
	"github.com/rgould/leadkey/internal/watcher"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	if opts.showVersion {
		fmt.Printf("leadkey %s (commit %s, built %s)\n", version, commit, date)
		return 0
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to load config: %v\n", err)
		return 1
	}
	if opts.bindingsPath != "" {
		cfg.Bindings = opts.bindingsPath
	}
	if opts.debug {
		cfg.Debug = true
	}

	if err := logging.Initialize(cfg.Debug, cfg.DebugFile, cfg.MaxLogFiles); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize logging: %v\n", err)
		return 1
	}

	store := keymap.NewStore(cfg.Bindings, keymap.WithDefaults(defaultBindings()))

	trainer, err := newTrainer(store)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize terminal: %v\n", err)
		return 1
	}
	defer trainer.Shutdown()

	if err := store.Load(); err != nil {
		// Corrupted or unreadable settings: the store has already
		// fallen back to the defaults.
		trainer.Notify(fmt.Sprintf("bindings could not be loaded, using defaults: %v", err))
		logging.Logger.Warn("bindings load failed", "path", cfg.Bindings, "error", err)
	}

	w, err := watcher.New(cfg.Bindings, func() {
		if err := store.Reload(); err != nil {
			logging.Logger.Warn("bindings reload failed", "error", err)
			return
		}
		trainer.Redraw()
	})
	if err != nil {
		logging.Logger.Warn("bindings watcher unavailable", "error", err)
	} else {
		defer w.Close()
	}

	// Handle signals for graceful shutdown.
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-signals
		trainer.Quit()
	}()

	if err := trainer.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

type options struct {
	configPath   string
	bindingsPath string
	debug        bool
	showVersion  bool
}

func parseFlags() options {
	var opts options

	flag.StringVar(&opts.configPath, "config", config.DefaultPath(), "Path to configuration file")
	flag.StringVar(&opts.configPath, "c", config.DefaultPath(), "Path to configuration file (shorthand)")
	flag.StringVar(&opts.bindingsPath, "bindings", "", "Path to bindings file (overrides config)")
	flag.StringVar(&opts.bindingsPath, "b", "", "Path to bindings file (shorthand)")
	flag.BoolVar(&opts.debug, "debug", false, "Enable debug logging")
	flag.BoolVar(&opts.showVersion, "version", false, "Print version and exit")
	flag.Parse()

	return opts
}
