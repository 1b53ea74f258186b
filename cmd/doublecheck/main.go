// Command doublecheck runs a terminal demo of a button that must be pressed twice.
//
// Usage:
//
//	doublecheck [flags]
//
// Flags:
//
//	    --config string          Path to the configuration file
//	    --idle-label string      Label while the button is idle (default "Click me")
//	    --armed-label string     Label while the button is armed (default "You sure?")
//	    --activate-keys strings  Keys that press the button (default [enter, ])
//	    --cancel-keys strings    Keys that disarm the button (default [esc])
//	    --mouse                  Enable mouse support (default true)
//	    --script string          Replay a txtar script instead of starting the UI
//	    --log-file string        Write logs to this file
//	-v, --verbose                Verbose output
//	    --debug                  Debug output and debug panel
//	-h, --help                   Display help information
//
// The first press arms the button and swaps its label. The second press
// confirms. Tab away, click elsewhere, or press esc to start over.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	flag "github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/tmc/doublecheck/config"
	"github.com/tmc/doublecheck/interactive"
	"github.com/tmc/doublecheck/ui/keymap"
)

var errNotTerminal = errors.New("doublecheck: stdout is not a terminal (use --script to replay input)")

// runOptions holds the pieces of a run that are not configuration.
type runOptions struct {
	Script string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// IsTerminal reports whether Stdout is a terminal.
	IsTerminal func() bool
}

func main() {
	fs, err := initFlags(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	script, _ := fs.GetString("script")
	opts := runOptions{
		Script: script,
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		IsTerminal: func() bool {
			return term.IsTerminal(int(os.Stdout.Fd()))
		},
	}
	if err := run(ctx, opts, fs); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newFlagSet() *flag.FlagSet {
	fs := flag.NewFlagSet("doublecheck", flag.ContinueOnError)
	fs.SortFlags = false
	fs.String("config", "", "Path to the configuration file")
	fs.String("idle-label", "", "Label while the button is idle (default \"Click me\")")
	fs.String("armed-label", "", "Label while the button is armed (default \"You sure?\")")
	fs.StringSlice("activate-keys", nil, "Keys that press the button (default [enter, ])")
	fs.StringSlice("cancel-keys", nil, "Keys that disarm the button (default [esc])")
	fs.Bool("mouse", true, "Enable mouse support")
	fs.String("script", "", "Replay a txtar script instead of starting the UI")
	fs.String("log-file", "", "Write logs to this file")
	fs.BoolP("verbose", "v", false, "Verbose output")
	fs.Bool("debug", false, "Debug output and debug panel")
	fs.BoolP("help", "h", false, "Display help information")
	return fs
}

func initFlags(args []string) (*flag.FlagSet, error) {
	fs := newFlagSet()
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "doublecheck runs a button that must be pressed twice to confirm")
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, "Usage of doublecheck:")
		fs.PrintDefaults()
		fmt.Fprintln(os.Stderr, `
Examples:
	$ doublecheck --idle-label "Delete repo" --armed-label "Really delete?"
	$ doublecheck --script testdata/confirm.txtar`)
	}
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if help, _ := fs.GetBool("help"); help {
		fs.Usage()
		return nil, flag.ErrHelp
	}
	return fs, nil
}

func run(ctx context.Context, opts runOptions, fs *flag.FlagSet) error {
	cfg, err := config.LoadConfig(opts.Stderr, fs)
	if err != nil {
		return err
	}

	logOut := opts.Stderr
	if opts.Script == "" {
		// The UI owns the terminal; only log to a file.
		logOut = io.Discard
	}
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		defer f.Close()
		logOut = f
	}
	logger, err := NewLogger(logOut, cfg.Verbose, cfg.Debug)
	if err != nil {
		return err
	}
	defer logger.Sync()

	km := keymap.DefaultKeyMap().WithActivateKeys(cfg.ActivateKeys...).WithCancelKeys(cfg.CancelKeys...)
	if keys := km.Conflicts(); len(keys) > 0 {
		logger.Warnw("keys are taken by the button while it has focus", "keys", keys)
	}

	icfg := interactive.Config{
		IdleLabel:  cfg.IdleLabel,
		ArmedLabel: cfg.ArmedLabel,
		KeyMap:     km,
		Mouse:      cfg.Mouse,
		Debug:      cfg.Debug,
		Logger:     logger.Desugar(),
		OnConfirm: func(ctx context.Context, id string) error {
			logger.Infow("action confirmed", "button", id)
			return nil
		},
		Stdin:  opts.Stdin,
		Stdout: opts.Stdout,
	}

	if opts.Script != "" {
		steps, err := interactive.LoadScript(opts.Script)
		if err != nil {
			return err
		}
		for _, f := range interactive.Replay(ctx, icfg, steps) {
			fmt.Fprintln(opts.Stdout, f)
		}
		return nil
	}

	if opts.IsTerminal != nil && !opts.IsTerminal() {
		return errNotTerminal
	}
	s, err := interactive.NewSession(icfg)
	if err != nil {
		return err
	}
	if err := s.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	logger.Debugw("session finished", "presses", s.Presses())
	return nil
}
