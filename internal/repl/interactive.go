package repl

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/peterh/liner"
)

const banner = "lispy - press Ctrl+D or type quit to exit"

// RunInteractive drives the REPL from a terminal with line editing and a
// persistent history file.
func RunInteractive(ctx context.Context, opts Options) error {
	fmt.Println(banner)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	histPath := opts.Config.HistoryFile
	if histPath != "" {
		if f, err := os.Open(histPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
		defer func() {
			if f, err := os.Create(histPath); err == nil {
				_, _ = ln.WriteHistory(f)
				_ = f.Close()
			} else {
				slog.Warn("failed to save line history", slog.Any("error", err))
			}
		}()
	}

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	stop := watchSignals(ctx, sigc, func() {
		ln.Close()
		os.Exit(130)
	})
	defer stop()

	r := New(opts, os.Stdout)
	if opts.Session != nil {
		r.log.Info("repl session started", slog.String("session", opts.Session.ID))
		defer r.log.Info("repl session ended", slog.String("session", opts.Session.ID))
	}

	read := func(prompt string) (string, error) {
		line, err := ln.Prompt(prompt)
		if errors.Is(err, liner.ErrPromptAborted) {
			return "", errAborted
		}
		return line, err
	}

	err := r.loop(ctx, read, ln.AppendHistory)
	fmt.Println()
	return err
}

// watchSignals calls onSignal for the first signal received on sigc. The
// returned stop function waits for the watcher to exit.
func watchSignals(ctx context.Context, sigc <-chan os.Signal, onSignal func()) (stop func()) {
	done := make(chan struct{})
	exited := make(chan struct{})
	go func() {
		defer close(exited)
		select {
		case <-sigc:
			onSignal()
		case <-ctx.Done():
		case <-done:
		}
	}()
	return func() {
		close(done)
		<-exited
	}
}

// IsTerminal reports whether f is attached to a character device.
func IsTerminal(f *os.File) bool {
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}
