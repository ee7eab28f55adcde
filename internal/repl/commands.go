package repl

import (
	"context"
	"fmt"
	"lispy/internal/evaluator"
	"lispy/internal/history"
	"log/slog"
	"strconv"
	"strings"
)

const defaultHistoryCount = 10

// command runs one of the colon-prefixed REPL commands.
func (r *Repl) command(ctx context.Context, line string) {
	fields := strings.Fields(line)
	switch fields[0] {
	case ":history":
		n := defaultHistoryCount
		if len(fields) > 2 {
			fmt.Fprintln(r.out, "usage: :history [n]")
			return
		}
		if len(fields) == 2 {
			v, err := strconv.Atoi(fields[1])
			if err != nil || v <= 0 {
				fmt.Fprintln(r.out, "usage: :history [n]")
				return
			}
			n = v
		}
		r.printRecent(ctx, n)
	case ":session":
		r.printSession(ctx)
	case ":builtins":
		fmt.Fprintln(r.out, strings.Join(evaluator.Builtins(), " "))
	default:
		fmt.Fprintf(r.out, "unknown command %q\n", fields[0])
	}
}

func (r *Repl) printRecent(ctx context.Context, n int) {
	if r.store == nil {
		fmt.Fprintln(r.out, "transcript disabled; set -history-dsn to keep one")
		return
	}
	entries, err := r.store.Recent(ctx, n)
	if err != nil {
		r.log.Warn("failed to read history", slog.Any("error", err))
		fmt.Fprintln(r.out, "history unavailable:", err)
		return
	}
	for i, e := range entries {
		r.printEntry(i+1, e)
	}
}

func (r *Repl) printSession(ctx context.Context) {
	if r.store == nil || r.session == nil {
		fmt.Fprintln(r.out, "transcript disabled; set -history-dsn to keep one")
		return
	}
	entries, err := r.store.Session(ctx, r.session.ID)
	if err != nil {
		r.log.Warn("failed to read session", slog.Any("error", err))
		fmt.Fprintln(r.out, "history unavailable:", err)
		return
	}
	fmt.Fprintf(r.out, "session %s\n", r.session.ID)
	for _, e := range entries {
		r.printEntry(int(e.Seq), e)
	}
}

func (r *Repl) printEntry(n int, e history.Entry) {
	fmt.Fprintf(r.out, "%4d  %s => %s\n", n, e.Source, e.Result)
}
