package repl

import (
	"bytes"
	"context"
	"lispy/internal/history"
	"lispy/internal/util"
	"path/filepath"
	"strings"
	"testing"
)

func testOptions() Options {
	cfg := util.DefaultConfiguration()
	cfg.Prompt = "> "
	return Options{Config: cfg}
}

func TestStart(t *testing.T) {
	input := strings.Join([]string{
		"(+ 1 2)",
		"(head {1 2",
		"  3})",
		"(/ 1 0)",
		"(+ 1 #)",
		"",
		"quit",
		"(+ 5 5)",
	}, "\n")

	var out bytes.Buffer
	if err := Start(context.Background(), strings.NewReader(input), &out, testOptions()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := out.String()

	for _, want := range []string{
		"> 3\n",
		"> " + ContinuationPrompt + "{1}\n",
		"> Error: division by zero\n",
		"parser errors:",
		`illegal character "#"`,
		"^ unexpected here",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, got)
		}
	}
	if strings.Contains(got, "10") {
		t.Errorf("nothing after quit should be evaluated, got:\n%s", got)
	}
}

func TestStartIncompleteAtEOF(t *testing.T) {
	var out bytes.Buffer
	if err := Start(context.Background(), strings.NewReader("(+ 1"), &out, testOptions()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), `expected ")" before end of input`) {
		t.Errorf("expected an unterminated list error, got:\n%s", out.String())
	}
}

func TestHandleDebugAST(t *testing.T) {
	opts := testOptions()
	opts.Config.DebugAST = true
	opts.Config.DebugASTFile = filepath.Join(t.TempDir(), "ast.json")

	var out bytes.Buffer
	r := New(opts, &out)
	if !r.Handle(context.Background(), "(- 4)") {
		t.Fatalf("Handle should not quit")
	}

	expected := `-4
>
  sexpr
    char '('
    symbol '-'
    number '4'
    char ')'
`
	if out.String() != expected {
		t.Errorf("expected:\n%s\ngot:\n%s", expected, out.String())
	}
}

func TestEvaluate(t *testing.T) {
	r := New(testOptions(), &bytes.Buffer{})

	result, root, err := r.Evaluate("(eval (list 1 2 3))")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Inspect() != "Error: expression does not start with a symbol" {
		t.Errorf("unexpected result %s", result.Inspect())
	}
	if root.String() != "(eval (list 1 2 3))" {
		t.Errorf("unexpected tree %s", root.String())
	}

	if _, _, err := r.Evaluate("(+ 1"); err == nil {
		t.Errorf("expected a parse error")
	}
}

func TestHandleRecordsHistory(t *testing.T) {
	ctx := context.Background()
	store, err := history.Open(ctx, history.DriverSQLite, filepath.Join(t.TempDir(), "h.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer store.Close()

	opts := testOptions()
	opts.Session = store.NewSession()

	var out bytes.Buffer
	r := New(opts, &out)
	r.Handle(ctx, "  (cons 0 {1 2})  ")
	r.Handle(ctx, "(tail {})")
	r.Handle(ctx, "(tail {")

	entries, err := store.Session(ctx, opts.Session.ID)
	if err != nil {
		t.Fatalf("session: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 recorded entries, got %d", len(entries))
	}
	if entries[0].Source != "(cons 0 {1 2})" || entries[0].Result != "{0 1 2}" || entries[0].IsError {
		t.Errorf("unexpected first entry %+v", entries[0])
	}
	if entries[1].Result != "Error: function 'tail' passed {}" || !entries[1].IsError {
		t.Errorf("unexpected second entry %+v", entries[1])
	}
}

func TestHistoryCommands(t *testing.T) {
	ctx := context.Background()
	store, err := history.Open(ctx, history.DriverSQLite, filepath.Join(t.TempDir(), "h.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer store.Close()

	opts := testOptions()
	opts.Store = store
	opts.Session = store.NewSession()

	input := strings.Join([]string{
		"(+ 1 2)",
		"(join {1}",
		"  {2})",
		"(/ 1 0)",
		":history",
		":history 2",
		":history x",
		":session",
	}, "\n")

	var out bytes.Buffer
	if err := Start(ctx, strings.NewReader(input), &out, opts); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := out.String()

	all := "   1  (+ 1 2) => 3\n   2  (join {1} {2}) => {1 2}\n   3  (/ 1 0) => Error: division by zero\n"
	lastTwo := "   1  (join {1} {2}) => {1 2}\n   2  (/ 1 0) => Error: division by zero\n"
	for _, want := range []string{
		"> " + all,
		"> " + lastTwo,
		"> usage: :history [n]\n",
		"> session " + opts.Session.ID + "\n" + all,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, got)
		}
	}

	entries, err := store.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(entries) != 3 {
		t.Errorf("commands should not be recorded, got %d entries", len(entries))
	}
}

func TestCommandsWithoutTranscript(t *testing.T) {
	var out bytes.Buffer
	r := New(testOptions(), &out)
	ctx := context.Background()

	for _, line := range []string{":history", ":session", ":builtins", ":nope"} {
		if !r.Handle(ctx, line) {
			t.Fatalf("%s should not quit", line)
		}
	}

	expected := "transcript disabled; set -history-dsn to keep one\n" +
		"transcript disabled; set -history-dsn to keep one\n" +
		"% * + - / ^ cons eval head join list max min tail\n" +
		"unknown command \":nope\"\n"
	if out.String() != expected {
		t.Errorf("expected:\n%s\ngot:\n%s", expected, out.String())
	}
}
