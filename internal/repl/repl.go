package repl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"lispy/internal/ast"
	"lispy/internal/evaluator"
	"lispy/internal/history"
	"lispy/internal/object"
	"lispy/internal/parser"
	"lispy/internal/reader"
	"lispy/internal/util"
	"log/slog"
	"strings"
)

const ContinuationPrompt = "....> "

type Options struct {
	Config util.Configuration
	// Session, when set, receives every evaluated expression.
	Session *history.Session
	// Store backs the :history and :session commands.
	Store  *history.Store
	Logger *slog.Logger
}

type Repl struct {
	cfg     util.Configuration
	session *history.Session
	store   *history.Store
	log     *slog.Logger
	eval    *evaluator.Evaluator
	out     io.Writer
}

func New(opts Options, out io.Writer) *Repl {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Repl{
		cfg:     opts.Config,
		session: opts.Session,
		store:   opts.Store,
		log:     logger,
		eval:    evaluator.New(logger),
		out:     out,
	}
}

// Evaluate parses, reads and evaluates one source text. The returned node is
// the parsed tree, for callers that want to render it.
func (r *Repl) Evaluate(src string) (object.Object, *ast.Node, error) {
	root, err := parser.Parse(src)
	if err != nil {
		return nil, nil, err
	}
	return r.eval.Eval(reader.Read(root)), root, nil
}

// Handle evaluates src and prints the outcome. It returns false once the user asks to quit.
func (r *Repl) Handle(ctx context.Context, src string) bool {
	trimmed := strings.TrimSpace(src)
	switch trimmed {
	case "":
		return true
	case "quit", ":quit":
		return false
	}
	if strings.HasPrefix(trimmed, ":") {
		r.command(ctx, trimmed)
		return true
	}

	result, root, err := r.Evaluate(src)
	if err != nil {
		printParserErrors(r.out, err)
		return true
	}

	io.WriteString(r.out, result.Inspect())
	io.WriteString(r.out, "\n")

	if r.cfg.DebugAST {
		io.WriteString(r.out, parser.RenderASTAsText(root, 0))
		io.WriteString(r.out, "\n")
	}
	if r.cfg.DebugASTFile != "" {
		if err := parser.WriteASTToJSON(root, r.cfg.DebugASTFile); err != nil {
			r.log.Warn("failed to write AST", slog.Any("error", err))
		}
	}
	if r.session != nil {
		if err := r.session.Record(ctx, root.String(), result); err != nil {
			r.log.Warn("failed to record history", slog.Any("error", err))
		}
	}
	return true
}

// lineReader shows prompt and returns the next line, or io.EOF when input is exhausted.
type lineReader func(prompt string) (string, error)

var errAborted = errors.New("input aborted")

// loop returns nil once input is exhausted or the user quits.
func (r *Repl) loop(ctx context.Context, read lineReader, remember func(string)) error {
	for {
		src, err := r.readExpression(read)
		if errors.Is(err, errAborted) {
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if !r.Handle(ctx, src) {
			return nil
		}
		if remember != nil && strings.TrimSpace(src) != "" {
			remember(strings.ReplaceAll(src, "\n", " "))
		}
	}
}

// readExpression keeps reading continuation lines while the input has unclosed brackets.
func (r *Repl) readExpression(read lineReader) (string, error) {
	var b strings.Builder

	for {
		prompt := r.cfg.Prompt
		if b.Len() > 0 {
			prompt = ContinuationPrompt
		}
		line, err := read(prompt)
		if err != nil {
			if errors.Is(err, io.EOF) && b.Len() > 0 {
				return b.String(), nil
			}
			return "", err
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if _, perr := parser.Parse(src); perr != nil && parser.IsIncomplete(perr) {
			continue
		}
		return src, nil
	}
}

// Start runs the REPL over plain reader/writer streams.
func Start(ctx context.Context, in io.Reader, out io.Writer, opts Options) error {
	scanner := bufio.NewScanner(in)
	r := New(opts, out)

	read := func(prompt string) (string, error) {
		fmt.Fprint(out, prompt)
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return "", err
			}
			return "", io.EOF
		}
		return scanner.Text(), nil
	}

	return r.loop(ctx, read, nil)
}

func printParserErrors(out io.Writer, err error) {
	io.WriteString(out, "Woops! That expression did not parse.\n")
	io.WriteString(out, " parser errors:\n")

	var se *parser.SyntaxError
	if !errors.As(err, &se) {
		io.WriteString(out, "\t"+err.Error()+"\n")
		return
	}
	for _, msg := range se.Messages {
		io.WriteString(out, "\t"+msg+"\n")
	}
	if se.Context != "" {
		io.WriteString(out, se.Context+"\n")
	}
}
