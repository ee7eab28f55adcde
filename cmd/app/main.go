package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"lispy/internal/history"
	"lispy/internal/object"
	"lispy/internal/parser"
	"lispy/internal/repl"
	"lispy/internal/util"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

var (
	// Version is set at build time with -ldflags.
	Version   = "dev"
	BuildDate = "unknown"
	Commit    = "unknown"
	help      bool
	version   bool
	// logging
	logLevel string
	logFile  string
	// config vars
	configPath    string
	debugAST      bool
	debugASTFile  string
	historyDriver string
	historyDSN    string
)

func init() {
	flag.BoolVar(&help, "help", false, "Display help information and exit")
	flag.BoolVar(&help, "h", false, "Display help information and exit")
	flag.BoolVar(&version, "version", false, "Display version information and exit")
	flag.BoolVar(&version, "v", false, "Display version information and exit")
	flag.StringVar(&configPath, "config", "", "Path to a TOML configuration file (default $LISPY_HOME/lispy.toml)")
	// parser config
	flag.BoolVar(&debugAST, "debug-ast", false, "Print the parse tree after each result")
	flag.StringVar(&debugASTFile, "debug-ast-file", "", "Write the last parse tree as JSON to this file")
	// history config
	flag.StringVar(&historyDriver, "history-driver", util.DefaultHistoryDriver, "Transcript database driver: sqlite3, mysql, postgres")
	flag.StringVar(&historyDSN, "history-dsn", "", "Transcript database DSN (transcript disabled when empty)")
	// log config
	flag.StringVar(&logLevel, "log-level", util.DefaultLogLevel, "Log level: debug, info, warn, error, none")
	flag.StringVar(&logFile, "log-file", "", "Log file path (if not set, logs to stderr)")
}

func main() {

	flag.Parse()

	if version {
		printVersion()
		return
	}

	if help {
		printHelp()
		return
	}

	config, err := loadConfiguration()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	// Creates a new Logger that uses a JSONHandler to write to stderr or the log file
	loggerOptions := &slog.HandlerOptions{
		AddSource: false,
		Level:     logLevelFromString(config.LogLevel),
	}
	logWriter := configureLogWriter(config.LogFile)
	defaultLogger := slog.New(slog.NewJSONHandler(logWriter, loggerOptions))
	slog.SetDefault(defaultLogger)

	ctx := context.Background()
	opts := repl.Options{Config: config, Logger: defaultLogger}

	if config.HistoryDSN != "" {
		store, err := history.Open(ctx, config.HistoryDriver, config.HistoryDSN)
		if err != nil {
			slog.Error("history disabled", slog.Any("error", err))
		} else {
			defer store.Close()
			opts.Store = store
			opts.Session = store.NewSession()
		}
	}

	if flag.NArg() > 0 {
		code := evaluateArgs(ctx, opts, flag.Args(), os.Stdout)
		if code != 0 {
			os.Exit(code)
		}
		return
	}

	if repl.IsTerminal(os.Stdin) {
		err = repl.RunInteractive(ctx, opts)
	} else {
		err = repl.Start(ctx, os.Stdin, os.Stdout, opts)
	}
	if err != nil {
		slog.Error("repl stopped", slog.Any("error", err))
		os.Exit(1)
	}
}

// loadConfiguration layers defaults, the config file and explicitly set flags.
func loadConfiguration() (util.Configuration, error) {
	config := util.DefaultConfiguration()
	config.Version = Version
	config.BuildDate = BuildDate
	config.Commit = Commit

	path := configPath
	if path == "" {
		if p := config.DefaultConfigPath(); p != "" {
			if _, err := os.Stat(p); err == nil {
				path = p
			}
		}
	}
	if path != "" {
		if err := util.LoadConfigFile(path, &config); err != nil {
			return config, err
		}
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "debug-ast":
			config.DebugAST = debugAST
		case "debug-ast-file":
			config.DebugASTFile = debugASTFile
		case "history-driver":
			config.HistoryDriver = historyDriver
		case "history-dsn":
			config.HistoryDSN = historyDSN
		case "log-level":
			config.LogLevel = logLevel
		case "log-file":
			config.LogFile = logFile
		}
	})
	return config, nil
}

// evaluateArgs evaluates the joined arguments as a single expression and
// returns the process exit status.
func evaluateArgs(ctx context.Context, opts repl.Options, args []string, out io.Writer) int {
	src := strings.Join(args, " ")
	r := repl.New(opts, out)

	result, root, err := r.Evaluate(src)
	if err != nil {
		fmt.Fprintln(out, err)
		return 2
	}
	fmt.Fprintln(out, result.Inspect())

	if opts.Config.DebugAST {
		fmt.Fprintln(out, parser.RenderASTAsText(root, 0))
	}
	if opts.Config.DebugASTFile != "" {
		if err := parser.WriteASTToJSON(root, opts.Config.DebugASTFile); err != nil {
			slog.Warn("failed to write AST", slog.Any("error", err))
		}
	}
	if opts.Session != nil {
		if err := opts.Session.Record(ctx, root.String(), result); err != nil {
			slog.Warn("failed to record history", slog.Any("error", err))
		}
	}

	if result.Type() == object.ERROR_OBJ {
		return 1
	}
	return 0
}

func configureLogWriter(logFile string) io.Writer {
	if logFile == "" {
		return os.Stderr
	}
	// Create parent directories if they don't exist
	if err := os.MkdirAll(filepath.Dir(logFile), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "failed to create log directory for '%s': %v; falling back to stderr\n", logFile, err)
		return os.Stderr
	}
	logWriter, err := os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open log file '%s': %v; falling back to stderr\n", logFile, err)
		return os.Stderr
	}
	return logWriter
}

func printVersion() {

	fmt.Printf("lispy version 'v%s' %s %s\n", Version, BuildDate, Commit)
}

func printHelp() {
	fmt.Printf(`Usage: lispy [options] [expression...]

Options:
  -config <path>          TOML configuration file. Default is $LISPY_HOME/lispy.toml when present.
  -debug-ast              Print the parse tree after each result.
  -debug-ast-file <path>  Write the last parse tree as JSON.
  -history-driver <name>  Transcript database driver: sqlite3, mysql, postgres. Default is 'sqlite3'.
  -history-dsn <dsn>      Transcript database DSN. The transcript is off when empty.
  -help                   Display this help information and exit.
  -version                Display version information and exit.
  -log-level <level>      Set the log level: debug, info, warn, error, none. Default is 'error'.
  -log-file <path>        Specify a log file to write logs. Default is stderr.

Details:
Evaluates Polish notation expressions over numbers and quoted lists.
With arguments, the arguments are joined and evaluated once; otherwise a REPL starts.
In the REPL, :history [n] lists the last n transcript entries, :session lists the
current session and :builtins lists the builtin functions.

Examples:
  lispy                                  Start the REPL
  lispy '(+ 1 2.5)'                      Evaluate one expression
  lispy -history-dsn ~/.lispy.db         Keep a transcript in SQLite

Version Information:
  Version:    %s
  Build Date: %s
  Commit:     %s
`, Version, BuildDate, Commit)
}

func logLevelFromString(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "none":
		// nothing the program logs reaches this level
		return slog.LevelError + 4
	default:
		return slog.LevelError
	}
}
