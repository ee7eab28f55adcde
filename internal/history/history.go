package history

import (
	"context"
	"database/sql"
	"fmt"
	"lispy/internal/object"
	"log/slog"
	"strconv"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

const (
	DriverSQLite   = "sqlite3"
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
)

const createTable = `CREATE TABLE IF NOT EXISTS lispy_history (
	session      VARCHAR(64) NOT NULL,
	seq          BIGINT      NOT NULL,
	source       TEXT        NOT NULL,
	result       TEXT        NOT NULL,
	is_error     INTEGER     NOT NULL,
	evaluated_at BIGINT      NOT NULL
)`

// Entry is one evaluated expression.
type Entry struct {
	Session     string
	Seq         int64
	Source      string
	Result      string
	IsError     bool
	EvaluatedAt time.Time
}

// Store is a transcript of evaluated expressions kept in a SQL database.
type Store struct {
	db     *sql.DB
	driver string
	now    func() time.Time
}

// Open connects to the database and makes sure the history table exists.
func Open(ctx context.Context, driver, dsn string) (*Store, error) {
	switch driver {
	case DriverSQLite, DriverMySQL, DriverPostgres:
	default:
		return nil, fmt.Errorf("unsupported history driver %q", driver)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s connection: %w", driver, err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping %s database: %w", driver, err)
	}
	if _, err := db.ExecContext(ctx, createTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create history table: %w", err)
	}

	slog.Debug("history store opened", slog.String("driver", driver))
	return &Store{db: db, driver: driver, now: time.Now}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// NewSession starts a fresh sequence under a new random identifier.
func (s *Store) NewSession() *Session {
	return &Session{store: s, ID: uuid.NewString()}
}

// Recent returns up to n entries across all sessions, oldest first.
func (s *Store) Recent(ctx context.Context, n int) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, s.rebind(
		`SELECT session, seq, source, result, is_error, evaluated_at
		 FROM lispy_history ORDER BY evaluated_at DESC, seq DESC LIMIT ?`), n)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	entries, err := scanEntries(rows)
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
	return entries, nil
}

// Session returns every entry recorded under id in sequence order.
func (s *Store) Session(ctx context.Context, id string) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, s.rebind(
		`SELECT session, seq, source, result, is_error, evaluated_at
		 FROM lispy_history WHERE session = ? ORDER BY seq`), id)
	if err != nil {
		return nil, fmt.Errorf("failed to query session %s: %w", id, err)
	}
	defer rows.Close()
	return scanEntries(rows)
}

func scanEntries(rows *sql.Rows) ([]Entry, error) {
	var entries []Entry
	for rows.Next() {
		var e Entry
		var isError int
		var at int64
		if err := rows.Scan(&e.Session, &e.Seq, &e.Source, &e.Result, &isError, &at); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		e.IsError = isError != 0
		e.EvaluatedAt = time.Unix(0, at)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read history rows: %w", err)
	}
	return entries, nil
}

// rebind rewrites ? placeholders into the $n form postgres expects.
func (s *Store) rebind(query string) string {
	if s.driver != DriverPostgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Session records the expressions of one REPL run.
type Session struct {
	store *Store
	ID    string
	seq   int64
}

// Record stores source together with the rendered result of evaluating it.
func (s *Session) Record(ctx context.Context, source string, result object.Object) error {
	isError := 0
	if result.Type() == object.ERROR_OBJ {
		isError = 1
	}

	_, err := s.store.db.ExecContext(ctx, s.store.rebind(
		`INSERT INTO lispy_history (session, seq, source, result, is_error, evaluated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`),
		s.ID, s.seq+1, source, result.Inspect(), isError, s.store.now().UnixNano())
	if err != nil {
		return fmt.Errorf("failed to record history entry: %w", err)
	}
	s.seq++
	return nil
}
