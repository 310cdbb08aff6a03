// Package store keeps templates in a SQLite database.
//
// A [Store] is a [lang.Loader], so import tags can name templates held in a
// table instead of files:
//
//	s, err := store.Open(ctx, "site.db")
//	...
//	engine := lang.New(lang.WithLoader(s))
//
// The pure-Go modernc.org/sqlite driver is used by default. Building with the
// cgo_sqlite tag selects github.com/mattn/go-sqlite3 instead.
package store

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/ardnew/tuxedo/lang"
	"github.com/ardnew/tuxedo/log"
	"github.com/ardnew/tuxedo/pattern"
)

// DefaultTable is the table used unless [WithTable] names another.
const DefaultTable = "templates"

// Predefined errors (sentinel values).
var (
	ErrOpen         = lang.NewError("failed to open template store")
	ErrInvalidTable = lang.NewError("invalid table name")
	ErrQuery        = lang.NewError("template store query failed")
)

// Store loads and saves templates in one table of a SQLite database.
//
// A Store is safe for concurrent use.
type Store struct {
	db     *sql.DB
	logger log.Logger
	table  string

	stmtLoad   *sql.Stmt
	stmtPut    *sql.Stmt
	stmtDelete *sql.Stmt
	stmtNames  *sql.Stmt
}

// Option configures a [Store].
type Option func(*Store)

// WithTable sets the name of the template table. The name must be an
// identifier.
func WithTable(name string) Option {
	return func(s *Store) {
		s.table = name
	}
}

// WithLogger sets the logger for store operations.
func WithLogger(logger log.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// Open opens the database at dataSource and creates the template table if it
// does not exist.
func Open(ctx context.Context, dataSource string, opts ...Option) (*Store, error) {
	db, err := openDB(dataSource)
	if err != nil {
		return nil, ErrOpen.Wrap(err).With(slog.String("source", dataSource))
	}

	s, err := New(ctx, db, opts...)
	if err != nil {
		_ = db.Close()

		return nil, err
	}

	return s, nil
}

// New returns a Store using an open database handle. Closing the Store closes
// db.
func New(ctx context.Context, db *sql.DB, opts ...Option) (*Store, error) {
	s := &Store{db: db, table: DefaultTable}

	for _, opt := range opts {
		opt(s)
	}

	if !pattern.IsIdentifier(s.table) {
		return nil, ErrInvalidTable.With(slog.String("table", s.table))
	}

	if err := db.PingContext(ctx); err != nil {
		return nil, ErrOpen.Wrap(err)
	}

	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS `+s.table+` (
		name     TEXT PRIMARY KEY,
		body     TEXT NOT NULL,
		modified INTEGER NOT NULL
	);`); err != nil {
		return nil, ErrQuery.Wrap(err).With(slog.String("table", s.table))
	}

	var err error

	prepare := func(query string) *sql.Stmt {
		if err != nil {
			return nil
		}

		var stmt *sql.Stmt

		stmt, err = db.PrepareContext(ctx, query)

		return stmt
	}

	s.stmtLoad = prepare(`SELECT body FROM ` + s.table + ` WHERE name = ?;`)
	s.stmtPut = prepare(`INSERT INTO ` + s.table + ` (name, body, modified) VALUES (?, ?, ?)
		ON CONFLICT (name) DO UPDATE SET body = excluded.body, modified = excluded.modified;`)
	s.stmtDelete = prepare(`DELETE FROM ` + s.table + ` WHERE name = ?;`)
	s.stmtNames = prepare(`SELECT name FROM ` + s.table + ` ORDER BY name;`)

	if err != nil {
		return nil, ErrQuery.Wrap(err).With(slog.String("table", s.table))
	}

	s.logger.DebugContext(ctx, "template store ready", slog.String("table", s.table))

	return s, nil
}

// Table returns the name of the template table.
func (s *Store) Table() string { return s.table }

// Load returns the body of the named template. It implements [lang.Loader].
func (s *Store) Load(ctx context.Context, name string) (string, error) {
	var body string

	err := s.stmtLoad.QueryRowContext(ctx, name).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return "", lang.ErrTemplateNotFound.
			With(slog.String("name", name), slog.String("table", s.table))
	}

	if err != nil {
		return "", ErrQuery.Wrap(err).With(slog.String("name", name))
	}

	s.logger.TraceContext(ctx, "template loaded",
		slog.String("name", name), slog.Int("bytes", len(body)))

	return body, nil
}

// Put stores body under name, replacing any previous body.
func (s *Store) Put(ctx context.Context, name, body string) error {
	if _, err := s.stmtPut.ExecContext(ctx, name, body, time.Now().Unix()); err != nil {
		return ErrQuery.Wrap(err).With(slog.String("name", name))
	}

	s.logger.DebugContext(ctx, "template stored", slog.String("name", name))

	return nil
}

// Delete removes the named template. Deleting a missing template reports
// [lang.ErrTemplateNotFound].
func (s *Store) Delete(ctx context.Context, name string) error {
	res, err := s.stmtDelete.ExecContext(ctx, name)
	if err != nil {
		return ErrQuery.Wrap(err).With(slog.String("name", name))
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return lang.ErrTemplateNotFound.With(slog.String("name", name))
	}

	return nil
}

// Names returns the names of all stored templates in lexical order.
func (s *Store) Names(ctx context.Context) ([]string, error) {
	rows, err := s.stmtNames.QueryContext(ctx)
	if err != nil {
		return nil, ErrQuery.Wrap(err)
	}
	defer rows.Close()

	var names []string

	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, ErrQuery.Wrap(err)
		}

		names = append(names, name)
	}

	if err := rows.Err(); err != nil {
		return nil, ErrQuery.Wrap(err)
	}

	return names, nil
}

// Close releases the prepared statements and closes the database.
func (s *Store) Close() error {
	for _, stmt := range []*sql.Stmt{s.stmtLoad, s.stmtPut, s.stmtDelete, s.stmtNames} {
		if stmt != nil {
			_ = stmt.Close()
		}
	}

	return s.db.Close()
}
