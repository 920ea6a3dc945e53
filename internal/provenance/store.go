package provenance

import (
	"context"
	"database/sql"
	stderrors "errors"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"eventcore/internal/streamerr"
)

// Store persists decoding-session provenance to a SQL backend selected by
// DSN scheme at Open time. Any of sqlite3, sqlite (pure Go), postgres,
// mysql or sqlserver may be selected. The schema and queries below are
// written in SQLite's dialect ('?' placeholders, a TEXT primary key, a
// VARBINARY digest column) and are not rewritten per backend.
type Store struct {
	db *sql.DB
}

// Open connects to backend (one of "sqlite3", "sqlite", "postgres",
// "mysql", "sqlserver") using dsn and configures a small connection pool,
// mirroring the pool sizing a long-running decoder process needs without
// requiring the caller to tune it.
func Open(backend, dsn string) (*Store, error) {
	driverName, ok := driverFor(backend)
	if !ok {
		return nil, streamerr.New(streamerr.ParseError, "provenance: unsupported backend "+backend)
	}

	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, errors.Wrap(err, "provenance: open "+backend)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "provenance: ping "+backend)
	}

	return &Store{db: db}, nil
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	return s.db.Close()
}

const createSessionsTable = `
CREATE TABLE IF NOT EXISTS decode_sessions (
	id                 TEXT PRIMARY KEY,
	started_at         TIMESTAMP NOT NULL,
	finished_at        TIMESTAMP,
	source             TEXT NOT NULL,
	big_integer_count  BIGINT NOT NULL DEFAULT 0,
	big_decimal_count  BIGINT NOT NULL DEFAULT 0,
	digest             VARBINARY(32)
)`

// Migrate creates the decode_sessions table if it does not already exist.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, createSessionsTable); err != nil {
		return errors.Wrap(err, "provenance: migrate")
	}
	return nil
}

// Session is one decoding pass over a single source.
type Session struct {
	ID               uuid.UUID
	StartedAt        time.Time
	FinishedAt       *time.Time
	Source           string
	BigIntegerCount  int64
	BigDecimalCount  int64
	Digest           []byte
}

// BeginSession inserts a new open session row and returns it.
func (s *Store) BeginSession(ctx context.Context, source string) (*Session, error) {
	sess := &Session{
		ID:        uuid.New(),
		StartedAt: time.Now().UTC(),
		Source:    source,
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO decode_sessions (id, started_at, source) VALUES (?, ?, ?)`,
		sess.ID.String(), sess.StartedAt, sess.Source)
	if err != nil {
		return nil, errors.Wrap(err, "provenance: begin session")
	}
	return sess, nil
}

// Finish writes the final scalar counts and optional sub-tree digest back
// to sess's row and stamps it with a completion time.
func (s *Store) Finish(ctx context.Context, sess *Session) error {
	finishedAt := time.Now().UTC()
	sess.FinishedAt = &finishedAt

	_, err := s.db.ExecContext(ctx,
		`UPDATE decode_sessions
		 SET finished_at = ?, big_integer_count = ?, big_decimal_count = ?, digest = ?
		 WHERE id = ?`,
		finishedAt, sess.BigIntegerCount, sess.BigDecimalCount, sess.Digest, sess.ID.String())
	if err != nil {
		return errors.Wrap(err, "provenance: finish session")
	}
	return nil
}

// Lookup retrieves a previously recorded session by ID.
func (s *Store) Lookup(ctx context.Context, id uuid.UUID) (*Session, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, started_at, finished_at, source, big_integer_count, big_decimal_count, digest
		 FROM decode_sessions WHERE id = ?`, id.String())

	var (
		idStr      string
		finishedAt sql.NullTime
		digest     []byte
		sess       Session
	)
	if err := row.Scan(&idStr, &sess.StartedAt, &finishedAt, &sess.Source,
		&sess.BigIntegerCount, &sess.BigDecimalCount, &digest); err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, streamerr.New(streamerr.ParseError, "provenance: no such session "+id.String())
		}
		return nil, errors.Wrap(err, "provenance: lookup session")
	}

	sess.ID, _ = uuid.Parse(idStr)
	if finishedAt.Valid {
		sess.FinishedAt = &finishedAt.Time
	}
	if len(digest) > 0 {
		sess.Digest = digest
	}
	return &sess, nil
}
