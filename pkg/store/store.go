// Package store keeps named feature records in a SQL database.
//
// Two drivers are supported through database/sql:
//
//   - SQLite (modernc.org/sqlite, pure Go): a file path or "sqlite:path" DSN
//   - Postgres (jackc/pgx stdlib): a "postgres://" or "postgresql://" DSN
//
// Records are stored as JSON next to a few summary columns used by [Store.List].
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as a database/sql driver
	_ "modernc.org/sqlite"             // pure go sqlite driver

	"github.com/matzehuels/featuremap/pkg/errors"
	"github.com/matzehuels/featuremap/pkg/feature"
)

// EnvDSN names the environment variable read by [DefaultDSN].
const EnvDSN = "FEATUREMAP_STORE_DSN"

const (
	driverSQLite   = "sqlite"
	driverPostgres = "pgx"
)

// Entry summarizes a stored record.
type Entry struct {
	Name      string           `json:"name"`
	Topology  feature.Topology `json:"topology"`
	Length    int              `json:"length"`
	Features  int              `json:"features"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// Store is a named record store. It is safe for concurrent use.
type Store struct {
	db     *sql.DB
	driver string
}

// DefaultDSN returns $FEATUREMAP_STORE_DSN, or a SQLite file in the user's
// config directory.
func DefaultDSN() string {
	if dsn := os.Getenv(EnvDSN); dsn != "" {
		return dsn
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "featuremap", "records.db")
}

// Open connects to dsn and creates the records table if needed.
func Open(ctx context.Context, dsn string) (*Store, error) {
	if dsn == "" {
		dsn = DefaultDSN()
	}
	driver, source := parseDSN(dsn)
	if driver == driverSQLite && source != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(source), 0o750); err != nil {
			return nil, fmt.Errorf("create dirs: %w", err)
		}
	}

	db, err := sql.Open(driver, source)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}
	if driver == driverSQLite {
		// SQLite allows a single writer.
		db.SetMaxOpenConns(1)
	}
	// a postgres server may still be starting; sqlite fails fast
	ping := func() error { return db.PingContext(ctx) }
	retryable := func(error) bool { return driver == driverPostgres }
	if err := retry(ctx, connectAttempts, connectDelay, retryable, ping); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "connect to record store")
	}
	s := &Store{db: db, driver: driver}
	if err := s.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func parseDSN(dsn string) (driver, source string) {
	switch {
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		return driverPostgres, dsn
	case strings.HasPrefix(dsn, "sqlite:"):
		return driverSQLite, strings.TrimPrefix(strings.TrimPrefix(dsn, "sqlite:"), "//")
	}
	return driverSQLite, dsn
}

func (s *Store) migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS records (
		name TEXT PRIMARY KEY,
		topology TEXT NOT NULL,
		length BIGINT NOT NULL,
		features BIGINT NOT NULL,
		payload TEXT NOT NULL,
		updated_at BIGINT NOT NULL
	)`)
	if err != nil {
		return fmt.Errorf("create records table: %w", err)
	}
	return nil
}

// query rewrites "?" placeholders for drivers that number them.
func (s *Store) query(q string) string {
	if s.driver != driverPostgres {
		return q
	}
	var sb strings.Builder
	n := 0
	for _, r := range q {
		if r == '?' {
			n++
			fmt.Fprintf(&sb, "$%d", n)
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// Put stores rec under name, replacing any previous record. The record is
// validated first.
func (s *Store) Put(ctx context.Context, name string, rec *feature.Record) error {
	if err := errors.ValidateRecordName(name); err != nil {
		return err
	}
	norm, err := rec.Normalized()
	if err != nil {
		return err
	}
	payload, err := json.Marshal(norm)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode record %s", name)
	}
	_, err = s.db.ExecContext(ctx, s.query(`INSERT INTO records(name, topology, length, features, payload, updated_at)
		VALUES(?, ?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET topology=excluded.topology, length=excluded.length,
			features=excluded.features, payload=excluded.payload, updated_at=excluded.updated_at`),
		name, norm.Topology.String(), norm.Length, len(norm.Features), string(payload), time.Now().UnixNano())
	if err != nil {
		return fmt.Errorf("put %s: %w", name, err)
	}
	return nil
}

// Get returns the record stored under name, or an ErrCodeRecordNotFound
// error.
func (s *Store) Get(ctx context.Context, name string) (*feature.Record, error) {
	if err := errors.ValidateRecordName(name); err != nil {
		return nil, err
	}
	var payload string
	err := s.db.QueryRowContext(ctx, s.query(`SELECT payload FROM records WHERE name = ?`), name).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, errors.New(errors.ErrCodeRecordNotFound, "record %q not found", name)
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", name, err)
	}
	var rec feature.Record
	if err := json.Unmarshal([]byte(payload), &rec); err != nil {
		return nil, errors.Wrap(errors.ErrCodeParse, err, "decode record %s", name)
	}
	return &rec, nil
}

// List returns every stored record, ordered by name.
func (s *Store) List(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name, topology, length, features, updated_at FROM records ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []Entry
	for rows.Next() {
		var (
			e        Entry
			topology string
			updated  int64
		)
		if err := rows.Scan(&e.Name, &topology, &e.Length, &e.Features, &updated); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		if e.Topology, err = feature.ParseTopology(topology); err != nil {
			return nil, err
		}
		e.UpdatedAt = time.Unix(0, updated).UTC()
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Delete removes the record stored under name. Deleting a missing record
// is an ErrCodeRecordNotFound error.
func (s *Store) Delete(ctx context.Context, name string) error {
	if err := errors.ValidateRecordName(name); err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, s.query(`DELETE FROM records WHERE name = ?`), name)
	if err != nil {
		return fmt.Errorf("delete %s: %w", name, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return errors.New(errors.ErrCodeRecordNotFound, "record %q not found", name)
	}
	return nil
}

// Close closes the database.
func (s *Store) Close() error { return s.db.Close() }
