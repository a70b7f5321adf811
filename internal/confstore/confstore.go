// Package confstore persists versioned competitiveness configs with atomic,
// validated publishes and a full revision history for the admin audit trail.
package confstore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql" // MySQL driver
	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
	_ "github.com/mattn/go-sqlite3"    // SQLite driver
	"github.com/pkg/errors"
	"github.com/recruitready/compscore/core"
	"github.com/recruitready/compscore/internal/contract"
	"github.com/recruitready/compscore/schema"
)

const revisionsTable = "compscore_config_revisions"

// Store is a SQL-backed ConfigStore. Publishes run inside a transaction so a
// reader either sees the previous revision in full or the new one in full,
// and an invalid payload never displaces the last known-good revision.
type Store struct {
	db      *sql.DB
	backend schema.DatabaseBackend
}

var _ contract.ConfigStore = &Store{} // Compile-time check

// NewStore opens the config store for the backend and runs schema migrations.
func NewStore(backend schema.DatabaseBackend, connStr string) (*Store, error) {
	var db *sql.DB
	var err error

	switch backend {
	case schema.SQLiteBackend:
		dbPath := connStr
		if dbPath == "" {
			dbPath = contract.GetStoreDBFilePath()
		}
		db, err = sql.Open("sqlite3", dbPath)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to open SQLite config store at %q", dbPath)
		}
		db.SetMaxOpenConns(1)

	case schema.MySQLBackend:
		db, err = sql.Open("mysql", connStr)
		if err != nil {
			return nil, errors.Wrap(err, "failed to connect to MySQL config store")
		}

	case schema.PostgreSQLBackend:
		db, err = sql.Open("pgx", connStr)
		if err != nil {
			return nil, errors.Wrap(err, "failed to connect to PostgreSQL config store")
		}

	default:
		return nil, errors.Errorf("unsupported config store backend: %s. Must be sqlite, mysql, or postgresql", backend)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, errors.Wrapf(err, "failed to connect to %s config store", backend)
	}

	if err := migrateStore(db, backend); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{db: db, backend: backend}, nil
}

// GetContent returns the latest published revision payload for a key. The
// boolean reports presence; a key that has never been published is not an
// error.
func (s *Store) GetContent(ctx context.Context, key string) (string, bool, error) {
	query := fmt.Sprintf(`SELECT payload FROM %s WHERE config_key = %s ORDER BY created_seq DESC LIMIT 1`,
		revisionsTable, s.placeholder(1))

	var payload string
	err := s.db.QueryRowContext(ctx, query, key).Scan(&payload)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, errors.Wrapf(err, "failed to read config %q", key)
	}
	return payload, true, nil
}

// UpdateContent validates the payload and publishes it as a new revision.
// Validation failures surface as a *core.ConfigError and leave the previous
// revision untouched, so callers keep serving the last known-good config.
func (s *Store) UpdateContent(ctx context.Context, key, payload, editorID, note string) (contract.ConfigRevision, error) {
	if _, _, err := core.ParseConfig([]byte(payload)); err != nil {
		return contract.ConfigRevision{}, err
	}

	rev := contract.ConfigRevision{
		ID:        uuid.NewString(),
		Key:       key,
		Payload:   payload,
		EditorID:  editorID,
		Note:      note,
		CreatedAt: time.Now().UTC(),
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return contract.ConfigRevision{}, errors.Wrap(err, "failed to begin publish transaction")
	}
	defer func() { _ = tx.Rollback() }()

	// Next sequence number is computed inside the transaction; the swap is
	// atomic because readers only ever follow MAX(created_seq).
	var seq int64
	seqQuery := fmt.Sprintf(`SELECT COALESCE(MAX(created_seq), 0) + 1 FROM %s WHERE config_key = %s`,
		revisionsTable, s.placeholder(1))
	if err := tx.QueryRowContext(ctx, seqQuery, key).Scan(&seq); err != nil {
		return contract.ConfigRevision{}, errors.Wrap(err, "failed to allocate revision sequence")
	}

	insert := fmt.Sprintf(`INSERT INTO %s (revision_id, config_key, payload, editor_id, note, created_seq, created_at)
		VALUES (%s, %s, %s, %s, %s, %s, %s)`,
		revisionsTable,
		s.placeholder(1), s.placeholder(2), s.placeholder(3), s.placeholder(4),
		s.placeholder(5), s.placeholder(6), s.placeholder(7))
	if _, err := tx.ExecContext(ctx, insert, rev.ID, rev.Key, rev.Payload, rev.EditorID, rev.Note, seq, rev.CreatedAt.Unix()); err != nil {
		return contract.ConfigRevision{}, errors.Wrapf(err, "failed to insert revision for %q", key)
	}

	if err := tx.Commit(); err != nil {
		return contract.ConfigRevision{}, errors.Wrap(err, "failed to commit publish transaction")
	}
	return rev, nil
}

// History lists revisions for a key, newest first.
func (s *Store) History(ctx context.Context, key string, limit int) ([]contract.ConfigRevision, error) {
	if limit <= 0 {
		limit = 20
	}
	query := fmt.Sprintf(`SELECT revision_id, config_key, payload, editor_id, note, created_at
		FROM %s WHERE config_key = %s ORDER BY created_seq DESC LIMIT %s`,
		revisionsTable, s.placeholder(1), s.placeholder(2))

	rows, err := s.db.QueryContext(ctx, query, key, limit)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list revisions for %q", key)
	}
	defer func() { _ = rows.Close() }()

	var revisions []contract.ConfigRevision
	for rows.Next() {
		var rev contract.ConfigRevision
		var createdAt int64
		if err := rows.Scan(&rev.ID, &rev.Key, &rev.Payload, &rev.EditorID, &rev.Note, &createdAt); err != nil {
			return nil, errors.Wrap(err, "failed to scan revision row")
		}
		rev.CreatedAt = time.Unix(createdAt, 0).UTC()
		revisions = append(revisions, rev)
	}
	return revisions, rows.Err()
}

// Close closes the underlying DB connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// placeholder returns the parameter placeholder for the backend.
func (s *Store) placeholder(n int) string {
	if s.backend == schema.PostgreSQLBackend {
		return fmt.Sprintf("$%d", n)
	}
	return "?"
}
