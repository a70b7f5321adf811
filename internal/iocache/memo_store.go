// Package iocache persists memoized evaluation results keyed by
// (configVersion, profileHash).
package iocache

import (
	"database/sql"
	"fmt"
	"regexp"
	"time"

	_ "github.com/go-sql-driver/mysql"    // MySQL driver
	_ "github.com/jackc/pgx/v5/stdlib"    // PostgreSQL driver
	_ "github.com/mattn/go-sqlite3"       // SQLite driver
	"github.com/recruitready/compscore/internal/contract"
	"github.com/recruitready/compscore/schema"
)

const memoTableName = "compscore_memo"

// MemoStatus holds status information about the memo store.
type MemoStatus struct {
	Backend       string
	Connected     bool
	TotalEntries  int
	LastEntryTime time.Time
}

// MemoStoreImpl handles durable memo storage using various database backends.
type MemoStoreImpl struct {
	db      *sql.DB
	backend schema.DatabaseBackend
}

var _ contract.MemoStore = &MemoStoreImpl{} // Compile-time check

var tableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// NewMemoStore initializes and returns a new MemoStore for the backend type.
func NewMemoStore(backend schema.DatabaseBackend, connStr string) (contract.MemoStore, error) {
	if !tableNamePattern.MatchString(memoTableName) {
		return nil, fmt.Errorf("invalid memo table name %q", memoTableName)
	}

	var db *sql.DB
	var err error

	switch backend {
	case schema.SQLiteBackend:
		dbPath := connStr
		if dbPath == "" {
			dbPath = contract.GetMemoDBFilePath()
		}
		db, err = sql.Open("sqlite3", dbPath)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize SQLite memo store at %q: %w. Ensure the directory is writable", dbPath, err)
		}
		// Limit SQLite to a single open connection to avoid "database is locked" errors
		db.SetMaxOpenConns(1)

	case schema.MySQLBackend:
		// connStr should be: user:password@tcp(host:port)/dbname
		db, err = sql.Open("mysql", connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to MySQL memo store: %w. Check connection format: user:password@tcp(host:port)/dbname", err)
		}

	case schema.PostgreSQLBackend:
		// connStr should be: host=localhost port=5432 user=postgres dbname=compscore
		db, err = sql.Open("pgx", connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to PostgreSQL memo store: %w. Check connection format: host=localhost port=5432 user=postgres dbname=mydb", err)
		}

	case schema.NoneBackend:
		// No-op store for disabled memoization
		return &MemoStoreImpl{db: nil, backend: backend}, nil

	default:
		return nil, fmt.Errorf("unsupported memo backend: %s. Must be sqlite, mysql, postgresql, or none", backend)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to %s database. Check that the server is running and connection parameters are valid: %w", backend, err)
	}

	if _, err := db.Exec(getCreateTableQuery(backend)); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create table %s: %w", memoTableName, err)
	}

	return &MemoStoreImpl{db: db, backend: backend}, nil
}

// getCreateTableQuery returns the CREATE TABLE query for the given backend.
func getCreateTableQuery(backend schema.DatabaseBackend) string {
	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				memo_key VARCHAR(255) PRIMARY KEY,
				memo_value BLOB NOT NULL,
				memo_version INT NOT NULL,
				memo_timestamp BIGINT NOT NULL
			);
		`, memoTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				memo_key TEXT PRIMARY KEY,
				memo_value BYTEA NOT NULL,
				memo_version INTEGER NOT NULL,
				memo_timestamp BIGINT NOT NULL
			);
		`, memoTableName)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				memo_key TEXT PRIMARY KEY,
				memo_value BLOB NOT NULL,
				memo_version INTEGER NOT NULL,
				memo_timestamp INTEGER NOT NULL
			);
		`, memoTableName)
	}
}

// Get retrieves a value by key from the store.
func (ms *MemoStoreImpl) Get(key string) ([]byte, int, int64, error) {
	if ms.backend == schema.NoneBackend || ms.db == nil {
		return nil, 0, 0, sql.ErrNoRows
	}

	var value []byte
	var version int
	var ts int64

	query := fmt.Sprintf(`SELECT memo_value, memo_version, memo_timestamp FROM %s WHERE memo_key = %s`, memoTableName, ms.placeholder(1))
	row := ms.db.QueryRow(query, key)

	if err := row.Scan(&value, &version, &ts); err != nil {
		return nil, 0, 0, err
	}
	return value, version, ts, nil
}

// Set inserts or replaces a key/value pair in the store.
func (ms *MemoStoreImpl) Set(key string, value []byte, version int, timestamp int64) error {
	if ms.backend == schema.NoneBackend || ms.db == nil {
		return nil
	}
	_, err := ms.db.Exec(ms.upsertQuery(), key, value, version, timestamp)
	return err
}

// Clear removes every memoized result.
func (ms *MemoStoreImpl) Clear() error {
	if ms.backend == schema.NoneBackend || ms.db == nil {
		return nil
	}
	_, err := ms.db.Exec(fmt.Sprintf("DELETE FROM %s", memoTableName))
	return err
}

// Close closes the underlying DB connection.
func (ms *MemoStoreImpl) Close() error {
	if ms.db != nil {
		return ms.db.Close()
	}
	return nil
}

// GetStatus returns status information about the memo store.
func (ms *MemoStoreImpl) GetStatus() (MemoStatus, error) {
	status := MemoStatus{
		Backend:   string(ms.backend),
		Connected: ms.db != nil,
	}
	if ms.backend == schema.NoneBackend || ms.db == nil {
		return status, nil
	}

	row := ms.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", memoTableName))
	if err := row.Scan(&status.TotalEntries); err != nil {
		return status, fmt.Errorf("failed to get total entries: %w", err)
	}
	if status.TotalEntries == 0 {
		return status, nil
	}

	var lastTs int64
	row = ms.db.QueryRow(fmt.Sprintf("SELECT MAX(memo_timestamp) FROM %s", memoTableName))
	if err := row.Scan(&lastTs); err != nil {
		return status, fmt.Errorf("failed to get last entry time: %w", err)
	}
	status.LastEntryTime = time.Unix(lastTs, 0)

	return status, nil
}

// placeholder returns the parameter placeholder for the backend.
func (ms *MemoStoreImpl) placeholder(n int) string {
	if ms.backend == schema.PostgreSQLBackend {
		return fmt.Sprintf("$%d", n)
	}
	return "?"
}

// upsertQuery returns the UPSERT query for the backend.
func (ms *MemoStoreImpl) upsertQuery() string {
	switch ms.backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`INSERT INTO %s (memo_key, memo_value, memo_version, memo_timestamp) VALUES (?, ?, ?, ?) AS new
			ON DUPLICATE KEY UPDATE memo_value = new.memo_value, memo_version = new.memo_version, memo_timestamp = new.memo_timestamp`, memoTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`INSERT INTO %s (memo_key, memo_value, memo_version, memo_timestamp) VALUES ($1, $2, $3, $4)
			ON CONFLICT (memo_key) DO UPDATE SET memo_value = EXCLUDED.memo_value, memo_version = EXCLUDED.memo_version, memo_timestamp = EXCLUDED.memo_timestamp`, memoTableName)

	default: // SQLite
		return fmt.Sprintf(`INSERT OR REPLACE INTO %s (memo_key, memo_value, memo_version, memo_timestamp) VALUES (?, ?, ?, ?)`, memoTableName)
	}
}
