package confstore

import (
	"database/sql"
	"embed"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/mysql"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/pkg/errors"
	"github.com/recruitready/compscore/schema"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// migrateStore brings the config store schema up to the latest version.
func migrateStore(db *sql.DB, backend schema.DatabaseBackend) error {
	var driver database.Driver
	var err error

	switch backend {
	case schema.SQLiteBackend:
		driver, err = sqlite3.WithInstance(db, &sqlite3.Config{})
		if err != nil {
			return errors.Wrap(err, "failed to create SQLite migrate driver")
		}

	case schema.MySQLBackend:
		driver, err = mysql.WithInstance(db, &mysql.Config{})
		if err != nil {
			return errors.Wrap(err, "failed to create MySQL migrate driver")
		}

	case schema.PostgreSQLBackend:
		driver, err = postgres.WithInstance(db, &postgres.Config{})
		if err != nil {
			return errors.Wrap(err, "failed to create PostgreSQL migrate driver")
		}

	default:
		return errors.Errorf("unsupported backend for migrations: %s", backend)
	}

	migrationFS, err := fs.Sub(migrationsFS, "migrations")
	if err != nil {
		return errors.Wrap(err, "failed to access migrations directory")
	}
	source, err := iofs.New(migrationFS, ".")
	if err != nil {
		return errors.Wrap(err, "failed to create migration source")
	}

	m, err := migrate.NewWithInstance("iofs", source, string(backend), driver)
	if err != nil {
		return errors.Wrap(err, "failed to create migrate instance")
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return errors.Wrap(err, "failed to apply config store migrations")
	}
	return nil
}
