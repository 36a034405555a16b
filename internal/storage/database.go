package storage

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
)

// Supported database drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite3"
)

//go:embed migrations
var migrations embed.FS

// DB is a database handle that remembers how it was opened.
type DB struct {
	*sql.DB
	driver string
	dsn    string
}

// Driver returns DriverPostgres or DriverSQLite.
func (d *DB) Driver() string {
	return d.driver
}

// New opens a database. For sqlite3 the dsn is a file path and foreign keys
// are enabled on every pooled connection; for postgres it is a connection URL.
func New(driver, dsn string) (*DB, error) {
	var sqlDriver, sqlDSN string
	switch driver {
	case DriverSQLite:
		sqlDriver, sqlDSN = "sqlite3", sqliteDSN(dsn)
	case DriverPostgres:
		sqlDriver, sqlDSN = "pgx", dsn
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := sql.Open(sqlDriver, sqlDSN)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &DB{DB: db, driver: driver, dsn: dsn}, nil
}

func sqliteDSN(path string) string {
	if strings.Contains(path, "?") {
		return path + "&_foreign_keys=on&_busy_timeout=5000&_journal_mode=WAL"
	}
	return path + "?_foreign_keys=on&_busy_timeout=5000&_journal_mode=WAL"
}

// Migrate applies all pending schema migrations for the database's dialect.
// It is idempotent.
func Migrate(db *DB) error {
	m, closeFn, err := newMigrator(db)
	if err != nil {
		return err
	}
	defer closeFn()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// MigrationVersion reports the applied schema version and dirty flag.
func MigrationVersion(db *DB) (uint, bool, error) {
	m, closeFn, err := newMigrator(db)
	if err != nil {
		return 0, false, err
	}
	defer closeFn()

	version, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to get migration version: %w", err)
	}
	return version, dirty, nil
}

// newMigrator returns a migrator and a cleanup function. The sqlite driver
// shares db, so cleanup must not close it; postgres opens its own connection.
func newMigrator(db *DB) (*migrate.Migrate, func(), error) {
	src, err := iofs.New(migrations, "migrations/"+db.driver)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load migrations: %w", err)
	}

	switch db.driver {
	case DriverSQLite:
		drv, err := migratesqlite.WithInstance(db.DB, &migratesqlite.Config{})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create migrate driver: %w", err)
		}
		m, err := migrate.NewWithInstance("iofs", src, "sqlite3", drv)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create migrate instance: %w", err)
		}
		return m, func() { _ = src.Close() }, nil

	default:
		m, err := migrate.NewWithSourceInstance("iofs", src, pgx5URL(db.dsn))
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create migrate instance: %w", err)
		}
		return m, func() { _, _ = m.Close() }, nil
	}
}

// pgx5URL rewrites a postgres:// URL to the scheme the migrate pgx/v5 driver registers.
func pgx5URL(dsn string) string {
	for _, scheme := range []string{"postgres://", "postgresql://"} {
		if strings.HasPrefix(dsn, scheme) {
			return "pgx5://" + strings.TrimPrefix(dsn, scheme)
		}
	}
	return dsn
}
