package postgres

import (
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

// Direcciones aceptadas por RunMigrations.
const (
	MigrateUp   = "up"
	MigrateDown = "down"
)

// RunMigrations aplica las migraciones embebidas en la dirección indicada.
// No tener nada que aplicar no es error.
func RunMigrations(dsn, direction string) error {
	if dsn == "" {
		return errors.New("migrate: DSN vacío; defina DATABASE_URL o DB_*")
	}
	if direction != MigrateUp && direction != MigrateDown {
		return fmt.Errorf("migrate: dirección debe ser up o down, recibido %q", direction)
	}

	src, err := iofs.New(migrationFS, "migrations")
	if err != nil {
		return fmt.Errorf("migrate source: %w", err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, dsn)
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	defer func() { _, _ = m.Close() }()

	if direction == MigrateUp {
		err = m.Up()
	} else {
		err = m.Down()
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate %s: %w", direction, err)
	}
	return nil
}

// MigrationVersion versión actual del esquema y si quedó marcada como dirty.
func MigrationVersion(dsn string) (uint, bool, error) {
	src, err := iofs.New(migrationFS, "migrations")
	if err != nil {
		return 0, false, fmt.Errorf("migrate source: %w", err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, dsn)
	if err != nil {
		return 0, false, fmt.Errorf("migrate: %w", err)
	}
	defer func() { _, _ = m.Close() }()

	v, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	return v, dirty, err
}
