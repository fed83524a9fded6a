package postgres

import (
	"errors"

	"github.com/aussiebroadwan/backoffice/internal/backoffice/store/drivers/postgres/migrations"

	"github.com/golang-migrate/migrate/v4"
	migratepgx "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
)

var errMigrateNeedsPool = errors.New("postgres: migrations require a *pgxpool.Pool")

// ApplyMigrations applies any pending embedded migrations.
func (s *Store) ApplyMigrations() error {
	pool, ok := s.pool.(*pgxpool.Pool)
	if !ok {
		return errMigrateNeedsPool
	}

	// 1. Create the migration driver over a database/sql view of the pool
	driver, err := migratepgx.WithInstance(stdlib.OpenDBFromPool(pool), &migratepgx.Config{})
	if err != nil {
		return err
	}

	// 2. Create the iofs (embedded filesystem) source driver
	src, err := iofs.New(migrations.Migrations, ".")
	if err != nil {
		return err
	}

	// 3. Create the migrate instance to run migrations
	instance, err := migrate.NewWithInstance("iofs", src, "pgx5", driver)
	if err != nil {
		return err
	}

	// 4. Apply all up migrations
	if err := instance.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}
