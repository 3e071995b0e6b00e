package db

import (
	"errors"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"roombook/internal/pkg/config"
	"roombook/internal/pkg/errs"
)

// Migrate applies every pending migration from sourceURL, e.g.
// "file://migrations". Already up to date is not an error.
func Migrate(sourceURL string, cfg config.DBConfig) error {
	m, err := migrate.New(sourceURL, cfg.BuildDSN())
	if err != nil {
		return errs.Wrap(err, "failed to init migrator")
	}
	defer func() { _, _ = m.Close() }()

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			return nil
		}
		return errs.Wrap(err, "failed to apply migrations")
	}
	return nil
}
