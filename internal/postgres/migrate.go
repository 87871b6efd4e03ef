package postgres

import (
	ierr "github.com/harvestlane/backoffice/internal/errors"
	"github.com/harvestlane/backoffice/migrations"
	"github.com/pressly/goose/v3"
)

// Migrate applies every pending migration embedded in the binary
func (db *DB) Migrate() error {
	goose.SetBaseFS(migrations.MigrationsFS)
	goose.SetLogger(gooseLogger{db})

	if err := goose.SetDialect("postgres"); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to set goose dialect").
			Mark(ierr.ErrSystem)
	}

	if err := goose.Up(db.DB.DB, "."); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to run migrations").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

// MigrationStatus logs the applied state of every migration
func (db *DB) MigrationStatus() error {
	goose.SetBaseFS(migrations.MigrationsFS)
	goose.SetLogger(gooseLogger{db})

	if err := goose.SetDialect("postgres"); err != nil {
		return ierr.WithError(err).Mark(ierr.ErrSystem)
	}
	if err := goose.Status(db.DB.DB, "."); err != nil {
		return ierr.WithError(err).Mark(ierr.ErrDatabase)
	}
	return nil
}

type gooseLogger struct{ db *DB }

func (l gooseLogger) Fatalf(format string, v ...interface{}) { l.db.logger.Fatalf(format, v...) }
func (l gooseLogger) Printf(format string, v ...interface{}) { l.db.logger.Infof(format, v...) }
