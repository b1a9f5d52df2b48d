package postgres

import (
	"context"
	"database/sql"

	"termtalk/internal/infra/persistence/migrations"

	"github.com/pressly/goose/v3"
)

// runMigrations applies the embedded goose migrations. It is idempotent:
// already-applied versions are skipped.
func runMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}

	return goose.UpContext(ctx, db, ".")
}
