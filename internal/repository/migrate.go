package repository

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
)

// Migrate は埋め込まれた SQL に対して goose のコマンドを実行する
func Migrate(ctx context.Context, db *sql.DB, migrationsFS fs.FS, command string, args ...string) error {
	goose.SetBaseFS(migrationsFS)
	defer goose.SetBaseFS(nil)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("repository.Migrate: %w", err)
	}
	if err := goose.RunContext(ctx, command, db, ".", args...); err != nil {
		return fmt.Errorf("repository.Migrate %s: %w", command, err)
	}
	return nil
}
