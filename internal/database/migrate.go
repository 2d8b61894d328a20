package database

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"sort"

	"github.com/jmoiron/sqlx"
)

// Migrate applies the migrations of the connection's dialect that have not run yet.
// It returns the file names applied in this call.
func Migrate(ctx context.Context, db *sqlx.DB, migrations fs.FS) ([]string, error) {
	dialect := DialectOf(db)
	if _, err := db.ExecContext(ctx, dialect.CreateMigrationsTableQuery()); err != nil {
		return nil, fmt.Errorf("create migrations table: %w", err)
	}

	dir := path.Join("migrations", dialect.MigrationsSubdir())
	files, err := fs.Glob(migrations, path.Join(dir, "*.sql"))
	if err != nil {
		return nil, fmt.Errorf("fs.Glob(%s) > %w", dir, err)
	}
	sort.Strings(files)

	var applied []string
	for _, file := range files {
		filename := path.Base(file)

		var count int
		if err := db.GetContext(ctx, &count, db.Rebind("SELECT COUNT(*) FROM schema_migrations WHERE filename = ?"), filename); err != nil {
			return applied, fmt.Errorf("check migration %s: %w", filename, err)
		}
		if count > 0 {
			continue
		}

		content, err := fs.ReadFile(migrations, file)
		if err != nil {
			return applied, fmt.Errorf("read migration %s: %w", filename, err)
		}

		if err := RunInTx(ctx, db, func(ctx context.Context, tx *sqlx.Tx) error {
			if _, err := tx.ExecContext(ctx, string(content)); err != nil {
				return fmt.Errorf("execute migration %s: %w", filename, err)
			}
			if _, err := tx.ExecContext(ctx, tx.Rebind("INSERT INTO schema_migrations (filename) VALUES (?)"), filename); err != nil {
				return fmt.Errorf("record migration %s: %w", filename, err)
			}
			return nil
		}); err != nil {
			return applied, err
		}

		slog.Default().Info("migration completed", "file", filename, "driver", dialect.Name())
		applied = append(applied, filename)
	}
	return applied, nil
}
