package migrations

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"slices"
)

// Run brings the admin database up to date with the embedded migrations.
func Run(ctx context.Context, db *sql.DB) error {
	applied, err := Apply(ctx, db, FS)
	if err != nil {
		return err
	}
	if len(applied) > 0 {
		slog.Info("schema migrated", "applied", applied)
	}
	return nil
}

// Apply runs every .sql file in fsys that schema_migrations has not seen,
// in lexical order, each in its own transaction. It returns the files it
// applied. A failing file is rolled back and stops the run; files before it
// stay applied.
func Apply(ctx context.Context, db *sql.DB, fsys fs.FS) ([]string, error) {
	if _, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			filename   TEXT PRIMARY KEY,
			applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`); err != nil {
		return nil, fmt.Errorf("ensure migrations table: %w", err)
	}

	done, err := appliedFiles(ctx, db)
	if err != nil {
		return nil, fmt.Errorf("read applied migrations: %w", err)
	}
	pending, err := pendingFiles(fsys, done)
	if err != nil {
		return nil, fmt.Errorf("list migrations: %w", err)
	}

	var applied []string
	for _, name := range pending {
		if err := applyFile(ctx, db, fsys, name); err != nil {
			return applied, fmt.Errorf("apply migration %s: %w", name, err)
		}
		applied = append(applied, name)
	}
	return applied, nil
}

func appliedFiles(ctx context.Context, db *sql.DB) (map[string]bool, error) {
	rows, err := db.QueryContext(ctx, "SELECT filename FROM schema_migrations")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	done := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		done[name] = true
	}
	return done, rows.Err()
}

func pendingFiles(fsys fs.FS, done map[string]bool) ([]string, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, err
	}

	var pending []string
	for _, e := range entries {
		if e.IsDir() || path.Ext(e.Name()) != ".sql" || done[e.Name()] {
			continue
		}
		pending = append(pending, e.Name())
	}
	slices.Sort(pending)
	return pending, nil
}

func applyFile(ctx context.Context, db *sql.DB, fsys fs.FS, name string) error {
	script, err := fs.ReadFile(fsys, name)
	if err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, string(script)); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "INSERT INTO schema_migrations (filename) VALUES (?)", name); err != nil {
		return fmt.Errorf("record: %w", err)
	}
	return tx.Commit()
}
