package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/agentstation/grantmap/internal/store/sqlstore/migrations"
)

const migrationTable = "schema_migrations"

// Migrate applies the embedded migrations for the store's dialect. Each file
// runs at most once, in its own transaction.
func (s *Store) Migrate(ctx context.Context) error {
	return applyMigrations(ctx, s.db, s.dialect, migrations.FS)
}

func applyMigrations(ctx context.Context, db *sql.DB, dialect Dialect, migrationFS fs.FS) error {
	root := string(dialect)
	entries, err := fs.ReadDir(migrationFS, root)
	if err != nil {
		return fmt.Errorf("read migrations dir: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".sql") {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)

	createSQL := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
    name TEXT PRIMARY KEY,
    applied_at TEXT NOT NULL
)`, migrationTable)
	if _, err := db.ExecContext(ctx, createSQL); err != nil {
		return fmt.Errorf("ensure migration table: %w", err)
	}

	for _, file := range files {
		name := path.Join(root, file)

		var applied int
		err := db.QueryRowContext(ctx,
			dialect.rebind(fmt.Sprintf(`SELECT 1 FROM %s WHERE name = ?`, migrationTable)), name,
		).Scan(&applied)
		switch {
		case err == nil:
			continue
		case !errors.Is(err, sql.ErrNoRows):
			return fmt.Errorf("check migration %s: %w", name, err)
		}

		content, err := fs.ReadFile(migrationFS, name)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", name, err)
		}

		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin migration %s: %w", name, err)
		}
		for _, stmt := range splitStatements(string(content)) {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				_ = tx.Rollback()
				return fmt.Errorf("apply migration %s: %w", name, err)
			}
		}
		if _, err := tx.ExecContext(ctx,
			dialect.rebind(fmt.Sprintf(`INSERT INTO %s (name, applied_at) VALUES (?, ?)`, migrationTable)),
			name, timestamp(nowUTC()),
		); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record migration %s: %w", name, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration %s: %w", name, err)
		}
	}
	return nil
}

// splitStatements splits a migration file on ";". Migration files must not
// contain semicolons inside literals.
func splitStatements(content string) []string {
	var out []string
	for _, stmt := range strings.Split(content, ";") {
		if s := strings.TrimSpace(stmt); s != "" {
			out = append(out, s)
		}
	}
	return out
}
