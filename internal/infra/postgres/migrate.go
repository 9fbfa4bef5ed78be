package postgres

import (
	"context"
	"fmt"
	"io/fs"
	"path"
	"sort"
)

// Migrate executes every *.sql file at the root of fsys in lexical order
// and returns the applied file names. Migrations must be idempotent.
func Migrate(ctx context.Context, db DBTX, fsys fs.FS) ([]string, error) {
	names, err := fs.Glob(fsys, "*.sql")
	if err != nil {
		return nil, fmt.Errorf("list migrations: %w", err)
	}
	sort.Strings(names)

	applied := make([]string, 0, len(names))
	for _, name := range names {
		sql, err := fs.ReadFile(fsys, name)
		if err != nil {
			return applied, fmt.Errorf("read migration %s: %w", name, err)
		}

		if _, err := db.Exec(ctx, string(sql)); err != nil {
			return applied, fmt.Errorf("apply migration %s: %w", path.Base(name), err)
		}
		applied = append(applied, name)
	}

	return applied, nil
}
