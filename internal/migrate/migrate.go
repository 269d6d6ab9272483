// Package migrate applies the delivery-log schema. Migrations are plain SQL
// files under db/migrations/<dialect>/, one copy per dialect so placeholder
// and column-type differences live in the files rather than in code, applied
// in lexical filename order.
package migrate

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

var supportedDialects = map[string]bool{
	"postgres": true,
	"sqlite":   true,
}

type Runner struct {
	FS fs.FS
}

func NewRunner(files fs.FS) *Runner {
	return &Runner{FS: files}
}

func (r *Runner) Apply(ctx context.Context, db *sql.DB, dialect string) error {
	dialect = strings.ToLower(strings.TrimSpace(dialect))
	if !supportedDialects[dialect] {
		return fmt.Errorf("unsupported dialect: %q", dialect)
	}
	if db == nil {
		return fmt.Errorf("nil db")
	}
	base := filepath.ToSlash(filepath.Join("db", "migrations", dialect))
	entries, err := fs.ReadDir(r.FS, base)
	if err != nil {
		return err
	}
	files := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".sql") {
			continue
		}
		files = append(files, filepath.ToSlash(filepath.Join(base, e.Name())))
	}
	sort.Strings(files)
	for _, path := range files {
		sqlBytes, err := fs.ReadFile(r.FS, path)
		if err != nil {
			return err
		}
		if _, err := db.ExecContext(ctx, string(sqlBytes)); err != nil {
			return fmt.Errorf("apply %s: %w", path, err)
		}
	}
	return nil
}
