package migrations

import (
	"context"
	"embed"
	"fmt"
	"sort"
	"strings"

	"github.com/m04kA/SMC-ReservationGateway/pkg/dbmetrics"
)

//go:embed *.sql
var fs embed.FS

// Files возвращает имена файлов миграций в порядке применения
func Files() ([]string, error) {
	entries, err := fs.ReadDir(".")
	if err != nil {
		return nil, err
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".sql") {
			continue
		}
		files = append(files, e.Name())
	}
	sort.Strings(files)

	return files, nil
}

// Up применяет непримененные миграции и возвращает их имена
func Up(ctx context.Context, db dbmetrics.DBExecutor) ([]string, error) {
	files, err := Files()
	if err != nil {
		return nil, err
	}

	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (version TEXT PRIMARY KEY)`); err != nil {
		return nil, fmt.Errorf("migrations: create schema_migrations: %w", err)
	}

	var applied []string
	for _, f := range files {
		var done bool
		if err := db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version = $1)`, f).Scan(&done); err != nil {
			return applied, fmt.Errorf("migrations: check %s: %w", f, err)
		}
		if done {
			continue
		}

		body, err := fs.ReadFile(f)
		if err != nil {
			return applied, err
		}

		if _, err := db.ExecContext(ctx, string(body)); err != nil {
			return applied, fmt.Errorf("migrations: apply %s: %w", f, err)
		}
		if _, err := db.ExecContext(ctx, `INSERT INTO schema_migrations (version) VALUES ($1)`, f); err != nil {
			return applied, fmt.Errorf("migrations: record %s: %w", f, err)
		}
		applied = append(applied, f)
	}

	return applied, nil
}
