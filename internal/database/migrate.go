package database

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Migration is a single .surql schema file
type Migration struct {
	Name string
	SQL  string
}

// LoadMigrations reads every .surql file in dir, sorted by name.
// seed.surql is skipped; it holds fixture data, not schema.
func LoadMigrations(dir string) ([]Migration, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading migrations dir: %w", err)
	}

	var names []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".surql") || name == "seed.surql" {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	migrations := make([]Migration, 0, len(names))
	for _, name := range names {
		content, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", name, err)
		}
		migrations = append(migrations, Migration{Name: name, SQL: string(content)})
	}

	return migrations, nil
}

// FindMigrationsDir walks up from the working directory looking for a
// migrations folder. Tests run from package directories, so the schema
// is usually a few levels up.
func FindMigrationsDir() (string, error) {
	candidates := []string{
		"migrations",
		"../migrations",
		"../../migrations",
		"../../../migrations",
	}
	for _, p := range candidates {
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			return p, nil
		}
	}
	return "", fmt.Errorf("could not find migrations directory")
}

// Migrate applies migrations in order. Schema files use DEFINE ... IF NOT EXISTS
// so re-running them on startup is harmless.
func Migrate(ctx context.Context, db Database, migrations []Migration) error {
	for _, m := range migrations {
		if err := db.Execute(ctx, m.SQL, nil); err != nil {
			return fmt.Errorf("migration %s failed: %w", m.Name, err)
		}
		slog.Debug("migration applied", slog.String("name", m.Name))
	}
	return nil
}
