package database

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/jmoiron/sqlx"
)

//go:embed migrations
var migrationFiles embed.FS

// MigrateUp applies every *.up.sql for the connection's driver in name order.
func MigrateUp(db *sqlx.DB) error {
	return applyMigrations(db, ".up.sql", false)
}

// MigrateDown applies every *.down.sql in reverse name order.
func MigrateDown(db *sqlx.DB) error {
	return applyMigrations(db, ".down.sql", true)
}

// Reset drops and recreates the schema.
func Reset(db *sqlx.DB) error {
	if err := MigrateDown(db); err != nil {
		return err
	}
	return MigrateUp(db)
}

func applyMigrations(db *sqlx.DB, suffix string, reverse bool) error {
	entries, err := fs.Glob(migrationFiles, "migrations/"+db.DriverName()+"/*"+suffix)
	if err != nil {
		return fmt.Errorf("glob migrations: %w", err)
	}
	if len(entries) == 0 {
		return fmt.Errorf("no migrations for driver %q", db.DriverName())
	}
	sort.Strings(entries)
	if reverse {
		sort.Sort(sort.Reverse(sort.StringSlice(entries)))
	}
	for _, name := range entries {
		sqlBytes, readErr := migrationFiles.ReadFile(name)
		if readErr != nil {
			return fmt.Errorf("read migration %s: %w", name, readErr)
		}
		// one statement per Exec; not every driver accepts batches
		for _, stmt := range splitStatements(string(sqlBytes)) {
			if _, execErr := db.Exec(stmt); execErr != nil {
				return fmt.Errorf("apply migration %s: %w", name, execErr)
			}
		}
	}
	return nil
}

func splitStatements(script string) []string {
	parts := strings.Split(script, ";")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
