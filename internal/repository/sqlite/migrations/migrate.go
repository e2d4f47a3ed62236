package migrations

import (
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strconv"
	"strings"
)

//go:embed *.up.sql
var files embed.FS

// migration is one embedded schema step, named NNNNNN_description.up.sql.
type migration struct {
	version int
	name    string
	stmts   string
}

// Apply brings the schema up to date. Versions already recorded in the
// schema_migrations table are skipped; each pending migration runs in a
// single transaction together with its version record, so a failed step
// leaves the schema at the previous version.
func Apply(db *sql.DB) error {
	if _, err := db.Exec(`
	CREATE TABLE IF NOT EXISTS schema_migrations (
		version INTEGER PRIMARY KEY,
		applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`); err != nil {
		return fmt.Errorf("create schema_migrations table: %w", err)
	}

	pending, err := load(files)
	if err != nil {
		return fmt.Errorf("load migrations: %w", err)
	}

	applied, err := appliedVersions(db)
	if err != nil {
		return fmt.Errorf("read applied versions: %w", err)
	}

	for _, m := range pending {
		if applied[m.version] {
			continue
		}
		if err := runOne(db, m); err != nil {
			return fmt.Errorf("apply migration %d (%s): %w", m.version, m.name, err)
		}
	}
	return nil
}

func load(fsys fs.FS) ([]migration, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, err
	}

	var migrations []migration
	for _, entry := range entries {
		version, name, ok := parseFilename(entry.Name())
		if !ok {
			continue
		}
		stmts, err := fs.ReadFile(fsys, entry.Name())
		if err != nil {
			return nil, err
		}
		migrations = append(migrations, migration{
			version: version,
			name:    name,
			stmts:   string(stmts),
		})
	}

	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].version < migrations[j].version
	})
	return migrations, nil
}

// parseFilename splits NNNNNN_description.up.sql into its version and
// description. Files that do not match the pattern are ignored.
func parseFilename(filename string) (int, string, bool) {
	base, ok := strings.CutSuffix(filename, ".up.sql")
	if !ok {
		return 0, "", false
	}
	prefix, name, ok := strings.Cut(base, "_")
	if !ok {
		return 0, "", false
	}
	version, err := strconv.Atoi(prefix)
	if err != nil || version <= 0 {
		return 0, "", false
	}
	return version, name, true
}

func appliedVersions(db *sql.DB) (map[int]bool, error) {
	rows, err := db.Query("SELECT version FROM schema_migrations")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	applied := make(map[int]bool)
	for rows.Next() {
		var version int
		if err := rows.Scan(&version); err != nil {
			return nil, err
		}
		applied[version] = true
	}
	return applied, rows.Err()
}

func runOne(db *sql.DB, m migration) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(m.stmts); err != nil {
		return err
	}
	if _, err := tx.Exec("INSERT INTO schema_migrations (version) VALUES (?)", m.version); err != nil {
		return err
	}
	return tx.Commit()
}
