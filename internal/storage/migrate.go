package storage

import (
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"time"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

const ledgerDDL = `CREATE TABLE IF NOT EXISTS schema_migrations (
	version TEXT PRIMARY KEY,
	applied_at TEXT NOT NULL
)`

// MigrateUp applies every embedded migration not yet recorded in
// schema_migrations, oldest first.
func MigrateUp(db *sql.DB) error {
	versions, err := migrationVersions()
	if err != nil {
		return err
	}
	applied, err := appliedSet(db)
	if err != nil {
		return err
	}
	for _, v := range versions {
		if applied[v] {
			continue
		}
		if err := runMigration(db, v, ".up.sql", func(tx *sql.Tx) error {
			_, err := tx.Exec(`INSERT INTO schema_migrations (version, applied_at) VALUES (?, ?)`, v, time.Now().UTC().Format(sqliteTimeLayout))
			return err
		}); err != nil {
			return err
		}
	}
	return nil
}

// MigrateDown reverts every applied migration, newest first.
func MigrateDown(db *sql.DB) error {
	versions, err := migrationVersions()
	if err != nil {
		return err
	}
	applied, err := appliedSet(db)
	if err != nil {
		return err
	}
	for i := len(versions) - 1; i >= 0; i-- {
		v := versions[i]
		if !applied[v] {
			continue
		}
		if err := runMigration(db, v, ".down.sql", func(tx *sql.Tx) error {
			_, err := tx.Exec(`DELETE FROM schema_migrations WHERE version = ?`, v)
			return err
		}); err != nil {
			return err
		}
	}
	return nil
}

// AppliedMigrations lists recorded versions in order.
func AppliedMigrations(db *sql.DB) ([]string, error) {
	set, err := appliedSet(db)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Strings(out)
	return out, nil
}

func migrationVersions() ([]string, error) {
	entries, err := fs.Glob(migrationFiles, "migrations/*.up.sql")
	if err != nil {
		return nil, fmt.Errorf("glob migrations: %w", err)
	}
	versions := make([]string, 0, len(entries))
	for _, name := range entries {
		versions = append(versions, strings.TrimSuffix(path.Base(name), ".up.sql"))
	}
	sort.Strings(versions)
	return versions, nil
}

func appliedSet(db *sql.DB) (map[string]bool, error) {
	if _, err := db.Exec(ledgerDDL); err != nil {
		return nil, fmt.Errorf("create migration ledger: %w", err)
	}
	rows, err := db.Query(`SELECT version FROM schema_migrations`)
	if err != nil {
		return nil, fmt.Errorf("read migration ledger: %w", err)
	}
	defer rows.Close()
	out := make(map[string]bool)
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("scan migration ledger: %w", err)
		}
		out[v] = true
	}
	return out, rows.Err()
}

func runMigration(db *sql.DB, version, suffix string, record func(*sql.Tx) error) error {
	name := "migrations/" + version + suffix
	sqlBytes, err := migrationFiles.ReadFile(name)
	if err != nil {
		return fmt.Errorf("read migration %s: %w", name, err)
	}
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin migration %s: %w", name, err)
	}
	if _, err := tx.Exec(string(sqlBytes)); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("apply migration %s: %w", name, err)
	}
	if err := record(tx); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("record migration %s: %w", name, err)
	}
	return tx.Commit()
}
