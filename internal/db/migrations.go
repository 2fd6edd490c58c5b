package db

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strconv"
	"strings"

	"gorm.io/gorm"
)

// schemaMigration is one forward-only SQL file. Checksum pins the file content
// recorded at apply time.
type schemaMigration struct {
	Version  int
	Name     string
	Checksum string
	SQL      string
}

type schemaMigrationRow struct {
	Version  int    `gorm:"column:version"`
	Checksum string `gorm:"column:checksum"`
}

// migrateSchema applies pending migrations and refuses to boot when an applied
// file was edited afterwards.
func migrateSchema(database *gorm.DB, files fs.FS) error {
	const createTableSQL = `
CREATE TABLE IF NOT EXISTS schema_migrations (
  version INTEGER PRIMARY KEY,
  name TEXT NOT NULL,
  checksum TEXT NOT NULL,
  applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
)`
	if err := database.Exec(createTableSQL).Error; err != nil {
		return fmt.Errorf("create schema_migrations table: %w", err)
	}

	pending, err := readSchemaMigrations(files)
	if err != nil {
		return err
	}

	var rows []schemaMigrationRow
	if err := database.Raw(`SELECT version, checksum FROM schema_migrations`).Scan(&rows).Error; err != nil {
		return fmt.Errorf("load schema_migrations: %w", err)
	}
	checksums := make(map[int]string, len(rows))
	for _, row := range rows {
		checksums[row.Version] = row.Checksum
	}

	for _, migration := range pending {
		recorded, done := checksums[migration.Version]
		if done {
			if recorded != migration.Checksum {
				return fmt.Errorf("migration %s changed after it was applied", migration.Name)
			}
			continue
		}
		if err := runSchemaMigration(database, migration); err != nil {
			return err
		}
	}
	return nil
}

// readSchemaMigrations returns NNNN_name.sql files ordered by numeric version.
func readSchemaMigrations(files fs.FS) ([]schemaMigration, error) {
	names, err := fs.Glob(files, "*.sql")
	if err != nil {
		return nil, fmt.Errorf("list migrations: %w", err)
	}

	migrations := make([]schemaMigration, 0, len(names))
	for _, name := range names {
		prefix, _, found := strings.Cut(path.Base(name), "_")
		if !found {
			continue
		}
		version, err := strconv.Atoi(prefix)
		if err != nil {
			continue
		}

		content, err := fs.ReadFile(files, name)
		if err != nil {
			return nil, fmt.Errorf("read migration %s: %w", name, err)
		}
		sum := sha256.Sum256(content)
		migrations = append(migrations, schemaMigration{
			Version:  version,
			Name:     name,
			Checksum: hex.EncodeToString(sum[:]),
			SQL:      string(content),
		})
	}

	sort.SliceStable(migrations, func(i, j int) bool {
		return migrations[i].Version < migrations[j].Version
	})
	for i := 1; i < len(migrations); i++ {
		if migrations[i].Version == migrations[i-1].Version {
			return nil, fmt.Errorf("duplicate migration version %d in %s and %s", migrations[i].Version, migrations[i-1].Name, migrations[i].Name)
		}
	}
	return migrations, nil
}

func runSchemaMigration(database *gorm.DB, migration schemaMigration) error {
	statements := splitSQLStatements(migration.SQL)
	if len(statements) == 0 {
		return errors.New("migration " + migration.Name + " has no SQL statements")
	}

	return database.Transaction(func(tx *gorm.DB) error {
		for _, statement := range statements {
			if err := tx.Exec(statement).Error; err != nil {
				return fmt.Errorf("execute migration %s: %w", migration.Name, err)
			}
		}
		return tx.Exec(
			`INSERT INTO schema_migrations(version, name, checksum) VALUES (?, ?, ?)`,
			migration.Version,
			migration.Name,
			migration.Checksum,
		).Error
	})
}

// splitSQLStatements drops "--" comment lines and splits on semicolons.
func splitSQLStatements(sqlText string) []string {
	var body strings.Builder
	for _, line := range strings.Split(sqlText, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "--") {
			continue
		}
		body.WriteString(line)
		body.WriteByte('\n')
	}

	var statements []string
	for _, part := range strings.Split(body.String(), ";") {
		if statement := strings.TrimSpace(part); statement != "" {
			statements = append(statements, statement)
		}
	}
	return statements
}
