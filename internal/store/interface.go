package store

import (
	"database/sql"
	"fmt"
	"os"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/shrimpsizemoose/semla/internal/models"
)

// EntityStore persists the three platform collections as named
// snapshot values. Load returns (nil, nil) when no prior state exists;
// the caller decides how to seed. Persist rewrites all three values and
// is atomic from the perspective of the next Load.
type EntityStore interface {
	Close() error
	Load() (*models.Snapshot, error)
	Persist(*models.Snapshot) error
}

// BaseStore provides common functionality for the SQL-backed
// implementations: one row per collection in the snapshots table.
type BaseStore struct {
	DB        *sqlx.DB
	Converter func(string) string
}

type snapshotRow struct {
	Name string `db:"name"`
	Data string `db:"data"`
}

func (s *BaseStore) Close() error {
	if s.DB != nil {
		return s.DB.Close()
	}
	return nil
}

// ApplyMigrations applies SQL migrations from a directory, translating dialect if needed
func (s *BaseStore) ApplyMigrations(dir string, translateSQL func(string) string) error {
	files, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read migrations directory: %w", err)
	}

	for _, file := range files {
		if !strings.HasSuffix(file.Name(), ".sql") {
			continue
		}

		content, err := os.ReadFile(fmt.Sprintf("%s/%s", dir, file.Name()))
		if err != nil {
			return fmt.Errorf("failed to read migration %s: %w", file.Name(), err)
		}

		sql := string(content)
		if translateSQL != nil {
			sql = translateSQL(sql)
		}

		if _, err := s.DB.Exec(sql); err != nil {
			return fmt.Errorf("failed to apply migration %s: %w", file.Name(), err)
		}
	}

	return nil
}

func (s *BaseStore) Load() (*models.Snapshot, error) {
	var rows []snapshotRow
	err := s.DB.Select(&rows, `SELECT name, data FROM snapshots`)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("failed to load snapshot rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	snap := &models.Snapshot{}
	for _, row := range rows {
		if err := DecodeCollection(snap, row.Name, []byte(row.Data)); err != nil {
			return nil, err
		}
	}

	return snap, nil
}

func (s *BaseStore) Persist(snap *models.Snapshot) error {
	values, err := EncodeSnapshot(snap)
	if err != nil {
		return err
	}

	tx, err := s.DB.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin persist transaction: %w", err)
	}
	defer tx.Rollback()

	query := s.Converter(`
		INSERT INTO snapshots (name, data)
		VALUES (?, ?)
		ON CONFLICT(name) DO UPDATE SET data = excluded.data
	`)
	for _, name := range CollectionKeys {
		if _, err := tx.Exec(query, name, string(values[name])); err != nil {
			return fmt.Errorf("failed to persist %s: %w", name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit persist transaction: %w", err)
	}
	return nil
}
