package journal

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is written to schema_version when a journal is created.
// A journal at any other version is refused rather than upgraded.
const schemaVersion = 1

// ErrSchemaMismatch reports a journal written with a different schema version.
var ErrSchemaMismatch = errors.New("journal schema version mismatch")

// migrate creates the journal tables in an empty database and checks the
// recorded version of an existing one, all inside a single transaction.
func (s *Store) migrate(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin journal migration: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	found, err := recordedVersion(ctx, tx)
	if err != nil {
		return err
	}
	switch found {
	case schemaVersion:
		return nil
	case 0:
		if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
			return fmt.Errorf("create journal tables: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO schema_version (version) VALUES (?)`, schemaVersion); err != nil {
			return fmt.Errorf("stamp journal version: %w", err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit journal migration: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("%w: %s is at version %d but songrenamer expects %d; move it aside to start a fresh journal",
			ErrSchemaMismatch, s.path, found, schemaVersion)
	}
}

// recordedVersion returns the stamped schema version, or 0 when the database
// has no journal tables yet.
func recordedVersion(ctx context.Context, tx *sql.Tx) (int, error) {
	var tables int
	err := tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'schema_version'`,
	).Scan(&tables)
	if err != nil {
		return 0, fmt.Errorf("inspect journal tables: %w", err)
	}
	if tables == 0 {
		return 0, nil
	}

	var version int
	err = tx.QueryRowContext(ctx, `SELECT version FROM schema_version LIMIT 1`).Scan(&version)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("%w: schema_version is empty", ErrSchemaMismatch)
	}
	if err != nil {
		return 0, fmt.Errorf("read journal version: %w", err)
	}
	return version, nil
}
