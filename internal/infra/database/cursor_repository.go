package database

import (
	"context"
	"database/sql"
	"errors"
)

const cursorSlot = "default"

// CursorRepository keeps the sync cursor in a single-row slot table, for
// deployments that already run Postgres and want the cursor to survive
// host rebuilds.
type CursorRepository struct {
	DB *sql.DB
}

func NewCursorRepository(db *sql.DB) *CursorRepository {
	return &CursorRepository{DB: db}
}

func (r *CursorRepository) EnsureSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS sync_cursor (
			slot TEXT PRIMARY KEY,
			last_record_id TEXT NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`
	_, err := r.DB.ExecContext(ctx, query)
	return err
}

func (r *CursorRepository) Load(ctx context.Context) (string, error) {
	var lastRecordID string
	err := r.DB.QueryRowContext(ctx,
		`SELECT last_record_id FROM sync_cursor WHERE slot = $1`,
		cursorSlot,
	).Scan(&lastRecordID)

	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return lastRecordID, nil
}

func (r *CursorRepository) Save(ctx context.Context, recordID string) error {
	query := `
		INSERT INTO sync_cursor (slot, last_record_id, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (slot)
		DO UPDATE SET
			last_record_id = EXCLUDED.last_record_id,
			updated_at = NOW()
	`
	_, err := r.DB.ExecContext(ctx, query, cursorSlot, recordID)
	return err
}
