package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"mailmerge/internal/domain"
)

// DatasetRepository persists one dataset per session. The parsed table and
// its profile are stored as JSONB documents.
type DatasetRepository struct {
	DB *sql.DB
}

func NewDatasetRepository(db *sql.DB) domain.DatasetRepository {
	return &DatasetRepository{
		DB: db,
	}
}

func (r *DatasetRepository) Replace(ctx context.Context, ds *domain.Dataset) error {
	tableJSON, err := json.Marshal(ds.Table)
	if err != nil {
		return fmt.Errorf("encode table: %w", err)
	}
	profileJSON, err := json.Marshal(ds.Profile)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}
	query := `
		INSERT INTO datasets (id, session_id, filename, table_data, profile, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (session_id) DO UPDATE
		SET id = EXCLUDED.id, filename = EXCLUDED.filename, table_data = EXCLUDED.table_data, profile = EXCLUDED.profile, updated_at = EXCLUDED.updated_at
	`
	_, err = r.DB.ExecContext(ctx, query, ds.ID, ds.SessionID, ds.Filename, tableJSON, profileJSON, ds.CreatedAt, ds.UpdatedAt)
	return err
}

func (r *DatasetRepository) GetBySessionID(ctx context.Context, sessionID string) (*domain.Dataset, error) {
	query := `
		SELECT id, session_id, filename, table_data, profile, created_at, updated_at
		FROM datasets
		WHERE session_id = $1
	`
	ds := &domain.Dataset{}
	var tableJSON, profileJSON []byte
	err := r.DB.QueryRowContext(ctx, query, sessionID).Scan(&ds.ID, &ds.SessionID, &ds.Filename, &tableJSON, &profileJSON, &ds.CreatedAt, &ds.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if err := json.Unmarshal(tableJSON, &ds.Table); err != nil {
		return nil, fmt.Errorf("decode table: %w", err)
	}
	if err := json.Unmarshal(profileJSON, &ds.Profile); err != nil {
		return nil, fmt.Errorf("decode profile: %w", err)
	}
	return ds, nil
}

func (r *DatasetRepository) DeleteBySessionID(ctx context.Context, sessionID string) error {
	query := `DELETE FROM datasets WHERE session_id = $1`
	result, err := r.DB.ExecContext(ctx, query, sessionID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
