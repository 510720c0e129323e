package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"mailmerge/internal/domain"
)

func datasetFixture() *domain.Dataset {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	return &domain.Dataset{
		ID:        "ds-1",
		SessionID: "sess-1",
		Filename:  "contacts.csv",
		Table: &domain.Table{
			Columns: []string{"email", "name"},
			Rows:    []domain.Row{{"email": "a@x.com", "name": "A"}},
		},
		Profile: &domain.IngestionProfile{
			TotalRows: 1,
			Delimiter: ",",
			Encoding:  "utf-8",
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestDatasetRepository_Replace(t *testing.T) {
	ctx := context.Background()
	ds := datasetFixture()

	t.Run("success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(`INSERT INTO datasets`).
			WithArgs(ds.ID, ds.SessionID, ds.Filename, sqlmock.AnyArg(), sqlmock.AnyArg(), ds.CreatedAt, ds.UpdatedAt).
			WillReturnResult(sqlmock.NewResult(0, 1))

		repo := NewDatasetRepository(db)
		require.NoError(t, repo.Replace(ctx, ds))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("db error", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(`INSERT INTO datasets`).
			WillReturnError(sql.ErrConnDone)

		repo := NewDatasetRepository(db)
		require.Error(t, repo.Replace(ctx, ds))
	})
}

func TestDatasetRepository_GetBySessionID(t *testing.T) {
	ctx := context.Background()
	ds := datasetFixture()

	t.Run("success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		tableJSON, err := json.Marshal(ds.Table)
		require.NoError(t, err)
		profileJSON, err := json.Marshal(ds.Profile)
		require.NoError(t, err)

		rows := sqlmock.NewRows([]string{"id", "session_id", "filename", "table_data", "profile", "created_at", "updated_at"}).
			AddRow(ds.ID, ds.SessionID, ds.Filename, tableJSON, profileJSON, ds.CreatedAt, ds.UpdatedAt)
		mock.ExpectQuery(`SELECT id, session_id, filename, table_data, profile`).
			WithArgs("sess-1").
			WillReturnRows(rows)

		repo := NewDatasetRepository(db)
		got, err := repo.GetBySessionID(ctx, "sess-1")
		require.NoError(t, err)
		require.Equal(t, ds.Filename, got.Filename)
		require.Equal(t, ds.Table.Columns, got.Table.Columns)
		require.Equal(t, ds.Table.Rows, got.Table.Rows)
		require.Equal(t, ds.Profile.TotalRows, got.Profile.TotalRows)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT id, session_id, filename`).
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		repo := NewDatasetRepository(db)
		_, err = repo.GetBySessionID(ctx, "missing")
		require.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestDatasetRepository_DeleteBySessionID(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(`DELETE FROM datasets`).
			WithArgs("sess-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		repo := NewDatasetRepository(db)
		require.NoError(t, repo.DeleteBySessionID(ctx, "sess-1"))
	})

	t.Run("not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(`DELETE FROM datasets`).
			WithArgs("missing").
			WillReturnResult(sqlmock.NewResult(0, 0))

		repo := NewDatasetRepository(db)
		require.ErrorIs(t, repo.DeleteBySessionID(ctx, "missing"), domain.ErrNotFound)
	})
}
