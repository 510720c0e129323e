package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"mailmerge/internal/domain"
)

func TestSessionRepository_Create(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		sess    *domain.UserSession
		mock    func(mock sqlmock.Sqlmock)
		wantErr bool
	}{
		{
			name: "success",
			sess: &domain.UserSession{
				ID:           "sess-1",
				Email:        "user@example.com",
				DisplayName:  "User",
				AccessToken:  "tok",
				RefreshToken: "refresh",
				TokenExpires: now.Add(time.Hour),
				CreatedAt:    now,
				ExpiresAt:    now.Add(12 * time.Hour),
			},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO user_sessions`).
					WithArgs("sess-1", "user@example.com", "User", "tok", "refresh", now.Add(time.Hour), now, now.Add(12*time.Hour)).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
			wantErr: false,
		},
		{
			name: "db error",
			sess: &domain.UserSession{ID: "sess-2"},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO user_sessions`).
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewSessionRepository(db)
			err = repo.Create(ctx, tt.sess)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestSessionRepository_GetByID(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		rows := sqlmock.NewRows([]string{"id", "email", "display_name", "access_token", "refresh_token", "token_expires_at", "created_at", "expires_at"}).
			AddRow("sess-1", "user@example.com", "User", "tok", "refresh", now.Add(time.Hour), now, now.Add(12*time.Hour))
		mock.ExpectQuery(`SELECT id, email, display_name, access_token, refresh_token, token_expires_at, created_at, expires_at`).
			WithArgs("sess-1").
			WillReturnRows(rows)

		repo := NewSessionRepository(db)
		sess, err := repo.GetByID(ctx, "sess-1")
		require.NoError(t, err)
		require.Equal(t, "user@example.com", sess.Email)
		require.Equal(t, "tok", sess.AccessToken)
		require.Equal(t, "refresh", sess.RefreshToken)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT id, email, display_name`).
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		repo := NewSessionRepository(db)
		_, err = repo.GetByID(ctx, "missing")
		require.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestSessionRepository_UpdateToken(t *testing.T) {
	ctx := context.Background()
	expires := time.Date(2025, 1, 1, 1, 0, 0, 0, time.UTC)

	t.Run("success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(`UPDATE user_sessions`).
			WithArgs("sess-1", "new-tok", "new-refresh", expires).
			WillReturnResult(sqlmock.NewResult(0, 1))

		repo := NewSessionRepository(db)
		require.NoError(t, repo.UpdateToken(ctx, "sess-1", "new-tok", "new-refresh", expires))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(`UPDATE user_sessions`).
			WithArgs("missing", "new-tok", "new-refresh", expires).
			WillReturnResult(sqlmock.NewResult(0, 0))

		repo := NewSessionRepository(db)
		require.ErrorIs(t, repo.UpdateToken(ctx, "missing", "new-tok", "new-refresh", expires), domain.ErrNotFound)
	})
}

func TestSessionRepository_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(`DELETE FROM user_sessions`).
			WithArgs("sess-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		repo := NewSessionRepository(db)
		require.NoError(t, repo.Delete(ctx, "sess-1"))
	})

	t.Run("not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(`DELETE FROM user_sessions`).
			WithArgs("missing").
			WillReturnResult(sqlmock.NewResult(0, 0))

		repo := NewSessionRepository(db)
		require.ErrorIs(t, repo.Delete(ctx, "missing"), domain.ErrNotFound)
	})
}
