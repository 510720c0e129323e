package postgres

import (
	"context"
	"database/sql"
	"time"

	"mailmerge/internal/domain"
)

type SessionRepository struct {
	DB *sql.DB
}

func NewSessionRepository(db *sql.DB) domain.SessionRepository {
	return &SessionRepository{
		DB: db,
	}
}

func (r *SessionRepository) Create(ctx context.Context, s *domain.UserSession) error {
	query := `
		INSERT INTO user_sessions (id, email, display_name, access_token, refresh_token, token_expires_at, created_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.DB.ExecContext(ctx, query, s.ID, s.Email, s.DisplayName, s.AccessToken, s.RefreshToken, s.TokenExpires, s.CreatedAt, s.ExpiresAt)
	return err
}

func (r *SessionRepository) GetByID(ctx context.Context, id string) (*domain.UserSession, error) {
	query := `
		SELECT id, email, display_name, access_token, refresh_token, token_expires_at, created_at, expires_at
		FROM user_sessions
		WHERE id = $1 AND expires_at > NOW()
	`
	sess := &domain.UserSession{}
	err := r.DB.QueryRowContext(ctx, query, id).Scan(&sess.ID, &sess.Email, &sess.DisplayName, &sess.AccessToken, &sess.RefreshToken, &sess.TokenExpires, &sess.CreatedAt, &sess.ExpiresAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return sess, nil
}

func (r *SessionRepository) UpdateToken(ctx context.Context, id, accessToken, refreshToken string, expires time.Time) error {
	query := `
		UPDATE user_sessions
		SET access_token = $2, refresh_token = $3, token_expires_at = $4
		WHERE id = $1
	`
	result, err := r.DB.ExecContext(ctx, query, id, accessToken, refreshToken, expires)
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

func (r *SessionRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM user_sessions WHERE id = $1`
	result, err := r.DB.ExecContext(ctx, query, id)
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
