package domain

import (
	"context"
	"time"
)

// UserSession is one signed-in user's server-side session. It carries the
// delegated access token every outbound mail-send call requires.
type UserSession struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	DisplayName  string    `json:"display_name"`
	AccessToken  string    `json:"-"`
	RefreshToken string    `json:"-"`
	TokenExpires time.Time `json:"token_expires"`
	CreatedAt    time.Time `json:"created_at"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// SessionRepository persists user sessions.
type SessionRepository interface {
	Create(ctx context.Context, s *UserSession) error
	// GetByID returns the session or ErrNotFound.
	GetByID(ctx context.Context, id string) (*UserSession, error)
	// UpdateToken swaps in a refreshed access token and its expiry.
	UpdateToken(ctx context.Context, id, accessToken, refreshToken string, tokenExpires time.Time) error
	Delete(ctx context.Context, id string) error
}

// TokenIssuer signs a session token carrying the server session ID.
type TokenIssuer interface {
	Issue(sessionID string, expiry time.Duration) (string, error)
}

// TokenVerifier validates a session token and returns the session ID.
type TokenVerifier interface {
	Verify(token string) (string, error)
}
