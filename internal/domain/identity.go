package domain

import (
	"context"
	"time"
)

// Token is the bearer access token obtained from the identity provider,
// scoped to mail-send and profile-read permissions. RefreshToken may be
// empty when the provider did not grant offline access.
type Token struct {
	AccessToken  string
	RefreshToken string
	Expiry       time.Time
}

// UserInfo is the signed-in user's profile as reported by the provider.
type UserInfo struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
}

// IdentityProvider abstracts the interactive authorization flow. The core
// treats its result purely as "a token, or none".
type IdentityProvider interface {
	// AuthCodeURL returns the provider's authorization URL for the flow
	// identified by state.
	AuthCodeURL(state string) string
	// Exchange trades an authorization code for an access token.
	Exchange(ctx context.Context, code string) (*Token, error)
	// Refresh trades a refresh token for a new access token.
	Refresh(ctx context.Context, refreshToken string) (*Token, error)
}

// UserProfileReader fetches the signed-in user's profile with their token.
type UserProfileReader interface {
	Me(ctx context.Context, token string) (*UserInfo, error)
}

// AuthService runs the login flow and manages sessions.
type AuthService interface {
	// BeginLogin returns the provider authorization URL to redirect to.
	BeginLogin(ctx context.Context) (string, error)
	// CompleteLogin exchanges the callback code, creates a session, and
	// returns a signed session token plus the session record.
	CompleteLogin(ctx context.Context, code, state string) (string, *UserSession, error)
	Logout(ctx context.Context, sessionID string) error
	// Me returns the provider profile for the session's token.
	Me(ctx context.Context, sessionID string) (*UserInfo, error)
}
