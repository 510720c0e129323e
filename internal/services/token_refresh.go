package services

import (
	"context"
	"fmt"
	"time"

	"mailmerge/internal/domain"
)

// tokenExpiryLeeway refreshes a little before the provider's deadline so an
// access token cannot expire mid-batch.
const tokenExpiryLeeway = time.Minute

// freshAccessToken returns a usable access token for the session, refreshing
// it through the identity provider and persisting the result when the stored
// token is about to expire. The session is updated in place on refresh.
func freshAccessToken(ctx context.Context, provider domain.IdentityProvider, sessionRepo domain.SessionRepository, sess *domain.UserSession) (string, error) {
	if time.Now().Before(sess.TokenExpires.Add(-tokenExpiryLeeway)) || sess.RefreshToken == "" {
		return sess.AccessToken, nil
	}

	token, err := provider.Refresh(ctx, sess.RefreshToken)
	if err != nil {
		return "", fmt.Errorf("%w: token refresh failed", domain.ErrUnauthorized)
	}
	refreshToken := token.RefreshToken
	if refreshToken == "" {
		// Providers that do not rotate refresh tokens omit them on refresh.
		refreshToken = sess.RefreshToken
	}
	if err := sessionRepo.UpdateToken(ctx, sess.ID, token.AccessToken, refreshToken, token.Expiry); err != nil {
		return "", fmt.Errorf("update session token: %w", err)
	}

	sess.AccessToken = token.AccessToken
	sess.RefreshToken = refreshToken
	sess.TokenExpires = token.Expiry
	return token.AccessToken, nil
}
