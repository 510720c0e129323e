package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"mailmerge/internal/domain"
)

// oauthStateSubject marks short-lived signed state tokens for the
// authorization flow; they are never valid session tokens.
const (
	oauthStateSubject = "oauth_state"
	oauthStateTTL     = 10 * time.Minute
)

type authService struct {
	provider       domain.IdentityProvider
	profiles       domain.UserProfileReader
	sessionRepo    domain.SessionRepository
	datasetRepo    domain.DatasetRepository
	issuer         domain.TokenIssuer
	verifier       domain.TokenVerifier
	sessionTTL     time.Duration
	contextTimeout time.Duration
}

// NewAuthService returns an AuthService running the delegated authorization
// flow against the given identity provider.
func NewAuthService(
	provider domain.IdentityProvider,
	profiles domain.UserProfileReader,
	sessionRepo domain.SessionRepository,
	datasetRepo domain.DatasetRepository,
	issuer domain.TokenIssuer,
	verifier domain.TokenVerifier,
	sessionTTL time.Duration,
	timeout time.Duration,
) domain.AuthService {
	return &authService{
		provider:       provider,
		profiles:       profiles,
		sessionRepo:    sessionRepo,
		datasetRepo:    datasetRepo,
		issuer:         issuer,
		verifier:       verifier,
		sessionTTL:     sessionTTL,
		contextTimeout: timeout,
	}
}

// BeginLogin returns the provider's authorization URL. The state parameter is
// a signed, expiring token so the callback can check it without server-side
// storage.
func (s *authService) BeginLogin(ctx context.Context) (string, error) {
	state, err := s.issuer.Issue(oauthStateSubject, oauthStateTTL)
	if err != nil {
		return "", fmt.Errorf("issue state: %w", err)
	}
	return s.provider.AuthCodeURL(state), nil
}

// CompleteLogin verifies the callback state, exchanges the code for an access
// token, fetches the user's profile, and creates a session.
func (s *authService) CompleteLogin(ctx context.Context, code, state string) (string, *domain.UserSession, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if code == "" {
		return "", nil, fmt.Errorf("%w: authorization code is required", domain.ErrInvalidInput)
	}
	if subject, err := s.verifier.Verify(state); err != nil || subject != oauthStateSubject {
		return "", nil, fmt.Errorf("%w: invalid state", domain.ErrUnauthorized)
	}

	token, err := s.provider.Exchange(ctx, code)
	if err != nil {
		return "", nil, fmt.Errorf("%w: code exchange failed", domain.ErrUnauthorized)
	}

	info, err := s.profiles.Me(ctx, token.AccessToken)
	if err != nil {
		return "", nil, fmt.Errorf("fetch user profile: %w", err)
	}

	now := time.Now()
	sess := &domain.UserSession{
		ID:           uuid.New().String(),
		Email:        info.Email,
		DisplayName:  info.DisplayName,
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		TokenExpires: token.Expiry,
		CreatedAt:    now,
		ExpiresAt:    now.Add(s.sessionTTL),
	}
	if err := s.sessionRepo.Create(ctx, sess); err != nil {
		return "", nil, fmt.Errorf("create session: %w", err)
	}

	sessionToken, err := s.issuer.Issue(sess.ID, s.sessionTTL)
	if err != nil {
		return "", nil, fmt.Errorf("issue session token: %w", err)
	}
	return sessionToken, sess, nil
}

// Logout removes the session and its dataset.
func (s *authService) Logout(ctx context.Context, sessionID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.datasetRepo.DeleteBySessionID(ctx, sessionID); err != nil && !errors.Is(err, domain.ErrNotFound) {
		slog.WarnContext(ctx, "failed to delete dataset on logout", "session_id", sessionID, "err", err)
	}
	if err := s.sessionRepo.Delete(ctx, sessionID); err != nil && !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// Me returns the provider profile for the session's access token.
func (s *authService) Me(ctx context.Context, sessionID string) (*domain.UserInfo, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	sess, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("get session: %w", err)
	}
	accessToken, err := freshAccessToken(ctx, s.provider, s.sessionRepo, sess)
	if err != nil {
		return nil, err
	}
	info, err := s.profiles.Me(ctx, accessToken)
	if err != nil {
		return nil, fmt.Errorf("%w: token rejected by provider", domain.ErrUnauthorized)
	}
	return info, nil
}
