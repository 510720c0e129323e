package services

import (
	"context"
	"io"
	"log/slog"
	"time"

	"mailmerge/internal/domain"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

type mockDatasetRepo struct {
	replaceFn func(ctx context.Context, ds *domain.Dataset) error
	getFn     func(ctx context.Context, sessionID string) (*domain.Dataset, error)
	deleteFn  func(ctx context.Context, sessionID string) error
}

func (m *mockDatasetRepo) Replace(ctx context.Context, ds *domain.Dataset) error {
	return m.replaceFn(ctx, ds)
}

func (m *mockDatasetRepo) GetBySessionID(ctx context.Context, sessionID string) (*domain.Dataset, error) {
	return m.getFn(ctx, sessionID)
}

func (m *mockDatasetRepo) DeleteBySessionID(ctx context.Context, sessionID string) error {
	return m.deleteFn(ctx, sessionID)
}

type mockSessionRepo struct {
	createFn      func(ctx context.Context, sess *domain.UserSession) error
	getFn         func(ctx context.Context, id string) (*domain.UserSession, error)
	updateTokenFn func(ctx context.Context, id, accessToken, refreshToken string, expires time.Time) error
	deleteFn      func(ctx context.Context, id string) error
}

func (m *mockSessionRepo) Create(ctx context.Context, sess *domain.UserSession) error {
	return m.createFn(ctx, sess)
}

func (m *mockSessionRepo) GetByID(ctx context.Context, id string) (*domain.UserSession, error) {
	return m.getFn(ctx, id)
}

func (m *mockSessionRepo) UpdateToken(ctx context.Context, id, accessToken, refreshToken string, expires time.Time) error {
	return m.updateTokenFn(ctx, id, accessToken, refreshToken, expires)
}

func (m *mockSessionRepo) Delete(ctx context.Context, id string) error {
	return m.deleteFn(ctx, id)
}

type sentMail struct {
	token, to, subject, body string
}

type mockMailer struct {
	sendFn func(ctx context.Context, token, to, subject, htmlBody string) error
	sent   []sentMail
}

func (m *mockMailer) Send(ctx context.Context, token, to, subject, htmlBody string) error {
	m.sent = append(m.sent, sentMail{token: token, to: to, subject: subject, body: htmlBody})
	if m.sendFn != nil {
		return m.sendFn(ctx, token, to, subject, htmlBody)
	}
	return nil
}

type mockUploadStore struct {
	saveFn func(filename string, data []byte) (string, error)
	saved  map[string][]byte
}

func (m *mockUploadStore) Save(filename string, data []byte) (string, error) {
	if m.saved == nil {
		m.saved = make(map[string][]byte)
	}
	m.saved[filename] = data
	if m.saveFn != nil {
		return m.saveFn(filename, data)
	}
	return filename, nil
}

type mockIdentityProvider struct {
	authCodeURLFn func(state string) string
	exchangeFn    func(ctx context.Context, code string) (*domain.Token, error)
	refreshFn     func(ctx context.Context, refreshToken string) (*domain.Token, error)
}

func (m *mockIdentityProvider) AuthCodeURL(state string) string {
	return m.authCodeURLFn(state)
}

func (m *mockIdentityProvider) Exchange(ctx context.Context, code string) (*domain.Token, error) {
	return m.exchangeFn(ctx, code)
}

func (m *mockIdentityProvider) Refresh(ctx context.Context, refreshToken string) (*domain.Token, error) {
	return m.refreshFn(ctx, refreshToken)
}

type mockProfileReader struct {
	meFn func(ctx context.Context, token string) (*domain.UserInfo, error)
}

func (m *mockProfileReader) Me(ctx context.Context, token string) (*domain.UserInfo, error) {
	return m.meFn(ctx, token)
}

type mockTokenIssuer struct {
	issueFn func(subject string, expiry time.Duration) (string, error)
}

func (m *mockTokenIssuer) Issue(subject string, expiry time.Duration) (string, error) {
	return m.issueFn(subject, expiry)
}

type mockTokenVerifier struct {
	verifyFn func(token string) (string, error)
}

func (m *mockTokenVerifier) Verify(token string) (string, error) {
	return m.verifyFn(token)
}
