package controllers

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"

	"mailmerge/internal/delivery/http/middleware"
	"mailmerge/internal/domain"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// withSession attaches a session ID the way the auth middleware would.
func withSession(r *http.Request, sessionID string) *http.Request {
	return r.WithContext(middleware.SetSessionID(r.Context(), sessionID))
}

func newRequest(method, target string, body io.Reader) *http.Request {
	r := httptest.NewRequest(method, target, body)
	return withSession(r, "sess-1")
}

type fakeAuthService struct {
	beginLoginFn    func(ctx context.Context) (string, error)
	completeLoginFn func(ctx context.Context, code, state string) (string, *domain.UserSession, error)
	logoutFn        func(ctx context.Context, sessionID string) error
	meFn            func(ctx context.Context, sessionID string) (*domain.UserInfo, error)
}

func (f *fakeAuthService) BeginLogin(ctx context.Context) (string, error) {
	return f.beginLoginFn(ctx)
}

func (f *fakeAuthService) CompleteLogin(ctx context.Context, code, state string) (string, *domain.UserSession, error) {
	return f.completeLoginFn(ctx, code, state)
}

func (f *fakeAuthService) Logout(ctx context.Context, sessionID string) error {
	return f.logoutFn(ctx, sessionID)
}

func (f *fakeAuthService) Me(ctx context.Context, sessionID string) (*domain.UserInfo, error) {
	return f.meFn(ctx, sessionID)
}

type fakeIngestionService struct {
	ingestFn  func(ctx context.Context, sessionID, filename string, data []byte, delimiter string) (*domain.DatasetView, error)
	currentFn func(ctx context.Context, sessionID string) (*domain.DatasetView, error)
}

func (f *fakeIngestionService) Ingest(ctx context.Context, sessionID, filename string, data []byte, delimiter string) (*domain.DatasetView, error) {
	return f.ingestFn(ctx, sessionID, filename, data, delimiter)
}

func (f *fakeIngestionService) CurrentDataset(ctx context.Context, sessionID string) (*domain.DatasetView, error) {
	return f.currentFn(ctx, sessionID)
}

type fakeCampaignService struct {
	dispatchFn   func(ctx context.Context, sessionID string, req *domain.CampaignRequest) (*domain.DispatchResult, error)
	sendSingleFn func(ctx context.Context, sessionID, to, subject, htmlBody string) error
}

func (f *fakeCampaignService) Dispatch(ctx context.Context, sessionID string, req *domain.CampaignRequest) (*domain.DispatchResult, error) {
	return f.dispatchFn(ctx, sessionID, req)
}

func (f *fakeCampaignService) SendSingle(ctx context.Context, sessionID, to, subject, htmlBody string) error {
	return f.sendSingleFn(ctx, sessionID, to, subject, htmlBody)
}
