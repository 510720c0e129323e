package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mailmerge/internal/delivery/http/helpers"
	"mailmerge/internal/domain"
)

func TestAuthController_Login(t *testing.T) {
	svc := &fakeAuthService{
		beginLoginFn: func(ctx context.Context) (string, error) {
			return "https://login.example.com/authorize?state=abc", nil
		},
	}
	c := NewAuthController(testLogger, svc)

	req := httptest.NewRequest(http.MethodGet, "http://test/auth/login", nil)
	rr := httptest.NewRecorder()
	c.Login(rr, req)

	require.Equal(t, http.StatusFound, rr.Code)
	assert.Equal(t, "https://login.example.com/authorize?state=abc", rr.Header().Get("Location"))
}

func TestAuthController_Callback(t *testing.T) {
	svc := &fakeAuthService{
		completeLoginFn: func(ctx context.Context, code, state string) (string, *domain.UserSession, error) {
			require.Equal(t, "code-1", code)
			require.Equal(t, "state-1", state)
			return "jwt-token", &domain.UserSession{Email: "user@example.com", DisplayName: "User"}, nil
		},
	}
	c := NewAuthController(testLogger, svc)

	req := httptest.NewRequest(http.MethodGet, "http://test/auth/callback?code=code-1&state=state-1", nil)
	rr := httptest.NewRecorder()
	c.Callback(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var envelope helpers.APIResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
	require.Nil(t, envelope.Error)
	data := envelope.Data.(map[string]any)
	assert.Equal(t, "jwt-token", data["token"])
	assert.Equal(t, "Bearer", data["token_type"])
	assert.Equal(t, "user@example.com", data["email"])
}

func TestAuthController_Callback_Errors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"missing code", domain.ErrInvalidInput, http.StatusBadRequest, helpers.ErrCodeBadRequest},
		{"bad state", domain.ErrUnauthorized, http.StatusUnauthorized, helpers.ErrCodeUnauthorized},
		{"provider failure", assert.AnError, http.StatusInternalServerError, helpers.ErrCodeInternalError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeAuthService{
				completeLoginFn: func(ctx context.Context, code, state string) (string, *domain.UserSession, error) {
					return "", nil, tt.err
				},
			}
			c := NewAuthController(testLogger, svc)

			req := httptest.NewRequest(http.MethodGet, "http://test/auth/callback", nil)
			rr := httptest.NewRecorder()
			c.Callback(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			var envelope helpers.APIResponse
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
			require.NotNil(t, envelope.Error)
			assert.Equal(t, tt.wantCode, envelope.Error.Code)
		})
	}
}

func TestAuthController_Logout(t *testing.T) {
	var loggedOut string
	svc := &fakeAuthService{
		logoutFn: func(ctx context.Context, sessionID string) error {
			loggedOut = sessionID
			return nil
		},
	}
	c := NewAuthController(testLogger, svc)

	req := newRequest(http.MethodPost, "http://test/auth/logout", nil)
	rr := httptest.NewRecorder()
	c.Logout(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "sess-1", loggedOut)
}

func TestAuthController_Logout_NoSession(t *testing.T) {
	c := NewAuthController(testLogger, &fakeAuthService{})

	req := httptest.NewRequest(http.MethodPost, "http://test/auth/logout", nil)
	rr := httptest.NewRecorder()
	c.Logout(rr, req)

	require.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestAuthController_Me(t *testing.T) {
	svc := &fakeAuthService{
		meFn: func(ctx context.Context, sessionID string) (*domain.UserInfo, error) {
			return &domain.UserInfo{ID: "u-1", Email: "user@example.com", DisplayName: "User"}, nil
		},
	}
	c := NewAuthController(testLogger, svc)

	req := newRequest(http.MethodGet, "http://test/auth/me", nil)
	rr := httptest.NewRecorder()
	c.Me(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var envelope helpers.APIResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
	data := envelope.Data.(map[string]any)
	assert.Equal(t, "user@example.com", data["email"])
}

func TestAuthController_Me_SessionExpired(t *testing.T) {
	svc := &fakeAuthService{
		meFn: func(ctx context.Context, sessionID string) (*domain.UserInfo, error) {
			return nil, domain.ErrUnauthorized
		},
	}
	c := NewAuthController(testLogger, svc)

	req := newRequest(http.MethodGet, "http://test/auth/me", nil)
	rr := httptest.NewRecorder()
	c.Me(rr, req)

	require.Equal(t, http.StatusUnauthorized, rr.Code)
}
