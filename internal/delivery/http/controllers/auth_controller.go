package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	h "mailmerge/internal/delivery/http/helpers"
	"mailmerge/internal/delivery/http/middleware"
	"mailmerge/internal/domain"
)

// LoginResponse is the response body for GET /auth/callback
type LoginResponse struct {
	Token       string `json:"token"`
	TokenType   string `json:"token_type"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
}

type AuthController struct {
	Logger  *slog.Logger
	Service domain.AuthService
}

func NewAuthController(logger *slog.Logger, svc domain.AuthService) *AuthController {
	return &AuthController{
		Logger:  logger,
		Service: svc,
	}
}

// Login godoc
// @Summary Start the sign-in flow
// @Description Redirects to the Microsoft authorization endpoint with a signed state parameter.
// @Tags auth
// @Success 302
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /auth/login [get]
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	url, err := c.Service.BeginLogin(r.Context())
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, err.Error())
		return
	}
	http.Redirect(w, r, url, http.StatusFound)
}

// Callback godoc
// @Summary Complete the sign-in flow
// @Description Exchanges the authorization code for an access token, creates a session, and returns a bearer token for the API.
// @Tags auth
// @Produce json
// @Param code query string true "Authorization code"
// @Param state query string true "State from /auth/login"
// @Success 200 {object} helpers.APIResponse "data contains token, token_type, and profile"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /auth/callback [get]
func (c *AuthController) Callback(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	state := r.URL.Query().Get("state")

	token, sess, err := c.Service.CompleteLogin(r.Context(), code, state)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, err.Error())
		case errors.Is(err, domain.ErrUnauthorized):
			h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, err.Error())
		default:
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
			h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, err.Error())
		}
		return
	}

	h.WriteJSONSuccess(w, http.StatusOK, LoginResponse{
		Token:       token,
		TokenType:   "Bearer",
		Email:       sess.Email,
		DisplayName: sess.DisplayName,
	})
}

// Logout godoc
// @Summary Log out
// @Description Deletes the session and its uploaded dataset.
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /auth/logout [post]
func (c *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := middleware.SessionIDFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "not authenticated")
		return
	}
	if err := c.Service.Logout(r.Context(), sessionID); err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, err.Error())
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, map[string]string{"status": "logged_out"})
}

// Me godoc
// @Summary Get the signed-in user
// @Description Returns the provider profile for the current session.
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains the user profile"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /auth/me [get]
func (c *AuthController) Me(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := middleware.SessionIDFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "not authenticated")
		return
	}
	info, err := c.Service.Me(r.Context(), sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "session expired or token rejected")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, err.Error())
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, info)
}
