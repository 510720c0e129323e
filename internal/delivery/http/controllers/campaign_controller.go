package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	h "mailmerge/internal/delivery/http/helpers"
	"mailmerge/internal/delivery/http/middleware"
	"mailmerge/internal/domain"
)

// DispatchRequest is the request body for POST /campaigns
type DispatchRequest struct {
	EmailColumn string `json:"email_column"`
	Subject     string `json:"subject"`
	Body        string `json:"body"`
}

// Validate implements Validator.
func (d DispatchRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(d.EmailColumn) == "" {
		errs = append(errs, "email_column is required")
	}
	if strings.TrimSpace(d.Subject) == "" {
		errs = append(errs, "subject is required")
	}
	if strings.TrimSpace(d.Body) == "" {
		errs = append(errs, "body is required")
	}
	return errs
}

// MessageRequest is the request body for POST /messages
type MessageRequest struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Validate implements Validator.
func (m MessageRequest) Validate() []string {
	var errs []string
	to := strings.TrimSpace(m.To)
	if to == "" {
		errs = append(errs, "to is required")
	} else if !domain.IsEmailAddress(to) {
		errs = append(errs, "invalid recipient address")
	}
	if strings.TrimSpace(m.Subject) == "" {
		errs = append(errs, "subject is required")
	}
	if strings.TrimSpace(m.Body) == "" {
		errs = append(errs, "body is required")
	}
	return errs
}

type CampaignController struct {
	Logger  *slog.Logger
	Service domain.CampaignService
}

func NewCampaignController(logger *slog.Logger, svc domain.CampaignService) *CampaignController {
	return &CampaignController{
		Logger:  logger,
		Service: svc,
	}
}

// Dispatch godoc
// @Summary Send a campaign
// @Description Sends one templated message per row of the session's dataset. {{column}} markers in subject and body are replaced with the row's values. Rows whose address fails validation are skipped; per-row send failures are counted and do not abort the batch.
// @Tags campaigns
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body DispatchRequest true "Campaign definition"
// @Success 200 {object} helpers.APIResponse "data contains sent, failed, and skipped counts"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /campaigns [post]
func (c *CampaignController) Dispatch(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := middleware.SessionIDFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "not authenticated")
		return
	}

	var req DispatchRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}

	result, err := c.Service.Dispatch(r.Context(), sessionID, &domain.CampaignRequest{
		EmailColumn: req.EmailColumn,
		Subject:     req.Subject,
		Body:        req.Body,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNoDataset),
			errors.Is(err, domain.ErrInvalidColumn),
			errors.Is(err, domain.ErrInvalidInput):
			h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, err.Error())
		case errors.Is(err, domain.ErrUnauthorized):
			h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "session expired")
		default:
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
			h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, err.Error())
		}
		return
	}

	h.WriteJSONSuccess(w, http.StatusOK, result)
}

// SendMessage godoc
// @Summary Send a single message
// @Description Sends one HTML message to one recipient as the signed-in user.
// @Tags campaigns
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body MessageRequest true "Message"
// @Success 200 {object} helpers.APIResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /messages [post]
func (c *CampaignController) SendMessage(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := middleware.SessionIDFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "not authenticated")
		return
	}

	var req MessageRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}

	if err := c.Service.SendSingle(r.Context(), sessionID, strings.TrimSpace(req.To), req.Subject, req.Body); err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, err.Error())
		case errors.Is(err, domain.ErrUnauthorized):
			h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "session expired")
		default:
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
			h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, err.Error())
		}
		return
	}

	h.WriteJSONSuccess(w, http.StatusOK, map[string]string{"status": "sent"})
}
