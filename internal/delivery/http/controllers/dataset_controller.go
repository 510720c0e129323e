package controllers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	h "mailmerge/internal/delivery/http/helpers"
	"mailmerge/internal/delivery/http/middleware"
	"mailmerge/internal/domain"
)

type DatasetController struct {
	Logger   *slog.Logger
	Service  domain.IngestionService
	MaxBytes int64
}

func NewDatasetController(logger *slog.Logger, svc domain.IngestionService, maxBytes int64) *DatasetController {
	return &DatasetController{
		Logger:   logger,
		Service:  svc,
		MaxBytes: maxBytes,
	}
}

// Upload godoc
// @Summary Upload a CSV file
// @Description Accepts a multipart CSV upload, detects delimiter and encoding, profiles the columns for email content, and replaces the session's dataset. Form fields: "file" (the .csv) and optional "delimiter" (one of "auto", ",", "|", ";", "\t"; default "auto").
// @Tags datasets
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param file formData file true "CSV file"
// @Param delimiter formData string false "Delimiter override"
// @Success 201 {object} helpers.APIResponse "data contains the dataset view"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /datasets [post]
func (c *DatasetController) Upload(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := middleware.SessionIDFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "not authenticated")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, c.MaxBytes)
	if err := r.ParseMultipartForm(c.MaxBytes); err != nil {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "invalid or oversized multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "no file part in request")
		return
	}
	defer file.Close()

	if !strings.HasSuffix(strings.ToLower(header.Filename), ".csv") {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "only .csv files are accepted")
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, "failed to read uploaded file")
		return
	}

	delimiter := r.FormValue("delimiter")
	if delimiter == "" {
		delimiter = "auto"
	}

	view, err := c.Service.Ingest(r.Context(), sessionID, header.Filename, data, delimiter)
	if err != nil {
		var parseErr *domain.ParseError
		switch {
		case errors.As(err, &parseErr):
			h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, parseErr.Error())
		case errors.Is(err, domain.ErrInvalidInput):
			h.WriteJSONError(w, http.StatusBadRequest, h.ErrCodeBadRequest, err.Error())
		default:
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
			h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, err.Error())
		}
		return
	}

	h.WriteJSONSuccess(w, http.StatusCreated, view)
}

// Current godoc
// @Summary Get the current dataset
// @Description Returns the profile, header, preview rows, and histograms for the session's stored dataset.
// @Tags datasets
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains the dataset view"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /datasets/current [get]
func (c *DatasetController) Current(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := middleware.SessionIDFromContext(r.Context())
	if !ok {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "not authenticated")
		return
	}

	view, err := c.Service.CurrentDataset(r.Context(), sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrNoDataset) {
			h.WriteJSONError(w, http.StatusNotFound, h.ErrCodeNotFound, domain.ErrNoDataset.Error())
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, err.Error())
		return
	}

	h.WriteJSONSuccess(w, http.StatusOK, view)
}
