package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"mailmerge/internal/domain"
)

type campaignService struct {
	datasetRepo    domain.DatasetRepository
	sessionRepo    domain.SessionRepository
	provider       domain.IdentityProvider
	mailer         domain.Mailer
	logger         *slog.Logger
	contextTimeout time.Duration
}

// NewCampaignService returns a CampaignService that sends through the given
// mailer using the session's delegated access token, refreshing it through
// the identity provider when it has expired.
func NewCampaignService(datasetRepo domain.DatasetRepository, sessionRepo domain.SessionRepository, provider domain.IdentityProvider, mailer domain.Mailer, logger *slog.Logger, timeout time.Duration) domain.CampaignService {
	return &campaignService{
		datasetRepo:    datasetRepo,
		sessionRepo:    sessionRepo,
		provider:       provider,
		mailer:         mailer,
		logger:         logger,
		contextTimeout: timeout,
	}
}

// Dispatch runs one campaign over the session's dataset. Rows are processed
// in table order; a row whose address fails the classifier is skipped, a row
// whose send fails is counted and never aborts the batch. The chosen column
// is validated before any send so a bad request cannot produce partial sends.
func (s *campaignService) Dispatch(ctx context.Context, sessionID string, req *domain.CampaignRequest) (*domain.DispatchResult, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if req == nil || req.EmailColumn == "" || req.Subject == "" || req.Body == "" {
		return nil, fmt.Errorf("%w: email column, subject, and body are required", domain.ErrInvalidInput)
	}

	ds, err := s.datasetRepo.GetBySessionID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNoDataset
		}
		return nil, fmt.Errorf("get dataset: %w", err)
	}
	if !ds.Table.HasColumn(req.EmailColumn) {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidColumn, req.EmailColumn)
	}

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

	result := &domain.DispatchResult{SkippedPreview: []string{}}
	for _, row := range ds.Table.Rows {
		address := row[req.EmailColumn]
		if !domain.IsEmailAddress(address) {
			result.Skipped++
			if len(result.SkippedPreview) < domain.SkippedPreviewLimit {
				result.SkippedPreview = append(result.SkippedPreview, address)
			} else {
				result.SkippedOmitted++
			}
			continue
		}

		subject := mergeTemplate(req.Subject, ds.Table.Columns, row)
		body := mergeTemplate(req.Body, ds.Table.Columns, row)
		if err := s.mailer.Send(ctx, accessToken, address, subject, body); err != nil {
			result.Failed++
			s.logger.WarnContext(ctx, "row send failed", "to", address, "err", err)
			continue
		}
		result.Sent++
	}

	s.logger.InfoContext(ctx, "campaign dispatched",
		"session_id", sessionID,
		"sent", result.Sent,
		"failed", result.Failed,
		"skipped", result.Skipped,
	)
	return result, nil
}

// SendSingle forwards one ad-hoc message through the mailer.
func (s *campaignService) SendSingle(ctx context.Context, sessionID, to, subject, htmlBody string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if to == "" || subject == "" || htmlBody == "" {
		return fmt.Errorf("%w: to, subject, and body are required", domain.ErrInvalidInput)
	}

	sess, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrUnauthorized
		}
		return fmt.Errorf("get session: %w", err)
	}
	accessToken, err := freshAccessToken(ctx, s.provider, s.sessionRepo, sess)
	if err != nil {
		return err
	}
	if err := s.mailer.Send(ctx, accessToken, to, subject, htmlBody); err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	return nil
}

// mergeTemplate substitutes {{column}} markers for every header column with
// the row's value. Replacement is literal, so a column name that is a
// substring of another marker cannot partially match. Markers naming unknown
// columns are left verbatim.
func mergeTemplate(template string, columns []string, row domain.Row) string {
	for _, col := range columns {
		marker := "{{" + col + "}}"
		if strings.Contains(template, marker) {
			template = strings.ReplaceAll(template, marker, row[col])
		}
	}
	return template
}
