package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"mailmerge/internal/csvtable"
	"mailmerge/internal/domain"
)

// previewRows caps how many rows the dataset view shows.
const previewRows = 5

type ingestionService struct {
	datasetRepo    domain.DatasetRepository
	uploads        domain.UploadStore
	logger         *slog.Logger
	contextTimeout time.Duration
}

// NewIngestionService returns an IngestionService backed by the given dataset
// store and upload store.
func NewIngestionService(datasetRepo domain.DatasetRepository, uploads domain.UploadStore, logger *slog.Logger, timeout time.Duration) domain.IngestionService {
	return &ingestionService{
		datasetRepo:    datasetRepo,
		uploads:        uploads,
		logger:         logger,
		contextTimeout: timeout,
	}
}

// Ingest parses the upload, profiles it, and replaces the session's dataset.
// The raw file and a normalized UTF-8 copy are written to the upload store as
// a side effect; failures there are logged but never fail the ingestion.
func (s *ingestionService) Ingest(ctx context.Context, sessionID, filename string, data []byte, delimiter string) (*domain.DatasetView, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if sessionID == "" {
		return nil, fmt.Errorf("%w: session id is required", domain.ErrInvalidInput)
	}

	res, err := csvtable.Parse(data, delimiter)
	if err != nil {
		return nil, err
	}
	profile := csvtable.Profile(res.Table, res.Delimiter, res.Encoding)

	now := time.Now()
	ds := &domain.Dataset{
		ID:        uuid.New().String(),
		SessionID: sessionID,
		Filename:  filename,
		Table:     res.Table,
		Profile:   profile,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.datasetRepo.Replace(ctx, ds); err != nil {
		return nil, fmt.Errorf("store dataset: %w", err)
	}

	if _, err := s.uploads.Save(filename, data); err != nil {
		s.logger.WarnContext(ctx, "failed to store raw upload", "filename", filename, "err", err)
	}
	if normalized, err := csvtable.Normalize(res.Table, res.Delimiter); err != nil {
		s.logger.WarnContext(ctx, "failed to normalize table", "filename", filename, "err", err)
	} else if _, err := s.uploads.Save("utf8_"+filename, normalized); err != nil {
		s.logger.WarnContext(ctx, "failed to store normalized copy", "filename", filename, "err", err)
	}

	s.logger.InfoContext(ctx, "dataset ingested",
		"session_id", sessionID,
		"rows", profile.TotalRows,
		"delimiter", profile.Delimiter,
		"encoding", profile.Encoding,
	)
	return datasetView(ds), nil
}

func (s *ingestionService) CurrentDataset(ctx context.Context, sessionID string) (*domain.DatasetView, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	ds, err := s.datasetRepo.GetBySessionID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNoDataset
		}
		return nil, fmt.Errorf("get dataset: %w", err)
	}
	return datasetView(ds), nil
}

func datasetView(ds *domain.Dataset) *domain.DatasetView {
	preview := ds.Table.Rows
	if len(preview) > previewRows {
		preview = preview[:previewRows]
	}
	return &domain.DatasetView{
		Filename:   ds.Filename,
		Columns:    ds.Table.Columns,
		Preview:    preview,
		Profile:    ds.Profile,
		Histograms: csvtable.Histograms(ds.Table),
	}
}
