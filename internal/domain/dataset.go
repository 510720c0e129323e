package domain

import (
	"context"
	"time"
)

// Dataset ties one ingested table and its profile to the owning session.
// A session holds at most one dataset; a new upload replaces it wholesale.
type Dataset struct {
	ID        string            `json:"id"`
	SessionID string            `json:"session_id"`
	Filename  string            `json:"filename"`
	Table     *Table            `json:"table"`
	Profile   *IngestionProfile `json:"profile"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// DatasetView is what the display sink receives after ingestion or on
// request: the profile, the header, a short row preview, and chart data.
type DatasetView struct {
	Filename   string            `json:"filename"`
	Columns    []string          `json:"columns"`
	Preview    []Row             `json:"preview"`
	Profile    *IngestionProfile `json:"profile"`
	Histograms []Histogram       `json:"histograms"`
}

// DatasetRepository persists the session-scoped dataset between the upload
// request and later dispatch/display requests.
type DatasetRepository interface {
	// Replace stores ds as the session's dataset, discarding any previous one.
	Replace(ctx context.Context, ds *Dataset) error
	// GetBySessionID returns the session's dataset or ErrNotFound.
	GetBySessionID(ctx context.Context, sessionID string) (*Dataset, error)
	DeleteBySessionID(ctx context.Context, sessionID string) error
}

// IngestionService turns raw upload bytes into a stored dataset and view.
type IngestionService interface {
	// Ingest parses data with the given delimiter selection ("auto" or an
	// explicit character), profiles it, replaces the session's dataset, and
	// writes a normalized UTF-8 copy to the upload store.
	Ingest(ctx context.Context, sessionID, filename string, data []byte, delimiter string) (*DatasetView, error)
	// CurrentDataset returns the stored dataset's view or ErrNoDataset.
	CurrentDataset(ctx context.Context, sessionID string) (*DatasetView, error)
}

// UploadStore keeps raw uploads and their normalized UTF-8 copies.
// Implementations must sanitize filenames before any filesystem write.
type UploadStore interface {
	// Save writes data under a sanitized version of filename and returns the
	// stored path.
	Save(filename string, data []byte) (string, error)
}
