package domain

import "context"

// SkippedPreviewLimit caps how many skipped addresses a DispatchResult lists.
const SkippedPreviewLimit = 5

// CampaignRequest describes one batch send: the column holding recipient
// addresses plus the subject and HTML body templates. Templates may contain
// {{column}} markers for any header column.
type CampaignRequest struct {
	EmailColumn string `json:"email_column"`
	Subject     string `json:"subject"`
	Body        string `json:"body"`
}

// DispatchResult is the end-of-run summary of one campaign. Skipped counts
// rows whose address failed the classifier; Failed counts rows where the send
// itself failed. SkippedPreview holds at most SkippedPreviewLimit addresses,
// SkippedOmitted says how many more were left out of the preview.
type DispatchResult struct {
	Sent           int      `json:"sent"`
	Failed         int      `json:"failed"`
	Skipped        int      `json:"skipped"`
	SkippedPreview []string `json:"skipped_preview"`
	SkippedOmitted int      `json:"skipped_omitted"`
}

// CampaignService drives batch and single sends for one session's dataset.
type CampaignService interface {
	// Dispatch renders and sends one message per valid row of the session's
	// dataset. It fails with ErrInvalidColumn before any send if the chosen
	// column is missing, and with ErrNoDataset if nothing was ingested.
	Dispatch(ctx context.Context, sessionID string, req *CampaignRequest) (*DispatchResult, error)
	// SendSingle forwards one ad-hoc message through the mail-send capability.
	SendSingle(ctx context.Context, sessionID, to, subject, htmlBody string) error
}
