package domain

// ColumnStats counts email validity over the non-empty values of one column.
type ColumnStats struct {
	NonEmpty int `json:"non_empty"`
	Valid    int `json:"valid"`
	Invalid  int `json:"invalid"`
}

// ColumnSuggestion marks a column that looks like it holds email addresses:
// at least half of its non-empty values pass the classifier.
type ColumnSuggestion struct {
	Name         string   `json:"name"`
	ValidCount   int      `json:"valid_count"`
	TotalCount   int      `json:"total_count"`
	Percentage   float64  `json:"percentage"`
	SampleEmails []string `json:"sample_emails"`
}

// HistogramBin is one bucket of a numeric-column histogram.
type HistogramBin struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// Histogram is plain chart data for one numeric column, handed to the
// display sink as-is.
type Histogram struct {
	Column string         `json:"column"`
	Bins   []HistogramBin `json:"bins"`
}

// IngestionProfile is the derived, read-only summary of one ingested table.
// It is computed once per upload and replaced together with the table.
type IngestionProfile struct {
	TotalRows   int                    `json:"total_rows"`
	Delimiter   string                 `json:"delimiter_used"`
	Encoding    string                 `json:"encoding_used"`
	Columns     map[string]ColumnStats `json:"columns"`
	Suggestions []ColumnSuggestion     `json:"email_column_suggestions"`
}
