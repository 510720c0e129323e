package csvtable

import (
	"sort"

	"mailmerge/internal/domain"
)

const sampleEmailLimit = 3

// Profile computes the read-only ingestion summary for a table: per-column
// email validity counters and the ranked email-column suggestions. Columns
// with no non-empty values contribute nothing. Profiling the same table
// always yields the same profile.
func Profile(table *domain.Table, delimiter rune, encoding string) *domain.IngestionProfile {
	profile := &domain.IngestionProfile{
		TotalRows:   len(table.Rows),
		Delimiter:   string(delimiter),
		Encoding:    encoding,
		Columns:     make(map[string]domain.ColumnStats),
		Suggestions: []domain.ColumnSuggestion{},
	}

	for _, col := range table.Columns {
		var stats domain.ColumnStats
		var samples []string
		for _, row := range table.Rows {
			value := row[col]
			if value == "" {
				continue
			}
			stats.NonEmpty++
			if domain.IsEmailAddress(value) {
				stats.Valid++
				if len(samples) < sampleEmailLimit {
					samples = append(samples, value)
				}
			} else {
				stats.Invalid++
			}
		}
		if stats.NonEmpty == 0 {
			continue
		}
		profile.Columns[col] = stats

		percentage := float64(stats.Valid) / float64(stats.NonEmpty) * 100
		if percentage >= 50 && stats.Valid > 0 {
			profile.Suggestions = append(profile.Suggestions, domain.ColumnSuggestion{
				Name:         col,
				ValidCount:   stats.Valid,
				TotalCount:   stats.NonEmpty,
				Percentage:   percentage,
				SampleEmails: samples,
			})
		}
	}

	// Stable sort keeps original column order among equal percentages.
	sort.SliceStable(profile.Suggestions, func(i, j int) bool {
		return profile.Suggestions[i].Percentage > profile.Suggestions[j].Percentage
	})

	return profile
}
