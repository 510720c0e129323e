package csvtable

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"mailmerge/internal/domain"
)

// Normalize re-encodes a table as UTF-8 CSV using the given delimiter. The
// output is a convenience artifact for inspection and download; ingesting it
// again yields the same row count and column set.
func Normalize(table *domain.Table, delimiter rune) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	writer.Comma = delimiter

	if err := writer.Write(table.Columns); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	record := make([]string, len(table.Columns))
	for _, row := range table.Rows {
		for i, col := range table.Columns {
			record[i] = row[col]
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("write row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
