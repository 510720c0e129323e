package csvtable

import (
	"encoding/csv"
	"errors"
	"fmt"
	"strings"

	"mailmerge/internal/domain"
)

// Result is one successfully resolved table together with the delimiter and
// encoding that produced it.
type Result struct {
	Table     *domain.Table
	Delimiter rune
	Encoding  string
}

// Parse resolves delimiter and encoding for raw CSV bytes and builds a
// table. delimiter is "auto" or an explicit single character. Encodings are
// attempted in the fixed candidate order with first-success-wins semantics;
// if every candidate fails the returned error is a *domain.ParseError
// aggregating each failure reason.
func Parse(data []byte, delimiter string) (*Result, error) {
	sep, err := resolveDelimiter(data, delimiter)
	if err != nil {
		return nil, err
	}

	var attempts []domain.EncodingAttempt
	for _, enc := range candidateEncodings {
		text, err := enc.decode(data)
		if err != nil {
			attempts = append(attempts, domain.EncodingAttempt{Encoding: enc.name, Reason: err.Error()})
			continue
		}
		table, err := parseText(text, sep)
		if err != nil {
			attempts = append(attempts, domain.EncodingAttempt{Encoding: enc.name, Reason: err.Error()})
			continue
		}
		return &Result{Table: table, Delimiter: sep, Encoding: enc.name}, nil
	}
	return nil, &domain.ParseError{Attempts: attempts}
}

func resolveDelimiter(data []byte, delimiter string) (rune, error) {
	if delimiter == "auto" || delimiter == "" {
		return DetectDelimiter(data), nil
	}
	runes := []rune(delimiter)
	if len(runes) != 1 {
		return 0, fmt.Errorf("%w: delimiter must be a single character", domain.ErrInvalidInput)
	}
	for _, cand := range delimiterCandidates {
		if runes[0] == cand {
			return cand, nil
		}
	}
	return 0, fmt.Errorf("%w: unsupported delimiter %q", domain.ErrInvalidInput, delimiter)
}

// parseText parses decoded CSV text into a table. Rows shorter than the
// header are padded with empty strings; rows with more fields than the
// header surface as a parse failure for this encoding attempt. Header names
// are trimmed and stripped of any BOM artifact.
func parseText(text string, sep rune) (*domain.Table, error) {
	reader := csv.NewReader(strings.NewReader(text))
	reader.Comma = sep
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, errors.New("no columns to parse from file")
	}

	columns := cleanHeader(records[0])
	rows := make([]domain.Row, 0, len(records)-1)
	for n, record := range records[1:] {
		if len(record) > len(columns) {
			return nil, fmt.Errorf("record on line %d has %d fields, header has %d", n+2, len(record), len(columns))
		}
		row := make(domain.Row, len(columns))
		for i, col := range columns {
			if i < len(record) {
				row[col] = record[i]
			} else {
				row[col] = ""
			}
		}
		rows = append(rows, row)
	}

	return &domain.Table{Columns: columns, Rows: rows}, nil
}

// cleanHeader trims surrounding whitespace, removes BOM artifacts, and makes
// duplicate column names unique with a numeric suffix.
func cleanHeader(header []string) []string {
	seen := make(map[string]int, len(header))
	columns := make([]string, len(header))
	for i, name := range header {
		name = strings.TrimSpace(strings.ReplaceAll(name, "\ufeff", ""))
		if n, ok := seen[name]; ok {
			seen[name] = n + 1
			name = fmt.Sprintf("%s.%d", name, n)
		} else {
			seen[name] = 1
		}
		columns[i] = name
	}
	return columns
}
