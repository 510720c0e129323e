package csvtable

import (
	"bytes"
	"strings"
)

// delimiterCandidates in tie-break priority order. When two candidates occur
// equally often in the header line the earlier one wins.
var delimiterCandidates = []rune{',', '|', ';', '\t'}

// DetectDelimiter guesses the field delimiter by counting candidate
// characters in the first line of data. A strictly higher count wins; if no
// candidate occurs at all it defaults to comma. Delimiters inside quoted
// header fields can fool the count; that is an accepted approximation.
func DetectDelimiter(data []byte) rune {
	header := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		header = data[:i]
	}
	line := strings.TrimRight(string(header), "\r")

	best := ','
	bestCount := 0
	for _, cand := range delimiterCandidates {
		if n := strings.Count(line, string(cand)); n > bestCount {
			best = cand
			bestCount = n
		}
	}
	return best
}
