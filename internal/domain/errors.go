package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized indicates a missing or invalid session.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrInvalidInput indicates a request that failed validation.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNoDataset indicates no CSV has been ingested for the session yet.
	ErrNoDataset = errors.New("no dataset uploaded for this session")
	// ErrInvalidColumn indicates the chosen email column is not in the
	// dataset header. Dispatch aborts before any send attempt.
	ErrInvalidColumn = errors.New("email column not found in dataset")
	// ErrNoToken indicates the session has no usable mail-send access token.
	ErrNoToken = errors.New("session has no access token")
)

// EncodingAttempt records why one candidate encoding failed to parse.
type EncodingAttempt struct {
	Encoding string `json:"encoding"`
	Reason   string `json:"reason"`
}

// ParseError reports that every candidate encoding failed to yield a usable
// table. It keeps the per-encoding failure reasons so the caller can see the
// whole fallback chain.
type ParseError struct {
	Attempts []EncodingAttempt
}

func (e *ParseError) Error() string {
	reasons := make([]string, len(e.Attempts))
	for i, a := range e.Attempts {
		reasons[i] = fmt.Sprintf("%s: %s", a.Encoding, a.Reason)
	}
	return "failed to process CSV with all encodings: " + strings.Join(reasons, "; ")
}
