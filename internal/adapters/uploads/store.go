package uploads

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"mailmerge/internal/domain"
)

// Store keeps uploaded files on local disk under a single directory.
type Store struct {
	dir string
}

// NewStore creates the upload directory if needed and returns a store rooted
// there.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Save writes data under a sanitized version of filename and returns the full
// path. Only .csv files are accepted.
func (s *Store) Save(filename string, data []byte) (string, error) {
	name, err := sanitizeFilename(filename)
	if err != nil {
		return "", err
	}
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write upload: %w", err)
	}
	return path, nil
}

// sanitizeFilename strips any path component and rejects names that could
// escape the upload directory or hide the file.
func sanitizeFilename(filename string) (string, error) {
	name := filepath.Base(strings.TrimSpace(filename))
	if name == "" || name == "." || name == ".." || strings.HasPrefix(name, ".") {
		return "", fmt.Errorf("%w: invalid filename %q", domain.ErrInvalidInput, filename)
	}
	if !strings.HasSuffix(strings.ToLower(name), ".csv") {
		return "", fmt.Errorf("%w: only .csv files are accepted", domain.ErrInvalidInput)
	}

	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '_', r == '-':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String(), nil
}
