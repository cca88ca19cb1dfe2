package dataset

import (
	"fmt"
	"os"
	"path/filepath"
)

// Fingerprint identifies a source file by path, size, and mtime. Two
// loads with the same fingerprint are assumed to yield identical rows,
// which is what makes the parsed-dataset cache safe.
type Fingerprint struct {
	Path    string
	Size    int64
	ModTime int64
}

// FingerprintFile computes the fingerprint for a dataset file.
func FingerprintFile(path string) (Fingerprint, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return Fingerprint{}, fmt.Errorf("failed to resolve dataset path: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return Fingerprint{}, fmt.Errorf("failed to stat dataset: %w", err)
	}
	return Fingerprint{
		Path:    abs,
		Size:    info.Size(),
		ModTime: info.ModTime().UnixNano(),
	}, nil
}

// Key returns a stable string form used as the cache lookup key.
func (f Fingerprint) Key() string {
	return fmt.Sprintf("%s|%d|%d", f.Path, f.Size, f.ModTime)
}
