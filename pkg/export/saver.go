package export

import (
	"fmt"
	"os"
	"path/filepath"
)

// Saver persists rendered reports on disk under a base directory.
type Saver struct {
	baseDir string
}

// NewSaver ensures the base directory exists and returns a handle.
func NewSaver(baseDir string) (*Saver, error) {
	if baseDir == "" {
		baseDir = "./exports"
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create exports directory: %w", err)
	}
	return &Saver{baseDir: baseDir}, nil
}

// Save writes the given bytes and returns the absolute path.
func (s *Saver) Save(filename string, data []byte) (string, error) {
	path := filepath.Join(s.baseDir, filepath.Clean(filename))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("prepare export directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write export file: %w", err)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return path, nil
	}
	return abs, nil
}
