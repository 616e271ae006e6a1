package report

import (
	"fmt"
	"os"
	"path/filepath"
)

// Store persists artifact bytes under one output directory. The directory
// is created on first write.
type Store struct {
	Dir string
}

// NewStore creates a Store rooted at dir.
func NewStore(dir string) *Store { return &Store{Dir: dir} }

// Write persists data under the store's directory and returns the path
// the artifact landed at.
func (s *Store) Write(name string, data []byte) (string, error) {
	if err := os.MkdirAll(s.Dir, 0755); err != nil {
		return "", fmt.Errorf("creating output directory %s: %w", s.Dir, err)
	}
	path := filepath.Join(s.Dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing artifact %s: %w", name, err)
	}
	return path, nil
}
