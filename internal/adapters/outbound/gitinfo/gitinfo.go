// Package gitinfo resolves version-control metadata stamped into the
// combined report header.
package gitinfo

import (
	"fmt"

	"github.com/go-git/go-git/v5"
)

// Adapter implements domain.CommitInfo using go-git.
type Adapter struct{}

// New creates an Adapter.
func New() *Adapter {
	return &Adapter{}
}

// IsRepo reports whether path sits inside a git repository.
func (a *Adapter) IsRepo(path string) bool {
	_, err := git.PlainOpen(path)
	return err == nil
}

// CommitHash returns the HEAD commit hash of the repository at path.
func (a *Adapter) CommitHash(path string) (string, error) {
	repo, err := git.PlainOpen(path)
	if err != nil {
		return "", fmt.Errorf("opening git repo: %w", err)
	}

	head, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("getting HEAD: %w", err)
	}

	return head.Hash().String(), nil
}
