// Package workspace resolves information about the workspace on disk,
// currently the git revision used for snapshot provenance.
package workspace

import (
	"errors"
	"fmt"

	git "github.com/go-git/go-git/v5"
)

// Revision returns the HEAD commit hash of the git repository at root.
// A directory that is not a git repository yields an empty revision, not an
// error; plans can be snapshotted from unversioned workspaces.
func Revision(root string) (string, error) {
	repo, err := git.PlainOpenWithOptions(root, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return "", nil
		}
		return "", fmt.Errorf("open repository: %w", err)
	}
	head, err := repo.Head()
	if err != nil {
		// A fresh repository without commits has no HEAD yet.
		return "", nil
	}
	return head.Hash().String(), nil
}
