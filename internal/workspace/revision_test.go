package workspace

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRevisionNoRepository(t *testing.T) {
	rev, err := Revision(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, rev)
}

func TestRevisionEmptyRepository(t *testing.T) {
	dir := t.TempDir()
	_, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	rev, err := Revision(dir)
	require.NoError(t, err)
	assert.Empty(t, rev)
}

func TestRevisionWithCommit(t *testing.T) {
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "file.txt"), []byte("hello"), 0o644))
	wt, err := repo.Worktree()
	require.NoError(t, err)
	_, err = wt.Add("file.txt")
	require.NoError(t, err)
	commit, err := wt.Commit("initial", &git.CommitOptions{
		Author: &object.Signature{Name: "test", Email: "test@example.com", When: time.Now()},
	})
	require.NoError(t, err)

	rev, err := Revision(dir)
	require.NoError(t, err)
	assert.Equal(t, commit.String(), rev)

	// DetectDotGit finds the repository from a subdirectory too.
	sub := filepath.Join(dir, "nested", "dir")
	require.NoError(t, os.MkdirAll(sub, 0o755))
	rev, err = Revision(sub)
	require.NoError(t, err)
	assert.Equal(t, commit.String(), rev)
}
