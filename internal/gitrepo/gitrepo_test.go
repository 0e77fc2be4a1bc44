package gitrepo

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testIdentity = Identity{Name: "tester", Email: "tester@example.com"}

func newTree(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "my_widget"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("# my-widget\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "my_widget", "main.py"), []byte("print('hi')\n"), 0644))
	return dir
}

func TestInitAndCommit(t *testing.T) {
	dir := newTree(t)

	hash, err := InitAndCommit(dir, testIdentity)
	require.NoError(t, err)
	require.NotEmpty(t, hash)

	repo, err := git.PlainOpen(dir)
	require.NoError(t, err)

	head, err := repo.Head()
	require.NoError(t, err)
	assert.Equal(t, hash, head.Hash().String())

	commit, err := repo.CommitObject(head.Hash())
	require.NoError(t, err)
	assert.Equal(t, InitCommitMessage, commit.Message)
	assert.Equal(t, "tester", commit.Author.Name)

	count, err := CommitCount(dir)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestInitAndCommitTwiceFails(t *testing.T) {
	dir := newTree(t)

	_, err := InitAndCommit(dir, testIdentity)
	require.NoError(t, err)

	_, err = InitAndCommit(dir, testIdentity)
	assert.Error(t, err, "re-initializing an existing repository should fail")
}

func TestAddRemoteAndPush(t *testing.T) {
	dir := newTree(t)
	_, err := InitAndCommit(dir, testIdentity)
	require.NoError(t, err)

	bare := filepath.Join(t.TempDir(), "remote.git")
	_, err = git.PlainInit(bare, true)
	require.NoError(t, err)

	require.NoError(t, AddRemoteAndPush(context.Background(), dir, bare, "", ""))

	// The default branch arrived on the remote.
	remote, err := git.PlainOpen(bare)
	require.NoError(t, err)
	ref, err := remote.Reference(plumbing.ReferenceName("refs/heads/"+DefaultBranch), true)
	require.NoError(t, err)
	assert.False(t, ref.Hash().IsZero())
}

func TestAddRemoteAndPushUnreachable(t *testing.T) {
	dir := newTree(t)
	_, err := InitAndCommit(dir, testIdentity)
	require.NoError(t, err)

	err = AddRemoteAndPush(context.Background(), dir, filepath.Join(t.TempDir(), "missing.git"), "", "")
	require.Error(t, err)

	// The local commit is left intact.
	count, err := CommitCount(dir)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
