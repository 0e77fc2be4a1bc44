// Package gitrepo wraps the go-git operations the bootstrap pipeline
// needs: turning a materialized tree into a committed repository and
// pushing it to a freshly created remote.
package gitrepo

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/transport/http"
)

// InitCommitMessage is the fixed message of the bootstrap commit.
const InitCommitMessage = "init project template"

// DefaultBranch is the branch pushed to a newly created remote.
const DefaultBranch = "master"

// Identity names the commit author. Zero value defers to the user's git
// configuration; commits fail when no identity can be resolved at all,
// which is surfaced to the caller rather than papered over.
type Identity struct {
	Name  string
	Email string
}

// InitAndCommit initializes a fresh repository at repoDir, stages the
// whole tree, and creates the single bootstrap commit. Returns the commit
// hash.
func InitAndCommit(repoDir string, id Identity) (string, error) {
	repo, err := git.PlainInit(repoDir, false)
	if err != nil {
		return "", fmt.Errorf("initializing repository at %s: %w", repoDir, err)
	}

	wt, err := repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("opening worktree: %w", err)
	}

	if err := wt.AddWithOptions(&git.AddOptions{All: true}); err != nil {
		return "", fmt.Errorf("staging files: %w", err)
	}

	opts := &git.CommitOptions{}
	if id.Name != "" {
		opts.Author = &object.Signature{Name: id.Name, Email: id.Email, When: time.Now()}
	}
	hash, err := wt.Commit(InitCommitMessage, opts)
	if err != nil {
		return "", fmt.Errorf("creating initial commit: %w", err)
	}

	slog.Info("repository initialized", slog.String("dir", repoDir), slog.String("commit", hash.String()[:8]))
	return hash.String(), nil
}

// AddRemoteAndPush registers url as the repository's origin and pushes the
// default branch. A push failure leaves the local commit intact; nothing
// is rolled back.
func AddRemoteAndPush(ctx context.Context, repoDir, url, user, token string) error {
	repo, err := git.PlainOpen(repoDir)
	if err != nil {
		return fmt.Errorf("opening repository at %s: %w", repoDir, err)
	}

	if _, err := repo.CreateRemote(&config.RemoteConfig{
		Name: git.DefaultRemoteName,
		URLs: []string{url},
	}); err != nil {
		return fmt.Errorf("adding remote %s: %w", url, err)
	}

	ref := plumbing.ReferenceName("refs/heads/" + DefaultBranch)
	opts := &git.PushOptions{
		RemoteName: git.DefaultRemoteName,
		RefSpecs:   []config.RefSpec{config.RefSpec(ref + ":" + ref)},
	}
	// Basic auth only applies to http(s) remotes; local and ssh remotes
	// authenticate through their own transports.
	if user != "" && strings.HasPrefix(url, "http") {
		opts.Auth = &http.BasicAuth{Username: user, Password: token}
	}
	err = repo.PushContext(ctx, opts)
	if err != nil {
		return fmt.Errorf("pushing %s to %s: %w", DefaultBranch, url, err)
	}

	slog.Info("pushed to remote", slog.String("url", url), slog.String("branch", DefaultBranch))
	return nil
}

// CommitCount returns the number of commits reachable from HEAD. Used by
// callers verifying that bootstrap produced exactly one commit.
func CommitCount(repoDir string) (int, error) {
	repo, err := git.PlainOpen(repoDir)
	if err != nil {
		return 0, fmt.Errorf("opening repository at %s: %w", repoDir, err)
	}
	head, err := repo.Head()
	if err != nil {
		return 0, fmt.Errorf("resolving HEAD: %w", err)
	}
	iter, err := repo.Log(&git.LogOptions{From: head.Hash()})
	if err != nil {
		return 0, fmt.Errorf("reading log: %w", err)
	}
	defer iter.Close()

	count := 0
	err = iter.ForEach(func(*object.Commit) error {
		count++
		return nil
	})
	return count, err
}
