// Package workspace materializes the project template into a fresh
// project directory, either from a local checkout or by cloning the
// template repository. It is the first stage of the bootstrap pipeline.
package workspace

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/transport/http"
)

// ErrProjectDirExists is returned when the target project directory is
// already present. The check runs before any side effect so an unrelated
// directory is never merged into or clobbered.
var ErrProjectDirExists = errors.New("project directory already exists")

// Source describes where the template content comes from. Exactly one of
// LocalPath or URL is consulted per run, selected by Remote.
type Source struct {
	Remote    bool
	LocalPath string // existing template checkout, used when !Remote
	URL       string // template repository, used when Remote
	Branch    string
	User      string // clone auth, optional
	Token     string
}

// Materialize creates projectDir and fills repoDir with the template
// content, then strips the template's own .git so the new project starts
// with no inherited history.
func Materialize(ctx context.Context, projectDir, repoDir string, src Source) error {
	if _, err := os.Stat(projectDir); err == nil {
		return fmt.Errorf("%w: %s", ErrProjectDirExists, projectDir)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("checking project directory %s: %w", projectDir, err)
	}

	if err := os.MkdirAll(projectDir, 0755); err != nil {
		return fmt.Errorf("creating project directory %s: %w", projectDir, err)
	}

	if src.Remote {
		if err := cloneTemplate(ctx, repoDir, src); err != nil {
			return err
		}
	} else {
		if err := copyDir(src.LocalPath, repoDir); err != nil {
			return fmt.Errorf("copying template %s to %s: %w", src.LocalPath, repoDir, err)
		}
	}

	// Purge inherited VCS metadata.
	gitDir := filepath.Join(repoDir, git.GitDirName)
	if err := os.RemoveAll(gitDir); err != nil {
		return fmt.Errorf("removing template git metadata: %w", err)
	}

	slog.Info("template materialized", slog.String("repo_dir", repoDir), slog.Bool("remote", src.Remote))
	return nil
}

func cloneTemplate(ctx context.Context, repoDir string, src Source) error {
	opts := &git.CloneOptions{URL: src.URL}
	if src.Branch != "" {
		opts.ReferenceName = plumbing.ReferenceName("refs/heads/" + src.Branch)
		opts.SingleBranch = true
	}
	if src.User != "" && src.Token != "" {
		opts.Auth = &http.BasicAuth{Username: src.User, Password: src.Token}
	}

	slog.Debug("cloning template", slog.String("url", src.URL), slog.String("branch", src.Branch))
	if _, err := git.PlainCloneContext(ctx, repoDir, false, opts); err != nil {
		return fmt.Errorf("cloning template %s: %w", src.URL, err)
	}
	return nil
}
