// Package bootstrap sequences the four stages that turn a project
// template into a new, version-controlled, environment-provisioned
// project: workspace materialization, template rewrite, repository
// initialization, and environment provisioning.
package bootstrap

import (
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/samuelgthorpe/sampy/internal/gitrepo"
)

var namePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*$`)

// ErrCredentialsRequired is returned by Validate when --sync is requested
// without a hosting account and token.
var ErrCredentialsRequired = errors.New("sync requires hosting credentials")

// Config is the validated, immutable input of one bootstrap run.
type Config struct {
	ProjectName    string // hyphen-separated, e.g. "my-widget"
	ProjectRootDir string // absolute; the project lands at <root>/<name>

	Sync  bool   // clone the remote template and create/push a remote repo
	User  string // hosting account, required iff Sync
	Token string // hosting API token, required iff Sync

	TemplateLocal  string // local template checkout, used when !Sync
	TemplateURL    string // template repo, used when Sync
	TemplateBranch string

	HostingAPIURL string // e.g. "https://api.github.com"
	BuildVersion  string // gate against the template's min_sampy_version

	Identity gitrepo.Identity // optional commit identity override
}

// Validate checks the config without touching the filesystem or network,
// so a sync request with missing credentials is rejected before any side
// effect occurs.
func (c *Config) Validate() error {
	if !namePattern.MatchString(c.ProjectName) {
		return fmt.Errorf("invalid project name %q: must be lowercase, hyphen-separated", c.ProjectName)
	}
	if !filepath.IsAbs(c.ProjectRootDir) {
		return fmt.Errorf("project root %q must be an absolute path", c.ProjectRootDir)
	}
	if c.Sync {
		if c.User == "" || c.Token == "" {
			return ErrCredentialsRequired
		}
		if c.TemplateURL == "" {
			return errors.New("sync requires a template URL")
		}
	} else if c.TemplateLocal == "" {
		return errors.New("a local template path is required without --sync")
	}
	return nil
}

// TemplateName returns the template's hyphen-separated name, derived from
// the active template source. The rewrite stage substitutes this token
// (and its snake_case form) with the project name.
func (c *Config) TemplateName() string {
	if c.Sync {
		return strings.TrimSuffix(path.Base(c.TemplateURL), ".git")
	}
	return filepath.Base(filepath.Clean(c.TemplateLocal))
}

// Paths is the derived directory bundle every stage consumes. It is
// computed once; no stage recomputes it.
type Paths struct {
	ProjectDir string // <root>/<name>
	RepoDir    string // <root>/<name>/<name>
}

// NewPaths derives the path bundle from a config.
func NewPaths(c *Config) Paths {
	projectDir := filepath.Join(c.ProjectRootDir, c.ProjectName)
	return Paths{
		ProjectDir: projectDir,
		RepoDir:    filepath.Join(projectDir, c.ProjectName),
	}
}
