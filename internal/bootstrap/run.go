package bootstrap

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/samuelgthorpe/sampy/internal/gitrepo"
	"github.com/samuelgthorpe/sampy/internal/hosting"
	"github.com/samuelgthorpe/sampy/internal/manifest"
	"github.com/samuelgthorpe/sampy/internal/pyenv"
	"github.com/samuelgthorpe/sampy/internal/rewrite"
	"github.com/samuelgthorpe/sampy/internal/workspace"
)

// Stage names, in execution order.
const (
	StageWorkspace   = "workspace"
	StageRewrite     = "rewrite"
	StageRepository  = "repository"
	StageEnvironment = "environment"
)

// Result reports what a run accomplished. Completed stages are never
// rolled back on failure; partially constructed state stays on disk
// (and, for a failed push, on the hosting service).
type Result struct {
	Completed   []string
	FailedStage string
	Err         error
}

// OK reports whether every stage completed.
func (r *Result) OK() bool { return r.Err == nil }

// Orchestrator runs the four bootstrap stages in strict sequence. Each
// stage blocks until it completes or fails; the first failure stops the
// run. No stage is retried.
type Orchestrator struct {
	cfg   Config
	paths Paths
	prov  *pyenv.Provisioner
}

// New validates cfg and returns an orchestrator for it.
func New(cfg Config) (*Orchestrator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Orchestrator{
		cfg:   cfg,
		paths: NewPaths(&cfg),
		prov:  &pyenv.Provisioner{Stdout: os.Stdout, Stderr: os.Stderr},
	}, nil
}

// Paths exposes the derived directory bundle of this run.
func (o *Orchestrator) Paths() Paths { return o.paths }

// Run executes the pipeline and returns its result. Err in the result is
// non-nil iff a stage failed; FailedStage then names it.
func (o *Orchestrator) Run(ctx context.Context) *Result {
	stages := []struct {
		name string
		fn   func(context.Context) error
	}{
		{StageWorkspace, o.runWorkspace},
		{StageRewrite, o.runRewrite},
		{StageRepository, o.runRepository},
		{StageEnvironment, o.runEnvironment},
	}

	res := &Result{}
	for _, stage := range stages {
		slog.Info("stage starting", slog.String("stage", stage.name))
		if err := stage.fn(ctx); err != nil {
			res.FailedStage = stage.name
			res.Err = err
			return res
		}
		res.Completed = append(res.Completed, stage.name)
	}
	return res
}

func (o *Orchestrator) runWorkspace(ctx context.Context) error {
	src := workspace.Source{
		Remote:    o.cfg.Sync,
		LocalPath: o.cfg.TemplateLocal,
		URL:       o.cfg.TemplateURL,
		Branch:    o.cfg.TemplateBranch,
		User:      o.cfg.User,
		Token:     o.cfg.Token,
	}
	if err := workspace.Materialize(ctx, o.paths.ProjectDir, o.paths.RepoDir, src); err != nil {
		return err
	}

	// Templates may declare the minimum tool version they expect.
	manifestPath := filepath.Join(o.paths.RepoDir, manifest.FileName)
	if _, err := os.Stat(manifestPath); err != nil {
		return nil
	}
	m, err := manifest.ParseFile(manifestPath)
	if err != nil {
		return err
	}
	return m.CheckVersion(o.cfg.BuildVersion)
}

func (o *Orchestrator) runRewrite(context.Context) error {
	return rewrite.Apply(o.paths.RepoDir, o.cfg.TemplateName(), o.cfg.ProjectName)
}

func (o *Orchestrator) runRepository(ctx context.Context) error {
	if _, err := gitrepo.InitAndCommit(o.paths.RepoDir, o.cfg.Identity); err != nil {
		return err
	}
	if !o.cfg.Sync {
		return nil
	}

	client := hosting.NewClient(o.cfg.HostingAPIURL, o.cfg.User, o.cfg.Token)
	repo, err := client.CreateRepo(ctx, o.cfg.ProjectName)
	if err != nil {
		// The local commit stays; the push never runs.
		return err
	}
	return gitrepo.AddRemoteAndPush(ctx, o.paths.RepoDir, repo.CloneURL, o.cfg.User, o.cfg.Token)
}

func (o *Orchestrator) runEnvironment(ctx context.Context) error {
	return o.prov.Provision(ctx, o.paths.ProjectDir)
}
