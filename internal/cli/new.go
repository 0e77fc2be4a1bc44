package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/samuelgthorpe/sampy/internal/bootstrap"
	"github.com/samuelgthorpe/sampy/internal/branding"
	"github.com/samuelgthorpe/sampy/internal/config"
	"github.com/samuelgthorpe/sampy/internal/logging"
	"github.com/samuelgthorpe/sampy/internal/pyenv"
	"github.com/spf13/cobra"
)

var (
	newProjectDir     string
	newSync           bool
	newTemplate       string
	newTemplateURL    string
	newTemplateBranch string
	newGitHubUser     string
	newGitHubToken    string
)

func init() {
	newCmd.Flags().StringVar(&newProjectDir, "project-dir", "", "Directory the project is created under (default: ~/Projects)")
	newCmd.Flags().BoolVar(&newSync, "sync", false, "Clone the remote template and create/push a remote repo")
	newCmd.Flags().StringVar(&newTemplate, "template", "", "Local template checkout (default: ~/Repos/st-experiment-template)")
	newCmd.Flags().StringVar(&newTemplateURL, "template-url", "", "Template repository URL used with --sync")
	newCmd.Flags().StringVar(&newTemplateBranch, "template-branch", "", "Template branch used with --sync")
	newCmd.Flags().StringVar(&newGitHubUser, "github-user", "", "Hosting account (default: config, then $GITHUB_USER)")
	newCmd.Flags().StringVar(&newGitHubToken, "github-token", "", "Hosting API token (default: config, then $GITHUB_TOKEN)")
	rootCmd.AddCommand(newCmd)
}

var newCmd = &cobra.Command{
	Use:   "new <project-name>",
	Short: "Bootstrap a new project from the template",
	Long: `Create a new project from the project template: materialize the tree,
rewrite template identifiers, commit the initial state, and provision a
virtualenv. With --sync the template is cloned from its repository and a
private remote repo is created and pushed.

Examples:
  sampy new my-widget
  sampy new my-widget --sync --github-user sam`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolving home directory: %w", err)
		}

		// Bootstrap runs keep a log under ~/.sampy/run/logs.
		logPath, err := logging.Init(logging.Options{BaseDir: config.Dir(), ConsoleLevel: logLevel})
		if err != nil {
			return err
		}

		creds := config.ResolveCredentials(newGitHubUser, newGitHubToken)

		rootDir := newProjectDir
		if rootDir == "" {
			rootDir = config.GetDefault(config.KeyProjectDir, filepath.Join(home, "Projects"))
		}
		if !filepath.IsAbs(rootDir) {
			if rootDir, err = filepath.Abs(rootDir); err != nil {
				return fmt.Errorf("resolving project dir: %w", err)
			}
		}

		template := newTemplate
		if template == "" {
			template = config.GetDefault(config.KeyTemplate, filepath.Join(home, "Repos", "st-experiment-template"))
		}

		cfg := bootstrap.Config{
			ProjectName:    args[0],
			ProjectRootDir: rootDir,
			Sync:           newSync,
			User:           creds.User,
			Token:          creds.Token,
			TemplateLocal:  template,
			TemplateURL:    firstNonEmpty(newTemplateURL, config.Get(config.KeyTemplateURL), branding.TemplateRepoURL()),
			TemplateBranch: firstNonEmpty(newTemplateBranch, config.Get(config.KeyTemplateBranch), branding.TemplateRepoBranch()),
			HostingAPIURL:  branding.HostingAPIURL(),
			BuildVersion:   buildVersion,
		}

		orch, err := bootstrap.New(cfg)
		if err != nil {
			return err
		}

		res := orch.Run(cmd.Context())
		for _, stage := range res.Completed {
			fmt.Printf("  ok  %s\n", stage)
		}
		if !res.OK() {
			fmt.Printf("  see %s\n", logPath)
			return fmt.Errorf("stage %s failed: %w", res.FailedStage, res.Err)
		}

		paths := orch.Paths()
		fmt.Printf("\nProject %s created at %s\n", cfg.ProjectName, paths.ProjectDir)
		fmt.Println("\nNext steps:")
		fmt.Printf("  1. cd %s\n", paths.RepoDir)
		fmt.Printf("  2. source %s/bin/activate\n", pyenv.EnvDir(paths.ProjectDir))
		fmt.Println("  3. pip install -r requirements.txt")
		return nil
	},
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
