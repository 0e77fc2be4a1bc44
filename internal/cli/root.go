package cli

import (
	"github.com/samuelgthorpe/sampy/internal/branding"
	"github.com/samuelgthorpe/sampy/internal/config"
	"github.com/samuelgthorpe/sampy/internal/logging"
	"github.com/spf13/cobra"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var logLevel string

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` is a personal toolbox: it bootstraps new projects from a
template (directory tree, identifier rewrite, git history, remote repo,
virtualenv), generates file skeletons, and shuttles data to and from S3.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.Load()
		_, _ = logging.Init(logging.Options{ConsoleLevel: logLevel})
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "WARNING", "Console log level (DEBUG, INFO, WARNING, ERROR)")
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	return rootCmd.Execute()
}
