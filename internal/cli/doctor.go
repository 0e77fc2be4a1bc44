package cli

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	gitcfg "github.com/go-git/go-git/v5/config"
	"github.com/samuelgthorpe/sampy/internal/config"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Preflight checks for the bootstrap pipeline",
	Long: `Check everything "sampy new" depends on: python3 on the PATH, a git
identity for the initial commit, hosting credentials for --sync, and the
local template checkout.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		failed := 0

		if path, err := exec.LookPath("python3"); err == nil {
			report(true, "python3 found at %s", path)
		} else {
			failed++
			report(false, "python3 not found; the environment stage will fail")
		}

		if name, email, err := gitIdentity(); err == nil && name != "" && email != "" {
			report(true, "git identity: %s <%s>", name, email)
		} else {
			failed++
			report(false, "no git identity configured; the initial commit will fail (set user.name and user.email)")
		}

		if creds := config.ResolveCredentials("", ""); !creds.Empty() {
			report(true, "hosting credentials present for %s", creds.User)
		} else {
			report(false, "no hosting credentials; --sync will be rejected (set GITHUB_USER and GITHUB_TOKEN)")
		}

		home, _ := os.UserHomeDir()
		template := config.GetDefault(config.KeyTemplate, filepath.Join(home, "Repos", "st-experiment-template"))
		if info, err := os.Stat(template); err == nil && info.IsDir() {
			report(true, "local template at %s", template)
		} else {
			report(false, "local template missing at %s; only --sync will work", template)
		}

		if failed > 0 {
			return fmt.Errorf("%d check(s) failed", failed)
		}
		return nil
	},
}

func report(ok bool, format string, args ...any) {
	mark := "ok  "
	if !ok {
		mark = "FAIL"
	}
	fmt.Printf("  %s %s\n", mark, fmt.Sprintf(format, args...))
}

// gitIdentity reads user.name and user.email from the global git config.
func gitIdentity() (name, email string, err error) {
	cfg, err := gitcfg.LoadConfig(gitcfg.GlobalScope)
	if err != nil {
		return "", "", err
	}
	return cfg.User.Name, cfg.User.Email, nil
}
