// Package pyenv provisions the project's isolated Python environment.
// The venv lives at a fixed location under the project directory so
// downstream tooling can find it without configuration.
package pyenv

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"path/filepath"
	"strings"
)

// EnvDirName is the venv directory created under the project directory.
const EnvDirName = "venv"

// Provisioner creates the virtual environment and upgrades its package
// manager. Stdout/Stderr can be set for testing; they default to discard.
type Provisioner struct {
	Stdout io.Writer
	Stderr io.Writer
}

// EnvDir returns the venv path for a project directory.
func EnvDir(projectDir string) string {
	return filepath.Join(projectDir, EnvDirName)
}

// Provision creates <projectDir>/venv and upgrades pip inside it. Both
// steps run after the project content already exists; failures are
// reported to the caller, never retried and never swallowed.
func (p *Provisioner) Provision(ctx context.Context, projectDir string) error {
	pythonBin, err := exec.LookPath("python3")
	if err != nil {
		return fmt.Errorf("provisioning requires python3: %w", err)
	}

	envDir := EnvDir(projectDir)
	if err := p.run(ctx, projectDir, pythonBin, "-m", "venv", envDir); err != nil {
		return fmt.Errorf("creating venv at %s: %w", envDir, err)
	}

	pipBin := filepath.Join(envDir, "bin", "pip")
	if err := p.run(ctx, projectDir, pipBin, "install", "--upgrade", "pip"); err != nil {
		return fmt.Errorf("upgrading pip: %w", err)
	}

	slog.Info("environment provisioned", slog.String("venv", envDir))
	return nil
}

func (p *Provisioner) run(ctx context.Context, dir, bin string, args ...string) error {
	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Dir = dir

	var stderr bytes.Buffer
	cmd.Stdout = p.Stdout
	if cmd.Stdout == nil {
		cmd.Stdout = io.Discard
	}
	cmd.Stderr = &stderr
	if p.Stderr != nil {
		cmd.Stderr = io.MultiWriter(&stderr, p.Stderr)
	}

	slog.Debug("running", slog.String("cmd", bin+" "+strings.Join(args, " ")))
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("%s: %w: %s", filepath.Base(bin), err, msg)
		}
		return fmt.Errorf("%s: %w", filepath.Base(bin), err)
	}
	return nil
}
