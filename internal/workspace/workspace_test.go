package workspace

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// newTemplate creates a fake local template with git metadata.
func newTemplate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	for _, sub := range []string{"st_experiment_template", ".git/objects"} {
		if err := os.MkdirAll(filepath.Join(dir, sub), 0755); err != nil {
			t.Fatal(err)
		}
	}
	files := map[string]string{
		"README.md":                      "# st-experiment-template\n",
		"st_experiment_template/main.py": "print('hi')\n",
		".git/config":                    "[core]\n",
		".DS_Store":                      "junk",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.WriteFile(filepath.Join(dir, "run.sh"), []byte("echo hi\n"), 0755); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestMaterializeLocal(t *testing.T) {
	template := newTemplate(t)
	root := t.TempDir()
	projectDir := filepath.Join(root, "my-widget")
	repoDir := filepath.Join(projectDir, "my-widget")

	err := Materialize(context.Background(), projectDir, repoDir, Source{LocalPath: template})
	if err != nil {
		t.Fatalf("Materialize() error: %v", err)
	}

	// Content arrived.
	if _, err := os.Stat(filepath.Join(repoDir, "st_experiment_template", "main.py")); err != nil {
		t.Errorf("template content missing: %v", err)
	}

	// No inherited VCS metadata.
	if _, err := os.Stat(filepath.Join(repoDir, ".git")); !os.IsNotExist(err) {
		t.Error("repoDir should contain no .git")
	}

	// Junk files excluded.
	if _, err := os.Stat(filepath.Join(repoDir, ".DS_Store")); !os.IsNotExist(err) {
		t.Error(".DS_Store should not be copied")
	}

	// Permissions preserved.
	info, err := os.Stat(filepath.Join(repoDir, "run.sh"))
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0755 {
		t.Errorf("run.sh mode = %v, want 0755", info.Mode().Perm())
	}
}

func TestMaterializeRefusesExistingProjectDir(t *testing.T) {
	template := newTemplate(t)
	root := t.TempDir()
	projectDir := filepath.Join(root, "my-widget")
	repoDir := filepath.Join(projectDir, "my-widget")

	if err := Materialize(context.Background(), projectDir, repoDir, Source{LocalPath: template}); err != nil {
		t.Fatalf("first Materialize() error: %v", err)
	}

	// Mark the first run's output so we can detect modification.
	marker := filepath.Join(repoDir, "marker.txt")
	if err := os.WriteFile(marker, []byte("first run"), 0644); err != nil {
		t.Fatal(err)
	}

	err := Materialize(context.Background(), projectDir, repoDir, Source{LocalPath: template})
	if !errors.Is(err, ErrProjectDirExists) {
		t.Fatalf("second Materialize() = %v, want ErrProjectDirExists", err)
	}

	data, err := os.ReadFile(marker)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "first run" {
		t.Error("second invocation modified the first run's output")
	}
}

func TestMaterializeMissingTemplate(t *testing.T) {
	root := t.TempDir()
	projectDir := filepath.Join(root, "my-widget")
	repoDir := filepath.Join(projectDir, "my-widget")

	err := Materialize(context.Background(), projectDir, repoDir, Source{
		LocalPath: filepath.Join(root, "no-such-template"),
	})
	if err == nil {
		t.Fatal("expected error for missing template")
	}
}
