package bootstrap

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/samuelgthorpe/sampy/internal/gitrepo"
	"github.com/samuelgthorpe/sampy/internal/hosting"
)

var testIdentity = gitrepo.Identity{Name: "tester", Email: "tester@example.com"}

// writeLocalTemplate lays out a copyable template checkout.
func writeLocalTemplate(t *testing.T) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "st-experiment-template")
	if err := os.MkdirAll(filepath.Join(dir, "st_experiment_template"), 0755); err != nil {
		t.Fatal(err)
	}
	files := map[string]string{
		"README.md":                      "# st-experiment-template\n",
		"st_experiment_template/main.py": "\"\"\"st_experiment_template entry point.\"\"\"\n",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

// writeTemplateRepo turns a template checkout into a committed git repo so
// sync runs can clone it.
func writeTemplateRepo(t *testing.T) string {
	t.Helper()
	dir := writeLocalTemplate(t)

	repo, err := git.PlainInit(dir, false)
	if err != nil {
		t.Fatal(err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		t.Fatal(err)
	}
	if err := wt.AddWithOptions(&git.AddOptions{All: true}); err != nil {
		t.Fatal(err)
	}
	if _, err := wt.Commit("template", &git.CommitOptions{
		Author: &object.Signature{Name: "tester", Email: "tester@example.com", When: time.Now()},
	}); err != nil {
		t.Fatal(err)
	}
	return dir
}

// checkTail verifies a result whose last stage is environment: the stage
// shells out to python3 and pip, which not every test host provides.
func checkTail(t *testing.T, res *Result) {
	t.Helper()
	if res.OK() {
		return
	}
	if res.FailedStage == StageEnvironment {
		t.Logf("environment stage failed on this host (tolerated): %v", res.Err)
		return
	}
	t.Fatalf("run failed at %s: %v", res.FailedStage, res.Err)
}

func TestRunLocal(t *testing.T) {
	template := writeLocalTemplate(t)
	root := t.TempDir()

	orch, err := New(Config{
		ProjectName:    "my-widget",
		ProjectRootDir: root,
		TemplateLocal:  template,
		Identity:       testIdentity,
	})
	if err != nil {
		t.Fatal(err)
	}

	res := orch.Run(context.Background())
	checkTail(t, res)

	for i, want := range []string{StageWorkspace, StageRewrite, StageRepository} {
		if i >= len(res.Completed) || res.Completed[i] != want {
			t.Fatalf("Completed = %v, want prefix [workspace rewrite repository]", res.Completed)
		}
	}

	repoDir := orch.Paths().RepoDir

	// Rewritten tree.
	if _, err := os.Stat(filepath.Join(repoDir, "my_widget", "main.py")); err != nil {
		t.Errorf("rewritten source dir missing: %v", err)
	}
	readme, err := os.ReadFile(filepath.Join(repoDir, "README.md"))
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(readme), "st-experiment-template") {
		t.Error("README still contains the template token")
	}

	// Exactly one commit with the fixed message.
	count, err := gitrepo.CommitCount(repoDir)
	if err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Errorf("commit count = %d, want 1", count)
	}
}

func TestRunSyncCreateRepoFailureKeepsLocalCommit(t *testing.T) {
	template := writeTemplateRepo(t)
	root := t.TempDir()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"message":"name already exists"}`))
	}))
	defer srv.Close()

	orch, err := New(Config{
		ProjectName:    "my-widget",
		ProjectRootDir: root,
		Sync:           true,
		User:           "sam",
		Token:          "tok",
		TemplateURL:    template,
		TemplateBranch: "master",
		HostingAPIURL:  srv.URL,
		Identity:       testIdentity,
	})
	if err != nil {
		t.Fatal(err)
	}

	res := orch.Run(context.Background())
	if res.OK() {
		t.Fatal("run should fail when the hosting API rejects the repo")
	}
	if res.FailedStage != StageRepository {
		t.Fatalf("FailedStage = %q, want %q", res.FailedStage, StageRepository)
	}

	// The failure surfaced the raw response.
	if !strings.Contains(res.Err.Error(), "name already exists") {
		t.Errorf("error should carry the response body, got: %v", res.Err)
	}

	// The local commit survives; nothing is rolled back.
	count, err := gitrepo.CommitCount(orch.Paths().RepoDir)
	if err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Errorf("commit count = %d, want 1", count)
	}
}

func TestRunSyncPushesToRemote(t *testing.T) {
	template := writeTemplateRepo(t)
	root := t.TempDir()

	bare := filepath.Join(t.TempDir(), "remote.git")
	if _, err := git.PlainInit(bare, true); err != nil {
		t.Fatal(err)
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(hosting.Repo{Name: "my-widget", CloneURL: bare})
	}))
	defer srv.Close()

	orch, err := New(Config{
		ProjectName:    "my-widget",
		ProjectRootDir: root,
		Sync:           true,
		User:           "sam",
		Token:          "tok",
		TemplateURL:    template,
		TemplateBranch: "master",
		HostingAPIURL:  srv.URL,
		Identity:       testIdentity,
	})
	if err != nil {
		t.Fatal(err)
	}

	res := orch.Run(context.Background())
	checkTail(t, res)

	// The bare remote received the default branch.
	remote, err := git.PlainOpen(bare)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := remote.Reference("refs/heads/"+gitrepo.DefaultBranch, true); err != nil {
		t.Errorf("remote missing pushed branch: %v", err)
	}
}

func TestRunRejectsSyncWithoutCredentialsBeforeSideEffects(t *testing.T) {
	root := t.TempDir()

	_, err := New(Config{
		ProjectName:    "my-widget",
		ProjectRootDir: root,
		Sync:           true,
		TemplateURL:    "https://example.com/t.git",
	})
	if err == nil {
		t.Fatal("New() should reject sync without credentials")
	}

	// No partial directory was created.
	if _, statErr := os.Stat(filepath.Join(root, "my-widget")); !os.IsNotExist(statErr) {
		t.Error("project directory should not exist after rejected config")
	}
}

func TestRunVersionGate(t *testing.T) {
	template := writeLocalTemplate(t)
	manifest := "name: st-experiment-template\nmin_sampy_version: 9.9.9\n"
	if err := os.WriteFile(filepath.Join(template, "template.yaml"), []byte(manifest), 0644); err != nil {
		t.Fatal(err)
	}
	root := t.TempDir()

	orch, err := New(Config{
		ProjectName:    "my-widget",
		ProjectRootDir: root,
		TemplateLocal:  template,
		BuildVersion:   "1.0.0",
		Identity:       testIdentity,
	})
	if err != nil {
		t.Fatal(err)
	}

	res := orch.Run(context.Background())
	if res.OK() || res.FailedStage != StageWorkspace {
		t.Fatalf("expected workspace stage to fail the version gate, got %+v", res)
	}
	if !strings.Contains(res.Err.Error(), "9.9.9") {
		t.Errorf("error should name the required version, got: %v", res.Err)
	}
}
