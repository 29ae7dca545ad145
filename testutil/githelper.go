// Package testutil holds fixtures shared by package and e2e tests.
package testutil

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

// NewTestRepo creates a temporary git repository on branch main with one
// commit. The repo is removed when the test finishes.
func NewTestRepo(t *testing.T) string {
	t.Helper()

	repo := filepath.Join(t.TempDir(), "test-repo")
	if err := os.MkdirAll(repo, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	GitCmd(t, repo, "init", "-b", "main")
	GitCmd(t, repo, "config", "user.email", "test@test.com")
	GitCmd(t, repo, "config", "user.name", "Test")
	GitCmd(t, repo, "config", "tag.gpgSign", "false")
	GitCmd(t, repo, "config", "commit.gpgSign", "false")

	CreateFile(t, repo, "README.md", "# Test\n")
	GitCmd(t, repo, "add", ".")
	GitCmd(t, repo, "commit", "-m", "initial commit")
	return repo
}

// CreateFile writes content to dir/name, creating missing parent
// directories. name may use forward slashes.
func CreateFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// GitCmd runs a git command in the given directory and returns its output.
func GitCmd(t *testing.T, dir string, args ...string) string {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("git %v: %s: %v", args, out, err)
	}
	return string(out)
}
