package gitfiles

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

// inRepo creates a throwaway git repository with one committed Python file
// and chdirs into it for the duration of the test.
func inRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)

	run := func(args ...string) {
		cmd := exec.Command("git", args...)
		cmd.Dir = dir
		if out, err := cmd.CombinedOutput(); err != nil {
			t.Skipf("git unavailable: %v: %s", err, out)
		}
	}
	run("init")
	run("config", "user.email", "test@example.com")
	run("config", "user.name", "test")

	if err := os.WriteFile(filepath.Join(dir, "tracked.py"), []byte("x = 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	run("add", "tracked.py")
	run("commit", "-m", "initial")
	return dir
}

func TestModifiedPythonFiles_CleanRepo(t *testing.T) {
	inRepo(t)

	files := ModifiedPythonFiles(context.Background())

	if len(files) != 0 {
		t.Errorf("clean repo should yield no files, got %v", files)
	}
}

func TestModifiedPythonFiles_UnstagedAndStaged(t *testing.T) {
	dir := inRepo(t)

	// Unstaged modification to a tracked file.
	if err := os.WriteFile(filepath.Join(dir, "tracked.py"), []byte("x = 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	// Staged new file, plus a non-Python file that must be filtered out.
	if err := os.WriteFile(filepath.Join(dir, "added.py"), []byte("y = 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("n\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"added.py", "notes.txt"} {
		cmd := exec.Command("git", "add", name)
		cmd.Dir = dir
		if out, err := cmd.CombinedOutput(); err != nil {
			t.Fatalf("git add: %v: %s", err, out)
		}
	}

	files := ModifiedPythonFiles(context.Background())

	if len(files) != 2 || files[0] != "added.py" || files[1] != "tracked.py" {
		t.Errorf("files = %v, want [added.py tracked.py]", files)
	}
}

func TestModifiedPythonFiles_OutsideRepo(t *testing.T) {
	t.Chdir(t.TempDir())

	files := ModifiedPythonFiles(context.Background())

	if len(files) != 0 {
		t.Errorf("outside a repository expected no files, got %v", files)
	}
}
