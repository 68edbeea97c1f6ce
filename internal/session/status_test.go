package session

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/chmouel/reldiff/internal/models"
	"github.com/chmouel/reldiff/internal/theme"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunStatus_NotARepository(t *testing.T) {
	stubGitMissing(t)

	err := RunStatus(context.Background(), newTestService(), theme.Plain(),
		strings.NewReader(""), &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not inside a git repository")
}

// newStatusSession builds a session over a plain directory. The git binary is
// stubbed out by the caller, so diffs come back empty and the change list is
// whatever the test seeds.
func newStatusSession(t *testing.T, root string, changes []models.ChangeEntry, input string, out *bytes.Buffer) *statusSession {
	t.Helper()
	return &statusSession{
		svc:     newTestService(),
		th:      theme.Plain(),
		out:     out,
		lr:      newLineReader(strings.NewReader(input)),
		root:    root,
		changes: changes,
	}
}

func TestStatusSession_ListAndQuit(t *testing.T) {
	stubGitMissing(t)
	root := t.TempDir()
	changes := []models.ChangeEntry{
		{StatusCode: " M", Path: "main.go"},
		{StatusCode: "??", Path: "notes.txt"},
	}

	out := &bytes.Buffer{}
	s := newStatusSession(t, root, changes, "q\n", out)
	require.NoError(t, s.loop(context.Background()))

	got := out.String()
	assert.Contains(t, got, "Git status review")
	assert.Contains(t, got, "2 file(s) with changes:")
	assert.Contains(t, got, " M : main.go")
	assert.Contains(t, got, "<= Modified")
	assert.Contains(t, got, "?? : notes.txt")
	assert.Contains(t, got, "<= Untracked")
	assert.Contains(t, got, "Bye.")
}

func TestStatusSession_UntrackedPreview(t *testing.T) {
	stubGitMissing(t)
	root := t.TempDir()
	writeFile(t, root, "notes.txt", "remember the milk\n")
	changes := []models.ChangeEntry{{StatusCode: "??", Path: "notes.txt"}}

	out := &bytes.Buffer{}
	s := newStatusSession(t, root, changes, "1\nq\n", out)
	require.NoError(t, s.loop(context.Background()))

	got := out.String()
	assert.Contains(t, got, "New file content: notes.txt")
	assert.Contains(t, got, "remember the milk")
}

func TestStatusSession_TrackedDiffUnavailable(t *testing.T) {
	stubGitMissing(t)
	root := t.TempDir()
	changes := []models.ChangeEntry{{StatusCode: " M", Path: "main.go"}}

	out := &bytes.Buffer{}
	s := newStatusSession(t, root, changes, "1\nq\n", out)
	require.NoError(t, s.loop(context.Background()))

	got := out.String()
	assert.Contains(t, got, "Changes: main.go")
	assert.Contains(t, got, "no differences detected (possibly binary)")
}

func TestStatusSession_IgnoreFlowWritesPattern(t *testing.T) {
	stubGitMissing(t)
	root := t.TempDir()
	changes := []models.ChangeEntry{{StatusCode: "??", Path: "build/out.log"}}

	// "i 1" opens the pattern menu, "2" picks "*.log".
	out := &bytes.Buffer{}
	s := newStatusSession(t, root, changes, "i 1\n2\nq\n", out)
	require.NoError(t, s.loop(context.Background()))

	got := out.String()
	assert.Contains(t, got, "[1] build/out.log")
	assert.Contains(t, got, "[2] *.log")
	assert.Contains(t, got, "[3] build/")
	assert.Contains(t, got, `Added "*.log" to .gitignore.`)

	content, err := os.ReadFile(filepath.Join(root, ".gitignore"))
	require.NoError(t, err)
	assert.Equal(t, "*.log\n", string(content))
}

func TestStatusSession_IgnoreCancelled(t *testing.T) {
	stubGitMissing(t)
	root := t.TempDir()
	changes := []models.ChangeEntry{{StatusCode: "??", Path: "notes.txt"}}

	out := &bytes.Buffer{}
	s := newStatusSession(t, root, changes, "i 1\nc\nq\n", out)
	require.NoError(t, s.loop(context.Background()))

	assert.Contains(t, out.String(), "Ignore cancelled.")
	assert.NoFileExists(t, filepath.Join(root, ".gitignore"))
}

func TestStatusSession_InvalidInputs(t *testing.T) {
	stubGitMissing(t)
	root := t.TempDir()
	changes := []models.ChangeEntry{{StatusCode: " M", Path: "main.go"}}

	out := &bytes.Buffer{}
	s := newStatusSession(t, root, changes, "nope\n0\ni 5\ni\nq\n", out)
	require.NoError(t, s.loop(context.Background()))

	got := out.String()
	assert.Contains(t, got, "Invalid input.")
	assert.Contains(t, got, "Invalid number.")
	assert.Contains(t, got, "Usage: i <number>")
}

func TestStatusSession_EndOfInputExits(t *testing.T) {
	stubGitMissing(t)
	root := t.TempDir()
	changes := []models.ChangeEntry{{StatusCode: " M", Path: "main.go"}}

	out := &bytes.Buffer{}
	s := newStatusSession(t, root, changes, "", out)
	require.NoError(t, s.loop(context.Background()))
	assert.Contains(t, out.String(), "Exiting.")
}
