package session

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/chmouel/reldiff/internal/git"
	"github.com/chmouel/reldiff/internal/theme"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubGitMissing makes the capability probe fail so enumeration always uses
// the filesystem walk, keeping these tests independent of a git binary.
func stubGitMissing(t *testing.T) {
	t.Helper()
	orig := git.LookupPath
	git.LookupPath = func(string) (string, error) { return "", errors.New("not found") }
	t.Cleanup(func() { git.LookupPath = orig })
}

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func newTestService() *git.Service {
	return git.NewService(func(string, string) {})
}

func compareTrees(t *testing.T) (pro, dev string) {
	t.Helper()
	pro = t.TempDir()
	dev = t.TempDir()
	writeFile(t, pro, "x.txt", "a")
	writeFile(t, pro, "y.txt", "b")
	writeFile(t, dev, "x.txt", "a")
	writeFile(t, dev, "y.txt", "c")
	writeFile(t, dev, "z.txt", "d")
	return pro, dev
}

func TestRunCompare_MissingProDir(t *testing.T) {
	stubGitMissing(t)
	opts := CompareOptions{
		ProDir: filepath.Join(t.TempDir(), "nope"),
		DevDir: t.TempDir(),
	}

	err := RunCompare(context.Background(), newTestService(), theme.Plain(), opts,
		strings.NewReader(""), &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PRO directory not found")
}

func TestRunCompare_MissingDevDir(t *testing.T) {
	stubGitMissing(t)
	opts := CompareOptions{
		ProDir: t.TempDir(),
		DevDir: filepath.Join(t.TempDir(), "nope"),
	}

	err := RunCompare(context.Background(), newTestService(), theme.Plain(), opts,
		strings.NewReader(""), &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DEV directory not found")
}

func TestRunCompare_NoDifferences(t *testing.T) {
	stubGitMissing(t)
	pro := t.TempDir()
	dev := t.TempDir()
	writeFile(t, pro, "same.txt", "content")
	writeFile(t, dev, "same.txt", "content")

	out := &bytes.Buffer{}
	err := RunCompare(context.Background(), newTestService(), theme.Plain(),
		CompareOptions{ProDir: pro, DevDir: dev}, strings.NewReader(""), out)
	require.NoError(t, err)

	got := out.String()
	assert.Contains(t, got, "Identical files : 1")
	assert.Contains(t, got, "No differences that need attention.")
}

func TestRunCompare_ListAndQuit(t *testing.T) {
	stubGitMissing(t)
	pro, dev := compareTrees(t)

	out := &bytes.Buffer{}
	err := RunCompare(context.Background(), newTestService(), theme.Plain(),
		CompareOptions{ProDir: pro, DevDir: dev}, strings.NewReader("q\n"), out)
	require.NoError(t, err)

	got := out.String()
	assert.Contains(t, got, "PRO (stable) : "+pro)
	assert.Contains(t, got, "DEV (develop): "+dev)
	assert.Contains(t, got, "Identical files : 1")
	assert.Contains(t, got, "Content differs : 1")
	assert.Contains(t, got, "MODIFIED : y.txt")
	assert.Contains(t, got, "DEV ONLY : z.txt")
	assert.NotContains(t, got, "PRO ONLY")
	assert.Contains(t, got, "Bye.")
}

func TestRunCompare_ViewModifiedEntry(t *testing.T) {
	stubGitMissing(t)
	pro, dev := compareTrees(t)

	out := &bytes.Buffer{}
	err := RunCompare(context.Background(), newTestService(), theme.Plain(),
		CompareOptions{ProDir: pro, DevDir: dev}, strings.NewReader("1\nq\n"), out)
	require.NoError(t, err)

	got := out.String()
	assert.Contains(t, got, "File diff: y.txt")
	assert.Contains(t, got, "-b")
	assert.Contains(t, got, "+c")
}

func TestRunCompare_PreviewDevOnlyEntry(t *testing.T) {
	stubGitMissing(t)
	pro, dev := compareTrees(t)

	// Entry 2 is the dev-only z.txt (modified entries come first).
	out := &bytes.Buffer{}
	err := RunCompare(context.Background(), newTestService(), theme.Plain(),
		CompareOptions{ProDir: pro, DevDir: dev}, strings.NewReader("2\nq\n"), out)
	require.NoError(t, err)

	got := out.String()
	assert.Contains(t, got, "DEV file preview: z.txt")
	assert.Contains(t, got, "d")
}

func TestRunCompare_InvalidInputs(t *testing.T) {
	stubGitMissing(t)
	pro, dev := compareTrees(t)

	out := &bytes.Buffer{}
	err := RunCompare(context.Background(), newTestService(), theme.Plain(),
		CompareOptions{ProDir: pro, DevDir: dev}, strings.NewReader("foo\n99\ni\nq\n"), out)
	require.NoError(t, err)

	got := out.String()
	assert.Contains(t, got, "Invalid input.")
	assert.Contains(t, got, "Invalid number.")
	assert.Contains(t, got, "Usage: i <number>")
}

func TestRunCompare_IgnoreFailsOutsideRepository(t *testing.T) {
	stubGitMissing(t)
	pro, dev := compareTrees(t)

	out := &bytes.Buffer{}
	err := RunCompare(context.Background(), newTestService(), theme.Plain(),
		CompareOptions{ProDir: pro, DevDir: dev}, strings.NewReader("i 1\nq\n"), out)
	require.NoError(t, err)

	assert.Contains(t, out.String(), "DEV tree is not a git repository")
	assert.NoFileExists(t, filepath.Join(dev, ".gitignore"))
}

func TestRunCompare_InterruptIsClean(t *testing.T) {
	stubGitMissing(t)
	pro, dev := compareTrees(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out := &bytes.Buffer{}
	err := RunCompare(ctx, newTestService(), theme.Plain(),
		CompareOptions{ProDir: pro, DevDir: dev}, strings.NewReader(""), out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Exiting.")
}
