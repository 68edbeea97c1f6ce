// Package diffview renders a unified diff between two files on disk.
package diffview

import (
	"fmt"
	"io"
	"os"
	"strings"

	udiff "github.com/aymanbagabas/go-udiff"
	"github.com/chmouel/reldiff/internal/theme"
)

// Side labels used in the unified diff header.
const (
	LabelPro = "PRO"
	LabelDev = "DEV"
)

// readPermissive reads a file as text, dropping byte sequences that are not
// valid UTF-8 so binary content degrades to a best-effort diff instead of an
// error.
func readPermissive(path string) (string, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- paths come from the tree enumeration
	if err != nil {
		return "", err
	}
	return strings.ToValidUTF8(string(data), ""), nil
}

// Render writes a styled unified diff of proPath against devPath to w.
// Additions, removals and hunk headers get their own styles; everything else
// is printed as-is. An empty diff is reported explicitly since it can also
// mean the files only differ in undecodable bytes.
func Render(w io.Writer, th *theme.Theme, proPath, devPath string) error {
	proText, err := readPermissive(proPath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", proPath, err)
	}
	devText, err := readPermissive(devPath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", devPath, err)
	}

	unified := udiff.Unified(LabelPro, LabelDev, proText, devText)
	if unified == "" {
		fmt.Fprintln(w, th.Warn.Render("no differences detected (possibly binary)"))
		return nil
	}

	for _, line := range strings.Split(strings.TrimSuffix(unified, "\n"), "\n") {
		switch {
		case strings.HasPrefix(line, "+"):
			fmt.Fprintln(w, th.Added.Render(line))
		case strings.HasPrefix(line, "-"):
			fmt.Fprintln(w, th.Removed.Render(line))
		case strings.HasPrefix(line, "@"):
			fmt.Fprintln(w, th.Hunk.Render(line))
		default:
			fmt.Fprintln(w, line)
		}
	}
	return nil
}

// Preview writes the raw content of a single file to w, decoded with the
// same permissive policy as Render.
func Preview(w io.Writer, path string) error {
	text, err := readPermissive(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	fmt.Fprintln(w, text)
	return nil
}
