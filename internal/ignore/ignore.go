// Package ignore edits the .gitignore file at a repository root.
package ignore

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// FileName is the ignore file edited at the repository root.
const FileName = ".gitignore"

// Candidates derives the ignore patterns offered for one target path: the
// exact slash-normalized path, an extension wildcard when the path has an
// extension, and a parent-directory pattern when the parent is non-trivial.
func Candidates(relPath string) []string {
	p := filepath.ToSlash(relPath)
	cands := []string{p}
	if ext := path.Ext(p); ext != "" {
		cands = append(cands, "*"+ext)
	}
	if dir := path.Dir(p); dir != "." && dir != "/" {
		cands = append(cands, dir+"/")
	}
	return cands
}

// Append adds pattern to the ignore file under gitRoot, creating the file if
// needed. It reports added=false without writing when the pattern already
// occurs in the file content. The existence check is plain substring
// containment, so a longer pattern containing this one counts as present.
func Append(gitRoot, pattern string) (added bool, err error) {
	ignorePath := filepath.Join(gitRoot, FileName)

	content, err := os.ReadFile(ignorePath) // #nosec G304 -- path is the repo's own ignore file
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return false, fmt.Errorf("reading %s: %w", ignorePath, err)
	}
	if strings.Contains(string(content), pattern) {
		return false, nil
	}

	f, err := os.OpenFile(ignorePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644) // #nosec G302 G304
	if err != nil {
		return false, fmt.Errorf("opening %s: %w", ignorePath, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	line := pattern + "\n"
	if len(content) > 0 && !strings.HasSuffix(string(content), "\n") {
		line = "\n" + line
	}
	if _, err := f.WriteString(line); err != nil {
		return false, fmt.Errorf("writing %s: %w", ignorePath, err)
	}
	return true, nil
}
