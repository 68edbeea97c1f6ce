// Package scan enumerates the files belonging to a directory tree.
//
// The primary strategy asks git for the list (tracked plus untracked,
// ignore rules applied); the fallback walks the filesystem with a small
// built-in denylist. The strategy is picked by a single capability probe at
// call time.
package scan

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/chmouel/reldiff/internal/git"
	"github.com/chmouel/reldiff/internal/log"
)

// walkDenylist names path components that are never part of a tree's
// enumeration, regardless of configuration.
var walkDenylist = []string{".git", "__pycache__", ".DS_Store"}

// Lister enumerates the relative, slash-separated file paths under a root.
type Lister interface {
	List(ctx context.Context, root string) map[string]struct{}
}

// gitLister delegates to `git ls-files`, which applies nested ignore files
// without us reimplementing pattern matching.
type gitLister struct {
	svc *git.Service
}

func (l gitLister) List(ctx context.Context, root string) map[string]struct{} {
	files := make(map[string]struct{})
	listed, err := l.svc.LsFiles(ctx, root)
	if err != nil {
		log.Printf("scan: ls-files failed for %s: %v", root, err)
		return files
	}
	for _, f := range listed {
		files[filepath.ToSlash(f)] = struct{}{}
	}
	return files
}

// walkLister recursively walks the tree, excluding the built-in denylist and
// any path whose components intersect ignoreNames.
type walkLister struct {
	ignoreNames map[string]struct{}
}

func (l walkLister) List(ctx context.Context, root string) map[string]struct{} {
	files := make(map[string]struct{})
	_ = filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		name := d.Name()
		if l.excluded(name) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return nil
		}
		files[filepath.ToSlash(rel)] = struct{}{}
		return nil
	})
	return files
}

func (l walkLister) excluded(name string) bool {
	for _, deny := range walkDenylist {
		if name == deny {
			return true
		}
	}
	_, ok := l.ignoreNames[name]
	return ok
}

// pickLister probes whether git can enumerate root and returns the matching
// strategy.
func pickLister(ctx context.Context, svc *git.Service, root string, ignoreNames []string) Lister {
	if svc != nil && svc.IsWorkTree(ctx, root) {
		return gitLister{svc: svc}
	}
	names := make(map[string]struct{}, len(ignoreNames))
	for _, n := range ignoreNames {
		n = strings.TrimSpace(n)
		if n != "" {
			names[n] = struct{}{}
		}
	}
	return walkLister{ignoreNames: names}
}

// Enumerate returns the set of relative file paths under root. A missing
// root yields an empty set; the caller validates the root beforehand.
func Enumerate(ctx context.Context, svc *git.Service, root string, ignoreNames []string) map[string]struct{} {
	if _, err := os.Stat(root); err != nil {
		return map[string]struct{}{}
	}
	return pickLister(ctx, svc, root, ignoreNames).List(ctx, root)
}
