// Package compare classifies the union of two file enumerations into
// identical, modified, pro-only and dev-only buckets.
package compare

import (
	"bytes"
	"os"
	"path/filepath"
	"sort"

	"github.com/chmouel/reldiff/internal/log"
)

// Kind tells which bucket a display entry belongs to.
type Kind int

// Display entry kinds.
const (
	KindModified Kind = iota
	KindProOnly
	KindDevOnly
)

// Label returns the fixed-width list label for the kind.
func (k Kind) Label() string {
	switch k {
	case KindModified:
		return "MODIFIED"
	case KindProOnly:
		return "PRO ONLY"
	case KindDevOnly:
		return "DEV ONLY"
	}
	return "UNKNOWN"
}

// Entry is one row of the interactive display list.
type Entry struct {
	Kind Kind
	Path string
}

// Result is the four-way partition of one comparison run. Identical files
// are only counted; the three remaining buckets keep their sorted paths.
type Result struct {
	Identical int
	Modified  []string
	ProOnly   []string
	DevOnly   []string
}

// Classify partitions the union of both sets. Paths present on both sides
// are compared byte for byte; size and mtime are never trusted on their own.
func Classify(proRoot, devRoot string, pro, dev map[string]struct{}) *Result {
	union := make([]string, 0, len(pro)+len(dev))
	seen := make(map[string]struct{}, len(pro)+len(dev))
	for p := range pro {
		union = append(union, p)
		seen[p] = struct{}{}
	}
	for p := range dev {
		if _, ok := seen[p]; !ok {
			union = append(union, p)
		}
	}
	sort.Strings(union)

	res := &Result{}
	for _, p := range union {
		_, inPro := pro[p]
		_, inDev := dev[p]
		switch {
		case inPro && inDev:
			if sameContent(filepath.Join(proRoot, p), filepath.Join(devRoot, p)) {
				res.Identical++
			} else {
				res.Modified = append(res.Modified, p)
			}
		case inPro:
			res.ProOnly = append(res.ProOnly, p)
		default:
			res.DevOnly = append(res.DevOnly, p)
		}
	}
	return res
}

// sameContent reports byte-exact equality. An unreadable pair counts as
// different: a false "modified" is reviewable, a false "identical" is not.
func sameContent(a, b string) bool {
	sa, errA := os.Stat(a)
	sb, errB := os.Stat(b)
	if errA != nil || errB != nil {
		log.Printf("compare: stat failed for %s / %s", a, b)
		return false
	}
	if sa.Size() != sb.Size() {
		return false
	}

	da, err := os.ReadFile(a) // #nosec G304 -- paths come from the tree enumeration
	if err != nil {
		log.Printf("compare: read failed for %s: %v", a, err)
		return false
	}
	db, err := os.ReadFile(b) // #nosec G304
	if err != nil {
		log.Printf("compare: read failed for %s: %v", b, err)
		return false
	}
	return bytes.Equal(da, db)
}

// DisplayList concatenates modified, dev-only and pro-only entries in the
// order the menu shows them.
func (r *Result) DisplayList() []Entry {
	entries := make([]Entry, 0, len(r.Modified)+len(r.DevOnly)+len(r.ProOnly))
	for _, p := range r.Modified {
		entries = append(entries, Entry{Kind: KindModified, Path: p})
	}
	for _, p := range r.DevOnly {
		entries = append(entries, Entry{Kind: KindDevOnly, Path: p})
	}
	for _, p := range r.ProOnly {
		entries = append(entries, Entry{Kind: KindProOnly, Path: p})
	}
	return entries
}
