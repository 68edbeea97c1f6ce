// Package models holds the data types shared between the git layer and the
// interactive sessions.
package models

// ChangeEntry represents one line of `git status --porcelain`: a two
// character XY status code and the path relative to the repository root.
// Entries are snapshots; the session re-fetches the whole list after any
// mutation instead of patching them in place.
type ChangeEntry struct {
	StatusCode string
	Path       string
}

// Untracked reports whether the entry is an untracked file.
func (c ChangeEntry) Untracked() bool {
	return c.StatusCode == "??"
}

// Describe returns a short human label for the status code.
func (c ChangeEntry) Describe() string {
	switch {
	case c.Untracked():
		return "Untracked"
	case contains(c.StatusCode, 'M'):
		return "Modified"
	case contains(c.StatusCode, 'A'):
		return "Added"
	case contains(c.StatusCode, 'D'):
		return "Deleted"
	case contains(c.StatusCode, 'R'):
		return "Renamed"
	}
	return ""
}

func contains(code string, b byte) bool {
	for i := 0; i < len(code); i++ {
		if code[i] == b {
			return true
		}
	}
	return false
}
