// Package theme provides the immutable style set used by the interactive
// sessions and the diff renderer. Styles are passed down as a value rather
// than read from process-wide mutable state.
package theme

import "github.com/charmbracelet/lipgloss"

// Theme groups every style the renderers need.
type Theme struct {
	Header    lipgloss.Style // section banners
	Accent    lipgloss.Style // PRO path, prompts
	AltAccent lipgloss.Style // DEV path
	Added     lipgloss.Style // diff additions, added files
	Removed   lipgloss.Style // diff removals, deleted files
	Hunk      lipgloss.Style // @@ hunk headers
	Modified  lipgloss.Style // modified entries
	Untracked lipgloss.Style // untracked entries, one-sided files
	Success   lipgloss.Style
	Warn      lipgloss.Style
	Error     lipgloss.Style
	Muted     lipgloss.Style
}

// Default returns the dark palette.
func Default() *Theme {
	return &Theme{
		Header:    lipgloss.NewStyle().Foreground(lipgloss.Color("#8BE9FD")).Bold(true),
		Accent:    lipgloss.NewStyle().Foreground(lipgloss.Color("#8BE9FD")),
		AltAccent: lipgloss.NewStyle().Foreground(lipgloss.Color("#FF79C6")),
		Added:     lipgloss.NewStyle().Foreground(lipgloss.Color("#50FA7B")),
		Removed:   lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5555")),
		Hunk:      lipgloss.NewStyle().Foreground(lipgloss.Color("#8BE9FD")),
		Modified:  lipgloss.NewStyle().Foreground(lipgloss.Color("#F1FA8C")).Bold(true),
		Untracked: lipgloss.NewStyle().Foreground(lipgloss.Color("#8BE9FD")).Bold(true),
		Success:   lipgloss.NewStyle().Foreground(lipgloss.Color("#50FA7B")).Bold(true),
		Warn:      lipgloss.NewStyle().Foreground(lipgloss.Color("#FFB86C")),
		Error:     lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5555")).Bold(true),
		Muted:     lipgloss.NewStyle().Foreground(lipgloss.Color("#6272A4")),
	}
}

// Plain returns a theme with no styling, used for --no-color and when
// stdout is not a terminal.
func Plain() *Theme {
	empty := lipgloss.NewStyle()
	return &Theme{
		Header:    empty,
		Accent:    empty,
		AltAccent: empty,
		Added:     empty,
		Removed:   empty,
		Hunk:      empty,
		Modified:  empty,
		Untracked: empty,
		Success:   empty,
		Warn:      empty,
		Error:     empty,
		Muted:     empty,
	}
}
