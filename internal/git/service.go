// Package git wraps the git binary for reldiff. The tool never parses git's
// object store; everything goes through textual command output.
package git

import (
	"context"
	"fmt"
	"os/exec"
	"slices"
	"strings"

	"github.com/chmouel/reldiff/internal/log"
	"github.com/chmouel/reldiff/internal/models"
)

// LookupPath is used to find executables in PATH. It's exposed as a package
// variable so tests can mock it and avoid depending on system binaries.
var LookupPath = exec.LookPath

// NotifyFn receives user-facing error notifications.
type NotifyFn func(message string, severity string)

// Service runs git commands on behalf of the sessions.
type Service struct {
	notify  NotifyFn
	noColor bool
}

// NewService constructs a Service reporting failures through notify.
func NewService(notify NotifyFn) *Service {
	if notify == nil {
		notify = func(string, string) {}
	}
	return &Service{notify: notify}
}

// SetNoColor disables --color on diff output.
func (s *Service) SetNoColor(noColor bool) {
	s.noColor = noColor
}

func prepareCommand(ctx context.Context, args []string) (*exec.Cmd, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("no command provided")
	}
	if args[0] != "git" {
		return nil, fmt.Errorf("unsupported command %q", args[0])
	}
	// #nosec G204 -- arguments come from internal logic and are not shell interpolated
	return exec.CommandContext(ctx, "git", args[1:]...), nil
}

// run executes a git command and returns its stdout. Non-zero exits and a
// missing binary surface as errors carrying trimmed stderr where available.
func (s *Service) run(ctx context.Context, args []string, cwd string) (string, error) {
	command := strings.Join(args, " ")
	log.Printf("run: %s (cwd=%s)", command, cwd)

	cmd, err := prepareCommand(ctx, args)
	if err != nil {
		return "", err
	}
	if cwd != "" {
		cmd.Dir = cwd
	}

	output, err := cmd.Output()
	if err != nil {
		if exitError, ok := err.(*exec.ExitError); ok {
			stderr := strings.TrimSpace(string(exitError.Stderr))
			if stderr != "" {
				log.Printf("error: %s: %s", command, stderr)
				return "", fmt.Errorf("%s: %s", command, stderr)
			}
			log.Printf("error: %s (exit %d)", command, exitError.ExitCode())
			return "", fmt.Errorf("%s: exit %d", command, exitError.ExitCode())
		}
		log.Printf("error: %s: %v", command, err)
		return "", fmt.Errorf("%s: %w", command, err)
	}

	log.Printf("ok: %s", command)
	return string(output), nil
}

// RunGit executes a git command, tolerating the listed return codes, and
// returns its output ("" on failure). Failures outside okReturncodes are
// reported through the notify callback unless silent is set.
func (s *Service) RunGit(ctx context.Context, args []string, cwd string, okReturncodes []int, strip, silent bool) string {
	command := strings.Join(args, " ")

	cmd, err := prepareCommand(ctx, args)
	if err != nil {
		s.notify(err.Error(), "error")
		return ""
	}
	if cwd != "" {
		cmd.Dir = cwd
	}

	output, err := cmd.Output()
	if err != nil {
		if exitError, ok := err.(*exec.ExitError); ok {
			if !slices.Contains(okReturncodes, exitError.ExitCode()) {
				if !silent {
					stderr := strings.TrimSpace(string(exitError.Stderr))
					suffix := fmt.Sprintf(" (exit %d)", exitError.ExitCode())
					if stderr != "" {
						suffix = ": " + stderr
					}
					s.notify(fmt.Sprintf("Command failed: %s%s", command, suffix), "error")
				}
				log.Printf("error: %s (exit %d)", command, exitError.ExitCode())
				return ""
			}
		} else {
			if !silent {
				s.notify(fmt.Sprintf("Command not found: %s", args[0]), "error")
			}
			log.Printf("error: command not found: %s", args[0])
			return ""
		}
	}

	out := string(output)
	if strip {
		out = strings.TrimSpace(out)
	}
	log.Printf("ok: %s", command)
	return out
}

// IsWorkTree reports whether dir is inside a git working tree.
func (s *Service) IsWorkTree(ctx context.Context, dir string) bool {
	if _, err := LookupPath("git"); err != nil {
		return false
	}
	out, err := s.run(ctx, []string{"git", "-C", dir, "rev-parse", "--is-inside-work-tree"}, "")
	return err == nil && strings.TrimSpace(out) == "true"
}

// TopLevel returns the repository root containing dir, or "" when dir is not
// inside a working tree.
func (s *Service) TopLevel(ctx context.Context, dir string) string {
	out, err := s.run(ctx, []string{"git", "-C", dir, "rev-parse", "--show-toplevel"}, "")
	if err != nil {
		return ""
	}
	return strings.TrimSpace(out)
}

// Status runs `git status --porcelain` in dir and parses the result. The
// returned paths are relative to the repository root.
func (s *Service) Status(ctx context.Context, dir string) ([]models.ChangeEntry, error) {
	out, err := s.run(ctx, []string{"git", "status", "--porcelain"}, dir)
	if err != nil {
		return nil, err
	}
	return ParseStatus(out), nil
}

// ParseStatus parses `git status --porcelain` output into change entries.
func ParseStatus(out string) []models.ChangeEntry {
	var changes []models.ChangeEntry
	for _, line := range strings.Split(out, "\n") {
		if len(line) < 4 {
			continue
		}
		changes = append(changes, models.ChangeEntry{
			StatusCode: line[:2],
			Path:       line[3:],
		})
	}
	return changes
}

// Diff returns the diff for a single path, colored by git itself unless
// no-color mode is active. An empty string means no textual diff.
func (s *Service) Diff(ctx context.Context, dir, path string) string {
	color := "--color"
	if s.noColor {
		color = "--no-color"
	}
	return s.RunGit(ctx, []string{"git", "diff", color, "--", path}, dir, []int{0, 1}, false, false)
}

// LsFiles lists tracked plus untracked-but-not-ignored files under root,
// honoring every nested ignore rule git knows about.
func (s *Service) LsFiles(ctx context.Context, root string) ([]string, error) {
	out, err := s.run(ctx, []string{
		"git", "-C", root, "ls-files", "--cached", "--others", "--exclude-standard",
	}, "")
	if err != nil {
		return nil, err
	}
	var files []string
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			files = append(files, line)
		}
	}
	return files, nil
}
