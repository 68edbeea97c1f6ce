package session

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/chmouel/reldiff/internal/diffview"
	"github.com/chmouel/reldiff/internal/git"
	"github.com/chmouel/reldiff/internal/ignore"
	"github.com/chmouel/reldiff/internal/log"
	"github.com/chmouel/reldiff/internal/models"
	"github.com/chmouel/reldiff/internal/theme"
)

const statusTitle = "Git status review"

type statusSession struct {
	svc     *git.Service
	th      *theme.Theme
	out     io.Writer
	lr      *lineReader
	root    string
	changes []models.ChangeEntry
}

// RunStatus reviews the uncommitted changes of the repository containing the
// current working directory.
func RunStatus(ctx context.Context, svc *git.Service, th *theme.Theme, in io.Reader, out io.Writer) error {
	if !svc.IsWorkTree(ctx, ".") {
		return fmt.Errorf("not inside a git repository")
	}
	root := svc.TopLevel(ctx, ".")
	if root == "" {
		return fmt.Errorf("could not resolve the repository root")
	}

	changes, err := svc.Status(ctx, ".")
	if err != nil {
		return fmt.Errorf("git status failed: %w", err)
	}
	log.Printf("status: %d change(s) in %s", len(changes), root)
	if len(changes) == 0 {
		printHeader(out, th, statusTitle)
		fmt.Fprintln(out, th.Success.Render("No changed files. Working tree is clean."))
		return nil
	}

	s := &statusSession{
		svc:     svc,
		th:      th,
		out:     out,
		lr:      newLineReader(in),
		root:    root,
		changes: changes,
	}
	return s.loop(ctx)
}

func (s *statusSession) entryStyle(c models.ChangeEntry) func(...string) string {
	switch c.Describe() {
	case "Modified", "Renamed":
		return s.th.Modified.Render
	case "Added":
		return s.th.Added.Render
	case "Deleted":
		return s.th.Removed.Render
	case "Untracked":
		return s.th.Untracked.Render
	}
	return func(strs ...string) string { return strs[0] }
}

func (s *statusSession) printMenu(banner string) {
	clearScreen(s.out)
	printHeader(s.out, s.th, statusTitle)
	printBanner(s.out, s.th, banner)

	fmt.Fprintln(s.out, s.th.Warn.Render(fmt.Sprintf("%d file(s) with changes:", len(s.changes))))
	fmt.Fprintln(s.out)

	width := indexWidth(len(s.changes))
	for i, c := range s.changes {
		render := s.entryStyle(c)
		fmt.Fprintf(s.out, "[%*d] %s", width, i+1, render(fmt.Sprintf("%-2s : %s", c.StatusCode, c.Path)))
		if desc := c.Describe(); desc != "" {
			fmt.Fprintf(s.out, "  <= %s", s.th.Muted.Render(desc))
		}
		fmt.Fprintln(s.out)
	}

	fmt.Fprintln(s.out)
	printDivider(s.out)
	fmt.Fprintln(s.out, "Commands:")
	fmt.Fprintln(s.out, "  [number]  : show the diff for that file")
	fmt.Fprintln(s.out, "  [i number]: add the file to "+ignoreFileLabel)
	fmt.Fprintln(s.out, "  [q]       : quit")
	fmt.Fprintln(s.out, "  [enter]   : clear screen and redraw the list")
}

func (s *statusSession) loop(ctx context.Context) error {
	// The menu is only redrawn on demand: after viewing a diff the output
	// must stay visible above the prompt.
	s.printMenu("")
	for {
		prompt(s.out, s.th)
		input, ok := s.lr.ReadLine(ctx)
		if !ok {
			fmt.Fprintln(s.out, "\nExiting.")
			return nil
		}

		switch {
		case input == "q" || input == "Q":
			fmt.Fprintln(s.out, "Bye.")
			return nil
		case input == "":
			s.printMenu("")
		case input == "i":
			s.printMenu("Usage: i <number>")
		case input[0] == 'i':
			idx, ok := parseIgnoreArg(input)
			if !ok || idx < 1 || idx > len(s.changes) {
				s.printMenu("Invalid number.")
				continue
			}
			s.printMenu(s.ignoreEntry(ctx, s.changes[idx-1]))
		default:
			idx, err := parseIndex(input)
			if err != nil {
				s.printMenu("Invalid input.")
				continue
			}
			if idx < 1 || idx > len(s.changes) {
				s.printMenu("Invalid number.")
				continue
			}
			s.view(ctx, s.changes[idx-1])
		}
	}
}

// view shows the diff for a tracked file, or the raw content for an
// untracked one (git diff has nothing to say about those).
func (s *statusSession) view(ctx context.Context, c models.ChangeEntry) {
	if c.Untracked() {
		printHeader(s.out, s.th, "New file content: "+c.Path)
		if err := diffview.Preview(s.out, filepath.Join(s.root, c.Path)); err != nil {
			fmt.Fprintln(s.out, s.th.Error.Render(fmt.Sprintf("Could not preview: %v", err)))
		}
		return
	}
	printHeader(s.out, s.th, "Changes: "+c.Path)
	diff := s.svc.Diff(ctx, s.root, c.Path)
	if diff == "" {
		fmt.Fprintln(s.out, s.th.Warn.Render("no differences detected (possibly binary)"))
		return
	}
	fmt.Fprint(s.out, diff)
}

// ignoreEntry runs the ignore-pattern flow for one entry and returns the
// banner to show on the redrawn menu. The change list is re-fetched because
// a new ignore pattern changes what git status reports.
func (s *statusSession) ignoreEntry(ctx context.Context, c models.ChangeEntry) string {
	pattern, ok := selectPattern(ctx, s.lr, s.out, s.th, ignore.Candidates(c.Path))
	if !ok {
		return "Ignore cancelled."
	}

	added, err := ignore.Append(s.root, pattern)
	if err != nil {
		return fmt.Sprintf("Failed to update %s: %v", ignoreFileLabel, err)
	}
	log.Printf("status: ignore %q added=%t", pattern, added)

	if changes, err := s.svc.Status(ctx, "."); err == nil {
		s.changes = changes
	}
	if !added {
		return fmt.Sprintf("Pattern %q already present.", pattern)
	}
	return fmt.Sprintf("Added %q to %s.", pattern, ignoreFileLabel)
}
