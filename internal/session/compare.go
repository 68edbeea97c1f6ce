package session

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/chmouel/reldiff/internal/compare"
	"github.com/chmouel/reldiff/internal/diffview"
	"github.com/chmouel/reldiff/internal/git"
	"github.com/chmouel/reldiff/internal/ignore"
	"github.com/chmouel/reldiff/internal/log"
	"github.com/chmouel/reldiff/internal/scan"
	"github.com/chmouel/reldiff/internal/theme"
)

const compareTitle = "Directory compare"

// CompareOptions configures one directory comparison run.
type CompareOptions struct {
	ProDir      string
	DevDir      string
	IgnoreNames []string
}

type compareSession struct {
	svc     *git.Service
	th      *theme.Theme
	out     io.Writer
	lr      *lineReader
	opts    CompareOptions
	result  *compare.Result
	entries []compare.Entry
}

// RunCompare compares the stable (PRO) tree against the development (DEV)
// tree and drives the interactive drill-down menu.
func RunCompare(ctx context.Context, svc *git.Service, th *theme.Theme, opts CompareOptions, in io.Reader, out io.Writer) error {
	if _, err := os.Stat(opts.ProDir); err != nil {
		return fmt.Errorf("PRO directory not found: %s", opts.ProDir)
	}
	if _, err := os.Stat(opts.DevDir); err != nil {
		return fmt.Errorf("DEV directory not found: %s", opts.DevDir)
	}

	s := &compareSession{
		svc:  svc,
		th:   th,
		out:  out,
		lr:   newLineReader(in),
		opts: opts,
	}

	printHeader(out, th, compareTitle)
	s.printRoots()
	fmt.Fprint(out, "\nScanning files...")
	s.rescan(ctx)
	fmt.Fprintln(out, " done")

	if len(s.entries) == 0 {
		s.printSummary()
		fmt.Fprintln(out, th.Success.Render("\nNo differences that need attention."))
		return nil
	}

	return s.loop(ctx)
}

// rescan rebuilds the whole classification from scratch. It runs after every
// ignore-file mutation instead of patching the in-memory sets.
func (s *compareSession) rescan(ctx context.Context) {
	pro := scan.Enumerate(ctx, s.svc, s.opts.ProDir, s.opts.IgnoreNames)
	dev := scan.Enumerate(ctx, s.svc, s.opts.DevDir, s.opts.IgnoreNames)
	s.result = compare.Classify(s.opts.ProDir, s.opts.DevDir, pro, dev)
	s.entries = s.result.DisplayList()
	log.Printf("compare: %d identical, %d modified, %d pro-only, %d dev-only",
		s.result.Identical, len(s.result.Modified), len(s.result.ProOnly), len(s.result.DevOnly))
}

func (s *compareSession) printRoots() {
	fmt.Fprintln(s.out, s.th.Accent.Render("PRO (stable) : "+s.opts.ProDir))
	fmt.Fprintln(s.out, s.th.AltAccent.Render("DEV (develop): "+s.opts.DevDir))
}

func (s *compareSession) printSummary() {
	fmt.Fprintln(s.out, s.th.Success.Render(fmt.Sprintf("Identical files : %d", s.result.Identical)))
	fmt.Fprintln(s.out, s.th.Untracked.Render(fmt.Sprintf("Only in PRO     : %d", len(s.result.ProOnly))))
	fmt.Fprintln(s.out, s.th.Untracked.Render(fmt.Sprintf("Only in DEV     : %d", len(s.result.DevOnly))))
	fmt.Fprintln(s.out, s.th.Error.Render(fmt.Sprintf("Content differs : %d", len(s.result.Modified))))
}

func (s *compareSession) entryStyle(k compare.Kind) func(...string) string {
	switch k {
	case compare.KindModified:
		return s.th.Removed.Render
	case compare.KindDevOnly:
		return s.th.Untracked.Render
	case compare.KindProOnly:
		return s.th.Modified.Render
	}
	return func(strs ...string) string { return strs[0] }
}

func (s *compareSession) printMenu(banner string) {
	clearScreen(s.out)
	printHeader(s.out, s.th, compareTitle)
	s.printRoots()
	fmt.Fprintln(s.out)
	printBanner(s.out, s.th, banner)
	s.printSummary()

	if len(s.entries) == 0 {
		fmt.Fprintln(s.out, s.th.Success.Render("\nNo differences that need attention."))
		return
	}

	fmt.Fprintln(s.out, "\n--- Files with differences ---")
	width := indexWidth(len(s.entries))
	for i, e := range s.entries {
		render := s.entryStyle(e.Kind)
		fmt.Fprintf(s.out, "[%*d] %s\n", width, i+1, render(fmt.Sprintf("%-8s : %s", e.Kind.Label(), e.Path)))
	}

	fmt.Fprintln(s.out)
	printDivider(s.out)
	fmt.Fprintln(s.out, "Commands:")
	fmt.Fprintln(s.out, "  [number]  : show the diff or content of that file")
	fmt.Fprintln(s.out, "  [i number]: add the file to the DEV tree's "+ignoreFileLabel)
	fmt.Fprintln(s.out, "  [q]       : quit")
	fmt.Fprintln(s.out, "  [enter]   : clear screen and redraw the list")
}

func (s *compareSession) loop(ctx context.Context) error {
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
			if !ok || idx < 1 || idx > len(s.entries) {
				s.printMenu("Invalid number.")
				continue
			}
			s.printMenu(s.ignoreEntry(ctx, s.entries[idx-1]))
		default:
			idx, err := parseIndex(input)
			if err != nil {
				s.printMenu("Invalid input.")
				continue
			}
			if idx < 1 || idx > len(s.entries) {
				s.printMenu("Invalid number.")
				continue
			}
			s.view(ctx, s.entries[idx-1])
		}
	}
}

// view renders a diff for modified entries and a raw preview for one-sided
// entries. The menu is not redrawn afterwards so the output stays readable.
func (s *compareSession) view(_ context.Context, e compare.Entry) {
	switch e.Kind {
	case compare.KindModified:
		printHeader(s.out, s.th, "File diff: "+e.Path)
		fmt.Fprintf(s.out, "PRO (base)   : %s\n", filepath.Join(s.opts.ProDir, e.Path))
		fmt.Fprintf(s.out, "DEV (compare): %s\n\n", filepath.Join(s.opts.DevDir, e.Path))
		err := diffview.Render(s.out, s.th,
			filepath.Join(s.opts.ProDir, e.Path),
			filepath.Join(s.opts.DevDir, e.Path))
		if err != nil {
			fmt.Fprintln(s.out, s.th.Error.Render(fmt.Sprintf("Could not diff: %v", err)))
		}
	case compare.KindDevOnly:
		printHeader(s.out, s.th, "DEV file preview: "+e.Path)
		if err := diffview.Preview(s.out, filepath.Join(s.opts.DevDir, e.Path)); err != nil {
			fmt.Fprintln(s.out, s.th.Error.Render(fmt.Sprintf("Could not preview: %v", err)))
		}
	case compare.KindProOnly:
		printHeader(s.out, s.th, "PRO file preview: "+e.Path)
		if err := diffview.Preview(s.out, filepath.Join(s.opts.ProDir, e.Path)); err != nil {
			fmt.Fprintln(s.out, s.th.Error.Render(fmt.Sprintf("Could not preview: %v", err)))
		}
	}
}

// ignoreEntry adds an ignore pattern to the DEV tree's repository. The DEV
// side is the one being developed, so only its ignore file is ever touched;
// when it is not a repository the action fails instead of falling back to
// the PRO tree.
func (s *compareSession) ignoreEntry(ctx context.Context, e compare.Entry) string {
	devRoot := s.svc.TopLevel(ctx, s.opts.DevDir)
	if devRoot == "" {
		return "DEV tree is not a git repository; cannot edit its " + ignoreFileLabel + "."
	}

	pattern, ok := selectPattern(ctx, s.lr, s.out, s.th, ignore.Candidates(e.Path))
	if !ok {
		return "Ignore cancelled."
	}

	added, err := ignore.Append(devRoot, pattern)
	if err != nil {
		return fmt.Sprintf("Failed to update %s: %v", ignoreFileLabel, err)
	}

	s.rescan(ctx)
	if !added {
		return fmt.Sprintf("Pattern %q already present.", pattern)
	}
	return fmt.Sprintf("Added %q to %s; rescanned.", pattern, ignoreFileLabel)
}
