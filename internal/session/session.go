// Package session drives the interactive prompt loops for the status review
// and directory compare workflows. Sessions read from an injected reader and
// write to an injected writer so tests can script them.
package session

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chmouel/reldiff/internal/theme"
)

const headerWidth = 60

// lineReader pumps lines from the input source through a channel so every
// blocking prompt can also observe context cancellation (interrupt).
type lineReader struct {
	lines chan string
}

func newLineReader(r io.Reader) *lineReader {
	lr := &lineReader{lines: make(chan string)}
	go func() {
		defer close(lr.lines)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			lr.lines <- scanner.Text()
		}
	}()
	return lr
}

// ReadLine blocks for the next input line. ok is false on interrupt or end
// of input; both are clean termination paths.
func (lr *lineReader) ReadLine(ctx context.Context) (line string, ok bool) {
	select {
	case <-ctx.Done():
		return "", false
	case line, open := <-lr.lines:
		if !open {
			return "", false
		}
		return strings.TrimSpace(line), true
	}
}

// clearScreen wipes the terminal before a full menu redraw so stale output
// never lingers above the list.
func clearScreen(w io.Writer) {
	fmt.Fprint(w, "\x1b[2J\x1b[H")
}

func printHeader(w io.Writer, th *theme.Theme, title string) {
	bar := strings.Repeat("=", headerWidth)
	fmt.Fprintf(w, "\n%s\n", bar)
	fmt.Fprintln(w, th.Header.Render("  "+title))
	fmt.Fprintln(w, bar)
}

func printDivider(w io.Writer) {
	fmt.Fprintln(w, strings.Repeat("-", headerWidth))
}

func printBanner(w io.Writer, th *theme.Theme, banner string) {
	if banner == "" {
		return
	}
	fmt.Fprintln(w, th.Error.Render(banner))
	printDivider(w)
}

func prompt(w io.Writer, th *theme.Theme) {
	fmt.Fprint(w, th.Accent.Render("\nWhat next? >> "))
}

// indexWidth returns the print width for 1-based indexes up to n.
func indexWidth(n int) int {
	return len(strconv.Itoa(n))
}

// parseIndex parses a bare numeric menu selection.
func parseIndex(input string) (int, error) {
	return strconv.Atoi(input)
}

// parseIgnoreArg splits an "i N" command, returning the 1-based index.
func parseIgnoreArg(input string) (int, bool) {
	rest := strings.TrimSpace(strings.TrimPrefix(input, "i"))
	if rest == "" {
		return 0, false
	}
	n, err := strconv.Atoi(rest)
	if err != nil {
		return 0, false
	}
	return n, true
}

// selectPattern presents the candidate ignore patterns as a numbered menu
// plus a cancel option, blocking until a valid choice or cancel.
func selectPattern(ctx context.Context, lr *lineReader, w io.Writer, th *theme.Theme, candidates []string) (string, bool) {
	fmt.Fprintln(w, "\nSelect a pattern to add to "+ignoreFileLabel+":")
	for i, c := range candidates {
		fmt.Fprintf(w, "  [%d] %s\n", i+1, c)
	}
	fmt.Fprintln(w, "  [c] cancel")

	for {
		fmt.Fprint(w, th.Accent.Render("Pattern >> "))
		line, ok := lr.ReadLine(ctx)
		if !ok {
			return "", false
		}
		if strings.EqualFold(line, "c") {
			return "", false
		}
		idx, err := strconv.Atoi(line)
		if err == nil && idx >= 1 && idx <= len(candidates) {
			return candidates[idx-1], true
		}
		fmt.Fprintln(w, th.Error.Render("Invalid choice."))
	}
}

const ignoreFileLabel = ".gitignore"
