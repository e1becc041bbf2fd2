package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/pterm/pterm"

	"github.com/teranos/classgen/errors"
	"github.com/teranos/classgen/generate"
)

// Report prints one line per module followed by a tally
func Report(w io.Writer, s generate.Summary) {
	for _, r := range s.Results {
		fmt.Fprintf(w, "  %s %s %s\n", statusMark(r.Status), pterm.White(r.Output), pterm.Gray(classCount(len(r.Classes))))
	}

	var parts []string
	for _, st := range []generate.Status{
		generate.StatusWritten, generate.StatusUnchanged,
		generate.StatusUpToDate, generate.StatusStale, generate.StatusMissing,
	} {
		if n := s.Count(st); n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, strings.ReplaceAll(string(st), "_", " ")))
		}
	}
	if len(parts) == 0 {
		fmt.Fprintln(w, pterm.Yellow("No descriptions found"))
		return
	}
	line := strings.Join(parts, ", ")
	if s.Formatter != "" {
		line += pterm.Gray(" (formatted with " + s.Formatter + ")")
	}
	fmt.Fprintln(w, line)
}

func statusMark(st generate.Status) string {
	label := fmt.Sprintf("%-10s", strings.ReplaceAll(string(st), "_", " "))
	switch st {
	case generate.StatusWritten:
		return pterm.LightGreen("✓ " + label)
	case generate.StatusUnchanged, generate.StatusUpToDate:
		return pterm.Gray("= " + label)
	case generate.StatusStale:
		return pterm.Yellow("✗ " + label)
	default:
		return pterm.Red("✗ " + label)
	}
}

func classCount(n int) string {
	if n == 1 {
		return "(1 class)"
	}
	return fmt.Sprintf("(%d classes)", n)
}

// Error prints err with any hints attached to it
func Error(w io.Writer, err error) {
	fmt.Fprintf(w, "%s %v\n", pterm.Red("Error:"), err)
	for _, hint := range errors.GetAllHints(err) {
		fmt.Fprintf(w, "%s %s\n", pterm.LightCyan("Hint:"), hint)
	}
}
