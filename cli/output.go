// ABOUTME: Terminal output helpers for CLI commands
// ABOUTME: Styles headings with lipgloss on a TTY and falls back to plain text elsewhere
package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("170"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// styled reports whether w is an interactive terminal.
func styled(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func render(w io.Writer, style lipgloss.Style, s string) string {
	if !styled(w) {
		return s
	}
	return style.Render(s)
}

func heading(w io.Writer, s string) {
	fmt.Fprintln(w, render(w, headingStyle, s))
}

func success(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, render(w, successStyle, "✓ "+fmt.Sprintf(format, args...)))
}

func field(w io.Writer, label, value string) {
	if value == "" {
		value = render(w, mutedStyle, "-")
	}
	fmt.Fprintf(w, "  %-22s %s\n", label+":", value)
}

// printTable writes tab-aligned rows. Styling stays out of the cells so the
// column widths line up.
func printTable(w io.Writer, headers []string, rows [][]string) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(headers, "\t"))
	for _, row := range rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	return tw.Flush()
}
