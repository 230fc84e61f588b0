package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"git.home.luguber.info/inful/docnav/internal/nav"
)

// TextFormatter formats results as human-readable text.
type TextFormatter struct {
	errorStyle   lipgloss.Style
	warningStyle lipgloss.Style
	infoStyle    lipgloss.Style
	labelStyle   lipgloss.Style
	hintStyle    lipgloss.Style
}

// NewTextFormatter creates a text formatter. Without color every style
// renders its input unchanged.
func NewTextFormatter(useColor bool) *TextFormatter {
	if !useColor {
		plain := lipgloss.NewStyle()
		return &TextFormatter{plain, plain, plain, plain, plain}
	}
	return &TextFormatter{
		errorStyle:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196")),
		warningStyle: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214")),
		infoStyle:    lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		labelStyle:   lipgloss.NewStyle().Bold(true),
		hintStyle:    lipgloss.NewStyle().Foreground(lipgloss.Color("242")).Italic(true),
	}
}

// Format outputs results in human-readable text format.
func (f *TextFormatter) Format(w io.Writer, result *Result) error {
	var b strings.Builder

	fmt.Fprintf(&b, "Validating navigation in: %s\n", result.ConfigPath)
	b.WriteString(strings.Repeat("━", 60))
	b.WriteString("\n\n")

	var current *nav.Label
	for _, issue := range result.Issues {
		if current == nil || *current != issue.Category {
			label := issue.Category
			current = &label
			b.WriteString(f.labelStyle.Render(label.String()))
			b.WriteString("\n")
		}
		f.formatIssue(&b, issue)
	}
	if len(result.Issues) > 0 {
		b.WriteString("\n")
	}

	if len(result.Unlisted) > 0 {
		b.WriteString(f.labelStyle.Render("Content not in the sidebar"))
		b.WriteString("\n")
		for _, file := range result.Unlisted {
			fmt.Fprintf(&b, "  %s %s\n", f.infoStyle.Render("ℹ"), file)
		}
		b.WriteString("\n")
	}

	b.WriteString(strings.Repeat("━", 60))
	b.WriteString("\nResults:\n")
	fmt.Fprintf(&b, "  %d categor%s, %d entr%s\n",
		result.Categories, plural(result.Categories, "y", "ies"),
		result.Entries, plural(result.Entries, "y", "ies"))
	if n := result.Issues.ErrorCount(); n > 0 {
		fmt.Fprintf(&b, "  %d error%s\n", n, pluralize(n))
	}
	if n := result.Issues.WarningCount(); n > 0 {
		fmt.Fprintf(&b, "  %d warning%s\n", n, pluralize(n))
	}
	if n := result.Issues.InfoCount(); n > 0 {
		fmt.Fprintf(&b, "  %d info\n", n)
	}
	b.WriteString("\n")
	b.WriteString(f.finalMessage(result))
	b.WriteString("\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func (f *TextFormatter) finalMessage(result *Result) string {
	switch {
	case result.Issues.HasErrors():
		return f.errorStyle.Render("✗ Navigation has errors; the sidebar will not render as declared.")
	case result.Issues.HasWarnings():
		return f.warningStyle.Render("⚠ Navigation has warnings. Consider fixing before publishing.")
	case len(result.Issues) > 0:
		return f.hintStyle.Render("ℹ All issues are informational.")
	default:
		return "✓ Navigation is valid."
	}
}

func (f *TextFormatter) formatIssue(b *strings.Builder, issue nav.Issue) {
	var icon string
	switch issue.Severity {
	case nav.SeverityError:
		icon = f.errorStyle.Render("✗")
	case nav.SeverityWarning:
		icon = f.warningStyle.Render("⚠")
	default:
		icon = f.infoStyle.Render("ℹ")
	}
	where := ""
	if issue.Position >= 0 {
		where = fmt.Sprintf(" [#%d]", issue.Position+1)
	}
	fmt.Fprintf(b, "  %s %s%s: %s %s\n", icon, issue.Severity, where, issue.Message, f.hintStyle.Render("("+issue.Rule+")"))
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
