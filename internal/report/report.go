// Package report presents navigation validation results to operators.
package report

import (
	"io"

	"git.home.luguber.info/inful/docnav/internal/foundation/normalization"
	"git.home.luguber.info/inful/docnav/internal/nav"
)

// Format selects how a Result is printed.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

var formats = normalization.NewNormalizer("report format", map[string]Format{
	"text": FormatText,
	"json": FormatJSON,
}, FormatText)

// ParseFormat accepts a format name in any case; empty means text.
func ParseFormat(raw string) (Format, error) { return formats.Parse(raw) }

// Result is everything a validation run found.
type Result struct {
	ConfigPath string
	Categories int
	Entries    int
	Issues     nav.Issues
	// Unlisted holds content files no sidebar entry points at.
	Unlisted []string
}

// NewResult summarises cfg and its issues.
func NewResult(configPath string, cfg *nav.Config, issues nav.Issues, unlisted []string) *Result {
	r := &Result{ConfigPath: configPath, Issues: issues, Unlisted: unlisted}
	for _, cat := range cfg.Categories() {
		r.Categories++
		r.Entries += len(cat.Refs)
	}
	return r
}

// Formatter formats validation results for output.
type Formatter interface {
	Format(w io.Writer, result *Result) error
}

// NewFormatter creates the appropriate formatter for format.
func NewFormatter(format Format, useColor bool) Formatter {
	switch format {
	case FormatJSON:
		return NewJSONFormatter()
	default:
		return NewTextFormatter(useColor)
	}
}

// pluralize returns "s" if count != 1, otherwise empty string.
func pluralize(count int) string {
	if count == 1 {
		return ""
	}
	return "s"
}
