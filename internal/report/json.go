package report

import (
	"encoding/json"
	"io"
)

// JSONFormatter formats results as JSON.
type JSONFormatter struct{}

// NewJSONFormatter creates a JSON formatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// JSONOutput represents the JSON output structure.
type JSONOutput struct {
	Path         string      `json:"path"`
	Categories   int         `json:"categories"`
	Entries      int         `json:"entries"`
	ErrorCount   int         `json:"error_count"`
	WarningCount int         `json:"warning_count"`
	InfoCount    int         `json:"info_count"`
	Issues       []JSONIssue `json:"issues"`
	Unlisted     []string    `json:"unlisted,omitempty"`
}

// JSONIssue represents a single issue in JSON format.
type JSONIssue struct {
	Category      string `json:"category"`
	Uncategorized bool   `json:"uncategorized,omitempty"`
	Severity      string `json:"severity"`
	Rule          string `json:"rule"`
	Message       string `json:"message"`
	Ref           string `json:"ref,omitempty"`
	Position      *int   `json:"position,omitempty"`
}

// Format outputs results in JSON format.
func (f *JSONFormatter) Format(w io.Writer, result *Result) error {
	output := JSONOutput{
		Path:         result.ConfigPath,
		Categories:   result.Categories,
		Entries:      result.Entries,
		ErrorCount:   result.Issues.ErrorCount(),
		WarningCount: result.Issues.WarningCount(),
		InfoCount:    result.Issues.InfoCount(),
		Issues:       make([]JSONIssue, 0, len(result.Issues)),
		Unlisted:     result.Unlisted,
	}

	for _, issue := range result.Issues {
		ji := JSONIssue{
			Category:      issue.Category.Name(),
			Uncategorized: issue.Category.IsUncategorized(),
			Severity:      issue.Severity.String(),
			Rule:          issue.Rule,
			Message:       issue.Message,
			Ref:           string(issue.Ref),
		}
		if issue.Position >= 0 {
			pos := issue.Position
			ji.Position = &pos
		}
		output.Issues = append(output.Issues, ji)
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
