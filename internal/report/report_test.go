package report

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docnav/internal/nav"
)

func sampleResult(t *testing.T) *Result {
	t.Helper()
	cfg, err := nav.Build(nav.ThemeOptions{}, []nav.CategoryDecl{
		{Label: nav.Uncategorized, Refs: []string{"index"}},
		{Label: nav.Named("Operations"), Refs: nil},
		{Label: nav.Named("Tools"), Refs: []string{"api-stability-guarantees", "api-stability-guarantees", "shell.html"}},
	}, nav.ThemeOptions{})
	require.NoError(t, err)
	return NewResult("docnav.yaml", cfg, nav.Validate(cfg, nil), []string{"orphan.md"})
}

func TestTextFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewFormatter("text", false).Format(&buf, sampleResult(t)))
	out := buf.String()

	require.Contains(t, out, "Validating navigation in: docnav.yaml")
	require.Contains(t, out, "Operations\n  ✗ ERROR: category \"Operations\" has no entries and will not be rendered (empty-category)")
	require.Contains(t, out, "⚠ WARNING [#2]: \"api-stability-guarantees\" is listed more than once in \"Tools\" (duplicate-entry)")
	require.Contains(t, out, "ℹ orphan.md")
	require.Contains(t, out, "3 categories, 4 entries")
	require.Contains(t, out, "1 error\n")
	require.Contains(t, out, "1 warning\n")
	require.Contains(t, out, "1 info\n")
	require.Contains(t, out, "✗ Navigation has errors")
}

func TestTextFormatter_Clean(t *testing.T) {
	cfg, err := nav.Build(nav.ThemeOptions{}, []nav.CategoryDecl{{Label: nav.Named("Tools"), Refs: []string{"a"}}}, nav.ThemeOptions{})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, NewTextFormatter(false).Format(&buf, NewResult("docnav.yaml", cfg, nil, nil)))
	require.Contains(t, buf.String(), "1 category, 1 entry")
	require.Contains(t, buf.String(), "✓ Navigation is valid.")
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewFormatter("json", false).Format(&buf, sampleResult(t)))

	var out JSONOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	require.Equal(t, "docnav.yaml", out.Path)
	require.Equal(t, 3, out.Categories)
	require.Equal(t, 4, out.Entries)
	require.Equal(t, 1, out.ErrorCount)
	require.Equal(t, 1, out.WarningCount)
	require.Equal(t, 1, out.InfoCount)
	require.Len(t, out.Issues, 3)
	require.Equal(t, []string{"orphan.md"}, out.Unlisted)

	empty := out.Issues[0]
	require.Equal(t, nav.RuleEmptyCategory, empty.Rule)
	require.Nil(t, empty.Position)

	dup := out.Issues[1]
	require.Equal(t, "Tools", dup.Category)
	require.Equal(t, "api-stability-guarantees", dup.Ref)
	require.Equal(t, 1, *dup.Position)
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("JSON")
	require.NoError(t, err)
	require.Equal(t, FormatJSON, f)

	f, err = ParseFormat("")
	require.NoError(t, err)
	require.Equal(t, FormatText, f)

	_, err = ParseFormat("xml")
	require.Error(t, err)
}
