package nav

import (
	"testing"

	derrors "git.home.luguber.info/inful/docnav/internal/foundation/errors"
	"github.com/stretchr/testify/require"
)

func labels(cats []SidebarCategory) []Label {
	out := make([]Label, len(cats))
	for i, c := range cats {
		out[i] = c.Label
	}
	return out
}

type fakeContent map[ContentRef]bool

func (f fakeContent) Exists(ref ContentRef) bool { return f[ref] }

func TestBuild_PreservesDeclaredOrder(t *testing.T) {
	decls := []CategoryDecl{
		{Label: Named("Key Concepts"), Refs: []string{"key-concepts", "key-concepts-ledger", "key-concepts-states"}},
		{Label: Named("Development"), Refs: []string{"quickstart-index", "quickstart-deploy"}},
		{Label: Named("Networks"), Refs: []string{"network-map", "cipher-suites"}},
	}

	cfg, err := Build(ThemeOptions{}, decls, ThemeOptions{})
	require.NoError(t, err)
	require.Empty(t, Validate(cfg, nil))

	sidebar := cfg.Sidebar()
	require.Equal(t, []Label{Named("Key Concepts"), Named("Development"), Named("Networks")}, labels(sidebar))
	for i, decl := range decls {
		got := make([]string, len(sidebar[i].Refs))
		for j, r := range sidebar[i].Refs {
			got[j] = string(r)
		}
		require.Equal(t, decl.Refs, got)
	}
}

func TestBuild_UncategorizedRendersFirst(t *testing.T) {
	cfg, err := Build(ThemeOptions{}, []CategoryDecl{
		{Label: Named("Development"), Refs: []string{"quickstart-index"}},
		{Label: Uncategorized, Refs: []string{"index", "release-notes"}},
		{Label: Named("Tools"), Refs: []string{"tools-index"}},
	}, ThemeOptions{})
	require.NoError(t, err)

	require.Equal(t, []Label{Uncategorized, Named("Development"), Named("Tools")}, labels(cfg.Sidebar()))
	require.Equal(t, []Label{Named("Development"), Uncategorized, Named("Tools")}, labels(cfg.Categories()))
	require.Equal(t, []ContentRef{"index", "release-notes", "quickstart-index", "tools-index"}, cfg.Refs())
}

func TestBuild_UncategorizedDistinctFromNullName(t *testing.T) {
	cfg, err := Build(ThemeOptions{}, []CategoryDecl{
		{Label: Named("null"), Refs: []string{"a"}},
		{Label: Uncategorized, Refs: []string{"b"}},
	}, ThemeOptions{})
	require.NoError(t, err)
	require.Equal(t, []Label{Uncategorized, Named("null")}, labels(cfg.Sidebar()))
}

func TestBuild_DuplicateLabelIsStructural(t *testing.T) {
	_, err := Build(ThemeOptions{}, []CategoryDecl{
		{Label: Named("Tools"), Refs: []string{"a"}},
		{Label: Named("Tools"), Refs: []string{"b"}},
	}, ThemeOptions{})
	require.Error(t, err)
	require.True(t, derrors.IsStructural(err))

	ce, ok := derrors.AsClassified(err)
	require.True(t, ok)
	label, _ := ce.Context().GetString("category")
	require.Equal(t, "Tools", label)
}

func TestBuild_LabelsAreTrimmedBeforeDuplicateCheck(t *testing.T) {
	_, err := Build(ThemeOptions{}, []CategoryDecl{
		{Label: Named("Tools"), Refs: []string{"a"}},
		{Label: Named("Tools "), Refs: []string{"b"}},
	}, ThemeOptions{})
	require.True(t, derrors.IsStructural(err))

	cfg, err := Build(ThemeOptions{}, []CategoryDecl{{Label: Named("  Key Concepts\t"), Refs: []string{"a"}}}, ThemeOptions{})
	require.NoError(t, err)
	_, ok := cfg.Category(Named("Key Concepts"))
	require.True(t, ok)
}

func TestBuild_DuplicateUncategorizedIsStructural(t *testing.T) {
	_, err := Build(ThemeOptions{}, []CategoryDecl{
		{Label: Uncategorized, Refs: []string{"a"}},
		{Label: Uncategorized, Refs: []string{"b"}},
	}, ThemeOptions{})
	require.True(t, derrors.IsStructural(err))
}

func TestBuild_RejectsBlankEntriesAndLabels(t *testing.T) {
	_, err := Build(ThemeOptions{}, []CategoryDecl{{Label: Named("Tools"), Refs: []string{"a", "  "}}}, ThemeOptions{})
	require.True(t, derrors.IsStructural(err))

	_, err = Build(ThemeOptions{}, []CategoryDecl{{Label: Named(""), Refs: []string{"a"}}}, ThemeOptions{})
	require.True(t, derrors.IsStructural(err))
}

func TestBuild_EmptyCategory(t *testing.T) {
	decls := []CategoryDecl{
		{Label: Named("Operations"), Refs: nil},
		{Label: Named("Tools"), Refs: []string{"tools-index"}},
	}

	t.Run("permissive reports and excludes", func(t *testing.T) {
		cfg, err := Build(ThemeOptions{}, decls, ThemeOptions{})
		require.NoError(t, err)

		issues := Validate(cfg, nil)
		require.Len(t, issues, 1)
		require.Equal(t, RuleEmptyCategory, issues[0].Rule)
		require.Equal(t, SeverityError, issues[0].Severity)
		require.NoError(t, issues.Fatal())

		require.Equal(t, []Label{Named("Tools")}, labels(cfg.Sidebar()))
		require.Len(t, cfg.Categories(), 2)
	})

	t.Run("strict fails", func(t *testing.T) {
		_, err := Build(ThemeOptions{}, decls, ThemeOptions{}, Strict(true))
		require.True(t, derrors.IsStructural(err))
	})
}

func TestBuild_OverridesTakePrecedence(t *testing.T) {
	base := ThemeOptions{Subtitle: Opt("A"), Description: Opt("base description"), ContentDir: Opt("source")}
	over := ThemeOptions{Subtitle: Opt("B"), GithubRepo: Opt("corda/corda")}

	cfg, err := Build(base, nil, over)
	require.NoError(t, err)

	theme := cfg.Theme()
	require.Equal(t, "B", *theme.Subtitle)
	require.Equal(t, "base description", *theme.Description)
	require.Equal(t, "corda/corda", *theme.GithubRepo)
	require.Nil(t, theme.Root)

	resolved := theme.Resolve()
	require.Equal(t, "source", resolved.ContentDir)
	require.Equal(t, DefaultPathPrefix, resolved.PathPrefix)
	require.Equal(t, DefaultDefaultBranch, resolved.DefaultBranch)
}

func TestConfig_IsImmutable(t *testing.T) {
	base := ThemeOptions{Subtitle: Opt("A")}
	cfg, err := Build(base, []CategoryDecl{{Label: Named("Tools"), Refs: []string{"a", "b"}}}, ThemeOptions{})
	require.NoError(t, err)

	*base.Subtitle = "mutated"
	cats := cfg.Categories()
	cats[0].Refs[0] = "zzz"
	theme := cfg.Theme()
	*theme.Subtitle = "also mutated"

	require.Equal(t, "A", *cfg.Theme().Subtitle)
	tools, ok := cfg.Category(Named("Tools"))
	require.True(t, ok)
	require.Equal(t, ContentRef("a"), tools.Refs[0])
}

func TestValidate_DuplicateEntries(t *testing.T) {
	cfg, err := Build(ThemeOptions{}, []CategoryDecl{{
		Label: Named("Tools"),
		Refs: []string{
			"versioning-and-upgrades",
			"api-stability-guarantees",
			"api-stability-guarantees",
			"api-stability-guarantees",
			"versioning",
		},
	}}, ThemeOptions{})
	require.NoError(t, err)

	issues := Validate(cfg, nil)
	dups := issues.ByRule(RuleDuplicateEntry)
	require.Len(t, dups, 2)
	require.Equal(t, 2, issues.WarningCount())
	require.Equal(t, []int{2, 3}, []int{dups[0].Position, dups[1].Position})
	require.Equal(t, ContentRef("api-stability-guarantees"), dups[0].Ref)
}

func TestValidate_SameRefInTwoCategoriesIsNotDuplicate(t *testing.T) {
	cfg, err := Build(ThemeOptions{}, []CategoryDecl{
		{Label: Named("Tools"), Refs: []string{"serialization"}},
		{Label: Named("Corda API"), Refs: []string{"serialization"}},
	}, ThemeOptions{})
	require.NoError(t, err)
	require.Empty(t, Validate(cfg, nil))
}

func TestValidate_Extensions(t *testing.T) {
	cfg, err := Build(ThemeOptions{}, []CategoryDecl{
		{Label: Named("Tutorials"), Refs: []string{"flow-state-machines", "flow-testing.html"}},
		{Label: Named("Operations"), Refs: []string{"shell.html", "api-v1.2"}},
		{Label: Named("Tools"), Refs: []string{"flow-testing"}},
	}, ThemeOptions{})
	require.NoError(t, err)

	issues := Validate(cfg, nil)
	mixed := issues.ByRule(RuleMixedExtension)
	require.Len(t, mixed, 1)
	require.Equal(t, ContentRef("flow-testing.html"), mixed[0].Ref)
	require.Equal(t, SeverityWarning, mixed[0].Severity)

	explicit := issues.ByRule(RuleExplicitExtension)
	require.Len(t, explicit, 1)
	require.Equal(t, ContentRef("shell.html"), explicit[0].Ref)
	require.Equal(t, 1, issues.InfoCount())
}

func TestValidate_MissingContent(t *testing.T) {
	cfg, err := Build(ThemeOptions{}, []CategoryDecl{
		{Label: Named("Tools"), Refs: []string{"tools-index", "demobench", "demobench"}},
	}, ThemeOptions{})
	require.NoError(t, err)

	issues := Validate(cfg, fakeContent{"tools-index": true})
	missing := issues.ByRule(RuleMissingContent)
	require.Len(t, missing, 1)
	require.Equal(t, ContentRef("demobench"), missing[0].Ref)
	require.True(t, issues.HasErrors())
	require.NoError(t, issues.Fatal())
}

func TestMerge_DuplicateLabelsAreFatal(t *testing.T) {
	a, err := Build(ThemeOptions{Subtitle: Opt("A")}, []CategoryDecl{{Label: Named("Tools"), Refs: []string{"a"}}}, ThemeOptions{})
	require.NoError(t, err)
	b, err := Build(ThemeOptions{Subtitle: Opt("B")}, []CategoryDecl{
		{Label: Named("Networks"), Refs: []string{"b"}},
		{Label: Named("Tools"), Refs: []string{"c"}},
	}, ThemeOptions{})
	require.NoError(t, err)

	merged := Merge(a, nil, b)
	require.Equal(t, "B", *merged.Theme().Subtitle)
	require.Equal(t, []Label{Named("Tools"), Named("Networks"), Named("Tools")}, labels(merged.Categories()))

	issues := Validate(merged, nil)
	require.Len(t, issues.ByRule(RuleDuplicateCategory), 1)
	fatal := issues.Fatal()
	require.Error(t, fatal)
	require.True(t, derrors.IsStructural(fatal))
}

func TestContentRef(t *testing.T) {
	tests := []struct {
		ref       ContentRef
		slug, ext string
	}{
		{"key-concepts", "key-concepts", ""},
		{"flow-testing.html", "flow-testing", ".html"},
		{"guide.MD", "guide", ".md"},
		{"api-v1.2", "api-v1.2", ""},
	}
	for _, tt := range tests {
		t.Run(string(tt.ref), func(t *testing.T) {
			require.Equal(t, tt.slug, tt.ref.Slug())
			require.Equal(t, tt.ext, tt.ref.Ext())
			require.Equal(t, tt.ext != "", tt.ref.Qualified())
		})
	}
}

func TestSeverityString(t *testing.T) {
	require.Equal(t, "INFO", SeverityInfo.String())
	require.Equal(t, "WARNING", SeverityWarning.String())
	require.Equal(t, "ERROR", SeverityError.String())
	require.Equal(t, "UNKNOWN", Severity(9).String())
	require.Equal(t, "(uncategorized)", Uncategorized.String())
}

func TestConfig_WithDefaults(t *testing.T) {
	cfg, err := Build(ThemeOptions{}, []CategoryDecl{{Label: Named("Tools"), Refs: []string{"a"}}}, ThemeOptions{GithubRepo: Opt("corda/corda")})
	require.NoError(t, err)

	filled := cfg.WithDefaults(ThemeOptions{GithubRepo: Opt("other/repo"), DefaultBranch: Opt("release")})
	require.Equal(t, "corda/corda", *filled.Theme().GithubRepo)
	require.Equal(t, "release", *filled.Theme().DefaultBranch)
	require.Nil(t, cfg.Theme().DefaultBranch)
	require.Equal(t, cfg.Categories(), filled.Categories())
}
