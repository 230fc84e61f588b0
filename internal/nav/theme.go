package nav

// Defaults applied by Resolve for options left unset.
const (
	DefaultContentDir    = "content"
	DefaultDefaultBranch = "main"
	DefaultPathPrefix    = "/"
)

// ThemeOptions holds the presentation settings shared by every page of a site.
// A nil field is unset and falls back to the renderer's default.
type ThemeOptions struct {
	SiteName      *string `yaml:"siteName,omitempty" json:"siteName,omitempty"`
	Subtitle      *string `yaml:"subtitle,omitempty" json:"subtitle,omitempty"`
	Description   *string `yaml:"description,omitempty" json:"description,omitempty"`
	GithubRepo    *string `yaml:"githubRepo,omitempty" json:"githubRepo,omitempty"`
	DefaultBranch *string `yaml:"defaultBranch,omitempty" json:"defaultBranch,omitempty"`
	BaseURL       *string `yaml:"baseURL,omitempty" json:"baseURL,omitempty"`
	Root          *string `yaml:"root,omitempty" json:"root,omitempty"`
	ContentDir    *string `yaml:"contentDir,omitempty" json:"contentDir,omitempty"`
	PathPrefix    *string `yaml:"pathPrefix,omitempty" json:"pathPrefix,omitempty"`
}

// Opt returns a pointer to v for populating ThemeOptions literals.
func Opt(v string) *string { return &v }

// Override returns o with every field set in over replacing the value in o.
// Fields are merged one by one; the returned value shares no pointers with
// either input.
func (o ThemeOptions) Override(over ThemeOptions) ThemeOptions {
	return ThemeOptions{}.apply(o).apply(over)
}

func (o ThemeOptions) clone() ThemeOptions { return ThemeOptions{}.apply(o) }

func (o ThemeOptions) apply(src ThemeOptions) ThemeOptions {
	pick(&o.SiteName, src.SiteName)
	pick(&o.Subtitle, src.Subtitle)
	pick(&o.Description, src.Description)
	pick(&o.GithubRepo, src.GithubRepo)
	pick(&o.DefaultBranch, src.DefaultBranch)
	pick(&o.BaseURL, src.BaseURL)
	pick(&o.Root, src.Root)
	pick(&o.ContentDir, src.ContentDir)
	pick(&o.PathPrefix, src.PathPrefix)
	return o
}

func pick(dst **string, src *string) {
	if src != nil {
		v := *src
		*dst = &v
	}
}

// ResolvedTheme is ThemeOptions with defaults filled in.
type ResolvedTheme struct {
	SiteName      string `json:"siteName,omitempty"`
	Subtitle      string `json:"subtitle,omitempty"`
	Description   string `json:"description,omitempty"`
	GithubRepo    string `json:"githubRepo,omitempty"`
	DefaultBranch string `json:"defaultBranch"`
	BaseURL       string `json:"baseURL,omitempty"`
	Root          string `json:"root,omitempty"`
	ContentDir    string `json:"contentDir"`
	PathPrefix    string `json:"pathPrefix"`
}

// Resolve fills unset options with the package defaults.
func (o ThemeOptions) Resolve() ResolvedTheme {
	return ResolvedTheme{
		SiteName:      deref(o.SiteName, ""),
		Subtitle:      deref(o.Subtitle, ""),
		Description:   deref(o.Description, ""),
		GithubRepo:    deref(o.GithubRepo, ""),
		DefaultBranch: deref(o.DefaultBranch, DefaultDefaultBranch),
		BaseURL:       deref(o.BaseURL, ""),
		Root:          deref(o.Root, ""),
		ContentDir:    deref(o.ContentDir, DefaultContentDir),
		PathPrefix:    deref(o.PathPrefix, DefaultPathPrefix),
	}
}

func deref(p *string, def string) string {
	if p == nil || *p == "" {
		return def
	}
	return *p
}
