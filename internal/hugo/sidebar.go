// Package hugo renders a navigation configuration into the form the site
// renderer consumes: an ordered sidebar model, serialised as a Hugo menu
// configuration or as JSON.
package hugo

import (
	"fmt"
	"log/slog"
	"net/url"
	"path"
	"strings"

	derrors "git.home.luguber.info/inful/docnav/internal/foundation/errors"
	"git.home.luguber.info/inful/docnav/internal/logfields"
	"git.home.luguber.info/inful/docnav/internal/nav"
)

// Pages resolves references to content files and titles. content.Index
// implements it.
type Pages interface {
	Resolve(ref nav.ContentRef) (string, bool)
	Title(ref nav.ContentRef) (string, error)
}

// Sidebar is the rendered navigation, in display order.
type Sidebar struct {
	Theme    nav.ResolvedTheme `json:"theme"`
	Sections []Section         `json:"sections"`
}

// Section is one rendered category.
type Section struct {
	Label         string `json:"label,omitempty"`
	Uncategorized bool   `json:"uncategorized,omitempty"`
	Items         []Item `json:"items"`
}

// Item is one rendered sidebar entry.
type Item struct {
	Ref     string `json:"ref"`
	Title   string `json:"title"`
	URL     string `json:"url"`
	File    string `json:"file,omitempty"`
	EditURL string `json:"editURL,omitempty"`
}

// Render lays out cfg for display. Sections follow Config.Sidebar order, so the
// uncategorized entries come first and empty categories are dropped. Repeated
// entries within a section are rendered once. pages may be nil, in which case
// titles are derived from the references themselves.
func Render(cfg *nav.Config, pages Pages) (*Sidebar, error) {
	theme := cfg.Theme().Resolve()
	out := &Sidebar{Theme: theme}

	for _, cat := range cfg.Sidebar() {
		sec := Section{Label: cat.Label.Name(), Uncategorized: cat.Label.IsUncategorized()}
		seen := make(map[nav.ContentRef]bool, len(cat.Refs))
		for _, ref := range cat.Refs {
			if seen[ref] {
				continue
			}
			seen[ref] = true

			item, err := renderItem(theme, ref, pages)
			if err != nil {
				return nil, derrors.WrapError(err, derrors.CategoryRender, "failed to render sidebar entry").
					WithContext("category", cat.Label.String()).
					WithContext("ref", string(ref)).
					Build()
			}
			sec.Items = append(sec.Items, item)
		}
		out.Sections = append(out.Sections, sec)
	}

	slog.Debug("Rendered sidebar", logfields.Count(len(out.Sections)))
	return out, nil
}

func renderItem(theme nav.ResolvedTheme, ref nav.ContentRef, pages Pages) (Item, error) {
	item := Item{Ref: string(ref), URL: PageURL(theme.PathPrefix, ref), Title: ref.Slug()}
	if pages == nil {
		return item, nil
	}

	title, err := pages.Title(ref)
	if err != nil {
		return Item{}, err
	}
	item.Title = title

	if file, ok := pages.Resolve(ref); ok {
		item.File = file
		item.EditURL = EditURL(theme, file)
	}
	return item, nil
}

// PageURL returns the site path of a page below pathPrefix. Bare slugs get a
// trailing slash; references with an explicit extension are linked as-is.
func PageURL(prefix string, ref nav.ContentRef) string {
	if prefix == "" {
		prefix = "/"
	}
	p := path.Join("/", prefix, string(ref))
	if !ref.Qualified() && p != "/" {
		p += "/"
	}
	return p
}

// EditURL returns the GitHub edit link for a content file, or "" when the
// theme has no repository.
func EditURL(theme nav.ResolvedTheme, file string) string {
	if theme.GithubRepo == "" {
		return ""
	}
	p := path.Join(theme.ContentDir, file)
	u := url.URL{
		Scheme: "https",
		Host:   "github.com",
		Path:   fmt.Sprintf("/%s/edit/%s/%s", strings.Trim(theme.GithubRepo, "/"), theme.DefaultBranch, p),
	}
	return u.String()
}
