package nav

import (
	"path"
	"strings"
)

// Label names a sidebar category. The zero Label is not valid; use Named or
// Uncategorized.
type Label struct {
	name          string
	uncategorized bool
}

// Uncategorized is the reserved label whose entries render before every
// other category.
var Uncategorized = Label{uncategorized: true}

// Named returns a regular category label.
func Named(name string) Label { return Label{name: name} }

// IsUncategorized reports whether l is the reserved sentinel.
func (l Label) IsUncategorized() bool { return l.uncategorized }

// Name returns the display name; empty for the sentinel.
func (l Label) Name() string { return l.name }

func (l Label) String() string {
	if l.uncategorized {
		return "(uncategorized)"
	}
	return l.name
}

// ContentExtensions lists the file extensions a ContentRef may carry explicitly.
var ContentExtensions = []string{".md", ".mdx", ".markdown", ".html", ".htm"}

// ContentRef identifies one documentation page, either as a bare slug
// ("key-concepts") or with an explicit extension ("flow-testing.html").
type ContentRef string

// Ext returns the explicit content extension, or "" for a bare slug.
// Dots that are not a known content extension are part of the slug.
func (r ContentRef) Ext() string {
	ext := strings.ToLower(path.Ext(string(r)))
	for _, known := range ContentExtensions {
		if ext == known {
			return ext
		}
	}
	return ""
}

// Qualified reports whether the reference carries an explicit extension.
func (r ContentRef) Qualified() bool { return r.Ext() != "" }

// Slug returns the reference without its explicit extension.
func (r ContentRef) Slug() string {
	ext := r.Ext()
	return string(r)[:len(r)-len(ext)]
}

// CategoryDecl is one raw category declaration as read from configuration.
type CategoryDecl struct {
	Label Label
	Refs  []string
}

// SidebarCategory is a validated category: a label and its ordered entries.
type SidebarCategory struct {
	Label Label
	Refs  []ContentRef
}

func (c SidebarCategory) clone() SidebarCategory {
	refs := make([]ContentRef, len(c.Refs))
	copy(refs, c.Refs)
	return SidebarCategory{Label: c.Label, Refs: refs}
}

// Config is the immutable aggregate of theme options and sidebar categories.
type Config struct {
	theme      ThemeOptions
	categories []SidebarCategory
}

// Theme returns the merged theme options.
func (c *Config) Theme() ThemeOptions { return c.theme.clone() }

// Categories returns every category in declared order, including empty ones.
func (c *Config) Categories() []SidebarCategory {
	out := make([]SidebarCategory, len(c.categories))
	for i, cat := range c.categories {
		out[i] = cat.clone()
	}
	return out
}

// Category looks up a category by label.
func (c *Config) Category(label Label) (SidebarCategory, bool) {
	for _, cat := range c.categories {
		if cat.Label == label {
			return cat.clone(), true
		}
	}
	return SidebarCategory{}, false
}

// Sidebar returns categories in render order: the uncategorized entries first,
// then the remaining categories in declared order. Empty categories are omitted.
func (c *Config) Sidebar() []SidebarCategory {
	out := make([]SidebarCategory, 0, len(c.categories))
	for _, cat := range c.categories {
		if cat.Label.IsUncategorized() && len(cat.Refs) > 0 {
			out = append(out, cat.clone())
		}
	}
	for _, cat := range c.categories {
		if !cat.Label.IsUncategorized() && len(cat.Refs) > 0 {
			out = append(out, cat.clone())
		}
	}
	return out
}

// Refs returns every reference in render order.
func (c *Config) Refs() []ContentRef {
	var refs []ContentRef
	for _, cat := range c.Sidebar() {
		refs = append(refs, cat.Refs...)
	}
	return refs
}
