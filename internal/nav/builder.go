package nav

import (
	"strings"

	derrors "git.home.luguber.info/inful/docnav/internal/foundation/errors"
)

type buildOptions struct {
	strict bool
}

// BuildOption configures Build.
type BuildOption func(*buildOptions)

// Strict makes empty categories a build failure instead of a reported issue.
func Strict(strict bool) BuildOption {
	return func(o *buildOptions) { o.strict = strict }
}

// Build assembles a Config from base theme options, ordered category
// declarations and overrides. Fields set in overrides take precedence over
// base. Label names and references are trimmed of surrounding whitespace;
// duplicate labels and blank references are structural errors.
func Build(base ThemeOptions, categories []CategoryDecl, overrides ThemeOptions, opts ...BuildOption) (*Config, error) {
	var bo buildOptions
	for _, opt := range opts {
		opt(&bo)
	}

	cfg := &Config{
		theme:      base.Override(overrides),
		categories: make([]SidebarCategory, 0, len(categories)),
	}

	seen := make(map[Label]struct{}, len(categories))
	for i, decl := range categories {
		label := decl.Label
		if !label.IsUncategorized() {
			label = Named(strings.TrimSpace(label.Name()))
			if label.Name() == "" {
				return nil, derrors.ConfigError("sidebar category has an empty label").
					WithContext("position", i).
					Build()
			}
		}
		if _, dup := seen[label]; dup {
			return nil, derrors.ConfigError("duplicate sidebar category").
				WithContext("category", label.String()).
				Build()
		}
		seen[label] = struct{}{}

		if len(decl.Refs) == 0 && bo.strict {
			return nil, derrors.ConfigError("sidebar category has no entries").
				WithContext("category", label.String()).
				Build()
		}

		refs := make([]ContentRef, 0, len(decl.Refs))
		for j, raw := range decl.Refs {
			ref := strings.TrimSpace(raw)
			if ref == "" {
				return nil, derrors.ConfigError("sidebar entry is empty").
					WithContext("category", label.String()).
					WithContext("position", j).
					Build()
			}
			refs = append(refs, ContentRef(ref))
		}
		cfg.categories = append(cfg.categories, SidebarCategory{Label: label, Refs: refs})
	}
	return cfg, nil
}

// Merge combines configurations from several sources. Categories are appended
// in argument order without deduplication and later theme options override
// earlier ones. Validate reports any label that now appears twice.
func Merge(cfgs ...*Config) *Config {
	out := &Config{}
	for _, c := range cfgs {
		if c == nil {
			continue
		}
		out.theme = out.theme.Override(c.theme)
		for _, cat := range c.categories {
			out.categories = append(out.categories, cat.clone())
		}
	}
	return out
}

// WithDefaults returns a copy of c whose unset theme options are taken from
// defaults. Options already set in c are kept.
func (c *Config) WithDefaults(defaults ThemeOptions) *Config {
	out := &Config{theme: defaults.Override(c.theme)}
	for _, cat := range c.categories {
		out.categories = append(out.categories, cat.clone())
	}
	return out
}
