package hugo

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	derrors "git.home.luguber.info/inful/docnav/internal/foundation/errors"
	"git.home.luguber.info/inful/docnav/internal/foundation/normalization"
)

// Format selects the serialisation of a rendered sidebar.
type Format string

const (
	FormatHugo Format = "hugo"
	FormatJSON Format = "json"
)

var formats = normalization.NewNormalizer("render format", map[string]Format{
	"hugo": FormatHugo,
	"yaml": FormatHugo,
	"json": FormatJSON,
}, FormatHugo)

// ParseFormat accepts a format name in any case; "yaml" is an alias of hugo
// and empty means hugo.
func ParseFormat(raw string) (Format, error) { return formats.Parse(raw) }

// MenuName is the Hugo menu the sidebar entries are written to.
const MenuName = "sidebar"

// weightStep spaces menu weights so entries can be inserted by hand.
const weightStep = 10

// MenuEntry is a Hugo menu item.
type MenuEntry struct {
	Identifier string `yaml:"identifier,omitempty"`
	Name       string `yaml:"name"`
	PageRef    string `yaml:"pageRef,omitempty"`
	URL        string `yaml:"url,omitempty"`
	Parent     string `yaml:"parent,omitempty"`
	Weight     int    `yaml:"weight"`
}

// HugoConfig is the site configuration fragment carrying the sidebar.
type HugoConfig struct {
	Title      string                 `yaml:"title,omitempty"`
	BaseURL    string                 `yaml:"baseURL,omitempty"`
	ContentDir string                 `yaml:"contentDir,omitempty"`
	Params     map[string]any         `yaml:"params,omitempty"`
	Menu       map[string][]MenuEntry `yaml:"menu"`
}

var identCaser = cases.Lower(language.English)

// SectionIdentifier returns the menu identifier of a category: its lowercased
// letters and digits joined by dashes. A label without any falls back to the
// section's 1-based position.
func SectionIdentifier(label string, position int) string {
	fields := strings.FieldsFunc(identCaser.String(label), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	if len(fields) == 0 {
		return fmt.Sprintf("section-%d", position)
	}
	return "section-" + strings.Join(fields, "-")
}

// uniqueIdentifier suffixes id with -2, -3, ... until it is not in used.
func uniqueIdentifier(id string, used map[string]bool) string {
	out := id
	for n := 2; used[out]; n++ {
		out = fmt.Sprintf("%s-%d", id, n)
	}
	used[out] = true
	return out
}

// HugoMenu converts the sidebar into a Hugo config fragment. Uncategorized
// entries become top-level menu items weighted ahead of every section.
func (s *Sidebar) HugoMenu() HugoConfig {
	cfg := HugoConfig{
		Title:      s.Theme.SiteName,
		BaseURL:    s.Theme.BaseURL,
		ContentDir: s.Theme.ContentDir,
		Params:     map[string]any{},
		Menu:       map[string][]MenuEntry{},
	}
	if s.Theme.Subtitle != "" {
		cfg.Params["subtitle"] = s.Theme.Subtitle
	}
	if s.Theme.Description != "" {
		cfg.Params["description"] = s.Theme.Description
	}
	if s.Theme.GithubRepo != "" {
		cfg.Params["githubRepo"] = s.Theme.GithubRepo
		cfg.Params["defaultBranch"] = s.Theme.DefaultBranch
	}

	var entries []MenuEntry
	used := make(map[string]bool, len(s.Sections))
	weight := 0
	for pos, sec := range s.Sections {
		parent := ""
		if !sec.Uncategorized {
			weight += weightStep
			parent = uniqueIdentifier(SectionIdentifier(sec.Label, pos+1), used)
			entries = append(entries, MenuEntry{Identifier: parent, Name: sec.Label, Weight: weight})
		}
		for i, item := range sec.Items {
			e := MenuEntry{Name: item.Title, Parent: parent}
			if parent == "" {
				weight += weightStep
				e.Weight = weight
			} else {
				e.Weight = (i + 1) * weightStep
			}
			if item.File != "" {
				e.PageRef = "/" + item.File
			} else {
				e.URL = item.URL
			}
			entries = append(entries, e)
		}
	}
	cfg.Menu[MenuName] = entries
	return cfg
}

// Write serialises the sidebar in the requested format.
func (s *Sidebar) Write(w io.Writer, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(s); err != nil {
			return derrors.WrapError(err, derrors.CategoryRender, "failed to encode sidebar").Build()
		}
		return nil
	case FormatHugo, "":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(s.HugoMenu()); err != nil {
			return derrors.WrapError(err, derrors.CategoryRender, "failed to encode hugo menu").Build()
		}
		return enc.Close()
	default:
		return derrors.ValidationError(fmt.Sprintf("unknown output format %q", format)).Build()
	}
}
