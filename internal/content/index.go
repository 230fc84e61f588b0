// Package content resolves navigation entries to files in a site's content
// directory and extracts the titles the sidebar displays for them.
package content

import (
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	derrors "git.home.luguber.info/inful/docnav/internal/foundation/errors"
	"git.home.luguber.info/inful/docnav/internal/logfields"
	"git.home.luguber.info/inful/docnav/internal/nav"
)

// resolveOrder is the extension priority used for bare slugs.
var resolveOrder = []string{".md", ".mdx", ".markdown", ".html", ".htm"}

// Index maps slugs to content files below a content directory.
type Index struct {
	dir   string
	files map[string]string // slash path, with extension -> slash path
	slugs map[string][]string
}

// NewIndex walks dir and indexes every content file in it. Hidden files and
// directories are skipped.
func NewIndex(dir string) (*Index, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, derrors.NotFoundError("content directory not found").
				WithContext("path", dir).
				Build()
		}
		return nil, derrors.WrapError(err, derrors.CategoryFileSystem, "failed to stat content directory").
			WithContext("path", dir).
			Build()
	}
	if !info.IsDir() {
		return nil, derrors.ContentError("content path is not a directory").
			WithContext("path", dir).
			Build()
	}

	ix := &Index{dir: dir, files: map[string]string{}, slugs: map[string][]string{}}
	err = filepath.WalkDir(dir, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if strings.HasPrefix(d.Name(), ".") && p != dir {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		ix.add(filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, derrors.WrapError(err, derrors.CategoryFileSystem, "failed to index content directory").
			WithContext("path", dir).
			Build()
	}

	slog.Debug("Indexed content directory", logfields.Path(dir), logfields.Count(len(ix.files)))
	return ix, nil
}

func (ix *Index) add(rel string) {
	ext := strings.ToLower(path.Ext(rel))
	if !slices.Contains(resolveOrder, ext) {
		return
	}
	ix.files[rel] = rel
	slug := strings.TrimSuffix(rel, path.Ext(rel))
	ix.slugs[slug] = append(ix.slugs[slug], rel)
	if path.Base(slug) == "index" && path.Dir(slug) != "." {
		dirSlug := path.Dir(slug)
		ix.slugs[dirSlug] = append(ix.slugs[dirSlug], rel)
	}
}

// Dir returns the indexed content directory.
func (ix *Index) Dir() string { return ix.dir }

// Len returns the number of indexed content files.
func (ix *Index) Len() int { return len(ix.files) }

// Resolve returns the content file, relative to Dir, a reference points at.
// A bare slug matches its markup file in resolveOrder priority, or the index
// file of a directory with that name. A reference with an explicit extension
// matches that exact file and otherwise falls back to the slug's source file,
// since rendered .html names are produced from Markdown sources.
func (ix *Index) Resolve(ref nav.ContentRef) (string, bool) {
	r := strings.TrimPrefix(string(ref), "/")
	if ref.Qualified() {
		if f, ok := ix.files[r]; ok {
			return f, true
		}
		r = strings.TrimPrefix(ref.Slug(), "/")
	}
	candidates := ix.slugs[r]
	if len(candidates) == 0 {
		return "", false
	}
	for _, ext := range resolveOrder {
		for _, c := range candidates {
			if strings.EqualFold(path.Ext(c), ext) && strings.TrimSuffix(c, path.Ext(c)) == r {
				return c, true
			}
		}
	}
	for _, ext := range resolveOrder {
		for _, c := range candidates {
			if strings.EqualFold(path.Ext(c), ext) {
				return c, true
			}
		}
	}
	return candidates[0], true
}

// Exists implements nav.ContentChecker.
func (ix *Index) Exists(ref nav.ContentRef) bool {
	_, ok := ix.Resolve(ref)
	return ok
}

// Unlisted returns the content files no sidebar entry resolves to, sorted.
func (ix *Index) Unlisted(cfg *nav.Config) []string {
	used := make(map[string]bool)
	for _, cat := range cfg.Categories() {
		for _, ref := range cat.Refs {
			if f, ok := ix.Resolve(ref); ok {
				used[f] = true
			}
		}
	}
	var out []string
	for f := range ix.files {
		if !used[f] {
			out = append(out, f)
		}
	}
	slices.Sort(out)
	return out
}
