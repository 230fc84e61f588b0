// Package gitinfo reads repository facts the theme options can default to:
// the GitHub "owner/name" of the origin remote and the checked out branch.
package gitinfo

import (
	"errors"
	"net/url"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	derrors "git.home.luguber.info/inful/docnav/internal/foundation/errors"
	"git.home.luguber.info/inful/docnav/internal/nav"
)

// Info describes the repository containing a site root.
type Info struct {
	GithubRepo string // owner/name, empty when origin is not on GitHub
	Branch     string // empty on detached HEAD
}

// ThemeDefaults converts the detected facts into theme options.
func (i Info) ThemeDefaults() nav.ThemeOptions {
	var opts nav.ThemeOptions
	if i.GithubRepo != "" {
		opts.GithubRepo = nav.Opt(i.GithubRepo)
	}
	if i.Branch != "" {
		opts.DefaultBranch = nav.Opt(i.Branch)
	}
	return opts
}

// Inspect opens the repository containing dir, searching parent directories.
func Inspect(dir string) (Info, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return Info{}, derrors.NotFoundError("not inside a git repository").
				WithContext("path", dir).
				Build()
		}
		return Info{}, derrors.WrapError(err, derrors.CategoryGit, "failed to open repository").
			WithContext("path", dir).
			Build()
	}

	var info Info
	if head, err := repo.Reference(plumbing.HEAD, false); err == nil && head.Type() == plumbing.SymbolicReference {
		if target := head.Target(); target.IsBranch() {
			info.Branch = target.Short()
		}
	}

	remote, err := repo.Remote(git.DefaultRemoteName)
	if err != nil {
		if errors.Is(err, git.ErrRemoteNotFound) {
			return info, nil
		}
		return info, derrors.WrapError(err, derrors.CategoryGit, "failed to read origin remote").Build()
	}
	for _, u := range remote.Config().URLs {
		if slug, ok := GithubSlug(u); ok {
			info.GithubRepo = slug
			break
		}
	}
	return info, nil
}

// GithubSlug extracts "owner/name" from a GitHub remote URL in https, ssh or
// scp-like form.
func GithubSlug(remote string) (string, bool) {
	var p string
	switch {
	case strings.HasPrefix(remote, "git@github.com:"):
		p = strings.TrimPrefix(remote, "git@github.com:")
	default:
		u, err := url.Parse(remote)
		if err != nil || !strings.EqualFold(u.Hostname(), "github.com") {
			return "", false
		}
		p = u.Path
	}
	p = strings.TrimSuffix(strings.Trim(p, "/"), ".git")
	parts := strings.Split(p, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", false
	}
	return parts[0] + "/" + parts[1], true
}
