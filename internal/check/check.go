// Package check runs the navigation pipeline shared by the CLI commands:
// load the site configuration, build the navigation, fill repository
// defaults, index content and validate.
package check

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"git.home.luguber.info/inful/docnav/internal/config"
	"git.home.luguber.info/inful/docnav/internal/content"
	derrors "git.home.luguber.info/inful/docnav/internal/foundation/errors"
	"git.home.luguber.info/inful/docnav/internal/gitinfo"
	"git.home.luguber.info/inful/docnav/internal/logfields"
	"git.home.luguber.info/inful/docnav/internal/metrics"
	"git.home.luguber.info/inful/docnav/internal/nav"
)

// Outcome labels recorded per run.
const (
	OutcomeClean      = "clean"
	OutcomeWarning    = "warning"
	OutcomeError      = "error"
	OutcomeStructural = "structural"
)

// Options controls a pipeline run.
type Options struct {
	Plugin       string // theme plugin to read; empty selects automatically
	Strict       bool   // empty categories fail the build
	CheckContent bool   // resolve entries against the content directory
	DetectGit    bool   // default githubRepo/defaultBranch from the repository
	Recorder     metrics.Recorder
	Logger       *slog.Logger
}

// Result is the output of a successful run.
type Result struct {
	Site     *config.SiteConfig
	Config   *nav.Config
	Index    *content.Index // nil unless CheckContent
	Issues   nav.Issues
	Unlisted []string
}

// ContentDir returns the absolute content directory of a navigation config.
func ContentDir(cfg *nav.Config) string {
	theme := cfg.Theme().Resolve()
	if filepath.IsAbs(theme.ContentDir) {
		return theme.ContentDir
	}
	return filepath.Join(theme.Root, theme.ContentDir)
}

// Run executes the pipeline. Structural problems abort with an error; every
// other issue is logged and returned in Result.Issues.
func Run(configPath string, opts Options) (*Result, error) {
	rec := opts.Recorder
	if rec == nil {
		rec = metrics.NoopRecorder{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	start := time.Now()
	defer func() { rec.ObserveValidationDuration(time.Since(start)) }()

	site, err := config.Load(configPath)
	if err != nil {
		recordFailure(rec, err)
		return nil, err
	}

	cfg, err := site.Navigation(opts.Plugin, nav.Strict(opts.Strict))
	if err != nil {
		recordFailure(rec, err)
		return nil, err
	}

	if opts.DetectGit {
		root := cfg.Theme().Resolve().Root
		info, gitErr := gitinfo.Inspect(root)
		if gitErr != nil {
			logger.Debug("Repository defaults unavailable", logfields.Path(root), logfields.Error(gitErr))
		} else {
			cfg = cfg.WithDefaults(info.ThemeDefaults())
		}
	}

	res := &Result{Site: site, Config: cfg}
	var checker nav.ContentChecker
	if opts.CheckContent {
		ix, err := content.NewIndex(ContentDir(cfg))
		if err != nil {
			recordFailure(rec, err)
			return nil, err
		}
		res.Index = ix
		checker = ix
	}

	res.Issues = nav.Validate(cfg, checker)
	if res.Index != nil {
		res.Unlisted = res.Index.Unlisted(cfg)
	}

	entries := 0
	for _, cat := range cfg.Categories() {
		entries += len(cat.Refs)
	}
	rec.SetSidebarSize(len(cfg.Categories()), entries)
	for _, issue := range res.Issues {
		rec.IncIssue(issue.Rule, issue.Severity.String())
		logIssue(logger, issue)
	}

	if fatal := res.Issues.Fatal(); fatal != nil {
		rec.IncBuildOutcome(OutcomeStructural)
		return nil, fatal
	}
	rec.IncBuildOutcome(outcome(res.Issues))

	logger.Info("Navigation validated",
		logfields.Path(site.Path()),
		logfields.Count(len(res.Issues)),
		logfields.DurationMS(float64(time.Since(start).Microseconds())/1000))
	return res, nil
}

func outcome(issues nav.Issues) string {
	switch {
	case issues.HasErrors():
		return OutcomeError
	case issues.HasWarnings():
		return OutcomeWarning
	default:
		return OutcomeClean
	}
}

func recordFailure(rec metrics.Recorder, err error) {
	if derrors.IsStructural(err) {
		rec.IncBuildOutcome(OutcomeStructural)
		return
	}
	rec.IncBuildOutcome(OutcomeError)
}

func logIssue(logger *slog.Logger, issue nav.Issue) {
	level := slog.LevelDebug
	switch issue.Severity {
	case nav.SeverityError:
		level = slog.LevelError
	case nav.SeverityWarning:
		level = slog.LevelWarn
	}
	attrs := []slog.Attr{
		logfields.Rule(issue.Rule),
		logfields.Category(issue.Category.String()),
	}
	if issue.Ref != "" {
		attrs = append(attrs, logfields.Ref(string(issue.Ref)))
	}
	logger.LogAttrs(context.Background(), level, issue.Message, attrs...)
}
