package commands

import (
	"context"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"git.home.luguber.info/inful/docnav/internal/check"
	"git.home.luguber.info/inful/docnav/internal/logfields"
	"git.home.luguber.info/inful/docnav/internal/report"
	"git.home.luguber.info/inful/docnav/internal/watch"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	Debounce  time.Duration `default:"500ms" help:"Quiet period before re-validating"`
	Strict    bool          `help:"Fail the build on empty categories"`
	NoContent bool          `name:"no-content" help:"Skip checking that entries resolve to content files"`
	Format    string        `short:"f" default:"text" help:"Output format (text or json)" enum:"text,json"`
	Ignore    []string      `help:"Glob patterns (relative to the config directory) that never trigger validation"`
}

// Run validates once, then again after every change until interrupted.
// Failed runs are reported and watching continues.
func (wc *WatchCmd) Run(g *Global, root *CLI) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return wc.run(ctx, g, root)
}

func (wc *WatchCmd) run(ctx context.Context, g *Global, root *CLI) error {
	format, err := report.ParseFormat(wc.Format)
	if err != nil {
		return err
	}
	formatter := report.NewFormatter(format, isColorSupported(g.Stdout))
	opts := root.checkOptions(wc.Strict, !wc.NoContent)
	opts.Logger = g.Logger

	// Falls back to the default layout when the first run cannot build.
	contentDir := filepath.Join(filepath.Dir(root.Config), "content")

	validate := func(context.Context) error {
		res, err := check.Run(root.Config, opts)
		if err != nil {
			return err
		}
		contentDir = check.ContentDir(res.Config)
		return formatter.Format(g.Stdout, report.NewResult(res.Site.Path(), res.Config, res.Issues, res.Unlisted))
	}

	if err := validate(ctx); err != nil {
		g.Logger.Error("Validation failed", logfields.Error(err))
	}

	watchOpts := []watch.Option{watch.WithDebounce(wc.Debounce), watch.WithIgnore(wc.Ignore...)}
	if !wc.NoContent {
		watchOpts = append(watchOpts, watch.WithContentDir(contentDir))
	}
	w, err := watch.New(root.Config, validate, watchOpts...)
	if err != nil {
		return err
	}
	return w.Run(ctx)
}
