package commands

import (
	"io"
	"log/slog"
	"os"

	"git.home.luguber.info/inful/docnav/internal/check"
	derrors "git.home.luguber.info/inful/docnav/internal/foundation/errors"
	"git.home.luguber.info/inful/docnav/internal/hugo"
	"git.home.luguber.info/inful/docnav/internal/logfields"
)

// RenderCmd implements the 'render' command.
type RenderCmd struct {
	Format    string `short:"f" default:"hugo" help:"Output format (hugo, yaml or json)" enum:"hugo,yaml,json"`
	Output    string `short:"o" help:"Write to this file instead of stdout"`
	Strict    bool   `help:"Fail the build on empty categories"`
	NoContent bool   `name:"no-content" help:"Derive titles from slugs instead of reading content files"`
}

// Run builds the navigation and writes the rendered sidebar. Validation issues
// are logged; only a navigation that cannot be built stops rendering.
func (r *RenderCmd) Run(g *Global, root *CLI) error {
	format, err := hugo.ParseFormat(r.Format)
	if err != nil {
		return err
	}
	opts := root.checkOptions(r.Strict, !r.NoContent)
	opts.Logger = g.Logger
	res, err := check.Run(root.Config, opts)
	if err != nil {
		return err
	}

	var pages hugo.Pages
	if res.Index != nil {
		pages = res.Index
	}
	sidebar, err := hugo.Render(res.Config, pages)
	if err != nil {
		return err
	}

	var w io.Writer = g.Stdout
	if r.Output != "" {
		f, err := os.Create(r.Output)
		if err != nil {
			return derrors.WrapError(err, derrors.CategoryFileSystem, "failed to create output file").
				WithContext("path", r.Output).
				Build()
		}
		defer func() {
			if cerr := f.Close(); cerr != nil {
				slog.Warn("Failed to close output file", logfields.Path(r.Output), logfields.Error(cerr))
			}
		}()
		w = f
	}

	if err := sidebar.Write(w, format); err != nil {
		return err
	}
	if r.Output != "" {
		slog.Info("Sidebar written", logfields.Path(r.Output), logfields.Count(len(sidebar.Sections)))
	}
	return nil
}
