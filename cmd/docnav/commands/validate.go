package commands

import (
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/docnav/internal/check"
	derrors "git.home.luguber.info/inful/docnav/internal/foundation/errors"
	"git.home.luguber.info/inful/docnav/internal/logfields"
	"git.home.luguber.info/inful/docnav/internal/metrics"
	"git.home.luguber.info/inful/docnav/internal/report"
)

// ValidateCmd implements the 'validate' command.
type ValidateCmd struct {
	Strict        bool   `help:"Fail the build on empty categories"`
	Format        string `short:"f" default:"text" help:"Output format (text or json)" enum:"text,json"`
	NoContent     bool   `name:"no-content" help:"Skip checking that entries resolve to content files"`
	MetricsFile   string `name:"metrics-file" help:"Write Prometheus textfile metrics to this path"`
	FailOnWarning bool   `name:"fail-on-warning" help:"Exit non-zero when warnings are reported"`
}

// Run executes the validate command. It exits 2 when errors are found and 1
// when only warnings are found and --fail-on-warning is set.
func (v *ValidateCmd) Run(g *Global, root *CLI) error {
	var rec metrics.Recorder = metrics.NoopRecorder{}
	var promRec *metrics.PrometheusRecorder
	if v.MetricsFile != "" {
		promRec = metrics.NewPrometheusRecorder(prometheus.NewRegistry())
		rec = promRec
	}

	opts := root.checkOptions(v.Strict, !v.NoContent)
	opts.Recorder = rec
	opts.Logger = g.Logger
	res, err := check.Run(root.Config, opts)

	if promRec != nil {
		if werr := promRec.WriteTextfile(v.MetricsFile); werr != nil {
			slog.Warn("Failed to write metrics", logfields.Path(v.MetricsFile), logfields.Error(werr))
		}
	}

	if err != nil {
		if derrors.IsStructural(err) {
			return derrors.WrapError(err, derrors.CategoryValidation, "navigation cannot be built").
				WithContext("path", root.Config).
				Build()
		}
		return err
	}

	format, err := report.ParseFormat(v.Format)
	if err != nil {
		return err
	}
	result := report.NewResult(res.Site.Path(), res.Config, res.Issues, res.Unlisted)
	formatter := report.NewFormatter(format, isColorSupported(g.Stdout))
	if err := formatter.Format(g.Stdout, result); err != nil {
		return derrors.WrapError(err, derrors.CategoryInternal, "formatting output").Build()
	}

	switch {
	case res.Issues.HasErrors():
		return derrors.ValidationError(fmt.Sprintf("navigation has %d error(s)", res.Issues.ErrorCount())).
			WithContext("path", res.Site.Path()).
			Build()
	case res.Issues.HasWarnings() && v.FailOnWarning:
		return derrors.ValidationError(fmt.Sprintf("navigation has %d warning(s)", res.Issues.WarningCount())).
			Warning().
			WithContext("path", res.Site.Path()).
			Build()
	}
	return nil
}
