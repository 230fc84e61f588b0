package commands

import (
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/docnav/internal/check"
	"git.home.luguber.info/inful/docnav/internal/version"
)

// Global carries state shared by every subcommand.
type Global struct {
	Logger *slog.Logger
	Stdout io.Writer
	Stderr io.Writer
}

// CLI definition & global flags - used by commands that need access to root config.
type CLI struct {
	Config  string           `short:"c" help:"Site configuration file path" default:"docnav.yaml"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`
	Plugin  string           `short:"p" help:"Theme plugin to read navigation from (default: first declaring sidebarCategories)"`
	NoGit   bool             `name:"no-git" help:"Do not default githubRepo and defaultBranch from the git repository"`

	Validate   ValidateCmd `cmd:"" help:"Build and validate the navigation, then report issues"`
	Render     RenderCmd   `cmd:"" help:"Render the sidebar as a Hugo menu or JSON"`
	Init       InitCmd     `cmd:"" help:"Initialize a new configuration file"`
	Watch      WatchCmd    `cmd:"" help:"Re-validate whenever the configuration or content changes"`
	VersionCmd VersionCmd  `cmd:"" name:"version" help:"Print version information"`

	global *Global
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	out := io.Writer(os.Stderr)
	if c.global != nil && c.global.Stderr != nil {
		out = c.global.Stderr
	}
	logger := slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	if c.global != nil {
		c.global.Logger = logger
	}
	return nil
}

// New builds the kong parser for docnav. Output of every command goes to
// global.Stdout; logs go to global.Stderr.
func New(global *Global, options ...kong.Option) (*kong.Kong, *CLI, error) {
	if global.Stdout == nil {
		global.Stdout = os.Stdout
	}
	if global.Stderr == nil {
		global.Stderr = os.Stderr
	}
	cli := &CLI{global: global}
	opts := append([]kong.Option{
		kong.Name("docnav"),
		kong.Description("Build, validate and render documentation site navigation."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
		kong.Writers(global.Stdout, global.Stderr),
		kong.Bind(global),
	}, options...)
	parser, err := kong.New(cli, opts...)
	if err != nil {
		return nil, nil, err
	}
	return parser, cli, nil
}

func (c *CLI) checkOptions(strict, checkContent bool) check.Options {
	return check.Options{
		Plugin:       c.Plugin,
		Strict:       strict,
		CheckContent: checkContent,
		DetectGit:    !c.NoGit,
	}
}

// isColorSupported checks if w is a terminal that accepts color output.
func isColorSupported(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	if fileInfo, err := f.Stat(); err != nil || (fileInfo.Mode()&os.ModeCharDevice) == 0 {
		return false
	}

	// Check NO_COLOR environment variable (https://no-color.org/)
	if os.Getenv("NO_COLOR") != "" {
		return false
	}

	term := os.Getenv("TERM")
	return term != "dumb" && term != ""
}
