package main

import (
	"log/slog"
	"os"

	"git.home.luguber.info/inful/docnav/cmd/docnav/commands"
	derrors "git.home.luguber.info/inful/docnav/internal/foundation/errors"
)

func main() {
	global := &commands.Global{Stdout: os.Stdout, Stderr: os.Stderr}
	parser, cli, err := commands.New(global)
	if err != nil {
		panic(err)
	}
	ctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	err = ctx.Run()
	derrors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).HandleError(err)
}
