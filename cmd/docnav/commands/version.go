package commands

import (
	"fmt"

	"git.home.luguber.info/inful/docnav/internal/version"
)

// VersionCmd implements the 'version' command.
type VersionCmd struct{}

func (VersionCmd) Run(g *Global) error {
	_, err := fmt.Fprintln(g.Stdout, version.String())
	return err
}
