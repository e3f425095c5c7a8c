package update

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/blurdev/bpm/internal/core/installer"
	"github.com/blurdev/bpm/internal/core/manifest"
	"github.com/blurdev/bpm/internal/core/progress"
	"github.com/blurdev/bpm/internal/core/storepath"
)

// NewUpdateCommand creates a new cli.Command for the "update" command.
// Update always moves to the latest version; a version in the spec
// argument is ignored.
func NewUpdateCommand() *cli.Command {
	return &cli.Command{
		Name:      "update",
		Aliases:   []string{"u"},
		Usage:     "Reinstalls a package at the latest version",
		ArgsUsage: "<repo:package>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "quiet",
				Usage: "Suppress the progress bar",
			},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() < 1 {
				return cli.Exit("Error: Missing package spec argument. Usage: bpm update <repo:package>", 1)
			}
			repoName, pkgName, _, err := manifest.ParseSpec(c.Args().First())
			if err != nil {
				return cli.Exit(fmt.Sprintf("Error: %v", err), 1)
			}

			storeRoot, err := storepath.Resolve(c.String("store"))
			if err != nil {
				return cli.Exit(fmt.Sprintf("Error: %v", err), 1)
			}

			in := installer.New(storeRoot)
			if !c.Bool("quiet") {
				in.Progress = &progress.Bar{}
			}
			if err := in.Update(repoName, pkgName); err != nil {
				return cli.Exit(fmt.Sprintf("Error: Failed to update %s: %v", pkgName, err), 1)
			}
			return nil
		},
	}
}
