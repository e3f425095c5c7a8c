package install

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/blurdev/bpm/internal/core/installer"
	"github.com/blurdev/bpm/internal/core/manifest"
	"github.com/blurdev/bpm/internal/core/progress"
	"github.com/blurdev/bpm/internal/core/storepath"
)

// NewInstallCommand creates a new cli.Command for the "install" command.
func NewInstallCommand() *cli.Command {
	return &cli.Command{
		Name:      "install",
		Aliases:   []string{"i"},
		Usage:     "Installs a package and its dependencies into the store",
		ArgsUsage: "<repo:package[:version]>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "quiet",
				Usage: "Suppress the progress bar",
			},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() < 1 {
				return cli.Exit("Error: Missing package spec argument. Usage: bpm install <repo:package[:version]>", 1)
			}
			repoName, pkgName, version, err := manifest.ParseSpec(c.Args().First())
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
			if err := in.Install(repoName, pkgName, version); err != nil {
				return cli.Exit(fmt.Sprintf("Error: Failed to install %s: %v", pkgName, err), 1)
			}
			return nil
		},
	}
}
