package main

import (
	"log"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/blurdev/bpm/internal/cli/install"
	"github.com/blurdev/bpm/internal/cli/list"
	"github.com/blurdev/bpm/internal/cli/remove"
	"github.com/blurdev/bpm/internal/cli/self"
	"github.com/blurdev/bpm/internal/cli/update"
)

func main() {
	app := &cli.App{
		Name:    "bpm",
		Usage:   "A local package manager with dependency resolution",
		Version: "v0.1.2",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "store",
				Usage:   "Path to the package store root",
				EnvVars: []string{"BPM_STORE"},
			},
		},
		Action: func(c *cli.Context) error {
			_ = cli.ShowAppHelp(c)
			return nil
		},
		Commands: []*cli.Command{
			install.NewInstallCommand(),
			remove.NewRemoveCommand(),
			update.NewUpdateCommand(),
			list.NewListCommand(),
			self.NewSelfCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
