package list

import (
	"fmt"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/blurdev/bpm/internal/core/catalog"
	"github.com/blurdev/bpm/internal/core/installer"
	"github.com/blurdev/bpm/internal/core/storepath"
)

// NewListCommand creates a new cli.Command for the "list" command.
func NewListCommand() *cli.Command {
	return &cli.Command{
		Name:    "list",
		Aliases: []string{"ls", "l"},
		Usage:   "Displays installed packages and their binaries",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "verify",
				Usage: "Cross-check recorded binaries against the catalog",
			},
		},
		Action: func(c *cli.Context) error {
			storeRoot, err := storepath.Resolve(c.String("store"))
			if err != nil {
				return cli.Exit(fmt.Sprintf("Error: %v", err), 1)
			}

			pkgs, err := installer.New(storeRoot).Installed()
			if err != nil {
				return cli.Exit(fmt.Sprintf("Error: Failed to read installed state: %v", err), 1)
			}
			if len(pkgs) == 0 {
				_, _ = fmt.Fprintln(c.App.Writer, "No packages installed.")
				return nil
			}

			headerColor := color.New(color.FgCyan, color.Bold).SprintFunc()
			nameColor := color.New(color.FgWhite, color.Bold).SprintFunc()
			versionColor := color.New(color.FgYellow).SprintFunc()
			repoColor := color.New(color.FgMagenta).SprintFunc()
			pathColor := color.New(color.FgHiBlack).SprintFunc()

			cat := catalog.New(storeRoot)
			verify := c.Bool("verify")

			_, _ = fmt.Fprintln(c.App.Writer, headerColor("Installed packages:"))
			for _, pkg := range pkgs {
				_, _ = fmt.Fprintf(c.App.Writer, "%s (%s) [%s]\n",
					nameColor(pkg.Name), versionColor(pkg.Version), repoColor(pkg.Repo))
				for _, bin := range pkg.Binaries {
					status := ""
					if verify {
						if _, ok, err := cat.Get(filepath.Base(bin)); err != nil {
							status = " (catalog error)"
						} else if !ok {
							status = " (not cataloged)"
						}
					}
					_, _ = fmt.Fprintf(c.App.Writer, "  %s%s\n", pathColor(bin), status)
				}
			}
			return nil
		},
	}
}
