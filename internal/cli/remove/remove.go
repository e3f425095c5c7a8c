package remove

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/blurdev/bpm/internal/core/installer"
	"github.com/blurdev/bpm/internal/core/storepath"
)

// NewRemoveCommand creates a new cli.Command for the "remove" command.
func NewRemoveCommand() *cli.Command {
	return &cli.Command{
		Name:      "remove",
		Aliases:   []string{"r"},
		Usage:     "Removes an installed package and its binaries",
		ArgsUsage: "<package>",
		Action: func(c *cli.Context) error {
			if c.NArg() < 1 {
				return cli.Exit("Error: Missing package name argument. Usage: bpm remove <package>", 1)
			}
			pkgName := c.Args().First()

			storeRoot, err := storepath.Resolve(c.String("store"))
			if err != nil {
				return cli.Exit(fmt.Sprintf("Error: %v", err), 1)
			}

			if err := installer.New(storeRoot).Remove(pkgName); err != nil {
				return cli.Exit(fmt.Sprintf("Error: Failed to remove %s: %v", pkgName, err), 1)
			}
			return nil
		},
	}
}
