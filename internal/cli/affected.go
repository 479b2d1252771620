package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/buildplan/buildplan/pkg/errors"
	"github.com/buildplan/buildplan/pkg/graph"
)

// affectedCommand creates the affected command: list transitive dependents.
func (c *CLI) affectedCommand() *cobra.Command {
	var opts graphOpts

	cmd := &cobra.Command{
		Use:   "affected <package>",
		Short: "List packages affected by a change to the given package",
		Long: `Affected lists every workspace package that depends on the given package,
directly or transitively. These are the packages that need rebuilding or
retesting when the package changes.

Examples:
  buildplan affected @acme/core
  buildplan affected utils --from graph.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			name := args[0]

			if err := errors.ValidatePackageName(name); err != nil {
				return err
			}

			g, err := c.loadGraph(ctx, &opts)
			if err != nil {
				return err
			}

			if _, ok := g.Node(name); !ok {
				return errors.New(errors.ErrCodePackageNotFound, "unknown package: %s", name)
			}

			dependents := graph.DependentsOf(name, g)
			if len(dependents) == 0 {
				printInfo("Nothing depends on %s", name)
				return nil
			}

			// Lexical order keeps output stable for scripting.
			for _, candidate := range g.Names() {
				if dependents[candidate] {
					fmt.Println(candidate)
				}
			}
			loggerFromContext(ctx).Debug("dependents resolved", "package", name, "count", len(dependents))
			return nil
		},
	}

	registerGraphFlags(cmd, &opts)
	return cmd
}
