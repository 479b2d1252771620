package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// orderCommand creates the order command: print the topological build order.
func (c *CLI) orderCommand() *cobra.Command {
	var opts graphOpts

	cmd := &cobra.Command{
		Use:   "order",
		Short: "Print the build order (dependencies before dependents)",
		Long: `Order computes a topological ordering of the workspace packages so that
every package appears after all of its workspace-local dependencies. The
command fails when the dependency graph contains a cycle.

Examples:
  buildplan order
  buildplan order --from graph.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			g, err := c.loadGraph(ctx, &opts)
			if err != nil {
				return err
			}

			order, err := sortGraph(ctx, g)
			if err != nil {
				return err
			}

			for i, name := range order {
				fmt.Printf("%3d  %s\n", i+1, name)
			}
			return nil
		},
	}

	registerGraphFlags(cmd, &opts)
	return cmd
}
