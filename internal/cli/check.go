package cli

import (
	"github.com/spf13/cobra"

	"github.com/buildplan/buildplan/pkg/errors"
	"github.com/buildplan/buildplan/pkg/graph"
)

// checkCommand creates the check command: structural validation.
func (c *CLI) checkCommand() *cobra.Command {
	var opts graphOpts

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate the dependency graph structure",
		Long: `Check verifies that every dependency edge points at an existing package and
that the graph is acyclic. All findings are reported; the command exits
non-zero when the graph is invalid.

Examples:
  buildplan check
  buildplan check --from graph.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := c.loadGraph(cmd.Context(), &opts)
			if err != nil {
				return err
			}

			report := graph.Validate(g)
			if report.Valid {
				printSuccess("Graph is consistent")
				printStats(g.NodeCount(), g.EdgeCount())
				return nil
			}

			for _, msg := range report.Errors {
				printError("%s", msg)
			}
			return errors.New(errors.ErrCodeInvalidInput, "graph validation failed with %d error(s)", len(report.Errors))
		},
	}

	registerGraphFlags(cmd, &opts)
	return cmd
}
