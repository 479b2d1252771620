package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/buildplan/buildplan/pkg/graph"
	"github.com/buildplan/buildplan/pkg/store"
)

// scanCommand creates the scan command: discover manifests, build the graph,
// and optionally persist the snapshot.
func (c *CLI) scanCommand() *cobra.Command {
	var (
		opts    graphOpts
		exclude []string
		save    string
		push    bool
	)

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Discover workspace packages and build the dependency graph",
		Long: `Scan walks the workspace root for package manifests, builds the dependency
graph, and prints a summary. The graph can be written to a snapshot file with
--save or pushed to the configured snapshot store with --push.

Examples:
  buildplan scan
  buildplan scan --root ./monorepo --exclude '**/fixtures/**'
  buildplan scan --save graph.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if len(exclude) > 0 {
				c.Config.Workspace.Exclude = append(c.Config.Workspace.Exclude, exclude...)
			}

			prog := newProgress(loggerFromContext(ctx))
			g, err := c.buildGraph(ctx, &opts)
			if err != nil {
				return err
			}
			prog.done("Built dependency graph for %s", fmtCount(g.NodeCount()))

			printSuccess("Scanned %s", c.Config.Workspace.Root)
			printStats(g.NodeCount(), g.EdgeCount())
			for _, n := range g.Nodes() {
				deps := g.Dependencies(n.Name)
				if len(deps) == 0 {
					printDetail("%s@%s", n.Name, n.Version)
					continue
				}
				printDetail("%s@%s %s %s", n.Name, n.Version, iconArrow, strings.Join(deps, ", "))
			}

			if save != "" {
				if err := graph.WriteSnapshotFile(g, save); err != nil {
					return err
				}
				printFile(save)
			}

			if push {
				snapStore, err := c.newStore(ctx)
				if err != nil {
					return err
				}
				defer snapStore.Close(ctx)

				snap := store.NewSnapshot(c.Config.Workspace.Root, g)
				if err := snapStore.Save(ctx, snap); err != nil {
					return err
				}
				printInfo("Snapshot %s stored", snap.ID)
			}

			return nil
		},
	}

	registerGraphFlags(cmd, &opts)
	cmd.Flags().StringArrayVar(&exclude, "exclude", nil, "glob pattern to exclude (repeatable)")
	cmd.Flags().StringVar(&save, "save", "", "write the graph snapshot to a JSON file")
	cmd.Flags().BoolVar(&push, "push", false, "push the snapshot to the configured store")

	return cmd
}
