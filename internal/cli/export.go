package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/buildplan/buildplan/pkg/errors"
	"github.com/buildplan/buildplan/pkg/graph"
	"github.com/buildplan/buildplan/pkg/render"
)

// Export formats.
const (
	FormatJSON = "json"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
)

// exportCommand creates the export command: write the graph as JSON, DOT, or SVG.
func (c *CLI) exportCommand() *cobra.Command {
	var (
		opts     graphOpts
		format   string
		output   string
		detailed bool
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the dependency graph as JSON, DOT, or SVG",
		Long: `Export writes the dependency graph in a chosen format: the JSON snapshot
format (restorable with --from), Graphviz DOT, or a rendered SVG diagram.

Examples:
  buildplan export --format json -o graph.json
  buildplan export --format dot
  buildplan export --format svg -o graph.svg --detailed`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			g, err := c.loadGraph(ctx, &opts)
			if err != nil {
				return err
			}

			var data []byte
			switch format {
			case FormatJSON:
				if data, err = graph.MarshalSnapshot(g); err != nil {
					return err
				}
			case FormatDOT:
				data = []byte(render.ToDOT(g, render.Options{Detailed: detailed}))
			case FormatSVG:
				dot := render.ToDOT(g, render.Options{Detailed: detailed})
				sp := newSpinner(ctx, "Rendering SVG...")
				sp.Start()
				data, err = render.RenderSVG(ctx, dot)
				sp.Stop()
				if err != nil {
					return err
				}
			default:
				return errors.New(errors.ErrCodeInvalidFormat, "unsupported format: %s (want %s, %s, or %s)", format, FormatJSON, FormatDOT, FormatSVG)
			}

			if output == "" {
				fmt.Print(string(data))
				return nil
			}
			if err := os.WriteFile(output, data, 0644); err != nil {
				return err
			}
			printFile(output)
			return nil
		},
	}

	registerGraphFlags(cmd, &opts)
	cmd.Flags().StringVarP(&format, "format", "f", FormatJSON, "output format: json, dot, or svg")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "include version and location in node labels")

	return cmd
}
