package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/buildplan/buildplan/internal/server"
)

// serveCommand creates the serve command: expose the graph over HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		opts graphOpts
		addr string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the dependency graph over a read-only HTTP API",
		Long: `Serve builds the graph once and answers queries over HTTP: build order,
package details, transitive dependents, and structural validation.

The graph is a snapshot taken at startup; restart the server to pick up
workspace changes.

Examples:
  buildplan serve
  buildplan serve --addr :9090
  buildplan serve --from graph.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			g, err := c.loadGraph(ctx, &opts)
			if err != nil {
				return err
			}

			srv := &http.Server{
				Addr:              addr,
				Handler:           server.New(g, c.Logger).Handler(),
				ReadHeaderTimeout: 5 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				errCh <- srv.ListenAndServe()
			}()

			printInfo("Serving %s on http://%s", fmtCount(nodeCount(g)), addr)

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
					return err
				}
				return nil
			}
		},
	}

	registerGraphFlags(cmd, &opts)
	cmd.Flags().StringVar(&addr, "addr", "localhost:8080", "listen address")

	return cmd
}
