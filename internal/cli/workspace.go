package cli

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/buildplan/buildplan/pkg/cache"
	"github.com/buildplan/buildplan/pkg/errors"
	"github.com/buildplan/buildplan/pkg/graph"
	"github.com/buildplan/buildplan/pkg/manifest"
	"github.com/buildplan/buildplan/pkg/observability"
	"github.com/buildplan/buildplan/pkg/scan"
)

// graphOpts holds the flags shared by every graph-consuming command.
type graphOpts struct {
	from    string // snapshot file to restore instead of scanning
	noCache bool   // bypass the snapshot cache
	refresh bool   // rescan even when a cached graph exists
}

// registerGraphFlags attaches the shared graph source flags to a command.
func registerGraphFlags(cmd *cobra.Command, opts *graphOpts) {
	cmd.Flags().StringVar(&opts.from, "from", "", "restore the graph from a snapshot file instead of scanning")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the snapshot cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "rescan even when a cached graph exists")
}

// loadGraph produces the dependency graph a command operates on: from a
// snapshot file when --from is given, otherwise by scanning the workspace.
func (c *CLI) loadGraph(ctx context.Context, opts *graphOpts) (*graph.DependencyGraph, error) {
	if opts.from != "" {
		g, err := graph.ReadSnapshotFile(opts.from)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeSnapshotNotFound, err, "restore snapshot %s", opts.from)
		}
		loggerFromContext(ctx).Debug("restored snapshot", "path", opts.from, "packages", g.NodeCount())
		return g, nil
	}
	return c.buildGraph(ctx, opts)
}

// buildGraph scans the workspace and builds the graph, consulting the
// snapshot cache keyed by the discovered manifest set.
func (c *CLI) buildGraph(ctx context.Context, opts *graphOpts) (*graph.DependencyGraph, error) {
	logger := loggerFromContext(ctx)
	root := c.Config.Workspace.Root

	paths, err := c.scanWorkspace(ctx, root)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, errors.New(errors.ErrCodeNotFound, "no %s manifests found under %s", c.manifestName(), root)
	}

	snapCache, err := c.newCache(ctx, opts.noCache)
	if err != nil {
		logger.Warn("cache unavailable, continuing without", "err", err)
		snapCache = cache.NewNullCache()
	}
	defer snapCache.Close()

	key := cache.GraphKey(root, paths)
	if !opts.refresh {
		if data, ok, err := snapCache.Get(ctx, key); err == nil && ok {
			observability.Cache().OnCacheHit(ctx, "graph")
			if g, err := graph.ReadSnapshot(bytes.NewReader(data)); err == nil {
				logger.Debug("graph loaded from cache", "packages", g.NodeCount())
				return g, nil
			}
			// A snapshot that no longer decodes is dropped and rebuilt.
			_ = snapCache.Delete(ctx, key)
		} else {
			observability.Cache().OnCacheMiss(ctx, "graph")
		}
	}

	observability.Build().OnBuildStart(ctx, len(paths))
	start := time.Now()
	g, err := graph.Build(paths, manifest.NewJSONParser(), logger)
	observability.Build().OnBuildComplete(ctx, nodeCount(g), edgeCount(g), time.Since(start), err)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "building dependency graph")
	}

	if data, err := graph.MarshalSnapshot(g); err == nil {
		if err := snapCache.Set(ctx, key, data, c.Config.Cache.TTL.Duration); err == nil {
			observability.Cache().OnCacheSet(ctx, "graph", len(data))
		}
	}

	return g, nil
}

// scanWorkspace discovers manifest paths under root using the configured
// exclusion patterns.
func (c *CLI) scanWorkspace(ctx context.Context, root string) ([]string, error) {
	logger := loggerFromContext(ctx)

	for _, pattern := range c.Config.Workspace.Exclude {
		if err := errors.ValidateExclusionPattern(pattern); err != nil {
			return nil, err
		}
	}

	scanner := &scan.Scanner{
		Manifest: c.manifestName(),
		Exclude:  c.Config.Workspace.Exclude,
		Logger:   logger,
	}

	observability.Build().OnScanStart(ctx, root)
	start := time.Now()
	paths, err := scanner.Scan(root)
	observability.Build().OnScanComplete(ctx, root, len(paths), time.Since(start), err)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeScanFailed, err, "scanning %s", root)
	}

	logger.Debug("workspace scanned", "root", root, "manifests", len(paths))
	return paths, nil
}

func (c *CLI) manifestName() string {
	if c.Config.Workspace.Manifest != "" {
		return c.Config.Workspace.Manifest
	}
	return manifest.Filename
}

// sortGraph wraps graph.Sort with observability and a friendly error.
func sortGraph(ctx context.Context, g *graph.DependencyGraph) ([]string, error) {
	start := time.Now()
	order, err := graph.Sort(g)
	observability.Build().OnSortComplete(ctx, g.NodeCount(), time.Since(start), err)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeCycle, err, "workspace has no valid build order")
	}
	loggerFromContext(ctx).Debug("sort completed", "packages", len(order))
	return order, nil
}

func nodeCount(g *graph.DependencyGraph) int {
	if g == nil {
		return 0
	}
	return g.NodeCount()
}

func edgeCount(g *graph.DependencyGraph) int {
	if g == nil {
		return 0
	}
	return g.EdgeCount()
}

// fmtCount pluralizes a package count for status lines.
func fmtCount(n int) string {
	if n == 1 {
		return "1 package"
	}
	return fmt.Sprintf("%d packages", n)
}
