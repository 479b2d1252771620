// Package cli implements the buildplan command-line interface.
package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/buildplan/buildplan/pkg/buildinfo"
	"github.com/buildplan/buildplan/pkg/cache"
	"github.com/buildplan/buildplan/pkg/config"
	"github.com/buildplan/buildplan/pkg/store"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "buildplan"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// Execute
// =============================================================================

// Execute runs the buildplan CLI and returns an error if any command fails.
//
// The root command wires global flags (--verbose, --root, --config), loads
// the optional buildplan.toml, and attaches a leveled logger to the context
// so every subcommand can retrieve it via loggerFromContext.
func Execute(ctx context.Context) error {
	var (
		verbose    bool
		rootDir    string
		configPath string
	)

	c := &CLI{}

	root := &cobra.Command{
		Use:          appName,
		Short:        "buildplan answers ordering and impact questions over workspace packages",
		Long:         `buildplan discovers the packages of a multi-package workspace, models their declared dependencies as a directed graph, and answers ordering and impact questions: build order, affected packages, and structural consistency.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := log.InfoLevel
			if verbose {
				level = log.DebugLevel
			}
			c.Logger = newLogger(os.Stderr, level)
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))

			path := configPath
			if path == "" {
				path = filepath.Join(rootDir, config.Filename)
			}
			cfg, err := config.Load(path)
			if err != nil {
				return fmt.Errorf("load config %s: %w", path, err)
			}
			if cmd.Flags().Changed("root") || cfg.Workspace.Root == "" {
				cfg.Workspace.Root = rootDir
			}
			c.Config = cfg
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&rootDir, "root", ".", "workspace root directory")
	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default <root>/"+config.Filename+")")

	root.AddCommand(c.scanCommand())
	root.AddCommand(c.orderCommand())
	root.AddCommand(c.affectedCommand())
	root.AddCommand(c.checkCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root.ExecuteContext(ctx)
}

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands, populated by the root command's
// PersistentPreRunE before any subcommand runs.
type CLI struct {
	Logger *log.Logger
	Config config.Config
}

// =============================================================================
// Backend Factories
// =============================================================================

// newCache builds the snapshot cache from config: Redis when configured,
// otherwise a file cache under the user cache directory.
func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache || c.Config.Cache.Disabled {
		return cache.NewNullCache(), nil
	}
	if addr := c.Config.Cache.Redis; addr != "" {
		return cache.NewRedisCache(ctx, addr)
	}
	dir := c.Config.Cache.Dir
	if dir == "" {
		var err error
		if dir, err = cacheDir(); err != nil {
			return cache.NewNullCache(), nil
		}
	}
	return cache.NewFileCache(dir)
}

// newStore builds the snapshot store from config: MongoDB when configured,
// otherwise a file store under the user data directory.
func (c *CLI) newStore(ctx context.Context) (store.Store, error) {
	if uri := c.Config.Store.MongoURI; uri != "" {
		return store.NewMongoStore(ctx, uri, c.Config.Store.MongoDatabase)
	}
	dir := c.Config.Store.Dir
	if dir == "" {
		var err error
		if dir, err = snapshotDir(); err != nil {
			return nil, err
		}
	}
	return store.NewFileStore(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using the XDG standard
// (~/.cache/buildplan/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// snapshotDir returns the snapshot directory using the XDG standard
// (~/.local/share/buildplan/snapshots/).
func snapshotDir() (string, error) {
	if dataHome := os.Getenv("XDG_DATA_HOME"); dataHome != "" {
		return filepath.Join(dataHome, appName, "snapshots"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "share", appName, "snapshots"), nil
}
