// Package cli implements the flowcanvas command-line interface.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/flowcanvas/pkg/buildinfo"
	"github.com/matzehuels/flowcanvas/pkg/cache"
	"github.com/matzehuels/flowcanvas/pkg/config"
	"github.com/matzehuels/flowcanvas/pkg/panels"
	"github.com/matzehuels/flowcanvas/pkg/runner"
	"github.com/matzehuels/flowcanvas/pkg/workflow"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "flowcanvas"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config config.Config
}

// New creates a new CLI instance with a default logger and configuration
// loaded from the conventional path.
func New(w io.Writer, level log.Level) *CLI {
	cfg, err := config.Load(config.DefaultPath())
	c := &CLI{
		Logger: newLogger(w, level),
		Config: cfg,
	}
	if err != nil {
		c.Logger.Warn("config file ignored", "err", err)
	}
	return c
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "flowcanvas",
		Short:        "Flowcanvas is a terminal workflow builder",
		Long:         `Flowcanvas is a visual workflow builder for the terminal: compose automation workflows by placing components on a canvas, wiring their ports together, and exporting the result for execution.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.editCommand())
	root.AddCommand(c.componentsCommand())
	root.AddCommand(c.listsCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.previewCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Shared Construction
// =============================================================================

// loadRegistry builds the component registry, preferring an explicit
// catalog path, then the configured one, then the built-in palette.
func (c *CLI) loadRegistry(catalogPath string) (*workflow.Registry, error) {
	if catalogPath == "" {
		catalogPath = c.Config.Catalog.Path
	}
	if catalogPath != "" {
		return workflow.LoadCatalog(catalogPath)
	}
	return workflow.NewRegistry(workflow.DefaultCatalog())
}

// newCache builds the configured cache backend. Failures degrade to the
// null cache so commands keep working without one.
func (c *CLI) newCache(ctx context.Context, noCache bool) cache.Cache {
	if noCache {
		return cache.NewNullCache()
	}

	switch c.Config.Cache.Backend {
	case "redis":
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     c.Config.Cache.RedisAddr,
			Password: c.Config.Cache.RedisPassword,
			DB:       c.Config.Cache.RedisDB,
		})
		if err != nil {
			c.Logger.Warn("redis cache unavailable, continuing without cache", "err", err)
			return cache.NewNullCache()
		}
		return rc
	case "none":
		return cache.NewNullCache()
	default:
		dir := c.Config.Cache.Dir
		if dir == "" {
			dir = defaultCacheDir()
		}
		fc, err := cache.NewFileCache(dir)
		if err != nil {
			c.Logger.Warn("file cache unavailable, continuing without cache", "err", err)
			return cache.NewNullCache()
		}
		return fc
	}
}

// newBackendClient builds the shared client the panel commands use.
func (c *CLI) newBackendClient(ctx context.Context, noCache bool) *panels.Client {
	return panels.NewClient(c.Config.Backend.URL, c.newCache(ctx, noCache))
}

// newRunner picks the workflow runner: HTTP when an executor is
// configured, local logging otherwise.
func (c *CLI) newRunner() runner.Runner {
	if url := c.Config.Executor.URL; url != "" {
		return runner.NewHTTPRunner(url)
	}
	return runner.NewLogRunner(c.Logger)
}

// =============================================================================
// Paths
// =============================================================================

// defaultCacheDir returns the cache directory using the XDG standard
// (~/.cache/flowcanvas/).
func defaultCacheDir() string {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".cache", appName)
	}
	return filepath.Join(home, ".cache", appName)
}
