package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/flowcanvas/internal/server"
	"github.com/matzehuels/flowcanvas/pkg/datalist"
)

// serveCommand creates the serve command, the local dev backend.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr        string
		catalogPath string
		noCache     bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the flowcanvas dev backend",
		Long: `Run the flowcanvas dev backend.

Serves the HTTP API the editor's panels talk to: component listings,
data list storage, model listings, and stub execution and email
endpoints. Storage and cache backends are picked from the config file;
the defaults keep everything in local files.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = c.Config.Server.Addr
			}
			return c.runServe(cmd.Context(), addr, catalogPath, noCache)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "listen address (default from config)")
	cmd.Flags().StringVar(&catalogPath, "catalog", "", "component catalog file (TOML)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr, catalogPath string, noCache bool) error {
	registry, err := c.loadRegistry(catalogPath)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	lists, err := c.newListStore(ctx)
	if err != nil {
		return fmt.Errorf("open data lists: %w", err)
	}
	defer lists.Close(context.Background())

	cch := c.newCache(ctx, noCache)
	defer cch.Close()

	srv := server.New(registry, lists, cch, c.Logger)
	c.Logger.Info("serving", "addr", addr, "components", registry.Len())
	return srv.ListenAndServe(ctx, addr)
}

// newListStore builds the configured data list backend.
func (c *CLI) newListStore(ctx context.Context) (datalist.Store, error) {
	if c.Config.Data.Backend == "mongo" {
		return datalist.NewMongoStore(ctx, datalist.MongoConfig{
			URI:      c.Config.Data.MongoURI,
			Database: c.Config.Data.MongoDatabase,
		})
	}
	return datalist.NewFileStore(c.Config.Data.File)
}
