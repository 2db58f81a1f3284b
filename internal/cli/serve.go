package cli

import (
	"github.com/spf13/cobra"

	"github.com/TheJP/factorio-blueprint/pkg/server"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string
	var noCache, noLibrary bool
	var maxCells int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		Long: `Serve the HTTP API.

The server decodes, re-encodes, renders and generates blueprints, and exposes
the library under /v1/library unless --no-library is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if !cmd.Flags().Changed("addr") && c.config.ListenAddr != "" {
				addr = c.config.ListenAddr
			}

			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			opts := server.Options{Logger: c.Logger, MaxCells: maxCells}
			if !noLibrary {
				lib, err := c.openLibrary(ctx)
				if err != nil {
					return err
				}
				defer lib.Close()
				opts.Library = lib
			}

			return server.New(runner, opts).ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", defaultListenAddr, "listen address")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&noLibrary, "no-library", false, "disable the library endpoints")
	cmd.Flags().IntVar(&maxCells, "max-cells", server.DefaultMaxCells, "largest memory array a request may generate")

	return cmd
}
