package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thesyncim/colorcheck/cmd/colorconv/server"
)

func newServeCmd(a *app) *cobra.Command {
	cfg := server.DefaultConfig()
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the converter application locally",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.Addr = fmt.Sprintf(":%d", port)
			cfg.Logger = a.logger.Named("server")
			return server.Serve(cmd.Context(), cfg, func(url string) {
				fmt.Fprintf(cmd.OutOrStdout(), "Serving on %s\n", url)
			})
		},
	}

	f := cmd.Flags()
	f.IntVar(&port, "port", 3000, "port to listen on (0 picks a free one)")
	f.DurationVar(&cfg.RenderDelay, "render-delay", 0, "delay before the page renders a result")
	f.BoolVar(&cfg.LegacyIDs, "legacy-ids", false, "serve the older markup with *Swatch ids and id-less buttons")
	return cmd
}
