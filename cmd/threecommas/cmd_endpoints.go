package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"threecommas/internal/infrastructure/exchange/threecommas"
)

func newEndpointsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "endpoints",
		Short: "List the route table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var routeOpts []threecommas.Option
			for name, path := range opts.cfg.Routes {
				routeOpts = append(routeOpts, threecommas.WithRoute(name, path))
			}
			newClient := threecommas.NewClient
			if opts.cfg.API.V2 {
				newClient = threecommas.NewClientV2
			}
			client := newClient(opts.cfg.API.BaseURL, "", "", routeOpts...)

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tMETHOD\tPATH")
			for _, ep := range client.Routes() {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", ep.Name, ep.Method, ep.Path)
			}
			return tw.Flush()
		},
	}
}
