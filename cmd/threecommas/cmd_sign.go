package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"threecommas/internal/infrastructure/exchange/threecommas"
	"threecommas/internal/infrastructure/svc"
)

func newSignCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "sign <path> [query]",
		Short: "Print the request signature for path + query",
		Long: `Print the hex HMAC-SHA256 signature the client would send for a request.

Examples:
  threecommas sign '/public/api/ver1/deals/42/panic_sell?' 'deal_id=42'`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !opts.cfg.HasCredentials() {
				return svc.ErrNoCredentials
			}
			query := ""
			if len(args) == 2 {
				query = args[1]
			}
			creds := threecommas.NewCredentials(opts.cfg.API.APIKey, opts.cfg.API.APISecret)
			_, err := fmt.Fprintln(cmd.OutOrStdout(), creds.Sign(args[0], query))
			return err
		},
	}
}
