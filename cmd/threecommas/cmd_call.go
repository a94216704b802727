package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"threecommas/internal/infrastructure/exchange/threecommas"
)

func newCallCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "call <endpoint> [key=value...]",
		Short: "Call a named endpoint",
		Long: `Call one endpoint from the route table. Parameters are given as key=value;
repeating a key sends it multiple times. Path placeholders such as {deal_id}
are filled from the parameter of the same name.

Examples:
  threecommas call accounts
  threecommas call get_bots limit=10 scope=enabled
  threecommas call deal_update_tp deal_id=42 new_take_profit_percentage=1.5`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := threecommas.ParseParams(args[1:])
			if err != nil {
				return err
			}
			sc, err := opts.serviceContext(cmd)
			if err != nil {
				return err
			}
			defer sc.Close()

			name := args[0]
			res := sc.Client.Call(cmd.Context(), name, params)
			return writeResult(sc.Sink.WriteResult, name, res)
		},
	}
}

func newRawCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "raw <method> <path> [key=value...]",
		Short: "Sign and send a request to a literal path",
		Long: `Send a signed request to a path that is not in the route table.

Examples:
  threecommas raw GET /public/api/ver1/accounts/market_list?`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := threecommas.ParseParams(args[2:])
			if err != nil {
				return err
			}
			sc, err := opts.serviceContext(cmd)
			if err != nil {
				return err
			}
			defer sc.Close()

			method := strings.ToUpper(args[0])
			res := sc.Client.Do(cmd.Context(), method, args[1], params)
			return writeResult(sc.Sink.WriteResult, method+" "+args[1], res)
		},
	}
}

func writeResult(write func(string, int, []byte, error) error, name string, res threecommas.Result) error {
	if err := write(name, res.StatusCode, res.Payload, res.Err()); err != nil {
		return err
	}
	if res.Err() != nil {
		return fmt.Errorf("%s: %s", name, res.Kind)
	}
	return nil
}
