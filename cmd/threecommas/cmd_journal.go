package main

import (
	"github.com/spf13/cobra"
)

func newJournalCmd(opts *rootOptions) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "journal",
		Short: "Show the most recent recorded calls",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := opts.serviceContext(cmd)
			if err != nil {
				return err
			}
			defer sc.Close()

			recs, err := sc.Journal.Recent(cmd.Context(), limit)
			if err != nil {
				return err
			}
			return sc.Sink.WriteRecords(recs)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "number of records")
	return cmd
}
