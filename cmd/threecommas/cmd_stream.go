package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"threecommas/internal/infrastructure/exchange/threecommas"
)

func newStreamCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stream <smart_trades|deals>",
		Short: "Follow deal or smart trade updates over the websocket",
		Long: `Subscribe to the signed websocket channel and print every update until
interrupted. When stream.metrics_addr is set, Prometheus metrics are served
on /metrics.

Examples:
  threecommas stream deals
  threecommas stream smart_trades`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ch, err := threecommas.ParseChannel(args[0])
			if err != nil {
				return err
			}
			sc, err := opts.serviceContext(cmd)
			if err != nil {
				return err
			}
			defer sc.Close()

			ctx := cmd.Context()
			if addr := opts.cfg.Stream.MetricsAddr; addr != "" {
				stop := serveMetrics(addr, sc.Metrics.Router())
				defer stop()
			}

			events, err := sc.NewStream().Subscribe(ctx, ch)
			if err != nil {
				return err
			}
			log.Info().Str("channel", string(ch)).Msg("stream started")

			n, err := sc.NewStreamService().Run(ctx, events)
			log.Info().Int("events", n).Msg("stream stopped")
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}
}

func serveMetrics(addr string, h http.Handler) func() {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		log.Info().Str("addr", addr).Msg("metrics listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("metrics server failed")
		}
	}()
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}
}
