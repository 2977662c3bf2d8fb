package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/danomnoms/server/internal/api"
	logx "github.com/danomnoms/server/pkg/logger"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		a, err := buildApp(ctx, appCfg)
		if err != nil {
			return err
		}
		defer a.Close()

		var chat api.ChatAgent
		if a.agent != nil {
			chat = a.agent
		}

		srv := &http.Server{
			Addr:              appCfg.Server.Addr,
			Handler:           api.NewServer(a.restaurants, a.deliveries, chat).Router(),
			ReadHeaderTimeout: 10 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			logx.Info().Str("addr", srv.Addr).Bool("agent", chat != nil).Msg("HTTP server listening")
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
			close(errCh)
		}()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
		}

		logx.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(appCfg.Server.ShutdownTimeout)*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logx.Error().Err(err).Msg("graceful shutdown failed")
			return err
		}
		return nil
	},
}
