package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/busebalkan99/design-checklist-vercel/internal/api"
	"github.com/busebalkan99/design-checklist-vercel/internal/audit"
	"github.com/busebalkan99/design-checklist-vercel/internal/gate"
	"github.com/busebalkan99/design-checklist-vercel/internal/store"
	"github.com/busebalkan99/design-checklist-vercel/internal/verifier"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the checklist server",
	Long: `Serves GET /api/load and POST /api/save.
Without --config the server verifies tokens against Google's userinfo
endpoint and keeps records in memory.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := f.LoadServerConfig()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if addr, _ := cmd.Flags().GetString("addr"); cmd.Flags().Changed("addr") {
			cfg.Server.Addr = addr
		}

		sink, err := audit.Open(cfg.Audit)
		if err != nil {
			return fmt.Errorf("opening audit sink: %w", err)
		}
		defer func() {
			if err := sink.Close(); err != nil {
				log.Warn().Err(err).Msg("closing audit sink")
			}
		}()

		log.Info().Str("type", cfg.Verifier.Type).Msg("Initializing verifier...")
		v, err := verifier.Build(cmd.Context(), cfg.Verifier, sink)
		if err != nil {
			return fmt.Errorf("building verifier: %w", err)
		}

		log.Info().Str("type", cfg.Store.Type).Msg("Initializing record store...")
		records, err := store.Open(cmd.Context(), cfg.Store, sink)
		if err != nil {
			return fmt.Errorf("opening record store: %w", err)
		}
		defer func() {
			if err := records.Close(); err != nil {
				log.Warn().Err(err).Msg("closing record store")
			}
		}()

		// setup server
		srv := api.NewServer(gate.New(v, records, sink))

		server := &http.Server{
			Addr:    cfg.Server.Addr,
			Handler: srv.Routes(),
		}

		serveErr := make(chan error, 1)
		go func() {
			log.Info().Msgf("Starting server on %s...", cfg.Server.Addr)
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				serveErr <- err
			}
		}()

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		select {
		case <-quit:
		case err := <-serveErr:
			return fmt.Errorf("server crashed: %w", err)
		}
		log.Info().Msg("Shutting down server...")

		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}

		log.Info().Msg("Server exited")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", ":8080", "address to listen on, overrides server.addr of the config")
	f.bindConfigFlag(serveCmd.Flags())
}
