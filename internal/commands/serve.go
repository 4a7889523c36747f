package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/actual-tools/intesa2actual/internal/buildinfo"
	"github.com/actual-tools/intesa2actual/internal/web"
)

const shutdownTimeout = 30 * time.Second

func newServeCommand(root *rootOptions) *cobra.Command {
	var listen string
	flags := &convertFlags{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the web upload UI",
		Long: "Serve starts an HTTP server with a small upload page. Statements\n" +
			"posted to it come back converted for Actual Budget.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(root)
			if err != nil {
				return err
			}
			log := newLoggerFor(root, cfg)

			opts, err := flags.options(cmd, cfg)
			if err != nil {
				return err
			}

			addr := cfg.Listen
			if cmd.Flags().Changed("listen") {
				addr = listen
			}

			handler := web.NewHandler(opts, log)
			srv := web.NewServer(addr, handler.Routes())

			errCh := make(chan error, 1)
			go func() {
				log.Info().
					Str("addr", addr).
					Str("version", buildinfo.Version).
					Msg("Server listening")
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
			}()

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

			select {
			case err := <-errCh:
				return fmt.Errorf("server: %w", err)
			case sig := <-quit:
				log.Info().Str("signal", sig.String()).Msg("Shutting down")
			}

			ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(ctx); err != nil {
				return fmt.Errorf("shutdown: %w", err)
			}

			log.Info().Msg("Server stopped")
			return nil
		},
	}

	cmd.Flags().StringVar(&listen, "listen", "", "listen address, host:port (default from config)")
	flags.register(cmd)

	return cmd
}
