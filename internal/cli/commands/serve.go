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

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/conduit-lang/armgen/internal/arm"
	"github.com/conduit-lang/armgen/internal/loader"
	"github.com/conduit-lang/armgen/internal/server"
)

const shutdownTimeout = 5 * time.Second

func newServeCommand(opts *globalOptions) *cobra.Command {
	var (
		flags projectFlags
		addr  string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve compiled documents over HTTP",
		Long: `Serve compiled documents over HTTP. The module file is reloaded and
compiled on every request.

Routes:
  GET /                          configured versions
  GET /{version}/swagger.json    document for any API version
  GET /{version}/swagger.yaml
  GET /{version}/README.md

Examples:
  armgen serve
  armgen serve --addr :9000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			if err := flags.apply(cmd, cfg); err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Serve.Addr = addr
			}

			logger, err := opts.newLogger(cfg.LogLevel)
			if err != nil {
				return err
			}
			defer logger.Sync()

			modulePath := cfg.ModulePath()
			modules := loader.NewCache()
			handler := server.New(func() (arm.Module, error) {
				m, hit, err := modules.Load(modulePath)
				if err == nil {
					logger.Debug("module loaded", zap.String("path", modulePath), zap.Bool("cached", hit))
				}
				return m, err
			}, cfg.Versions, logger)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			banner := color.New(color.FgCyan, color.Bold)
			if opts.noColor {
				banner.DisableColor()
			}
			banner.Fprintf(cmd.OutOrStdout(), "Serving %s on http://%s\n", modulePath, cfg.Serve.Addr)

			return listenAndServe(ctx, &http.Server{Addr: cfg.Serve.Addr, Handler: handler}, logger)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides config serve.addr)")

	return cmd
}

// listenAndServe runs srv until ctx is done, then shuts it down gracefully
func listenAndServe(ctx context.Context, srv *http.Server, logger *zap.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down", zap.String("addr", srv.Addr))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
