package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/rojifi/rojifi-docs/internal/buildinfo"
	"github.com/rojifi/rojifi-docs/internal/httpapi"
	"github.com/rojifi/rojifi-docs/tools"
)

const readHeaderTimeout = 5 * time.Second

func newServeCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API, with the MCP endpoint mounted alongside",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.serve(ctx)
		},
	}
}

func (a *app) newHTTPServer() *http.Server {
	var opts []httpapi.Option
	if a.cfg.MCP.Enabled {
		mcpServer := tools.NewServer(a.resolver, a.runner)
		opts = append(opts, httpapi.WithMCP(a.cfg.MCP.Path,
			server.NewStreamableHTTPServer(mcpServer, server.WithEndpointPath(a.cfg.MCP.Path))))
	}

	api := httpapi.NewServer(a.resolver, a.runner, a.logger, opts...)

	return &http.Server{
		Addr:              a.cfg.HTTP.Addr,
		Handler:           api.Handler(),
		ReadTimeout:       a.cfg.HTTP.ReadTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
		WriteTimeout:      a.cfg.HTTP.WriteTimeout,
	}
}

// serve runs the HTTP server until ctx is done, then drains it within the
// configured shutdown timeout.
func (a *app) serve(ctx context.Context) error {
	srv := a.newHTTPServer()

	a.logger.Info("Starting rojifi-docs server",
		slog.String("version", buildinfo.Version),
		slog.String("commit", buildinfo.Commit),
		slog.String("built_at", buildinfo.Date),
		slog.String("addr", srv.Addr),
		slog.Bool("dev_mode", a.cfg.Docs.DevMode()),
		slog.Bool("mcp_enabled", a.cfg.MCP.Enabled),
		slog.String("mcp_path", a.cfg.MCP.Path),
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		a.logger.Info("Shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gctx), a.cfg.HTTP.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		a.logger.Error("Server error", slog.String("error", err.Error()))
		return err
	}

	a.logger.Info("Server stopped")
	return nil
}

func newMCPCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the MCP tools over stdio",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			a.logger.Info("Starting MCP server on stdio",
				slog.String("version", buildinfo.Version),
				slog.Bool("dev_mode", a.cfg.Docs.DevMode()))

			if err := serveStdio(tools.NewServer(a.resolver, a.runner)); err != nil {
				a.logger.Error("Server error", slog.String("error", err.Error()))
				return fmt.Errorf("mcp server exited with error: %w", err)
			}
			return nil
		},
	}
}
