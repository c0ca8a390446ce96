package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"nexus/internal/assets"
	applog "nexus/internal/log"
	"nexus/internal/scheduler"
	"nexus/internal/server"
)

type serverLifecycle interface {
	Start() error
	Stop() error
}

var newServerFunc = func(cfg server.Config) (serverLifecycle, error) {
	return server.New(cfg)
}

var subscribeShutdownSig = func() (<-chan os.Signal, func()) {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGTERM, syscall.SIGINT)
	return ch, func() { signal.Stop(ch) }
}

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the dashboard and the settings API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if code := run(cmd.Context()); code != 0 {
				return fmt.Errorf("server exited with status %d", code)
			}
			return nil
		},
	}
}

// run starts the HTTP server and blocks until it fails or a shutdown signal
// arrives. It returns the process exit code.
func run(ctx context.Context) int {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := loadConfigFunc()
	if err != nil {
		applog.Error(ctx, "failed to load configuration", "error", err)
		return 1
	}
	if err := setLogLevelFunc(cfg.Logging.Level); err != nil {
		applog.Error(ctx, "invalid log level", "level", cfg.Logging.Level, "error", err)
		return 1
	}
	if cfg.Logging.Format != "" {
		if err := applog.SetFormat(cfg.Logging.Format); err != nil {
			applog.Error(ctx, "invalid log format", "format", cfg.Logging.Format, "error", err)
			return 1
		}
	}

	store, closeStore, err := openStore(ctx, cfg)
	defer closeStore()
	if err != nil {
		applog.Error(ctx, "failed to open settings store", "error", err)
		return 1
	}

	refresher, err := scheduler.New(store, cfg.Catalog.Refresh)
	if err != nil {
		applog.Error(ctx, "invalid catalog refresh schedule", "error", err)
		return 1
	}
	if err := refresher.Start(ctx); err != nil {
		applog.Error(ctx, "failed to start catalog refresh", "error", err)
		return 1
	}
	defer refresher.Stop()

	srv, err := newServerFunc(server.Config{
		Addr: cfg.Server.Addr,
		Session: server.SessionConfig{
			Lifetime:     cfg.Session.Lifetime,
			CookieName:   cfg.Session.CookieName,
			CookieDomain: cfg.Session.CookieDomain,
			CookieSecure: cfg.Session.CookieSecure,
		},
		Store:      store,
		PreferDark: cfg.Theme.PreferDark,
		Assets:     assets.FS(),
	})
	if err != nil {
		applog.Error(ctx, "failed to build server", "error", err)
		return 1
	}

	shutdown, unsubscribe := subscribeShutdownSig()
	defer unsubscribe()

	errCh := make(chan error, 1)
	go func() {
		applog.Info(ctx, "starting http server", "addr", cfg.Server.Addr)
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			applog.Error(ctx, "server encountered an error", "error", err)
			return 1
		}
		return 0
	case sig := <-shutdown:
		applog.Info(ctx, "shutting down http server", "signal", sig.String())
	case <-ctx.Done():
		applog.Info(ctx, "shutting down http server", "reason", ctx.Err())
	}

	if err := srv.Stop(); err != nil {
		applog.Error(ctx, "graceful shutdown failed", "error", err)
		return 1
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		applog.Error(ctx, "server encountered an error", "error", err)
		return 1
	}
	return 0
}
