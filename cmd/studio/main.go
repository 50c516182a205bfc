package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"trippcouch/internal/config"
	"trippcouch/internal/content"
	"trippcouch/internal/live"
	"trippcouch/internal/session"
	"trippcouch/internal/toast"
	"trippcouch/internal/util"
	"trippcouch/pkg/auth"
	"trippcouch/pkg/store"
)

func main() {
	// Optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load(config.ConfigPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := util.InitLogger(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, au, err := buildBackends(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to init backends", "err", err)
		os.Exit(1)
	}
	defer st.Close()

	sess := session.New(st, au, logger)
	if token := os.Getenv("STUDIO_ID_TOKEN"); token != "" {
		if err := sess.Restore(ctx, token); err != nil {
			logger.Warn("failed to restore session from saved token", "err", err)
		}
	}
	site := content.NewManager(st, logger)
	notifier := toast.NewNotifier(toast.DefaultTTL)
	sessions := live.NewSessionsView(st, logger)
	orders := live.NewAdminOrdersView(st, logger)
	leads := live.NewLeadsView(st, logger)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { site.Watch(gctx); return nil })
	g.Go(func() error { sessions.Watch(gctx); return nil })
	g.Go(func() error { orders.Watch(gctx); return nil })
	g.Go(func() error { leads.Watch(gctx); return nil })

	logger.Info("studio state layer running",
		"backend", cfg.Backend,
		"platform", site.Data().AdPlatform.PlatformName,
		"authenticated", sess.IsAuthenticated(),
	)
	<-ctx.Done()
	logger.Info("shutting down")
	if err := g.Wait(); err != nil {
		logger.Error("watcher error", "err", err)
	}
	for _, note := range notifier.Active() {
		logger.Info("pending notice dropped at shutdown", "kind", note.Kind, "msg", note.Message)
	}
}

func buildBackends(ctx context.Context, cfg config.FileConfig, logger *slog.Logger) (store.Store, auth.Authenticator, error) {
	if cfg.Backend == config.BackendMemory {
		return store.NewMemory(), auth.NewMemory(), nil
	}
	st, err := store.NewFirestore(ctx, cfg.ProjectID, cfg.CredentialsFile, logger)
	if err != nil {
		return nil, nil, err
	}
	return st, auth.NewClient(cfg.APIKey), nil
}
