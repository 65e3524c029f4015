package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"panelscope/adapters/kv"
	"panelscope/app"
	"panelscope/internal/config"
	"panelscope/internal/logger"
	"panelscope/ports"
	"panelscope/ui"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := openStore(ctx, cfg.Storage)
	if err != nil {
		log.Fatal("storage init failed", zap.String("engine", cfg.Storage.Engine), zap.Error(err))
	}

	hub := app.NewHub()
	deps := ui.Deps{
		Charts:    app.NewChartService(),
		Bookmarks: app.NewBookmarkService(store, hub, log),
		Presets:   app.NewPresetService(store, hub, log),
		Notifier:  hub,
		Log:       log,
	}
	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: ui.NewApp(deps).Router(),
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("ui listening", zap.String("addr", srv.Addr), zap.String("engine", cfg.Storage.Engine))
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if cfg.Watcher.Enabled {
		watcher := app.NewWatcher(store, hub, cfg.Watcher.Interval, log)
		g.Go(func() error {
			return watcher.Run(ctx)
		})
	}

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal("server exited", zap.Error(err))
	}
	log.Info("shutdown complete")
}

func openStore(ctx context.Context, cfg config.StorageConfig) (ports.KV, error) {
	switch cfg.Engine {
	case "memory":
		return kv.NewMemory(), nil
	case "file":
		return kv.NewFile(cfg.Dir)
	case "redis":
		return kv.NewRedis(ctx, kv.RedisConfig{
			Address:  cfg.RedisAddress,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
	case "postgres":
		return kv.NewPostgres(cfg.DatabaseURL)
	}
	return nil, errors.New("unknown storage engine: " + cfg.Engine)
}
