package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/programme-lv/writing/conf"
	"github.com/programme-lv/writing/logger"
	"github.com/programme-lv/writing/metrics"
	"github.com/programme-lv/writing/server"
	"github.com/programme-lv/writing/storage"
	"github.com/programme-lv/writing/tracing"
	writinghttp "github.com/programme-lv/writing/writing/http"
	"github.com/programme-lv/writing/writing/srvc"
	"github.com/samber/lo"
	_ "go.uber.org/automaxprocs"
)

func main() {
	cfg := lo.Must(conf.Load())

	slog.SetDefault(logger.New(logger.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	}))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		slog.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *conf.Config) error {
	if cfg.Tracing.Endpoint != "" {
		tp, err := tracing.NewTracerProvider(ctx, cfg.Tracing.ServiceName, cfg.Tracing.Endpoint, cfg.Env)
		if err != nil {
			return fmt.Errorf("failed to init tracing: %w", err)
		}
		defer func() {
			if err := tp.Shutdown(context.Background()); err != nil {
				slog.Error("failed to shut down tracer provider", "error", err)
			}
		}()
	}

	store, closeStore, err := storage.Open(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	defer closeStore()

	var repo srvc.SubmRepo = store
	repo = tracing.NewSubmRepoTracer(repo, cfg.Storage.Driver)
	repo = metrics.NewMeteredRepo(repo, cfg.Storage.Driver)

	writingHandler := writinghttp.NewWritingHttpHandler(srvc.NewWritingSrvc(repo))

	router := server.NewRouter(server.RouterOptions{
		ServiceName:    cfg.Tracing.ServiceName,
		Env:            cfg.Env,
		LogLevel:       logger.ParseLevel(cfg.Log.Level),
		LogJSON:        cfg.Log.Format == "json",
		AllowedOrigins: cfg.HTTP.AllowedOrigins,
		JwtKey:         []byte(cfg.JwtKey),
		Pinger:         store,
		Registry:       metrics.NewRegistry(),
	}, writingHandler)

	return server.NewHttpServer(cfg.HTTP, router).Run(ctx)
}
