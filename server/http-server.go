package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/programme-lv/writing/conf"
	"golang.org/x/sync/errgroup"
)

type HttpServer struct {
	srv             *http.Server
	shutdownTimeout time.Duration
}

func NewHttpServer(cfg conf.HTTP, handler http.Handler) *HttpServer {
	return &HttpServer{
		srv: &http.Server{
			Addr:         cfg.Address,
			Handler:      handler,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
			IdleTimeout:  cfg.IdleTimeout,
		},
		shutdownTimeout: cfg.ShutdownTimeout,
	}
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *HttpServer) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.srv.Addr, err)
	}
	return s.Serve(ctx, ln)
}

func (s *HttpServer) Serve(ctx context.Context, ln net.Listener) error {
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("http server started", "address", ln.Addr().String())
		err := s.srv.Serve(ln)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		slog.Info("http server stopped listening")
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		slog.Info("http server is shutting down", "timeout", s.shutdownTimeout)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		if err := s.srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http server shutdown: %w", err)
		}
		slog.Info("http server shut down gracefully")
		return nil
	})

	return g.Wait()
}
