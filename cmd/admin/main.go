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
	"github.com/programme-lv/writing/storage"
	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "writing-admin",
		Short:         "Admin CLI for the writing submissions backend",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	rootCmd.AddCommand(
		newMigrateCmd(),
		newTokenCmd(),
		newSeedCmd(),
		newListCmd(),
		newExportCmd(),
	)
	return rootCmd
}

// loadConfig loads configuration and installs a text logger suited to
// a terminal.
func loadConfig() (*conf.Config, error) {
	cfg, err := conf.Load()
	if err != nil {
		return nil, err
	}
	slog.SetDefault(logger.New(logger.Options{Level: cfg.Log.Level, Format: "text"}))
	return cfg, nil
}

func openStore(ctx context.Context) (*conf.Config, storage.Store, func(), error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, nil, err
	}
	store, closeFn, err := storage.Open(ctx, cfg)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to open storage: %w", err)
	}
	return cfg, store, closeFn, nil
}
