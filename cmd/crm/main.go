package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/yourusername/crm-records/config"
	"github.com/yourusername/crm-records/internal/delivery/cli"
	"github.com/yourusername/crm-records/internal/domain/repository"
	"github.com/yourusername/crm-records/internal/infrastructure/exporter"
	"github.com/yourusername/crm-records/internal/infrastructure/logger"
	"github.com/yourusername/crm-records/internal/infrastructure/parser"
	"github.com/yourusername/crm-records/internal/infrastructure/storage"
	"github.com/yourusername/crm-records/internal/usecase"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "CRITICAL config: %v\n", err)
		return 1
	}

	log, err := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	if err != nil {
		fmt.Fprintf(os.Stderr, "CRITICAL logger: %v\n", err)
		return 1
	}
	defer log.Sync() //nolint:errcheck

	store, err := storage.NewJSONRecordStore(cfg.DataFile, log)
	if err != nil {
		log.Error("record store", zap.Error(err))
		return 1
	}

	activity := openActivity(cfg, log)
	defer activity.Close()

	session := usecase.NewSession(
		store,
		parser.NewSheetImporter(log),
		exporter.NewExcelExporter(log),
		activity,
		usecase.Options{Logger: log},
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := cli.NewApp(session, cfg, log, os.Stdout, os.Stderr)
	return app.Execute(ctx, os.Args[1:])
}

// openActivity sqlite journal when configured; falls back to memory so a
// broken journal never blocks record work.
func openActivity(cfg *config.Config, log *zap.Logger) repository.ActivityRepository {
	if cfg.ActivityDBPath == "" {
		return storage.NewMemoryActivityRepository()
	}
	repo, err := storage.NewSQLiteActivityRepository(cfg.ActivityDBPath)
	if err != nil {
		log.Warn("activity journal unavailable, using memory", zap.String("path", cfg.ActivityDBPath), zap.Error(err))
		return storage.NewMemoryActivityRepository()
	}
	return repo
}
