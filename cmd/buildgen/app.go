package main

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/yourusername/pc-build-generator/config"
	"github.com/yourusername/pc-build-generator/internal/domain/repository"
	"github.com/yourusername/pc-build-generator/internal/infrastructure/gemini"
	"github.com/yourusername/pc-build-generator/internal/infrastructure/metrics"
	"github.com/yourusername/pc-build-generator/internal/infrastructure/optimizer"
	"github.com/yourusername/pc-build-generator/internal/infrastructure/parser"
	"github.com/yourusername/pc-build-generator/internal/infrastructure/storage"
	"github.com/yourusername/pc-build-generator/internal/usecase"
	"github.com/yourusername/pc-build-generator/pkg/logger"
)

// app komandalar uchun umumiy dependency lar
type app struct {
	buildUseCase usecase.BuildUseCase
	metrics      *metrics.Metrics
	registry     *prometheus.Registry
	reviewer     repository.BuildReviewer
}

type appOptions struct {
	catalogPath  string
	withReviewer bool
}

func newApp(ctx context.Context, cfg *config.Config, opts appOptions) (*app, error) {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(registry)

	catalogRepo := storage.NewCatalogRepository(ctx, cfg.PostgresDSN, storage.ConnectOptions{
		Attempts: cfg.PostgresConnectAttempts,
		Delay:    cfg.PostgresConnectDelay,
	})

	allocator, err := newAllocator(cfg)
	if err != nil {
		return nil, err
	}

	var reviewer repository.BuildReviewer
	if opts.withReviewer && cfg.ReviewerEnabled() {
		reviewer, err = gemini.NewBuildReviewer(ctx, cfg.GeminiAPIKey)
		if err != nil {
			return nil, err
		}
		logger.InfoLogger.Println("✅ Gemini reviewer tayyor")
	}

	a := &app{
		buildUseCase: usecase.NewBuildUseCase(catalogRepo, allocator, usecase.NewManualValidator(cfg.CurrencySymbol), reviewer, m),
		metrics:      m,
		registry:     registry,
		reviewer:     reviewer,
	}

	if opts.catalogPath != "" {
		if err := a.importCatalog(ctx, opts.catalogPath); err != nil {
			a.Close()
			return nil, err
		}
	}
	return a, nil
}

func newAllocator(cfg *config.Config) (repository.Allocator, error) {
	if cfg.OptimizerMode == config.ModeExternal {
		logger.InfoLogger.Printf("✅ Tashqi optimizer: %s", cfg.OptimizerCommand)
		return optimizer.NewExternalAllocator(optimizer.Config{
			Command:  cfg.OptimizerCommand,
			Args:     cfg.OptimizerArgs,
			Strategy: cfg.OptimizerStrategy,
			Timeout:  cfg.OptimizerTimeout,
		}), nil
	}

	profile := usecase.DefaultAllocationProfile()
	if cfg.AllocationProfilePath != "" {
		loaded, err := usecase.LoadAllocationProfile(cfg.AllocationProfilePath)
		if err != nil {
			return nil, err
		}
		profile = loaded
	}
	return usecase.NewGreedyAllocator(profile), nil
}

func (a *app) importCatalog(ctx context.Context, path string) error {
	components, report, err := parser.ParseFile(path)
	if err != nil {
		return err
	}
	for _, skipped := range report.Skipped {
		logger.WarnLogger.Printf("catalog %s: %d-qator o'tkazib yuborildi: %s", path, skipped.Row, skipped.Reason)
	}
	if _, err := a.buildUseCase.ImportCatalog(ctx, usecase.CatalogImport{
		Components:      components,
		Source:          path,
		DefaultsByField: report.DefaultsByField(),
		Skipped:         len(report.Skipped),
	}); err != nil {
		return fmt.Errorf("catalog import: %w", err)
	}
	return nil
}

func (a *app) Close() {
	if a.reviewer != nil {
		if err := a.reviewer.Close(); err != nil {
			logger.WarnLogger.Printf("reviewer close: %v", err)
		}
	}
}
