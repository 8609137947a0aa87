package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/yourusername/pc-build-generator/internal/delivery/telegram"
	"github.com/yourusername/pc-build-generator/internal/domain/entity"
	"github.com/yourusername/pc-build-generator/internal/infrastructure/export"
	"github.com/yourusername/pc-build-generator/internal/infrastructure/metrics"
	"github.com/yourusername/pc-build-generator/internal/infrastructure/parser"
	"github.com/yourusername/pc-build-generator/internal/infrastructure/storage"
	"github.com/yourusername/pc-build-generator/internal/usecase"
	"github.com/yourusername/pc-build-generator/pkg/logger"
)

var (
	flagCatalog    string
	flagBudget     float64
	flagUseCase    string
	flagXLSX       string
	flagJSON       bool
	flagResolution string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Byudjet va maqsad bo'yicha build tuzish",
	Example: `  buildgen generate --budget 80000 --use-case gaming --catalog parts.xlsx
  buildgen generate --budget 150000 --use-case "video editing" --xlsx build.xlsx`,
	RunE: runGenerate,
}

var checkCmd = &cobra.Command{
	Use:   "check <selections.json>",
	Short: "Tanlangan qismlarni moslik va bottleneck bo'yicha tekshirish",
	Long: `selections.json kategoriya -> qism nomi (yoki ID) xaritasi:

  {"cpu": "Ryzen 5 7600", "gpu": "RTX 4060", "psu": "Corsair RM650"}`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Katalog bo'yicha qisqa statistika",
	RunE:  runCatalog,
}

var seedCmd = &cobra.Command{
	Use:   "seed <catalog-file>",
	Short: "Katalog faylini Postgres ga yuklash",
	Args:  cobra.ExactArgs(1),
	RunE:  runSeed,
}

var botCmd = &cobra.Command{
	Use:   "bot",
	Short: "Telegram botni ishga tushirish",
	RunE:  runBot,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagCatalog, "catalog", "", "Katalog fayli (.xlsx yoki CSV), CATALOG_PATH o'rniga")

	generateCmd.Flags().Float64VarP(&flagBudget, "budget", "b", 0, "Byudjet")
	generateCmd.Flags().StringVarP(&flagUseCase, "use-case", "u", string(entity.UseCaseGeneralUse), "Gaming, Programming, Video Editing yoki General Use")
	generateCmd.Flags().StringVar(&flagXLSX, "xlsx", "", "Buildni .xlsx faylga yozish")
	generateCmd.Flags().BoolVar(&flagJSON, "json", false, "Natijani JSON ko'rinishida chiqarish")

	checkCmd.Flags().StringVarP(&flagResolution, "resolution", "r", "", "1080p, 1440p yoki 4K (default 1440p)")
	checkCmd.Flags().BoolVar(&flagJSON, "json", false, "Natijani JSON ko'rinishida chiqarish")

	rootCmd.AddCommand(generateCmd, checkCmd, catalogCmd, seedCmd, botCmd)
}

func catalogPath() string {
	if flagCatalog != "" {
		return flagCatalog
	}
	return cfg.CatalogPath
}

func runGenerate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := newApp(ctx, cfg, appOptions{catalogPath: catalogPath(), withReviewer: true})
	if err != nil {
		return err
	}
	defer a.Close()

	useCase := entity.UseCase(flagUseCase)
	if parsed, ok := usecase.ParseUseCase(flagUseCase); ok {
		useCase = parsed
	}

	build, err := a.buildUseCase.GenerateBuild(ctx, entity.BuildRequest{Budget: flagBudget, UseCase: useCase})
	if err != nil {
		var allocErr *usecase.AllocationError
		if errors.As(err, &allocErr) {
			return fmt.Errorf("%s uchun mos qism topilmadi (%s): %w", allocErr.Category.Label(), allocErr.Reason, err)
		}
		return err
	}

	if flagXLSX != "" {
		data, err := export.BuildXLSX(build)
		if err != nil {
			return err
		}
		if err := os.WriteFile(flagXLSX, data, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", flagXLSX, err)
		}
		fmt.Fprintf(os.Stderr, "Build jadvali yozildi: %s\n", flagXLSX)
	}

	if flagJSON {
		return writeJSON(build)
	}
	printBuild(os.Stdout, build, cfg.CurrencySymbol)
	return nil
}

func runCheck(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	queries, err := readSelectionsFile(args[0])
	if err != nil {
		return err
	}

	a, err := newApp(ctx, cfg, appOptions{catalogPath: catalogPath()})
	if err != nil {
		return err
	}
	defer a.Close()

	selections := make(entity.Selections, len(queries))
	for _, category := range entity.Categories {
		query, ok := queries[category]
		if !ok {
			continue
		}
		part, err := a.buildUseCase.FindPart(ctx, category, query)
		if err != nil {
			return err
		}
		selections[category] = part
	}

	build, err := a.buildUseCase.CheckBuild(ctx, entity.CheckRequest{
		Selections:       selections,
		TargetResolution: entity.Resolution(flagResolution),
	})
	if err != nil {
		return err
	}
	if flagJSON {
		return writeJSON(build)
	}
	printCheck(os.Stdout, build, cfg.CurrencySymbol)
	return nil
}

// readSelectionsFile {"cpu": "Ryzen 5 7600", ...} ko'rinishidagi faylni o'qiydi
func readSelectionsFile(path string) (map[entity.Category]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read selections: %w", err)
	}
	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("invalid selections file %s: %w", path, err)
	}

	out := make(map[entity.Category]string, len(raw))
	for key, name := range raw {
		category, ok := entity.ParseCategory(key)
		if !ok {
			return nil, fmt.Errorf("unknown category %q", key)
		}
		if name = strings.TrimSpace(name); name != "" {
			out[category] = name
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("selections file %s is empty", path)
	}
	return out, nil
}

func runCatalog(cmd *cobra.Command, args []string) error {
	// fayl berilgan bo'lsa store ga tegmasdan to'g'ridan-to'g'ri o'qiladi
	if path := catalogPath(); path != "" {
		components, report, err := parser.ParseFile(path)
		if err != nil {
			return err
		}
		printSummary(os.Stdout, usecase.SummarizeCatalog(parser.Partition(components, path)), cfg.CurrencySymbol)
		fmt.Fprintf(os.Stdout, "Qatorlar: %d, o'qildi: %d, o'tkazildi: %d, default: %d\n",
			report.Rows, report.Parsed, len(report.Skipped), len(report.Defaults))
		return nil
	}

	a, err := newApp(cmd.Context(), cfg, appOptions{})
	if err != nil {
		return err
	}
	defer a.Close()

	summary, err := a.buildUseCase.CatalogSummary(cmd.Context())
	if err != nil {
		return err
	}
	printSummary(os.Stdout, summary, cfg.CurrencySymbol)
	return nil
}

func runSeed(cmd *cobra.Command, args []string) error {
	if cfg.PostgresDSN == "" {
		return errors.New("POSTGRES_DSN is required for seed")
	}
	ctx := cmd.Context()

	components, report, err := parser.ParseFile(args[0])
	if err != nil {
		return err
	}
	repo, err := storage.NewPostgresCatalogRepository(ctx, cfg.PostgresDSN, storage.ConnectOptions{
		Attempts: cfg.PostgresConnectAttempts,
		Delay:    cfg.PostgresConnectDelay,
	})
	if err != nil {
		return err
	}
	if len(components) == 0 {
		return fmt.Errorf("catalog %s has no usable rows", args[0])
	}
	if err := repo.Replace(ctx, components, args[0]); err != nil {
		return err
	}
	logger.InfoLogger.Printf("✅ %d ta qism Postgres ga yozildi (%d qator o'tkazildi)", len(components), len(report.Skipped))
	return nil
}

func runBot(cmd *cobra.Command, args []string) error {
	if err := cfg.RequireTelegram(); err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	a, err := newApp(ctx, cfg, appOptions{catalogPath: catalogPath(), withReviewer: true})
	if err != nil {
		return err
	}
	defer a.Close()

	botHandler, err := telegram.NewBotHandler(cfg.TelegramToken, a.buildUseCase, telegram.Options{
		Workers:  cfg.BotWorkers,
		Currency: cfg.CurrencySymbol,
		Recorder: a.metrics,
	})
	if err != nil {
		return fmt.Errorf("bot handler yaratilmadi: %w", err)
	}
	logger.InfoLogger.Printf("✅ Telegram bot tayyor: @%s", botHandler.GetBotUsername())

	var srv *http.Server
	if cfg.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", metrics.Handler(a.registry))
		srv = &http.Server{Addr: cfg.MetricsAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.ErrorLogger.Printf("metrics server: %v", err)
			}
		}()
		logger.InfoLogger.Printf("📈 Metrics: http://%s/metrics", cfg.MetricsAddr)
	}

	logger.InfoLogger.Println("🤖 Bot ishlayapti. To'xtatish uchun Ctrl+C ni bosing.")
	err = botHandler.Start(ctx)

	if srv != nil {
		shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
		defer stop()
		_ = srv.Shutdown(shutdownCtx)
	}
	logger.InfoLogger.Println("✅ Bot to'xtatildi.")

	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func writeJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
