package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/yourusername/pc-build-generator/internal/domain/constants"
)

// Allocator rejimlari
const (
	ModeGreedy   = "greedy"
	ModeExternal = "external"
)

// Config ilovaning konfiguratsiyasi
type Config struct {
	CatalogPath           string
	AllocationProfilePath string
	CurrencySymbol        string

	PostgresDSN             string
	PostgresConnectAttempts int
	PostgresConnectDelay    time.Duration

	OptimizerMode     string
	OptimizerCommand  string
	OptimizerArgs     []string
	OptimizerStrategy string
	OptimizerTimeout  time.Duration

	TelegramToken string
	GeminiAPIKey  string
	BotWorkers    int
	MetricsAddr   string
}

// Load konfiguratsiyani yuklash
func Load() (*Config, error) {
	// .env faylini yuklash (mavjud bo'lsa)
	_ = godotenv.Load()

	cfg := &Config{
		CatalogPath:           strings.TrimSpace(os.Getenv("CATALOG_PATH")),
		AllocationProfilePath: strings.TrimSpace(os.Getenv("ALLOCATION_PROFILE_PATH")),
		CurrencySymbol:        getEnv("CURRENCY_SYMBOL", constants.DefaultCurrencySymbol),

		PostgresDSN: strings.TrimSpace(os.Getenv("POSTGRES_DSN")),

		OptimizerMode:     strings.ToLower(getEnv("OPTIMIZER_MODE", ModeGreedy)),
		OptimizerCommand:  strings.TrimSpace(os.Getenv("OPTIMIZER_COMMAND")),
		OptimizerArgs:     strings.Fields(os.Getenv("OPTIMIZER_ARGS")),
		OptimizerStrategy: getEnv("OPTIMIZER_STRATEGY", constants.DefaultOptimizerStrategy),

		TelegramToken: strings.TrimSpace(os.Getenv("TELEGRAM_BOT_TOKEN")),
		GeminiAPIKey:  strings.TrimSpace(os.Getenv("GEMINI_API_KEY")),
		MetricsAddr:   strings.TrimSpace(os.Getenv("METRICS_ADDR")),
	}

	timeoutSec, err := getEnvInt("OPTIMIZER_TIMEOUT_SECONDS", constants.DefaultOptimizerTimeout)
	if err != nil {
		return nil, err
	}
	cfg.OptimizerTimeout = time.Duration(timeoutSec) * time.Second

	if cfg.BotWorkers, err = getEnvInt("BOT_WORKERS", 0); err != nil {
		return nil, err
	}
	if cfg.PostgresConnectAttempts, err = getEnvInt("POSTGRES_CONNECT_ATTEMPTS", 0); err != nil {
		return nil, err
	}
	delaySec, err := getEnvInt("POSTGRES_CONNECT_DELAY_SECONDS", 0)
	if err != nil {
		return nil, err
	}
	cfg.PostgresConnectDelay = time.Duration(delaySec) * time.Second

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejim va sonli qiymatlarni tekshirish
func (c *Config) Validate() error {
	switch c.OptimizerMode {
	case ModeGreedy:
	case ModeExternal:
		if c.OptimizerCommand == "" {
			return fmt.Errorf("OPTIMIZER_COMMAND environment variable bo'sh (OPTIMIZER_MODE=external)")
		}
	default:
		return fmt.Errorf("OPTIMIZER_MODE noto'g'ri: %q (greedy yoki external)", c.OptimizerMode)
	}
	if c.OptimizerTimeout <= 0 {
		return fmt.Errorf("OPTIMIZER_TIMEOUT_SECONDS musbat bo'lishi kerak")
	}
	if c.BotWorkers < 0 {
		return fmt.Errorf("BOT_WORKERS manfiy bo'lishi mumkin emas")
	}
	return nil
}

// RequireTelegram bot rejimi uchun token majburiy
func (c *Config) RequireTelegram() error {
	if isEmptyOrDisabled(c.TelegramToken) {
		return fmt.Errorf("TELEGRAM_BOT_TOKEN environment variable bo'sh")
	}
	return nil
}

// ReviewerEnabled Gemini kaliti berilganmi?
func (c *Config) ReviewerEnabled() bool {
	return !isEmptyOrDisabled(c.GeminiAPIKey)
}

func getEnv(key, defaultValue string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s noto'g'ri formatda: %v", key, err)
	}
	return n, nil
}

func isEmptyOrDisabled(value string) bool {
	value = strings.TrimSpace(value)
	if value == "" {
		return true
	}
	return strings.EqualFold(value, "disabled")
}
