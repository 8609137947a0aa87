package logger

import (
	"log"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// InfoLogger, WarnLogger va ErrorLogger eski Printf uslubidagi chaqiruvlar uchun
	InfoLogger  = log.New(os.Stdout, "INFO: ", log.LstdFlags)
	WarnLogger  = log.New(os.Stdout, "WARN: ", log.LstdFlags)
	ErrorLogger = log.New(os.Stderr, "ERROR: ", log.LstdFlags)

	mu   sync.RWMutex
	base = zap.NewNop()
)

// Init loggerni LOG_LEVEL va LOG_FORMAT (json|console) bo'yicha sozlash
func Init() {
	level := zapcore.InfoLevel
	if raw := strings.TrimSpace(os.Getenv("LOG_LEVEL")); raw != "" {
		if err := level.UnmarshalText([]byte(strings.ToLower(raw))); err != nil {
			level = zapcore.InfoLevel
		}
	}

	cfg := zap.NewProductionConfig()
	if strings.EqualFold(strings.TrimSpace(os.Getenv("LOG_FORMAT")), "console") {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(level)

	z, err := cfg.Build()
	if err != nil {
		log.Printf("logger: zap init failed, using stdlib: %v", err)
		return
	}
	Set(z)
}

// Set replaces the structured logger and rebinds the Printf-style loggers to it.
func Set(z *zap.Logger) {
	if z == nil {
		z = zap.NewNop()
	}
	mu.Lock()
	base = z
	mu.Unlock()

	InfoLogger = zap.NewStdLog(z)
	if l, err := zap.NewStdLogAt(z, zapcore.WarnLevel); err == nil {
		WarnLogger = l
	}
	if l, err := zap.NewStdLogAt(z, zapcore.ErrorLevel); err == nil {
		ErrorLogger = l
	}
}

// L structured logger
func L() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return base
}

// Sync buferlangan loglarni yozib yuborish
func Sync() {
	_ = L().Sync()
}
