package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/yourusername/pc-build-generator/config"
	"github.com/yourusername/pc-build-generator/pkg/logger"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "buildgen",
	Short: "PC build generator",
	Long: `buildgen katalog asosida byudjet va maqsadga mos PC build tuzadi,
qo'lda tanlangan qismlarni moslik va bottleneck bo'yicha tekshiradi.

Katalog CATALOG_PATH (.xlsx yoki CSV) dan yoki POSTGRES_DSN dan olinadi.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger.Init()
		loaded, err := config.Load()
		if err != nil {
			return fmt.Errorf("konfiguratsiya yuklanmadi: %w", err)
		}
		cfg = loaded
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Sync()
	},
}

func main() {
	initDefaultTimezone()

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		logger.Sync()
		os.Exit(1)
	}
}

func initDefaultTimezone() {
	const tzName = "Asia/Tashkent"
	if loc, err := time.LoadLocation(tzName); err == nil {
		time.Local = loc
		return
	}
	time.Local = time.FixedZone(tzName, 5*60*60)
}
