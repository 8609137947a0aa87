package main

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/yourusername/pc-build-generator/internal/domain/entity"
	"github.com/yourusername/pc-build-generator/internal/usecase"
)

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func printParts(w io.Writer, b *entity.Build, currency string) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "KATEGORIYA\tNOMI\tNARX\tSCORE")
	for _, category := range entity.Categories {
		part := b.Part(category)
		if part == nil {
			continue
		}
		fmt.Fprintf(tw, "%s\t%s\t%s%s\t%s\n", category.Label(), part.Name, currency, usecase.FormatAmount(part.Price), formatScore(part.PerformanceScore))
	}
	tw.Flush()
	fmt.Fprintf(w, "Jami: %s%s\n", currency, usecase.FormatAmount(b.TotalPrice))
}

func printBuild(w io.Writer, b *entity.Build, currency string) {
	fmt.Fprintf(w, "%s build, byudjet %s%s (%s)\n\n", b.UseCase, currency, usecase.FormatAmount(b.Budget), b.Allocator)
	printParts(w, b, currency)
	if b.Strategy != "" {
		fmt.Fprintf(w, "Strategiya: %s\n", b.Strategy)
	}
	if est := b.Benchmark; est != nil {
		fmt.Fprintf(w, "\nFPS 1080p/1440p/4K: %d/%d/%d\n", est.FPS1080p, est.FPS1440p, est.FPS4K)
		fmt.Fprintf(w, "Cinebench: %d, export: x%s", est.CinebenchScore, formatScore(est.ExportSpeedMultiplier))
		if est.DiskThroughputMBs != nil {
			fmt.Fprintf(w, ", disk: %d MB/s", *est.DiskThroughputMBs)
		}
		if est.RAMBandwidthGBs != nil {
			fmt.Fprintf(w, ", RAM: %d GB/s", *est.RAMBandwidthGBs)
		}
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Quvvat: ~%sW, reyting: %s/10\n", formatScore(est.PowerDrawWatts), formatScore(est.OverallRating))
	}
	if b.Reasoning != "" {
		fmt.Fprintf(w, "\n%s\n", b.Reasoning)
	}
}

func printCheck(w io.Writer, b *entity.Build, currency string) {
	fmt.Fprintf(w, "Moslik bahosi: %d/100\n\n", b.CompatibilityScore)
	printParts(w, b, currency)

	for _, issue := range b.Issues {
		fmt.Fprintf(w, "MUAMMO: %s\n", issue)
	}
	for _, bn := range b.Bottlenecks {
		fmt.Fprintf(w, "BOTTLENECK: %s", bn.Type)
		if bn.Percentage != nil {
			fmt.Fprintf(w, " (%s%%)", formatScore(*bn.Percentage))
		}
		fmt.Fprintf(w, ": %s", bn.Details)
		if bn.Suggestion != nil {
			fmt.Fprintf(w, " Tavsiya: %s (%s%s)", bn.Suggestion.Name, currency, usecase.FormatAmount(bn.Suggestion.Price))
		}
		fmt.Fprintln(w)
	}
	for _, category := range entity.Categories {
		if up, ok := b.Upgrades[category]; ok {
			fmt.Fprintf(w, "UPGRADE %s: %s (%s)\n", category.Label(), up.Component.Name, up.Reason)
		}
	}
}

func printSummary(w io.Writer, summary []usecase.CategorySummary, currency string) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "KATEGORIYA\tSONI\tMIN\tMAX\tMAX SCORE")
	for _, s := range summary {
		if s.Count == 0 {
			fmt.Fprintf(tw, "%s\t0\t-\t-\t-\n", s.Category.Label())
			continue
		}
		fmt.Fprintf(tw, "%s\t%d\t%s%s\t%s%s\t%s\n", s.Category.Label(), s.Count,
			currency, usecase.FormatAmount(s.MinPrice), currency, usecase.FormatAmount(s.MaxPrice), formatScore(s.MaxScore))
	}
	tw.Flush()
}
