package export

import (
	"bytes"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"github.com/yourusername/pc-build-generator/internal/domain/entity"
)

const (
	partsSheet     = "Build"
	benchmarkSheet = "Benchmark"
	checkSheet     = "Check"
)

var partHeaders = []string{
	"Category", "Name", "Price", "Performance", "Socket", "RAM Type", "Watt", "VRAM", "Capacity", "Purpose", "Upgrade", "Upgrade Reason",
}

// BuildXLSX build'ni Excel faylga yozish: qismlar, benchmark va (manual bo'lsa) tekshiruv varaqlari
func BuildXLSX(b *entity.Build) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), partsSheet); err != nil {
		return nil, err
	}

	if err := writeRow(f, partsSheet, 1, toRow(partHeaders)); err != nil {
		return nil, err
	}
	rowIdx := 2
	for _, category := range entity.Categories {
		part := b.Part(category)
		values := []interface{}{category.Label()}
		if part == nil {
			values = append(values, "-")
		} else {
			values = append(values,
				part.Name,
				part.Price,
				part.PerformanceScore,
				part.Socket,
				part.RAMType,
				optional(part.Wattage),
				optional(part.VRAMGB),
				optional(part.CapacityGB),
				strings.Join(part.PurposeTags, ", "),
			)
			if up, ok := b.Upgrades[category]; ok {
				values = append(values, up.Component.Name, up.Reason)
			}
		}
		if err := writeRow(f, partsSheet, rowIdx, values); err != nil {
			return nil, err
		}
		rowIdx++
	}

	rowIdx++
	summary := [][]interface{}{
		{"Total", b.TotalPrice},
	}
	if b.Budget > 0 {
		summary = append(summary, []interface{}{"Budget", b.Budget})
	}
	if b.UseCase != "" {
		summary = append(summary, []interface{}{"Use case", string(b.UseCase)})
	}
	if b.Allocator != "" {
		summary = append(summary, []interface{}{"Allocator", b.Allocator})
	}
	if b.Strategy != "" {
		summary = append(summary, []interface{}{"Strategy", b.Strategy})
	}
	if b.ID != "" {
		summary = append(summary, []interface{}{"Build ID", b.ID})
	}
	if !b.CreatedAt.IsZero() {
		summary = append(summary, []interface{}{"Created", b.CreatedAt.Format(time.RFC3339)})
	}
	if b.Reasoning != "" {
		summary = append(summary, []interface{}{"Review", b.Reasoning})
	}
	for _, row := range summary {
		if err := writeRow(f, partsSheet, rowIdx, row); err != nil {
			return nil, err
		}
		rowIdx++
	}

	if b.Benchmark != nil {
		if err := writeBenchmark(f, b.Benchmark); err != nil {
			return nil, err
		}
	}
	if b.Issues != nil || b.Bottlenecks != nil {
		if err := writeCheck(f, b); err != nil {
			return nil, err
		}
	}

	f.SetActiveSheet(0)

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeBenchmark(f *excelize.File, est *entity.BenchmarkEstimate) error {
	if _, err := f.NewSheet(benchmarkSheet); err != nil {
		return err
	}
	rows := [][]interface{}{
		{"Metric", "Value"},
		{"FPS 1080p", est.FPS1080p},
		{"FPS 1440p", est.FPS1440p},
		{"FPS 4K", est.FPS4K},
		{"Cinebench (multi-core)", est.CinebenchScore},
		{"Export speed (x real-time)", est.ExportSpeedMultiplier},
		{"Disk throughput (MB/s)", optionalInt(est.DiskThroughputMBs)},
		{"RAM bandwidth (GB/s)", optionalInt(est.RAMBandwidthGBs)},
		{"Power draw (W)", est.PowerDrawWatts},
		{"Overall rating", est.OverallRating},
	}
	for i, row := range rows {
		if err := writeRow(f, benchmarkSheet, i+1, row); err != nil {
			return err
		}
	}
	return nil
}

func writeCheck(f *excelize.File, b *entity.Build) error {
	if _, err := f.NewSheet(checkSheet); err != nil {
		return err
	}
	rows := [][]interface{}{
		{"Compatibility score", b.CompatibilityScore},
		{},
		{"Issues"},
	}
	for _, issue := range b.Issues {
		rows = append(rows, []interface{}{issue})
	}
	rows = append(rows, []interface{}{}, []interface{}{"Bottleneck", "Percentage", "Details", "Suggestion"})
	for _, bn := range b.Bottlenecks {
		row := []interface{}{bn.Type, "", bn.Details, ""}
		if bn.Percentage != nil {
			row[1] = *bn.Percentage
		}
		if bn.Suggestion != nil {
			row[3] = bn.Suggestion.Name
		}
		rows = append(rows, row)
	}
	for i, row := range rows {
		if err := writeRow(f, checkSheet, i+1, row); err != nil {
			return err
		}
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, rowIdx int, values []interface{}) error {
	for c, v := range values {
		cell, err := excelize.CoordinatesToCellName(c+1, rowIdx)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return err
		}
	}
	return nil
}

func toRow(values []string) []interface{} {
	out := make([]interface{}, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

// optional 0 (noma'lum) qiymatni bo'sh katak qiladi
func optional(v float64) interface{} {
	if v == 0 {
		return ""
	}
	return v
}

func optionalInt(v *int) interface{} {
	if v == nil {
		return ""
	}
	return *v
}
