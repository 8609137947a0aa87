package usecase

import (
	"math"

	"github.com/yourusername/pc-build-generator/internal/domain/constants"
	"github.com/yourusername/pc-build-generator/internal/domain/entity"
)

var (
	fpsResolutionMultiplier = map[entity.Resolution]float64{
		entity.Resolution1080p: 1.0,
		entity.Resolution1440p: 0.68,
		entity.Resolution4K:    0.38,
	}
	fpsMinVRAM = map[entity.Resolution]float64{
		entity.Resolution1080p: 6,
		entity.Resolution1440p: 8,
		entity.Resolution4K:    12,
	}
)

// EstimateBenchmark komponent ballaridan sintetik benchmark.
// Returns nil when neither CPU nor GPU has a score.
func EstimateBenchmark(b *entity.Build) *entity.BenchmarkEstimate {
	if b == nil {
		return nil
	}
	cpuScore := scoreOf(b.CPU)
	gpuScore := scoreOf(b.GPU)
	ramScore := scoreOf(b.RAM)
	storageScore := scoreOf(b.Storage)
	if cpuScore == 0 && gpuScore == 0 {
		return nil
	}

	vram := 0.0
	if b.GPU != nil {
		vram = b.GPU.VRAMGB
	}

	overall := math.Round((cpuScore*0.3+gpuScore*0.4+ramScore*0.15+storageScore*0.15)/10*10) / 10

	return &entity.BenchmarkEstimate{
		FPS1080p:              estimateFPS(gpuScore, cpuScore, vram, entity.Resolution1080p),
		FPS1440p:              estimateFPS(gpuScore, cpuScore, vram, entity.Resolution1440p),
		FPS4K:                 estimateFPS(gpuScore, cpuScore, vram, entity.Resolution4K),
		CinebenchScore:        int(clamp(math.Round(cpuScore/100*2200), 100, 3000)),
		ExportSpeedMultiplier: math.Round((0.5+(cpuScore*0.55+gpuScore*0.45)/100*5.0)*10) / 10,
		DiskThroughputMBs:     diskThroughput(storageScore),
		RAMBandwidthGBs:       ramBandwidth(ramScore),
		PowerDrawWatts:        b.CPU.WattageOr(0) + b.GPU.WattageOr(0) + constants.SystemOverheadWatts,
		OverallRating:         clamp(overall, 1, 10),
		VRAMGB:                vram,
	}
}

func estimateFPS(gpuScore, cpuScore, vram float64, res entity.Resolution) int {
	gpuBase := gpuScore / 100 * 160 * fpsResolutionMultiplier[res]
	cpuCap := cpuScore / 100 * 250

	fps := math.Min(gpuBase, cpuCap)
	if minVRAM := fpsMinVRAM[res]; vram > 0 && vram < minVRAM {
		fps *= 0.75 + (vram/minVRAM)*0.25
	}
	return int(clamp(math.Round(fps), constants.FPSMin, constants.FPSMax))
}

func diskThroughput(score float64) *int {
	if score == 0 {
		return nil
	}
	var v float64
	switch {
	case score <= 50:
		v = clamp(math.Round(score*3.5), 80, 200)
	case score <= 70:
		v = clamp(math.Round(200+(score-50)*22), 200, 700)
	default:
		v = clamp(math.Round(700+(score-70)*210), 700, 7500)
	}
	out := int(v)
	return &out
}

func ramBandwidth(score float64) *int {
	if score == 0 {
		return nil
	}
	out := int(clamp(math.Round(15+score/100*40), 12, 60))
	return &out
}

func scoreOf(c *entity.Component) float64 {
	if c == nil {
		return 0
	}
	return c.PerformanceScore
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
