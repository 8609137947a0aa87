package usecase

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/yourusername/pc-build-generator/internal/domain/constants"
	"github.com/yourusername/pc-build-generator/internal/domain/entity"
)

// ManualValidator foydalanuvchi tanlagan qismlarni tekshiradi: moslik, bottleneck va upgrade maslahatlari.
// It never fails; partial selections produce a best-effort result.
type ManualValidator struct {
	currency string
}

// NewManualValidator empty currency falls back to the default symbol.
func NewManualValidator(currency string) *ManualValidator {
	if strings.TrimSpace(currency) == "" {
		currency = constants.DefaultCurrencySymbol
	}
	return &ManualValidator{currency: currency}
}

// NormalizeResolution empty or unknown values mean 1440p.
func NormalizeResolution(res entity.Resolution) entity.Resolution {
	switch strings.ToUpper(strings.TrimSpace(string(res))) {
	case "1080P":
		return entity.Resolution1080p
	case "4K", "2160P":
		return entity.Resolution4K
	default:
		return entity.Resolution1440p
	}
}

// Validate selections -> issues, bottlenecks, compatibility score va upgrade'lar
func (v *ManualValidator) Validate(sel entity.Selections, catalog *entity.Catalog, res entity.Resolution) *entity.Build {
	res = NormalizeResolution(res)
	build := entity.BuildFromSelections(sel)

	build.Issues = CompatibilityIssues(build)
	build.CompatibilityScore = CompatibilityScore(len(build.Issues))
	build.Bottlenecks = Bottlenecks(build, catalog, res)
	build.Upgrades = v.Upgrades(build, catalog)
	return build
}

// CompatibilityScore 100 - 20 per issue, never negative
func CompatibilityScore(issues int) int {
	score := 100 - constants.IssuePenalty*issues
	if score < 0 {
		return 0
	}
	return score
}

// CompatibilityIssues hard compatibility errors of a (possibly partial) build.
func CompatibilityIssues(b *entity.Build) []string {
	issues := []string{}

	if b.CPU != nil && b.Motherboard != nil && b.CPU.Socket != b.Motherboard.Socket {
		issues = append(issues, fmt.Sprintf(
			"Compatibility Error: CPU Socket (%s) does not match Motherboard Socket (%s).",
			b.CPU.Socket, b.Motherboard.Socket))
	}

	if b.RAM != nil && b.Motherboard != nil {
		ramType := strings.ToUpper(b.RAM.RAMType)
		boardType := strings.ToUpper(b.Motherboard.RAMType)
		if ramType != "" && boardType != "" && !strings.Contains(boardType, ramType) {
			issues = append(issues, fmt.Sprintf(
				"Compatibility Error: RAM Type (%s) is not supported by Motherboard (%s).",
				ramType, boardType))
		}
	}

	// wattage 0 = noma'lum PSU
	if b.PSU != nil && b.PSU.Wattage > 0 {
		load := b.CPU.WattageOr(0) + b.GPU.WattageOr(0) + constants.BaseSystemWattage
		if b.PSU.Wattage < load {
			issues = append(issues, fmt.Sprintf(
				"Power Warning: PSU Wattage (%sW) may be insufficient. Estimated Load: %sW.",
				formatNumber(b.PSU.Wattage), formatNumber(load)))
		}
	}
	return issues
}

// Bottlenecks soft warnings: CPU/GPU balance, low RAM, low VRAM.
func Bottlenecks(b *entity.Build, catalog *entity.Catalog, res entity.Resolution) []entity.Bottleneck {
	bottlenecks := []entity.Bottleneck{}
	if b.CPU == nil || b.GPU == nil {
		return bottlenecks
	}

	if bn, ok := balanceBottleneck(b, catalog, res); ok {
		bottlenecks = append(bottlenecks, bn)
	}

	if b.RAM != nil && ramCapacity(b.RAM) < constants.MinRecommendedRAMGB {
		bottlenecks = append(bottlenecks, entity.Bottleneck{
			Type:       entity.BottleneckLowRAM,
			Details:    "8GB RAM is insufficient for modern gaming. 16GB+ recommended.",
			Suggestion: firstMatch(catalog.Parts(entity.CategoryRAM), func(c entity.Component) bool {
				return strings.Contains(c.Name, "16GB") || c.Price > b.RAM.Price
			}),
		})
	}

	if b.GPU.VRAMGB > 0 {
		floor := vramFloor(res)
		if b.GPU.VRAMGB < floor {
			bottlenecks = append(bottlenecks, entity.Bottleneck{
				Type:    entity.BottleneckLowVRAM,
				Details: fmt.Sprintf("Recommended VRAM for %s is %sGB+.", res, formatNumber(floor)),
			})
		}
	}
	return bottlenecks
}

func balanceBottleneck(b *entity.Build, catalog *entity.Catalog, res entity.Resolution) (entity.Bottleneck, bool) {
	cpuScore, gpuScore := b.CPU.PerformanceScore, b.GPU.PerformanceScore
	switch res {
	case entity.Resolution1080p:
		cpuScore *= 0.9
		gpuScore *= 1.1
	case entity.Resolution4K:
		gpuScore *= 0.8
		cpuScore *= 1.1
	}

	maxScore := math.Max(cpuScore, gpuScore)
	if maxScore <= 0 {
		return entity.Bottleneck{}, false
	}
	pct := (maxScore - math.Min(cpuScore, gpuScore)) / maxScore * 100
	if pct <= constants.BottleneckThresholdPct {
		return entity.Bottleneck{}, false
	}
	rounded := math.Round(pct*10) / 10

	if gpuScore < cpuScore {
		gpuPrice := b.GPU.Price
		candidates := filterParts(catalog.Parts(entity.CategoryGPU), func(c entity.Component) bool {
			return c.PerformanceScore >= cpuScore*constants.SuggestionScoreRatio &&
				c.Price < gpuPrice*constants.SuggestionMaxPriceFactor
		})
		return entity.Bottleneck{
			Type:       entity.BottleneckGPU,
			Percentage: &rounded,
			Details:    fmt.Sprintf("GPU is too weak for this CPU at %s.", res),
			Suggestion: suggest(candidates, gpuScore),
		}, true
	}

	socket := b.CPU.Socket
	if b.Motherboard != nil && b.Motherboard.Socket != "" {
		socket = b.Motherboard.Socket
	}
	candidates := filterParts(catalog.Parts(entity.CategoryCPU), func(c entity.Component) bool {
		return c.PerformanceScore >= gpuScore*constants.SuggestionScoreRatio &&
			(socket == "" || c.Socket == socket)
	})
	return entity.Bottleneck{
		Type:       entity.BottleneckCPU,
		Percentage: &rounded,
		Details:    fmt.Sprintf("CPU is too weak for this GPU at %s.", res),
		Suggestion: suggest(candidates, cpuScore),
	}, true
}

// suggest narxi bo'yicha saralangan nomzodlardan joriy balldan yuqorisini, aks holda eng arzonini
func suggest(candidates []entity.Component, currentScore float64) *entity.Component {
	if len(candidates) == 0 {
		return nil
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Price < candidates[j].Price
	})
	if better := firstMatch(candidates, func(c entity.Component) bool {
		return c.PerformanceScore > currentScore
	}); better != nil {
		return better
	}
	first := candidates[0]
	return &first
}

func ramCapacity(ram *entity.Component) float64 {
	if ram.CapacityGB > 0 {
		return ram.CapacityGB
	}
	if strings.Contains(ram.Name, "16GB") {
		return 16
	}
	return 8
}

func vramFloor(res entity.Resolution) float64 {
	switch res {
	case entity.Resolution4K:
		return 12
	case entity.Resolution1080p:
		return 8
	default:
		return 10
	}
}

// Upgrades har bir tanlangan qism uchun bir xil kategoriyadagi yaxshiroq alternativa
func (v *ManualValidator) Upgrades(b *entity.Build, catalog *entity.Catalog) map[entity.Category]entity.Upgrade {
	upgrades := make(map[entity.Category]entity.Upgrade)
	for _, category := range entity.Categories {
		current := b.Part(category)
		if current == nil {
			continue
		}
		maxPrice := current.Price * constants.UpgradeMaxPriceFactor

		candidates := filterParts(catalog.Parts(category), func(c entity.Component) bool {
			if (c.ID != "" && c.ID == current.ID) || c.Name == current.Name {
				return false
			}
			if c.PerformanceScore <= current.PerformanceScore || c.Price > maxPrice {
				return false
			}
			return upgradeCompatible(category, c, b)
		})
		if len(candidates) == 0 {
			continue
		}

		sort.SliceStable(candidates, func(i, j int) bool {
			return scorePerPrice(candidates[i]) > scorePerPrice(candidates[j])
		})
		best := candidates[0]
		upgrades[category] = entity.Upgrade{Component: best, Reason: v.upgradeReason(best, current)}
	}
	return upgrades
}

func upgradeCompatible(category entity.Category, c entity.Component, b *entity.Build) bool {
	switch category {
	case entity.CategoryCPU:
		if b.Motherboard != nil && c.Socket != "" && b.Motherboard.Socket != "" && c.Socket != b.Motherboard.Socket {
			return false
		}
	case entity.CategoryMotherboard:
		if b.CPU != nil && c.Socket != "" && b.CPU.Socket != "" && c.Socket != b.CPU.Socket {
			return false
		}
	case entity.CategoryRAM:
		if b.Motherboard != nil {
			boardType := strings.ToUpper(b.Motherboard.RAMType)
			candidateType := strings.ToUpper(c.RAMType)
			if boardType != "" && candidateType != "" && !strings.Contains(boardType, candidateType) {
				return false
			}
		}
	}
	return true
}

func scorePerPrice(c entity.Component) float64 {
	price := c.Price
	if price == 0 {
		price = 1
	}
	return c.PerformanceScore / price
}

func (v *ManualValidator) upgradeReason(best entity.Component, current *entity.Component) string {
	scoreDiff := best.PerformanceScore - current.PerformanceScore
	priceDiff := best.Price - current.Price

	reason := "+" + strconv.FormatFloat(scoreDiff, 'f', -1, 64) + " perf score"
	if priceDiff <= 0 {
		return reason + ", " + v.currency + FormatAmount(math.Abs(priceDiff)) + " cheaper"
	}
	return reason + " for just " + v.currency + FormatAmount(priceDiff) + " more"
}

// FormatAmount 1234567.5 -> "1,234,567.5" (at most 3 fraction digits)
func FormatAmount(amount float64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}
	text := strconv.FormatFloat(math.Round(amount*1000)/1000, 'f', -1, 64)
	intPart, fracPart, _ := strings.Cut(text, ".")

	var grouped strings.Builder
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			grouped.WriteByte(',')
		}
		grouped.WriteRune(digit)
	}
	out := grouped.String()
	if fracPart != "" {
		out += "." + fracPart
	}
	if negative {
		out = "-" + out
	}
	return out
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
