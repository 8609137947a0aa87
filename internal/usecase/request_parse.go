package usecase

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/yourusername/pc-build-generator/internal/domain/entity"
)

const amountPattern = `(\d[\d,]*(?:\.\d+)?)(?:\s*(k|lakhs?|lacs?|l|million|m)\b)?`

var (
	reBudgetKeyword  = regexp.MustCompile(`(?:budget|budjet|under|upto|up to)\s*:?\s*(?:[₹$]|rs\.?|inr)?\s*` + amountPattern)
	reBudgetCurrency = regexp.MustCompile(`(?:[₹$]|\brs\.?|\binr)\s*` + amountPattern)
	reBudgetSuffix   = regexp.MustCompile(`(\d[\d,]*(?:\.\d+)?)\s*(?:[₹$]|rs\b|inr\b|rupees?)`)
	reBudgetScaled   = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(k|lakhs?|lacs?|l|million|m)\b`)
	reBudgetNumber   = regexp.MustCompile(`\b(\d[\d,]*(?:\.\d+)?)\b`)
)

// 2k/4k/8k odatda resolution, byudjet emas
var resolutionTokens = map[string]bool{"2": true, "4": true, "8": true}

// ParseBudget matndan byudjetni ajratib oladi: "1.5k", "1 lakh", "₹85,000", "budget 90000" yoki oddiy raqam.
// Kalit so'z va valyuta belgisi qisqa shakllardan ustun. Returns 0 when nothing usable is found.
func ParseBudget(text string) float64 {
	lower := strings.ToLower(text)

	for _, re := range []*regexp.Regexp{reBudgetKeyword, reBudgetCurrency} {
		if m := re.FindStringSubmatch(lower); m != nil {
			if v, err := parseGroupedNumber(m[1]); err == nil {
				return v * unitMultiplier(m[2])
			}
		}
	}
	if v, ok := firstNumber(reBudgetSuffix, lower); ok {
		return v
	}
	for _, m := range reBudgetScaled.FindAllStringSubmatch(lower, -1) {
		if m[2] == "k" && resolutionTokens[m[1]] {
			continue
		}
		if v, err := parseGroupedNumber(m[1]); err == nil {
			return v * unitMultiplier(m[2])
		}
	}
	// oddiy raqam: kamida 3 xonali bo'lsa byudjet deb olinadi (16GB kabi sonlar emas)
	for _, m := range reBudgetNumber.FindAllStringSubmatch(lower, -1) {
		if v, err := parseGroupedNumber(m[1]); err == nil && v >= 100 {
			return v
		}
	}
	return 0
}

func unitMultiplier(unit string) float64 {
	switch {
	case unit == "":
		return 1
	case unit == "k":
		return 1000
	case unit == "m" || unit == "million":
		return 1000000
	default: // lakh, lac, l
		return 100000
	}
}

func firstNumber(re *regexp.Regexp, text string) (float64, bool) {
	m := re.FindStringSubmatch(text)
	if len(m) < 2 {
		return 0, false
	}
	v, err := parseGroupedNumber(m[1])
	if err != nil {
		return 0, false
	}
	return v, true
}

func parseGroupedNumber(raw string) (float64, error) {
	return strconv.ParseFloat(strings.ReplaceAll(raw, ",", ""), 64)
}

// ParseUseCase maqsadni kalit so'zlar bo'yicha aniqlash
func ParseUseCase(text string) (entity.UseCase, bool) {
	lower := strings.ToLower(text)

	for _, uc := range []entity.UseCase{
		entity.UseCaseGaming, entity.UseCaseProgramming, entity.UseCaseVideoEditing, entity.UseCaseGeneralUse,
	} {
		if strings.Contains(lower, strings.ToLower(string(uc))) {
			return uc, true
		}
	}

	for _, kw := range []string{
		"video", "editing", "edit", "premiere", "davinci", "after effects", "render", "3d", "blender", "content",
	} {
		if strings.Contains(lower, kw) {
			return entity.UseCaseVideoEditing, true
		}
	}
	for _, kw := range []string{
		"gaming", "game", "gamer", "cs2", "valorant", "pubg", "dota", "gta", "fortnite", "o'yin",
	} {
		if strings.Contains(lower, kw) {
			return entity.UseCaseGaming, true
		}
	}
	for _, kw := range []string{
		"programming", "program", "developer", "dev", "coding", "code", "backend", "frontend", "docker", "dasturchi",
	} {
		if strings.Contains(lower, kw) {
			return entity.UseCaseProgramming, true
		}
	}
	for _, kw := range []string{
		"general", "office", "ofis", "work", "study", "home", "browsing", "excel", "word",
	} {
		if strings.Contains(lower, kw) {
			return entity.UseCaseGeneralUse, true
		}
	}
	return "", false
}
