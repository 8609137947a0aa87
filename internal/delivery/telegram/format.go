package telegram

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yourusername/pc-build-generator/internal/domain/entity"
	"github.com/yourusername/pc-build-generator/internal/usecase"
)

const helpText = `🖥 PC Build Generator

Komandalar:
/build <byudjet> <maqsad> - build tuzish, masalan: /build 80000 gaming
/check cpu=<nom>; gpu=<nom>; ... @1440p - tanlangan qismlarni tekshirish
/catalog - katalog bo'yicha qisqa ma'lumot
/help - yordam

Maqsadlar: Gaming, Programming, Video Editing, General Use.
Oddiy matn ham bo'ladi: "video editing uchun 1.5 lakh".`

func (h *BotHandler) money(v float64) string {
	return h.currency + usecase.FormatAmount(v)
}

func score(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// formatBuild allocator natijasini chat uchun matnga aylantirish
func (h *BotHandler) formatBuild(b *entity.Build) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "🖥 %s build, byudjet %s\n\n", b.UseCase, h.money(b.Budget))

	for _, category := range entity.Categories {
		part := b.Part(category)
		if part == nil {
			continue
		}
		fmt.Fprintf(&sb, "• %s: %s | %s | score %s\n", category.Label(), part.Name, h.money(part.Price), score(part.PerformanceScore))
	}
	fmt.Fprintf(&sb, "\n💰 Jami: %s", h.money(b.TotalPrice))
	if b.Budget > 0 && b.TotalPrice > b.Budget {
		fmt.Fprintf(&sb, " (byudjetdan %s oshdi)", h.money(b.TotalPrice-b.Budget))
	}
	sb.WriteString("\n")
	if b.Strategy != "" {
		fmt.Fprintf(&sb, "🧭 Strategiya: %s\n", b.Strategy)
	}

	if est := b.Benchmark; est != nil {
		fmt.Fprintf(&sb, "\n📊 FPS 1080p / 1440p / 4K: %d / %d / %d\n", est.FPS1080p, est.FPS1440p, est.FPS4K)
		fmt.Fprintf(&sb, "Cinebench: %d | Reyting: %s/10 | Quvvat: ~%sW\n", est.CinebenchScore, score(est.OverallRating), score(est.PowerDrawWatts))
	}
	if b.Reasoning != "" {
		fmt.Fprintf(&sb, "\n🧠 %s\n", b.Reasoning)
	}
	return strings.TrimRight(sb.String(), "\n")
}

// formatCheck manual tekshiruv natijasi
func (h *BotHandler) formatCheck(b *entity.Build) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "✅ Moslik bahosi: %d/100\n", b.CompatibilityScore)

	for _, category := range entity.Categories {
		if part := b.Part(category); part != nil {
			fmt.Fprintf(&sb, "• %s: %s | %s\n", category.Label(), part.Name, h.money(part.Price))
		}
	}
	fmt.Fprintf(&sb, "💰 Jami: %s\n", h.money(b.TotalPrice))

	if len(b.Issues) > 0 {
		sb.WriteString("\n❌ Muammolar:\n")
		for _, issue := range b.Issues {
			fmt.Fprintf(&sb, "- %s\n", issue)
		}
	}
	if len(b.Bottlenecks) > 0 {
		sb.WriteString("\n⚠️ Bottleneck:\n")
		for _, bn := range b.Bottlenecks {
			line := "- " + bn.Type
			if bn.Percentage != nil {
				line += " (" + score(*bn.Percentage) + "%)"
			}
			line += ": " + bn.Details
			if bn.Suggestion != nil {
				line += " Tavsiya: " + bn.Suggestion.Name + " (" + h.money(bn.Suggestion.Price) + ")"
			}
			sb.WriteString(line + "\n")
		}
	}
	if len(b.Upgrades) > 0 {
		sb.WriteString("\n⬆️ Upgrade:\n")
		for _, category := range entity.Categories {
			if up, ok := b.Upgrades[category]; ok {
				fmt.Fprintf(&sb, "- %s: %s (%s)\n", category.Label(), up.Component.Name, up.Reason)
			}
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}

// formatSummary /catalog javobi
func (h *BotHandler) formatSummary(summary []usecase.CategorySummary) string {
	var sb strings.Builder
	sb.WriteString("📦 Katalog:\n")
	total := 0
	for _, s := range summary {
		total += s.Count
		if s.Count == 0 {
			fmt.Fprintf(&sb, "• %s: yo'q\n", s.Category.Label())
			continue
		}
		fmt.Fprintf(&sb, "• %s: %d ta, %s - %s, max score %s\n",
			s.Category.Label(), s.Count, h.money(s.MinPrice), h.money(s.MaxPrice), score(s.MaxScore))
	}
	fmt.Fprintf(&sb, "Jami: %d ta", total)
	return sb.String()
}
