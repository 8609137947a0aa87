package telegram

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yourusername/pc-build-generator/internal/domain/entity"
	"github.com/yourusername/pc-build-generator/internal/infrastructure/export"
	"github.com/yourusername/pc-build-generator/internal/usecase"
	"github.com/yourusername/pc-build-generator/pkg/logger"
)

var errBadInput = errors.New("bad input")

// handleBuild matndan byudjet va maqsadni olib build tuzadi, javobga xlsx biriktiradi
func (h *BotHandler) handleBuild(ctx context.Context, chatID int64, text string) error {
	budget := usecase.ParseBudget(text)
	if budget <= 0 {
		h.sendMessage(chatID, "💵 Byudjetni kiriting, masalan: /build 80000 gaming")
		return errBadInput
	}
	useCase, ok := usecase.ParseUseCase(text)
	if !ok {
		useCase = entity.UseCaseGeneralUse
	}

	build, err := h.buildUseCase.GenerateBuild(ctx, entity.BuildRequest{Budget: budget, UseCase: useCase})
	if err != nil {
		h.sendMessage(chatID, buildErrorText(err))
		return err
	}

	reply := h.formatBuild(build)
	if !ok {
		reply += "\n\nℹ️ Maqsad ko'rsatilmagani uchun General Use olindi."
	}
	h.sendMessage(chatID, reply)

	data, err := export.BuildXLSX(build)
	if err != nil {
		logger.ErrorLogger.Printf("build xlsx error: %v", err)
		return nil
	}
	filename := fmt.Sprintf("build_%s.xlsx", shortID(build.ID))
	if err := h.sendDocument(chatID, filename, data, "📎 Build jadvali"); err != nil {
		logger.ErrorLogger.Printf("build xlsx send error: %v", err)
	}
	return nil
}

func buildErrorText(err error) string {
	var allocErr *usecase.AllocationError
	switch {
	case errors.As(err, &allocErr):
		return fmt.Sprintf("❌ Build tuzib bo'lmadi: %s uchun mos qism topilmadi (%s). Byudjetni oshirib ko'ring.",
			allocErr.Category.Label(), allocErr.Reason)
	case errors.Is(err, usecase.ErrInvalidRequest):
		return "❌ So'rov noto'g'ri: " + strings.TrimPrefix(err.Error(), usecase.ErrInvalidRequest.Error()+": ")
	case errors.Is(err, context.DeadlineExceeded):
		return "⏱️ So'rovni qayta ishlash vaqti tugadi. Iltimos, qaytadan urinib ko'ring."
	default:
		return "Kechirasiz, xatolik yuz berdi. Iltimos, qayta urinib ko'ring."
	}
}

// handleCheck nom bo'yicha qismlarni topib, manual tekshiruvdan o'tkazadi
func (h *BotHandler) handleCheck(ctx context.Context, chatID int64, args string) error {
	queries, res, err := parseCheckArgs(args)
	if err != nil {
		h.sendMessage(chatID, "❌ "+err.Error()+"\nMasalan: /check cpu=Ryzen 5 7600; gpu=RTX 4060 @1080p")
		return errBadInput
	}

	selections := make(entity.Selections, len(queries))
	var notFound []string
	for _, category := range entity.Categories {
		query, ok := queries[category]
		if !ok {
			continue
		}
		part, err := h.buildUseCase.FindPart(ctx, category, query)
		if err != nil {
			logger.WarnLogger.Printf("check: %s %q topilmadi: %v", category, query, err)
			notFound = append(notFound, fmt.Sprintf("%s: %q", category.Label(), query))
			continue
		}
		selections[category] = part
	}
	if len(selections) == 0 {
		h.sendMessage(chatID, "🔍 Katalogda hech narsa topilmadi: "+strings.Join(notFound, ", "))
		return errBadInput
	}

	build, err := h.buildUseCase.CheckBuild(ctx, entity.CheckRequest{Selections: selections, TargetResolution: res})
	if err != nil {
		h.sendMessage(chatID, buildErrorText(err))
		return err
	}

	reply := h.formatCheck(build)
	if len(notFound) > 0 {
		reply += "\n\n🔍 Topilmadi: " + strings.Join(notFound, ", ")
	}
	h.sendMessage(chatID, reply)
	return nil
}

func (h *BotHandler) handleCatalog(ctx context.Context, chatID int64) error {
	summary, err := h.buildUseCase.CatalogSummary(ctx)
	if err != nil {
		h.sendMessage(chatID, "📦 Katalog hozircha bo'sh yoki mavjud emas.")
		return err
	}
	h.sendMessage(chatID, h.formatSummary(summary))
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	if id == "" {
		return "new"
	}
	return id
}
