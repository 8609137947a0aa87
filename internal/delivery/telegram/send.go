package telegram

import (
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/yourusername/pc-build-generator/pkg/logger"
)

const telegramMessageLimit = 4096

func (h *BotHandler) sendMessage(chatID int64, text string) {
	if h.bot == nil {
		logger.WarnLogger.Printf("sendMessage skipped (bot is nil) chat=%d", chatID)
		return
	}

	// Bo'sh xabar tekshirish
	if strings.TrimSpace(text) == "" {
		logger.WarnLogger.Printf("⚠️ Bo'sh xabar yuborilmoqchi bo'ldi! ChatID: %d", chatID)
		text = "Kechirasiz, javob tayyorlanmadi. /help ni ko'ring."
	}

	for _, chunk := range splitIntoChunks(text, telegramMessageLimit) {
		if _, err := h.bot.Send(tgbotapi.NewMessage(chatID, chunk)); err != nil {
			logger.ErrorLogger.Printf("Xabar yuborishda xatolik: %v", err)
			return
		}
	}
}

// sendDocument xlsx va boshqa fayllarni yuborish
func (h *BotHandler) sendDocument(chatID int64, filename string, data []byte, caption string) error {
	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{Name: filename, Bytes: data})
	doc.Caption = caption
	_, err := h.bot.Send(doc)
	return err
}

// sendTyping "yozmoqda..." indikatori
func (h *BotHandler) sendTyping(chatID int64) {
	if h.bot == nil {
		return
	}
	if _, err := h.bot.Send(tgbotapi.NewChatAction(chatID, tgbotapi.ChatTyping)); err != nil {
		logger.WarnLogger.Printf("typing action error: %v", err)
	}
}

// splitIntoChunks uzun matnni Telegram limitiga bo'lish; qatorlar iloji boricha butun qoladi
func splitIntoChunks(s string, limit int) []string {
	if limit <= 0 || len(s) <= limit {
		return []string{s}
	}
	var chunks []string
	var current strings.Builder

	for _, line := range strings.SplitAfter(s, "\n") {
		if current.Len()+len(line) > limit && current.Len() > 0 {
			chunks = append(chunks, current.String())
			current.Reset()
		}
		for len(line) > limit {
			cut := limit
			// rune o'rtasidan kesmaslik
			for cut > 0 && !isRuneStart(line[cut]) {
				cut--
			}
			if cut == 0 {
				// yaroqsiz UTF-8: rune boshi topilmadi
				cut = limit
			}
			chunks = append(chunks, line[:cut])
			line = line[cut:]
		}
		current.WriteString(line)
	}
	if current.Len() > 0 {
		chunks = append(chunks, current.String())
	}
	return chunks
}

func isRuneStart(b byte) bool {
	return b&0xC0 != 0x80
}
