package telegram

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/yourusername/pc-build-generator/internal/usecase"
)

// Komandalar
const (
	cmdStart   = "start"
	cmdHelp    = "help"
	cmdBuild   = "build"
	cmdCheck   = "check"
	cmdCatalog = "catalog"
)

// handleMessage xabarni qayta ishlash
func (h *BotHandler) handleMessage(ctx context.Context, message *tgbotapi.Message) {
	if message.From == nil || message.Chat == nil {
		return
	}
	userID := message.From.ID
	chatID := message.Chat.ID

	command, args := "", strings.TrimSpace(message.Text)
	if message.IsCommand() {
		command = strings.ToLower(message.Command())
		args = strings.TrimSpace(message.CommandArguments())
	}

	switch command {
	case cmdStart, cmdHelp:
		h.sendMessage(chatID, helpText)
		h.observe(command, nil)
		return
	case cmdBuild, cmdCheck, cmdCatalog:
	case "":
		// oddiy matn: byudjet topilsa build so'rovi deb olinadi
		if usecase.ParseBudget(args) <= 0 {
			h.sendMessage(chatID, "🤔 Tushunmadim. Masalan: \"gaming pc 80000\" yoki /help")
			return
		}
		command = cmdBuild
	default:
		h.sendMessage(chatID, "❓ Noma'lum komanda. /help ni ko'ring.")
		return
	}

	if running, ok := h.startProcessing(userID, command); !ok {
		h.sendMessage(chatID, fmt.Sprintf("⏳ /%s so'rovingiz hali bajarilmoqda, biroz kuting.", running))
		return
	}
	h.workerPool.submit(&botRequest{
		ctx:     ctx,
		userID:  userID,
		chatID:  chatID,
		command: command,
		args:    args,
	})
}

// process worker ichida chaqiriladi
func (h *BotHandler) process(ctx context.Context, req *botRequest) {
	var err error
	switch req.command {
	case cmdBuild:
		err = h.handleBuild(ctx, req.chatID, req.args)
	case cmdCheck:
		err = h.handleCheck(ctx, req.chatID, req.args)
	case cmdCatalog:
		err = h.handleCatalog(ctx, req.chatID)
	}
	h.observe(req.command, err)
}
