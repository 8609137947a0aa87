package telegram

import (
	"context"
	"fmt"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/yourusername/pc-build-generator/internal/domain/constants"
	"github.com/yourusername/pc-build-generator/internal/usecase"
	"github.com/yourusername/pc-build-generator/pkg/logger"
)

// botAPI tgbotapi.BotAPI ning biz ishlatadigan qismi (testlarda almashtiriladi)
type botAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// RequestRecorder bot komandalarini hisoblash (*metrics.Metrics)
type RequestRecorder interface {
	ObserveBotRequest(command string, err error)
}

// BotHandler Telegram bot handler
type BotHandler struct {
	bot          botAPI
	username     string
	buildUseCase usecase.BuildUseCase
	recorder     RequestRecorder
	currency     string

	processingMu sync.RWMutex
	processing   map[int64]string // userID -> bajarilayotgan komanda

	workerPool *workerPool
}

// Options ixtiyoriy sozlamalar
type Options struct {
	Workers  int
	Currency string
	Recorder RequestRecorder
}

// NewBotHandler yangi bot handler yaratish
func NewBotHandler(token string, buildUseCase usecase.BuildUseCase, opts Options) (*BotHandler, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}
	h := newBotHandler(bot, buildUseCase, opts)
	h.username = bot.Self.UserName
	return h, nil
}

func newBotHandler(bot botAPI, buildUseCase usecase.BuildUseCase, opts Options) *BotHandler {
	currency := opts.Currency
	if currency == "" {
		currency = constants.DefaultCurrencySymbol
	}
	h := &BotHandler{
		bot:          bot,
		buildUseCase: buildUseCase,
		recorder:     opts.Recorder,
		currency:     currency,
		processing:   make(map[int64]string),
	}
	h.workerPool = newWorkerPool(h, opts.Workers)
	return h
}

// GetBotUsername bot username
func (h *BotHandler) GetBotUsername() string {
	return h.username
}

// Start update'larni qabul qilish; ctx bekor bo'lguncha bloklaydi
func (h *BotHandler) Start(ctx context.Context) error {
	h.workerPool.start(ctx)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := h.bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			h.bot.StopReceivingUpdates()
			h.workerPool.shutdown()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				h.workerPool.shutdown()
				return nil
			}
			if update.Message == nil {
				continue
			}
			h.handleMessage(ctx, update.Message)
		}
	}
}

func (h *BotHandler) observe(command string, err error) {
	if h.recorder != nil {
		h.recorder.ObserveBotRequest(command, err)
	}
	if err != nil {
		logger.WarnLogger.Printf("bot /%s xatosi: %v", command, err)
	}
}
