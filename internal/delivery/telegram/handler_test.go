package telegram

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/yourusername/pc-build-generator/internal/domain/entity"
	"github.com/yourusername/pc-build-generator/internal/usecase"
)

type fakeBot struct {
	mu      sync.Mutex
	sent    []tgbotapi.Chattable
	updates chan tgbotapi.Update
	stopped bool
}

func (f *fakeBot) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, c)
	return tgbotapi.Message{MessageID: len(f.sent)}, nil
}

func (f *fakeBot) GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	return f.updates
}

func (f *fakeBot) StopReceivingUpdates() {
	f.mu.Lock()
	f.stopped = true
	f.mu.Unlock()
}

func (f *fakeBot) texts() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for _, c := range f.sent {
		if msg, ok := c.(tgbotapi.MessageConfig); ok {
			out = append(out, msg.Text)
		}
	}
	return out
}

func (f *fakeBot) documents() []tgbotapi.DocumentConfig {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []tgbotapi.DocumentConfig
	for _, c := range f.sent {
		if doc, ok := c.(tgbotapi.DocumentConfig); ok {
			out = append(out, doc)
		}
	}
	return out
}

type stubBuildUseCase struct {
	mu        sync.Mutex
	lastReq   entity.BuildRequest
	lastCheck entity.CheckRequest
	build     *entity.Build
	err       error
	parts     map[entity.Category]*entity.Component
	summary   []usecase.CategorySummary
}

func (s *stubBuildUseCase) GenerateBuild(ctx context.Context, req entity.BuildRequest) (*entity.Build, error) {
	s.mu.Lock()
	s.lastReq = req
	s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	b := *s.build
	b.Budget = req.Budget
	b.UseCase = req.UseCase
	return &b, nil
}

func (s *stubBuildUseCase) CheckBuild(ctx context.Context, req entity.CheckRequest) (*entity.Build, error) {
	s.lastCheck = req
	return usecase.NewManualValidator("").Validate(req.Selections, entity.NewCatalog(nil, "test"), req.TargetResolution), nil
}

func (s *stubBuildUseCase) ImportCatalog(ctx context.Context, imp usecase.CatalogImport) (*entity.Catalog, error) {
	return entity.NewCatalog(imp.Components, imp.Source), nil
}

func (s *stubBuildUseCase) CatalogSummary(ctx context.Context) ([]usecase.CategorySummary, error) {
	if s.summary == nil {
		return nil, errors.New("catalog is empty")
	}
	return s.summary, nil
}

func (s *stubBuildUseCase) FindPart(ctx context.Context, category entity.Category, query string) (*entity.Component, error) {
	if p, ok := s.parts[category]; ok {
		return p, nil
	}
	return nil, errors.New("not found")
}

type stubRecorder struct {
	mu       sync.Mutex
	commands []string
	errs     int
}

func (s *stubRecorder) ObserveBotRequest(command string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.commands = append(s.commands, command)
	if err != nil {
		s.errs++
	}
}

func sampleBuild() *entity.Build {
	return &entity.Build{
		ID:         "0f8fad5b-d9cb-469f-a165-70867728950e",
		CPU:        &entity.Component{Name: "Ryzen 5 7600", Price: 20000, PerformanceScore: 80},
		GPU:        &entity.Component{Name: "RTX 4060", Price: 30000, PerformanceScore: 85},
		TotalPrice: 50000,
		Allocator:  "greedy",
		Benchmark:  &entity.BenchmarkEstimate{FPS1080p: 136, FPS1440p: 92, FPS4K: 52, CinebenchScore: 1760, OverallRating: 7.6, PowerDrawWatts: 330},
	}
}

func newTestHandler(uc *stubBuildUseCase) (*BotHandler, *fakeBot, *stubRecorder) {
	bot := &fakeBot{updates: make(chan tgbotapi.Update, 10)}
	rec := &stubRecorder{}
	h := newBotHandler(bot, uc, Options{Workers: 1, Recorder: rec})
	return h, bot, rec
}

func TestHandleBuild(t *testing.T) {
	uc := &stubBuildUseCase{build: sampleBuild()}
	h, bot, _ := newTestHandler(uc)

	if err := h.handleBuild(context.Background(), 42, "gaming pc 80k"); err != nil {
		t.Fatalf("handleBuild: %v", err)
	}
	if uc.lastReq.Budget != 80000 || uc.lastReq.UseCase != entity.UseCaseGaming {
		t.Fatalf("request = %+v", uc.lastReq)
	}

	texts := bot.texts()
	if len(texts) != 1 {
		t.Fatalf("expected one text reply, got %v", texts)
	}
	for _, want := range []string{"Gaming build, byudjet ₹80,000", "CPU: Ryzen 5 7600 | ₹20,000 | score 80", "Jami: ₹50,000", "136 / 92 / 52"} {
		if !strings.Contains(texts[0], want) {
			t.Fatalf("reply missing %q:\n%s", want, texts[0])
		}
	}

	docs := bot.documents()
	if len(docs) != 1 {
		t.Fatalf("expected the xlsx attachment")
	}
	if file, ok := docs[0].File.(tgbotapi.FileBytes); !ok || file.Name != "build_0f8fad5b.xlsx" || len(file.Bytes) == 0 {
		t.Fatalf("unexpected document: %+v", docs[0].File)
	}
}

func TestHandleBuildDefaultsUseCase(t *testing.T) {
	uc := &stubBuildUseCase{build: sampleBuild()}
	h, bot, _ := newTestHandler(uc)

	if err := h.handleBuild(context.Background(), 1, "/build 60000"); err != nil {
		t.Fatalf("handleBuild: %v", err)
	}
	if uc.lastReq.UseCase != entity.UseCaseGeneralUse {
		t.Fatalf("UseCase = %q", uc.lastReq.UseCase)
	}
	if !strings.Contains(bot.texts()[0], "General Use olindi") {
		t.Fatalf("default use case should be mentioned")
	}
}

func TestHandleBuildErrors(t *testing.T) {
	uc := &stubBuildUseCase{build: sampleBuild()}
	h, bot, _ := newTestHandler(uc)

	if err := h.handleBuild(context.Background(), 1, "gaming please"); !errors.Is(err, errBadInput) {
		t.Fatalf("missing budget should be bad input, got %v", err)
	}

	uc.err = &usecase.AllocationError{Category: entity.CategoryPSU, Reason: usecase.ReasonInsufficientPSU}
	if err := h.handleBuild(context.Background(), 1, "gaming 50000"); err == nil {
		t.Fatalf("expected allocation error")
	}
	texts := bot.texts()
	if last := texts[len(texts)-1]; !strings.Contains(last, "PSU uchun mos qism topilmadi") {
		t.Fatalf("unexpected error reply: %q", last)
	}
	if len(bot.documents()) != 0 {
		t.Fatalf("no document on failure")
	}
}

func TestHandleCheck(t *testing.T) {
	uc := &stubBuildUseCase{parts: map[entity.Category]*entity.Component{
		entity.CategoryCPU: {Name: "Core i7", Socket: "LGA1700", PerformanceScore: 95, Price: 30000},
		entity.CategoryGPU: {Name: "GTX 1650", PerformanceScore: 40, Price: 12000},
	}}
	h, bot, _ := newTestHandler(uc)

	err := h.handleCheck(context.Background(), 1, "cpu=i7; gpu=1650; motherboard=b650 @1440p")
	if err != nil {
		t.Fatalf("handleCheck: %v", err)
	}
	if len(uc.lastCheck.Selections) != 2 || uc.lastCheck.TargetResolution != entity.Resolution1440p {
		t.Fatalf("check request = %+v", uc.lastCheck)
	}
	reply := bot.texts()[0]
	for _, want := range []string{"Moslik bahosi: 100/100", "GPU Bottleneck (57.9%)", "Topilmadi: Motherboard: \"b650\""} {
		if !strings.Contains(reply, want) {
			t.Fatalf("reply missing %q:\n%s", want, reply)
		}
	}
}

func TestHandleCheckNothingFound(t *testing.T) {
	h, bot, _ := newTestHandler(&stubBuildUseCase{})
	if err := h.handleCheck(context.Background(), 1, "gpu=unknown"); !errors.Is(err, errBadInput) {
		t.Fatalf("expected bad input, got %v", err)
	}
	if !strings.Contains(bot.texts()[0], "hech narsa topilmadi") {
		t.Fatalf("reply = %q", bot.texts()[0])
	}
}

func TestHandleCatalog(t *testing.T) {
	uc := &stubBuildUseCase{summary: []usecase.CategorySummary{
		{Category: entity.CategoryCPU, Count: 2, MinPrice: 9000, MaxPrice: 45000, MaxScore: 92},
		{Category: entity.CategoryGPU},
	}}
	h, bot, _ := newTestHandler(uc)
	if err := h.handleCatalog(context.Background(), 1); err != nil {
		t.Fatalf("handleCatalog: %v", err)
	}
	reply := bot.texts()[0]
	if !strings.Contains(reply, "CPU: 2 ta, ₹9,000 - ₹45,000, max score 92") || !strings.Contains(reply, "GPU: yo'q") {
		t.Fatalf("reply = %s", reply)
	}

	uc.summary = nil
	if err := h.handleCatalog(context.Background(), 1); err == nil {
		t.Fatalf("expected error for empty catalog")
	}
}

func command(text string) *tgbotapi.Message {
	msg := &tgbotapi.Message{
		Text: text,
		From: &tgbotapi.User{ID: 7},
		Chat: &tgbotapi.Chat{ID: 7, Type: "private"},
	}
	if strings.HasPrefix(text, "/") {
		end := strings.IndexByte(text, ' ')
		if end < 0 {
			end = len(text)
		}
		msg.Entities = []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: end}}
	}
	return msg
}

func TestStartRoutesUpdates(t *testing.T) {
	uc := &stubBuildUseCase{build: sampleBuild()}
	h, bot, rec := newTestHandler(uc)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- h.Start(ctx) }()

	bot.updates <- tgbotapi.Update{Message: command("/help")}
	bot.updates <- tgbotapi.Update{Message: command("/build 90000 video editing")}
	bot.updates <- tgbotapi.Update{Message: command("/unknown")}

	deadline := time.Now().Add(2 * time.Second)
	for len(bot.documents()) == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	cancel()
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Fatalf("Start returned %v", err)
	}

	if len(bot.documents()) != 1 {
		t.Fatalf("build reply with document expected")
	}
	if uc.lastReq.UseCase != entity.UseCaseVideoEditing || uc.lastReq.Budget != 90000 {
		t.Fatalf("request = %+v", uc.lastReq)
	}
	texts := strings.Join(bot.texts(), "\n")
	if !strings.Contains(texts, "Komandalar:") || !strings.Contains(texts, "Noma'lum komanda") {
		t.Fatalf("help/unknown replies missing:\n%s", texts)
	}
	if !bot.stopped {
		t.Fatalf("updates not stopped")
	}
	rec.mu.Lock()
	defer rec.mu.Unlock()
	if len(rec.commands) != 2 || rec.commands[0] != cmdHelp || rec.commands[1] != cmdBuild {
		t.Fatalf("recorded commands = %v", rec.commands)
	}
	if h.isProcessing(7) {
		t.Fatalf("processing flag not released")
	}
}

func TestHandleMessagePlainText(t *testing.T) {
	h, bot, _ := newTestHandler(&stubBuildUseCase{build: sampleBuild()})

	h.handleMessage(context.Background(), command("salom"))
	if !strings.Contains(bot.texts()[0], "Tushunmadim") {
		t.Fatalf("reply = %q", bot.texts()[0])
	}

	h.handleMessage(context.Background(), command("gaming pc 85000"))
	if len(h.workerPool.requestQueue) != 1 {
		t.Fatalf("budget text should be queued as a build")
	}
	req := <-h.workerPool.requestQueue
	if req.command != cmdBuild || req.args != "gaming pc 85000" {
		t.Fatalf("queued request = %+v", req)
	}

	// second request while the first is pending
	h.handleMessage(context.Background(), command("/catalog"))
	if !strings.Contains(bot.texts()[1], "/build so'rovingiz hali bajarilmoqda") {
		t.Fatalf("busy reply expected, got %v", bot.texts())
	}
}

func TestProcessingGuard(t *testing.T) {
	h, _, _ := newTestHandler(&stubBuildUseCase{})

	if _, ok := h.startProcessing(3, cmdCheck); !ok {
		t.Fatalf("first request must start")
	}
	running, ok := h.startProcessing(3, cmdBuild)
	if ok || running != cmdCheck {
		t.Fatalf("startProcessing = %q, %v; want running check", running, ok)
	}
	h.endProcessing(3)
	if h.isProcessing(3) {
		t.Fatalf("flag not released")
	}
	if _, ok := h.startProcessing(3, cmdBuild); !ok {
		t.Fatalf("released user must be able to start again")
	}
}
