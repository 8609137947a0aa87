package optimizer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"sort"
	"strings"
	"time"

	"github.com/yourusername/pc-build-generator/internal/domain/constants"
	"github.com/yourusername/pc-build-generator/internal/domain/entity"
	"github.com/yourusername/pc-build-generator/pkg/logger"
	"go.uber.org/zap"
)

const stderrExcerptLimit = 512

// ExternalOptimizerError tashqi optimizer jarayoni muvaffaqiyatsiz tugadi. Never retried.
type ExternalOptimizerError struct {
	Op     string
	Stderr string
	Err    error
}

func (e *ExternalOptimizerError) Error() string {
	msg := fmt.Sprintf("external optimizer %s failed", e.Op)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if e.Stderr != "" {
		msg += " (stderr: " + e.Stderr + ")"
	}
	return msg
}

func (e *ExternalOptimizerError) Unwrap() error {
	return e.Err
}

// Config external optimizer sozlamalari
type Config struct {
	Command  string
	Args     []string
	Strategy string
	Timeout  time.Duration
}

// ExternalAllocator delegates allocation to a subprocess speaking JSON over stdin/stdout.
type ExternalAllocator struct {
	cfg Config
}

// NewExternalAllocator yangi adapter
func NewExternalAllocator(cfg Config) *ExternalAllocator {
	if cfg.Timeout <= 0 {
		cfg.Timeout = constants.DefaultOptimizerTimeout * time.Second
	}
	if strings.TrimSpace(cfg.Strategy) == "" {
		cfg.Strategy = constants.DefaultOptimizerStrategy
	}
	return &ExternalAllocator{cfg: cfg}
}

// Name allocator nomi
func (a *ExternalAllocator) Name() string {
	return "external"
}

type optimizerRequest struct {
	Request  requestBody        `json:"request"`
	Database []entity.Component `json:"database"`
}

type requestBody struct {
	Budget  float64 `json:"budget"`
	UseCase string  `json:"useCase"`
}

type optimizerResponse struct {
	Status    string                      `json:"status"`
	Message   string                      `json:"message"`
	Build     map[string]*wirePart        `json:"build"`
	Options   map[string]strategyResponse `json:"options"`
	Total     *float64                    `json:"totalPrice"`
	AIScore   float64                     `json:"ai_score"`
	Reasoning string                      `json:"reasoning"`
}

type strategyResponse struct {
	TotalPrice float64              `json:"totalPrice"`
	AIScore    float64              `json:"ai_score"`
	Parts      map[string]*wirePart `json:"parts"`
}

// wirePart tolerant decoding of a part emitted by the optimizer (purpose may be a list or a string)
type wirePart struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	Price            float64         `json:"price"`
	PerformanceScore float64         `json:"performance_score"`
	Description      string          `json:"description"`
	Purpose          json.RawMessage `json:"purpose"`
	Socket           string          `json:"socket"`
	RAMType          string          `json:"ram_type"`
	Wattage          float64         `json:"watt"`
	VRAMGB           float64         `json:"vram"`
	CapacityGB       float64         `json:"capacity"`
}

func (w *wirePart) component(category entity.Category) *entity.Component {
	c := &entity.Component{
		ID:               w.ID,
		Category:         category,
		Name:             w.Name,
		Price:            w.Price,
		PerformanceScore: w.PerformanceScore,
		Description:      w.Description,
		PurposeTags:      []string{},
		Socket:           w.Socket,
		RAMType:          w.RAMType,
		Wattage:          w.Wattage,
		VRAMGB:           w.VRAMGB,
		CapacityGB:       w.CapacityGB,
	}
	if len(w.Purpose) > 0 {
		var tags []string
		if err := json.Unmarshal(w.Purpose, &tags); err == nil {
			c.PurposeTags = tags
		} else {
			var tag string
			if err := json.Unmarshal(w.Purpose, &tag); err == nil && tag != "" {
				c.PurposeTags = []string{tag}
			}
		}
	}
	return c
}

// Allocate runs the configured command once; any failure is an *ExternalOptimizerError.
func (a *ExternalAllocator) Allocate(ctx context.Context, req entity.BuildRequest, catalog *entity.Catalog) (*entity.Build, error) {
	if strings.TrimSpace(a.cfg.Command) == "" {
		return nil, &ExternalOptimizerError{Op: "start", Err: errors.New("no optimizer command configured")}
	}

	payload, err := json.Marshal(optimizerRequest{
		Request:  requestBody{Budget: req.Budget, UseCase: string(req.UseCase)},
		Database: catalog.All(),
	})
	if err != nil {
		return nil, &ExternalOptimizerError{Op: "encode", Err: err}
	}

	runCtx, cancel := context.WithTimeout(ctx, a.cfg.Timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, a.cfg.Command, a.cfg.Args...)
	cmd.Stdin = bytes.NewReader(payload)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	runErr := cmd.Run()
	logger.L().Debug("external optimizer finished",
		zap.String("command", a.cfg.Command),
		zap.Duration("elapsed", time.Since(start)),
		zap.Int("stdout_bytes", stdout.Len()),
	)

	if runErr != nil {
		if ctxErr := runCtx.Err(); ctxErr != nil {
			runErr = fmt.Errorf("%w: %v", ctxErr, runErr)
		}
		// optimizer may still have printed {status:"error"} before exiting non-zero
		if msg := errorMessage(stdout.Bytes()); msg != "" {
			runErr = fmt.Errorf("%w: %s", runErr, msg)
		}
		return nil, &ExternalOptimizerError{Op: "run", Stderr: excerpt(stderr.String()), Err: runErr}
	}

	var resp optimizerResponse
	if err := json.Unmarshal(bytes.TrimSpace(stdout.Bytes()), &resp); err != nil {
		return nil, &ExternalOptimizerError{Op: "decode", Stderr: excerpt(stderr.String()), Err: err}
	}
	if resp.Status == "error" {
		return nil, &ExternalOptimizerError{Op: "optimize", Err: errors.New(resp.Message)}
	}

	build, err := a.toBuild(resp)
	if err != nil {
		return nil, &ExternalOptimizerError{Op: "result", Err: err}
	}
	build.UseCase = req.UseCase
	build.Budget = req.Budget
	build.Allocator = a.Name()
	return build, nil
}

func (a *ExternalAllocator) toBuild(resp optimizerResponse) (*entity.Build, error) {
	build := &entity.Build{Reasoning: resp.Reasoning}
	var parts map[string]*wirePart

	switch {
	case resp.Build != nil:
		parts = resp.Build
		build.AIScore = resp.AIScore
	case len(resp.Options) > 0:
		key := a.chooseStrategy(resp.Options)
		option := resp.Options[key]
		parts = option.Parts
		build.Strategy = key
		build.AIScore = option.AIScore
	default:
		return nil, errors.New("response has neither build nor options")
	}

	for raw, part := range parts {
		category, ok := entity.ParseCategory(raw)
		if !ok || part == nil {
			continue
		}
		build.SetPart(category, part.component(category))
	}

	if !build.IsComplete() {
		return nil, fmt.Errorf("incomplete optimizer result, got [%s]", strings.Join(build.GetComponentList(), ", "))
	}
	if err := checkCompatibility(build); err != nil {
		return nil, err
	}

	build.TotalPrice = build.GetTotalPrice()
	return build, nil
}

// chooseStrategy configured strategy, else the first key in sorted order
func (a *ExternalAllocator) chooseStrategy(options map[string]strategyResponse) string {
	if _, ok := options[a.cfg.Strategy]; ok {
		return a.cfg.Strategy
	}
	keys := make([]string, 0, len(options))
	for key := range options {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys[0]
}

func checkCompatibility(b *entity.Build) error {
	if !strings.EqualFold(b.CPU.Socket, b.Motherboard.Socket) {
		return fmt.Errorf("incompatible result: cpu socket %q vs motherboard socket %q", b.CPU.Socket, b.Motherboard.Socket)
	}
	ramType := strings.ToUpper(b.RAM.RAMType)
	boardType := strings.ToUpper(b.Motherboard.RAMType)
	if ramType != "" && boardType != "" && !strings.Contains(boardType, ramType) {
		return fmt.Errorf("incompatible result: ram type %q vs motherboard %q", b.RAM.RAMType, b.Motherboard.RAMType)
	}
	return nil
}

func errorMessage(stdout []byte) string {
	var resp optimizerResponse
	if err := json.Unmarshal(bytes.TrimSpace(stdout), &resp); err != nil {
		return ""
	}
	if resp.Status == "error" {
		return resp.Message
	}
	return ""
}

func excerpt(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > stderrExcerptLimit {
		return s[:stderrExcerptLimit] + "..."
	}
	return s
}
