package gemini

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/yourusername/pc-build-generator/internal/domain/constants"
	"github.com/yourusername/pc-build-generator/internal/domain/entity"
	"github.com/yourusername/pc-build-generator/internal/domain/repository"
	"github.com/yourusername/pc-build-generator/pkg/logger"
	"google.golang.org/api/option"
)

// ErrBlocked javob safety filtri tomonidan bloklandi
var ErrBlocked = errors.New("gemini response blocked by safety filter")

type generateFunc func(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)

type geminiReviewer struct {
	client     *genai.Client
	generate   generateFunc
	retryDelay time.Duration
}

// NewBuildReviewer yangi Gemini build reviewer yaratish
func NewBuildReviewer(ctx context.Context, apiKey string) (repository.BuildReviewer, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(constants.GeminiModelName)
	model.SetTemperature(constants.AITemperature)
	model.SetTopK(constants.AITopK)
	model.SetTopP(constants.AITopP)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(ReviewInstruction)},
	}

	return &geminiReviewer{
		client:     client,
		generate:   model.GenerateContent,
		retryDelay: constants.RetryDelay * time.Second,
	}, nil
}

// ReviewBuild returns a short plain-text review of b.
func (g *geminiReviewer) ReviewBuild(ctx context.Context, b *entity.Build) (string, error) {
	prompt := genai.Text(BuildPrompt(b))

	var lastErr error
	for attempt := 1; attempt <= constants.MaxRetries; attempt++ {
		logger.InfoLogger.Printf("Gemini review so'rovi (urinish %d/%d)", attempt, constants.MaxRetries)

		resp, err := g.generate(ctx, prompt)
		switch {
		case err != nil:
			lastErr = err
		case resp == nil || len(resp.Candidates) == 0:
			lastErr = errors.New("no response candidates")
		case resp.Candidates[0].FinishReason == genai.FinishReasonSafety:
			return "", ErrBlocked
		default:
			if text := strings.TrimSpace(extractText(resp)); text != "" {
				return text, nil
			}
			lastErr = errors.New("empty response")
		}

		logger.WarnLogger.Printf("Gemini urinish %d xato: %v", attempt, lastErr)
		if attempt < constants.MaxRetries {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(g.retryDelay):
			}
		}
	}
	return "", fmt.Errorf("gemini review failed after %d attempts: %w", constants.MaxRetries, lastErr)
}

// BuildPrompt build ma'lumotlarini AI uchun matnga aylantirish
func BuildPrompt(b *entity.Build) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Use case: %s\n", b.UseCase)
	fmt.Fprintf(&sb, "Budget: %s\n", strconv.FormatFloat(b.Budget, 'f', -1, 64))
	sb.WriteString("Parts:\n")
	for _, category := range entity.Categories {
		part := b.Part(category)
		if part == nil {
			fmt.Fprintf(&sb, "- %s: none\n", category.Label())
			continue
		}
		fmt.Fprintf(&sb, "- %s: %s | price %s | score %s",
			category.Label(), part.Name,
			strconv.FormatFloat(part.Price, 'f', -1, 64),
			strconv.FormatFloat(part.PerformanceScore, 'f', -1, 64))
		if part.Socket != "" {
			fmt.Fprintf(&sb, " | socket %s", part.Socket)
		}
		if part.RAMType != "" {
			fmt.Fprintf(&sb, " | ram %s", part.RAMType)
		}
		if part.Wattage > 0 {
			fmt.Fprintf(&sb, " | %sW", strconv.FormatFloat(part.Wattage, 'f', -1, 64))
		}
		sb.WriteString("\n")
	}
	fmt.Fprintf(&sb, "Total price: %s\n", strconv.FormatFloat(b.TotalPrice, 'f', -1, 64))
	return sb.String()
}

func extractText(resp *genai.GenerateContentResponse) string {
	var sb strings.Builder
	for _, cand := range resp.Candidates {
		if cand == nil || cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if txt, ok := part.(genai.Text); ok {
				sb.WriteString(string(txt))
			}
		}
		break
	}
	return sb.String()
}

// Close clientni yopish
func (g *geminiReviewer) Close() error {
	if g.client == nil {
		return nil
	}
	return g.client.Close()
}
