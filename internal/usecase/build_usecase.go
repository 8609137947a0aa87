package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/yourusername/pc-build-generator/internal/domain/entity"
	"github.com/yourusername/pc-build-generator/internal/domain/repository"
	"github.com/yourusername/pc-build-generator/pkg/logger"
)

const reviewTimeout = 30 * time.Second

// ErrInvalidRequest so'rov validatsiyadan o'tmadi
var ErrInvalidRequest = errors.New("invalid request")

var requestValidate = validator.New()

// Recorder metrics hook. *metrics.Metrics satisfies it; nil disables recording.
type Recorder interface {
	ObserveBuild(allocator string, elapsed time.Duration, err error)
	ObserveAllocationFailure(category, reason string)
	ObserveValidation(issues int, bottleneckTypes []string)
	ObserveCatalog(defaultsByField map[string]int, skipped int, perCategory map[string]int)
}

// CategorySummary katalogdagi bitta kategoriya statistikasi
type CategorySummary struct {
	Category entity.Category `json:"category"`
	Count    int             `json:"count"`
	MinPrice float64         `json:"min_price"`
	MaxPrice float64         `json:"max_price"`
	MaxScore float64         `json:"max_score"`
}

// CatalogImport parse natijasi katalogga yuklash uchun
type CatalogImport struct {
	Components      []entity.Component
	Source          string
	DefaultsByField map[string]int
	Skipped         int
}

// BuildUseCase build generator business logic
type BuildUseCase interface {
	GenerateBuild(ctx context.Context, req entity.BuildRequest) (*entity.Build, error)
	CheckBuild(ctx context.Context, req entity.CheckRequest) (*entity.Build, error)
	ImportCatalog(ctx context.Context, imp CatalogImport) (*entity.Catalog, error)
	CatalogSummary(ctx context.Context) ([]CategorySummary, error)
	FindPart(ctx context.Context, category entity.Category, query string) (*entity.Component, error)
}

type buildUseCase struct {
	catalogRepo repository.CatalogRepository
	allocator   repository.Allocator
	validator   *ManualValidator
	reviewer    repository.BuildReviewer
	recorder    Recorder
}

// NewBuildUseCase reviewer va recorder ixtiyoriy (nil bo'lishi mumkin)
func NewBuildUseCase(
	catalogRepo repository.CatalogRepository,
	allocator repository.Allocator,
	manual *ManualValidator,
	reviewer repository.BuildReviewer,
	recorder Recorder,
) BuildUseCase {
	if manual == nil {
		manual = NewManualValidator("")
	}
	return &buildUseCase{
		catalogRepo: catalogRepo,
		allocator:   allocator,
		validator:   manual,
		reviewer:    reviewer,
		recorder:    recorder,
	}
}

// GenerateBuild so'rovni tekshiradi, allocator orqali build tuzadi va benchmark qo'shadi
func (u *buildUseCase) GenerateBuild(ctx context.Context, req entity.BuildRequest) (*entity.Build, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	catalog, err := u.catalogRepo.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	start := time.Now()
	build, err := u.allocator.Allocate(ctx, req, catalog)
	elapsed := time.Since(start)
	if u.recorder != nil {
		u.recorder.ObserveBuild(u.allocator.Name(), elapsed, err)
	}
	if err != nil {
		var allocErr *AllocationError
		if errors.As(err, &allocErr) && u.recorder != nil {
			u.recorder.ObserveAllocationFailure(string(allocErr.Category), allocErr.Reason)
		}
		logger.L().Warn("build allocation failed",
			zap.String("allocator", u.allocator.Name()),
			zap.Float64("budget", req.Budget),
			zap.String("use_case", string(req.UseCase)),
			zap.Error(err),
		)
		return nil, err
	}

	build.ID = uuid.NewString()
	build.CreatedAt = time.Now().UTC()
	build.Benchmark = EstimateBenchmark(build)

	if u.reviewer != nil && build.Reasoning == "" {
		reviewCtx, cancel := context.WithTimeout(ctx, reviewTimeout)
		review, err := u.reviewer.ReviewBuild(reviewCtx, build)
		cancel()
		if err != nil {
			logger.WarnLogger.Printf("build review o'tkazib yuborildi: %v", err)
		} else {
			build.Reasoning = review
		}
	}

	logger.L().Info("build generated",
		zap.String("build_id", build.ID),
		zap.String("allocator", build.Allocator),
		zap.Float64("budget", req.Budget),
		zap.String("use_case", string(req.UseCase)),
		zap.Float64("total_price", build.TotalPrice),
		zap.Strings("parts", build.GetComponentList()),
		zap.Uint64("catalog_version", catalog.Version),
		zap.Duration("elapsed", elapsed),
	)
	return build, nil
}

// CheckBuild manual tanlovni tekshirish. Only request validation can fail; an unavailable
// catalog just means no suggestions.
func (u *buildUseCase) CheckBuild(ctx context.Context, req entity.CheckRequest) (*entity.Build, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	catalog, err := u.catalogRepo.Snapshot(ctx)
	if err != nil {
		logger.WarnLogger.Printf("check: katalog mavjud emas, tavsiyalarsiz davom etiladi: %v", err)
		catalog = entity.NewCatalog(nil, "empty")
	}

	build := u.validator.Validate(req.Selections, catalog, req.TargetResolution)
	build.Benchmark = EstimateBenchmark(build)

	if u.recorder != nil {
		types := make([]string, 0, len(build.Bottlenecks))
		for _, bn := range build.Bottlenecks {
			types = append(types, bn.Type)
		}
		u.recorder.ObserveValidation(len(build.Issues), types)
	}
	return build, nil
}

// ImportCatalog yangi katalogni saqlaydi va parse diagnostikasini qayd etadi
func (u *buildUseCase) ImportCatalog(ctx context.Context, imp CatalogImport) (*entity.Catalog, error) {
	if len(imp.Components) == 0 {
		return nil, fmt.Errorf("catalog %s has no usable rows", imp.Source)
	}
	for field, n := range imp.DefaultsByField {
		logger.WarnLogger.Printf("catalog %s: %d ta %q qiymati 0 ga tenglashtirildi", imp.Source, n, field)
	}
	if err := u.catalogRepo.Replace(ctx, imp.Components, imp.Source); err != nil {
		return nil, fmt.Errorf("failed to store catalog: %w", err)
	}
	catalog, err := u.catalogRepo.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to reload catalog: %w", err)
	}

	if u.recorder != nil {
		perCategory := make(map[string]int, len(entity.Categories))
		for _, category := range entity.Categories {
			perCategory[string(category)] = len(catalog.Parts(category))
		}
		u.recorder.ObserveCatalog(imp.DefaultsByField, imp.Skipped, perCategory)
	}
	logger.L().Info("catalog loaded",
		zap.String("source", imp.Source),
		zap.Int("components", catalog.Len()),
		zap.Int("skipped", imp.Skipped),
		zap.Uint64("version", catalog.Version),
	)
	return catalog, nil
}

// CatalogSummary kategoriyalar bo'yicha soni va narx oralig'i
func (u *buildUseCase) CatalogSummary(ctx context.Context) ([]CategorySummary, error) {
	catalog, err := u.catalogRepo.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	return SummarizeCatalog(catalog), nil
}

// SummarizeCatalog per-category counts in fixed category order.
func SummarizeCatalog(catalog *entity.Catalog) []CategorySummary {
	out := make([]CategorySummary, 0, len(entity.Categories))
	for _, category := range entity.Categories {
		parts := catalog.Parts(category)
		s := CategorySummary{Category: category, Count: len(parts)}
		if len(parts) > 0 {
			s.MinPrice = math.Inf(1)
			for _, p := range parts {
				s.MinPrice = math.Min(s.MinPrice, p.Price)
				s.MaxPrice = math.Max(s.MaxPrice, p.Price)
				s.MaxScore = math.Max(s.MaxScore, p.PerformanceScore)
			}
		}
		out = append(out, s)
	}
	return out
}

// FindPart nom bo'yicha eng mos qism (ID to'liq mos kelsa shu qaytadi)
func (u *buildUseCase) FindPart(ctx context.Context, category entity.Category, query string) (*entity.Component, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: empty %s query", ErrInvalidRequest, category)
	}
	catalog, err := u.catalogRepo.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	if c, ok := catalog.FindByID(query); ok && c.Category == category {
		return &c, nil
	}

	matches, err := u.catalogRepo.Search(ctx, category, query, 1)
	if err != nil {
		return nil, fmt.Errorf("failed to search %s: %w", category, err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("no %s matches %q", category.Label(), query)
	}
	return &matches[0], nil
}

func validateRequest(req interface{}) error {
	err := requestValidate.Struct(req)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describeFieldError(fe))
	}
	sort.Strings(msgs)
	return fmt.Errorf("%w: %s", ErrInvalidRequest, strings.Join(msgs, "; "))
}

func describeFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return strings.ToLower(fe.Field()) + " is required"
	case "gt":
		return strings.ToLower(fe.Field()) + " must be greater than " + fe.Param()
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s], got %q", strings.ToLower(fe.Field()), fe.Param(), fmt.Sprint(fe.Value()))
	default:
		return fmt.Sprintf("%s failed %s", strings.ToLower(fe.Field()), fe.Tag())
	}
}
