package repository

import (
	"context"

	"github.com/yourusername/pc-build-generator/internal/domain/entity"
)

// Allocator budget va use case bo'yicha build tanlaydi.
// Implementations never return a partial build: either a full Build or an error.
type Allocator interface {
	Name() string
	Allocate(ctx context.Context, req entity.BuildRequest, catalog *entity.Catalog) (*entity.Build, error)
}
