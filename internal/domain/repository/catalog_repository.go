package repository

import (
	"context"

	"github.com/yourusername/pc-build-generator/internal/domain/entity"
)

// CatalogRepository komponent katalogi bilan ishlash uchun interface.
// Snapshot returns an immutable view; Replace swaps the whole catalog atomically.
type CatalogRepository interface {
	// Snapshot joriy katalog nusxasini olish
	Snapshot(ctx context.Context) (*entity.Catalog, error)

	// Replace butun katalogni yangilash
	Replace(ctx context.Context, components []entity.Component, source string) error

	// Search kategoriya ichida nom bo'yicha qidirish (category bo'sh bo'lsa hammasida)
	Search(ctx context.Context, category entity.Category, query string, limit int) ([]entity.Component, error)
}
