package storage

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/yourusername/pc-build-generator/internal/domain/entity"
	"github.com/yourusername/pc-build-generator/internal/domain/repository"
)

// ErrCatalogEmpty katalog hali yuklanmagan
var ErrCatalogEmpty = errors.New("catalog is empty")

// memoryCatalogRepository holds the active snapshot; Replace swaps it atomically so
// readers never see a half-built catalog.
type memoryCatalogRepository struct {
	mu       sync.Mutex // serializes writers
	snapshot atomic.Pointer[entity.Catalog]
	version  uint64
}

// NewMemoryCatalogRepository in-memory katalog repository yaratish
func NewMemoryCatalogRepository() repository.CatalogRepository {
	return &memoryCatalogRepository{}
}

func (m *memoryCatalogRepository) Snapshot(ctx context.Context) (*entity.Catalog, error) {
	snap := m.snapshot.Load()
	if snap == nil || snap.Len() == 0 {
		return nil, ErrCatalogEmpty
	}
	return snap, nil
}

func (m *memoryCatalogRepository) Replace(ctx context.Context, components []entity.Component, source string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	m.version++
	next := entity.NewCatalog(components, source)
	next.Version = m.version
	m.snapshot.Store(next)
	return nil
}

func (m *memoryCatalogRepository) Search(ctx context.Context, category entity.Category, query string, limit int) ([]entity.Component, error) {
	snap, err := m.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return rankComponents(snap.Parts(category), query, limit), nil
}
