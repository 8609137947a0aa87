package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/lib/pq"
	"github.com/yourusername/pc-build-generator/internal/domain/entity"
	"github.com/yourusername/pc-build-generator/internal/domain/repository"
	"github.com/yourusername/pc-build-generator/pkg/logger"
)

const componentsSchema = `
CREATE TABLE IF NOT EXISTS components (
	id TEXT PRIMARY KEY,
	part TEXT NOT NULL,
	name TEXT NOT NULL,
	price DOUBLE PRECISION NOT NULL DEFAULT 0,
	performance_score DOUBLE PRECISION NOT NULL DEFAULT 0,
	description TEXT NOT NULL DEFAULT '',
	purpose TEXT[] NOT NULL DEFAULT '{}',
	socket TEXT NOT NULL DEFAULT '',
	ram_type TEXT NOT NULL DEFAULT '',
	watt DOUBLE PRECISION NOT NULL DEFAULT 0,
	vram DOUBLE PRECISION NOT NULL DEFAULT 0,
	capacity DOUBLE PRECISION NOT NULL DEFAULT 0,
	position INTEGER NOT NULL DEFAULT 0,
	source TEXT NOT NULL DEFAULT '',
	updated_at TIMESTAMPTZ DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_components_part ON components (part, position);
`

// postgresCatalogRepository components jadvali ustidagi katalog.
// Snapshots are cached until Replace runs; rows keep their import order through "position".
type postgresCatalogRepository struct {
	db *sql.DB

	mu      sync.Mutex
	cached  *entity.Catalog
	version uint64
}

// NewPostgresCatalogRepository ulanadi va sxemani yaratadi
func NewPostgresCatalogRepository(ctx context.Context, dsn string, opts ConnectOptions) (repository.CatalogRepository, error) {
	db, err := openPostgresWithRetry(ctx, dsn, opts)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)
	return newPostgresCatalogRepositoryWithDB(ctx, db)
}

func newPostgresCatalogRepositoryWithDB(ctx context.Context, db *sql.DB) (*postgresCatalogRepository, error) {
	if _, err := db.ExecContext(ctx, componentsSchema); err != nil {
		return nil, fmt.Errorf("create components table: %w", err)
	}
	return &postgresCatalogRepository{db: db}, nil
}

// NewCatalogRepository Postgres DSN bo'lsa Postgres, aks holda (yoki ulanmasa) memory repository.
func NewCatalogRepository(ctx context.Context, dsn string, opts ConnectOptions) repository.CatalogRepository {
	if strings.TrimSpace(dsn) == "" {
		return NewMemoryCatalogRepository()
	}
	repo, err := NewPostgresCatalogRepository(ctx, dsn, opts)
	if err != nil {
		logger.WarnLogger.Printf("catalog store: Postgres ulanmadi, memory ga qaytdi: %v", err)
		return NewMemoryCatalogRepository()
	}
	return repo
}

func (p *postgresCatalogRepository) Snapshot(ctx context.Context) (*entity.Catalog, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cached != nil {
		return p.cached, nil
	}

	rows, err := p.db.QueryContext(ctx, `
	SELECT id, part, name, price, performance_score, description, purpose, socket, ram_type, watt, vram, capacity, source
	FROM components
	ORDER BY position, id`)
	if err != nil {
		return nil, fmt.Errorf("load components: %w", err)
	}
	defer rows.Close()

	var (
		components []entity.Component
		source     string
	)
	for rows.Next() {
		var (
			c    entity.Component
			part string
			tags pq.StringArray
		)
		if err := rows.Scan(&c.ID, &part, &c.Name, &c.Price, &c.PerformanceScore, &c.Description, &tags,
			&c.Socket, &c.RAMType, &c.Wattage, &c.VRAMGB, &c.CapacityGB, &source); err != nil {
			return nil, fmt.Errorf("scan component: %w", err)
		}
		category, ok := entity.ParseCategory(part)
		if !ok {
			logger.WarnLogger.Printf("catalog store: noma'lum part %q (id=%s) o'tkazib yuborildi", part, c.ID)
			continue
		}
		c.Category = category
		c.PurposeTags = []string(tags)
		if c.PurposeTags == nil {
			c.PurposeTags = []string{}
		}
		components = append(components, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate components: %w", err)
	}
	if len(components) == 0 {
		return nil, ErrCatalogEmpty
	}

	p.version++
	snap := entity.NewCatalog(components, "postgres:"+source)
	snap.Version = p.version
	p.cached = snap
	return snap, nil
}

// Replace katalogni bitta tranzaksiyada to'liq almashtiradi.
func (p *postgresCatalogRepository) Replace(ctx context.Context, components []entity.Component, source string) (err error) {
	tx, err := p.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM components`); err != nil {
		return fmt.Errorf("clear components: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, pq.CopyIn("components",
		"id", "part", "name", "price", "performance_score", "description", "purpose",
		"socket", "ram_type", "watt", "vram", "capacity", "position", "source"))
	if err != nil {
		return fmt.Errorf("prepare copy: %w", err)
	}
	for i, c := range components {
		if _, err = stmt.ExecContext(ctx, c.ID, string(c.Category), c.Name, c.Price, c.PerformanceScore,
			c.Description, pq.Array(c.PurposeTags), c.Socket, c.RAMType, c.Wattage, c.VRAMGB, c.CapacityGB,
			i, source); err != nil {
			_ = stmt.Close()
			return fmt.Errorf("copy component %s: %w", c.ID, err)
		}
	}
	if _, err = stmt.ExecContext(ctx); err != nil {
		_ = stmt.Close()
		return fmt.Errorf("flush copy: %w", err)
	}
	if err = stmt.Close(); err != nil {
		return fmt.Errorf("close copy: %w", err)
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	p.mu.Lock()
	p.cached = nil
	p.mu.Unlock()
	return nil
}

func (p *postgresCatalogRepository) Search(ctx context.Context, category entity.Category, query string, limit int) ([]entity.Component, error) {
	snap, err := p.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return rankComponents(snap.Parts(category), query, limit), nil
}
