package entity

import (
	"strings"
	"time"
)

// Category komponent turi
type Category string

const (
	CategoryCPU         Category = "cpu"
	CategoryMotherboard Category = "motherboard"
	CategoryRAM         Category = "ram"
	CategoryGPU         Category = "gpu"
	CategoryStorage     Category = "storage"
	CategoryCase        Category = "case"
	CategoryPSU         Category = "psu"
)

// Categories fixed selection order used by the allocator and every presentation layer.
var Categories = []Category{
	CategoryCPU,
	CategoryMotherboard,
	CategoryRAM,
	CategoryGPU,
	CategoryStorage,
	CategoryCase,
	CategoryPSU,
}

// Label human-readable category name (CPU, Motherboard, ...)
func (c Category) Label() string {
	switch c {
	case CategoryCPU:
		return "CPU"
	case CategoryGPU:
		return "GPU"
	case CategoryRAM:
		return "RAM"
	case CategoryPSU:
		return "PSU"
	case CategoryMotherboard:
		return "Motherboard"
	case CategoryStorage:
		return "Storage"
	case CategoryCase:
		return "Case"
	default:
		return string(c)
	}
}

// Valid reports whether c is one of the seven build categories.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// ParseCategory maps raw catalog part names (processor, ssd, cabinet, ...) to a Category.
func ParseCategory(raw string) (Category, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "cpu", "processor":
		return CategoryCPU, true
	case "gpu", "graphics card":
		return CategoryGPU, true
	case "ram", "memory":
		return CategoryRAM, true
	case "motherboard", "mobo":
		return CategoryMotherboard, true
	case "storage", "ssd", "hdd", "hard drive":
		return CategoryStorage, true
	case "psu", "power supply":
		return CategoryPSU, true
	case "case", "cabinet":
		return CategoryCase, true
	default:
		return "", false
	}
}

// Purpose tag vocabulary
const (
	TagGaming          = "Gaming"
	TagProductivity    = "Productivity"
	TagContentCreation = "Content creation"
	TagGeneral         = "General"
	TagOffice          = "Office"
	TagEditing         = "Editing"
	Tag3DRendering     = "3D rendering"
)

// Component katalogdagi bitta mahsulot.
// Zero numeric values and empty strings mean the attribute is absent.
type Component struct {
	ID               string   `json:"id"`
	Category         Category `json:"part"`
	Name             string   `json:"name"`
	Price            float64  `json:"price"`
	PerformanceScore float64  `json:"performance_score"`
	Description      string   `json:"description,omitempty"`
	PurposeTags      []string `json:"purpose"`

	Socket     string  `json:"socket,omitempty"`
	RAMType    string  `json:"ram_type,omitempty"`
	Wattage    float64 `json:"watt,omitempty"`
	VRAMGB     float64 `json:"vram,omitempty"`
	CapacityGB float64 `json:"capacity,omitempty"`
}

// HasAnyTag komponentda targets dan kamida bitta teg bormi?
func (c Component) HasAnyTag(targets map[string]struct{}) bool {
	for _, tag := range c.PurposeTags {
		if _, ok := targets[tag]; ok {
			return true
		}
	}
	return false
}

// WattageOr returns the wattage, or fallback when the component has none.
func (c *Component) WattageOr(fallback float64) float64 {
	if c == nil || c.Wattage == 0 {
		return fallback
	}
	return c.Wattage
}

// Catalog read-only snapshot of the component catalog partitioned by category.
// A snapshot is never modified after construction; refreshes build a new one.
type Catalog struct {
	Source   string
	LoadedAt time.Time
	Version  uint64

	all        []Component
	byCategory map[Category][]Component
}

// NewCatalog partitions components by category, preserving input order inside each category.
func NewCatalog(components []Component, source string) *Catalog {
	all := make([]Component, len(components))
	copy(all, components)

	byCategory := make(map[Category][]Component, len(Categories))
	for _, c := range all {
		byCategory[c.Category] = append(byCategory[c.Category], c)
	}
	return &Catalog{
		Source:     source,
		LoadedAt:   time.Now(),
		all:        all,
		byCategory: byCategory,
	}
}

// Parts returns a copy of the components of one category in catalog order.
func (c *Catalog) Parts(category Category) []Component {
	if c == nil {
		return nil
	}
	src := c.byCategory[category]
	out := make([]Component, len(src))
	copy(out, src)
	return out
}

// All returns a copy of every component in catalog order.
func (c *Catalog) All() []Component {
	if c == nil {
		return nil
	}
	out := make([]Component, len(c.all))
	copy(out, c.all)
	return out
}

// Len catalogdagi mahsulotlar soni
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.all)
}

// FindByID ID bo'yicha qidirish
func (c *Catalog) FindByID(id string) (Component, bool) {
	if c == nil {
		return Component{}, false
	}
	for _, comp := range c.all {
		if comp.ID == id {
			return comp, true
		}
	}
	return Component{}, false
}
