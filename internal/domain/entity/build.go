package entity

import "time"

// UseCase foydalanuvchi maqsadi
type UseCase string

const (
	UseCaseGaming       UseCase = "Gaming"
	UseCaseProgramming  UseCase = "Programming"
	UseCaseVideoEditing UseCase = "Video Editing"
	UseCaseGeneralUse   UseCase = "General Use"
)

// Resolution target resolution for bottleneck and FPS estimation
type Resolution string

const (
	Resolution1080p Resolution = "1080p"
	Resolution1440p Resolution = "1440p"
	Resolution4K    Resolution = "4K"
)

// BuildRequest allocator uchun so'rov
type BuildRequest struct {
	Budget  float64 `json:"budget" validate:"required,gt=0"`
	UseCase UseCase `json:"useCase" validate:"required,oneof=Gaming Programming 'Video Editing' 'General Use'"`
}

// CheckRequest manual validation request
type CheckRequest struct {
	Selections       Selections `json:"selections"`
	TargetResolution Resolution `json:"targetResolution" validate:"omitempty,oneof=1080p 1440p 4K"`
}

// Selections category -> chosen component (nil = not selected)
type Selections map[Category]*Component

// Bottleneck types
const (
	BottleneckGPU     = "GPU Bottleneck"
	BottleneckCPU     = "CPU Bottleneck"
	BottleneckLowRAM  = "Low RAM"
	BottleneckLowVRAM = "Low VRAM"
)

// Bottleneck soft warning about an imbalanced selection
type Bottleneck struct {
	Type       string     `json:"type"`
	Percentage *float64   `json:"percentage"`
	Details    string     `json:"details"`
	Suggestion *Component `json:"suggestion"`
}

// Upgrade better same-category alternative for a selected part
type Upgrade struct {
	Component Component `json:"component"`
	Reason    string    `json:"reason"`
}

// Build to'liq PC konfiguratsiya (allocator yoki manual tekshiruv natijasi)
type Build struct {
	ID        string    `json:"id,omitempty"`
	CreatedAt time.Time `json:"created_at,omitempty"`
	UseCase   UseCase   `json:"use_case,omitempty"`
	Budget    float64   `json:"budget,omitempty"`
	Allocator string    `json:"allocator,omitempty"`

	// Komponentlar
	CPU         *Component `json:"cpu"`
	Motherboard *Component `json:"motherboard"`
	RAM         *Component `json:"ram"`
	GPU         *Component `json:"gpu"`
	Storage     *Component `json:"storage"`
	Case        *Component `json:"case"`
	PSU         *Component `json:"psu"`

	TotalPrice float64 `json:"total_price"`

	// External optimizer fields
	Strategy  string  `json:"strategy,omitempty"`
	AIScore   float64 `json:"ai_score,omitempty"`
	Reasoning string  `json:"reasoning,omitempty"`

	// Manual build tahlili
	Issues             []string             `json:"issues,omitempty"`
	Bottlenecks        []Bottleneck         `json:"bottlenecks,omitempty"`
	CompatibilityScore int                  `json:"compatibility_score,omitempty"`
	Upgrades           map[Category]Upgrade `json:"upgrades,omitempty"`

	Benchmark *BenchmarkEstimate `json:"benchmark,omitempty"`
}

// Part returns the selected component of a category (nil when empty).
func (b *Build) Part(category Category) *Component {
	switch category {
	case CategoryCPU:
		return b.CPU
	case CategoryMotherboard:
		return b.Motherboard
	case CategoryRAM:
		return b.RAM
	case CategoryGPU:
		return b.GPU
	case CategoryStorage:
		return b.Storage
	case CategoryCase:
		return b.Case
	case CategoryPSU:
		return b.PSU
	default:
		return nil
	}
}

// SetPart stores a copy-free pointer for category; unknown categories are ignored.
func (b *Build) SetPart(category Category, c *Component) {
	switch category {
	case CategoryCPU:
		b.CPU = c
	case CategoryMotherboard:
		b.Motherboard = c
	case CategoryRAM:
		b.RAM = c
	case CategoryGPU:
		b.GPU = c
	case CategoryStorage:
		b.Storage = c
	case CategoryCase:
		b.Case = c
	case CategoryPSU:
		b.PSU = c
	}
}

// GetTotalPrice umumiy narxni hisoblash (bo'sh kategoriyalar 0)
func (b *Build) GetTotalPrice() float64 {
	total := 0.0
	for _, category := range Categories {
		if part := b.Part(category); part != nil {
			total += part.Price
		}
	}
	return total
}

// IsComplete barcha kategoriyalar tanlanganmi?
func (b *Build) IsComplete() bool {
	for _, category := range Categories {
		if b.Part(category) == nil {
			return false
		}
	}
	return true
}

// GetComponentList barcha komponentlarni string sifatida
func (b *Build) GetComponentList() []string {
	components := []string{}
	for _, category := range Categories {
		if part := b.Part(category); part != nil && part.Name != "" {
			components = append(components, category.Label()+": "+part.Name)
		}
	}
	return components
}

// BuildFromSelections copies a selection map into a Build with its total price.
func BuildFromSelections(sel Selections) *Build {
	b := &Build{}
	for category, part := range sel {
		if part == nil || !category.Valid() {
			continue
		}
		p := *part
		b.SetPart(category, &p)
	}
	b.TotalPrice = b.GetTotalPrice()
	return b
}
