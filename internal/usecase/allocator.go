package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/yourusername/pc-build-generator/internal/domain/constants"
	"github.com/yourusername/pc-build-generator/internal/domain/entity"
)

// Allocation failure reason codes
const (
	ReasonNoCandidate     = "no_candidate"
	ReasonNoSocketMatch   = "no_socket_match"
	ReasonNoRAMTypeMatch  = "no_ram_type_match"
	ReasonInsufficientPSU = "insufficient_psu"
)

// AllocationError a category had no viable part after every fallback.
type AllocationError struct {
	Category entity.Category
	Reason   string
	Detail   string
}

func (e *AllocationError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("allocation failed for %s (%s): %s", e.Category, e.Reason, e.Detail)
	}
	return fmt.Sprintf("allocation failed for %s (%s)", e.Category, e.Reason)
}

// GreedyAllocator byudjetni kategoriyalarga taqsimlab, har biridan eng yaxshi mos qismni tanlaydi
type GreedyAllocator struct {
	profile *AllocationProfile
}

// NewGreedyAllocator nil profile means the built-in tables.
func NewGreedyAllocator(profile *AllocationProfile) *GreedyAllocator {
	if profile == nil {
		profile = DefaultAllocationProfile()
	}
	return &GreedyAllocator{profile: profile}
}

// Name allocator nomi
func (a *GreedyAllocator) Name() string {
	return "greedy"
}

// Allocate selects one part per category in fixed order. No partial builds are returned.
func (a *GreedyAllocator) Allocate(ctx context.Context, req entity.BuildRequest, catalog *entity.Catalog) (*entity.Build, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	parts := platformFilter(catalog)
	fractions := a.profile.Fractions(req.UseCase)
	p := picker{parts: parts, tags: a.profile.TargetTags(req.UseCase)}
	budgetFor := func(category entity.Category) float64 {
		return req.Budget * fractions[category]
	}

	build := &entity.Build{UseCase: req.UseCase, Budget: req.Budget, Allocator: a.Name()}

	cpu := p.pick(entity.CategoryCPU, budgetFor(entity.CategoryCPU), nil)
	if cpu == nil {
		return nil, &AllocationError{Category: entity.CategoryCPU, Reason: ReasonNoCandidate, Detail: "no compatible CPU found"}
	}
	build.CPU = cpu

	socketMatch := func(c entity.Component) bool { return c.Socket == cpu.Socket }
	motherboard := p.pick(entity.CategoryMotherboard, budgetFor(entity.CategoryMotherboard), socketMatch)
	if motherboard == nil {
		motherboard = firstMatch(parts[entity.CategoryMotherboard], socketMatch)
		if motherboard == nil {
			return nil, &AllocationError{
				Category: entity.CategoryMotherboard,
				Reason:   ReasonNoSocketMatch,
				Detail:   fmt.Sprintf("no motherboard found for socket %s", cpu.Socket),
			}
		}
	}
	build.Motherboard = motherboard

	ram := p.pick(entity.CategoryRAM, budgetFor(entity.CategoryRAM), func(c entity.Component) bool {
		return c.RAMType == motherboard.RAMType
	})
	if ram == nil {
		return nil, &AllocationError{
			Category: entity.CategoryRAM,
			Reason:   ReasonNoRAMTypeMatch,
			Detail:   fmt.Sprintf("no RAM found for type %s", motherboard.RAMType),
		}
	}
	build.RAM = ram

	gpu := p.pick(entity.CategoryGPU, budgetFor(entity.CategoryGPU), nil)
	if gpu == nil {
		gpu = cheapest(parts[entity.CategoryGPU])
		if gpu == nil {
			return nil, &AllocationError{Category: entity.CategoryGPU, Reason: ReasonNoCandidate, Detail: "catalog has no GPU"}
		}
	}
	build.GPU = gpu

	storage := p.pick(entity.CategoryStorage, budgetFor(entity.CategoryStorage), nil)
	if storage == nil {
		storage = firstMatch(parts[entity.CategoryStorage], nil)
		if storage == nil {
			return nil, &AllocationError{Category: entity.CategoryStorage, Reason: ReasonNoCandidate, Detail: "catalog has no storage"}
		}
	}
	build.Storage = storage

	pcCase := p.pick(entity.CategoryCase, budgetFor(entity.CategoryCase), nil)
	if pcCase == nil {
		pcCase = firstMatch(parts[entity.CategoryCase], nil)
		if pcCase == nil {
			return nil, &AllocationError{Category: entity.CategoryCase, Reason: ReasonNoCandidate, Detail: "catalog has no case"}
		}
	}
	build.Case = pcCase

	required := RequiredPSUWattage(cpu, gpu)
	psuFits := func(c entity.Component) bool { return c.Wattage >= required }
	psu := p.pick(entity.CategoryPSU, budgetFor(entity.CategoryPSU), psuFits)
	if psu == nil {
		psu = cheapest(filterParts(parts[entity.CategoryPSU], psuFits))
		if psu == nil {
			return nil, &AllocationError{
				Category: entity.CategoryPSU,
				Reason:   ReasonInsufficientPSU,
				Detail:   fmt.Sprintf("no PSU with at least %.0fW", required),
			}
		}
	}
	build.PSU = psu

	build.TotalPrice = build.GetTotalPrice()
	return build, nil
}

// RequiredPSUWattage minimal PSU quvvati: 1.5 × (cpu + gpu + tizim)
func RequiredPSUWattage(cpu, gpu *entity.Component) float64 {
	estimated := cpu.WattageOr(constants.DefaultCPUWattage) +
		gpu.WattageOr(constants.DefaultGPUWattage) +
		constants.BaseSystemWattage
	return estimated * constants.PSUHeadroomFactor
}

// platformFilter drops motherboards whose RAM type has no RAM part and CPUs whose
// socket has no surviving motherboard.
func platformFilter(catalog *entity.Catalog) map[entity.Category][]entity.Component {
	parts := make(map[entity.Category][]entity.Component, len(entity.Categories))
	for _, category := range entity.Categories {
		parts[category] = catalog.Parts(category)
	}

	ramTypes := make(map[string]struct{})
	for _, ram := range parts[entity.CategoryRAM] {
		ramTypes[ram.RAMType] = struct{}{}
	}
	parts[entity.CategoryMotherboard] = filterParts(parts[entity.CategoryMotherboard], func(c entity.Component) bool {
		_, ok := ramTypes[c.RAMType]
		return ok
	})

	sockets := make(map[string]struct{})
	for _, mb := range parts[entity.CategoryMotherboard] {
		sockets[mb.Socket] = struct{}{}
	}
	parts[entity.CategoryCPU] = filterParts(parts[entity.CategoryCPU], func(c entity.Component) bool {
		_, ok := sockets[c.Socket]
		return ok
	})
	return parts
}

type picker struct {
	parts map[entity.Category][]entity.Component
	tags  map[string]struct{}
}

// pick tag filter -> relax tags -> byudjet ichida eng yuqori ball, aks holda eng arzon
func (p picker) pick(category entity.Category, budget float64, extra func(entity.Component) bool) *entity.Component {
	pool := p.parts[category]
	candidates := filterParts(pool, func(c entity.Component) bool {
		if extra != nil && !extra(c) {
			return false
		}
		return len(p.tags) == 0 || c.HasAnyTag(p.tags)
	})
	if len(candidates) == 0 {
		candidates = filterParts(pool, extra)
	}
	if len(candidates) == 0 {
		return nil
	}

	inBudget := filterParts(candidates, func(c entity.Component) bool { return c.Price <= budget })
	if len(inBudget) == 0 {
		return cheapest(candidates)
	}

	sort.SliceStable(inBudget, func(i, j int) bool {
		if inBudget[i].PerformanceScore != inBudget[j].PerformanceScore {
			return inBudget[i].PerformanceScore > inBudget[j].PerformanceScore
		}
		return inBudget[i].Price < inBudget[j].Price
	})
	best := inBudget[0]
	return &best
}

func filterParts(parts []entity.Component, keep func(entity.Component) bool) []entity.Component {
	out := make([]entity.Component, 0, len(parts))
	for _, c := range parts {
		if keep == nil || keep(c) {
			out = append(out, c)
		}
	}
	return out
}

func firstMatch(parts []entity.Component, keep func(entity.Component) bool) *entity.Component {
	for _, c := range parts {
		if keep == nil || keep(c) {
			found := c
			return &found
		}
	}
	return nil
}

// cheapest first lowest-priced part, catalog order on ties
func cheapest(parts []entity.Component) *entity.Component {
	if len(parts) == 0 {
		return nil
	}
	best := parts[0]
	for _, c := range parts[1:] {
		if c.Price < best.Price {
			best = c
		}
	}
	return &best
}
