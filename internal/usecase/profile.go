package usecase

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/yourusername/pc-build-generator/internal/domain/entity"
)

// AllocationProfile budget fractions and purpose-tag targets per use case.
// A profile is read-only after construction; every accessor returns copies.
type AllocationProfile struct {
	defaults    map[entity.Category]float64
	overrides   map[entity.UseCase]map[entity.Category]float64
	purposeTags map[entity.UseCase][]string
}

// DefaultAllocationProfile built-in jadvallar
func DefaultAllocationProfile() *AllocationProfile {
	return &AllocationProfile{
		defaults: map[entity.Category]float64{
			entity.CategoryGPU:         0.35,
			entity.CategoryCPU:         0.20,
			entity.CategoryMotherboard: 0.12,
			entity.CategoryRAM:         0.10,
			entity.CategoryStorage:     0.10,
			entity.CategoryPSU:         0.08,
			entity.CategoryCase:        0.05,
		},
		overrides: map[entity.UseCase]map[entity.Category]float64{
			entity.UseCaseGaming:       {entity.CategoryGPU: 0.45, entity.CategoryCPU: 0.15},
			entity.UseCaseProgramming:  {entity.CategoryGPU: 0.10, entity.CategoryCPU: 0.35, entity.CategoryRAM: 0.20},
			entity.UseCaseVideoEditing: {entity.CategoryRAM: 0.20, entity.CategoryStorage: 0.15},
		},
		purposeTags: map[entity.UseCase][]string{
			entity.UseCaseGaming:       {entity.TagGaming},
			entity.UseCaseProgramming:  {entity.TagGaming, entity.TagProductivity, entity.TagContentCreation, entity.TagGeneral},
			entity.UseCaseVideoEditing: {entity.TagEditing, entity.TagContentCreation, entity.Tag3DRendering},
			entity.UseCaseGeneralUse:   {entity.TagGeneral, entity.TagOffice, entity.TagProductivity},
		},
	}
}

// Fractions default jadval + use case override. Not re-normalized.
func (p *AllocationProfile) Fractions(useCase entity.UseCase) map[entity.Category]float64 {
	out := make(map[entity.Category]float64, len(p.defaults))
	for category, fraction := range p.defaults {
		out[category] = fraction
	}
	for category, fraction := range p.overrides[useCase] {
		out[category] = fraction
	}
	return out
}

// TargetTags returns the allowed purpose tags for useCase; an empty set means no tag filtering.
func (p *AllocationProfile) TargetTags(useCase entity.UseCase) map[string]struct{} {
	tags := p.purposeTags[useCase]
	out := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		out[tag] = struct{}{}
	}
	return out
}

// profileFile YAML shakli
type profileFile struct {
	Defaults    map[string]float64            `yaml:"defaults"`
	Overrides   map[string]map[string]float64 `yaml:"overrides"`
	PurposeTags map[string][]string           `yaml:"purpose_tags"`
}

// LoadAllocationProfile reads a YAML profile; keys it does not mention keep the built-in values.
func LoadAllocationProfile(path string) (*AllocationProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read allocation profile: %w", err)
	}
	return ParseAllocationProfile(data)
}

// ParseAllocationProfile YAML baytlardan profil
func ParseAllocationProfile(data []byte) (*AllocationProfile, error) {
	var raw profileFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("invalid allocation profile: %w", err)
	}

	profile := DefaultAllocationProfile()
	for key, fraction := range raw.Defaults {
		category, err := profileCategory(key, fraction)
		if err != nil {
			return nil, fmt.Errorf("defaults: %w", err)
		}
		profile.defaults[category] = fraction
	}

	for useCase, fractions := range raw.Overrides {
		uc := entity.UseCase(useCase)
		override := make(map[entity.Category]float64, len(fractions))
		for category, fraction := range profile.overrides[uc] {
			override[category] = fraction
		}
		for key, fraction := range fractions {
			category, err := profileCategory(key, fraction)
			if err != nil {
				return nil, fmt.Errorf("overrides[%s]: %w", useCase, err)
			}
			override[category] = fraction
		}
		profile.overrides[uc] = override
	}

	for useCase, tags := range raw.PurposeTags {
		copied := make([]string, len(tags))
		copy(copied, tags)
		profile.purposeTags[entity.UseCase(useCase)] = copied
	}
	return profile, nil
}

func profileCategory(key string, fraction float64) (entity.Category, error) {
	category, ok := entity.ParseCategory(key)
	if !ok {
		return "", fmt.Errorf("unknown category %q", key)
	}
	if math.IsNaN(fraction) || fraction < 0 || fraction > 1 {
		return "", fmt.Errorf("fraction for %s must be within [0,1], got %v", key, fraction)
	}
	return category, nil
}
