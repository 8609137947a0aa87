package usecase

import (
	"reflect"
	"strings"
	"testing"

	"github.com/yourusername/pc-build-generator/internal/domain/entity"
)

func emptyCatalog() *entity.Catalog {
	return entity.NewCatalog(nil, "empty")
}

func TestValidateGPUBottleneck(t *testing.T) {
	sel := entity.Selections{
		entity.CategoryCPU: {Name: "Fast CPU", PerformanceScore: 95},
		entity.CategoryGPU: {Name: "Slow GPU", PerformanceScore: 40},
	}
	build := NewManualValidator("").Validate(sel, emptyCatalog(), entity.Resolution1440p)

	if len(build.Bottlenecks) != 1 {
		t.Fatalf("expected one bottleneck, got %+v", build.Bottlenecks)
	}
	bn := build.Bottlenecks[0]
	if bn.Type != entity.BottleneckGPU {
		t.Fatalf("Type = %q", bn.Type)
	}
	if bn.Percentage == nil || *bn.Percentage != 57.9 {
		t.Fatalf("Percentage = %v, want 57.9", bn.Percentage)
	}
	if bn.Details != "GPU is too weak for this CPU at 1440p." {
		t.Fatalf("Details = %q", bn.Details)
	}
	if bn.Suggestion != nil {
		t.Fatalf("no catalog, no suggestion expected: %+v", bn.Suggestion)
	}
	if len(build.Issues) != 0 || build.CompatibilityScore != 100 {
		t.Fatalf("unexpected issues: %v score=%d", build.Issues, build.CompatibilityScore)
	}
}

func TestValidateLowVRAMAt4K(t *testing.T) {
	sel := entity.Selections{
		entity.CategoryCPU: {Name: "CPU", PerformanceScore: 70},
		entity.CategoryGPU: {Name: "GPU", PerformanceScore: 90, VRAMGB: 6},
	}
	build := NewManualValidator("").Validate(sel, emptyCatalog(), entity.Resolution4K)

	if len(build.Bottlenecks) != 1 {
		t.Fatalf("expected one bottleneck, got %+v", build.Bottlenecks)
	}
	bn := build.Bottlenecks[0]
	if bn.Type != entity.BottleneckLowVRAM || bn.Suggestion != nil || bn.Percentage != nil {
		t.Fatalf("unexpected bottleneck: %+v", bn)
	}
	if bn.Details != "Recommended VRAM for 4K is 12GB+." {
		t.Fatalf("Details = %q", bn.Details)
	}
}

func TestValidateSocketMismatch(t *testing.T) {
	sel := entity.Selections{
		entity.CategoryCPU:         {Name: "i7", Socket: "LGA1700"},
		entity.CategoryMotherboard: {Name: "B650", Socket: "AM5"},
	}
	build := NewManualValidator("").Validate(sel, emptyCatalog(), "")

	if len(build.Issues) != 1 {
		t.Fatalf("expected one issue, got %v", build.Issues)
	}
	if !strings.Contains(build.Issues[0], "LGA1700") || !strings.Contains(build.Issues[0], "AM5") {
		t.Fatalf("issue should name both sockets: %q", build.Issues[0])
	}
	if build.CompatibilityScore != 80 {
		t.Fatalf("CompatibilityScore = %d, want 80", build.CompatibilityScore)
	}
	if len(build.Bottlenecks) != 0 {
		t.Fatalf("no GPU selected, no bottlenecks expected: %+v", build.Bottlenecks)
	}
}

func TestCompatibilityIssues(t *testing.T) {
	cases := []struct {
		name  string
		build *entity.Build
		want  []string
	}{
		{
			name:  "empty",
			build: &entity.Build{},
			want:  []string{},
		},
		{
			name: "ram type contained in board type",
			build: &entity.Build{
				RAM:         &entity.Component{RAMType: "ddr5"},
				Motherboard: &entity.Component{RAMType: "DDR4/DDR5"},
			},
			want: []string{},
		},
		{
			name: "ram type mismatch",
			build: &entity.Build{
				RAM:         &entity.Component{RAMType: "ddr4"},
				Motherboard: &entity.Component{RAMType: "DDR5"},
			},
			want: []string{"Compatibility Error: RAM Type (DDR4) is not supported by Motherboard (DDR5)."},
		},
		{
			name: "weak psu",
			build: &entity.Build{
				CPU: &entity.Component{Wattage: 125},
				GPU: &entity.Component{Wattage: 320},
				PSU: &entity.Component{Wattage: 450},
			},
			want: []string{"Power Warning: PSU Wattage (450W) may be insufficient. Estimated Load: 545W."},
		},
		{
			name: "psu without wattage is skipped",
			build: &entity.Build{
				GPU: &entity.Component{Wattage: 320},
				PSU: &entity.Component{Name: "Mystery PSU"},
			},
			want: []string{},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CompatibilityIssues(tc.build); !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("CompatibilityIssues = %#v, want %#v", got, tc.want)
			}
		})
	}
}

func TestCompatibilityScore(t *testing.T) {
	for issues, want := range map[int]int{0: 100, 1: 80, 3: 40, 5: 0, 6: 0} {
		if got := CompatibilityScore(issues); got != want {
			t.Fatalf("CompatibilityScore(%d) = %d, want %d", issues, got, want)
		}
	}
}

func TestBottlenecksResolutionAdjustment(t *testing.T) {
	// 1080p: cpu 80*0.9=72, gpu 70*1.1=77 -> 6.5%, no bottleneck
	build := &entity.Build{
		CPU: &entity.Component{PerformanceScore: 80},
		GPU: &entity.Component{PerformanceScore: 70},
	}
	if got := Bottlenecks(build, emptyCatalog(), entity.Resolution1080p); len(got) != 0 {
		t.Fatalf("expected no bottleneck at 1080p, got %+v", got)
	}

	// 4K: cpu 40*1.1=44, gpu 100*0.8=80 -> 45% CPU bottleneck
	build = &entity.Build{
		CPU: &entity.Component{PerformanceScore: 40, Socket: "AM5"},
		GPU: &entity.Component{PerformanceScore: 100},
	}
	catalog := entity.NewCatalog([]entity.Component{
		{ID: "c1", Category: entity.CategoryCPU, Name: "AM4 chip", Socket: "AM4", PerformanceScore: 90, Price: 100},
		{ID: "c2", Category: entity.CategoryCPU, Name: "AM5 mid", Socket: "AM5", PerformanceScore: 66, Price: 200},
		{ID: "c3", Category: entity.CategoryCPU, Name: "AM5 top", Socket: "AM5", PerformanceScore: 90, Price: 300},
	}, "test")
	got := Bottlenecks(build, catalog, entity.Resolution4K)
	if len(got) != 1 || got[0].Type != entity.BottleneckCPU {
		t.Fatalf("expected CPU bottleneck, got %+v", got)
	}
	if *got[0].Percentage != 45 {
		t.Fatalf("Percentage = %v, want 45", *got[0].Percentage)
	}
	// cheapest same-socket CPU scoring above the current adjusted score (44)
	if got[0].Suggestion == nil || got[0].Suggestion.ID != "c2" {
		t.Fatalf("Suggestion = %+v, want c2", got[0].Suggestion)
	}
}

func TestBottlenecksZeroScores(t *testing.T) {
	build := &entity.Build{CPU: &entity.Component{}, GPU: &entity.Component{}}
	if got := Bottlenecks(build, emptyCatalog(), entity.Resolution1440p); len(got) != 0 {
		t.Fatalf("zero scores must not produce a balance bottleneck: %+v", got)
	}
}

func TestBottlenecksGPUSuggestion(t *testing.T) {
	build := &entity.Build{
		CPU: &entity.Component{PerformanceScore: 90},
		GPU: &entity.Component{PerformanceScore: 50, Price: 20000},
	}
	catalog := entity.NewCatalog([]entity.Component{
		{ID: "g-pricey", Category: entity.CategoryGPU, PerformanceScore: 99, Price: 90000},
		{ID: "g-weak", Category: entity.CategoryGPU, PerformanceScore: 60, Price: 10000},
		{ID: "g-fit", Category: entity.CategoryGPU, PerformanceScore: 80, Price: 35000},
	}, "test")
	got := Bottlenecks(build, catalog, entity.Resolution1440p)
	if len(got) != 1 || got[0].Suggestion == nil || got[0].Suggestion.ID != "g-fit" {
		t.Fatalf("expected g-fit suggestion, got %+v", got)
	}
}

func TestBottlenecksLowRAM(t *testing.T) {
	build := &entity.Build{
		CPU: &entity.Component{PerformanceScore: 80},
		GPU: &entity.Component{PerformanceScore: 80},
		RAM: &entity.Component{Name: "Basic 8GB", Price: 2000},
	}
	catalog := entity.NewCatalog([]entity.Component{
		{ID: "r1", Category: entity.CategoryRAM, Name: "Cheap 4GB", Price: 1000},
		{ID: "r2", Category: entity.CategoryRAM, Name: "Kit 16GB", Price: 4000},
	}, "test")
	got := Bottlenecks(build, catalog, entity.Resolution1440p)
	if len(got) != 1 || got[0].Type != entity.BottleneckLowRAM {
		t.Fatalf("expected Low RAM, got %+v", got)
	}
	if got[0].Suggestion == nil || got[0].Suggestion.ID != "r2" {
		t.Fatalf("Suggestion = %+v", got[0].Suggestion)
	}

	build.RAM = &entity.Component{Name: "Kit", CapacityGB: 32}
	if got := Bottlenecks(build, catalog, entity.Resolution1440p); len(got) != 0 {
		t.Fatalf("32GB should be enough: %+v", got)
	}
}

func TestValidateIdempotent(t *testing.T) {
	sel := entity.Selections{
		entity.CategoryCPU:         {ID: "cpu", Name: "CPU", PerformanceScore: 95, Socket: "AM5", Price: 30000},
		entity.CategoryMotherboard: {ID: "mb", Name: "MB", Socket: "AM4", RAMType: "DDR4", Price: 10000},
		entity.CategoryRAM:         {ID: "ram", Name: "RAM 8GB", RAMType: "DDR5", Price: 3000},
		entity.CategoryGPU:         {ID: "gpu", Name: "GPU", PerformanceScore: 40, VRAMGB: 4, Price: 15000},
	}
	catalog := entity.NewCatalog([]entity.Component{
		{ID: "gpu2", Category: entity.CategoryGPU, Name: "GPU2", PerformanceScore: 80, Price: 20000},
	}, "test")
	v := NewManualValidator("")
	first := v.Validate(sel, catalog, "1080p")
	second := v.Validate(sel, catalog, "1080p")
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("validation not idempotent:\n%+v\n%+v", first, second)
	}
	if sel[entity.CategoryCPU].Price != 30000 {
		t.Fatalf("selections mutated")
	}
}

func TestNormalizeResolution(t *testing.T) {
	cases := map[entity.Resolution]entity.Resolution{
		"":      entity.Resolution1440p,
		"1080p": entity.Resolution1080p,
		"1080P": entity.Resolution1080p,
		"4k":    entity.Resolution4K,
		"2160p": entity.Resolution4K,
		"720p":  entity.Resolution1440p,
	}
	for in, want := range cases {
		if got := NormalizeResolution(in); got != want {
			t.Fatalf("NormalizeResolution(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestUpgrades(t *testing.T) {
	build := &entity.Build{
		CPU:         &entity.Component{ID: "cpu-a", Name: "CPU A", Socket: "AM5", PerformanceScore: 70, Price: 20000},
		Motherboard: &entity.Component{ID: "mb", Name: "MB", Socket: "AM5", RAMType: "DDR5", PerformanceScore: 50, Price: 10000},
		RAM:         &entity.Component{ID: "ram-a", Name: "RAM A", RAMType: "DDR5", PerformanceScore: 60, Price: 5000},
		GPU:         &entity.Component{ID: "gpu-a", Name: "GPU A", PerformanceScore: 70, Price: 30000},
	}
	catalog := entity.NewCatalog([]entity.Component{
		{ID: "cpu-a", Category: entity.CategoryCPU, Name: "CPU A", Socket: "AM5", PerformanceScore: 70, Price: 20000},
		{ID: "cpu-am4", Category: entity.CategoryCPU, Name: "CPU AM4", Socket: "AM4", PerformanceScore: 95, Price: 15000},
		{ID: "cpu-b", Category: entity.CategoryCPU, Name: "CPU B", Socket: "AM5", PerformanceScore: 80, Price: 22000},
		{ID: "cpu-c", Category: entity.CategoryCPU, Name: "CPU C", Socket: "AM5", PerformanceScore: 90, Price: 29000},
		{ID: "ram-ddr4", Category: entity.CategoryRAM, Name: "RAM DDR4", RAMType: "DDR4", PerformanceScore: 90, Price: 4000},
		{ID: "gpu-cheap", Category: entity.CategoryGPU, Name: "GPU Cheap", PerformanceScore: 75, Price: 28500},
		{ID: "gpu-pricey", Category: entity.CategoryGPU, Name: "GPU Pricey", PerformanceScore: 99, Price: 60000},
	}, "test")

	upgrades := NewManualValidator("").Upgrades(build, catalog)

	cpu, ok := upgrades[entity.CategoryCPU]
	if !ok {
		t.Fatalf("expected a CPU upgrade")
	}
	// cpu-c is over the 40% price cap, cpu-am4 has the wrong socket
	if cpu.Component.ID != "cpu-b" {
		t.Fatalf("CPU upgrade = %s, want cpu-b", cpu.Component.ID)
	}
	if cpu.Reason != "+10 perf score for just ₹2,000 more" {
		t.Fatalf("CPU reason = %q", cpu.Reason)
	}

	gpu := upgrades[entity.CategoryGPU]
	if gpu.Component.ID != "gpu-cheap" || gpu.Reason != "+5 perf score, ₹1,500 cheaper" {
		t.Fatalf("GPU upgrade = %+v", gpu)
	}

	if _, ok := upgrades[entity.CategoryRAM]; ok {
		t.Fatalf("incompatible RAM type must not be suggested")
	}
	if _, ok := upgrades[entity.CategoryMotherboard]; ok {
		t.Fatalf("no better motherboard exists")
	}
	if _, ok := upgrades[entity.CategoryPSU]; ok {
		t.Fatalf("unselected category must have no upgrade")
	}
}

func TestUpgradesCustomCurrency(t *testing.T) {
	build := &entity.Build{Storage: &entity.Component{Name: "SSD", PerformanceScore: 50, Price: 100}}
	catalog := entity.NewCatalog([]entity.Component{
		{ID: "s2", Category: entity.CategoryStorage, Name: "SSD 2", PerformanceScore: 60, Price: 120},
	}, "test")
	upgrades := NewManualValidator("$").Upgrades(build, catalog)
	if got := upgrades[entity.CategoryStorage].Reason; got != "+10 perf score for just $20 more" {
		t.Fatalf("reason = %q", got)
	}
}

func TestFormatAmount(t *testing.T) {
	cases := map[float64]string{
		0:         "0",
		999:       "999",
		1000:      "1,000",
		85000:     "85,000",
		1234567.5: "1,234,567.5",
		-2500:     "-2,500",
		12.34567:  "12.346",
	}
	for in, want := range cases {
		if got := FormatAmount(in); got != want {
			t.Fatalf("FormatAmount(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestValidateUnknownPSUWattage(t *testing.T) {
	// watt=0 noma'lum deb olinadi: quvvat tekshiruvi o'tkazib yuboriladi
	sel := entity.Selections{
		entity.CategoryCPU: {ID: "c", Category: entity.CategoryCPU, Wattage: 125},
		entity.CategoryGPU: {ID: "g", Category: entity.CategoryGPU, Wattage: 320},
		entity.CategoryPSU: {ID: "p", Category: entity.CategoryPSU, Name: "Unknown PSU"},
	}
	build := NewManualValidator("").Validate(sel, emptyCatalog(), entity.Resolution1440p)
	if len(build.Issues) != 0 || build.CompatibilityScore != 100 {
		t.Fatalf("unknown wattage flagged: %v (score %d)", build.Issues, build.CompatibilityScore)
	}

	sel[entity.CategoryPSU] = &entity.Component{ID: "p", Category: entity.CategoryPSU, Name: "Tiny PSU", Wattage: 1}
	build = NewManualValidator("").Validate(sel, emptyCatalog(), entity.Resolution1440p)
	if len(build.Issues) != 1 || build.CompatibilityScore != 80 {
		t.Fatalf("known low wattage must be flagged: %v (score %d)", build.Issues, build.CompatibilityScore)
	}
}
