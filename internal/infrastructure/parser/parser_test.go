package parser

import (
	"bytes"
	"reflect"
	"testing"

	"github.com/xuri/excelize/v2"
	"github.com/yourusername/pc-build-generator/internal/domain/entity"
)

const sampleCatalog = `Part,Name,Price,Performance_Score,Description,Purpose,Socket,RAM_Type,Watt,VRAM,Capacity
Processor,"Ryzen 5 5600, boxed",12000,60,6 cores,"['Gaming', 'Productivity']",AM4,,65,,
Graphics Card,RTX 3060,25000,70,,['Gaming'],,,170,12,
memory,Corsair 16GB DDR4,4000,50,,General,,DDR4,,,16
cabinet,NZXT H510,5000,abc,,,,,,,
toaster,Bread Master,100,1,,,,,,,
ssd,,3000,10,,,,,,,
`

func TestParseTextNormalizesRows(t *testing.T) {
	comps, report := ParseText(sampleCatalog)

	if len(comps) != 4 {
		t.Fatalf("expected 4 components, got %d", len(comps))
	}
	if report.Rows != 6 || report.Parsed != 4 {
		t.Fatalf("unexpected report counts: %+v", report)
	}
	if len(report.Skipped) != 2 {
		t.Fatalf("expected 2 skipped rows, got %+v", report.Skipped)
	}

	cpu := comps[0]
	if cpu.Category != entity.CategoryCPU {
		t.Fatalf("processor should map to cpu, got %q", cpu.Category)
	}
	if cpu.Name != "Ryzen 5 5600, boxed" {
		t.Fatalf("quoted comma should stay inside field, got %q", cpu.Name)
	}
	if cpu.Price != 12000 || cpu.PerformanceScore != 60 || cpu.Wattage != 65 || cpu.Socket != "AM4" {
		t.Fatalf("unexpected cpu fields: %+v", cpu)
	}
	if !reflect.DeepEqual(cpu.PurposeTags, []string{"Gaming", "Productivity"}) {
		t.Fatalf("unexpected purpose tags: %#v", cpu.PurposeTags)
	}

	gpu := comps[1]
	if gpu.Category != entity.CategoryGPU || gpu.VRAMGB != 12 {
		t.Fatalf("unexpected gpu: %+v", gpu)
	}

	ram := comps[2]
	if ram.RAMType != "DDR4" || ram.CapacityGB != 16 {
		t.Fatalf("unexpected ram: %+v", ram)
	}
	if !reflect.DeepEqual(ram.PurposeTags, []string{"General"}) {
		t.Fatalf("scalar purpose should be one tag, got %#v", ram.PurposeTags)
	}

	pcCase := comps[3]
	if pcCase.Category != entity.CategoryCase || pcCase.PerformanceScore != 0 {
		t.Fatalf("unexpected case: %+v", pcCase)
	}
	if len(pcCase.PurposeTags) != 0 || pcCase.PurposeTags == nil {
		t.Fatalf("empty purpose should be empty non-nil list, got %#v", pcCase.PurposeTags)
	}

	if len(report.Defaults) != 1 {
		t.Fatalf("expected one defaulted field, got %+v", report.Defaults)
	}
	d := report.Defaults[0]
	if d.Row != 4 || d.Field != "performance_score" || d.Raw != "abc" {
		t.Fatalf("unexpected default record: %+v", d)
	}
	if got := report.DefaultsByField()["performance_score"]; got != 1 {
		t.Fatalf("DefaultsByField = %d", got)
	}
}

func TestParseTextDeterministicIDs(t *testing.T) {
	first, _ := ParseText(sampleCatalog)
	second, _ := ParseText(sampleCatalog)
	for i := range first {
		if first[i].ID == "" {
			t.Fatalf("component %d has no id", i)
		}
		if first[i].ID != second[i].ID {
			t.Fatalf("id changed between parses: %q vs %q", first[i].ID, second[i].ID)
		}
	}
}

func TestParseTextDuplicateNamesGetDistinctIDs(t *testing.T) {
	raw := "part,name,price\ngpu,RTX 3060,100\ngpu,RTX 3060,110\n"
	comps, _ := ParseText(raw)
	if len(comps) != 2 {
		t.Fatalf("expected 2 components, got %d", len(comps))
	}
	if comps[0].ID == comps[1].ID {
		t.Fatalf("duplicate rows must get different ids")
	}
}

func TestParseTextExplicitIDWins(t *testing.T) {
	raw := "id,type,name,price\ncpu-1,cpu,Ryzen,100\n"
	comps, _ := ParseText(raw)
	if len(comps) != 1 || comps[0].ID != "cpu-1" {
		t.Fatalf("explicit id should be kept, got %+v", comps)
	}
}

func TestParseTextLenientNumbers(t *testing.T) {
	raw := "part,name,price,watt\npsu,Corsair,3500,650W\npsu,Cheap,NaN,\n"
	comps, report := ParseText(raw)
	if comps[0].Wattage != 650 {
		t.Fatalf("650W should parse as 650, got %v", comps[0].Wattage)
	}
	if comps[1].Price != 0 || comps[1].Wattage != 0 {
		t.Fatalf("NaN and empty should default to 0, got %+v", comps[1])
	}
	if len(report.Defaults) != 1 || report.Defaults[0].Field != "price" {
		t.Fatalf("only the unparsable price should be reported, got %+v", report.Defaults)
	}
}

func TestParseTextEmpty(t *testing.T) {
	comps, report := ParseText("")
	if len(comps) != 0 || report.Rows != 0 {
		t.Fatalf("empty input should produce nothing, got %d comps / %+v", len(comps), report)
	}
}

func TestParsePurpose(t *testing.T) {
	cases := map[string][]string{
		"":                           {},
		"Gaming":                     {"Gaming"},
		"['Gaming', 'General']":      {"Gaming", "General"},
		`["Editing","3D rendering"]`: {"Editing", "3D rendering"},
		"[]":                         {},
	}
	for raw, want := range cases {
		if got := ParsePurpose(raw); !reflect.DeepEqual(got, want) {
			t.Errorf("ParsePurpose(%q) = %#v, want %#v", raw, got, want)
		}
	}
}

func TestParseExcel(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	rows := [][]interface{}{
		{"Type", "Name", "Price", "Performance_Score", "Socket", "RAM_Type"},
		{"cpu", "Ryzen 7", 20000, 75, "AM4", ""},
		{},
		{"Motherboard", "B550", 9000, 40, "AM4", "DDR4"},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatalf("SetSheetRow: %v", err)
		}
	}
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("write workbook: %v", err)
	}

	comps, report, err := ParseExcel(&buf)
	if err != nil {
		t.Fatalf("ParseExcel error: %v", err)
	}
	if len(comps) != 2 || report.Parsed != 2 {
		t.Fatalf("expected 2 components, got %d (%+v)", len(comps), report)
	}
	if comps[0].Category != entity.CategoryCPU || comps[0].Price != 20000 || comps[0].Socket != "AM4" {
		t.Fatalf("unexpected cpu: %+v", comps[0])
	}
	if comps[1].Category != entity.CategoryMotherboard || comps[1].RAMType != "DDR4" {
		t.Fatalf("unexpected motherboard: %+v", comps[1])
	}
}

func TestParseExcelRejectsGarbage(t *testing.T) {
	if _, _, err := ParseExcel(bytes.NewReader([]byte("not a workbook"))); err == nil {
		t.Fatalf("expected error for non-xlsx input")
	}
}

func TestPartition(t *testing.T) {
	comps, _ := ParseText(sampleCatalog)
	catalog := Partition(comps, "test")
	if catalog.Len() != 4 {
		t.Fatalf("Len = %d", catalog.Len())
	}
	if got := catalog.Parts(entity.CategoryGPU); len(got) != 1 || got[0].Name != "RTX 3060" {
		t.Fatalf("unexpected gpu partition: %+v", got)
	}
	if got := catalog.Parts(entity.CategoryPSU); len(got) != 0 {
		t.Fatalf("psu partition should be empty, got %+v", got)
	}
}
