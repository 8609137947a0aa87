package parser

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
	"github.com/yourusername/pc-build-generator/internal/domain/entity"
)

// ParseExcel birinchi varaqdan katalogni o'qish (birinchi qator - sarlavha)
func ParseExcel(r io.Reader) ([]entity.Component, *Report, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return []entity.Component{}, &Report{}, nil
	}

	n := newNormalizer(rows[0])
	components := make([]entity.Component, 0, len(rows)-1)
	rowNum := 0
	for _, row := range rows[1:] {
		if isBlankRow(row) {
			continue
		}
		rowNum++
		if comp, ok := n.row(rowNum, row); ok {
			components = append(components, comp)
		}
	}
	return components, n.report, nil
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ParseFile fayl kengaytmasiga qarab .xlsx yoki matnli katalogni o'qiydi.
func ParseFile(path string) ([]entity.Component, *Report, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		file, err := os.Open(path)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open catalog: %w", err)
		}
		defer file.Close()
		return ParseExcel(file)
	default:
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read catalog: %w", err)
		}
		components, report := ParseText(string(data))
		return components, report, nil
	}
}
