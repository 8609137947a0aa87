package parser

import (
	"strings"

	"github.com/yourusername/pc-build-generator/internal/domain/entity"
)

// ParseText header-first vergul bilan ajratilgan katalogni o'qiydi.
// Quotes only toggle the "inside" flag; doubled quotes are not an escape.
func ParseText(raw string) ([]entity.Component, *Report) {
	lines := splitLines(raw)
	if len(lines) == 0 {
		return []entity.Component{}, &Report{}
	}

	n := newNormalizer(splitRecord(lines[0]))
	components := make([]entity.Component, 0, len(lines)-1)
	rowNum := 0
	for _, line := range lines[1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		rowNum++
		if comp, ok := n.row(rowNum, splitRecord(line)); ok {
			components = append(components, comp)
		}
	}
	return components, n.report
}

func splitLines(raw string) []string {
	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	raw = strings.ReplaceAll(raw, "\r", "\n")
	lines := strings.Split(raw, "\n")
	// trailing empty lines
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// splitRecord splits one line on commas outside quoted spans and trims each field.
func splitRecord(line string) []string {
	var (
		fields  []string
		current strings.Builder
		inQuote bool
	)
	for _, r := range line {
		switch {
		case r == '"':
			inQuote = !inQuote
		case r == ',' && !inQuote:
			fields = append(fields, strings.TrimSpace(current.String()))
			current.Reset()
		default:
			current.WriteRune(r)
		}
	}
	fields = append(fields, strings.TrimSpace(current.String()))
	return fields
}

// Partition builds a catalog snapshot from normalized components.
func Partition(components []entity.Component, source string) *entity.Catalog {
	return entity.NewCatalog(components, source)
}
