package parser

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/yourusername/pc-build-generator/internal/domain/entity"
)

// componentNamespace UUIDv5 namespace for content-derived component IDs
var componentNamespace = uuid.MustParse("6f1c2a3e-8b7d-4c1e-9a55-3d2f0b7e4c10")

// FieldDefault a present value that could not be parsed and was replaced with 0
type FieldDefault struct {
	Row   int
	Field string
	Raw   string
}

// SkippedRow a row dropped during normalization
type SkippedRow struct {
	Row    int
	Reason string
}

// Report parse diagnostikasi. Rows counts data rows seen (header excluded).
type Report struct {
	Rows     int
	Parsed   int
	Defaults []FieldDefault
	Skipped  []SkippedRow
}

// DefaultsByField counts defaulted values per field name.
func (r *Report) DefaultsByField() map[string]int {
	out := make(map[string]int)
	if r == nil {
		return out
	}
	for _, d := range r.Defaults {
		out[d.Field]++
	}
	return out
}

// normalizer turns header/value rows into components. One normalizer per parse, so ID
// occurrence counters are scoped to a single source.
type normalizer struct {
	headers     []string
	report      *Report
	occurrences map[string]int
}

func newNormalizer(rawHeaders []string) *normalizer {
	headers := make([]string, len(rawHeaders))
	for i, h := range rawHeaders {
		headers[i] = canonicalHeader(h)
	}
	return &normalizer{
		headers:     headers,
		report:      &Report{},
		occurrences: make(map[string]int),
	}
}

func canonicalHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\uFEFF")))
	switch h {
	case "type", "category":
		return "part"
	case "performance", "score", "performancescore":
		return "performance_score"
	case "ramtype", "ram type":
		return "ram_type"
	case "wattage":
		return "watt"
	case "purposes", "tags":
		return "purpose"
	}
	return h
}

// row normalizes one record. rowNum is 1-based and counts data rows only.
func (n *normalizer) row(rowNum int, values []string) (entity.Component, bool) {
	n.report.Rows++

	fields := make(map[string]string, len(n.headers))
	for i, header := range n.headers {
		if header == "" {
			continue
		}
		value := ""
		if i < len(values) {
			value = strings.TrimSpace(values[i])
		}
		fields[header] = value
	}

	category, ok := entity.ParseCategory(fields["part"])
	if !ok {
		n.report.Skipped = append(n.report.Skipped, SkippedRow{Row: rowNum, Reason: fmt.Sprintf("unknown part %q", fields["part"])})
		return entity.Component{}, false
	}
	name := fields["name"]
	if name == "" {
		n.report.Skipped = append(n.report.Skipped, SkippedRow{Row: rowNum, Reason: "missing name"})
		return entity.Component{}, false
	}

	comp := entity.Component{
		ID:               fields["id"],
		Category:         category,
		Name:             name,
		Price:            n.number(rowNum, "price", fields),
		PerformanceScore: n.number(rowNum, "performance_score", fields),
		Description:      fields["description"],
		PurposeTags:      ParsePurpose(fields["purpose"]),
		Socket:           fields["socket"],
		RAMType:          fields["ram_type"],
		Wattage:          n.number(rowNum, "watt", fields),
		VRAMGB:           n.number(rowNum, "vram", fields),
		CapacityGB:       n.number(rowNum, "capacity", fields),
	}
	if comp.ID == "" {
		comp.ID = n.syntheticID(category, name)
	}

	n.report.Parsed++
	return comp, true
}

// number parses a numeric field; unparsable values default to 0 and are reported.
func (n *normalizer) number(rowNum int, field string, fields map[string]string) float64 {
	raw, ok := fields[field]
	if !ok || raw == "" {
		return 0
	}
	v, err := parseFloatLenient(raw)
	if err != nil {
		n.report.Defaults = append(n.report.Defaults, FieldDefault{Row: rowNum, Field: field, Raw: raw})
		return 0
	}
	return v
}

// parseFloatLenient accepts a leading numeric prefix ("650W", "12 GB") the way
// a parseFloat-style reader does.
func parseFloatLenient(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, fmt.Errorf("not a finite number: %q", raw)
		}
		return v, nil
	}
	end := 0
	seenDigit, seenDot := false, false
	for i, r := range s {
		switch {
		case r >= '0' && r <= '9':
			seenDigit = true
			end = i + 1
		case r == '.' && !seenDot:
			seenDot = true
		case (r == '-' || r == '+') && i == 0:
		default:
			goto done
		}
	}
done:
	if !seenDigit {
		return 0, fmt.Errorf("not a number: %q", raw)
	}
	return strconv.ParseFloat(s[:end], 64)
}

// syntheticID derives a stable ID from category, name and occurrence index.
func (n *normalizer) syntheticID(category entity.Category, name string) string {
	key := string(category) + "|" + strings.ToLower(name)
	n.occurrences[key]++
	seed := fmt.Sprintf("%s|%d", key, n.occurrences[key])
	return uuid.NewSHA1(componentNamespace, []byte(seed)).String()
}

// ParsePurpose "['Gaming', 'General']" -> [Gaming General]; bo'sh qiymat -> bo'sh ro'yxat
func ParsePurpose(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []string{}
	}
	if !strings.HasPrefix(raw, "[") {
		return []string{raw}
	}
	cleaned := strings.NewReplacer("'", "", "\"", "", "[", "", "]", "").Replace(raw)
	tags := []string{}
	for _, part := range strings.Split(cleaned, ",") {
		if tag := strings.TrimSpace(part); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}
