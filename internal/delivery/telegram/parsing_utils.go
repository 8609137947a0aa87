package telegram

import (
	"fmt"
	"strings"

	"github.com/yourusername/pc-build-generator/internal/domain/entity"
)

var knownResolutions = map[string]entity.Resolution{
	"1080p": entity.Resolution1080p,
	"1440p": entity.Resolution1440p,
	"2k":    entity.Resolution1440p,
	"4k":    entity.Resolution4K,
	"2160p": entity.Resolution4K,
}

// parseCheckArgs "/check cpu=Ryzen 7 7700; gpu=RTX 4070 @1080p" argumentlarini ajratish.
// Selections are separated by ';' or new lines; the optional "@resolution" suffix goes last.
func parseCheckArgs(args string) (map[entity.Category]string, entity.Resolution, error) {
	args = strings.TrimSpace(args)
	var res entity.Resolution
	if idx := strings.LastIndex(args, "@"); idx >= 0 {
		raw := strings.ToLower(strings.TrimSpace(args[idx+1:]))
		known, ok := knownResolutions[raw]
		if !ok {
			return nil, "", fmt.Errorf("noma'lum resolution %q (1080p, 1440p yoki 4K)", raw)
		}
		res = known
		args = args[:idx]
	}

	queries := make(map[entity.Category]string)
	for _, part := range strings.FieldsFunc(args, func(r rune) bool { return r == ';' || r == '\n' }) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		key, value, ok := strings.Cut(part, "=")
		if !ok {
			return nil, "", fmt.Errorf("%q: kategoriya=nom ko'rinishida yozing", part)
		}
		category, ok := entity.ParseCategory(key)
		if !ok {
			return nil, "", fmt.Errorf("noma'lum kategoriya %q", strings.TrimSpace(key))
		}
		value = strings.TrimSpace(value)
		if value == "" {
			return nil, "", fmt.Errorf("%s uchun nom bo'sh", category.Label())
		}
		queries[category] = value
	}
	if len(queries) == 0 {
		return nil, "", fmt.Errorf("kamida bitta qism kiriting")
	}
	return queries, res, nil
}
