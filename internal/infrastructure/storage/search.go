package storage

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/yourusername/pc-build-generator/internal/domain/entity"
)

var searchNormalizeRe = regexp.MustCompile(`[^\p{L}\p{N}]+`)

func normalizeSearchText(input string) string {
	input = strings.ToLower(input)
	input = searchNormalizeRe.ReplaceAllString(input, " ")
	return strings.TrimSpace(input)
}

func compactSearchText(input string) string {
	return searchNormalizeRe.ReplaceAllString(strings.ToLower(input), "")
}

// rankComponents nom bo'yicha fuzzy qidiruv: substring, bigram o'xshashlik va token edit distance.
// Results are ordered by score, then catalog order.
func rankComponents(parts []entity.Component, query string, limit int) []entity.Component {
	normalizedQuery := normalizeSearchText(query)
	compactQuery := compactSearchText(query)
	if normalizedQuery == "" && compactQuery == "" {
		return nil
	}
	queryTokens := strings.Fields(normalizedQuery)

	type scored struct {
		component entity.Component
		score     int
	}
	var matches []scored

	for _, c := range parts {
		nameNorm := normalizeSearchText(c.Name)
		nameCompact := compactSearchText(c.Name)
		textNorm := normalizeSearchText(c.Name + " " + c.Description + " " + c.Socket + " " + c.RAMType)

		score := 0
		if strings.Contains(nameNorm, normalizedQuery) {
			score += 120
		} else if strings.Contains(textNorm, normalizedQuery) {
			score += 100
		}
		if compactQuery != "" && strings.Contains(nameCompact, compactQuery) {
			score += 110
		}
		if len([]rune(compactQuery)) >= 4 {
			if sim := ngramSimilarity(compactQuery, nameCompact, 2); sim >= 0.35 {
				score += int(sim * 80)
			} else if sim >= 0.25 {
				score += int(sim * 50)
			}
		}
		score += tokenScore(queryTokens, strings.Fields(textNorm))

		if score > 0 {
			matches = append(matches, scored{component: c, score: score})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].score > matches[j].score
	})

	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	results := make([]entity.Component, len(matches))
	for i, m := range matches {
		results[i] = m.component
	}
	return results
}

func tokenScore(queryTokens, textTokens []string) int {
	if len(queryTokens) == 0 || len(textTokens) == 0 {
		return 0
	}
	tokenSet := make(map[string]struct{}, len(textTokens))
	for _, t := range textTokens {
		tokenSet[t] = struct{}{}
	}

	score := 0
	for _, qt := range queryTokens {
		if len(qt) < 2 {
			continue
		}
		if _, ok := tokenSet[qt]; ok {
			score += 12
			continue
		}
		if anyToken(textTokens, func(tt string) bool { return strings.HasPrefix(tt, qt) }) {
			score += 8
			continue
		}
		if len(qt) >= 3 && anyToken(textTokens, func(tt string) bool { return strings.Contains(tt, qt) }) {
			score += 4
			continue
		}
		if !hasLetter(qt) {
			continue
		}
		maxEdits := maxEditDistance(qt)
		if maxEdits == 0 {
			continue
		}
		best, found := maxEdits+1, false
		for _, tt := range textTokens {
			if dist, ok := editDistanceWithin(qt, tt, maxEdits); ok && dist < best {
				best, found = dist, true
			}
		}
		if found {
			score += 6 + (maxEdits - best)
		}
	}
	return score
}

func anyToken(tokens []string, match func(string) bool) bool {
	for _, t := range tokens {
		if match(t) {
			return true
		}
	}
	return false
}

func ngramSet(input string, n int) map[string]struct{} {
	runes := []rune(input)
	if n <= 0 || len(runes) == 0 {
		return nil
	}
	if len(runes) < n {
		return map[string]struct{}{string(runes): {}}
	}
	set := make(map[string]struct{}, len(runes)-n+1)
	for i := 0; i <= len(runes)-n; i++ {
		set[string(runes[i:i+n])] = struct{}{}
	}
	return set
}

func ngramSimilarity(a, b string, n int) float64 {
	setA := ngramSet(a, n)
	setB := ngramSet(b, n)
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}
	inter := 0
	for gram := range setA {
		if _, ok := setB[gram]; ok {
			inter++
		}
	}
	union := len(setA) + len(setB) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

func hasLetter(token string) bool {
	for _, r := range token {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

func maxEditDistance(token string) int {
	l := len([]rune(token))
	switch {
	case l <= 3:
		return 0
	case l <= 5:
		return 1
	case l <= 8:
		return 2
	default:
		return 3
	}
}

// editDistanceWithin Levenshtein masofasi, max dan oshsa erta to'xtaydi
func editDistanceWithin(a, b string, max int) (int, bool) {
	if a == b {
		return 0, true
	}
	ra, rb := []rune(a), []rune(b)
	if absInt(len(ra)-len(rb)) > max {
		return 0, false
	}
	if len(rb) > len(ra) {
		ra, rb = rb, ra
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i, ca := range ra {
		curr[0] = i + 1
		minRow := curr[0]
		for j, cb := range rb {
			cost := 1
			if ca == cb {
				cost = 0
			}
			curr[j+1] = min(prev[j+1]+1, curr[j]+1, prev[j]+cost)
			if curr[j+1] < minRow {
				minRow = curr[j+1]
			}
		}
		if minRow > max {
			return 0, false
		}
		prev, curr = curr, prev
	}
	if dist := prev[len(rb)]; dist <= max {
		return dist, true
	}
	return 0, false
}

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
