package usecase

import (
	"sort"
	"strings"

	"github.com/yourusername/crm-records/internal/domain/entity"
)

// uncategorized bucket for rows without a category
const uncategorized = "Uncategorized"

// CategoryCount rows per category value
type CategoryCount struct {
	Category string
	Count    int
}

// Summary overview of one table
type Summary struct {
	Kind       entity.Kind
	Rows       int
	Columns    int
	Categories []CategoryCount
}

// Search returns rows where the query appears in any cell. An empty query
// returns every row.
func (u *session) Search(kind entity.Kind, query string) []entity.Record {
	rows := u.snapshot.Table(kind).Rows()

	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return rows
	}
	compactQuery := normalizeAlphaNum(query)
	tokens := queryTokens(query)

	var results []entity.Record
	for _, row := range rows {
		if rowMatches(row, query, compactQuery, tokens) {
			results = append(results, row)
		}
	}
	return results
}

// Summary counts rows per category, largest group first.
func (u *session) Summary(kind entity.Kind) Summary {
	table := u.snapshot.Table(kind)

	counts := make(map[string]int)
	for _, row := range table.Rows() {
		category := strings.TrimSpace(row.String(entity.FieldCategory))
		if category == "" {
			category = uncategorized
		}
		counts[category]++
	}

	categories := make([]CategoryCount, 0, len(counts))
	for name, n := range counts {
		categories = append(categories, CategoryCount{Category: name, Count: n})
	}
	sort.Slice(categories, func(i, j int) bool {
		if categories[i].Count == categories[j].Count {
			return categories[i].Category < categories[j].Category
		}
		return categories[i].Count > categories[j].Count
	})

	return Summary{
		Kind:       kind,
		Rows:       table.Len(),
		Columns:    len(table.Columns()),
		Categories: categories,
	}
}

func rowMatches(row entity.Record, query, compactQuery string, tokens []string) bool {
	cells := make([]string, 0, row.Len())
	for _, key := range row.Keys() {
		cell := strings.ToLower(row.String(key))
		if cell == "" {
			continue
		}
		if strings.Contains(cell, query) {
			return true
		}
		// "+1 555-0100" matches "15550100"
		if compactQuery != "" && strings.Contains(normalizeAlphaNum(cell), compactQuery) {
			return true
		}
		cells = append(cells, cell)
	}
	return matchTokens(tokens, cells...)
}

func queryTokens(q string) []string {
	q = strings.ToLower(q)
	separators := []string{",", ";", ":", "/", "\\", "_"}
	for _, sep := range separators {
		q = strings.ReplaceAll(q, sep, " ")
	}

	var tokens []string
	for _, f := range strings.Fields(q) {
		if len([]rune(f)) >= 2 {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

// matchTokens every token must appear in at least one part.
func matchTokens(tokens []string, parts ...string) bool {
	if len(tokens) == 0 {
		return false
	}
	for _, t := range tokens {
		found := false
		for _, p := range parts {
			if strings.Contains(p, t) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func normalizeAlphaNum(s string) string {
	var b strings.Builder
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return strings.ToLower(b.String())
}
