package analytics

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"spendwise/internal/models"
)

// Palette is the fixed set of display colors cycled through by category
// position. Cosmetic only; reordering the category list reassigns colors.
var Palette = []string{
	"#8B5CF6", // violet
	"#F472B6", // pink
	"#10B981", // emerald
	"#F59E0B", // amber
	"#3B82F6", // blue
	"#EF4444", // red
	"#06B6D4", // cyan
	"#A78BFA", // light violet
	"#34D399", // light emerald
	"#FBBF24", // yellow
}

// DefaultSymbol is shown for expenses whose category no longer exists.
const DefaultSymbol = "💸"

// CategoryTotal is one row of the spending breakdown.
type CategoryTotal struct {
	Name    string  `json:"name"`
	Symbol  string  `json:"symbol"`
	Color   string  `json:"color"`
	Total   float64 `json:"total"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

// ParseAmount parses a stored decimal-string amount. Empty or malformed
// values contribute 0 rather than failing the whole aggregation or leaking
// NaN into totals.
func ParseAmount(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// Sum returns the total of all parsed expense amounts.
func Sum(expenses []models.Expense) float64 {
	var total float64
	for _, e := range expenses {
		total += ParseAmount(e.Amount)
	}
	return total
}

// Aggregate groups the (already filtered) expenses by category and computes
// per-category totals, counts, and percentage shares of the grand total.
// Matching is by exact, case-sensitive name equality against the expense's
// denormalized category name. Categories with no activity are excluded.
// Rows come back in category-list order; use TopCategory for ranking.
func Aggregate(expenses []models.Expense, categories []models.Category) []CategoryTotal {
	totals := make([]CategoryTotal, 0, len(categories))
	for i, cat := range categories {
		var total float64
		count := 0
		for _, e := range expenses {
			if e.CategoryName != cat.Name {
				continue
			}
			total += ParseAmount(e.Amount)
			count++
		}
		if total == 0 {
			continue
		}
		totals = append(totals, CategoryTotal{
			Name:   cat.Name,
			Symbol: cat.Symbol,
			Color:  Palette[i%len(Palette)],
			Total:  total,
			Count:  count,
		})
	}

	var grand float64
	for _, t := range totals {
		grand += t.Total
	}
	if grand > 0 {
		for i := range totals {
			totals[i].Percent = round1(totals[i].Total / grand * 100)
		}
	}
	return totals
}

// GrandTotal sums the breakdown's totals.
func GrandTotal(totals []CategoryTotal) float64 {
	var grand float64
	for _, t := range totals {
		grand += t.Total
	}
	return grand
}

// TopCategory returns the category with the highest total. Equal totals are
// broken alphabetically by name so the result never depends on sort
// stability. The second return value is false for an empty breakdown.
func TopCategory(totals []CategoryTotal) (CategoryTotal, bool) {
	if len(totals) == 0 {
		return CategoryTotal{}, false
	}
	ranked := make([]CategoryTotal, len(totals))
	copy(ranked, totals)
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Total != ranked[j].Total {
			return ranked[i].Total > ranked[j].Total
		}
		return ranked[i].Name < ranked[j].Name
	})
	return ranked[0], true
}

// BudgetLeft computes the remaining monthly budget given this month's spend.
// Negative values are a valid over-budget state, not an error.
func BudgetLeft(monthlyBudget, spentThisMonth float64) float64 {
	return monthlyBudget - spentThisMonth
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
