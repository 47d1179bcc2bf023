package catalog

import (
	"sort"
	"strings"

	"github.com/nijamuddin66526-boop/offerzon/internal/models"
)

// Query holds the four independent selectors that shape the displayed list.
// Zero values are the permissive defaults: no category or store constraint,
// no search text, relevance ordering.
type Query struct {
	Category models.Category
	Store    models.Store
	Search   string
	Sort     models.SortOption
}

// Apply derives the ordered display list from the full collection: category
// filter, store filter, free-text filter, then sort. Pure and non-mutating;
// the input slice is never reordered or trimmed in place.
//
// The free-text predicate is case-insensitive substring containment against
// title, store and category.
func Apply(deals []models.Deal, q Query) []models.Deal {
	needle := strings.ToLower(strings.TrimSpace(q.Search))

	out := make([]models.Deal, 0, len(deals))
	for _, d := range deals {
		if q.Category != "" && q.Category != models.CategoryAll && d.Category != q.Category {
			continue
		}
		if q.Store != "" && q.Store != models.StoreAll && d.Store != q.Store {
			continue
		}
		if needle != "" && !matchesSearch(d, needle) {
			continue
		}
		out = append(out, d)
	}

	switch q.Sort {
	case models.SortPriceLowToHigh:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].DealPrice < out[j].DealPrice
		})
	case models.SortPriceHighToLow:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].DealPrice > out[j].DealPrice
		})
	case models.SortDiscount:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].DiscountPercentage > out[j].DiscountPercentage
		})
	default:
		// Relevance: loot deals first, each partition newest first. Stable,
		// so equal createdAt values keep their collection order.
		sort.SliceStable(out, func(i, j int) bool {
			if out[i].IsLoot != out[j].IsLoot {
				return out[i].IsLoot
			}
			return out[i].CreatedAt > out[j].CreatedAt
		})
	}

	return out
}

func matchesSearch(d models.Deal, needle string) bool {
	return strings.Contains(strings.ToLower(d.Title), needle) ||
		strings.Contains(strings.ToLower(string(d.Store)), needle) ||
		strings.Contains(strings.ToLower(string(d.Category)), needle)
}

// Featured picks the hero-banner deal: the first loot-flagged record in
// collection order, else the first record, else nothing.
func Featured(deals []models.Deal) (models.Deal, bool) {
	for _, d := range deals {
		if d.IsLoot {
			return d, true
		}
	}
	if len(deals) > 0 {
		return deals[0], true
	}
	return models.Deal{}, false
}
