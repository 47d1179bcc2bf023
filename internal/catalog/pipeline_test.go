package catalog

import (
	"reflect"
	"testing"

	"github.com/nijamuddin66526-boop/offerzon/internal/models"
	"github.com/nijamuddin66526-boop/offerzon/internal/seed"
)

func titles(deals []models.Deal) []string {
	out := make([]string, 0, len(deals))
	for _, d := range deals {
		out = append(out, d.Title)
	}
	return out
}

func TestApply_EmptyInput(t *testing.T) {
	got := Apply(nil, Query{})
	if got == nil {
		t.Fatal("Apply(nil) should return an empty slice, not nil")
	}
	if len(got) != 0 {
		t.Errorf("Apply(nil) returned %d deals, want 0", len(got))
	}
}

func TestApply_PermissiveDefaultsReturnEverything(t *testing.T) {
	deals := seed.Deals()
	got := Apply(deals, Query{})
	if len(got) != len(deals) {
		t.Errorf("permissive query returned %d deals, want %d", len(got), len(deals))
	}
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	deals := seed.Deals()
	before := make([]models.Deal, len(deals))
	copy(before, deals)

	Apply(deals, Query{Sort: models.SortPriceLowToHigh})
	Apply(deals, Query{Search: "nike"})

	if !reflect.DeepEqual(deals, before) {
		t.Error("Apply mutated the input collection")
	}
}

func TestApply_Idempotent(t *testing.T) {
	deals := seed.Deals()
	q := Query{Category: models.CategoryElectronics, Sort: models.SortDiscount, Search: "a"}

	first := Apply(deals, q)
	second := Apply(deals, q)
	if !reflect.DeepEqual(first, second) {
		t.Error("two identical invocations produced different results")
	}
}

func TestApply_ResultIsSubsequence(t *testing.T) {
	deals := seed.Deals()
	got := Apply(deals, Query{Store: models.StoreAmazon, Search: "a"})

	seen := map[string]int{}
	for _, d := range deals {
		seen[d.ID]++
	}
	for _, d := range got {
		seen[d.ID]--
		if seen[d.ID] < 0 {
			t.Errorf("deal %s invented or duplicated by the pipeline", d.ID)
		}
	}
}

func TestApply_CategoryFilter_SeededExample(t *testing.T) {
	// The seeded collection holds exactly three Electronics records, one of
	// them loot-flagged. Relevance order puts the loot record first.
	got := Apply(seed.Deals(), Query{
		Category: models.CategoryElectronics,
		Store:    models.StoreAll,
		Sort:     models.SortRelevance,
	})

	if len(got) != 3 {
		t.Fatalf("got %d deals, want 3: %v", len(got), titles(got))
	}
	for _, d := range got {
		if d.Category != models.CategoryElectronics {
			t.Errorf("deal %q has category %q, want Electronics", d.Title, d.Category)
		}
	}
	if got[0].Title != "Apple iPhone 15 (128GB) - Blue" {
		t.Errorf("first deal = %q, want the loot-flagged iPhone", got[0].Title)
	}
}

func TestApply_SearchFilter_SeededExample(t *testing.T) {
	got := Apply(seed.Deals(), Query{Search: "nike"})
	if len(got) != 1 {
		t.Fatalf("query \"nike\" returned %d deals, want 1: %v", len(got), titles(got))
	}
	if got[0].Title != "Nike Air Max 270 React - Sneakers" {
		t.Errorf("got %q", got[0].Title)
	}
}

func TestApply_SearchMatchesStoreAndCategory(t *testing.T) {
	deals := seed.Deals()

	byStore := Apply(deals, Query{Search: "myntra"})
	if len(byStore) != 1 {
		t.Errorf("store-name search returned %d deals, want 1", len(byStore))
	}

	byCategory := Apply(deals, Query{Search: "groceries"})
	if len(byCategory) != 1 {
		t.Errorf("category-name search returned %d deals, want 1", len(byCategory))
	}
}

func TestApply_NoMatchesIsEmptyNotError(t *testing.T) {
	got := Apply(seed.Deals(), Query{
		Category: models.CategoryGroceries,
		Store:    models.StoreMyntra, // no grocery deal at Myntra
	})
	if len(got) != 0 {
		t.Errorf("impossible filter combination returned %d deals", len(got))
	}
}

func TestApply_StoreFilterAppliesBeforeSort(t *testing.T) {
	got := Apply(seed.Deals(), Query{
		Store: models.StoreAmazon,
		Sort:  models.SortPriceLowToHigh,
	})
	for _, d := range got {
		if d.Store != models.StoreAmazon {
			t.Errorf("deal %q from %q leaked through the store filter", d.Title, d.Store)
		}
	}
	for i := 1; i < len(got); i++ {
		if got[i-1].DealPrice > got[i].DealPrice {
			t.Errorf("prices out of order at %d: %v > %v", i, got[i-1].DealPrice, got[i].DealPrice)
		}
	}
}

func TestApply_SortMonotonicity(t *testing.T) {
	deals := seed.Deals()

	t.Run("priceLowToHigh", func(t *testing.T) {
		got := Apply(deals, Query{Sort: models.SortPriceLowToHigh})
		for i := 1; i < len(got); i++ {
			if got[i-1].DealPrice > got[i].DealPrice {
				t.Errorf("ascending violated at %d", i)
			}
		}
	})

	t.Run("priceHighToLow", func(t *testing.T) {
		got := Apply(deals, Query{Sort: models.SortPriceHighToLow})
		for i := 1; i < len(got); i++ {
			if got[i-1].DealPrice < got[i].DealPrice {
				t.Errorf("descending violated at %d", i)
			}
		}
	})

	t.Run("discount", func(t *testing.T) {
		got := Apply(deals, Query{Sort: models.SortDiscount})
		for i := 1; i < len(got); i++ {
			if got[i-1].DiscountPercentage < got[i].DiscountPercentage {
				t.Errorf("discount order violated at %d", i)
			}
		}
	})
}

func TestApply_RelevancePartitionAndRecency(t *testing.T) {
	got := Apply(seed.Deals(), Query{Sort: models.SortRelevance})

	sawNonLoot := false
	for i, d := range got {
		if !d.IsLoot {
			sawNonLoot = true
		} else if sawNonLoot {
			t.Fatalf("loot deal %q at %d appears after a non-loot deal", d.Title, i)
		}
	}

	// Within each partition, createdAt must be non-increasing.
	for i := 1; i < len(got); i++ {
		if got[i-1].IsLoot == got[i].IsLoot && got[i-1].CreatedAt < got[i].CreatedAt {
			t.Errorf("recency violated inside partition at %d", i)
		}
	}
}

func TestApply_RelevanceStableOnEqualCreatedAt(t *testing.T) {
	deals := []models.Deal{
		{ID: "a", Title: "A", CreatedAt: 100},
		{ID: "b", Title: "B", CreatedAt: 100},
		{ID: "c", Title: "C", CreatedAt: 100, IsLoot: true},
		{ID: "d", Title: "D", CreatedAt: 100},
	}

	got := Apply(deals, Query{Sort: models.SortRelevance})
	want := []string{"c", "a", "b", "d"}
	for i, id := range want {
		if got[i].ID != id {
			t.Fatalf("order = %v, want %v", titles(got), want)
		}
	}
}

func TestApply_ExpiredDealsAreNotFiltered(t *testing.T) {
	// expiryDate is advisory only; the pipeline must serve records past it.
	deals := []models.Deal{
		{ID: "old", Title: "Expired", ExpiryDate: "2001-01-01T00:00:00Z", CreatedAt: 1},
	}
	got := Apply(deals, Query{})
	if len(got) != 1 {
		t.Error("pipeline must not filter on expiryDate")
	}
}

func TestFeatured(t *testing.T) {
	t.Run("empty collection", func(t *testing.T) {
		if _, ok := Featured(nil); ok {
			t.Error("empty collection should yield no featured deal")
		}
	})

	t.Run("first loot wins", func(t *testing.T) {
		deals := []models.Deal{
			{ID: "1"},
			{ID: "2", IsLoot: true},
			{ID: "3", IsLoot: true},
		}
		d, ok := Featured(deals)
		if !ok || d.ID != "2" {
			t.Errorf("featured = %q, want the first loot deal", d.ID)
		}
	})

	t.Run("falls back to first record", func(t *testing.T) {
		deals := []models.Deal{{ID: "1"}, {ID: "2"}}
		d, ok := Featured(deals)
		if !ok || d.ID != "1" {
			t.Errorf("featured = %q, want the first record", d.ID)
		}
	})
}

func TestCacheReplaceAndSnapshot(t *testing.T) {
	c := NewCache(seed.Deals())
	if c.Len() != 8 {
		t.Fatalf("initial cache size = %d, want 8", c.Len())
	}

	snap := c.Snapshot()
	snap[0].Title = "mutated locally"
	if c.Snapshot()[0].Title == "mutated locally" {
		t.Error("Snapshot must return a copy, not the backing slice")
	}

	c.Replace([]models.Deal{{ID: "only"}})
	if c.Len() != 1 {
		t.Errorf("cache size after replace = %d, want 1 (wholesale replacement)", c.Len())
	}
}
