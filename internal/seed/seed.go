// Package seed holds the embedded fallback collection served before the
// listing store delivers its first snapshot, or when the store is not
// configured at all.
package seed

import (
	"fmt"
	"time"

	"github.com/nijamuddin66526-boop/offerzon/internal/models"
)

type record struct {
	title         string
	imageSeed     string
	originalPrice float64
	dealPrice     float64
	category      models.Category
	store         models.Store
	affiliateURL  string
	isLoot        bool
	expiresIn     time.Duration
}

var records = []record{
	{"Apple iPhone 15 (128GB) - Blue", "iphone15", 79900, 65999, models.CategoryElectronics, models.StoreAmazon, "https://amazon.in", true, 24 * time.Hour},
	{"Samsung Galaxy Watch 6 Bluetooth 44mm", "watch6", 33999, 19999, models.CategoryElectronics, models.StoreFlipkart, "https://flipkart.com", false, 48 * time.Hour},
	{"Nike Air Max 270 React - Sneakers", "nikeair", 12995, 6495, models.CategoryFashion, models.StoreMyntra, "https://myntra.com", true, time.Hour},
	{"Sony WH-1000XM5 Noise Cancelling Headphones", "sonyh", 34990, 26990, models.CategoryElectronics, models.StoreAmazon, "https://amazon.in", false, 72 * time.Hour},
	{"Cotton Printed King Size Bedspread", "bed", 2499, 799, models.CategoryHome, models.StoreAjio, "https://ajio.com", true, 12 * time.Hour},
	{"Levi's Men's Regular Fit Jeans", "jeans", 3999, 1599, models.CategoryFashion, models.StoreAmazon, "https://amazon.in", false, 15 * time.Minute},
	{"Organic Almonds (Value Pack) - 1kg", "almonds", 1200, 850, models.CategoryGroceries, models.StoreAmazon, "https://amazon.in", false, 7 * 24 * time.Hour},
	{"Prestige Electric Kettle 1.5L - Steel", "kettle", 2195, 1099, models.CategoryHome, models.StoreRelianceDigital, "https://reliancedigital.in", false, 96 * time.Hour},
}

// Deals materializes the seed collection. CreatedAt values are staggered so
// that seed order and recency order agree, keeping relevance sorting
// deterministic.
func Deals() []models.Deal {
	now := time.Now()

	deals := make([]models.Deal, 0, len(records))
	for i, r := range records {
		createdAt := now.Add(-time.Duration(i) * time.Minute)
		deals = append(deals, models.Deal{
			ID:                 fmt.Sprintf("seed-%d", i+1),
			Title:              r.title,
			ImageURL:           fmt.Sprintf("https://picsum.photos/seed/%s/400/400", r.imageSeed),
			OriginalPrice:      r.originalPrice,
			DealPrice:          r.dealPrice,
			DiscountPercentage: models.DiscountPercent(r.originalPrice, r.dealPrice),
			Category:           r.category,
			Store:              r.store,
			AffiliateURL:       r.affiliateURL,
			IsLoot:             r.isLoot,
			ExpiryDate:         now.Add(r.expiresIn).UTC().Format(time.RFC3339),
			CreatedAt:          createdAt.UnixMilli(),
		})
	}
	return deals
}
