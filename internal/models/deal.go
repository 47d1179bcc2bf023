package models

import (
	"errors"
	"math"
)

// ErrDealExists is returned when attempting to create a deal that already exists.
var ErrDealExists = errors.New("deal already exists")

// ErrDealNotFound is returned when a deal ID does not resolve to a stored document.
var ErrDealNotFound = errors.New("deal not found")

// Category is one of the fixed storefront categories. CategoryAll is a
// filter-only sentinel and never appears on a stored record.
type Category string

const (
	CategoryAll         Category = "All"
	CategoryElectronics Category = "Electronics"
	CategoryFashion     Category = "Fashion"
	CategoryHome        Category = "Home"
	CategoryGroceries   Category = "Groceries"
)

// Categories returns the closed set of listing categories, sentinel excluded.
func Categories() []Category {
	return []Category{CategoryElectronics, CategoryFashion, CategoryHome, CategoryGroceries}
}

// ParseCategory resolves a filter value. Empty input means "no constraint".
func ParseCategory(s string) (Category, bool) {
	if s == "" || Category(s) == CategoryAll {
		return CategoryAll, true
	}
	for _, c := range Categories() {
		if Category(s) == c {
			return c, true
		}
	}
	return "", false
}

// ListingCategory resolves an admin-supplied category. The sentinel is
// rejected: a stored record must carry a real category.
func ListingCategory(s string) (Category, bool) {
	for _, c := range Categories() {
		if Category(s) == c {
			return c, true
		}
	}
	return "", false
}

// Store is one of the fixed partner stores. StoreAll is the store dimension's
// own sentinel, distinct from CategoryAll.
type Store string

const (
	StoreAll             Store = "All"
	StoreAmazon          Store = "Amazon"
	StoreFlipkart        Store = "Flipkart"
	StoreMyntra          Store = "Myntra"
	StoreAjio            Store = "Ajio"
	StoreRelianceDigital Store = "Reliance Digital"
)

// Stores returns the closed set of partner stores, sentinel excluded.
func Stores() []Store {
	return []Store{StoreAmazon, StoreFlipkart, StoreMyntra, StoreAjio, StoreRelianceDigital}
}

// ParseStore resolves a filter value. Empty input means "no constraint".
func ParseStore(s string) (Store, bool) {
	if s == "" || Store(s) == StoreAll {
		return StoreAll, true
	}
	for _, st := range Stores() {
		if Store(s) == st {
			return st, true
		}
	}
	return "", false
}

// ListingStore resolves an admin-supplied store, rejecting the sentinel.
func ListingStore(s string) (Store, bool) {
	for _, st := range Stores() {
		if Store(s) == st {
			return st, true
		}
	}
	return "", false
}

// SortOption selects the ordering of a filtered deal list.
type SortOption string

const (
	SortRelevance      SortOption = "relevance"
	SortPriceLowToHigh SortOption = "priceLowToHigh"
	SortPriceHighToLow SortOption = "priceHighToLow"
	SortDiscount       SortOption = "discount"
)

// SortOptions returns every supported sort order, default first.
func SortOptions() []SortOption {
	return []SortOption{SortRelevance, SortPriceLowToHigh, SortPriceHighToLow, SortDiscount}
}

// ParseSortOption resolves a sort value, falling back to relevance for empty
// or unknown input.
func ParseSortOption(s string) SortOption {
	switch SortOption(s) {
	case SortPriceLowToHigh, SortPriceHighToLow, SortDiscount:
		return SortOption(s)
	default:
		return SortRelevance
	}
}

// Deal is a promotional listing. Records are immutable once stored: they are
// created by the admin form and removed by an explicit delete, never updated
// in place.
type Deal struct {
	ID                 string   `firestore:"-" json:"id"` // Firestore document ID, not stored in the document itself
	Title              string   `firestore:"title" json:"title" validate:"required"`
	ImageURL           string   `firestore:"imageUrl" json:"imageUrl" validate:"omitempty,url"`
	OriginalPrice      float64  `firestore:"originalPrice" json:"originalPrice" validate:"gt=0"`
	DealPrice          float64  `firestore:"dealPrice" json:"dealPrice" validate:"gt=0"`
	DiscountPercentage int      `firestore:"discountPercentage" json:"discountPercentage" validate:"gte=0,lte=100"`
	Category           Category `firestore:"category" json:"category"`
	Store              Store    `firestore:"store" json:"store"`
	AffiliateURL       string   `firestore:"affiliateUrl" json:"affiliateUrl" validate:"required,url"`
	IsLoot             bool     `firestore:"isLoot" json:"isLoot"`
	ExpiryDate         string   `firestore:"expiryDate" json:"expiryDate"`
	CreatedAt          int64    `firestore:"createdAt" json:"createdAt"` // unix milliseconds
}

// DiscountPercent computes the stored discount percentage from the two price
// amounts: round((original - deal) / original * 100).
func DiscountPercent(originalPrice, dealPrice float64) int {
	if originalPrice <= 0 {
		return 0
	}
	return int(math.Round((originalPrice - dealPrice) / originalPrice * 100))
}
