package admin

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/nijamuddin66526-boop/offerzon/internal/models"
)

// ErrPriceOrder is the user-visible rejection for a deal price that is not
// strictly below the original price. Nothing is written when it fires.
var ErrPriceOrder = errors.New("deal price must be less than original price")

// ErrStoreUnavailable is returned when the listing store is not configured,
// which disables all admin writes.
var ErrStoreUnavailable = errors.New("listing store is not configured")

// ErrValidation wraps every form rejection so callers can map them uniformly.
var ErrValidation = errors.New("invalid deal input")

// dealTTL is the fixed offset applied to a new listing's expiry date.
const dealTTL = 24 * time.Hour

// DealStore abstracts the listing store's write path.
type DealStore interface {
	CreateDeal(ctx context.Context, deal models.Deal) (string, error)
	DeleteDeal(ctx context.Context, id string) error
}

// ImageFinder resolves a product image for an affiliate URL.
type ImageFinder interface {
	FindImage(ctx context.Context, pageURL string) (string, error)
}

// CreateDealInput is the admin form payload.
type CreateDealInput struct {
	Title         string  `json:"title" validate:"required"`
	OriginalPrice float64 `json:"originalPrice" validate:"required,gt=0"`
	DealPrice     float64 `json:"dealPrice" validate:"required,gt=0"`
	ImageURL      string  `json:"imageUrl" validate:"omitempty,url"`
	AffiliateURL  string  `json:"affiliateUrl" validate:"required,url"`
	Category      string  `json:"category" validate:"required"`
	Store         string  `json:"store" validate:"required"`
	IsLoot        bool    `json:"isLoot"`
}

// Service publishes and removes listings on behalf of an authenticated
// operator. Writes are single-shot: a store failure surfaces immediately with
// no retry.
type Service struct {
	store    DealStore
	images   ImageFinder
	validate *validator.Validate
	now      func() time.Time
}

func NewService(store DealStore, images ImageFinder) *Service {
	return &Service{
		store:    store,
		images:   images,
		validate: validator.New(),
		now:      time.Now,
	}
}

// PublishDeal validates the form, derives the stored fields and writes one
// document. The price-order invariant is enforced here, at creation time
// only.
func (s *Service) PublishDeal(ctx context.Context, in CreateDealInput) (models.Deal, error) {
	if s.store == nil {
		return models.Deal{}, ErrStoreUnavailable
	}

	if err := s.validate.Struct(in); err != nil {
		return models.Deal{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	category, ok := models.ListingCategory(in.Category)
	if !ok {
		return models.Deal{}, fmt.Errorf("%w: unknown category %q", ErrValidation, in.Category)
	}
	store, ok := models.ListingStore(in.Store)
	if !ok {
		return models.Deal{}, fmt.Errorf("%w: unknown store %q", ErrValidation, in.Store)
	}

	if in.DealPrice >= in.OriginalPrice {
		return models.Deal{}, ErrPriceOrder
	}

	now := s.now()
	deal := models.Deal{
		Title:              strings.TrimSpace(in.Title),
		ImageURL:           in.ImageURL,
		OriginalPrice:      in.OriginalPrice,
		DealPrice:          in.DealPrice,
		DiscountPercentage: models.DiscountPercent(in.OriginalPrice, in.DealPrice),
		Category:           category,
		Store:              store,
		AffiliateURL:       in.AffiliateURL,
		IsLoot:             in.IsLoot,
		ExpiryDate:         now.Add(dealTTL).UTC().Format(time.RFC3339),
		CreatedAt:          now.UnixMilli(),
	}

	if deal.ImageURL == "" && s.images != nil {
		img, err := s.images.FindImage(ctx, deal.AffiliateURL)
		if err != nil {
			slog.Warn("Image lookup failed, publishing without image", "url", deal.AffiliateURL, "error", err)
		} else {
			deal.ImageURL = img
		}
	}

	id, err := s.store.CreateDeal(ctx, deal)
	if err != nil {
		return models.Deal{}, fmt.Errorf("failed to publish deal: %w", err)
	}
	deal.ID = id

	slog.Info("Published deal", "id", deal.ID, "title", deal.Title, "discount", deal.DiscountPercentage)
	return deal, nil
}

// RemoveDeal deletes a listing by ID.
func (s *Service) RemoveDeal(ctx context.Context, id string) error {
	if s.store == nil {
		return ErrStoreUnavailable
	}
	if strings.TrimSpace(id) == "" {
		return models.ErrDealNotFound
	}
	if err := s.store.DeleteDeal(ctx, id); err != nil {
		return err
	}
	slog.Info("Removed deal", "id", id)
	return nil
}

// SearchInventory filters the admin inventory view: case-insensitive
// substring match against title and store only.
func SearchInventory(deals []models.Deal, query string) []models.Deal {
	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		out := make([]models.Deal, len(deals))
		copy(out, deals)
		return out
	}

	out := make([]models.Deal, 0, len(deals))
	for _, d := range deals {
		if strings.Contains(strings.ToLower(d.Title), needle) ||
			strings.Contains(strings.ToLower(string(d.Store)), needle) {
			out = append(out, d)
		}
	}
	return out
}
