package server

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/nijamuddin66526-boop/offerzon/internal/admin"
	"github.com/nijamuddin66526-boop/offerzon/internal/assistant"
	"github.com/nijamuddin66526-boop/offerzon/internal/auth"
	"github.com/nijamuddin66526-boop/offerzon/internal/catalog"
	"github.com/nijamuddin66526-boop/offerzon/internal/models"
	"github.com/nijamuddin66526-boop/offerzon/internal/ws"
)

// Handler serves every storefront and admin route over the in-memory
// collection. Reads never touch the listing store directly; the watcher keeps
// the cache current.
type Handler struct {
	cache     *catalog.Cache
	deals     *admin.Service
	assistant *assistant.Client
	identity  *auth.Client
	hub       *ws.Hub
	limiter   *rate.Limiter
	liveSync  bool
}

// NewHandler builds the HTTP handler set. identity may be nil when admin
// sign-in is not configured; assistant may be nil for fallback-only replies.
func NewHandler(cache *catalog.Cache, deals *admin.Service, assistantClient *assistant.Client, identity *auth.Client, hub *ws.Hub, assistantLimit rate.Limit, liveSync bool) *Handler {
	return &Handler{
		cache:     cache,
		deals:     deals,
		assistant: assistantClient,
		identity:  identity,
		hub:       hub,
		limiter:   rate.NewLimiter(assistantLimit, 1),
		liveSync:  liveSync,
	}
}

// ListDeals returns the filtered, sorted display list. Unknown category or
// store values are rejected rather than silently matching nothing.
func (h *Handler) ListDeals(c *gin.Context) {
	category, ok := models.ParseCategory(c.Query("category"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown category: " + c.Query("category")})
		return
	}
	store, ok := models.ParseStore(c.Query("store"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown store: " + c.Query("store")})
		return
	}

	deals := catalog.Apply(h.cache.Snapshot(), catalog.Query{
		Category: category,
		Store:    store,
		Search:   c.Query("q"),
		Sort:     models.ParseSortOption(c.Query("sort")),
	})

	c.JSON(http.StatusOK, gin.H{"deals": deals, "count": len(deals)})
}

// FeaturedDeal returns the hero-banner pick for the current collection.
func (h *Handler) FeaturedDeal(c *gin.Context) {
	deal, ok := catalog.Featured(h.cache.Snapshot())
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no deals available"})
		return
	}
	c.JSON(http.StatusOK, deal)
}

// Meta enumerates the closed filter sets the storefront renders.
func (h *Handler) Meta(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"categories":  models.Categories(),
		"stores":      models.Stores(),
		"sortOptions": models.SortOptions(),
	})
}

type assistantRequest struct {
	Query string `json:"query" binding:"required"`
}

// Assistant answers a shopping question over the current collection. Model
// failures degrade to the local fallback reply instead of erroring.
func (h *Handler) Assistant(c *gin.Context) {
	var req assistantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query is required"})
		return
	}

	if !h.limiter.Allow() {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "assistant is busy, try again shortly"})
		return
	}

	deals := h.cache.Snapshot()
	insight, err := h.assistant.DealInsight(c.Request.Context(), req.Query, deals)
	if err != nil {
		slog.Warn("Assistant call failed, using fallback", "error", err)
		insight = assistant.Fallback(deals)
	}

	c.JSON(http.StatusOK, insight)
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login exchanges admin credentials for a session token.
func (h *Handler) Login(c *gin.Context) {
	if h.identity == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "admin sign-in is not configured"})
		return
	}

	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
		return
	}

	session, err := h.identity.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
			return
		}
		slog.Error("Sign-in failed", "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "sign-in is temporarily unavailable"})
		return
	}

	c.JSON(http.StatusOK, session)
}

// AdminInventory returns the full collection filtered by the inventory search
// box. Unlike the storefront list it ignores category and sort.
func (h *Handler) AdminInventory(c *gin.Context) {
	deals := admin.SearchInventory(h.cache.Snapshot(), c.Query("q"))
	c.JSON(http.StatusOK, gin.H{"deals": deals, "count": len(deals)})
}

// CreateDeal publishes a new listing from the admin form.
func (h *Handler) CreateDeal(c *gin.Context) {
	var in admin.CreateDealInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	deal, err := h.deals.PublishDeal(c.Request.Context(), in)
	if err != nil {
		switch {
		case errors.Is(err, admin.ErrStoreUnavailable):
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		case errors.Is(err, admin.ErrPriceOrder), errors.Is(err, admin.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			slog.Error("Failed to publish deal", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to publish deal"})
		}
		return
	}

	c.JSON(http.StatusCreated, deal)
}

// DeleteDeal removes a listing by ID.
func (h *Handler) DeleteDeal(c *gin.Context) {
	err := h.deals.RemoveDeal(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, admin.ErrStoreUnavailable):
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		case errors.Is(err, models.ErrDealNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "deal not found"})
		default:
			slog.Error("Failed to delete deal", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete deal"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// Status reports which optional capabilities are live so the storefront can
// surface a degraded-mode banner.
func (h *Handler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"liveSync":  h.liveSync,
		"assistant": h.assistant.Enabled(),
		"auth":      h.identity != nil,
		"deals":     h.cache.Len(),
	})
}

// Subscribe upgrades to a websocket and streams collection snapshots.
func (h *Handler) Subscribe(c *gin.Context) {
	h.hub.ServeHTTP(c.Writer, c.Request, h.cache.Snapshot())
}
