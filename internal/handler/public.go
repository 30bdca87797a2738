package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/promolab/promo-board/internal/cache"
	"github.com/promolab/promo-board/internal/model"
)

// PublicHandler serves the unauthenticated surface: the live promotion
// listing (cached), promotion submission and the live announcement
// listing (never cached).
type PublicHandler struct {
	Promotions    PromotionStore
	Announcements AnnouncementStore
	Cache         *cache.PromotionCache
	Relay         ImageUploader
}

func NewPublicHandler(p PromotionStore, a AnnouncementStore, c *cache.PromotionCache, relay ImageUploader) *PublicHandler {
	return &PublicHandler{Promotions: p, Announcements: a, Cache: c, Relay: relay}
}

// ListPromotions handles GET /v1/promotions. On a cache hit the cached
// serialized set is returned verbatim; on a miss the live set is computed
// against the store, cached with the configured TTL and returned. A dead
// cache backend degrades to direct store access.
func (h *PublicHandler) ListPromotions(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if body, ok := h.Cache.Get(ctx); ok {
		return c.JSONBlob(http.StatusOK, body)
	}

	items, err := h.Promotions.ListLive(ctx, time.Now().UTC())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	body, err := json.Marshal(items)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "encode failed"})
	}
	h.Cache.Set(ctx, body)
	return c.JSONBlob(http.StatusOK, body)
}

// SubmitPromotion handles POST /v1/promotions. The multipart form must
// carry a non-empty title and both window dates; description, color and
// image files are optional. The created promotion starts PENDING, so it
// cannot change the public listing and no cache invalidation is needed.
func (h *PublicHandler) SubmitPromotion(c echo.Context) error {
	p, errResp := bindPromotionForm(c, h.Relay)
	if errResp != nil {
		return errResp(c)
	}
	p.Status = model.PromotionPending

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()
	if err := h.Promotions.Create(ctx, p); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create promotion failed"})
	}
	return c.JSON(http.StatusCreated, p)
}

// ListAnnouncements handles GET /v1/announcements and returns every
// active, in-window announcement, newest first.
func (h *PublicHandler) ListAnnouncements(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	items, err := h.Announcements.ListLive(ctx, time.Now().UTC())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, items)
}

// errorResponder defers writing an error response so form binding can be
// shared between the public and administrative create paths.
type errorResponder func(echo.Context) error

func jsonError(status int, msg string) errorResponder {
	return func(c echo.Context) error {
		return c.JSON(status, echo.Map{"error": msg})
	}
}

// bindPromotionForm validates the multipart submission form and builds a
// Promotion with CreatedAt set and Status left for the caller. A relay
// failure aborts the write before anything is persisted.
func bindPromotionForm(c echo.Context, relay ImageUploader) (*model.Promotion, errorResponder) {
	title := strings.TrimSpace(c.FormValue("title"))
	if title == "" {
		return nil, jsonError(http.StatusBadRequest, "title is required")
	}

	startStr := strings.TrimSpace(c.FormValue("start"))
	endStr := strings.TrimSpace(c.FormValue("end"))
	if startStr == "" || endStr == "" {
		return nil, jsonError(http.StatusBadRequest, "start and end dates are required")
	}
	start, err := parseDate(startStr)
	if err != nil {
		return nil, jsonError(http.StatusBadRequest, "invalid start date, want YYYY-MM-DD")
	}
	end, err := parseDate(endStr)
	if err != nil {
		return nil, jsonError(http.StatusBadRequest, "invalid end date, want YYYY-MM-DD")
	}
	// start <= end is intentionally not enforced; an inverted window is
	// stored as-is and simply never matches the live query.

	color := strings.TrimSpace(c.FormValue("color"))
	if color == "" {
		color = model.DefaultPromotionColor
	}

	urls, err := uploadImages(c, relay)
	if err != nil {
		return nil, jsonError(http.StatusInternalServerError, "image upload failed")
	}

	return &model.Promotion{
		Title:       title,
		Description: c.FormValue("description"),
		ImageURLs:   urls,
		Start:       start,
		End:         end,
		Color:       color,
		CreatedAt:   time.Now().UTC(),
	}, nil
}
