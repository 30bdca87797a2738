package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/promolab/promo-board/internal/cache"
	"github.com/promolab/promo-board/internal/model"
	"github.com/promolab/promo-board/internal/queue"
	"github.com/promolab/promo-board/internal/repository"
	"github.com/promolab/promo-board/internal/service"
)

// AdminHandler bundles dependencies for the moderation endpoints. Every
// write that can change the publicly visible promotion set invalidates
// the listing cache synchronously before the response is sent.
type AdminHandler struct {
	Promotions    PromotionStore
	Announcements AnnouncementStore
	Cache         *cache.PromotionCache
	Relay         ImageUploader
	Events        *service.EventPublisher
}

func NewAdminHandler(p PromotionStore, a AnnouncementStore, c *cache.PromotionCache, relay ImageUploader, ev *service.EventPublisher) *AdminHandler {
	return &AdminHandler{Promotions: p, Announcements: a, Cache: c, Relay: relay, Events: ev}
}

// ListPromotions handles GET /v1/admin/promotions. It is the moderation
// inbox: every record regardless of status or dates, newest first.
func (h *AdminHandler) ListPromotions(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	items, err := h.Promotions.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, map[string]any{"items": items})
}

// CreatePromotion handles POST /v1/admin/promotions. Administrative
// creations skip moderation: the record is APPROVED immediately, so the
// cache entry is dropped right away.
func (h *AdminHandler) CreatePromotion(c echo.Context) error {
	p, errResp := bindPromotionForm(c, h.Relay)
	if errResp != nil {
		return errResp(c)
	}
	p.Status = model.PromotionApproved

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()
	if err := h.Promotions.Create(ctx, p); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create promotion failed"})
	}
	h.Cache.Invalidate(ctx)
	h.Events.Publish(ctx, queue.PromotionEvent{
		Type:        queue.EventPromotionCreated,
		PromotionID: p.ID.Hex(),
		Title:       p.Title,
		Status:      string(p.Status),
		OccurredAt:  time.Now().UTC().Format(time.RFC3339),
	})
	return c.JSON(http.StatusCreated, p)
}

type statusReq struct {
	Status string `json:"status"`
}

// UpdatePromotionStatus handles PUT /v1/admin/promotions/:id. Only the
// status field is touched. Any of the three enumerated values is accepted
// from any current status; there is no transition guard.
func (h *AdminHandler) UpdatePromotionStatus(c echo.Context) error {
	var req statusReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	status := model.PromotionStatus(strings.ToUpper(strings.TrimSpace(req.Status)))
	if !model.ValidPromotionStatus(status) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "status must be PENDING, APPROVED or REJECTED"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	id := c.Param("id")
	if err := h.Promotions.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, repository.ErrPromotionNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "promotion not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	h.Cache.Invalidate(ctx)

	updated, err := h.Promotions.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	h.Events.Publish(ctx, queue.PromotionEvent{
		Type:        queue.EventPromotionStatusChanged,
		PromotionID: id,
		Title:       updated.Title,
		Status:      string(updated.Status),
		OccurredAt:  time.Now().UTC().Format(time.RFC3339),
	})
	return c.JSON(http.StatusOK, updated)
}

// EditPromotion handles PUT /v1/admin/promotions/:id/edit. Content fields
// are updated from an allow-listed multipart form; fields absent from the
// form are left untouched. Status is not editable through this path.
func (h *AdminHandler) EditPromotion(c echo.Context) error {
	vals, err := c.FormParams()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid form"})
	}

	var upd repository.PromotionContentUpdate
	if v, ok := formValue(vals, "title"); ok {
		title := strings.TrimSpace(v)
		if title == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "title cannot be empty"})
		}
		upd.Title = &title
	}
	if v, ok := formValue(vals, "description"); ok {
		upd.Description = &v
	}
	if v, ok := formValue(vals, "start"); ok {
		start, err := parseDate(strings.TrimSpace(v))
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid start date, want YYYY-MM-DD"})
		}
		upd.Start = &start
	}
	if v, ok := formValue(vals, "end"); ok {
		end, err := parseDate(strings.TrimSpace(v))
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid end date, want YYYY-MM-DD"})
		}
		upd.End = &end
	}
	if v, ok := formValue(vals, "color"); ok {
		color := strings.TrimSpace(v)
		if color == "" {
			color = model.DefaultPromotionColor
		}
		upd.Color = &color
	}

	urls, err := uploadImages(c, h.Relay)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "image upload failed"})
	}
	if len(urls) > 0 {
		upd.ImageURLs = urls
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	id := c.Param("id")
	if err := h.Promotions.UpdateContent(ctx, id, upd); err != nil {
		if errors.Is(err, repository.ErrPromotionNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "promotion not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	h.Cache.Invalidate(ctx)

	updated, err := h.Promotions.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, updated)
}

// DeletePromotion handles DELETE /v1/admin/promotions/:id. Deletion is
// the only way a record leaves the store; expiry never deletes.
func (h *AdminHandler) DeletePromotion(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	id := c.Param("id")
	if err := h.Promotions.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrPromotionNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "promotion not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	h.Cache.Invalidate(ctx)
	h.Events.Publish(ctx, queue.PromotionEvent{
		Type:        queue.EventPromotionDeleted,
		PromotionID: id,
		OccurredAt:  time.Now().UTC().Format(time.RFC3339),
	})
	return c.NoContent(http.StatusNoContent)
}

// formValue reports whether key was present in the submitted form and
// returns its first value. Presence is what distinguishes "clear this
// field" from "leave it alone" on edit endpoints.
func formValue(vals map[string][]string, key string) (string, bool) {
	v, ok := vals[key]
	if !ok || len(v) == 0 {
		return "", false
	}
	return v[0], true
}
