package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/promolab/promo-board/internal/model"
	"github.com/promolab/promo-board/internal/repository"
)

// Announcement moderation endpoints. Announcements are multi-record:
// several can be live at once and the public listing is never cached, so
// none of these writes touch the promotion cache.

// ListAnnouncements handles GET /v1/admin/announcements and returns every
// announcement regardless of activity or window, newest first.
func (h *AdminHandler) ListAnnouncements(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	items, err := h.Announcements.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, map[string]any{"items": items})
}

// CreateAnnouncement handles POST /v1/admin/announcements. Title and both
// window dates are required; the active flag defaults to true.
func (h *AdminHandler) CreateAnnouncement(c echo.Context) error {
	title := strings.TrimSpace(c.FormValue("title"))
	if title == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title is required"})
	}
	startStr := strings.TrimSpace(c.FormValue("startDate"))
	endStr := strings.TrimSpace(c.FormValue("endDate"))
	if startStr == "" || endStr == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "startDate and endDate are required"})
	}
	start, err := parseDate(startStr)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid startDate, want YYYY-MM-DD"})
	}
	end, err := parseDate(endStr)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid endDate, want YYYY-MM-DD"})
	}

	active := true
	if v := strings.TrimSpace(c.FormValue("isActive")); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid isActive"})
		}
		active = b
	}

	urls, err := uploadImages(c, h.Relay)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "image upload failed"})
	}

	a := &model.Announcement{
		Title:       title,
		Description: c.FormValue("description"),
		ImageURLs:   urls,
		StartDate:   start,
		EndDate:     end,
		IsActive:    active,
		CreatedAt:   time.Now().UTC(),
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()
	if err := h.Announcements.Create(ctx, a); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create announcement failed"})
	}
	return c.JSON(http.StatusCreated, a)
}

// UpdateAnnouncement handles PUT /v1/admin/announcements/:id. Fields
// absent from the form are left untouched; isActive can be toggled both
// ways.
func (h *AdminHandler) UpdateAnnouncement(c echo.Context) error {
	vals, err := c.FormParams()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid form"})
	}

	var upd repository.AnnouncementUpdate
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
	if v, ok := formValue(vals, "startDate"); ok {
		start, err := parseDate(strings.TrimSpace(v))
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid startDate, want YYYY-MM-DD"})
		}
		upd.StartDate = &start
	}
	if v, ok := formValue(vals, "endDate"); ok {
		end, err := parseDate(strings.TrimSpace(v))
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid endDate, want YYYY-MM-DD"})
		}
		upd.EndDate = &end
	}
	if v, ok := formValue(vals, "isActive"); ok {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid isActive"})
		}
		upd.IsActive = &b
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
	if err := h.Announcements.Update(ctx, id, upd); err != nil {
		if errors.Is(err, repository.ErrAnnouncementNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "announcement not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}

	updated, err := h.Announcements.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, updated)
}

// DeleteAnnouncement handles DELETE /v1/admin/announcements/:id.
func (h *AdminHandler) DeleteAnnouncement(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if err := h.Announcements.Delete(ctx, c.Param("id")); err != nil {
		if errors.Is(err, repository.ErrAnnouncementNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "announcement not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
