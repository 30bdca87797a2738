// Package handler contains the HTTP handlers for the public and
// administrative surfaces. Handlers receive their collaborators
// explicitly (store interfaces, cache, image relay, event publisher);
// nothing is reached through ambient globals.
package handler

import (
	"context"
	"io"
	"mime/multipart"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/promolab/promo-board/internal/model"
	"github.com/promolab/promo-board/internal/repository"
)

// dbTimeout bounds every store round trip made from a handler.
const dbTimeout = 5 * time.Second

// dateLayout is the wire format for calendar dates in form fields.
const dateLayout = "2006-01-02"

// PromotionStore is the persistence surface the promotion handlers
// consume. *repository.PromotionRepo implements it.
type PromotionStore interface {
	Create(ctx context.Context, p *model.Promotion) error
	ListAll(ctx context.Context) ([]model.Promotion, error)
	ListLive(ctx context.Context, now time.Time) ([]model.Promotion, error)
	GetByID(ctx context.Context, id string) (*model.Promotion, error)
	UpdateStatus(ctx context.Context, id string, status model.PromotionStatus) error
	UpdateContent(ctx context.Context, id string, upd repository.PromotionContentUpdate) error
	Delete(ctx context.Context, id string) error
}

// AnnouncementStore is the persistence surface the announcement handlers
// consume. *repository.AnnouncementRepo implements it.
type AnnouncementStore interface {
	Create(ctx context.Context, a *model.Announcement) error
	ListAll(ctx context.Context) ([]model.Announcement, error)
	ListLive(ctx context.Context, now time.Time) ([]model.Announcement, error)
	GetByID(ctx context.Context, id string) (*model.Announcement, error)
	Update(ctx context.Context, id string, upd repository.AnnouncementUpdate) error
	Delete(ctx context.Context, id string) error
}

// ImageUploader relays an image blob to the external host and returns a
// public URL. *service.ImageRelay implements it.
type ImageUploader interface {
	Upload(ctx context.Context, filename string, blob io.Reader) (string, error)
}

// parseDate parses a calendar date form value into UTC midnight.
func parseDate(s string) (time.Time, error) {
	return time.ParseInLocation(dateLayout, s, time.UTC)
}

// uploadImages relays every file submitted under the "image" form field
// and returns the resulting public URLs in submission order. It returns
// (nil, nil) when the request carries no image, and the first upload
// error otherwise: a failed relay aborts the whole write.
func uploadImages(c echo.Context, up ImageUploader) ([]string, error) {
	form, err := c.MultipartForm()
	if err != nil {
		// No multipart body or no files; the image is optional.
		return nil, nil
	}
	files := form.File["image"]
	if len(files) == 0 {
		return nil, nil
	}

	urls := make([]string, 0, len(files))
	for _, fh := range files {
		url, err := relayOne(c, up, fh)
		if err != nil {
			return nil, err
		}
		urls = append(urls, url)
	}
	return urls, nil
}

func relayOne(c echo.Context, up ImageUploader, fh *multipart.FileHeader) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()
	return up.Upload(c.Request().Context(), fh.Filename, src)
}
