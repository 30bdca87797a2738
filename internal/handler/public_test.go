package handler

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/promolab/promo-board/internal/cache"
	"github.com/promolab/promo-board/internal/model"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// nopCache is a cache with no backend: every Get misses, which is exactly
// the degradation path the public listing must survive.
func nopCache() *cache.PromotionCache {
	return cache.NewPromotionCache(nil, "test", 0, nil)
}

func newPublic(p *fakePromotionStore, a *fakeAnnouncementStore, up ImageUploader) *PublicHandler {
	if up == nil {
		up = &fakeUploader{}
	}
	return NewPublicHandler(p, a, nopCache(), up)
}

func multipartBody(t *testing.T, fields map[string]string, fileField string) (*bytes.Buffer, string) {
	t.Helper()
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if fileField != "" {
		fw, err := w.CreateFormFile(fileField, "banner.png")
		require.NoError(t, err)
		_, err = fw.Write([]byte("not-really-a-png"))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return buf, w.FormDataContentType()
}

func doRequest(h echo.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if err := h(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec
}

func TestListPromotionsReturnsOnlyLive(t *testing.T) {
	store := newFakePromotionStore()
	future := date(time.Now().UTC().Year()+1, 1, 10)
	store.add(model.Promotion{Title: "live", Status: model.PromotionApproved, End: future})
	store.add(model.Promotion{Title: "expired", Status: model.PromotionApproved, End: date(2020, 1, 1)})
	store.add(model.Promotion{Title: "pending", Status: model.PromotionPending, End: future})
	store.add(model.Promotion{Title: "rejected", Status: model.PromotionRejected, End: future})

	h := newPublic(store, newFakeAnnouncementStore(), nil)
	rec := doRequest(h.ListPromotions, httptest.NewRequest(http.MethodGet, "/v1/promotions", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var items []model.Promotion
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	require.Len(t, items, 1)
	assert.Equal(t, "live", items[0].Title)
}

func TestListPromotionsIgnoresStartDate(t *testing.T) {
	store := newFakePromotionStore()
	y := time.Now().UTC().Year() + 1
	// Window has not opened yet; the record must still be listed.
	store.add(model.Promotion{Title: "early", Status: model.PromotionApproved, Start: date(y, 6, 1), End: date(y, 6, 30)})

	h := newPublic(store, newFakeAnnouncementStore(), nil)
	rec := doRequest(h.ListPromotions, httptest.NewRequest(http.MethodGet, "/v1/promotions", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var items []model.Promotion
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	require.Len(t, items, 1)
}

func TestSubmitPromotionRequiresTitle(t *testing.T) {
	store := newFakePromotionStore()
	h := newPublic(store, newFakeAnnouncementStore(), nil)

	body, ctype := multipartBody(t, map[string]string{
		"start": "2024-01-01",
		"end":   "2024-01-10",
	}, "")
	req := httptest.NewRequest(http.MethodPost, "/v1/promotions", body)
	req.Header.Set(echo.HeaderContentType, ctype)
	rec := doRequest(h.SubmitPromotion, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, store.items, "no record may be created on validation failure")
}

func TestSubmitPromotionRejectsBadDates(t *testing.T) {
	h := newPublic(newFakePromotionStore(), newFakeAnnouncementStore(), nil)

	body, ctype := multipartBody(t, map[string]string{
		"title": "Sale",
		"start": "01/01/2024",
		"end":   "2024-01-10",
	}, "")
	req := httptest.NewRequest(http.MethodPost, "/v1/promotions", body)
	req.Header.Set(echo.HeaderContentType, ctype)
	rec := doRequest(h.SubmitPromotion, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSubmitPromotionCreatesPendingWithDefaults(t *testing.T) {
	store := newFakePromotionStore()
	h := newPublic(store, newFakeAnnouncementStore(), nil)

	body, ctype := multipartBody(t, map[string]string{
		"title":       "Sale",
		"description": "big one",
		"start":       "2024-01-01",
		"end":         "2024-01-10",
	}, "")
	req := httptest.NewRequest(http.MethodPost, "/v1/promotions", body)
	req.Header.Set(echo.HeaderContentType, ctype)
	rec := doRequest(h.SubmitPromotion, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	var got model.Promotion
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, model.PromotionPending, got.Status)
	assert.Equal(t, model.DefaultPromotionColor, got.Color)
	assert.True(t, got.Start.Equal(date(2024, 1, 1)))
	assert.True(t, got.End.Equal(date(2024, 1, 10)))
	assert.False(t, got.CreatedAt.IsZero())
	require.Len(t, store.items, 1)
}

func TestSubmitPromotionWithImage(t *testing.T) {
	store := newFakePromotionStore()
	up := &fakeUploader{urls: []string{"https://img.example/banner.png"}}
	h := newPublic(store, newFakeAnnouncementStore(), up)

	body, ctype := multipartBody(t, map[string]string{
		"title": "Sale",
		"start": "2024-01-01",
		"end":   "2024-01-10",
	}, "image")
	req := httptest.NewRequest(http.MethodPost, "/v1/promotions", body)
	req.Header.Set(echo.HeaderContentType, ctype)
	rec := doRequest(h.SubmitPromotion, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	var got model.Promotion
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, []string{"https://img.example/banner.png"}, got.ImageURLs)
}

func TestSubmitPromotionUploadFailureAbortsWrite(t *testing.T) {
	store := newFakePromotionStore()
	h := newPublic(store, newFakeAnnouncementStore(), &fakeUploader{err: errUploadBoom})

	body, ctype := multipartBody(t, map[string]string{
		"title": "Sale",
		"start": "2024-01-01",
		"end":   "2024-01-10",
	}, "image")
	req := httptest.NewRequest(http.MethodPost, "/v1/promotions", body)
	req.Header.Set(echo.HeaderContentType, ctype)
	rec := doRequest(h.SubmitPromotion, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Empty(t, store.items, "a relay failure must abort the write entirely")
}

func TestListAnnouncementsEnforcesBothBounds(t *testing.T) {
	store := newFakeAnnouncementStore()
	now := time.Now().UTC()
	y := now.Year()
	store.add(model.Announcement{Title: "live", IsActive: true, StartDate: date(y-1, 1, 1), EndDate: date(y+1, 1, 1)})
	store.add(model.Announcement{Title: "not started", IsActive: true, StartDate: date(y+1, 1, 1), EndDate: date(y+2, 1, 1)})
	store.add(model.Announcement{Title: "ended", IsActive: true, StartDate: date(y-2, 1, 1), EndDate: date(y-1, 1, 1)})
	store.add(model.Announcement{Title: "inactive", IsActive: false, StartDate: date(y-1, 1, 1), EndDate: date(y+1, 1, 1)})

	h := newPublic(newFakePromotionStore(), store, nil)
	rec := doRequest(h.ListAnnouncements, httptest.NewRequest(http.MethodGet, "/v1/announcements", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var items []model.Announcement
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	require.Len(t, items, 1)
	assert.Equal(t, "live", items[0].Title)
}
