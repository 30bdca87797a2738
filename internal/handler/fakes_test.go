package handler

import (
	"context"
	"errors"
	"io"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/promolab/promo-board/internal/model"
	"github.com/promolab/promo-board/internal/repository"
	"github.com/promolab/promo-board/internal/visibility"
)

// In-memory store fakes. They mirror the repository contracts closely
// enough for handler tests: visibility filtering goes through the
// visibility package and targeted operations on unknown ids return the
// repository sentinel errors.

type fakePromotionStore struct {
	items      map[string]*model.Promotion
	createErr  error
	listErr    error
	createdIDs []string
}

func newFakePromotionStore() *fakePromotionStore {
	return &fakePromotionStore{items: map[string]*model.Promotion{}}
}

func (s *fakePromotionStore) add(p model.Promotion) string {
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	id := p.ID.Hex()
	s.items[id] = &p
	return id
}

func (s *fakePromotionStore) Create(_ context.Context, p *model.Promotion) error {
	if s.createErr != nil {
		return s.createErr
	}
	p.ID = primitive.NewObjectID()
	cp := *p
	s.items[p.ID.Hex()] = &cp
	s.createdIDs = append(s.createdIDs, p.ID.Hex())
	return nil
}

func (s *fakePromotionStore) ListAll(context.Context) ([]model.Promotion, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	out := []model.Promotion{}
	for _, p := range s.items {
		out = append(out, *p)
	}
	sortNewest(out, func(p model.Promotion) time.Time { return p.CreatedAt })
	return out, nil
}

func (s *fakePromotionStore) ListLive(_ context.Context, now time.Time) ([]model.Promotion, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	out := []model.Promotion{}
	for _, p := range s.items {
		if visibility.PromotionLive(*p, now) {
			out = append(out, *p)
		}
	}
	sortNewest(out, func(p model.Promotion) time.Time { return p.CreatedAt })
	return out, nil
}

func (s *fakePromotionStore) GetByID(_ context.Context, id string) (*model.Promotion, error) {
	p, ok := s.items[id]
	if !ok {
		return nil, repository.ErrPromotionNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *fakePromotionStore) UpdateStatus(_ context.Context, id string, status model.PromotionStatus) error {
	p, ok := s.items[id]
	if !ok {
		return repository.ErrPromotionNotFound
	}
	p.Status = status
	return nil
}

func (s *fakePromotionStore) UpdateContent(_ context.Context, id string, upd repository.PromotionContentUpdate) error {
	p, ok := s.items[id]
	if !ok {
		return repository.ErrPromotionNotFound
	}
	if upd.Title != nil {
		p.Title = *upd.Title
	}
	if upd.Description != nil {
		p.Description = *upd.Description
	}
	if upd.Start != nil {
		p.Start = *upd.Start
	}
	if upd.End != nil {
		p.End = *upd.End
	}
	if upd.Color != nil {
		p.Color = *upd.Color
	}
	if upd.ImageURLs != nil {
		p.ImageURLs = upd.ImageURLs
	}
	return nil
}

func (s *fakePromotionStore) Delete(_ context.Context, id string) error {
	if _, ok := s.items[id]; !ok {
		return repository.ErrPromotionNotFound
	}
	delete(s.items, id)
	return nil
}

type fakeAnnouncementStore struct {
	items map[string]*model.Announcement
}

func newFakeAnnouncementStore() *fakeAnnouncementStore {
	return &fakeAnnouncementStore{items: map[string]*model.Announcement{}}
}

func (s *fakeAnnouncementStore) add(a model.Announcement) string {
	if a.ID.IsZero() {
		a.ID = primitive.NewObjectID()
	}
	id := a.ID.Hex()
	s.items[id] = &a
	return id
}

func (s *fakeAnnouncementStore) Create(_ context.Context, a *model.Announcement) error {
	a.ID = primitive.NewObjectID()
	cp := *a
	s.items[a.ID.Hex()] = &cp
	return nil
}

func (s *fakeAnnouncementStore) ListAll(context.Context) ([]model.Announcement, error) {
	out := []model.Announcement{}
	for _, a := range s.items {
		out = append(out, *a)
	}
	sortNewest(out, func(a model.Announcement) time.Time { return a.CreatedAt })
	return out, nil
}

func (s *fakeAnnouncementStore) ListLive(_ context.Context, now time.Time) ([]model.Announcement, error) {
	out := []model.Announcement{}
	for _, a := range s.items {
		if visibility.AnnouncementLive(*a, now) {
			out = append(out, *a)
		}
	}
	sortNewest(out, func(a model.Announcement) time.Time { return a.CreatedAt })
	return out, nil
}

func (s *fakeAnnouncementStore) GetByID(_ context.Context, id string) (*model.Announcement, error) {
	a, ok := s.items[id]
	if !ok {
		return nil, repository.ErrAnnouncementNotFound
	}
	cp := *a
	return &cp, nil
}

func (s *fakeAnnouncementStore) Update(_ context.Context, id string, upd repository.AnnouncementUpdate) error {
	a, ok := s.items[id]
	if !ok {
		return repository.ErrAnnouncementNotFound
	}
	if upd.Title != nil {
		a.Title = *upd.Title
	}
	if upd.Description != nil {
		a.Description = *upd.Description
	}
	if upd.StartDate != nil {
		a.StartDate = *upd.StartDate
	}
	if upd.EndDate != nil {
		a.EndDate = *upd.EndDate
	}
	if upd.IsActive != nil {
		a.IsActive = *upd.IsActive
	}
	if upd.ImageURLs != nil {
		a.ImageURLs = upd.ImageURLs
	}
	return nil
}

func (s *fakeAnnouncementStore) Delete(_ context.Context, id string) error {
	if _, ok := s.items[id]; !ok {
		return repository.ErrAnnouncementNotFound
	}
	delete(s.items, id)
	return nil
}

// fakeUploader returns canned URLs or a fixed error.
type fakeUploader struct {
	urls []string
	err  error
	n    int
}

var errUploadBoom = errors.New("relay exploded")

func (u *fakeUploader) Upload(_ context.Context, _ string, blob io.Reader) (string, error) {
	_, _ = io.ReadAll(blob)
	if u.err != nil {
		return "", u.err
	}
	if u.n < len(u.urls) {
		url := u.urls[u.n]
		u.n++
		return url, nil
	}
	return "https://img.example/default.png", nil
}

func sortNewest[T any](items []T, created func(T) time.Time) {
	sort.SliceStable(items, func(i, j int) bool {
		return created(items[i]).After(created(items[j]))
	})
}
