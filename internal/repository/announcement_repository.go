package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/promolab/promo-board/internal/model"
	"github.com/promolab/promo-board/internal/visibility"
)

// AnnouncementRepo manages persistence for announcements. Announcements
// are multi-record: any number of them may coexist and several can be
// live at once.
type AnnouncementRepo struct {
	col *mongo.Collection
}

// NewAnnouncementRepo constructs an AnnouncementRepo over the
// "announcements" collection of the given database.
func NewAnnouncementRepo(db *mongo.Database) *AnnouncementRepo {
	return &AnnouncementRepo{col: db.Collection("announcements")}
}

// Create inserts a new announcement and assigns the generated ObjectID
// back to the struct.
func (r *AnnouncementRepo) Create(ctx context.Context, a *model.Announcement) error {
	res, err := r.col.InsertOne(ctx, a)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		a.ID = oid
	}
	return nil
}

// ListAll returns every announcement regardless of activity or dates,
// newest created first.
func (r *AnnouncementRepo) ListAll(ctx context.Context) ([]model.Announcement, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	items := []model.Announcement{}
	if err := cur.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// ListLive returns the announcements visible to the public at now,
// newest first. Both window bounds are enforced by the filter.
func (r *AnnouncementRepo) ListLive(ctx context.Context, now time.Time) ([]model.Announcement, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.col.Find(ctx, visibility.AnnouncementLiveFilter(now), opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	items := []model.Announcement{}
	if err := cur.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// GetByID retrieves an announcement by its hex id, returning
// ErrAnnouncementNotFound for malformed ids and missing documents alike.
func (r *AnnouncementRepo) GetByID(ctx context.Context, id string) (*model.Announcement, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrAnnouncementNotFound
	}
	var a model.Announcement
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&a); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrAnnouncementNotFound
		}
		return nil, err
	}
	return &a, nil
}

// AnnouncementUpdate carries the editable fields of an announcement.
// Pointer fields distinguish "leave unchanged" (nil) from "set to this
// value"; IsActive is a pointer so the active flag can be toggled off.
type AnnouncementUpdate struct {
	Title       *string
	Description *string
	StartDate   *time.Time
	EndDate     *time.Time
	IsActive    *bool
	ImageURLs   []string
}

// Update applies an allow-listed $set built from the non-nil fields of
// upd. A zero match count is surfaced as ErrAnnouncementNotFound.
func (r *AnnouncementRepo) Update(ctx context.Context, id string, upd AnnouncementUpdate) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrAnnouncementNotFound
	}

	set := bson.M{}
	if upd.Title != nil {
		set["title"] = *upd.Title
	}
	if upd.Description != nil {
		set["description"] = *upd.Description
	}
	if upd.StartDate != nil {
		set["start_date"] = *upd.StartDate
	}
	if upd.EndDate != nil {
		set["end_date"] = *upd.EndDate
	}
	if upd.IsActive != nil {
		set["is_active"] = *upd.IsActive
	}
	if upd.ImageURLs != nil {
		set["image_urls"] = upd.ImageURLs
	}
	if len(set) == 0 {
		_, err := r.GetByID(ctx, id)
		return err
	}

	res, err := r.col.UpdateByID(ctx, oid, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrAnnouncementNotFound
	}
	return nil
}

// Delete removes an announcement permanently.
func (r *AnnouncementRepo) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrAnnouncementNotFound
	}
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrAnnouncementNotFound
	}
	return nil
}
