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

// PromotionRepo manages persistence for promotions.
type PromotionRepo struct {
	col *mongo.Collection
}

// NewPromotionRepo constructs a PromotionRepo over the "promotions"
// collection of the given database.
func NewPromotionRepo(db *mongo.Database) *PromotionRepo {
	return &PromotionRepo{col: db.Collection("promotions")}
}

// Create inserts a new promotion and assigns the generated ObjectID back
// to the struct. CreatedAt must already be set by the caller; it is never
// mutated afterwards.
func (r *PromotionRepo) Create(ctx context.Context, p *model.Promotion) error {
	res, err := r.col.InsertOne(ctx, p)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		p.ID = oid
	}
	return nil
}

// ListAll returns every promotion regardless of status or dates, newest
// created first. This is the administrative inbox view.
func (r *PromotionRepo) ListAll(ctx context.Context) ([]model.Promotion, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	items := []model.Promotion{}
	if err := cur.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// ListLive returns the publicly visible promotions at now, newest first.
// The filter comes from the visibility package so the query and the
// in-memory predicate can never drift apart.
func (r *PromotionRepo) ListLive(ctx context.Context, now time.Time) ([]model.Promotion, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.col.Find(ctx, visibility.PromotionLiveFilter(now), opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	items := []model.Promotion{}
	if err := cur.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// GetByID retrieves a promotion by its hex id. It returns
// ErrPromotionNotFound for malformed ids and missing documents alike.
func (r *PromotionRepo) GetByID(ctx context.Context, id string) (*model.Promotion, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrPromotionNotFound
	}
	var p model.Promotion
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&p); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrPromotionNotFound
		}
		return nil, err
	}
	return &p, nil
}

// UpdateStatus sets the moderation status of a promotion. Any enumerated
// value may replace any other; validation happens at the handler. A zero
// match count is surfaced as ErrPromotionNotFound instead of the store's
// default success-with-no-effect.
func (r *PromotionRepo) UpdateStatus(ctx context.Context, id string, status model.PromotionStatus) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrPromotionNotFound
	}
	res, err := r.col.UpdateByID(ctx, oid, bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrPromotionNotFound
	}
	return nil
}

// PromotionContentUpdate carries the editable content fields of a
// promotion. Pointer fields distinguish "leave unchanged" (nil) from
// "set to this value". Status and CreatedAt are not editable through
// this path.
type PromotionContentUpdate struct {
	Title       *string
	Description *string
	Start       *time.Time
	End         *time.Time
	Color       *string
	ImageURLs   []string
}

// UpdateContent applies an allow-listed $set built from the non-nil
// fields of upd. Calling it with an empty update is a no-op that still
// verifies the record exists.
func (r *PromotionRepo) UpdateContent(ctx context.Context, id string, upd PromotionContentUpdate) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrPromotionNotFound
	}

	set := bson.M{}
	if upd.Title != nil {
		set["title"] = *upd.Title
	}
	if upd.Description != nil {
		set["description"] = *upd.Description
	}
	if upd.Start != nil {
		set["start"] = *upd.Start
	}
	if upd.End != nil {
		set["end"] = *upd.End
	}
	if upd.Color != nil {
		set["color"] = *upd.Color
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
		return ErrPromotionNotFound
	}
	return nil
}

// Delete removes a promotion permanently. Expired records are never
// deleted implicitly; this is the only way a promotion leaves the store.
func (r *PromotionRepo) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrPromotionNotFound
	}
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrPromotionNotFound
	}
	return nil
}
