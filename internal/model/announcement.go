package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Announcement is a time-bounded site-wide notice. Multiple announcements
// may coexist; the public listing returns every active record whose window
// covers the current instant, newest first. Unlike promotions, both window
// bounds are enforced on the public read.
type Announcement struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Title       string             `json:"title" bson:"title"`
	Description string             `json:"description" bson:"description"`
	ImageURLs   []string           `json:"imageUrls" bson:"image_urls"`
	StartDate   time.Time          `json:"startDate" bson:"start_date"`
	EndDate     time.Time          `json:"endDate" bson:"end_date"`
	IsActive    bool               `json:"isActive" bson:"is_active"`
	CreatedAt   time.Time          `json:"createdAt" bson:"created_at"`
}
