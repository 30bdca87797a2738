// Package model defines the persistent document shapes stored in MongoDB.
// Promotions and announcements are independent collections; neither holds a
// reference to the other.
package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PromotionStatus enumerates the moderation states of a promotion.
type PromotionStatus string

const (
	// PromotionPending is the initial status of a public submission.
	PromotionPending PromotionStatus = "PENDING"
	// PromotionApproved marks a promotion eligible for the public listing.
	PromotionApproved PromotionStatus = "APPROVED"
	// PromotionRejected marks a promotion hidden from the public listing.
	PromotionRejected PromotionStatus = "REJECTED"
)

// DefaultPromotionColor is applied when a submission carries no color.
const DefaultPromotionColor = "#1F6FEB"

// Promotion is a user-submitted promotional entry. Start and End are
// calendar dates (UTC midnight) forming an inclusive display window.
// Start <= End is NOT enforced anywhere; records with inverted windows
// simply never match the live query once End has passed.
type Promotion struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Title       string             `json:"title" bson:"title"`
	Description string             `json:"description" bson:"description"`
	ImageURLs   []string           `json:"imageUrls" bson:"image_urls"`
	Start       time.Time          `json:"start" bson:"start"`
	End         time.Time          `json:"end" bson:"end"`
	Color       string             `json:"color" bson:"color"`
	Status      PromotionStatus    `json:"status" bson:"status"`
	CreatedAt   time.Time          `json:"createdAt" bson:"created_at"`
}

// ValidPromotionStatus reports whether s is one of the three enumerated
// statuses. Any valid status may replace any other; there is no
// transition guard on moderation updates.
func ValidPromotionStatus(s PromotionStatus) bool {
	switch s {
	case PromotionPending, PromotionApproved, PromotionRejected:
		return true
	}
	return false
}
