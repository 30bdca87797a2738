// Package visibility decides which promotions and announcements are live
// for public consumption at a given instant, and provides the equivalent
// MongoDB filters used by the repositories. The predicates here are the
// single source of truth for "shown to the public"; handlers and
// repositories never restate the rules themselves.
package visibility

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/promolab/promo-board/internal/model"
)

// Midnight truncates now to 00:00:00 UTC of the same calendar day. Date
// windows are inclusive, so a record whose end date equals today's date
// stays live until the day rolls over.
func Midnight(now time.Time) time.Time {
	y, m, d := now.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// PromotionLive reports whether p qualifies for the public listing at now.
// A promotion is live iff it is APPROVED and its end date has not passed.
// The start date is deliberately NOT consulted: an approved promotion is
// shown immediately even before its declared window opens. This asymmetry
// is a product decision carried over intact; acceptance tests pin it.
func PromotionLive(p model.Promotion, now time.Time) bool {
	return p.Status == model.PromotionApproved && !p.End.Before(Midnight(now))
}

// PromotionLiveFilter returns the Mongo filter matching exactly the
// records for which PromotionLive holds at now.
func PromotionLiveFilter(now time.Time) bson.M {
	return bson.M{
		"status": model.PromotionApproved,
		"end":    bson.M{"$gte": Midnight(now)},
	}
}

// AnnouncementLive reports whether a qualifies for the public listing at
// now. Both window bounds are enforced here, unlike promotions: the
// announcement must be active, already started, and not yet ended
// (end date inclusive, date-truncated).
func AnnouncementLive(a model.Announcement, now time.Time) bool {
	if !a.IsActive {
		return false
	}
	if a.StartDate.After(now) {
		return false
	}
	return !a.EndDate.Before(Midnight(now))
}

// AnnouncementLiveFilter returns the Mongo filter matching exactly the
// records for which AnnouncementLive holds at now.
func AnnouncementLiveFilter(now time.Time) bson.M {
	return bson.M{
		"is_active":  true,
		"start_date": bson.M{"$lte": now},
		"end_date":   bson.M{"$gte": Midnight(now)},
	}
}
