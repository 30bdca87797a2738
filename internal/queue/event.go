// Package queue defines message payloads exchanged over the message broker.
package queue

// Event type values published to the promotion lifecycle queue.
const (
	EventPromotionCreated       = "promotion.created"
	EventPromotionStatusChanged = "promotion.status_changed"
	EventPromotionDeleted       = "promotion.deleted"
)

// PromotionEvent is published when an administrator changes the promotion
// set. It carries enough information for downstream consumers (e.g. a
// future notification service) to react without querying the primary
// database. Consumption is out of scope for this service; the queue is
// the extension point.
type PromotionEvent struct {
	Type        string `json:"type"`
	PromotionID string `json:"promotion_id"`
	Title       string `json:"title,omitempty"`
	Status      string `json:"status,omitempty"`
	OccurredAt  string `json:"occurred_at"`
}
