// Package service hosts outbound collaborator clients: the AMQP event
// publisher and the image relay. Both are best-effort or fail-closed
// collaborators; neither retries.
package service

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/promolab/promo-board/internal/queue"
)

// promotionQueue is the durable queue receiving lifecycle events.
const promotionQueue = "promotion.events"

// EventPublisher publishes promotion lifecycle events to RabbitMQ. The
// publisher is best-effort: any error is logged and swallowed so a broker
// outage never interferes with the administrative write that triggered
// the event. A publisher with an empty URL is disabled and publishes
// nothing; a nil publisher is likewise safe to call.
type EventPublisher struct {
	url    string
	logger *zap.Logger
}

// NewEventPublisher builds an EventPublisher for the given AMQP URL. An
// empty url yields a disabled publisher.
func NewEventPublisher(url string, logger *zap.Logger) *EventPublisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EventPublisher{url: url, logger: logger}
}

// Publish sends a PromotionEvent to the promotion.events queue. Each call
// dials its own connection; event volume here is administrative writes,
// so connection reuse is not worth the bookkeeping. Messages are marked
// persistent.
func (p *EventPublisher) Publish(ctx context.Context, event queue.PromotionEvent) {
	if p == nil || p.url == "" {
		return
	}
	conn, err := amqp.Dial(p.url)
	if err != nil {
		p.logger.Warn("event publish: dial failed", zap.Error(err))
		return
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		p.logger.Warn("event publish: channel open failed", zap.Error(err))
		return
	}
	defer func() { _ = ch.Close() }()

	// Ensure the queue exists (idempotent). Durable so messages survive
	// broker restarts.
	if _, err := ch.QueueDeclare(
		promotionQueue, // name
		true,           // durable
		false,          // autoDelete
		false,          // exclusive
		false,          // noWait
		nil,            // args
	); err != nil {
		p.logger.Warn("event publish: queue declare failed", zap.Error(err))
		return
	}

	body, err := json.Marshal(event)
	if err != nil {
		p.logger.Warn("event publish: marshal failed", zap.Error(err))
		return
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	if err := ch.PublishWithContext(ctx,
		"",             // default exchange
		promotionQueue, // routing key = queue name
		false,          // mandatory
		false,          // immediate
		pub,
	); err != nil {
		p.logger.Warn("event publish: publish failed",
			zap.String("type", event.Type), zap.Error(err))
	}
}
