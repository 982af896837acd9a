package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/xavierca1/ligue-crm/internal/crm"
	"github.com/xavierca1/ligue-crm/internal/entity"
)

const publishTimeout = 5 * time.Second

// EventPayload is the JSON body of every message on ex.crm. The routing key
// is the event type.
type EventPayload struct {
	Type       crm.EventType   `json:"type"`
	ID         string          `json:"id,omitempty"`
	OccurredAt time.Time       `json:"occurred_at"`
	Contact    *entity.Contact `json:"contact,omitempty"`
	Lead       *entity.Lead    `json:"lead,omitempty"`
}

// publishChannel is the subset of *amqp.Channel the publisher needs.
type publishChannel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// EventPublisher mirrors store mutations onto RabbitMQ. Failures are logged
// and reported through OnError; they never reach the store.
type EventPublisher struct {
	Ch      publishChannel
	OnError func(error)
}

func NewEventPublisher(ch publishChannel) *EventPublisher {
	return &EventPublisher{Ch: ch}
}

func (p *EventPublisher) Publish(ctx context.Context, ev crm.Event) error {
	body, err := json.Marshal(EventPayload{
		Type:       ev.Type,
		ID:         ev.ID,
		OccurredAt: ev.OccurredAt,
		Contact:    ev.Contact,
		Lead:       ev.Lead,
	})
	if err != nil {
		return fmt.Errorf("erro ao converter payload: %w", err)
	}

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName,
		string(ev.Type),
		false, // Mandatory
		false, // Immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    ev.OccurredAt,
		},
	)
	if err != nil {
		return fmt.Errorf("falha ao publicar no RabbitMQ: %w", err)
	}
	return nil
}

// Listener adapts the publisher to crm.Store.Subscribe.
func (p *EventPublisher) Listener() crm.Listener {
	return func(ev crm.Event) {
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		defer cancel()
		if err := p.Publish(ctx, ev); err != nil {
			log.Printf("❌ [QUEUE] %s (%s): %v", ev.Type, ev.ID, err)
			if p.OnError != nil {
				p.OnError(err)
			}
		}
	}
}
