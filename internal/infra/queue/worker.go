package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/xavierca1/ligue-crm/internal/crm"
	"github.com/xavierca1/ligue-crm/internal/entity"
)

// LeadNotifier delivers new-lead notifications. *mail.EmailSender
// satisfies it.
type LeadNotifier interface {
	SendLeadAssigned(to string, lead entity.Lead) error
}

type consumeChannel interface {
	Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error)
}

type Worker struct {
	Channel  consumeChannel
	Notifier LeadNotifier
	Inbox    string
}

func NewWorker(ch consumeChannel, notifier LeadNotifier, inbox string) *Worker {
	return &Worker{
		Channel:  ch,
		Notifier: notifier,
		Inbox:    inbox,
	}
}

// Start consumes queueName until ctx is cancelled or the channel closes.
func (w *Worker) Start(ctx context.Context, queueName string) error {
	msgs, err := w.Channel.Consume(
		queueName, // fila
		"",        // consumer
		false,     // auto-ack
		false,     // exclusive
		false,     // no-local
		false,     // no-wait
		nil,       // args
	)
	if err != nil {
		return fmt.Errorf("falha ao registrar consumidor RabbitMQ: %w", err)
	}

	log.Printf(" [*] Worker rodando e aguardando na fila '%s'", queueName)
	for {
		select {
		case <-ctx.Done():
			log.Printf("⚠️ [WORKER] encerrado")
			return nil
		case d, ok := <-msgs:
			if !ok {
				log.Printf("⚠️ [WORKER] canal fechado")
				return nil
			}
			w.handle(ctx, d)
		}
	}
}

func (w *Worker) handle(ctx context.Context, d amqp.Delivery) {
	if err := w.process(ctx, d.RoutingKey, d.Body); err != nil {
		log.Printf("❌ [WORKER] %s", err)
		// Sem requeue: mensagem vai pra DLQ.
		d.Nack(false, false)
		return
	}
	d.Ack(false)
}

func (w *Worker) process(_ context.Context, key string, body []byte) error {
	var payload EventPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return fmt.Errorf("JSON inválido: %w", err)
	}

	switch payload.Type {
	case crm.EventLeadCreated:
		if payload.Lead == nil {
			return fmt.Errorf("evento %s sem lead", payload.Type)
		}
		log.Printf("⚙️ [WORKER] Notificando novo lead %s (%s)", payload.Lead.Name, payload.Lead.ID)
		if err := w.Notifier.SendLeadAssigned(w.Inbox, *payload.Lead); err != nil {
			return fmt.Errorf("falha ao notificar lead %s: %w", payload.Lead.ID, err)
		}
		log.Printf("✅ [WORKER] Lead %s notificado", payload.Lead.ID)
		return nil
	default:
		// Só lead.created é roteado pra cá; o resto é descartado com ack.
		log.Printf("⚠️ [WORKER] Evento ignorado: %s (key %s)", payload.Type, key)
		return nil
	}
}
