package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// SyncCompletedPayload is published once per successful sync pass, after all
// CRM writes have been committed.
type SyncCompletedPayload struct {
	PassID          string    `json:"pass_id"`
	Phone           string    `json:"phone"`
	LeadID          string    `json:"lead_id"`
	LeadCreated     bool      `json:"lead_created"`
	EventsProcessed int       `json:"events_processed"`
	UpdatesAppended int       `json:"updates_appended"`
	FinishedAt      time.Time `json:"finished_at"`
}

type RabbitMQProducer struct {
	Conn *amqp.Connection
	Ch   *amqp.Channel
}

func NewProducer(conn *amqp.Connection, ch *amqp.Channel) *RabbitMQProducer {
	return &RabbitMQProducer{
		Conn: conn,
		Ch:   ch,
	}
}

func (p *RabbitMQProducer) PublishSyncCompleted(ctx context.Context, payload SyncCompletedPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode payload: %v", err)
	}

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName,
		RoutingKey,
		false, // Mandatory
		false, // Immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish to RabbitMQ: %v", err)
	}

	return nil
}
