package queue

import (
	"encoding/json"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"
)

// ReportSender delivers a sync report to whoever wants one (email today).
type ReportSender interface {
	SendSyncReport(payload SyncCompletedPayload) error
}

type Worker struct {
	Channel *amqp.Channel
	Reports ReportSender
}

func NewWorker(ch *amqp.Channel, reports ReportSender) *Worker {
	return &Worker{
		Channel: ch,
		Reports: reports,
	}
}

func (w *Worker) Start(queueName string) {
	msgs, err := w.Channel.Consume(
		queueName,
		"",    // consumer
		false, // auto-ack (manual is safer)
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		log.Fatalf("❌ [WORKER] Failed to register RabbitMQ consumer: %s", err)
	}

	forever := make(chan bool)

	go func() {
		for d := range msgs {
			var payload SyncCompletedPayload
			if err := json.Unmarshal(d.Body, &payload); err != nil {
				log.Printf("❌ [WORKER] Invalid JSON: %s", err)
				// Malformed message. Reject without requeue so the queue keeps moving.
				d.Nack(false, false)
				continue
			}

			log.Printf("📥 [WORKER] Sync report for %s (pass %s)", payload.Phone, payload.PassID)

			if err := w.Reports.SendSyncReport(payload); err != nil {
				log.Printf("❌ [WORKER] Failed to send report: %s", err)
				d.Nack(false, false)
			} else {
				log.Printf("✅ [WORKER] Report delivered for pass %s", payload.PassID)
				d.Ack(false)
			}
		}
	}()

	log.Printf(" [*] Worker running, waiting on queue '%s'", queueName)
	<-forever
}
