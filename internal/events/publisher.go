package events

import (
	"context"
	"encoding/json"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Publisher emits reservation lifecycle events.
type Publisher interface {
	ReservationBooked(ctx context.Context, event ReservationEvent) error
	ReservationCancelled(ctx context.Context, event ReservationEvent) error
}

// NewPublisher returns an AMQP-backed publisher when url is non-empty, and a
// no-op publisher otherwise (local runs and tests).
func NewPublisher(url string) Publisher {
	if url == "" {
		return noopPublisher{}
	}
	return &amqpPublisher{url: url}
}

type noopPublisher struct{}

func (noopPublisher) ReservationBooked(context.Context, ReservationEvent) error    { return nil }
func (noopPublisher) ReservationCancelled(context.Context, ReservationEvent) error { return nil }

// amqpPublisher publishes persistent JSON messages to durable queues. A fresh
// connection per publish keeps the publisher free of reconnect state; the
// message volume here is a handful per booking, not a firehose.
type amqpPublisher struct {
	url string
}

func (p *amqpPublisher) ReservationBooked(ctx context.Context, event ReservationEvent) error {
	return p.publish(ctx, QueueReservationBooked, event)
}

func (p *amqpPublisher) ReservationCancelled(ctx context.Context, event ReservationEvent) error {
	return p.publish(ctx, QueueReservationCancelled, event)
}

func (p *amqpPublisher) publish(ctx context.Context, queue string, event ReservationEvent) error {
	conn, err := amqp.Dial(p.url)
	if err != nil {
		log.Printf("rabbitmq: dial failed: %v", err)
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Printf("rabbitmq: channel open failed: %v", err)
		return err
	}
	defer func() { _ = ch.Close() }()

	// Idempotent declare; durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		log.Printf("rabbitmq: queue declare failed: %v", err)
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("rabbitmq: marshal event failed: %v", err)
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	if err := ch.PublishWithContext(ctx, "", queue, false, false, pub); err != nil {
		log.Printf("rabbitmq: publish failed: %v", err)
		return err
	}

	return nil
}
