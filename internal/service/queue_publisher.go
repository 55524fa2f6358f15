// Package queue_publisher publishes club activity events to RabbitMQ.
// Errors are logged and returned so callers can ignore failures without
// interrupting the main request flow.
package queue_publisher

import (
	"context"
	"encoding/json"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	q "github.com/pawnsgambit/club-api/internal/queue"
)

// PublishMemberRegistered publishes a MemberRegisteredEvent to the
// club.activity queue.
func PublishMemberRegistered(ctx context.Context, event q.MemberRegisteredEvent) error {
	event.Kind = q.KindMemberRegistered
	return publish(ctx, event)
}

// PublishEventRegistration publishes an EventRegistrationEvent to the
// club.activity queue.
func PublishEventRegistration(ctx context.Context, event q.EventRegistrationEvent) error {
	event.Kind = q.KindEventRegistration
	return publish(ctx, event)
}

// publish opens a short-lived connection, declares the durable queue and
// publishes a persistent message. It never panics; any error is logged and
// returned for the caller to decide.
func publish(ctx context.Context, event any) error {
	conn, err := amqp.Dial(q.BrokerURL())
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

	if _, err := ch.QueueDeclare(
		"club.activity", // name
		true,            // durable
		false,           // autoDelete
		false,           // exclusive
		false,           // noWait
		nil,             // args
	); err != nil {
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

	if err := ch.PublishWithContext(ctx,
		"",              // default exchange
		"club.activity", // routing key = queue name
		false,           // mandatory
		false,           // immediate
		pub,
	); err != nil {
		log.Printf("rabbitmq: publish failed: %v", err)
		return err
	}
	return nil
}
