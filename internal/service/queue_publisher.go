// Package queue_publisher provides functions to publish domain events to RabbitMQ.
// Errors are logged and returned to allow callers to ignore failures without
// interrupting the main request flow.
package queue_publisher

import (
    "context"
    "encoding/json"
    "log"
    "time"

    amqp "github.com/rabbitmq/amqp091-go"

    q "github.com/aerovia/emptyleg/internal/queue"
)

// Queue names used by the publishers below and by the consumer.
const (
    BookingCreatedQueue   = "booking.created"
    BookingCancelledQueue = "booking.cancelled"
)

// AMQPDispatcher adapts the package-level publish functions to the
// dispatcher interface the booking service consumes. URL is the broker
// address from config.
type AMQPDispatcher struct {
    URL string
}

func (d AMQPDispatcher) BookingCreated(ctx context.Context, ev q.BookingCreatedEvent) error {
    return PublishBookingCreated(ctx, d.URL, ev)
}

func (d AMQPDispatcher) BookingCancelled(ctx context.Context, ev q.BookingCancelledEvent) error {
    return PublishBookingCancelled(ctx, d.URL, ev)
}

// PublishBookingCreated publishes a BookingCreatedEvent to the
// "booking.created" queue. The function attempts to be robust and to
// never panic; any error is logged and returned so the caller can choose
// to ignore it. Messages are marked as persistent.
func PublishBookingCreated(ctx context.Context, url string, event q.BookingCreatedEvent) error {
    return publish(ctx, url, BookingCreatedQueue, event)
}

// PublishBookingCancelled publishes a BookingCancelledEvent to the
// "booking.cancelled" queue.
func PublishBookingCancelled(ctx context.Context, url string, event q.BookingCancelledEvent) error {
    return publish(ctx, url, BookingCancelledQueue, event)
}

func publish(ctx context.Context, url, queueName string, event any) error {
    conn, err := amqp.Dial(url)
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

    // Ensure the queue exists (idempotent). Durable so messages survive broker restarts.
    if _, err := ch.QueueDeclare(
        queueName, // name
        true,      // durable
        false,     // autoDelete
        false,     // exclusive
        false,     // noWait
        nil,       // args
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
        DeliveryMode: amqp.Persistent, // store on disk
        Timestamp:    time.Now().UTC(),
        Body:         body,
    }

    if err := ch.PublishWithContext(ctx,
        "",        // default exchange
        queueName, // routing key = queue name
        false,     // mandatory
        false,     // immediate
        pub,
    ); err != nil {
        log.Printf("rabbitmq: publish failed: %v", err)
        return err
    }

    return nil
}
