// Package queue contains the background consumer that listens to the
// booking.created and booking.cancelled queues, writes an inbox
// notification for the operator, and appends structured lines to
// logs/booking.log.
package queue

import (
    "context"
    "encoding/json"
    "errors"
    "fmt"
    "log"
    "os"
    "path/filepath"
    "time"

    amqp "github.com/rabbitmq/amqp091-go"

    "github.com/aerovia/emptyleg/internal/model"
    "github.com/aerovia/emptyleg/internal/repository"
)

const (
    createdQueueName   = "booking.created"
    cancelledQueueName = "booking.cancelled"
)

// StartBookingConsumer connects to RabbitMQ, declares the booking queues
// (durable), and starts consuming messages. Each booking.created message
// produces a notification row for the operator's user account and a line in
// logs/booking.log; booking.cancelled messages do the same with a cancelled
// wording. The function runs a reconnect loop and keeps running after
// transient broker failures, rejecting any message it cannot process so the
// server continues operating.
func StartBookingConsumer(url string, notifs *repository.NotificationRepo) error {
    backoff := time.Second
    for {
        conn, err := amqp.Dial(url)
        if err != nil {
            log.Printf("booking-consumer: failed to dial broker: %v; retrying in %s", err, backoff)
            time.Sleep(backoff)
            if backoff < 30*time.Second {
                backoff *= 2
            }
            continue
        }
        backoff = time.Second // reset after successful connect

        if err := consumeLoop(conn, notifs); err != nil {
            log.Printf("booking-consumer: consume loop ended: %v; reconnecting", err)
            // Sleep briefly before reconnect
            time.Sleep(2 * time.Second)
            continue
        }
    }
}

func consumeLoop(conn *amqp.Connection, notifs *repository.NotificationRepo) error {
    ch, err := conn.Channel()
    if err != nil {
        return fmt.Errorf("channel open: %w", err)
    }
    defer func() { _ = ch.Close() }()

    if err := ch.Qos(50, 0, false); err != nil {
        log.Printf("booking-consumer: set QoS failed: %v", err)
    }

    for _, name := range []string{createdQueueName, cancelledQueueName} {
        if _, err := ch.QueueDeclare(name, true, false, false, false, nil); err != nil {
            return fmt.Errorf("queue declare %s: %w", name, err)
        }
    }

    created, err := ch.Consume(createdQueueName, "", false, false, false, false, nil)
    if err != nil {
        return fmt.Errorf("queue consume %s: %w", createdQueueName, err)
    }
    cancelled, err := ch.Consume(cancelledQueueName, "", false, false, false, false, nil)
    if err != nil {
        return fmt.Errorf("queue consume %s: %w", cancelledQueueName, err)
    }

    for {
        var (
            d  amqp.Delivery
            ok bool
            fn func([]byte) error
        )
        select {
        case d, ok = <-created:
            fn = func(b []byte) error { return handleCreated(b, notifs) }
        case d, ok = <-cancelled:
            fn = func(b []byte) error { return handleCancelled(b, notifs) }
        }
        if !ok {
            return errors.New("deliveries channel closed")
        }
        if err := fn(d.Body); err != nil {
            log.Printf("booking-consumer: handle message failed: %v", err)
            _ = d.Nack(false, false) // reject, do not requeue to avoid tight loops
            continue
        }
        _ = d.Ack(false)
    }
}

func handleCreated(body []byte, notifs *repository.NotificationRepo) error {
    var ev BookingCreatedEvent
    if err := json.Unmarshal(body, &ev); err != nil {
        return fmt.Errorf("unmarshal: %w", err)
    }

    ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
    defer cancel()

    n := &model.Notification{
        UserID: ev.OperatorUserID,
        Title:  fmt.Sprintf("New booking %s", ev.BookingReference),
        Message: fmt.Sprintf("%d seat(s) booked on flight %s (%s-%s, departs %s) for %d %s.",
            ev.PassengerCount, ev.FlightReference, ev.OriginCode, ev.DestinationCode,
            ev.DepartsAt, ev.TotalAmountCents, ev.Currency),
        Type: model.NotificationTypeBookingCreated,
    }
    if _, err := notifs.Create(ctx, n); err != nil {
        return fmt.Errorf("insert notification: %w", err)
    }

    line := fmt.Sprintf("[%s] Booking created | booking=%s | flight=%s | route=%s-%s | seats=%d | total=%d %s | event=%s\n",
        ev.CreatedAt, ev.BookingReference, ev.FlightReference, ev.OriginCode, ev.DestinationCode,
        ev.PassengerCount, ev.TotalAmountCents, ev.Currency, ev.EventID)
    return appendLog(line)
}

func handleCancelled(body []byte, notifs *repository.NotificationRepo) error {
    var ev BookingCancelledEvent
    if err := json.Unmarshal(body, &ev); err != nil {
        return fmt.Errorf("unmarshal: %w", err)
    }

    ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
    defer cancel()

    n := &model.Notification{
        UserID: ev.OperatorUserID,
        Title:  fmt.Sprintf("Booking %s cancelled", ev.BookingReference),
        Message: fmt.Sprintf("%d seat(s) released back to flight %s.",
            ev.PassengerCount, ev.FlightReference),
        Type: model.NotificationTypeBookingCancelled,
    }
    if _, err := notifs.Create(ctx, n); err != nil {
        return fmt.Errorf("insert notification: %w", err)
    }

    line := fmt.Sprintf("[%s] Booking cancelled | booking=%s | flight=%s | seats=%d | event=%s\n",
        ev.CancelledAt, ev.BookingReference, ev.FlightReference, ev.PassengerCount, ev.EventID)
    return appendLog(line)
}

func appendLog(line string) error {
    // Ensure logs directory exists
    if err := os.MkdirAll("logs", 0o755); err != nil {
        return fmt.Errorf("mkdir logs: %w", err)
    }
    fpath := filepath.Join("logs", "booking.log")
    f, err := os.OpenFile(fpath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
    if err != nil {
        return fmt.Errorf("open log file: %w", err)
    }
    defer f.Close()

    if _, err := f.WriteString(line); err != nil {
        return fmt.Errorf("write log: %w", err)
    }
    return nil
}
