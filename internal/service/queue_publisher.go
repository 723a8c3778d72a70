// Package queue_publisher publishes reservation events to RabbitMQ.
// Errors are logged and returned so callers can ignore failures without
// interrupting the main request flow.
package queue_publisher

import (
    "context"
    "encoding/json"
    "log"
    "time"

    amqp "github.com/rabbitmq/amqp091-go"

    q "github.com/iliyamo/restaurant-seat-reservation/internal/queue"
)

// Publisher sends events to a durable queue on the default exchange.  It
// dials per publish: reservations are rare enough that a long-lived
// channel is not worth the reconnect handling.
type Publisher struct {
    URL   string
    Queue string
}

// defaultDialTimeout bounds connection setup when the caller's context
// carries no deadline.
const defaultDialTimeout = 5 * time.Second

// dialTimeout is the time left before ctx expires, or defaultDialTimeout.
func dialTimeout(ctx context.Context) time.Duration {
    if deadline, ok := ctx.Deadline(); ok {
        if left := time.Until(deadline); left < defaultDialTimeout {
            return left
        }
    }
    return defaultDialTimeout
}

// New returns a Publisher for the given broker and queue.
func New(url, queue string) *Publisher {
    return &Publisher{URL: url, Queue: queue}
}

// PublishReservationEvent publishes ev as a persistent JSON message.
func (p *Publisher) PublishReservationEvent(ctx context.Context, ev q.ReservationEvent) error {
    body, err := json.Marshal(ev)
    if err != nil {
        log.Printf("rabbitmq: marshal event failed: %v", err)
        return err
    }

    timeout := dialTimeout(ctx)
    if timeout <= 0 {
        return ctx.Err()
    }
    // the handshake deadline set by DefaultDial keeps a silent broker from
    // holding the request past the caller's deadline
    conn, err := amqp.DialConfig(p.URL, amqp.Config{
        Heartbeat: 10 * time.Second,
        Locale:    "en_US",
        Dial:      amqp.DefaultDial(timeout),
    })
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
    if _, err := ch.QueueDeclare(p.Queue, true, false, false, false, nil); err != nil {
        log.Printf("rabbitmq: queue declare failed: %v", err)
        return err
    }

    pub := amqp.Publishing{
        ContentType:  "application/json",
        DeliveryMode: amqp.Persistent,
        MessageId:    ev.EventID,
        Type:         ev.Type,
        Timestamp:    time.Now().UTC(),
        Body:         body,
    }
    if err := ch.PublishWithContext(ctx, "", p.Queue, false, false, pub); err != nil {
        log.Printf("rabbitmq: publish failed: %v", err)
        return err
    }
    return nil
}
