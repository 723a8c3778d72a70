package queue_publisher

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/iliyamo/restaurant-seat-reservation/internal/model"
	q "github.com/iliyamo/restaurant-seat-reservation/internal/queue"
)

// silentBroker accepts TCP connections and never speaks AMQP.
func silentBroker(t *testing.T) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	var conns []net.Conn
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			c, err := ln.Accept()
			if err != nil {
				return
			}
			conns = append(conns, c)
		}
	}()
	t.Cleanup(func() {
		ln.Close()
		<-done
		for _, c := range conns {
			c.Close()
		}
	})
	return "amqp://guest:guest@" + ln.Addr().String() + "/"
}

func TestPublishHonoursContextDeadline(t *testing.T) {
	p := New(silentBroker(t), "reservation.events")
	ev := q.NewReservationEvent(q.EventBooked, model.Reservation{ID: 1, Seats: []string{"1-1"}, Time: "10:00 AM", Name: "Alice"})

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	start := time.Now()
	if err := p.PublishReservationEvent(ctx, ev); err == nil {
		t.Fatal("expected an error from a silent broker")
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Fatalf("publish took %s", elapsed)
	}
}

func TestPublishExpiredContext(t *testing.T) {
	p := New(silentBroker(t), "reservation.events")
	ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancel()
	if err := p.PublishReservationEvent(ctx, q.ReservationEvent{}); err == nil {
		t.Fatal("expected an error")
	}
}

func TestDialTimeout(t *testing.T) {
	if got := dialTimeout(context.Background()); got != defaultDialTimeout {
		t.Fatalf("no deadline: %s", got)
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if got := dialTimeout(ctx); got <= 0 || got > time.Second {
		t.Fatalf("with deadline: %s", got)
	}
}
