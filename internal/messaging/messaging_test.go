package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/rabbitmq/amqp091-go"
	"restaurant-backoffice/internal/logger"
	"restaurant-backoffice/internal/models"
)

type ackRecord struct {
	acked   bool
	nacked  bool
	requeue bool
}

type fakeAcknowledger struct {
	rec *ackRecord
}

func (f fakeAcknowledger) Ack(tag uint64, multiple bool) error {
	f.rec.acked = true
	return nil
}

func (f fakeAcknowledger) Nack(tag uint64, multiple, requeue bool) error {
	f.rec.nacked = true
	f.rec.requeue = requeue
	return nil
}

func (f fakeAcknowledger) Reject(tag uint64, requeue bool) error {
	return f.Nack(tag, false, requeue)
}

func testConsumer() *Consumer {
	log := logger.NewWithWriter("test", io.Discard, slog.LevelDebug)
	return &Consumer{logger: log, queueName: NotificationsQueue, consumerTag: "test"}
}

func TestProcessMessage(t *testing.T) {
	failing := func(context.Context, []byte) error { return errors.New("bad payload") }
	ok := func(context.Context, []byte) error { return nil }

	tests := []struct {
		name        string
		handler     MessageHandler
		redelivered bool
		want        ackRecord
	}{
		{"success acks", ok, false, ackRecord{acked: true}},
		{"first failure requeues", failing, false, ackRecord{nacked: true, requeue: true}},
		{"second failure drops", failing, true, ackRecord{nacked: true, requeue: false}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &ackRecord{}
			d := amqp091.Delivery{
				Acknowledger: fakeAcknowledger{rec: rec},
				DeliveryTag:  1,
				Redelivered:  tt.redelivered,
				Body:         []byte(`{}`),
			}
			testConsumer().processMessage(context.Background(), d, tt.handler)
			if *rec != tt.want {
				t.Errorf("ack state = %+v, want %+v", *rec, tt.want)
			}
		})
	}
}

func TestDrain_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	msgs := make(chan amqp091.Delivery)
	done := make(chan bool, 1)

	go func() {
		done <- testConsumer().drain(ctx, msgs, func(context.Context, []byte) error { return nil })
	}()
	cancel()

	select {
	case stopped := <-done:
		if !stopped {
			t.Error("drain reported a closed channel, want context stop")
		}
	case <-time.After(time.Second):
		t.Fatal("drain did not return")
	}
}

func TestDrain_ClosedChannel(t *testing.T) {
	msgs := make(chan amqp091.Delivery)
	close(msgs)

	if testConsumer().drain(context.Background(), msgs, nil) {
		t.Error("closed channel reported as context stop")
	}
}

func TestNewPublishing(t *testing.T) {
	at := time.Date(2025, time.March, 14, 19, 30, 0, 0, time.UTC)
	msg := models.StatusUpdateMessage{OrderID: 7, TableNumber: 4, OldStatus: "PENDING", NewStatus: "READY", ChangedBy: "kitchen", Timestamp: at}

	p, err := newPublishing(msg, at)
	if err != nil {
		t.Fatalf("newPublishing: %v", err)
	}
	if p.ContentType != "application/json" || p.DeliveryMode != amqp091.Transient || !p.Timestamp.Equal(at) {
		t.Errorf("unexpected publishing headers %+v", p)
	}

	var got models.StatusUpdateMessage
	if err := json.Unmarshal(p.Body, &got); err != nil {
		t.Fatalf("body is not JSON: %v", err)
	}
	if got.OrderID != 7 || got.NewStatus != "READY" {
		t.Errorf("body = %+v", got)
	}
}

func TestNewPublishing_Unencodable(t *testing.T) {
	if _, err := newPublishing(map[string]interface{}{"c": make(chan int)}, time.Now()); err == nil {
		t.Error("expected marshal error")
	}
}
