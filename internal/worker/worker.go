// Package worker turns the back office's Kafka traffic into audit journal rows
// and guest emails.
package worker

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/Domenick1991/safaribooking/internal/kafka"
	"github.com/Domenick1991/safaribooking/internal/repository"
	kafkago "github.com/segmentio/kafka-go"
)

type AuditStore interface {
	Append(ctx context.Context, entry *repository.AuditEntry) error
	Recent(ctx context.Context, limit int) ([]repository.AuditEntry, error)
	PurgeBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

type Notifier interface {
	Send(ctx context.Context, n kafka.GuestNotification) error
}

// Observer counts handled messages per topic and result.
type Observer interface {
	ObserveEvent(topic, result string)
}

type Worker struct {
	audit     AuditStore
	notifier  Notifier
	observer  Observer
	retention time.Duration
	now       func() time.Time
}

type Option func(*Worker)

func WithObserver(o Observer) Option {
	return func(w *Worker) {
		w.observer = o
	}
}

func WithClock(now func() time.Time) Option {
	return func(w *Worker) {
		w.now = now
	}
}

// New builds a worker that keeps audit rows for retention.
func New(audit AuditStore, notifier Notifier, retention time.Duration, opts ...Option) *Worker {
	w := &Worker{audit: audit, notifier: notifier, retention: retention, now: time.Now}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// HandleEvent journals an entity event. Undecodable messages and storage
// failures are logged and skipped so one bad message cannot stall the group.
func (w *Worker) HandleEvent(ctx context.Context, msg kafkago.Message) error {
	var ev kafka.EntityEvent
	if err := json.Unmarshal(msg.Value, &ev); err != nil {
		log.Printf("[WORKER] topic=%s offset=%d msg=decode event: %v", msg.Topic, msg.Offset, err)
		w.observe(msg.Topic, "error")
		return nil
	}
	occurred := ev.OccurredAt
	if occurred.IsZero() {
		occurred = msg.Time
	}
	entry := &repository.AuditEntry{
		EventType:  ev.Type,
		Entity:     ev.Entity,
		EntityID:   ev.EntityID,
		Payload:    ev.Data,
		OccurredAt: occurred,
	}
	if err := w.audit.Append(ctx, entry); err != nil {
		log.Printf("[WORKER] topic=%s type=%s entity_id=%s msg=append audit: %v", msg.Topic, ev.Type, ev.EntityID, err)
		w.observe(msg.Topic, "error")
		return nil
	}
	w.observe(msg.Topic, "ok")
	return nil
}

func (w *Worker) HandleNotification(ctx context.Context, msg kafkago.Message) error {
	var n kafka.GuestNotification
	if err := json.Unmarshal(msg.Value, &n); err != nil {
		log.Printf("[WORKER] topic=%s offset=%d msg=decode notification: %v", msg.Topic, msg.Offset, err)
		w.observe(msg.Topic, "error")
		return nil
	}
	if err := w.notifier.Send(ctx, n); err != nil {
		log.Printf("[WORKER] topic=%s booking=%s msg=send notification: %v", msg.Topic, n.BookingNumber, err)
		w.observe(msg.Topic, "error")
		return nil
	}
	w.observe(msg.Topic, "ok")
	return nil
}

// Sweep drops audit rows older than the retention window.
func (w *Worker) Sweep(ctx context.Context) (int64, error) {
	cutoff := w.now().Add(-w.retention)
	n, err := w.audit.PurgeBefore(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		log.Printf("[WORKER] action=sweep purged=%d cutoff=%s", n, cutoff.Format(time.RFC3339))
	}
	return n, nil
}

func (w *Worker) observe(topic, result string) {
	if w.observer != nil {
		w.observer.ObserveEvent(topic, result)
	}
}
