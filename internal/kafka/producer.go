package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/segmentio/kafka-go"
)

const (
	headerContentType = "content-type"
	headerEventType   = "event-type"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// typedEvent is implemented by payloads that carry their own event name.
type typedEvent interface {
	EventType() string
}

// Producer writes JSON payloads keyed by entity id, so all events of one
// record land on the same partition in order.
type Producer struct {
	brokers []string
	writer  messageWriter
	now     func() time.Time
}

func NewProducer(brokers []string) *Producer {
	return newProducer(brokers, &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Balancer:               &kafka.Hash{},
		BatchTimeout:           50 * time.Millisecond,
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
	})
}

func newProducer(brokers []string, w messageWriter) *Producer {
	return &Producer{brokers: brokers, writer: w, now: time.Now}
}

func (p *Producer) Publish(ctx context.Context, topic, key string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode %s payload: %w", topic, err)
	}

	headers := []kafka.Header{{Key: headerContentType, Value: []byte("application/json")}}
	if ev, ok := payload.(typedEvent); ok && ev.EventType() != "" {
		headers = append(headers, kafka.Header{Key: headerEventType, Value: []byte(ev.EventType())})
	}

	msg := kafka.Message{
		Topic:   topic,
		Key:     []byte(key),
		Value:   data,
		Headers: headers,
		Time:    p.now(),
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write to %s: %w", topic, err)
	}

	log.Printf("[KAFKA] published topic=%s key=%s bytes=%d", topic, key, len(data))
	return nil
}

func (p *Producer) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	return p.writer.Close()
}

// CheckConnection dials the first broker and lists its partitions.
func (p *Producer) CheckConnection(ctx context.Context) error {
	if len(p.brokers) == 0 {
		return fmt.Errorf("no Kafka brokers configured")
	}
	conn, err := kafka.DialContext(ctx, "tcp", p.brokers[0])
	if err != nil {
		return fmt.Errorf("dial %s: %w", p.brokers[0], err)
	}
	defer conn.Close()

	partitions, err := conn.ReadPartitions()
	if err != nil {
		return fmt.Errorf("read partitions: %w", err)
	}
	log.Printf("[KAFKA] connected brokers=%v partitions=%d", p.brokers, len(partitions))
	return nil
}

// EventTypeOf returns the "event-type" header of msg, or "" if it has none.
func EventTypeOf(msg kafka.Message) string {
	for _, h := range msg.Headers {
		if h.Key == headerEventType {
			return string(h.Value)
		}
	}
	return ""
}
