package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/farellandr/dealhub/internal/deals"
	"github.com/segmentio/kafka-go"
)

const DefaultVisitTopic = "deal.visit"

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// VisitPublisher writes visit events to Kafka, keyed by deal id so events of
// one deal stay ordered.
type VisitPublisher struct {
	writer messageWriter
}

func NewVisitPublisher(brokers []string, topic string) *VisitPublisher {
	if topic == "" {
		topic = DefaultVisitTopic
	}
	return &VisitPublisher{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  topic,
			Balancer:               &kafka.Hash{},
			AllowAutoTopicCreation: true,
		},
	}
}

func (p *VisitPublisher) PublishVisit(ctx context.Context, event deals.VisitEvent) error {
	msg, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal visit event: %w", err)
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(strconv.FormatUint(uint64(event.DealID), 10)),
		Value: msg,
		Time:  time.Now(),
	})
}

func (p *VisitPublisher) Close() error {
	return p.writer.Close()
}
