package events

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/Astemirdum/book-tracker/pkg/circuit_breaker"
	"github.com/Astemirdum/book-tracker/pkg/kafka"
	"github.com/IBM/sarama"
	"go.uber.org/zap"
)

type Publisher struct {
	producer sarama.SyncProducer
	cb       circuit_breaker.CircuitBreaker
	topic    string
	log      *zap.Logger
}

func NewPublisher(producer sarama.SyncProducer, log *zap.Logger) *Publisher {
	return &Publisher{
		producer: producer,
		cb:       circuit_breaker.New(100, time.Second, 0.2, 2),
		topic:    kafka.ReadingTopic,
		log:      log.Named("events"),
	}
}

// Publish sends ev keyed by session id, so events of one session stay ordered.
func (p *Publisher) Publish(_ context.Context, ev kafka.EventReading) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(strconv.FormatInt(ev.SessionID, 10)),
		Value: sarama.ByteEncoder(data),
	}
	return p.cb.Call(func() error {
		partition, offset, err := p.producer.SendMessage(msg)
		if err != nil {
			return err
		}
		p.log.Debug("event sent",
			zap.String("type", string(ev.EventType)),
			zap.Int32("partition", partition),
			zap.Int64("offset", offset))
		return nil
	})
}

func (p *Publisher) Close() error {
	return p.producer.Close()
}

// Nop drops every event. Used when no brokers are configured.
type Nop struct{}

func (Nop) Publish(context.Context, kafka.EventReading) error { return nil }

func (Nop) Close() error { return nil }
