package kafka

import (
	"time"

	"github.com/IBM/sarama"
)

const ReadingTopic = "reading-events"

type Config struct {
	Addrs []string `envconfig:"KAFKA_ADDRS"`
}

func (c Config) Enabled() bool {
	return len(c.Addrs) > 0
}

func NewProducer(cfg Config) (sarama.SyncProducer, error) {
	defaultCfg := sarama.NewConfig()

	defaultCfg.Producer.RequiredAcks = sarama.WaitForAll
	defaultCfg.Producer.Return.Successes = true
	defaultCfg.Producer.Retry.Max = 3

	return sarama.NewSyncProducer(cfg.Addrs, defaultCfg)
}

type EventType string

const (
	SessionStarted   EventType = "SESSION_STARTED"
	ProgressAdded    EventType = "PROGRESS_ADDED"
	SessionCompleted EventType = "SESSION_COMPLETED"
)

// EventReading is the message written to ReadingTopic, keyed by session id.
type EventReading struct {
	Timestamp            time.Time `json:"timestamp"`
	UserID               string    `json:"userId"`
	SessionID            int64     `json:"sessionId"`
	BookID               int64     `json:"bookId"`
	EventType            EventType `json:"eventType"`
	QuantityRead         int       `json:"quantityRead,omitempty"`
	TotalProgress        int       `json:"totalProgress"`
	ProgressInPercentage float64   `json:"progressInPercentage"`
}
