package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"go.uber.org/zap"
)

// Type names one lifecycle event of a processing job
type Type string

const (
	TaskSubmitted Type = "task.submitted"
	TaskCompleted Type = "task.completed"
	TaskFailed    Type = "task.failed"
)

// Event is one job lifecycle notification
type Event struct {
	Type           Type      `json:"type"`
	TaskID         string    `json:"task_id,omitempty"`
	Status         string    `json:"status,omitempty"`
	Message        string    `json:"message,omitempty"`
	VideoURL       string    `json:"video_url,omitempty"`
	VerificationID string    `json:"verification_id,omitempty"`
	ClipCount      int       `json:"clip_count,omitempty"`
	Timestamp      time.Time `json:"timestamp"`
}

// Publisher sends job events somewhere outside the editor
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

type kafkaPublisher struct {
	producer sarama.SyncProducer
	topic    string
	logger   *zap.Logger
}

// NewKafkaPublisher connects a synchronous producer to brokers
func NewKafkaPublisher(brokers []string, topic string, logger *zap.Logger) (Publisher, error) {
	config := sarama.NewConfig()
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 5
	config.Producer.Return.Successes = true

	p, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka producer: %w", err)
	}

	return NewPublisher(p, topic, logger), nil
}

// NewPublisher wraps an existing producer
func NewPublisher(producer sarama.SyncProducer, topic string, logger *zap.Logger) Publisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &kafkaPublisher{producer: producer, topic: topic, logger: logger}
}

func (p *kafkaPublisher) Publish(ctx context.Context, event Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(event.TaskID),
		Value: sarama.ByteEncoder(data),
	}

	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		p.logger.Error("Failed to publish event", zap.String("type", string(event.Type)), zap.Error(err))
		return err
	}

	p.logger.Debug("Event published",
		zap.String("type", string(event.Type)),
		zap.String("task_id", event.TaskID),
		zap.Int32("partition", partition),
		zap.Int64("offset", offset),
	)
	return nil
}

func (p *kafkaPublisher) Close() error {
	return p.producer.Close()
}

type nopPublisher struct{}

// Nop returns a publisher that drops every event
func Nop() Publisher { return nopPublisher{} }

func (nopPublisher) Publish(context.Context, Event) error { return nil }
func (nopPublisher) Close() error                         { return nil }
