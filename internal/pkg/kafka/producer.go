package kafka

import (
	"Ripple/internal/api/config"
	"Ripple/internal/pkg/logger"
	"context"
	"fmt"
	log "log/slog"
	"strconv"

	"github.com/IBM/sarama"
	"github.com/goccy/go-json"
)

// Publisher 发布帖子事件
type Publisher interface {
	Publish(ctx context.Context, event *PostEvent) error
	Enabled() bool
	Close() error
}

type saramaPublisher struct {
	producer sarama.SyncProducer
	topic    string
}

// NewPublisher 未配置 broker 时返回不发送任何消息的实现
func NewPublisher(cfg config.KafkaConfig) (Publisher, error) {
	if len(cfg.Brokers) == 0 {
		log.Warn("Kafka brokers not configured, post events disabled")
		return NoopPublisher{}, nil
	}

	producer, err := sarama.NewSyncProducer(cfg.Brokers, newSaramaConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka producer: %w", err)
	}
	return NewPublisherWithProducer(producer, cfg.PostTopic), nil
}

func NewPublisherWithProducer(producer sarama.SyncProducer, topic string) Publisher {
	return &saramaPublisher{producer: producer, topic: topic}
}

// Publish 以帖子 ID 作为分区键，保证同一帖子的事件有序
func (s *saramaPublisher) Publish(ctx context.Context, event *PostEvent) error {
	value, err := json.Marshal(event)
	if err != nil {
		return err
	}

	msg := &sarama.ProducerMessage{
		Topic: s.topic,
		Key:   sarama.StringEncoder(strconv.FormatInt(event.PostID, 10)),
		Value: sarama.ByteEncoder(value),
	}
	if traceID, ok := ctx.Value(logger.TraceIDKey).(string); ok {
		msg.Headers = append(msg.Headers, sarama.RecordHeader{
			Key:   []byte(logger.TraceIDKey),
			Value: []byte(traceID),
		})
	}

	partition, offset, err := s.producer.SendMessage(msg)
	if err != nil {
		return fmt.Errorf("failed to publish post event: %w", err)
	}
	log.DebugContext(ctx, "post event published",
		"type", event.Type, "post_id", event.PostID, "partition", partition, "offset", offset)
	return nil
}

func (s *saramaPublisher) Enabled() bool {
	return true
}

func (s *saramaPublisher) Close() error {
	return s.producer.Close()
}

type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, *PostEvent) error { return nil }

func (NoopPublisher) Enabled() bool { return false }

func (NoopPublisher) Close() error { return nil }
