package kafka

import (
	"Ripple/internal/api/config"
	"context"
	log "log/slog"

	"github.com/IBM/sarama"
)

// ConsumerManager 管理帖子事件的消费者组
type ConsumerManager struct {
	topic       string
	postConsume sarama.ConsumerGroup
	postHandler sarama.ConsumerGroupHandler
}

func NewConsumerManager(cfg config.KafkaConfig, handle EventFunc) (*ConsumerManager, error) {
	group, err := sarama.NewConsumerGroup(cfg.Brokers, cfg.GroupID, newSaramaConfig(cfg))
	if err != nil {
		return nil, err
	}
	return &ConsumerManager{
		topic:       cfg.PostTopic,
		postConsume: group,
		postHandler: NewPostEventHandler(handle),
	}, nil
}

// Start 阻塞直到 ctx 结束
func (m *ConsumerManager) Start(ctx context.Context) error {
	go func() {
		for err := range m.postConsume.Errors() {
			log.Error("Error from consumer group", "err", err)
		}
	}()

	go func() {
		log.Info("Post event consumer started", "topic", m.topic)
		for {
			if err := m.postConsume.Consume(ctx, []string{m.topic}, m.postHandler); err != nil {
				log.Error("Error from consumer", "err", err)
			}
			if ctx.Err() != nil {
				return
			}
		}
	}()

	<-ctx.Done()
	log.Info("Kafka consumer shutting down...")

	if err := m.postConsume.Close(); err != nil {
		log.Error("Failed to close post event consumer", "err", err)
	}
	return nil
}
