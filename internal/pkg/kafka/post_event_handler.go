package kafka

import (
	"context"
	log "log/slog"

	"github.com/IBM/sarama"
)

// EventFunc 处理一条帖子事件
type EventFunc func(ctx context.Context, event *PostEvent) error

type PostEventHandler struct {
	handle EventFunc
}

func NewPostEventHandler(handle EventFunc) *PostEventHandler {
	return &PostEventHandler{handle: handle}
}

func (s *PostEventHandler) Setup(sarama.ConsumerGroupSession) error {
	log.Info("post event consumer setup")
	return nil
}

func (s *PostEventHandler) Cleanup(sarama.ConsumerGroupSession) error {
	log.Info("post event consumer cleanup")
	return nil
}

func (s *PostEventHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	return pullMessageBatch(session, claim, s.logic)
}

func (s *PostEventHandler) logic(ctx context.Context, msg *sarama.ConsumerMessage) error {
	event, err := ToPostEvent(msg)
	if err != nil {
		// 无法解析的消息重试也没有意义
		log.ErrorContext(ctx, "unmarshal post event error", "offset", msg.Offset, "err", err)
		return nil
	}
	return s.handle(ctx, event)
}
