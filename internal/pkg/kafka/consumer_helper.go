package kafka

import (
	"Ripple/internal/pkg/logger"
	"context"
	log "log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/IBM/sarama"
	"github.com/goccy/go-json"
)

const (
	batchSize        = 32
	batchTimeout     = time.Second
	maxAttempts      = 5
	retryBaseBackoff = 100 * time.Millisecond
	retryMaxBackoff  = 5 * time.Second
)

type LogicFunc func(ctx context.Context, msg *sarama.ConsumerMessage) error

// pullMessageBatch 攒批后交给 processBatch，分区关闭或会话结束时返回
func pullMessageBatch(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim, logic LogicFunc) error {
	ticker := time.NewTicker(batchTimeout)
	defer ticker.Stop()

	batch := make([]*sarama.ConsumerMessage, 0, batchSize)
	flush := func() {
		if len(batch) == 0 {
			return
		}
		processBatch(session, batch, logic)
		batch = make([]*sarama.ConsumerMessage, 0, batchSize)
	}

	for {
		select {
		case msg, ok := <-claim.Messages():
			if !ok {
				flush()
				return nil
			}
			batch = append(batch, msg)
			if len(batch) >= batchSize {
				flush()
				ticker.Reset(batchTimeout)
			}
		case <-ticker.C:
			flush()
		case <-session.Context().Done():
			return nil
		}
	}
}

// processBatch 同一帖子的事件按 offset 顺序处理，不同帖子并发
// 任一分组因会话结束而中断时不提交，整批在重新分配后重放
func processBatch(session sarama.ConsumerGroupSession, messages []*sarama.ConsumerMessage, logic LogicFunc) {
	var (
		wg      sync.WaitGroup
		aborted atomic.Bool
	)
	for _, group := range groupByKey(messages) {
		wg.Add(1)
		go func(msgs []*sarama.ConsumerMessage) {
			defer wg.Done()
			for _, m := range msgs {
				if !runWithRetry(session.Context(), m, logic) {
					aborted.Store(true)
					return
				}
			}
		}(group)
	}
	wg.Wait()

	if aborted.Load() {
		log.WarnContext(session.Context(), "batch aborted, offsets not committed",
			"first_offset", messages[0].Offset, "size", len(messages))
		return
	}
	session.MarkMessage(messages[len(messages)-1], "")
}

func groupByKey(messages []*sarama.ConsumerMessage) [][]*sarama.ConsumerMessage {
	index := make(map[string]int)
	var groups [][]*sarama.ConsumerMessage
	for _, m := range messages {
		key := string(m.Key)
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, nil)
		}
		groups[i] = append(groups[i], m)
	}
	return groups
}

// runWithRetry 指数退避，超过 maxAttempts 次后丢弃
// 返回 false 表示会话结束时消息仍未处理完
func runWithRetry(sessionCtx context.Context, m *sarama.ConsumerMessage, logic LogicFunc) bool {
	ctx := messageContext(sessionCtx, m)
	backoff := retryBaseBackoff
	for attempt := 1; ; attempt++ {
		err := logic(ctx, m)
		if err == nil {
			return true
		}
		if attempt >= maxAttempts {
			log.ErrorContext(ctx, "drop post event after retries", "partition", m.Partition, "offset", m.Offset, "err", err)
			return true
		}
		log.WarnContext(ctx, "handle post event failed", "attempt", attempt, "offset", m.Offset, "err", err)

		select {
		case <-sessionCtx.Done():
			return false
		case <-time.After(backoff):
		}
		backoff = min(backoff*2, retryMaxBackoff)
	}
}

// messageContext 从消息头恢复 trace_id
func messageContext(ctx context.Context, msg *sarama.ConsumerMessage) context.Context {
	for _, h := range msg.Headers {
		if h != nil && string(h.Key) == logger.TraceIDKey {
			return context.WithValue(ctx, logger.TraceIDKey, string(h.Value))
		}
	}
	return ctx
}

func ToPostEvent(msg *sarama.ConsumerMessage) (*PostEvent, error) {
	event := &PostEvent{}
	if err := json.Unmarshal(msg.Value, event); err != nil {
		return nil, err
	}
	return event, nil
}
