package logger

import (
	"context"
	log "log/slog"
	"time"

	"go.mongodb.org/mongo-driver/event"
)

const maxMongoCommandLen = 1000

// NewMongoMonitor 命令明细只在 debug 级别输出，慢命令与失败命令总会记录
func NewMongoMonitor(slowThreshold time.Duration) *event.CommandMonitor {
	return &event.CommandMonitor{
		Started: func(ctx context.Context, evt *event.CommandStartedEvent) {
			if !log.Default().Enabled(ctx, log.LevelDebug) {
				return
			}
			log.DebugContext(ctx, "MongoDB Started",
				log.String("command", evt.CommandName),
				log.String("database", evt.DatabaseName),
				log.Int64("request_id", evt.RequestID),
				log.String("cmd_detail", truncate(evt.Command.String(), maxMongoCommandLen)),
			)
		},
		Succeeded: func(ctx context.Context, evt *event.CommandSucceededEvent) {
			attrs := []any{
				log.String("command", evt.CommandName),
				log.Duration("latency", evt.Duration),
				log.Int64("request_id", evt.RequestID),
			}
			if evt.Duration > slowThreshold {
				log.WarnContext(ctx, "MongoDB Slow", attrs...)
				return
			}
			log.DebugContext(ctx, "MongoDB Success", attrs...)
		},
		Failed: func(ctx context.Context, evt *event.CommandFailedEvent) {
			log.ErrorContext(ctx, "MongoDB Error",
				log.String("command", evt.CommandName),
				log.Duration("latency", evt.Duration),
				log.Int64("request_id", evt.RequestID),
				log.Any("err", evt.Failure),
			)
		},
	}
}
