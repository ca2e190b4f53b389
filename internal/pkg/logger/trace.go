package logger

import (
	"context"
	log "log/slog"
	"unicode/utf8"
)

const (
	TraceIDKey = "trace_id"
	UserIDKey  = "user_id"
)

// ContextHandler 从 ctx 中取出 trace_id 与当前登录用户写入每条日志
type ContextHandler struct {
	log.Handler
}

func (h *ContextHandler) Handle(ctx context.Context, r log.Record) error {
	if ctx == nil {
		return h.Handler.Handle(ctx, r)
	}
	if traceID, ok := ctx.Value(TraceIDKey).(string); ok && traceID != "" {
		r.AddAttrs(log.String(TraceIDKey, traceID))
	}
	if userID, ok := ctx.Value(UserIDKey).(uint64); ok && userID != 0 {
		r.AddAttrs(log.Uint64(UserIDKey, userID))
	}
	return h.Handler.Handle(ctx, r)
}

func (h *ContextHandler) WithAttrs(attrs []log.Attr) log.Handler {
	return &ContextHandler{h.Handler.WithAttrs(attrs)}
}

func (h *ContextHandler) WithGroup(name string) log.Handler {
	return &ContextHandler{h.Handler.WithGroup(name)}
}

// truncate 按字节上限截断，切点落在字符边界上
func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "...[truncated]"
}
