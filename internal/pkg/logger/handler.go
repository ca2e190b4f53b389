package logger

import (
	"context"
	"errors"
	log "log/slog"
)

// TeeHandler 将日志分发到多个 Handler，单个 Handler 出错不影响其余
type TeeHandler []log.Handler

func NewTeeHandler(handlers ...log.Handler) TeeHandler {
	return handlers
}

func (t TeeHandler) Enabled(ctx context.Context, level log.Level) bool {
	for _, h := range t {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (t TeeHandler) Handle(ctx context.Context, r log.Record) error {
	var errs error
	for _, h := range t {
		if h.Enabled(ctx, r.Level) {
			errs = errors.Join(errs, h.Handle(ctx, r.Clone()))
		}
	}
	return errs
}

func (t TeeHandler) WithAttrs(attrs []log.Attr) log.Handler {
	out := make(TeeHandler, len(t))
	for i, h := range t {
		out[i] = h.WithAttrs(attrs)
	}
	return out
}

func (t TeeHandler) WithGroup(name string) log.Handler {
	out := make(TeeHandler, len(t))
	for i, h := range t {
		out[i] = h.WithGroup(name)
	}
	return out
}

// RemoteFilterHandler 只上报带 trace_id 的请求日志，以及不低于 minLevel 的日志
type RemoteFilterHandler struct {
	next     log.Handler
	minLevel log.Level
	traced   bool
}

func NewRemoteFilterHandler(next log.Handler, minLevel log.Level) *RemoteFilterHandler {
	return &RemoteFilterHandler{next: next, minLevel: minLevel}
}

func (s *RemoteFilterHandler) Enabled(ctx context.Context, level log.Level) bool {
	return s.next.Enabled(ctx, level)
}

func (s *RemoteFilterHandler) Handle(ctx context.Context, r log.Record) error {
	if s.traced || r.Level >= s.minLevel || hasTraceID(r) {
		return s.next.Handle(ctx, r)
	}
	return nil
}

func (s *RemoteFilterHandler) WithAttrs(attrs []log.Attr) log.Handler {
	traced := s.traced
	for _, a := range attrs {
		if a.Key == TraceIDKey && a.Value.String() != "" {
			traced = true
		}
	}
	return &RemoteFilterHandler{next: s.next.WithAttrs(attrs), minLevel: s.minLevel, traced: traced}
}

func (s *RemoteFilterHandler) WithGroup(name string) log.Handler {
	return &RemoteFilterHandler{next: s.next.WithGroup(name), minLevel: s.minLevel, traced: s.traced}
}

func hasTraceID(r log.Record) bool {
	found := false
	r.Attrs(func(a log.Attr) bool {
		if a.Key == TraceIDKey && a.Value.String() != "" {
			found = true
			return false
		}
		return true
	})
	return found
}
