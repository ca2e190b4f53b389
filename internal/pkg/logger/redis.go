package logger

import (
	"context"
	"errors"
	"fmt"
	log "log/slog"
	"net"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisLoggerHook 记录失败与慢命令，敏感 key 的值不落日志
type RedisLoggerHook struct {
	slowThreshold   time.Duration
	protectPrefixes []string
}

func NewRedisLogger(slowThreshold time.Duration, protectPrefixes ...string) *RedisLoggerHook {
	return &RedisLoggerHook{
		slowThreshold:   slowThreshold,
		protectPrefixes: protectPrefixes,
	}
}

func (s *RedisLoggerHook) DialHook(next redis.DialHook) redis.DialHook {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		start := time.Now()
		conn, err := next(ctx, network, addr)
		if err != nil {
			log.ErrorContext(ctx, "Redis Dial Error",
				log.String("addr", addr),
				log.Duration("latency", time.Since(start)),
				log.Any("err", err),
			)
		}
		return conn, err
	}
}

func (s *RedisLoggerHook) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		start := time.Now()
		err := next(ctx, cmd)
		elapsed := time.Since(start)

		if err != nil && isExpectedRedisError(cmd, err) {
			return err
		}
		if err == nil && elapsed <= s.slowThreshold {
			return nil
		}

		attrs := []any{
			log.String("command", cmd.Name()),
			log.String("args", s.formatArgs(cmd)),
			log.Duration("latency", elapsed),
		}
		if err != nil {
			log.ErrorContext(ctx, "Redis Error", append(attrs, log.Any("err", err))...)
		} else {
			log.WarnContext(ctx, "Redis Slow", attrs...)
		}
		return err
	}
}

func (s *RedisLoggerHook) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []redis.Cmder) error {
		start := time.Now()
		err := next(ctx, cmds)
		elapsed := time.Since(start)

		if err == nil && elapsed <= s.slowThreshold {
			return nil
		}

		names := make([]string, 0, len(cmds))
		for _, cmd := range cmds {
			names = append(names, cmd.Name())
		}
		attrs := []any{
			log.Int("cmd_count", len(cmds)),
			log.String("commands", strings.Join(names, ",")),
			log.Duration("latency", elapsed),
		}
		if err != nil {
			log.ErrorContext(ctx, "Redis Pipeline Error", append(attrs, log.Any("err", err))...)
		} else {
			log.WarnContext(ctx, "Redis Pipeline Slow", attrs...)
		}
		return err
	}
}

// formatArgs 只保留命令与 key，受保护的 key 与认证命令整体隐藏
func (s *RedisLoggerHook) formatArgs(cmd redis.Cmder) string {
	name := cmd.Name()
	if name == "auth" || name == "hello" {
		return "[PROTECTED]"
	}

	args := cmd.Args()
	if len(args) < 2 {
		return fmt.Sprint(args)
	}
	key := fmt.Sprint(args[1])
	for _, prefix := range s.protectPrefixes {
		if strings.HasPrefix(key, prefix) {
			return fmt.Sprintf("[%s %s*** PROTECTED]", name, prefix)
		}
	}
	return fmt.Sprint(args)
}

func isExpectedRedisError(cmd redis.Cmder, err error) bool {
	if errors.Is(err, redis.Nil) {
		return true
	}
	return cmd.Name() == "client" && strings.Contains(err.Error(), "setinfo")
}
