package logger

import (
	"Ripple/internal/api/config"
	"io"
	log "log/slog"
	"net"
	"os"
	"strings"
	"time"
)

const ServiceName = "ripple"

var LogWriter io.Writer = os.Stdout

func InitLogger() {
	cfg := config.Cfg.Logger
	level := ParseLevel(cfg.Level)

	hStdout := log.NewJSONHandler(os.Stdout, &log.HandlerOptions{Level: level})

	var finalHandler log.Handler = hStdout
	LogWriter = os.Stdout

	if cfg.RemoteAddr != "" {
		conn, err := net.DialTimeout("tcp", cfg.RemoteAddr, 3*time.Second)
		if err == nil {
			hRemote := log.NewJSONHandler(conn, &log.HandlerOptions{Level: level}).
				WithAttrs([]log.Attr{log.String("service", ServiceName)})

			finalHandler = NewTeeHandler(hStdout, NewRemoteFilterHandler(hRemote, log.LevelWarn))
			LogWriter = io.MultiWriter(os.Stdout, conn)
		} else {
			log.Warn("Failed to connect to log collector, logging to stdout only", "err", err)
		}
	}

	log.SetDefault(log.New(&ContextHandler{finalHandler}))
}

// ParseLevel 无法识别的级别按 info 处理
func ParseLevel(level string) log.Level {
	switch strings.ToLower(level) {
	case "debug":
		return log.LevelDebug
	case "warn", "warning":
		return log.LevelWarn
	case "error":
		return log.LevelError
	default:
		return log.LevelInfo
	}
}
