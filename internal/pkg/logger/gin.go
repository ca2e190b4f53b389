package logger

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
)

type accessLog struct {
	Time     string `json:"time"`
	Level    string `json:"level"`
	Msg      string `json:"msg"`
	TraceID  string `json:"trace_id,omitempty"`
	UserID   uint64 `json:"user_id,omitempty"`
	Service  string `json:"service"`
	Method   string `json:"method"`
	Path     string `json:"path"`
	Status   int    `json:"status"`
	Latency  string `json:"latency"`
	ClientIP string `json:"client_ip"`
	Error    string `json:"error,omitempty"`
}

// SetupGin 访问日志与 panic 恢复，健康检查不记录
func SetupGin(r *gin.Engine) {
	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		Output:    LogWriter,
		SkipPaths: []string{"/api/v1/ping"},
		Formatter: formatAccessLog,
	}))

	r.Use(gin.Recovery())
}

func formatAccessLog(p gin.LogFormatterParams) string {
	entry := accessLog{
		Time:     p.TimeStamp.Format(time.RFC3339),
		Level:    "INFO",
		Msg:      "GIN_ACCESS",
		Service:  ServiceName,
		Method:   p.Method,
		Path:     p.Path,
		Status:   p.StatusCode,
		Latency:  p.Latency.String(),
		ClientIP: p.ClientIP,
		Error:    strings.TrimSpace(p.ErrorMessage),
	}
	if p.StatusCode >= 500 {
		entry.Level = "ERROR"
	}

	if id, ok := p.Keys[TraceIDKey].(string); ok {
		entry.TraceID = id
	}
	if entry.TraceID == "" && p.Request != nil {
		entry.TraceID, _ = p.Request.Context().Value(TraceIDKey).(string)
	}
	if uid, ok := p.Keys[UserIDKey].(uint64); ok {
		entry.UserID = uid
	}

	line, err := json.Marshal(entry)
	if err != nil {
		return ""
	}
	return string(line) + "\n"
}
