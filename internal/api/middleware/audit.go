package middleware

import (
	"bytes"
	"io"
	log "log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

const maxAuditBody = 16 << 10

// 登录注册的请求带密码，响应带令牌
var secretField = regexp.MustCompile(`("(?:password|token)"\s*:\s*)"(?:[^"\\]|\\.)*"`)

type auditWriter struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *auditWriter) Write(b []byte) (int, error) {
	if room := maxAuditBody - w.body.Len(); room > 0 {
		w.body.Write(b[:min(len(b), room)])
	}
	return w.ResponseWriter.Write(b)
}

func (w *auditWriter) Flush() {
	if flusher, ok := w.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

// AuditMiddleware 每个请求输出一条审计日志，敏感字段脱敏，上传内容不记录
func AuditMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		reqBody := auditRequestBody(c.Request)

		w := &auditWriter{ResponseWriter: c.Writer}
		c.Writer = w

		c.Next()

		query, err := url.QueryUnescape(c.Request.URL.RawQuery)
		if err != nil {
			query = c.Request.URL.RawQuery
		}
		log.InfoContext(c.Request.Context(), "Audit",
			log.String("method", c.Request.Method),
			log.String("path", c.Request.URL.Path),
			log.String("query", query),
			log.String("req_body", reqBody),
			log.Int("status", w.Status()),
			log.Duration("latency", time.Since(start)),
			log.String("res_body", RedactSecrets(w.body.String())),
		)
	}
}

func auditRequestBody(r *http.Request) string {
	if r.Body == nil || r.Body == http.NoBody {
		return ""
	}
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/") {
		return "[multipart]"
	}

	body, _ := io.ReadAll(r.Body)
	r.Body = io.NopCloser(bytes.NewReader(body))
	if len(body) > maxAuditBody {
		body = body[:maxAuditBody]
	}
	return RedactSecrets(string(body))
}

func RedactSecrets(body string) string {
	return secretField.ReplaceAllString(body, `$1"***"`)
}
