package logger

import (
	"bytes"
	"io"
	log "log/slog"
	"net/http"
	"time"
)

const bodyLogLimit = 512

// HTTPTransport 记录对外 HTTP 请求的耗时与状态，慢请求以 Warn 级别输出
type HTTPTransport struct {
	Transport http.RoundTripper
	Slow      time.Duration
}

func NewHTTPTransport(next http.RoundTripper) *HTTPTransport {
	if next == nil {
		next = http.DefaultTransport
	}
	return &HTTPTransport{Transport: next, Slow: 500 * time.Millisecond}
}

func (t *HTTPTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := t.Transport.RoundTrip(req)
	elapsed := time.Since(start)

	fields := []any{
		log.String("method", req.Method),
		log.String("url", req.URL.String()),
		log.Duration("latency", elapsed),
	}

	if err != nil {
		log.ErrorContext(req.Context(), "HTTP_OUT_ERROR", append(fields, log.Any("err", err))...)
		return nil, err
	}

	fields = append(fields, log.Int("status", resp.StatusCode))
	if resp.StatusCode >= http.StatusBadRequest && resp.Body != nil {
		body, _ := io.ReadAll(resp.Body)
		resp.Body = io.NopCloser(bytes.NewBuffer(body))
		fields = append(fields, log.String("res_body", truncate(string(body), bodyLogLimit)))
	}

	if elapsed > t.Slow {
		log.WarnContext(req.Context(), "HTTP_OUT_SLOW", fields...)
	} else {
		log.InfoContext(req.Context(), "HTTP_OUT", fields...)
	}

	return resp, nil
}
