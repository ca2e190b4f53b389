package handler

import (
	"Ripple/internal/pkg/consts"
	"Ripple/internal/pkg/redis"
	"Ripple/internal/pkg/response"
	"Ripple/internal/service"
	"errors"
	log "log/slog"
	"net/http"
	"slices"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	pushWriteWait    = 10 * time.Second
	pushPingInterval = 30 * time.Second
)

// SysBoxPushHandler 把新通知实时推送给在线用户
type SysBoxPushHandler struct {
	upgrader websocket.Upgrader
}

func NewSysBoxPushHandler(allowOrigins []string) *SysBoxPushHandler {
	return &SysBoxPushHandler{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return originAllowed(allowOrigins, r.Header.Get("Origin"))
			},
		},
	}
}

func (h *SysBoxPushHandler) Connect(c *gin.Context) {
	ctx := c.Request.Context()
	userID := currentUser(c)

	// 订阅须在协议升级前完成
	pubsub, err := redis.Subscribe(ctx, consts.SysBoxChannelKey+strconv.FormatUint(userID, 10))
	if err != nil {
		if errors.Is(err, redis.ErrNotInitialized) {
			response.Error(c, service.ErrPushDisabled)
			return
		}
		response.Error(c, err)
		return
	}
	defer func() { _ = pubsub.Close() }()

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.WarnContext(ctx, "WS 协议升级失败", "err", err)
		return
	}
	defer func() { _ = conn.Close() }()
	log.InfoContext(ctx, "sys box push connected")

	// 读循环只用来感知客户端断开
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(pushPingInterval)
	defer ticker.Stop()
	messages := pubsub.Channel()
	for {
		select {
		case msg, ok := <-messages:
			if !ok {
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(pushWriteWait))
			if err = conn.WriteMessage(websocket.TextMessage, []byte(msg.Payload)); err != nil {
				log.WarnContext(ctx, "WS 推送失败", "err", err)
				return
			}
		case <-ticker.C:
			if err = conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(pushWriteWait)); err != nil {
				return
			}
		case <-closed:
			log.InfoContext(ctx, "sys box push disconnected")
			return
		}
	}
}

func originAllowed(allowOrigins []string, origin string) bool {
	return origin == "" || len(allowOrigins) == 0 || slices.Contains(allowOrigins, origin)
}
