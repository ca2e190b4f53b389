package api

import (
	"Ripple/internal/api/handler"
	"Ripple/internal/api/middleware"
)

// HandlersGroup 封装了所有已初始化的 Handler 实例
type HandlersGroup struct {
	UserHandler       *handler.UserHandler
	PostHandler       *handler.PostHandler
	PostMetricHandler *handler.PostMetricHandler
	MediaHandler      *handler.MediaHandler
	SysBoxHandler     *handler.SysBoxHandler
	SysBoxPushHandler *handler.SysBoxPushHandler
	TokenChecker      middleware.TokenChecker
	AllowOrigins      []string
}
