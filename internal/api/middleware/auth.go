package middleware

import (
	"Ripple/internal/pkg/logger"
	"Ripple/internal/pkg/response"
	"Ripple/internal/pkg/security"
	"context"
	log "log/slog"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	ContextUserID   = logger.UserIDKey
	ContextUsername = "username"
	ContextToken    = "token"
)

// TokenChecker 判断令牌是否已注销
type TokenChecker interface {
	IsTokenRevoked(ctx context.Context, token string) (bool, error)
}

// AuthMiddleware 负责验证 JWT 并将用户身份信息注入 Context
func AuthMiddleware(checker TokenChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			response.Fail(c, response.Unauthorized, "Token 缺失或格式错误")
			c.Abort()
			return
		}

		claims, err := security.ValidateToken(tokenString)
		if err != nil {
			response.Fail(c, response.Unauthorized, "Token 无效或已过期")
			c.Abort()
			return
		}

		revoked, err := checker.IsTokenRevoked(c.Request.Context(), tokenString)
		if err != nil {
			log.ErrorContext(c.Request.Context(), "check token blacklist error", "err", err)
			response.Fail(c, response.InternalServerError, "未知错误")
			c.Abort()
			return
		}
		if revoked {
			response.Fail(c, response.Unauthorized, "Token 无效或已过期")
			c.Abort()
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUsername, claims.Username)
		c.Set(ContextToken, tokenString)

		newCtx := context.WithValue(c.Request.Context(), logger.UserIDKey, claims.UserID)
		c.Request = c.Request.WithContext(newCtx)

		c.Next()
	}
}

// bearerToken WebSocket 握手时令牌可放在 token 查询参数中
func bearerToken(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); header != "" {
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok {
			return ""
		}
		return token
	}
	if strings.EqualFold(c.GetHeader("Upgrade"), "websocket") {
		return c.Query("token")
	}
	return ""
}
