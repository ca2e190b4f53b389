package security

import (
	"Ripple/internal/api/config"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	defaultJWTSecret  = "ripple-dev-secret"
	defaultJWTIssuer  = "ripple"
	defaultExpiration = time.Hour * 24
)

// UserClaims 定义了我们 Token 中需要包含的业务信息
type UserClaims struct {
	UserID   uint64 `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// jwtSettings 未加载配置时使用开发默认值
func jwtSettings() (secret []byte, issuer string, expiration time.Duration) {
	secret, issuer, expiration = []byte(defaultJWTSecret), defaultJWTIssuer, defaultExpiration
	if config.Cfg == nil {
		return
	}
	cfg := config.Cfg.JWT
	if cfg.Secret != "" {
		secret = []byte(cfg.Secret)
	}
	if cfg.Issuer != "" {
		issuer = cfg.Issuer
	}
	if cfg.ExpireHours > 0 {
		expiration = time.Duration(cfg.ExpireHours) * time.Hour
	}
	return
}

// TokenLifetime 令牌有效期，注销黑名单沿用该时长
func TokenLifetime() time.Duration {
	_, _, expiration := jwtSettings()
	return expiration
}
