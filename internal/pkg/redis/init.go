package redis

import (
	"Ripple/internal/api/config"
	"Ripple/internal/pkg/consts"
	"Ripple/internal/pkg/logger"
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/redis/go-redis/v9/maintnotifications"
)

var Rdb *redis.Client

// InitRedis 初始化 Redis 客户端连接
func InitRedis(cfg config.RedisConfig) error {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,

		MaintNotificationsConfig: &maintnotifications.Config{
			Mode: maintnotifications.ModeDisabled,
		},
	})
	rdb.AddHook(logger.NewRedisLogger(100*time.Millisecond, consts.TokenBlacklistKey))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		_ = rdb.Close()
		return err
	}

	Rdb = rdb
	return nil
}

// Enabled 未配置 Redis 时令牌黑名单与指标快照都会跳过
func Enabled() bool {
	return Rdb != nil
}

func Close() error {
	if Rdb == nil {
		return nil
	}
	return Rdb.Close()
}
