package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

var ErrNotInitialized = errors.New("redis client is not initialized")

// SetWithExpiration 设置键值对并设置过期时间
func SetWithExpiration(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	if Rdb == nil {
		return ErrNotInitialized
	}
	return Rdb.Set(ctx, key, value, expiration).Err()
}

// SetValue 设置键值对
func SetValue(ctx context.Context, key string, value interface{}) error {
	return SetWithExpiration(ctx, key, value, 0)
}

// GetValue 获取字符串类型的值，键不存在时返回空串
func GetValue(ctx context.Context, key string) (string, error) {
	if Rdb == nil {
		return "", ErrNotInitialized
	}
	value, err := Rdb.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", err
	}
	return value, nil
}

// Exists 判断键是否存在
func Exists(ctx context.Context, key string) (bool, error) {
	if Rdb == nil {
		return false, ErrNotInitialized
	}
	n, err := Rdb.Exists(ctx, key).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// HSetBatch 在一个管道中写入多个哈希，并统一设置过期时间
func HSetBatch(ctx context.Context, values map[string]map[string]any, expiration time.Duration) error {
	if Rdb == nil {
		return ErrNotInitialized
	}
	if len(values) == 0 {
		return nil
	}
	pipe := Rdb.TxPipeline()
	for key, fields := range values {
		pipe.HSet(ctx, key, fields)
		if expiration > 0 {
			pipe.Expire(ctx, key, expiration)
		}
	}
	_, err := pipe.Exec(ctx)
	return err
}

// HGetAll 获取哈希的全部字段
func HGetAll(ctx context.Context, key string) (map[string]string, error) {
	if Rdb == nil {
		return nil, ErrNotInitialized
	}
	return Rdb.HGetAll(ctx, key).Result()
}

// Publish 向频道广播一条消息
func Publish(ctx context.Context, channel string, message any) error {
	if Rdb == nil {
		return ErrNotInitialized
	}
	return Rdb.Publish(ctx, channel, message).Err()
}

// Subscribe 返回的订阅需要调用方关闭
func Subscribe(ctx context.Context, channels ...string) (*redis.PubSub, error) {
	if Rdb == nil {
		return nil, ErrNotInitialized
	}
	pubsub := Rdb.Subscribe(ctx, channels...)
	// 等待订阅确认
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, err
	}
	return pubsub, nil
}
