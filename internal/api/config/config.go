package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Cfg 全局可访问的配置实例
var Cfg *Config

// LoadConfig 从 ./configs 加载配置并填充到 Cfg，RIPPLE_ 前缀的环境变量优先
func LoadConfig() error {
	return LoadConfigFrom("./configs")
}

func LoadConfigFrom(path string) error {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(path)

	v.SetEnvPrefix("RIPPLE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	Cfg = &cfg

	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "release")
	v.SetDefault("jwt.secret", "ripple-dev-secret")
	v.SetDefault("jwt.issuer", "ripple")
	v.SetDefault("jwt.expire_hours", 24)
	v.SetDefault("database.max_idle", 10)
	v.SetDefault("database.max_open", 100)
	v.SetDefault("database.max_lifetime", 3600)
	v.SetDefault("redis.pool_size", 10)
	v.SetDefault("kafka.post_topic", "ripple-post-events")
	v.SetDefault("kafka.group_id", "ripple-sysbox")
	v.SetDefault("kafka.consumer.session_timeout", 10)
	v.SetDefault("kafka.consumer.heartbeat_interval", 3)
	v.SetDefault("kafka.consumer.rebalance_timeout", 60)
	v.SetDefault("unfurl.enable", true)
	v.SetDefault("unfurl.timeout_ms", 1500)
	v.SetDefault("unfurl.user_agent", "RippleBot/1.0")
	v.SetDefault("job.post_metric_spec", "@every 1m")
	v.SetDefault("logger.level", "info")
}
