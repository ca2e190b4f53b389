package config

// Config 配置主体
type Config struct {
	Server ServerConfig `mapstructure:"server"`
	JWT    JWTConfig    `mapstructure:"jwt"`
	DB     DBConfig     `mapstructure:"database"`
	Redis  RedisConfig  `mapstructure:"redis"`
	MinIO  MinIOConfig  `mapstructure:"minio"`
	Mongo  MongoConfig  `mapstructure:"mongo"`
	Kafka  KafkaConfig  `mapstructure:"kafka"`
	Unfurl UnfurlConfig `mapstructure:"unfurl"`
	Job    JobConfig    `mapstructure:"job"`
	Logger LoggerConfig `mapstructure:"logger"`
}

// ServerConfig AllowOrigins 为空时允许任意来源跨域
type ServerConfig struct {
	Port         int      `mapstructure:"port"`
	Mode         string   `mapstructure:"mode"`
	AllowOrigins []string `mapstructure:"allow_origins"`
}

// JWTConfig ExpireHours 同时作为注销黑名单的过期时间
type JWTConfig struct {
	Secret      string `mapstructure:"secret"`
	Issuer      string `mapstructure:"issuer"`
	ExpireHours int    `mapstructure:"expire_hours"`
}

// DBConfig 数据库配置，DSN 为空时用户数据保存在内存中
type DBConfig struct {
	DSN         string `mapstructure:"dsn"`
	MaxIdle     int    `mapstructure:"max_idle"`
	MaxOpen     int    `mapstructure:"max_open"`
	MaxLifetime int    `mapstructure:"max_lifetime"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

// MinIOConfig MinIO配置
type MinIOConfig struct {
	InternalEndpoint string `mapstructure:"internal_endpoint"`
	ExternalEndpoint string `mapstructure:"external_endpoint"`
	AccessKey        string `mapstructure:"access_key"`
	SecretKey        string `mapstructure:"secret_key"`
	MainBucket       string `mapstructure:"main_bucket"`
	InternalUseSSL   bool   `mapstructure:"internal_use_ssl"`
	UsePublicLink    bool   `mapstructure:"use_public_link"`
}

type MongoConfig struct {
	URL      string `mapstructure:"url"`
	Database string `mapstructure:"database"`
}

// KafkaConfig Brokers 为空时不发布帖子事件，通知由服务直接写入
type KafkaConfig struct {
	Brokers   []string       `mapstructure:"brokers"`
	PostTopic string         `mapstructure:"post_topic"`
	GroupID   string         `mapstructure:"group_id"`
	Sasl      SaslConfig     `mapstructure:"sasl"`
	Consumer  ConsumerConfig `mapstructure:"consumer"`
}

type SaslConfig struct {
	Enable   bool   `mapstructure:"enable"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

type ConsumerConfig struct {
	SessionTimeout    int `mapstructure:"session_timeout"`
	HeartbeatInterval int `mapstructure:"heartbeat_interval"`
	RebalanceTimeout  int `mapstructure:"rebalance_timeout"`
}

type UnfurlConfig struct {
	Enable    bool   `mapstructure:"enable"`
	TimeoutMs int    `mapstructure:"timeout_ms"`
	UserAgent string `mapstructure:"user_agent"`
}

type JobConfig struct {
	PostMetricSpec string `mapstructure:"post_metric_spec"`
}

// LoggerConfig RemoteAddr 非空时日志会额外写往 TCP 日志收集端
type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	RemoteAddr string `mapstructure:"remote_addr"`
}
