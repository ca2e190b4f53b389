package consts

const (
	TokenBlacklistKey    = "token:blacklist:"
	PostMetricsKey       = "post:metrics:"
	PostMetricsCountKey  = "post:metrics:count"
	PostMetricsUpdatedAt = "post:metrics:updated_at"
	SysBoxChannelKey     = "sysbox:user:"
)
