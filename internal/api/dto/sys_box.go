package dto

// SysBoxDTO 系统通知返回对象
type SysBoxDTO struct {
	ID         string         `json:"id"`
	SenderID   uint64         `json:"sender_id"`
	SenderName string         `json:"sender_name"`
	Type       int8           `json:"type"`      // 1-点赞, 2-点踩, 3-转发, 4-分享
	TargetID   int64          `json:"target_id"` // 关联的帖子ID
	Content    string         `json:"content"`   // 预览内容
	Payload    map[string]any `json:"payload"`
	IsRead     bool           `json:"is_read"`
	CreatedAt  string         `json:"created_at"`
}

// SysBoxUnreadDTO 未读数返回
type SysBoxUnreadDTO struct {
	UnreadCount int64 `json:"unread_count"`
}

type SysBoxReadDTO struct {
	ID string `json:"id" binding:"required"`
}

// PageQueryDTO 通知分页参数
type PageQueryDTO struct {
	Page     int `form:"page" validate:"min=1"`
	PageSize int `form:"page_size" validate:"min=1,max=100"`
}
