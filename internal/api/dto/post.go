package dto

// PostDTO 帖子
type PostDTO struct {
	ID        int64  `json:"id"`
	AuthorID  uint64 `json:"author_id"`
	Author    string `json:"author"`
	Content   string `json:"content"`
	CreatedAt int64  `json:"created"`
	UpdatedAt int64  `json:"updated,omitempty"`

	LikeCount    int  `json:"like_count"`
	DislikeCount int  `json:"dislike_count"`
	RepostCount  int  `json:"repost_count"`
	ShareCount   int  `json:"share_count"`
	ViewCount    int  `json:"view_count"`
	ReactionByMe int8 `json:"reaction_by_me"` // 1-赞, -1-踩, 0-无
	RepostedByMe bool `json:"reposted_by_me"`
	SharedByMe   bool `json:"shared_by_me"`

	Type        string          `json:"type"`
	Source      *PostDTO        `json:"source,omitempty"`
	Location    *LocationDTO    `json:"location,omitempty"`
	Attachment  *AttachmentDTO  `json:"attachment,omitempty"`
	Link        string          `json:"link,omitempty"`
	LinkPreview *LinkPreviewDTO `json:"link_preview,omitempty"`
}

type LocationDTO struct {
	Address string  `json:"address" validate:"max=255"`
	Lat     float64 `json:"lat" validate:"min=-90,max=90"`
	Lng     float64 `json:"lng" validate:"min=-180,max=180"`
}

type LinkPreviewDTO struct {
	URL         string `json:"url"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

// PostBaseDTO 帖子 - 新增或修改
type PostBaseDTO struct {
	Content    string         `json:"content" binding:"required" validate:"min=1,max=2000"`
	Location   *LocationDTO   `json:"location"`
	Attachment *AttachmentDTO `json:"attachment"`
	Link       string         `json:"link" validate:"omitempty,url,max=1024"`
}

// RepostDTO 转发附言可以为空
type RepostDTO struct {
	Content string `json:"content" validate:"max=2000"`
}

// PostMetricDTO 定时任务写入的计数快照，SnapshotAt 为毫秒时间戳
type PostMetricDTO struct {
	PostID     int64 `json:"post_id"`
	Likes      int   `json:"likes"`
	Dislikes   int   `json:"dislikes"`
	Reposts    int   `json:"reposts"`
	Shares     int   `json:"shares"`
	Views      int   `json:"views"`
	SnapshotAt int64 `json:"snapshot_at"`
}
