package model

// NewPostID 新帖子的占位 ID，由存储层分配真实 ID
const NewPostID int64 = -1

type PostType string

const (
	PostTypePost   PostType = "post"
	PostTypeRepost PostType = "repost"
)

// Reaction 当前查看者对帖子的态度: 1 点赞, -1 点踩, 0 无
type Reaction int8

const (
	ReactionDisliked Reaction = -1
	ReactionNone     Reaction = 0
	ReactionLiked    Reaction = 1
)

type Post struct {
	ID        int64  `json:"id"`
	AuthorID  uint64 `json:"author_id"`
	Author    string `json:"author"`
	Content   string `json:"content"`
	CreatedAt int64  `json:"created_at"`
	UpdatedAt int64  `json:"updated_at"`

	LikeCount    int `json:"like_count"`
	DislikeCount int `json:"dislike_count"`
	RepostCount  int `json:"repost_count"`
	ShareCount   int `json:"share_count"`
	ViewCount    int `json:"view_count"`

	ReactionByMe Reaction `json:"reaction_by_me"`
	RepostedByMe bool     `json:"reposted_by_me"`
	SharedByMe   bool     `json:"shared_by_me"`

	Type   PostType `json:"type"`
	Source *Post    `json:"source,omitempty"` // 转发时源帖子的快照

	Location    *Location    `json:"location,omitempty"`
	Attachment  *Attachment  `json:"attachment,omitempty"`
	Link        string       `json:"link,omitempty"`
	LinkPreview *LinkPreview `json:"link_preview,omitempty"`
}

type Location struct {
	Address string  `json:"address"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
}

type Attachment struct {
	ID           string `json:"id"`
	Type         string `json:"type"`
	URL          string `json:"url"`
	ThumbnailURL string `json:"thumbnail_url,omitempty"`
}

type LinkPreview struct {
	URL         string `json:"url"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

// PostStats 帖子计数快照，不含查看者相关字段
type PostStats struct {
	PostID       int64
	LikeCount    int
	DislikeCount int
	RepostCount  int
	ShareCount   int
	ViewCount    int
}

// Clone 深拷贝，返回值与原帖子不共享任何指针
func (p *Post) Clone() *Post {
	if p == nil {
		return nil
	}
	c := *p
	c.Source = p.Source.Clone()
	if p.Location != nil {
		loc := *p.Location
		c.Location = &loc
	}
	if p.Attachment != nil {
		att := *p.Attachment
		c.Attachment = &att
	}
	if p.LinkPreview != nil {
		lp := *p.LinkPreview
		c.LinkPreview = &lp
	}
	return &c
}

func (p *Post) Stats() PostStats {
	return PostStats{
		PostID:       p.ID,
		LikeCount:    p.LikeCount,
		DislikeCount: p.DislikeCount,
		RepostCount:  p.RepostCount,
		ShareCount:   p.ShareCount,
		ViewCount:    p.ViewCount,
	}
}
