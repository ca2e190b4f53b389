package kafka

import (
	"Ripple/internal/model"
	"time"
)

type PostEventType string

const (
	EventPostCreated  PostEventType = "post.created"
	EventPostUpdated  PostEventType = "post.updated"
	EventPostDeleted  PostEventType = "post.deleted"
	EventPostLiked    PostEventType = "post.liked"
	EventPostDisliked PostEventType = "post.disliked"
	EventPostReposted PostEventType = "post.reposted"
	EventPostShared   PostEventType = "post.shared"
)

// PostEvent 帖子变更事件。AuthorID 为被操作帖子的作者，ActorID 为操作者
type PostEvent struct {
	Type       PostEventType `json:"type"`
	PostID     int64         `json:"post_id"`
	AuthorID   uint64        `json:"author_id"`
	ActorID    uint64        `json:"actor_id"`
	OccurredAt int64         `json:"occurred_at"`
	Post       *model.Post   `json:"post,omitempty"`
}

func NewPostEvent(eventType PostEventType, actorID uint64, post *model.Post) *PostEvent {
	e := &PostEvent{
		Type:       eventType,
		ActorID:    actorID,
		OccurredAt: time.Now().UnixMilli(),
	}
	if post != nil {
		e.PostID = post.ID
		e.AuthorID = post.AuthorID
		e.Post = post.Clone()
	}
	return e
}
