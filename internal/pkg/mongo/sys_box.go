package mongo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SysBoxModel 帖子互动通知，接收者为帖子作者
type SysBoxModel struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	ReceiverID uint64             `bson:"receiver_id"`
	SenderID   uint64             `bson:"sender_id"` // 0 为系统
	Type       int8               `bson:"type"`      // consts.SysBoxType*
	TargetID   int64              `bson:"target_id"`
	Content    string             `bson:"content"`
	Payload    map[string]any     `bson:"payload,omitempty"`
	IsRead     bool               `bson:"is_read"`
	CreatedAt  time.Time          `bson:"created_at"`
}
