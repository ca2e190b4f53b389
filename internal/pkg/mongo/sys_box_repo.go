package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const SysBoxCollection = "sys_box"

type SysBoxRepo interface {
	CreateNotification(ctx context.Context, msg *SysBoxModel) error
	GetNotificationList(ctx context.Context, userID uint64, limit, offset int64) ([]*SysBoxModel, error)
	MarkAsRead(ctx context.Context, userID uint64, id primitive.ObjectID) error
	MarkAllAsRead(ctx context.Context, userID uint64) error
	GetUnreadCount(ctx context.Context, userID uint64) (int64, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*SysBoxModel, error)
}

type sysBoxRepoImpl struct {
	col *mongo.Collection
}

func NewSysBoxRepo(db *mongo.Database) SysBoxRepo {
	return &sysBoxRepoImpl{col: db.Collection(SysBoxCollection)}
}

// EnsureSysBoxIndexes 列表查询与未读统计都按接收者过滤
func EnsureSysBoxIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(SysBoxCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "receiver_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "receiver_id", Value: 1}, {Key: "is_read", Value: 1}}},
	})
	return err
}

func unreadOf(userID uint64) bson.M {
	return bson.M{"receiver_id": userID, "is_read": false}
}

var setRead = bson.M{"$set": bson.M{"is_read": true}}

func (s *sysBoxRepoImpl) CreateNotification(ctx context.Context, msg *SysBoxModel) error {
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now().UTC()
	}
	res, err := s.col.InsertOne(ctx, msg)
	if err != nil {
		return err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		msg.ID = id
	}
	return nil
}

// GetNotificationList 按时间倒序分页
func (s *sysBoxRepoImpl) GetNotificationList(ctx context.Context, userID uint64, limit, offset int64) ([]*SysBoxModel, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(offset).
		SetLimit(limit)

	cursor, err := s.col.Find(ctx, bson.M{"receiver_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer func() { _ = cursor.Close(ctx) }()

	list := make([]*SysBoxModel, 0, limit)
	if err = cursor.All(ctx, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// MarkAsRead 不属于该用户的通知视为不存在
func (s *sysBoxRepoImpl) MarkAsRead(ctx context.Context, userID uint64, id primitive.ObjectID) error {
	res, err := s.col.UpdateOne(ctx, bson.M{"_id": id, "receiver_id": userID}, setRead)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (s *sysBoxRepoImpl) MarkAllAsRead(ctx context.Context, userID uint64) error {
	_, err := s.col.UpdateMany(ctx, unreadOf(userID), setRead)
	return err
}

func (s *sysBoxRepoImpl) GetUnreadCount(ctx context.Context, userID uint64) (int64, error) {
	return s.col.CountDocuments(ctx, unreadOf(userID))
}

func (s *sysBoxRepoImpl) GetByID(ctx context.Context, id primitive.ObjectID) (*SysBoxModel, error) {
	msg := &SysBoxModel{}
	if err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(msg); err != nil {
		return nil, err
	}
	return msg, nil
}
