package mongo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestSysBoxRepo(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("create fills id and time", func(mt *mtest.T) {
		repo := &sysBoxRepoImpl{col: mt.Coll}
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		msg := &SysBoxModel{ReceiverID: 1, SenderID: 2, Type: 1, TargetID: 9}
		require.NoError(mt, repo.CreateNotification(ctx, msg))
		assert.False(mt, msg.ID.IsZero())
		assert.False(mt, msg.CreatedAt.IsZero())
	})

	mt.Run("list", func(mt *mtest.T) {
		repo := &sysBoxRepoImpl{col: mt.Coll}
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "ripple.sys_box", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: id},
			{Key: "receiver_id", Value: int64(1)},
			{Key: "sender_id", Value: int64(2)},
			{Key: "type", Value: int32(3)},
			{Key: "target_id", Value: int64(9)},
			{Key: "is_read", Value: false},
			{Key: "created_at", Value: primitive.NewDateTimeFromTime(time.Now())},
		}))

		list, err := repo.GetNotificationList(ctx, 1, 10, 0)
		require.NoError(mt, err)
		require.Len(mt, list, 1)
		assert.Equal(mt, id, list[0].ID)
		assert.Equal(mt, int8(3), list[0].Type)
		assert.Equal(mt, int64(9), list[0].TargetID)
	})

	mt.Run("unread count", func(mt *mtest.T) {
		repo := &sysBoxRepoImpl{col: mt.Coll}
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "ripple.sys_box", mtest.FirstBatch, bson.D{
			{Key: "n", Value: int64(4)},
		}))

		n, err := repo.GetUnreadCount(ctx, 1)
		require.NoError(mt, err)
		assert.Equal(mt, int64(4), n)
	})

	mt.Run("mark read", func(mt *mtest.T) {
		repo := &sysBoxRepoImpl{col: mt.Coll}
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 1}),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}, bson.E{Key: "nModified", Value: 0}),
		)

		id := primitive.NewObjectID()
		require.NoError(mt, repo.MarkAsRead(ctx, 1, id))
		assert.ErrorIs(mt, repo.MarkAsRead(ctx, 1, id), mongo.ErrNoDocuments)
	})
}
