package service

import (
	"Ripple/internal/model"
	"Ripple/internal/pkg/kafka"
	"Ripple/internal/pkg/mongo"
	"context"
	"io"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type mockPublisher struct {
	mock.Mock
	enabled bool
}

func (m *mockPublisher) Publish(ctx context.Context, event *kafka.PostEvent) error {
	return m.Called(ctx, event).Error(0)
}

func (m *mockPublisher) Enabled() bool { return m.enabled }

func (m *mockPublisher) Close() error { return nil }

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) HandlePostEvent(ctx context.Context, event *kafka.PostEvent) error {
	return m.Called(ctx, event).Error(0)
}

type mockFetcher struct {
	mock.Mock
}

func (m *mockFetcher) Fetch(ctx context.Context, link string) (*model.LinkPreview, error) {
	args := m.Called(ctx, link)
	preview, _ := args.Get(0).(*model.LinkPreview)
	return preview, args.Error(1)
}

type mockFileStore struct {
	mock.Mock
	uploaded map[string][]byte
}

func (m *mockFileStore) Upload(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error) {
	data, _ := io.ReadAll(reader)
	if m.uploaded == nil {
		m.uploaded = make(map[string][]byte)
	}
	m.uploaded[objectName] = data
	args := m.Called(ctx, objectName, size, contentType)
	return args.String(0), args.Error(1)
}

func (m *mockFileStore) Delete(ctx context.Context, objectName string) error {
	return m.Called(ctx, objectName).Error(0)
}

func (m *mockFileStore) URL(objectName string) string {
	return "https://cdn.test/ripple/" + objectName
}

type mockSysBoxRepo struct {
	mock.Mock
}

func (m *mockSysBoxRepo) CreateNotification(ctx context.Context, msg *mongo.SysBoxModel) error {
	return m.Called(ctx, msg).Error(0)
}

func (m *mockSysBoxRepo) GetNotificationList(ctx context.Context, userID uint64, limit, offset int64) ([]*mongo.SysBoxModel, error) {
	args := m.Called(ctx, userID, limit, offset)
	list, _ := args.Get(0).([]*mongo.SysBoxModel)
	return list, args.Error(1)
}

func (m *mockSysBoxRepo) MarkAsRead(ctx context.Context, userID uint64, id primitive.ObjectID) error {
	return m.Called(ctx, userID, id).Error(0)
}

func (m *mockSysBoxRepo) MarkAllAsRead(ctx context.Context, userID uint64) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *mockSysBoxRepo) GetUnreadCount(ctx context.Context, userID uint64) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockSysBoxRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*mongo.SysBoxModel, error) {
	args := m.Called(ctx, id)
	msg, _ := args.Get(0).(*mongo.SysBoxModel)
	return msg, args.Error(1)
}
