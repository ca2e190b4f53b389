package service

import (
	"Ripple/internal/api/dto"
	"Ripple/internal/model"
	"Ripple/internal/pkg/kafka"
	"Ripple/internal/repository"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type postFixture struct {
	svc       *postServiceImpl
	repo      repository.PostRepo
	notifier  *mockNotifier
	publisher *mockPublisher
	fetcher   *mockFetcher
	alice     *model.User
	bob       *model.User
}

func newPostFixture(t *testing.T, kafkaEnabled bool) *postFixture {
	t.Helper()
	ctx := context.Background()

	users := repository.NewUserRepoMemory()
	alice := &model.User{Username: "alice", Password: "x"}
	bob := &model.User{Username: "bob", Password: "x"}
	require.NoError(t, users.CreateUser(ctx, alice))
	require.NoError(t, users.CreateUser(ctx, bob))

	f := &postFixture{
		repo:      repository.NewPostRepository(),
		notifier:  &mockNotifier{},
		publisher: &mockPublisher{enabled: kafkaEnabled},
		fetcher:   &mockFetcher{},
		alice:     alice,
		bob:       bob,
	}
	svc := NewPostService(f.repo, users, f.publisher, f.notifier, f.fetcher).(*postServiceImpl)
	svc.async = func(fn func()) { fn() }
	f.svc = svc
	return f
}

func eventOf(t kafka.PostEventType) any {
	return mock.MatchedBy(func(e *kafka.PostEvent) bool { return e.Type == t })
}

func TestPostService_CreatePost(t *testing.T) {
	f := newPostFixture(t, false)
	ctx := context.Background()

	f.fetcher.On("Fetch", mock.Anything, "https://example.com").
		Return(&model.LinkPreview{URL: "https://example.com", Title: "Example"}, nil).Once()
	f.notifier.On("HandlePostEvent", mock.Anything, eventOf(kafka.EventPostCreated)).Return(nil).Once()

	post, err := f.svc.CreatePost(ctx, f.alice.ID, &dto.PostBaseDTO{
		Content:  "hello",
		Link:     "https://example.com",
		Location: &dto.LocationDTO{Address: "Berlin", Lat: 52.5, Lng: 13.4},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), post.ID)
	assert.Equal(t, f.alice.ID, post.AuthorID)
	assert.Equal(t, "alice", post.Author)
	assert.Equal(t, "post", post.Type)
	assert.NotZero(t, post.CreatedAt)
	require.NotNil(t, post.LinkPreview)
	assert.Equal(t, "Example", post.LinkPreview.Title)
	require.NotNil(t, post.Location)
	assert.Equal(t, "Berlin", post.Location.Address)

	f.fetcher.AssertExpectations(t)
	f.notifier.AssertExpectations(t)
}

func TestPostService_CreatePost_PreviewFailureIgnored(t *testing.T) {
	f := newPostFixture(t, false)
	f.fetcher.On("Fetch", mock.Anything, "https://down.example").Return(nil, errors.New("timeout"))
	f.notifier.On("HandlePostEvent", mock.Anything, mock.Anything).Return(nil)

	post, err := f.svc.CreatePost(context.Background(), f.alice.ID, &dto.PostBaseDTO{
		Content: "hello",
		Link:    "https://down.example",
	})
	require.NoError(t, err)
	assert.Nil(t, post.LinkPreview)
	assert.Equal(t, "https://down.example", post.Link)
}

func TestPostService_CreatePost_UnknownUser(t *testing.T) {
	f := newPostFixture(t, false)
	_, err := f.svc.CreatePost(context.Background(), 999, &dto.PostBaseDTO{Content: "x"})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestPostService_UpdatePost(t *testing.T) {
	f := newPostFixture(t, false)
	ctx := context.Background()
	f.notifier.On("HandlePostEvent", mock.Anything, mock.Anything).Return(nil)

	created, err := f.svc.CreatePost(ctx, f.alice.ID, &dto.PostBaseDTO{Content: "v1"})
	require.NoError(t, err)
	_, err = f.svc.LikePost(ctx, f.bob.ID, created.ID)
	require.NoError(t, err)

	t.Run("author edits", func(t *testing.T) {
		updated, err := f.svc.UpdatePost(ctx, f.alice.ID, created.ID, &dto.PostBaseDTO{Content: "v2"})
		require.NoError(t, err)
		assert.Equal(t, "v2", updated.Content)
		assert.Equal(t, 1, updated.LikeCount)
		assert.NotZero(t, updated.UpdatedAt)
		assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	})

	t.Run("other user is forbidden", func(t *testing.T) {
		_, err := f.svc.UpdatePost(ctx, f.bob.ID, created.ID, &dto.PostBaseDTO{Content: "hijack"})
		assert.ErrorIs(t, err, ErrPostForbidden)

		post, err := f.repo.Peek(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "v2", post.Content)
	})

	t.Run("missing post", func(t *testing.T) {
		_, err := f.svc.UpdatePost(ctx, f.alice.ID, 404, &dto.PostBaseDTO{Content: "x"})
		assert.ErrorIs(t, err, ErrPostNotFound)
	})
}

func TestPostService_DeletePost(t *testing.T) {
	f := newPostFixture(t, false)
	ctx := context.Background()
	f.notifier.On("HandlePostEvent", mock.Anything, mock.Anything).Return(nil)

	created, err := f.svc.CreatePost(ctx, f.alice.ID, &dto.PostBaseDTO{Content: "bye"})
	require.NoError(t, err)

	_, err = f.svc.DeletePost(ctx, f.bob.ID, created.ID)
	assert.ErrorIs(t, err, ErrPostForbidden)

	deleted, err := f.svc.DeletePost(ctx, f.alice.ID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "bye", deleted.Content)

	_, err = f.svc.GetByID(ctx, created.ID, f.alice.ID)
	assert.ErrorIs(t, err, ErrPostNotFound)

	_, err = f.svc.DeletePost(ctx, f.alice.ID, created.ID)
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestPostService_Reactions(t *testing.T) {
	f := newPostFixture(t, false)
	ctx := context.Background()
	f.notifier.On("HandlePostEvent", mock.Anything, eventOf(kafka.EventPostCreated)).Return(nil)

	created, err := f.svc.CreatePost(ctx, f.alice.ID, &dto.PostBaseDTO{Content: "react"})
	require.NoError(t, err)

	f.notifier.On("HandlePostEvent", mock.Anything, eventOf(kafka.EventPostLiked)).Return(nil).Once()
	liked, err := f.svc.LikePost(ctx, f.bob.ID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, liked.LikeCount)
	assert.Equal(t, int8(1), liked.ReactionByMe)

	// 再次点赞为取消，不产生事件
	unliked, err := f.svc.LikePost(ctx, f.bob.ID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, unliked.LikeCount)
	assert.Equal(t, int8(0), unliked.ReactionByMe)

	f.notifier.On("HandlePostEvent", mock.Anything, eventOf(kafka.EventPostDisliked)).Return(nil).Once()
	disliked, err := f.svc.DislikePost(ctx, f.bob.ID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, disliked.DislikeCount)
	assert.Equal(t, int8(-1), disliked.ReactionByMe)

	_, err = f.svc.LikePost(ctx, f.bob.ID, 404)
	assert.ErrorIs(t, err, ErrPostNotFound)

	f.notifier.AssertExpectations(t)
	f.notifier.AssertNumberOfCalls(t, "HandlePostEvent", 3)
}

func TestPostService_RepostAndShare(t *testing.T) {
	f := newPostFixture(t, false)
	ctx := context.Background()
	f.notifier.On("HandlePostEvent", mock.Anything, mock.Anything).Return(nil)

	source, err := f.svc.CreatePost(ctx, f.alice.ID, &dto.PostBaseDTO{Content: "origin"})
	require.NoError(t, err)

	repost, err := f.svc.RepostPost(ctx, f.bob.ID, source.ID, &dto.RepostDTO{Content: "look"})
	require.NoError(t, err)
	assert.Equal(t, "repost", repost.Type)
	assert.Equal(t, "bob", repost.Author)
	require.NotNil(t, repost.Source)
	assert.Equal(t, source.ID, repost.Source.ID)
	assert.Equal(t, 1, repost.Source.RepostCount)

	f.notifier.AssertCalled(t, "HandlePostEvent", mock.Anything, mock.MatchedBy(func(e *kafka.PostEvent) bool {
		return e.Type == kafka.EventPostReposted && e.PostID == source.ID && e.AuthorID == f.alice.ID && e.ActorID == f.bob.ID
	}))

	shared, err := f.svc.SharePost(ctx, f.bob.ID, source.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, shared.ShareCount)
	assert.True(t, shared.SharedByMe)

	_, err = f.svc.RepostPost(ctx, f.bob.ID, 404, nil)
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestPostService_Feed(t *testing.T) {
	f := newPostFixture(t, false)
	ctx := context.Background()
	f.notifier.On("HandlePostEvent", mock.Anything, mock.Anything).Return(nil)

	for i := 0; i < 8; i++ {
		_, err := f.svc.CreatePost(ctx, f.alice.ID, &dto.PostBaseDTO{Content: "p"})
		require.NoError(t, err)
	}

	recent, err := f.svc.GetRecent(ctx, f.bob.ID)
	require.NoError(t, err)
	require.Len(t, recent, 5)
	assert.Equal(t, int64(8), recent[0].ID)

	before, err := f.svc.GetPostsBefore(ctx, 4, f.bob.ID)
	require.NoError(t, err)
	require.Len(t, before, 3)
	assert.Equal(t, int64(3), before[0].ID)

	after, err := f.svc.GetPostsAfter(ctx, 6, f.bob.ID)
	require.NoError(t, err)
	require.Len(t, after, 2)
	assert.Equal(t, int64(8), after[0].ID)

	_, err = f.svc.GetPostsAfter(ctx, 404, f.bob.ID)
	assert.ErrorIs(t, err, ErrPostNotFound)

	all, err := f.svc.GetAll(ctx, f.bob.ID)
	require.NoError(t, err)
	assert.Len(t, all, 8)
}

func TestPostService_PublishesWhenKafkaEnabled(t *testing.T) {
	f := newPostFixture(t, true)
	ctx := context.Background()
	f.publisher.On("Publish", mock.Anything, eventOf(kafka.EventPostCreated)).Return(nil).Once()
	f.publisher.On("Publish", mock.Anything, eventOf(kafka.EventPostShared)).Return(errors.New("broker down")).Once()

	created, err := f.svc.CreatePost(ctx, f.alice.ID, &dto.PostBaseDTO{Content: "k"})
	require.NoError(t, err)

	// 发布失败不影响请求结果
	_, err = f.svc.SharePost(ctx, f.bob.ID, created.ID)
	require.NoError(t, err)

	f.publisher.AssertExpectations(t)
	f.notifier.AssertNotCalled(t, "HandlePostEvent", mock.Anything, mock.Anything)
}

func TestToPostDTO(t *testing.T) {
	source := &model.Post{
		ID:           3,
		Author:       "alice",
		Content:      "origin",
		LikeCount:    2,
		ReactionByMe: model.ReactionDisliked,
		Type:         model.PostTypePost,
		Location:     &model.Location{Address: "Berlin", Lat: 52.5, Lng: 13.4},
	}
	post := &model.Post{
		ID:           9,
		AuthorID:     2,
		Author:       "bob",
		CreatedAt:    1700000000000,
		ShareCount:   4,
		ReactionByMe: model.ReactionLiked,
		SharedByMe:   true,
		Type:         model.PostTypeRepost,
		Source:       source,
		Attachment:   &model.Attachment{ID: "a.png", Type: "image/png", URL: "u", ThumbnailURL: "t"},
		Link:         "https://example.com",
		LinkPreview:  &model.LinkPreview{URL: "https://example.com", Title: "Example"},
	}

	d, err := toPostDTO(post)
	require.NoError(t, err)
	assert.Equal(t, int64(9), d.ID)
	assert.Equal(t, "bob", d.Author)
	assert.Equal(t, int64(1700000000000), d.CreatedAt)
	assert.Equal(t, 4, d.ShareCount)
	assert.Equal(t, int8(1), d.ReactionByMe)
	assert.True(t, d.SharedByMe)
	assert.Equal(t, "repost", d.Type)
	assert.Nil(t, d.Location)
	require.NotNil(t, d.Attachment)
	assert.Equal(t, "t", d.Attachment.ThumbnailURL)
	require.NotNil(t, d.LinkPreview)
	assert.Equal(t, "Example", d.LinkPreview.Title)

	require.NotNil(t, d.Source)
	assert.Equal(t, int64(3), d.Source.ID)
	assert.Equal(t, 2, d.Source.LikeCount)
	assert.Equal(t, int8(-1), d.Source.ReactionByMe)
	require.NotNil(t, d.Source.Location)
	assert.Equal(t, "Berlin", d.Source.Location.Address)
	assert.Nil(t, d.Source.Source)

	// 修改 DTO 不影响原帖子
	d.Source.Location.Address = "Paris"
	assert.Equal(t, "Berlin", source.Location.Address)
}

func TestApplyPostBase(t *testing.T) {
	post := &model.Post{ID: 1, AuthorID: 7, LikeCount: 3, Content: "old"}
	require.NoError(t, applyPostBase(post, &dto.PostBaseDTO{
		Content:    "new",
		Link:       "https://example.com",
		Location:   &dto.LocationDTO{Address: "Oslo", Lat: 59.9, Lng: 10.7},
		Attachment: &dto.AttachmentDTO{ID: "x.jpg", Type: "image/jpeg", URL: "u"},
	}))

	assert.Equal(t, "new", post.Content)
	assert.Equal(t, "https://example.com", post.Link)
	require.NotNil(t, post.Location)
	assert.Equal(t, "Oslo", post.Location.Address)
	require.NotNil(t, post.Attachment)
	assert.Equal(t, "x.jpg", post.Attachment.ID)
	assert.Equal(t, int64(1), post.ID)
	assert.Equal(t, uint64(7), post.AuthorID)
	assert.Equal(t, 3, post.LikeCount)
}
