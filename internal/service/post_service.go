package service

import (
	"Ripple/internal/api/dto"
	"Ripple/internal/model"
	"Ripple/internal/pkg/kafka"
	"Ripple/internal/pkg/unfurl"
	"Ripple/internal/repository"
	"context"
	"errors"
	log "log/slog"
	"time"

	"github.com/jinzhu/copier"
)

const linkPreviewTimeout = 1500 * time.Millisecond

type PostService interface {
	GetAll(ctx context.Context, viewerID uint64) ([]*dto.PostDTO, error)
	GetByID(ctx context.Context, id int64, viewerID uint64) (*dto.PostDTO, error)
	GetRecent(ctx context.Context, viewerID uint64) ([]*dto.PostDTO, error)
	GetPostsAfter(ctx context.Context, id int64, viewerID uint64) ([]*dto.PostDTO, error)
	GetPostsBefore(ctx context.Context, id int64, viewerID uint64) ([]*dto.PostDTO, error)
	CreatePost(ctx context.Context, userID uint64, req *dto.PostBaseDTO) (*dto.PostDTO, error)
	UpdatePost(ctx context.Context, userID uint64, id int64, req *dto.PostBaseDTO) (*dto.PostDTO, error)
	DeletePost(ctx context.Context, userID uint64, id int64) (*dto.PostDTO, error)
	LikePost(ctx context.Context, userID uint64, id int64) (*dto.PostDTO, error)
	DislikePost(ctx context.Context, userID uint64, id int64) (*dto.PostDTO, error)
	RepostPost(ctx context.Context, userID uint64, id int64, req *dto.RepostDTO) (*dto.PostDTO, error)
	SharePost(ctx context.Context, userID uint64, id int64) (*dto.PostDTO, error)
}

// PostEventNotifier 帖子事件的本地处理方，Kafka 未启用时由服务直接调用
type PostEventNotifier interface {
	HandlePostEvent(ctx context.Context, event *kafka.PostEvent) error
}

type postServiceImpl struct {
	postRepo  repository.PostRepo
	userRepo  repository.UserRepo
	publisher kafka.Publisher
	notifier  PostEventNotifier
	unfurler  unfurl.Fetcher
	async     func(func())
}

func NewPostService(
	postRepo repository.PostRepo,
	userRepo repository.UserRepo,
	publisher kafka.Publisher,
	notifier PostEventNotifier,
	unfurler unfurl.Fetcher,
) PostService {
	if publisher == nil {
		publisher = kafka.NoopPublisher{}
	}
	return &postServiceImpl{
		postRepo:  postRepo,
		userRepo:  userRepo,
		publisher: publisher,
		notifier:  notifier,
		unfurler:  unfurler,
		async:     func(f func()) { go f() },
	}
}

func (s *postServiceImpl) GetAll(ctx context.Context, viewerID uint64) ([]*dto.PostDTO, error) {
	return toPostDTOs(s.postRepo.GetAll(ctx, viewerID))
}

func (s *postServiceImpl) GetByID(ctx context.Context, id int64, viewerID uint64) (*dto.PostDTO, error) {
	post, err := s.postRepo.GetByID(ctx, id, viewerID)
	if err != nil {
		return nil, mapRepoError(err)
	}
	return toPostDTO(post)
}

func (s *postServiceImpl) GetRecent(ctx context.Context, viewerID uint64) ([]*dto.PostDTO, error) {
	return toPostDTOs(s.postRepo.GetRecent(ctx, viewerID))
}

func (s *postServiceImpl) GetPostsAfter(ctx context.Context, id int64, viewerID uint64) ([]*dto.PostDTO, error) {
	posts, err := s.postRepo.GetPostsAfter(ctx, id, viewerID)
	if err != nil {
		return nil, mapRepoError(err)
	}
	return toPostDTOs(posts)
}

func (s *postServiceImpl) GetPostsBefore(ctx context.Context, id int64, viewerID uint64) ([]*dto.PostDTO, error) {
	posts, err := s.postRepo.GetPostsBefore(ctx, id, viewerID)
	if err != nil {
		return nil, mapRepoError(err)
	}
	return toPostDTOs(posts)
}

// CreatePost 作者取自当前登录用户，链接预览抓取失败不影响发帖
func (s *postServiceImpl) CreatePost(ctx context.Context, userID uint64, req *dto.PostBaseDTO) (*dto.PostDTO, error) {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	post := &model.Post{
		ID:        model.NewPostID,
		AuthorID:  user.ID,
		Author:    user.Username,
		Content:   req.Content,
		CreatedAt: time.Now().UnixMilli(),
		Type:      model.PostTypePost,
	}
	if err = applyPostBase(post, req); err != nil {
		return nil, err
	}
	post.LinkPreview = s.fetchPreview(ctx, req.Link)

	saved, err := s.postRepo.Save(ctx, post)
	if err != nil {
		return nil, err
	}

	s.emit(ctx, kafka.EventPostCreated, userID, saved)
	return toPostDTO(saved)
}

// UpdatePost 只有作者可以修改，计数保持不变
func (s *postServiceImpl) UpdatePost(ctx context.Context, userID uint64, id int64, req *dto.PostBaseDTO) (*dto.PostDTO, error) {
	current, err := s.postRepo.Peek(ctx, id)
	if err != nil {
		return nil, mapRepoError(err)
	}
	if current.AuthorID != userID {
		return nil, ErrPostForbidden
	}

	var preview *model.LinkPreview
	if req.Link != current.Link {
		preview = s.fetchPreview(ctx, req.Link)
	}

	updated, err := s.postRepo.UpdateByID(ctx, id, func(post *model.Post) error {
		if post.AuthorID != userID {
			return ErrPostForbidden
		}
		linkChanged := req.Link != post.Link
		post.Location, post.Attachment = nil, nil
		if err := applyPostBase(post, req); err != nil {
			return err
		}
		if linkChanged {
			post.LinkPreview = preview
		}
		post.UpdatedAt = time.Now().UnixMilli()
		return nil
	})
	if err != nil {
		return nil, mapRepoError(err)
	}

	s.emit(ctx, kafka.EventPostUpdated, userID, updated)
	return toPostDTO(updated)
}

// DeletePost 返回被删除的帖子
func (s *postServiceImpl) DeletePost(ctx context.Context, userID uint64, id int64) (*dto.PostDTO, error) {
	post, err := s.postRepo.Peek(ctx, id)
	if err != nil {
		return nil, mapRepoError(err)
	}
	if post.AuthorID != userID {
		return nil, ErrPostForbidden
	}

	if !s.postRepo.RemoveByID(ctx, id) {
		return nil, ErrPostNotFound
	}

	s.emit(ctx, kafka.EventPostDeleted, userID, post)
	return toPostDTO(post)
}

func (s *postServiceImpl) LikePost(ctx context.Context, userID uint64, id int64) (*dto.PostDTO, error) {
	post, err := s.postRepo.LikeByID(ctx, id, userID)
	if err != nil {
		return nil, mapRepoError(err)
	}
	// 取消点赞不产生通知
	if post.ReactionByMe == model.ReactionLiked {
		s.emit(ctx, kafka.EventPostLiked, userID, post)
	}
	return toPostDTO(post)
}

func (s *postServiceImpl) DislikePost(ctx context.Context, userID uint64, id int64) (*dto.PostDTO, error) {
	post, err := s.postRepo.DislikeByID(ctx, id, userID)
	if err != nil {
		return nil, mapRepoError(err)
	}
	if post.ReactionByMe == model.ReactionDisliked {
		s.emit(ctx, kafka.EventPostDisliked, userID, post)
	}
	return toPostDTO(post)
}

// RepostPost 新建一条转发帖子，源帖子的转发数加一
func (s *postServiceImpl) RepostPost(ctx context.Context, userID uint64, id int64, req *dto.RepostDTO) (*dto.PostDTO, error) {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	content := ""
	if req != nil {
		content = req.Content
	}
	repost, err := s.postRepo.RepostByID(ctx, id, &model.Post{
		ID:        model.NewPostID,
		AuthorID:  user.ID,
		Author:    user.Username,
		Content:   content,
		CreatedAt: time.Now().UnixMilli(),
	})
	if err != nil {
		return nil, mapRepoError(err)
	}

	s.emit(ctx, kafka.EventPostReposted, userID, repost.Source)
	return toPostDTO(repost)
}

func (s *postServiceImpl) SharePost(ctx context.Context, userID uint64, id int64) (*dto.PostDTO, error) {
	post, err := s.postRepo.ShareByID(ctx, id, userID)
	if err != nil {
		return nil, mapRepoError(err)
	}
	s.emit(ctx, kafka.EventPostShared, userID, post)
	return toPostDTO(post)
}

func (s *postServiceImpl) getUser(ctx context.Context, userID uint64) (*model.User, error) {
	user, err := s.userRepo.GetUserById(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *postServiceImpl) fetchPreview(ctx context.Context, link string) *model.LinkPreview {
	if link == "" || s.unfurler == nil {
		return nil
	}
	fetchCtx, cancel := context.WithTimeout(ctx, linkPreviewTimeout)
	defer cancel()

	preview, err := s.unfurler.Fetch(fetchCtx, link)
	if err != nil {
		log.WarnContext(ctx, "fetch link preview failed", "link", link, "err", err)
		return nil
	}
	return preview
}

// emit 在请求之外发布事件；Kafka 未启用时直接交给本地 notifier
func (s *postServiceImpl) emit(ctx context.Context, eventType kafka.PostEventType, actorID uint64, post *model.Post) {
	event := kafka.NewPostEvent(eventType, actorID, post)
	bg := context.WithoutCancel(ctx)

	s.async(func() {
		if s.publisher.Enabled() {
			if err := s.publisher.Publish(bg, event); err != nil {
				log.ErrorContext(bg, "publish post event failed", "type", eventType, "post_id", event.PostID, "err", err)
			}
			return
		}
		if s.notifier == nil {
			return
		}
		if err := s.notifier.HandlePostEvent(bg, event); err != nil {
			log.ErrorContext(bg, "handle post event failed", "type", eventType, "post_id", event.PostID, "err", err)
		}
	})
}

// applyPostBase 写入可编辑字段: 正文、位置、附件与链接
func applyPostBase(post *model.Post, req *dto.PostBaseDTO) error {
	return copier.CopyWithOption(post, req, copier.Option{DeepCopy: true})
}

func mapRepoError(err error) error {
	if errors.Is(err, repository.ErrPostNotFound) {
		return ErrPostNotFound
	}
	return err
}

func toPostDTOs(posts []*model.Post) ([]*dto.PostDTO, error) {
	res := make([]*dto.PostDTO, 0, len(posts))
	for _, p := range posts {
		d, err := toPostDTO(p)
		if err != nil {
			return nil, err
		}
		res = append(res, d)
	}
	return res, nil
}

// toPostDTO 连同转发源、位置、附件与链接预览一起深拷贝
func toPostDTO(p *model.Post) (*dto.PostDTO, error) {
	out := &dto.PostDTO{}
	if err := copier.CopyWithOption(out, p, copier.Option{DeepCopy: true}); err != nil {
		return nil, err
	}
	return out, nil
}
