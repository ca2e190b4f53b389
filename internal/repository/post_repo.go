package repository

import (
	"Ripple/internal/model"
	"context"
	"errors"
	"slices"
	"sync"
)

var (
	// ErrPostNotFound 帖子 ID 不存在
	ErrPostNotFound = errors.New("post not found")
	// ErrPostNil Save 收到了空帖子
	ErrPostNil = errors.New("post is nil")
)

// PostRepo 帖子存储。所有操作经同一把互斥锁串行执行，
// 读取类操作会增加帖子的浏览数。
type PostRepo interface {
	GetAll(ctx context.Context, viewerID uint64) []*model.Post
	GetByID(ctx context.Context, id int64, viewerID uint64) (*model.Post, error)
	Save(ctx context.Context, post *model.Post) (*model.Post, error)
	Peek(ctx context.Context, id int64) (*model.Post, error)
	UpdateByID(ctx context.Context, id int64, update func(post *model.Post) error) (*model.Post, error)
	RemoveByID(ctx context.Context, id int64) bool
	LikeByID(ctx context.Context, id int64, viewerID uint64) (*model.Post, error)
	DislikeByID(ctx context.Context, id int64, viewerID uint64) (*model.Post, error)
	RepostByID(ctx context.Context, id int64, repost *model.Post) (*model.Post, error)
	ShareByID(ctx context.Context, id int64, viewerID uint64) (*model.Post, error)

	GetRecent(ctx context.Context, viewerID uint64) []*model.Post
	GetPostsAfter(ctx context.Context, id int64, viewerID uint64) ([]*model.Post, error)
	GetPostsBefore(ctx context.Context, id int64, viewerID uint64) ([]*model.Post, error)

	Stats(ctx context.Context) []model.PostStats
	Count(ctx context.Context) int
}

type viewerSet map[uint64]struct{}

type postRepoMemory struct {
	mu     sync.Mutex
	items  []*model.Post // 插入顺序
	nextID int64

	reactions map[int64]map[uint64]model.Reaction
	reposts   map[int64]viewerSet
	shares    map[int64]viewerSet
}

func NewPostRepository() PostRepo {
	return &postRepoMemory{
		nextID:    1,
		reactions: make(map[int64]map[uint64]model.Reaction),
		reposts:   make(map[int64]viewerSet),
		shares:    make(map[int64]viewerSet),
	}
}

func (s *postRepoMemory) GetAll(_ context.Context, viewerID uint64) []*model.Post {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.viewWindow(0, len(s.items), viewerID)
}

func (s *postRepoMemory) GetByID(_ context.Context, id int64, viewerID uint64) (*model.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	index := s.find(id)
	if index < 0 {
		return nil, ErrPostNotFound
	}
	s.markViewed(index)
	return s.present(s.items[index], viewerID), nil
}

func (s *postRepoMemory) Save(_ context.Context, post *model.Post) (*model.Post, error) {
	if post == nil {
		return nil, ErrPostNil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	stored := post.Clone()
	clearViewerState(stored)

	if index := s.find(post.ID); index >= 0 {
		s.items[index] = stored
		return stored.Clone(), nil
	}

	s.insert(stored)
	return stored.Clone(), nil
}

// Peek 读取帖子但不计入浏览
func (s *postRepoMemory) Peek(_ context.Context, id int64) (*model.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	index := s.find(id)
	if index < 0 {
		return nil, ErrPostNotFound
	}
	return s.items[index].Clone(), nil
}

// UpdateByID 在持锁状态下对帖子副本执行 update，update 返回错误时不做任何修改。
// ID 与各项计数不受 update 影响
func (s *postRepoMemory) UpdateByID(_ context.Context, id int64, update func(post *model.Post) error) (*model.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	index := s.find(id)
	if index < 0 {
		return nil, ErrPostNotFound
	}

	current := s.items[index]
	updated := current.Clone()
	if err := update(updated); err != nil {
		return nil, err
	}

	updated.ID = current.ID
	updated.LikeCount, updated.DislikeCount = current.LikeCount, current.DislikeCount
	updated.RepostCount, updated.ShareCount = current.RepostCount, current.ShareCount
	updated.ViewCount = current.ViewCount
	clearViewerState(updated)
	s.items[index] = updated

	return updated.Clone(), nil
}

func (s *postRepoMemory) RemoveByID(_ context.Context, id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	index := s.find(id)
	if index < 0 {
		return false
	}
	s.items = slices.Delete(s.items, index, index+1)
	delete(s.reactions, id)
	delete(s.reposts, id)
	delete(s.shares, id)
	return true
}

func (s *postRepoMemory) LikeByID(_ context.Context, id int64, viewerID uint64) (*model.Post, error) {
	return s.react(id, viewerID, ActionLike)
}

func (s *postRepoMemory) DislikeByID(_ context.Context, id int64, viewerID uint64) (*model.Post, error) {
	return s.react(id, viewerID, ActionDislike)
}

// RepostByID 增加源帖子的转发数并创建一条转发帖子，返回新帖子
func (s *postRepoMemory) RepostByID(_ context.Context, id int64, repost *model.Post) (*model.Post, error) {
	if repost == nil {
		return nil, ErrPostNil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	index := s.find(id)
	if index < 0 {
		return nil, ErrPostNotFound
	}

	source := s.items[index].Clone()
	source.RepostCount++
	s.items[index] = source
	addViewer(s.reposts, id, repost.AuthorID)

	created := repost.Clone()
	clearViewerState(created)
	created.LikeCount, created.DislikeCount = 0, 0
	created.RepostCount, created.ShareCount, created.ViewCount = 0, 0, 0
	created.Type = model.PostTypeRepost
	created.Source = source.Clone()
	s.insert(created)

	return s.present(created, repost.AuthorID), nil
}

func (s *postRepoMemory) ShareByID(_ context.Context, id int64, viewerID uint64) (*model.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	index := s.find(id)
	if index < 0 {
		return nil, ErrPostNotFound
	}

	updated := s.items[index].Clone()
	updated.ShareCount++
	s.items[index] = updated
	addViewer(s.shares, id, viewerID)

	return s.present(updated, viewerID), nil
}

func (s *postRepoMemory) GetRecent(_ context.Context, viewerID uint64) []*model.Post {
	s.mu.Lock()
	defer s.mu.Unlock()

	lo, hi := recentWindow(len(s.items))
	return s.viewWindow(lo, hi, viewerID)
}

func (s *postRepoMemory) GetPostsAfter(_ context.Context, id int64, viewerID uint64) ([]*model.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	index := indexOf(s.newestFirst(), id)
	if index < 0 {
		return nil, ErrPostNotFound
	}
	lo, hi := afterWindow(index)
	return s.viewWindow(lo, hi, viewerID), nil
}

func (s *postRepoMemory) GetPostsBefore(_ context.Context, id int64, viewerID uint64) ([]*model.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	index := indexOf(s.newestFirst(), id)
	if index < 0 {
		return nil, ErrPostNotFound
	}
	lo, hi := beforeWindow(index, len(s.items))
	return s.viewWindow(lo, hi, viewerID), nil
}

func (s *postRepoMemory) Stats(_ context.Context) []model.PostStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := make([]model.PostStats, 0, len(s.items))
	for _, p := range s.items {
		stats = append(stats, p.Stats())
	}
	return stats
}

func (s *postRepoMemory) Count(_ context.Context) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.items)
}

func (s *postRepoMemory) react(id int64, viewerID uint64, action ReactionAction) (*model.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	index := s.find(id)
	if index < 0 {
		return nil, ErrPostNotFound
	}

	updated := s.items[index].Clone()
	state := s.reactions[id][viewerID]
	next, likes, dislikes := ApplyReaction(state, action, updated.LikeCount, updated.DislikeCount)
	updated.LikeCount, updated.DislikeCount = likes, dislikes
	s.items[index] = updated

	if next == model.ReactionNone {
		delete(s.reactions[id], viewerID)
	} else {
		if s.reactions[id] == nil {
			s.reactions[id] = make(map[uint64]model.Reaction)
		}
		s.reactions[id][viewerID] = next
	}

	return s.present(updated, viewerID), nil
}

// 以下方法均要求调用方已持有锁

func (s *postRepoMemory) insert(p *model.Post) {
	p.ID = s.nextID
	s.nextID++
	s.items = append(s.items, p)
}

func (s *postRepoMemory) find(id int64) int {
	for i, p := range s.items {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// newestFirst 返回插入顺序的逆序视图，元素为内部指针，不得外泄
func (s *postRepoMemory) newestFirst() []*model.Post {
	view := make([]*model.Post, len(s.items))
	for i, p := range s.items {
		view[len(s.items)-1-i] = p
	}
	return view
}

// viewWindow 取最新在前视图的 [lo, hi) 区间，计入一次浏览并返回副本
func (s *postRepoMemory) viewWindow(lo, hi int, viewerID uint64) []*model.Post {
	result := make([]*model.Post, 0, hi-lo)
	last := len(s.items) - 1
	for i := lo; i < hi; i++ {
		index := last - i
		s.markViewed(index)
		result = append(result, s.present(s.items[index], viewerID))
	}
	return result
}

func (s *postRepoMemory) markViewed(index int) {
	updated := s.items[index].Clone()
	updated.ViewCount++
	s.items[index] = updated
}

// present 生成对外的副本并填充查看者相关字段
func (s *postRepoMemory) present(p *model.Post, viewerID uint64) *model.Post {
	out := p.Clone()
	out.ReactionByMe = s.reactions[p.ID][viewerID]
	_, out.RepostedByMe = s.reposts[p.ID][viewerID]
	_, out.SharedByMe = s.shares[p.ID][viewerID]
	return out
}

func addViewer(table map[int64]viewerSet, id int64, viewerID uint64) {
	if table[id] == nil {
		table[id] = make(viewerSet)
	}
	table[id][viewerID] = struct{}{}
}

func clearViewerState(p *model.Post) {
	p.ReactionByMe = model.ReactionNone
	p.RepostedByMe = false
	p.SharedByMe = false
}
