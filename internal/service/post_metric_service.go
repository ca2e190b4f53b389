package service

import (
	"Ripple/internal/api/dto"
	"Ripple/internal/pkg/consts"
	"Ripple/internal/pkg/redis"
	"Ripple/internal/repository"
	"context"
	"strconv"
)

type PostMetricService interface {
	GetSnapshot(ctx context.Context, userID uint64, postID int64) (*dto.PostMetricDTO, error)
}

type postMetricServiceImpl struct {
	postRepo repository.PostRepo
}

func NewPostMetricService(postRepo repository.PostRepo) PostMetricService {
	return &postMetricServiceImpl{postRepo: postRepo}
}

// GetSnapshot 只有作者可以查看，数据来自 PostMetricsJob 最近一次快照
func (s *postMetricServiceImpl) GetSnapshot(ctx context.Context, userID uint64, postID int64) (*dto.PostMetricDTO, error) {
	if !redis.Enabled() {
		return nil, ErrMetricsDisabled
	}

	post, err := s.postRepo.Peek(ctx, postID)
	if err != nil {
		return nil, mapRepoError(err)
	}
	if post.AuthorID != userID {
		return nil, ErrPostForbidden
	}

	fields, err := redis.HGetAll(ctx, consts.PostMetricsKey+strconv.FormatInt(postID, 10))
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, ErrMetricsNotReady
	}
	updatedAt, err := redis.GetValue(ctx, consts.PostMetricsUpdatedAt)
	if err != nil {
		return nil, err
	}
	return parseMetrics(postID, fields, updatedAt), nil
}

// parseMetrics 字段缺失或无法解析时按 0 处理
func parseMetrics(postID int64, fields map[string]string, updatedAt string) *dto.PostMetricDTO {
	num := func(key string) int {
		n, _ := strconv.Atoi(fields[key])
		return n
	}
	snapshotAt, _ := strconv.ParseInt(updatedAt, 10, 64)
	return &dto.PostMetricDTO{
		PostID:     postID,
		Likes:      num("likes"),
		Dislikes:   num("dislikes"),
		Reposts:    num("reposts"),
		Shares:     num("shares"),
		Views:      num("views"),
		SnapshotAt: snapshotAt,
	}
}
