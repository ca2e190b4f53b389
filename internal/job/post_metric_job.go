package job

import (
	"Ripple/internal/pkg/consts"
	"Ripple/internal/pkg/logger"
	"Ripple/internal/pkg/redis"
	"Ripple/internal/repository"
	"context"
	log "log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// PostMetricsJob 定期把内存中的帖子计数快照写入 Redis
type PostMetricsJob struct {
	postRepo repository.PostRepo
	ttl      time.Duration
}

func NewPostMetricsJob(postRepo repository.PostRepo) *PostMetricsJob {
	return &PostMetricsJob{
		postRepo: postRepo,
		ttl:      time.Hour,
	}
}

func (s *PostMetricsJob) Run() {
	traceID := "job-post-" + uuid.NewString()
	ctx := context.WithValue(context.Background(), logger.TraceIDKey, traceID)

	if err := s.Snapshot(ctx); err != nil {
		log.ErrorContext(ctx, "post metrics snapshot error", "err", err)
	}
}

// Snapshot 每个帖子一个 hash，另记录帖子总数与快照时间
func (s *PostMetricsJob) Snapshot(ctx context.Context) error {
	if !redis.Enabled() {
		return nil
	}

	stats := s.postRepo.Stats(ctx)
	values := make(map[string]map[string]any, len(stats))
	for _, st := range stats {
		values[consts.PostMetricsKey+strconv.FormatInt(st.PostID, 10)] = map[string]any{
			"likes":    st.LikeCount,
			"dislikes": st.DislikeCount,
			"reposts":  st.RepostCount,
			"shares":   st.ShareCount,
			"views":    st.ViewCount,
		}
	}

	if err := redis.HSetBatch(ctx, values, s.ttl); err != nil {
		return err
	}
	if err := redis.SetValue(ctx, consts.PostMetricsCountKey, len(stats)); err != nil {
		return err
	}
	if err := redis.SetValue(ctx, consts.PostMetricsUpdatedAt, time.Now().UnixMilli()); err != nil {
		return err
	}

	log.InfoContext(ctx, "PostMetricsJob finished", "post_count", len(stats))
	return nil
}
