package service

import (
	"Ripple/internal/api/dto"
	"Ripple/internal/pkg/consts"
	"Ripple/internal/pkg/kafka"
	"Ripple/internal/pkg/mongo"
	"Ripple/internal/pkg/redis"
	"Ripple/internal/repository"
	"context"
	"errors"
	log "log/slog"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/goccy/go-json"
	"github.com/jinzhu/copier"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mongoDB "go.mongodb.org/mongo-driver/mongo"
)

const contentPreviewLen = 50

type SysBoxService interface {
	GetNotificationList(ctx context.Context, userID uint64, page, pageSize int) ([]*dto.SysBoxDTO, error)
	GetUnreadCount(ctx context.Context, userID uint64) (*dto.SysBoxUnreadDTO, error)
	MarkRead(ctx context.Context, userID uint64, msgID string) error
	MarkAllRead(ctx context.Context, userID uint64) error
	HandlePostEvent(ctx context.Context, event *kafka.PostEvent) error
}

type sysBoxServiceImpl struct {
	sysBoxRepo mongo.SysBoxRepo
	userRepo   repository.UserRepo
}

// NewSysBoxService sysBox 为 nil 时表示未配置 MongoDB，通知功能关闭
func NewSysBoxService(sysBox mongo.SysBoxRepo, user repository.UserRepo) SysBoxService {
	return &sysBoxServiceImpl{
		sysBoxRepo: sysBox,
		userRepo:   user,
	}
}

// GetNotificationList 获取通知列表并补全用户信息
func (s *sysBoxServiceImpl) GetNotificationList(ctx context.Context, userID uint64, page, pageSize int) ([]*dto.SysBoxDTO, error) {
	if s.sysBoxRepo == nil {
		return nil, ErrSysBoxDisabled
	}
	if page < 1 || pageSize < 1 {
		return nil, ErrParamInvalid
	}
	limit := int64(pageSize)
	offset := int64((page - 1) * pageSize)

	list, err := s.sysBoxRepo.GetNotificationList(ctx, userID, limit, offset)
	if err != nil {
		return nil, err
	}

	names := make(map[uint64]string)
	res := make([]*dto.SysBoxDTO, 0, len(list))
	for _, m := range list {
		item, err := toSysBoxDTO(m, s.senderName(ctx, m.SenderID, names))
		if err != nil {
			return nil, err
		}
		res = append(res, item)
	}

	return res, nil
}

// GetUnreadCount 获取未读数
func (s *sysBoxServiceImpl) GetUnreadCount(ctx context.Context, userID uint64) (*dto.SysBoxUnreadDTO, error) {
	if s.sysBoxRepo == nil {
		return nil, ErrSysBoxDisabled
	}
	count, err := s.sysBoxRepo.GetUnreadCount(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &dto.SysBoxUnreadDTO{UnreadCount: count}, nil
}

// MarkRead 标记单条已读
func (s *sysBoxServiceImpl) MarkRead(ctx context.Context, userID uint64, msgID string) error {
	if s.sysBoxRepo == nil {
		return ErrSysBoxDisabled
	}
	objectID, err := primitive.ObjectIDFromHex(msgID)
	if err != nil {
		return ErrParamInvalid
	}

	notice, err := s.sysBoxRepo.GetByID(ctx, objectID)
	if err != nil {
		if errors.Is(err, mongoDB.ErrNoDocuments) {
			return ErrSysBoxNotFound
		}
		return err
	}

	if notice.ReceiverID != userID {
		return ErrSysBoxNotFound
	}

	if notice.IsRead {
		return nil
	}

	return s.sysBoxRepo.MarkAsRead(ctx, userID, objectID)
}

// MarkAllRead 一键已读
func (s *sysBoxServiceImpl) MarkAllRead(ctx context.Context, userID uint64) error {
	if s.sysBoxRepo == nil {
		return ErrSysBoxDisabled
	}
	return s.sysBoxRepo.MarkAllAsRead(ctx, userID)
}

// HandlePostEvent 将互动事件转为帖子作者的通知，作者本人的操作不通知
func (s *sysBoxServiceImpl) HandlePostEvent(ctx context.Context, event *kafka.PostEvent) error {
	if s.sysBoxRepo == nil || event == nil {
		return nil
	}
	boxType, ok := sysBoxTypeOf(event.Type)
	if !ok || event.ActorID == event.AuthorID {
		return nil
	}

	msg := &mongo.SysBoxModel{
		ReceiverID: event.AuthorID,
		SenderID:   event.ActorID,
		Type:       boxType,
		TargetID:   event.PostID,
		Payload:    map[string]any{"event": string(event.Type), "occurred_at": event.OccurredAt},
	}
	if event.Post != nil {
		msg.Content = truncate(event.Post.Content, contentPreviewLen)
	}

	if err := s.sysBoxRepo.CreateNotification(ctx, msg); err != nil {
		return err
	}
	log.InfoContext(ctx, "sys box notification created",
		"receiver_id", msg.ReceiverID, "sender_id", msg.SenderID, "type", msg.Type, "post_id", msg.TargetID)

	s.push(ctx, msg)
	return nil
}

// push 通过 Redis 频道推送给在线的接收者，失败只记录日志
func (s *sysBoxServiceImpl) push(ctx context.Context, msg *mongo.SysBoxModel) {
	if !redis.Enabled() {
		return
	}
	item, err := toSysBoxDTO(msg, s.senderName(ctx, msg.SenderID, map[uint64]string{}))
	if err != nil {
		log.ErrorContext(ctx, "copy sys box push error", "err", err)
		return
	}
	data, err := json.Marshal(item)
	if err != nil {
		log.ErrorContext(ctx, "marshal sys box push error", "err", err)
		return
	}
	channel := consts.SysBoxChannelKey + strconv.FormatUint(msg.ReceiverID, 10)
	if err = redis.Publish(ctx, channel, data); err != nil {
		log.WarnContext(ctx, "publish sys box push error", "channel", channel, "err", err)
	}
}

func (s *sysBoxServiceImpl) senderName(ctx context.Context, senderID uint64, cache map[uint64]string) string {
	if senderID == 0 {
		return "系统通知"
	}
	if name, ok := cache[senderID]; ok {
		return name
	}
	name := ""
	user, err := s.userRepo.GetUserById(ctx, senderID)
	if err == nil && user != nil {
		name = user.Username
	}
	cache[senderID] = name
	return name
}

var sysBoxCopyOption = copier.Option{
	Converters: []copier.TypeConverter{
		{
			SrcType: primitive.ObjectID{},
			DstType: copier.String,
			Fn: func(src any) (any, error) {
				return src.(primitive.ObjectID).Hex(), nil
			},
		},
		{
			SrcType: time.Time{},
			DstType: copier.String,
			Fn: func(src any) (any, error) {
				return src.(time.Time).UTC().Format(time.RFC3339), nil
			},
		},
	},
}

func toSysBoxDTO(m *mongo.SysBoxModel, senderName string) (*dto.SysBoxDTO, error) {
	out := &dto.SysBoxDTO{}
	if err := copier.CopyWithOption(out, m, sysBoxCopyOption); err != nil {
		return nil, err
	}
	out.SenderName = senderName
	return out, nil
}

func sysBoxTypeOf(t kafka.PostEventType) (int8, bool) {
	switch t {
	case kafka.EventPostLiked:
		return consts.SysBoxTypeLike, true
	case kafka.EventPostDisliked:
		return consts.SysBoxTypeDislike, true
	case kafka.EventPostReposted:
		return consts.SysBoxTypeRepost, true
	case kafka.EventPostShared:
		return consts.SysBoxTypeShare, true
	}
	return 0, false
}

func truncate(content string, n int) string {
	if utf8.RuneCountInString(content) <= n {
		return content
	}
	return string([]rune(content)[:n]) + "..."
}
