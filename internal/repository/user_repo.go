package repository

import (
	"Ripple/internal/model"
	"context"
	"errors"
	"sync"
	"time"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

// ErrUserDuplicate 用户名已被占用
var ErrUserDuplicate = errors.New("username already exists")

const mysqlDuplicateEntry = 1062

// UserRepo 查询不到用户时返回 nil, nil
type UserRepo interface {
	GetUserById(ctx context.Context, id uint64) (*model.User, error)
	GetUserByIds(ctx context.Context, ids []uint64) ([]*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	CreateUser(ctx context.Context, user *model.User) error
}

type UserRepoImpl struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) UserRepo {
	return &UserRepoImpl{db: db}
}

func (s *UserRepoImpl) GetUserById(ctx context.Context, id uint64) (*model.User, error) {
	user := &model.User{}
	result := s.db.WithContext(ctx).First(user, id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}

	return user, nil
}

func (s *UserRepoImpl) GetUserByIds(ctx context.Context, ids []uint64) ([]*model.User, error) {
	users := make([]*model.User, 0)
	if len(ids) == 0 {
		return users, nil
	}
	result := s.db.WithContext(ctx).
		Select("id", "username", "created_at", "updated_at").
		Where("id IN ?", ids).
		Find(&users)
	if result.Error != nil {
		return nil, result.Error
	}
	return users, nil
}

func (s *UserRepoImpl) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	user := &model.User{}
	result := s.db.WithContext(ctx).
		Where("username = ?", username).
		First(user)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}

	return user, nil
}

func (s *UserRepoImpl) CreateUser(ctx context.Context, user *model.User) error {
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		if isDuplicateEntry(err) {
			return ErrUserDuplicate
		}
		return err
	}
	return nil
}

func isDuplicateEntry(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry
}

// userRepoMemory 未配置数据库时使用，进程退出即丢失
type userRepoMemory struct {
	mu     sync.RWMutex
	nextID uint64
	byID   map[uint64]*model.User
	byName map[string]uint64
}

func NewUserRepoMemory() UserRepo {
	return &userRepoMemory{
		nextID: 1,
		byID:   make(map[uint64]*model.User),
		byName: make(map[string]uint64),
	}
}

func (s *userRepoMemory) GetUserById(_ context.Context, id uint64) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.byID[id]
	if !ok {
		return nil, nil
	}
	clone := *u
	return &clone, nil
}

func (s *userRepoMemory) GetUserByIds(_ context.Context, ids []uint64) ([]*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]*model.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := s.byID[id]; ok {
			clone := *u
			users = append(users, &clone)
		}
	}
	return users, nil
}

func (s *userRepoMemory) GetUserByUsername(_ context.Context, username string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byName[username]
	if !ok {
		return nil, nil
	}
	clone := *s.byID[id]
	return &clone, nil
}

func (s *userRepoMemory) CreateUser(_ context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byName[user.Username]; ok {
		return ErrUserDuplicate
	}

	now := time.Now()
	user.ID = s.nextID
	user.CreatedAt, user.UpdatedAt = now, now
	s.nextID++

	stored := *user
	s.byID[stored.ID] = &stored
	s.byName[stored.Username] = stored.ID
	return nil
}
