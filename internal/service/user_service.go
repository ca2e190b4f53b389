package service

import (
	"Ripple/internal/api/dto"
	"Ripple/internal/model"
	"Ripple/internal/pkg/consts"
	"Ripple/internal/pkg/redis"
	"Ripple/internal/pkg/security"
	"Ripple/internal/repository"
	"context"
	"errors"

	"github.com/jinzhu/copier"
)

type UserService interface {
	Register(ctx context.Context, dto *dto.CredentialDTO) (*dto.TokenDTO, error)
	Login(ctx context.Context, dto *dto.CredentialDTO) (*dto.TokenDTO, error)
	Logout(ctx context.Context, token string) error
	GetMe(ctx context.Context, id uint64) (*dto.UserDTO, error)
	IsTokenRevoked(ctx context.Context, token string) (bool, error)
}

type UserServiceImpl struct {
	userRepo repository.UserRepo
}

func NewUserService(userRepo repository.UserRepo) UserService {
	return &UserServiceImpl{
		userRepo: userRepo,
	}
}

func (s *UserServiceImpl) Register(ctx context.Context, credential *dto.CredentialDTO) (*dto.TokenDTO, error) {
	findUser, err := s.userRepo.GetUserByUsername(ctx, credential.Username)
	if err != nil {
		return nil, err
	}
	if findUser != nil {
		return nil, ErrUserExist
	}

	passwordHash, err := security.HashPassword(credential.Password)
	if err != nil {
		return nil, err
	}
	user := &model.User{
		Username: credential.Username,
		Password: passwordHash,
	}

	// 并发注册同名用户时由唯一索引兜底
	if err = s.userRepo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrUserDuplicate) {
			return nil, ErrUserExist
		}
		return nil, err
	}

	return issueToken(user)
}

func (s *UserServiceImpl) Login(ctx context.Context, credential *dto.CredentialDTO) (*dto.TokenDTO, error) {
	user, err := s.userRepo.GetUserByUsername(ctx, credential.Username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	if err = security.CheckPasswordHash(credential.Password, user.Password); err != nil {
		return nil, ErrPasswordIncorrect
	}
	return issueToken(user)
}

// Logout 令牌签名进入黑名单直到自然过期，未配置 Redis 时无操作
func (s *UserServiceImpl) Logout(ctx context.Context, token string) error {
	if !redis.Enabled() {
		return nil
	}
	signature, err := security.ExtractSignature(token)
	if err != nil {
		return err
	}
	return redis.SetWithExpiration(ctx, consts.TokenBlacklistKey+signature, true, security.TokenLifetime())
}

func (s *UserServiceImpl) IsTokenRevoked(ctx context.Context, token string) (bool, error) {
	if !redis.Enabled() {
		return false, nil
	}
	signature, err := security.ExtractSignature(token)
	if err != nil {
		return false, err
	}
	return redis.Exists(ctx, consts.TokenBlacklistKey+signature)
}

func (s *UserServiceImpl) GetMe(ctx context.Context, id uint64) (*dto.UserDTO, error) {
	user, err := s.userRepo.GetUserById(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	userDTO := &dto.UserDTO{}
	if err = copier.Copy(userDTO, user); err != nil {
		return nil, err
	}
	return userDTO, nil
}

func issueToken(user *model.User) (*dto.TokenDTO, error) {
	token, err := security.GenerateToken(user.ID, user.Username)
	if err != nil {
		return nil, err
	}
	return &dto.TokenDTO{Token: token}, nil
}
