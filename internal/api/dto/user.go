package dto

import "time"

// UserDTO 用户
type UserDTO struct {
	ID        uint64    `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

// CredentialDTO 注册与登录共用
type CredentialDTO struct {
	Username string `json:"username" binding:"required" validate:"min=3,max=50"`
	Password string `json:"password" binding:"required" validate:"min=6,max=64"`
}

type TokenDTO struct {
	Token string `json:"token"`
}
