package handler

import (
	"Ripple/internal/api/dto"
	"Ripple/internal/api/middleware"
	"Ripple/internal/pkg/response"
	"Ripple/internal/service"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userSvc service.UserService
}

func NewUserHandler(userSvc service.UserService) *UserHandler {
	return &UserHandler{
		userSvc: userSvc,
	}
}

func (s *UserHandler) Register(c *gin.Context) {
	var credential dto.CredentialDTO
	if !bindBody(c, &credential) {
		return
	}
	token, err := s.userSvc.Register(c.Request.Context(), &credential)
	reply(c, token, err)
}

func (s *UserHandler) Login(c *gin.Context) {
	var credential dto.CredentialDTO
	if err := c.ShouldBindJSON(&credential); err != nil {
		response.Error(c, err)
		return
	}

	token, err := s.userSvc.Login(c.Request.Context(), &credential)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, token)
}

func (s *UserHandler) Logout(c *gin.Context) {
	if err := s.userSvc.Logout(c.Request.Context(), c.GetString(middleware.ContextToken)); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *UserHandler) GetMe(c *gin.Context) {
	user, err := s.userSvc.GetMe(c.Request.Context(), currentUser(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, user)
}

// currentUser 由 AuthMiddleware 写入
func currentUser(c *gin.Context) uint64 {
	return c.GetUint64(middleware.ContextUserID)
}
