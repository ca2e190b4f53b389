package handler

import (
	"Ripple/internal/api/dto"
	"Ripple/internal/pkg/response"
	"Ripple/internal/pkg/util"
	"Ripple/internal/service"
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	postSvc service.PostService
}

func NewPostHandler(postSvc service.PostService) *PostHandler {
	return &PostHandler{postSvc: postSvc}
}

func (s *PostHandler) GetAll(c *gin.Context) {
	posts, err := s.postSvc.GetAll(c.Request.Context(), currentUser(c))
	reply(c, posts, err)
}

func (s *PostHandler) GetRecent(c *gin.Context) {
	posts, err := s.postSvc.GetRecent(c.Request.Context(), currentUser(c))
	reply(c, posts, err)
}

func (s *PostHandler) GetPost(c *gin.Context) {
	postID, ok := postIDParam(c)
	if !ok {
		return
	}
	post, err := s.postSvc.GetByID(c.Request.Context(), postID, currentUser(c))
	reply(c, post, err)
}

func (s *PostHandler) GetPostsAfter(c *gin.Context) {
	postID, ok := postIDParam(c)
	if !ok {
		return
	}
	posts, err := s.postSvc.GetPostsAfter(c.Request.Context(), postID, currentUser(c))
	reply(c, posts, err)
}

func (s *PostHandler) GetPostsBefore(c *gin.Context) {
	postID, ok := postIDParam(c)
	if !ok {
		return
	}
	posts, err := s.postSvc.GetPostsBefore(c.Request.Context(), postID, currentUser(c))
	reply(c, posts, err)
}

func (s *PostHandler) CreatePost(c *gin.Context) {
	var req dto.PostBaseDTO
	if !bindBody(c, &req) {
		return
	}
	post, err := s.postSvc.CreatePost(c.Request.Context(), currentUser(c), &req)
	reply(c, post, err)
}

func (s *PostHandler) UpdatePost(c *gin.Context) {
	postID, ok := postIDParam(c)
	if !ok {
		return
	}
	var req dto.PostBaseDTO
	if !bindBody(c, &req) {
		return
	}
	post, err := s.postSvc.UpdatePost(c.Request.Context(), currentUser(c), postID, &req)
	reply(c, post, err)
}

func (s *PostHandler) DeletePost(c *gin.Context) {
	s.act(c, s.postSvc.DeletePost)
}

func (s *PostHandler) LikePost(c *gin.Context) {
	s.act(c, s.postSvc.LikePost)
}

func (s *PostHandler) DislikePost(c *gin.Context) {
	s.act(c, s.postSvc.DislikePost)
}

func (s *PostHandler) SharePost(c *gin.Context) {
	s.act(c, s.postSvc.SharePost)
}

// RepostPost 请求体可以为空
func (s *PostHandler) RepostPost(c *gin.Context) {
	postID, ok := postIDParam(c)
	if !ok {
		return
	}
	var req dto.RepostDTO
	if !bindOptionalBody(c, &req) {
		return
	}
	post, err := s.postSvc.RepostPost(c.Request.Context(), currentUser(c), postID, &req)
	reply(c, post, err)
}

// act 处理只需要当前用户与帖子 ID 的操作
func (s *PostHandler) act(c *gin.Context, fn func(ctx context.Context, userID uint64, postID int64) (*dto.PostDTO, error)) {
	postID, ok := postIDParam(c)
	if !ok {
		return
	}
	post, err := fn(c.Request.Context(), currentUser(c), postID)
	reply(c, post, err)
}

// postIDParam 解析失败时已写入响应
func postIDParam(c *gin.Context) (int64, bool) {
	postID, err := strconv.ParseInt(c.Param("post_id"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return 0, false
	}
	return postID, true
}

func bindBody(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		response.Error(c, err)
		return false
	}
	if err := util.ValidateDTO(req); err != nil {
		response.Error(c, err)
		return false
	}
	return true
}

// bindOptionalBody 空请求体按零值处理，分块传输时 ContentLength 为 -1
func bindOptionalBody(c *gin.Context, req any) bool {
	if c.Request.Body == nil || c.Request.Body == http.NoBody {
		return true
	}
	if err := c.ShouldBindJSON(req); err != nil && !errors.Is(err, io.EOF) {
		response.Error(c, err)
		return false
	}
	if err := util.ValidateDTO(req); err != nil {
		response.Error(c, err)
		return false
	}
	return true
}

func reply(c *gin.Context, data any, err error) {
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, data)
}
