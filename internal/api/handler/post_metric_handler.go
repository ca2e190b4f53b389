package handler

import (
	"Ripple/internal/service"

	"github.com/gin-gonic/gin"
)

type PostMetricHandler struct {
	postMetricSvc service.PostMetricService
}

func NewPostMetricHandler(postMetricSvc service.PostMetricService) *PostMetricHandler {
	return &PostMetricHandler{postMetricSvc: postMetricSvc}
}

// GetSnapshot 获取帖子最近一次计数快照
func (h *PostMetricHandler) GetSnapshot(c *gin.Context) {
	postID, ok := postIDParam(c)
	if !ok {
		return
	}
	metrics, err := h.postMetricSvc.GetSnapshot(c.Request.Context(), currentUser(c), postID)
	reply(c, metrics, err)
}
