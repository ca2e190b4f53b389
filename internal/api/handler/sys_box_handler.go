package handler

import (
	"Ripple/internal/api/dto"
	"Ripple/internal/pkg/response"
	"Ripple/internal/pkg/util"
	"Ripple/internal/service"

	"github.com/gin-gonic/gin"
)

const defaultPageSize = 10

type SysBoxHandler struct {
	sysBoxService service.SysBoxService
}

func NewSysBoxHandler(s service.SysBoxService) *SysBoxHandler {
	return &SysBoxHandler{sysBoxService: s}
}

func (h *SysBoxHandler) GetNotificationList(c *gin.Context) {
	query := dto.PageQueryDTO{Page: 1, PageSize: defaultPageSize}
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	if err := util.ValidateDTO(&query); err != nil {
		response.Error(c, err)
		return
	}

	list, err := h.sysBoxService.GetNotificationList(c.Request.Context(), currentUser(c), query.Page, query.PageSize)
	reply(c, list, err)
}

func (h *SysBoxHandler) GetUnreadCount(c *gin.Context) {
	unread, err := h.sysBoxService.GetUnreadCount(c.Request.Context(), currentUser(c))
	reply(c, unread, err)
}

func (h *SysBoxHandler) MarkRead(c *gin.Context) {
	var req dto.SysBoxReadDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}
	reply(c, nil, h.sysBoxService.MarkRead(c.Request.Context(), currentUser(c), req.ID))
}

func (h *SysBoxHandler) MarkAllRead(c *gin.Context) {
	reply(c, nil, h.sysBoxService.MarkAllRead(c.Request.Context(), currentUser(c)))
}
