package handler

import (
	"Ripple/internal/pkg/response"
	"Ripple/internal/service"

	"github.com/gin-gonic/gin"
)

type MediaHandler struct {
	mediaSvc service.MediaService
}

func NewMediaHandler(mediaSvc service.MediaService) *MediaHandler {
	return &MediaHandler{
		mediaSvc: mediaSvc,
	}
}

// Upload 表单字段 file
func (s *MediaHandler) Upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	if file.Size > service.MaxUploadSize {
		response.Error(c, service.ErrFileTooLarge)
		return
	}

	reader, err := file.Open()
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	defer func() { _ = reader.Close() }()

	attachment, err := s.mediaSvc.Upload(c.Request.Context(), reader, file.Size)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, attachment)
}
