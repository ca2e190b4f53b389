package dto

// AttachmentDTO 上传后的附件信息，创建帖子时原样带回
type AttachmentDTO struct {
	ID           string `json:"id" validate:"required,max=255"`
	Type         string `json:"type" validate:"required,max=64"`
	URL          string `json:"url,omitempty"`
	ThumbnailURL string `json:"thumbnail_url,omitempty"`
}
