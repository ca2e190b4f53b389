package service

import (
	"Ripple/internal/api/dto"
	"Ripple/internal/pkg/consts"
	"Ripple/internal/pkg/util"
	"bytes"
	"context"
	"io"
	log "log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
)

const MaxUploadSize = 10 << 20

// FileStore 对象存储，由 minio.Store 实现
type FileStore interface {
	Upload(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error)
	Delete(ctx context.Context, objectName string) error
	URL(objectName string) string
}

type MediaService interface {
	Upload(ctx context.Context, file io.ReadSeeker, size int64) (*dto.AttachmentDTO, error)
}

type mediaServiceImpl struct {
	store FileStore
}

// NewMediaService store 为 nil 时上传返回 ErrStorageDisabled
func NewMediaService(store FileStore) MediaService {
	return &mediaServiceImpl{store: store}
}

// Upload 只接受 jpeg 与 png，原图与缩略图放在同一目录下
func (s *mediaServiceImpl) Upload(ctx context.Context, file io.ReadSeeker, size int64) (*dto.AttachmentDTO, error) {
	if s.store == nil {
		return nil, ErrStorageDisabled
	}
	if size > MaxUploadSize {
		return nil, ErrFileTooLarge
	}

	contentType, ext, err := util.GetSafeContentType(file)
	if err != nil {
		return nil, ErrFileNotSupported
	}
	if contentType != consts.MimeImageJPEG && contentType != consts.MimeImagePNG {
		return nil, ErrFileNotSupported
	}

	base := time.Now().Format("2006/01/02/") + uuid.NewString()
	objectName, err := s.store.Upload(ctx, base+ext, file, size, contentType)
	if err != nil {
		log.ErrorContext(ctx, "upload file failed", "object", base+ext, "err", err)
		return nil, UnExpectedError
	}

	attachment := &dto.AttachmentDTO{
		ID:   objectName,
		Type: contentType,
		URL:  s.store.URL(objectName),
	}

	// 缩略图失败不影响原图
	if _, err = file.Seek(0, io.SeekStart); err != nil {
		log.WarnContext(ctx, "rewind upload failed", "object", objectName, "err", err)
		return attachment, nil
	}
	thumb, err := util.MakeThumbnail(file, consts.ThumbnailWidth)
	if err != nil {
		log.WarnContext(ctx, "make thumbnail failed", "object", objectName, "err", err)
		return attachment, nil
	}
	thumbName := strings.TrimSuffix(objectName, ext) + consts.ThumbnailSuffix
	thumbName, err = s.store.Upload(ctx, thumbName, bytes.NewReader(thumb), int64(len(thumb)), consts.MimeImageJPEG)
	if err != nil {
		log.WarnContext(ctx, "upload thumbnail failed", "object", objectName, "err", err)
		return attachment, nil
	}
	attachment.ThumbnailURL = s.store.URL(thumbName)

	return attachment, nil
}
