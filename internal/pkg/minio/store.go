package minio

import (
	"Ripple/internal/api/config"
	"context"
	"fmt"
	"io"
	log "log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
)

const presignExpiry = time.Hour

// Store 附件桶的读写，实现 service.FileStore
type Store struct {
	client     *minio.Client
	bucket     string
	publicBase string
	public     bool
}

func NewStore(client *minio.Client, cfg config.MinIOConfig) *Store {
	return &Store{
		client:     client,
		bucket:     cfg.MainBucket,
		publicBase: publicBase(cfg.ExternalEndpoint),
		public:     cfg.UsePublicLink,
	}
}

func (s *Store) Upload(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error) {
	info, err := s.client.PutObject(ctx, s.bucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType:  contentType,
		CacheControl: "public, max-age=31536000, immutable",
	})
	if err != nil {
		return "", fmt.Errorf("put object %s: %w", objectName, err)
	}
	return info.Key, nil
}

func (s *Store) Delete(ctx context.Context, objectName string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, objectName, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("remove object %s: %w", objectName, err)
	}
	return nil
}

// URL 未开启公开链接时返回预签名地址，签名失败退回公开地址
func (s *Store) URL(objectName string) string {
	if objectName == "" {
		return ""
	}
	if !s.public && s.client != nil {
		u, err := s.client.PresignedGetObject(context.Background(), s.bucket, objectName, presignExpiry, url.Values{})
		if err == nil {
			return u.String()
		}
		log.Warn("presign object failed", "object", objectName, "err", err)
	}
	return fmt.Sprintf("%s/%s/%s", s.publicBase, s.bucket, objectName)
}

func publicBase(endpoint string) string {
	endpoint = strings.TrimSuffix(endpoint, "/")
	if !strings.Contains(endpoint, "://") {
		endpoint = "https://" + endpoint
	}
	return endpoint
}

// trimScheme minio.New 只接受 host:port
func trimScheme(endpoint string) string {
	if _, rest, ok := strings.Cut(endpoint, "://"); ok {
		return strings.TrimSuffix(rest, "/")
	}
	return strings.TrimSuffix(endpoint, "/")
}
