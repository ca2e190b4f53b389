package minio

import (
	"Ripple/internal/api/config"
	"context"
	"fmt"
	log "log/slog"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Default 未配置 MinIO 时为 nil
var Default *Store

const publicReadPolicy = `{"Version":"2012-10-17","Statement":[{"Effect":"Allow","Principal":{"AWS":["*"]},"Action":["s3:GetObject"],"Resource":["arn:aws:s3:::%s/*"]}]}`

// Init 连接 MinIO 并确保附件桶存在，优先走内网地址
func Init(cfg config.MinIOConfig) error {
	endpoint, useSSL := cfg.ExternalEndpoint, true
	if cfg.InternalEndpoint != "" {
		endpoint, useSSL = cfg.InternalEndpoint, cfg.InternalUseSSL
	}

	client, err := minio.New(trimScheme(endpoint), &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize minio client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err = ensureBucket(ctx, client, cfg.MainBucket, cfg.UsePublicLink); err != nil {
		return err
	}
	Default = NewStore(client, cfg)
	log.Info("MinIO connected", "endpoint", endpoint, "bucket", cfg.MainBucket)
	return nil
}

func ensureBucket(ctx context.Context, client *minio.Client, bucket string, public bool) error {
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return fmt.Errorf("failed to connect to minio server: %w", err)
	}
	if !exists {
		if err = client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
		log.Info("MinIO bucket created", "bucket", bucket)
	}
	if !public {
		return nil
	}
	if err = client.SetBucketPolicy(ctx, bucket, fmt.Sprintf(publicReadPolicy, bucket)); err != nil {
		return fmt.Errorf("failed to set bucket policy: %w", err)
	}
	return nil
}
