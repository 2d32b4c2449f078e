package s3

import (
	"context"
	"fmt"
	"io"
	"log"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/EgorLis/hotel-booking/internal/domain"
)

type Config struct {
	Endpoint  string
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
	UseSSL    bool
	PathStyle bool
}

// Storage — фотографии номеров в S3/MinIO.
// Ключ объекта хранится в строке комнаты (rooms.photo_key).
type Storage struct {
	cl     *minio.Client
	bucket string
	logger *log.Logger
}

func New(ctx context.Context, cfg Config, logger *log.Logger) (*Storage, error) {
	opts := &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	}
	if cfg.PathStyle {
		opts.BucketLookup = minio.BucketLookupPath
	}
	cl, err := minio.New(cfg.Endpoint, opts)
	if err != nil {
		return nil, err
	}
	return &Storage{cl: cl, bucket: cfg.Bucket, logger: logger}, nil
}

var _ domain.PhotoStorage = (*Storage)(nil)

// Put загружает фото и возвращает ключ вида "photos/<uuid>".
func (s *Storage) Put(ctx context.Context, r io.Reader, size int64, contentType string) (string, error) {
	key := "photos/" + uuid.NewString()
	info, err := s.cl.PutObject(ctx, s.bucket, key, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		s.logger.Printf("PUT %q failed: %v", key, err)
		return "", err
	}
	s.logger.Printf("PUT %q ok (%d bytes)", key, info.Size)
	return key, nil
}

// Get открывает поток фото для отдачи клиенту.
func (s *Storage) Get(ctx context.Context, key string) (io.ReadCloser, string, error) {
	info, err := s.cl.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{})
	if err != nil {
		s.logger.Printf("STAT %q failed: %v", key, err)
		return nil, "", fmt.Errorf("stat photo %q: %w", key, err)
	}

	obj, err := s.cl.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		s.logger.Printf("GET %q failed: %v", key, err)
		return nil, "", err
	}
	return obj, info.ContentType, nil
}

func (s *Storage) Delete(ctx context.Context, key string) error {
	err := s.cl.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{})
	if err != nil {
		s.logger.Printf("DEL %q failed: %v", key, err)
	}
	return err
}

func (s *Storage) Ping(ctx context.Context) error {
	ok, err := s.cl.BucketExists(ctx, s.bucket)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("bucket %q does not exist", s.bucket)
	}
	return nil
}
