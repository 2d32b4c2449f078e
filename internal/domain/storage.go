package domain

import (
	"context"
	"io"
)

// Хранилище фотографий номеров (S3/MinIO)
type PhotoStorage interface {
	// Сохранение фото, возвращает ключ объекта
	Put(ctx context.Context, r io.Reader, size int64, contentType string) (string, error)
	// Получение фото для отдачи клиенту (stream)
	Get(ctx context.Context, key string) (rc io.ReadCloser, contentType string, err error)
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
}
