package domain

import "context"

// Ключи кеша — единое место, чтобы не расползались по коду.
func CacheKeyRevokedToken(t Token) string { return "revoked:" + string(t) }
func CacheKeyRoomTypes() string           { return "rooms:types" }

// Простой k/v интерфейс. Реализация — Redis.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, val []byte, ttlSeconds int) error
	SetNX(ctx context.Context, key string, val []byte, ttlSeconds int) (bool, error)
	Exists(ctx context.Context, key string) (bool, error)
	Del(ctx context.Context, keys ...string) error
	Ping(context.Context) error
	Close()
}
