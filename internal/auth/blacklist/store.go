package blacklist

import (
	"context"

	"github.com/EgorLis/hotel-booking/internal/domain"
)

// KV — минимальный интерфейс, который нам нужен от кеша.
type KV interface {
	SetNX(ctx context.Context, key string, val []byte, ttlSeconds int) (bool, error)
	Exists(ctx context.Context, key string) (bool, error)
}

// Store — append-only множество отозванных токенов.
// Ключ — сырая строка токена; записи не чистятся, возможная уборка
// по exp токена — открытый вопрос.
type Store struct {
	kv KV
}

func NewStore(kv KV) *Store {
	return &Store{kv: kv}
}

var _ domain.TokenBlacklist = (*Store)(nil)

// Revoke помечает токен отозванным. SETNX: повторный отзыв — no-op.
func (s *Store) Revoke(ctx context.Context, t domain.Token) error {
	_, err := s.kv.SetNX(ctx, domain.CacheKeyRevokedToken(t), []byte("1"), 0)
	return err
}

func (s *Store) IsRevoked(ctx context.Context, t domain.Token) (bool, error) {
	return s.kv.Exists(ctx, domain.CacheKeyRevokedToken(t))
}
