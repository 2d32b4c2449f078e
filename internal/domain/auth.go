package domain

import (
	"context"
	"time"
)

// Контракты аутентификации:
// - менеджер токенов выпускает/проверяет JWT и отзывает их через блэклист;
// - загрузчик принципала резолвит subject токена в полную личность;
// - блэклист хранит сырые строки отозванных токенов.

type Token string

type TokenClaims struct {
	Subject   string // email пользователя
	UserID    UserID
	Roles     []string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Principal — личность запроса, собранная фильтром аутентификации.
// После привязки к контексту не меняется; живёт один запрос.
type Principal struct {
	ID    UserID
	Email string
	Roles []string
}

func (p Principal) HasRole(name string) bool {
	for _, r := range p.Roles {
		if r == name {
			return true
		}
	}
	return false
}

// Хеширование паролей
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(plain, encodedHash string) (bool, error)
}

// Управление токенами (JWT, реализация в internal/auth/token).
// Verify коллапсирует все классы отказа в false: битый токен, плохая
// подпись, истёкший срок, отзыв. Subject сам по себе доверия не даёт —
// для решений о доступе сначала Verify.
type TokenManager interface {
	Issue(ctx context.Context, u User) (Token, TokenClaims, error)
	Subject(t Token) (string, error)
	Verify(ctx context.Context, t Token) bool
	Revoke(ctx context.Context, t Token) error
}

// Блэклист токенов (Redis). Ключ — сырая строка токена,
// сам факт наличия записи = токен отозван.
type TokenBlacklist interface {
	Revoke(ctx context.Context, t Token) error
	IsRevoked(ctx context.Context, t Token) (bool, error)
}

// Загрузчик принципала для фильтра аутентификации
type PrincipalLoader interface {
	PrincipalByEmail(ctx context.Context, email string) (Principal, error)
}
