package token

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/EgorLis/hotel-booking/internal/domain"
)

type Manager struct {
	log       *log.Logger
	secret    []byte
	issuer    string
	ttl       time.Duration
	blacklist domain.TokenBlacklist
}

func New(logger *log.Logger, secret, issuer string, ttl time.Duration, bl domain.TokenBlacklist) *Manager {
	return &Manager{log: logger, secret: []byte(secret), issuer: issuer, ttl: ttl, blacklist: bl}
}

// внутренний тип для подписи/парсинга с jwt.RegisteredClaims
type jwtClaims struct {
	UserID domain.UserID `json:"id"`
	Roles  []string      `json:"roles"`
	jwt.RegisteredClaims
}

// Ensure: Manager implements domain.TokenManager
var _ domain.TokenManager = (*Manager)(nil)

// Issue выпускает JWT: sub=email, id, roles, iat, exp=now+ttl, подпись HS256
func (m *Manager) Issue(_ context.Context, u domain.User) (domain.Token, domain.TokenClaims, error) {
	now := time.Now().UTC()

	cl := jwtClaims{
		UserID: u.ID,
		Roles:  u.Roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.issuer,
			Subject:   u.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, cl)
	tokenStr, err := t.SignedString(m.secret)
	if err != nil {
		return "", domain.TokenClaims{}, err
	}

	return domain.Token(tokenStr), domain.TokenClaims{
		Subject:   cl.Subject,
		UserID:    cl.UserID,
		Roles:     cl.Roles,
		IssuedAt:  cl.IssuedAt.Time,
		ExpiresAt: cl.ExpiresAt.Time,
	}, nil
}

// Subject возвращает sub без проверки сроков. Доверия сам по себе не даёт:
// перед решением о доступе обязательно Verify.
func (m *Manager) Subject(t domain.Token) (string, error) {
	var out jwtClaims
	_, err := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	).ParseWithClaims(string(t), &out, func(*jwt.Token) (any, error) {
		return m.secret, nil
	})
	if err != nil {
		return "", domain.ErrTokenMalformed
	}
	return out.Subject, nil
}

// Verify коллапсирует любой отказ в false: отзыв, битый токен, плохая
// подпись, истёкший срок. Блэклист спрашивается до парсинга — отозванный
// токен отклоняется независимо от оставшегося срока жизни.
func (m *Manager) Verify(ctx context.Context, t domain.Token) bool {
	revoked, err := m.blacklist.IsRevoked(ctx, t)
	if err != nil {
		// отказ хранилища = отказ в доверии, но никогда не в фиктивной личности
		m.log.Printf("blacklist lookup failed: %v", err)
		return false
	}
	if revoked {
		m.log.Printf("token is revoked: %v", domain.ErrTokenRevoked)
		return false
	}

	var out jwtClaims
	_, err = jwt.ParseWithClaims(string(t), &out, func(*jwt.Token) (any, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenMalformed):
			m.log.Printf("invalid token: %v", err)
		case errors.Is(err, jwt.ErrTokenExpired):
			m.log.Printf("token is expired: %v", err)
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			m.log.Printf("bad token signature: %v", err)
		default:
			m.log.Printf("token verification failed: %v", err)
		}
		return false
	}
	return true
}

// Revoke записывает сырую строку токена в блэклист. Идемпотентно.
func (m *Manager) Revoke(ctx context.Context, t domain.Token) error {
	return m.blacklist.Revoke(ctx, t)
}
