package token

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EgorLis/hotel-booking/internal/domain"
)

type memBlacklist struct {
	revoked map[domain.Token]bool
	err     error
}

func newMemBlacklist() *memBlacklist {
	return &memBlacklist{revoked: make(map[domain.Token]bool)}
}

func (m *memBlacklist) Revoke(_ context.Context, t domain.Token) error {
	if m.err != nil {
		return m.err
	}
	m.revoked[t] = true
	return nil
}

func (m *memBlacklist) IsRevoked(_ context.Context, t domain.Token) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	return m.revoked[t], nil
}

func newTestManager(ttl time.Duration, bl domain.TokenBlacklist) *Manager {
	return New(log.New(io.Discard, "", 0), "test-secret-key", "hotel-booking", ttl, bl)
}

func testUser() domain.User {
	return domain.User{
		ID:    42,
		Email: "guest@example.com",
		Roles: []string{domain.RoleUser},
	}
}

func TestIssueVerifySubjectRoundTrip(t *testing.T) {
	m := newTestManager(time.Hour, newMemBlacklist())

	tok, claims, err := m.Issue(context.Background(), testUser())
	require.NoError(t, err)

	assert.True(t, m.Verify(context.Background(), tok))

	subject, err := m.Subject(tok)
	require.NoError(t, err)
	assert.Equal(t, "guest@example.com", subject)

	assert.Equal(t, domain.UserID(42), claims.UserID)
	assert.Equal(t, []string{domain.RoleUser}, claims.Roles)
	assert.Equal(t, time.Hour, claims.ExpiresAt.Sub(claims.IssuedAt))
}

func TestVerifyExpiredToken(t *testing.T) {
	m := newTestManager(-time.Minute, newMemBlacklist())

	tok, _, err := m.Issue(context.Background(), testUser())
	require.NoError(t, err)

	assert.False(t, m.Verify(context.Background(), tok))
}

// Отзыв доминирует над сроком жизни: неистёкший токен после Revoke
// больше никогда не проходит Verify.
func TestRevokeDominatesExpiry(t *testing.T) {
	m := newTestManager(24*time.Hour, newMemBlacklist())

	tok, _, err := m.Issue(context.Background(), testUser())
	require.NoError(t, err)
	require.True(t, m.Verify(context.Background(), tok))

	require.NoError(t, m.Revoke(context.Background(), tok))
	assert.False(t, m.Verify(context.Background(), tok))

	// повторный отзыв — no-op
	require.NoError(t, m.Revoke(context.Background(), tok))
	assert.False(t, m.Verify(context.Background(), tok))
}

func TestVerifyMalformedToken(t *testing.T) {
	m := newTestManager(time.Hour, newMemBlacklist())
	assert.False(t, m.Verify(context.Background(), "not-a-jwt"))
}

func TestVerifyForeignSignature(t *testing.T) {
	bl := newMemBlacklist()
	other := New(log.New(io.Discard, "", 0), "another-secret", "hotel-booking", time.Hour, bl)

	tok, _, err := other.Issue(context.Background(), testUser())
	require.NoError(t, err)

	m := newTestManager(time.Hour, bl)
	assert.False(t, m.Verify(context.Background(), tok))
}

// Сбой хранилища отзывов — отказ в доверии, не пропуск.
func TestVerifyFailsClosedOnBlacklistError(t *testing.T) {
	bl := newMemBlacklist()
	m := newTestManager(time.Hour, bl)

	tok, _, err := m.Issue(context.Background(), testUser())
	require.NoError(t, err)

	bl.err = errors.New("redis: connection refused")
	assert.False(t, m.Verify(context.Background(), tok))
}

func TestSubjectOfGarbage(t *testing.T) {
	m := newTestManager(time.Hour, newMemBlacklist())
	_, err := m.Subject("garbage")
	assert.ErrorIs(t, err, domain.ErrTokenMalformed)
}
