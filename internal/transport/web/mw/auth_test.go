package mw

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EgorLis/hotel-booking/internal/domain"
)

type fakeTokens struct {
	valid       bool
	subject     string
	verifyCalls int
}

func (f *fakeTokens) Issue(context.Context, domain.User) (domain.Token, domain.TokenClaims, error) {
	return "", domain.TokenClaims{}, errors.New("not implemented")
}

func (f *fakeTokens) Subject(domain.Token) (string, error) {
	return f.subject, nil
}

func (f *fakeTokens) Verify(context.Context, domain.Token) bool {
	f.verifyCalls++
	return f.valid
}

func (f *fakeTokens) Revoke(context.Context, domain.Token) error { return nil }

type fakePrincipals struct {
	principal domain.Principal
	err       error
	calls     int
}

func (f *fakePrincipals) PrincipalByEmail(context.Context, string) (domain.Principal, error) {
	f.calls++
	return f.principal, f.err
}

func testDeps(tokens *fakeTokens, principals *fakePrincipals) AuthDeps {
	return AuthDeps{
		Log:        log.New(io.Discard, "", 0),
		Tokens:     tokens,
		Principals: principals,
	}
}

// probe запоминает, дошёл ли запрос и с каким принципалом
type probe struct {
	called    bool
	principal domain.Principal
	hasAuth   bool
}

func (p *probe) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p.called = true
		p.principal, p.hasAuth = domain.PrincipalFromCtx(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func TestAnonymousRequestPassesWithoutPrincipal(t *testing.T) {
	tokens := &fakeTokens{}
	principals := &fakePrincipals{}
	p := &probe{}

	h := Authenticate(testDeps(tokens, principals), p.handler())
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/rooms", nil))

	assert.True(t, p.called)
	assert.False(t, p.hasAuth)
	assert.Zero(t, tokens.verifyCalls, "no header means no store round-trip")
	assert.Zero(t, principals.calls)
}

func TestInvalidTokenProceedsAnonymously(t *testing.T) {
	tokens := &fakeTokens{valid: false}
	principals := &fakePrincipals{}
	p := &probe{}

	h := Authenticate(testDeps(tokens, principals), p.handler())
	req := httptest.NewRequest(http.MethodGet, "/v1/rooms", nil)
	req.Header.Set("Authorization", "Bearer bad-token")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.True(t, p.called)
	assert.False(t, p.hasAuth)
	assert.Equal(t, 1, tokens.verifyCalls)
	assert.Zero(t, principals.calls)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestUnknownIdentityIsRejectedWith401(t *testing.T) {
	tokens := &fakeTokens{valid: true, subject: "ghost@example.com"}
	principals := &fakePrincipals{
		err: fmt.Errorf("no such user: %w", domain.ErrIdentityNotFound),
	}
	p := &probe{}

	h := Authenticate(testDeps(tokens, principals), p.handler())
	req := httptest.NewRequest(http.MethodGet, "/v1/bookings", nil)
	req.Header.Set("Authorization", "Bearer valid-token")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.False(t, p.called, "request must not continue")
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, float64(http.StatusUnauthorized), body["status"])
	assert.Equal(t, "Unauthorized", body["error"])
	assert.Equal(t, "User not found with email: ghost@example.com", body["message"])
	assert.Equal(t, "/v1/bookings", body["path"])
}

func TestAuthenticatedPrincipalAttachedToContext(t *testing.T) {
	want := domain.Principal{ID: 42, Email: "guest@example.com", Roles: []string{domain.RoleUser}}
	tokens := &fakeTokens{valid: true, subject: "guest@example.com"}
	principals := &fakePrincipals{principal: want}
	p := &probe{}

	h := Authenticate(testDeps(tokens, principals), p.handler())
	req := httptest.NewRequest(http.MethodGet, "/v1/bookings", nil)
	req.Header.Set("Authorization", "Bearer valid-token")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.True(t, p.called)
	require.True(t, p.hasAuth)
	assert.Equal(t, want, p.principal)
}

// Неожиданный сбой загрузки личности — анонимный проход, не 500 и не
// фиктивный принципал.
func TestLoaderFailureProceedsAnonymously(t *testing.T) {
	tokens := &fakeTokens{valid: true, subject: "guest@example.com"}
	principals := &fakePrincipals{err: errors.New("pg: connection reset")}
	p := &probe{}

	h := Authenticate(testDeps(tokens, principals), p.handler())
	req := httptest.NewRequest(http.MethodGet, "/v1/rooms", nil)
	req.Header.Set("Authorization", "Bearer valid-token")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.True(t, p.called)
	assert.False(t, p.hasAuth)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRoleWithoutPrincipal(t *testing.T) {
	h := RequireRole(domain.RoleAdmin, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not be reached")
	})
	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/v1/users", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireRoleForbidden(t *testing.T) {
	h := RequireRole(domain.RoleAdmin, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not be reached")
	})
	req := httptest.NewRequest(http.MethodGet, "/v1/users", nil)
	ctx := domain.WithPrincipal(req.Context(), domain.Principal{ID: 1, Roles: []string{domain.RoleUser}})
	rec := httptest.NewRecorder()
	h(rec, req.WithContext(ctx))

	require.Equal(t, http.StatusForbidden, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Access Denied", body["message"])
}

func TestRequireRoleAllows(t *testing.T) {
	called := false
	h := RequireRole(domain.RoleAdmin, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})
	req := httptest.NewRequest(http.MethodGet, "/v1/users", nil)
	ctx := domain.WithPrincipal(req.Context(), domain.Principal{ID: 1, Roles: []string{domain.RoleUser, domain.RoleAdmin}})
	h(httptest.NewRecorder(), req.WithContext(ctx))

	assert.True(t, called)
}

func TestExtractBearer(t *testing.T) {
	assert.Equal(t, "abc", extractBearer("Bearer abc"))
	assert.Equal(t, "abc", extractBearer("bearer abc"))
	assert.Equal(t, "", extractBearer(""))
	assert.Equal(t, "", extractBearer("Basic abc"))
	assert.Equal(t, "", extractBearer("Bearer"))
}
