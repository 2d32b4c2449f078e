package auth

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EgorLis/hotel-booking/internal/auth/password"
	"github.com/EgorLis/hotel-booking/internal/domain"
)

type fakeUsers struct {
	users map[string]domain.User
}

func (f *fakeUsers) Close()                        {}
func (f *fakeUsers) Ping(context.Context) error    { return nil }
func (f *fakeUsers) CreateUser(_ context.Context, email string, passHash []byte, roles []string) (domain.User, error) {
	if _, ok := f.users[email]; ok {
		return domain.User{}, domain.ErrUserExists
	}
	u := domain.User{ID: domain.UserID(len(f.users) + 1), Email: email, PassHash: passHash, Roles: roles}
	f.users[email] = u
	return u, nil
}
func (f *fakeUsers) UserByEmail(_ context.Context, email string) (domain.User, error) {
	u, ok := f.users[email]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound
	}
	return u, nil
}
func (f *fakeUsers) UserByID(_ context.Context, id domain.UserID) (domain.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return domain.User{}, domain.ErrUserNotFound
}
func (f *fakeUsers) ListUsers(context.Context) ([]domain.User, error) { return nil, nil }
func (f *fakeUsers) DeleteUser(context.Context, domain.UserID) error  { return nil }

type staticTokens struct{}

func (staticTokens) Issue(_ context.Context, u domain.User) (domain.Token, domain.TokenClaims, error) {
	return "issued-token", domain.TokenClaims{Subject: u.Email, UserID: u.ID, Roles: u.Roles}, nil
}
func (staticTokens) Subject(domain.Token) (string, error)    { return "", nil }
func (staticTokens) Verify(context.Context, domain.Token) bool { return true }
func (staticTokens) Revoke(context.Context, domain.Token) error { return nil }

func loginHandler(t *testing.T) (*HandlerLogin, *fakeUsers) {
	t.Helper()

	hasher := password.NewDefault()
	hash, err := hasher.Hash("secret-password")
	require.NoError(t, err)

	users := &fakeUsers{users: map[string]domain.User{
		"guest@example.com": {
			ID:       42,
			Email:    "guest@example.com",
			PassHash: []byte(hash),
			Roles:    []string{domain.RoleUser},
		},
	}}

	return &HandlerLogin{
		Log:    log.New(io.Discard, "", 0),
		Users:  users,
		Hasher: hasher,
		Tokens: staticTokens{},
	}, users
}

func doLogin(h *HandlerLogin, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/v1/auth/login", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Login(rec, req)
	return rec
}

func TestLoginSuccess(t *testing.T) {
	h, _ := loginHandler(t)

	rec := doLogin(h, `{"email":"guest@example.com","password":"secret-password"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		ID    int64    `json:"id"`
		Email string   `json:"email"`
		Token string   `json:"token"`
		Type  string   `json:"type"`
		Roles []string `json:"roles"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(42), resp.ID)
	assert.Equal(t, "guest@example.com", resp.Email)
	assert.Equal(t, "issued-token", resp.Token)
	assert.Equal(t, "Bearer", resp.Type)
	assert.Equal(t, []string{domain.RoleUser}, resp.Roles)
}

func TestLoginWrongPassword(t *testing.T) {
	h, _ := loginHandler(t)
	rec := doLogin(h, `{"email":"guest@example.com","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLoginUnknownUser(t *testing.T) {
	h, _ := loginHandler(t)
	rec := doLogin(h, `{"email":"ghost@example.com","password":"secret-password"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLoginBadJSON(t *testing.T) {
	h, _ := loginHandler(t)
	rec := doLogin(h, `{not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLoginEmptyCredentials(t *testing.T) {
	h, _ := loginHandler(t)
	rec := doLogin(h, `{"email":"","password":""}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
