package auth

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/EgorLis/hotel-booking/internal/domain"
	"github.com/EgorLis/hotel-booking/internal/transport/web/logx"
	"github.com/EgorLis/hotel-booking/internal/transport/web/mw"
	v1 "github.com/EgorLis/hotel-booking/internal/transport/web/v1"
)

type HandlerLogin struct {
	Log    *log.Logger
	Users  domain.UsersRepo
	Hasher domain.PasswordHasher
	Tokens domain.TokenManager
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	ID    domain.UserID `json:"id"`
	Email string        `json:"email"`
	Token string        `json:"token"`
	Type  string        `json:"type"`
	Roles []string      `json:"roles"`
}

// Login godoc
// @Summary     Authenticate user
// @Description Возвращает JWT при валидных email и пароле.
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body loginRequest true "email, password"
// @Success     200 {object} loginResponse
// @Failure     400 {object} v1.ErrorObject
// @Failure     401 {object} v1.ErrorObject
// @Failure     500 {object} v1.ErrorObject
// @Router      /v1/auth/login [post]
func (h *HandlerLogin) Login(w http.ResponseWriter, r *http.Request) {
	const op = "auth.login"
	reqID := mw.RequestIDFromCtx(r.Context())
	logx.Info(h.Log, reqID, op, "start", "method", r.Method, "path", r.URL.Path)

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logx.Error(h.Log, reqID, op, "bad json", err)
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}

	if req.Email == "" || req.Password == "" {
		logx.Error(h.Log, reqID, op, "empty email or password", domain.ErrBadParams)
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}

	// достаём пользователя
	u, err := h.Users.UserByEmail(r.Context(), req.Email)
	if err != nil {
		logx.Error(h.Log, reqID, op, "user not found", err, "email", req.Email)
		v1.WriteDomainError(w, r, domain.ErrUnauthorized)
		return
	}

	// сверяем пароль
	ok, err := h.Hasher.Verify(req.Password, string(u.PassHash))
	if err != nil || !ok {
		logx.Error(h.Log, reqID, op, "password verify failed", err, "email", req.Email)
		v1.WriteDomainError(w, r, domain.ErrUnauthorized)
		return
	}

	// выдаём токен
	token, _, err := h.Tokens.Issue(r.Context(), u)
	if err != nil {
		logx.Error(h.Log, reqID, op, "issue token failed", err, "user_id", u.ID, "email", u.Email)
		v1.WriteDomainError(w, r, domain.ErrUnexpected)
		return
	}

	logx.Info(h.Log, reqID, op, "ok", "user_id", u.ID, "email", u.Email)
	v1.WriteJSON(w, r, http.StatusOK, loginResponse{
		ID:    u.ID,
		Email: u.Email,
		Token: string(token),
		Type:  "Bearer",
		Roles: u.Roles,
	})
}
