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

// HandlerRegister обрабатывает POST /v1/auth/register
type HandlerRegister struct {
	Log    *log.Logger
	Users  domain.UsersRepo
	Hasher domain.PasswordHasher
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register godoc
// @Summary     Register new user
// @Description Регистрация нового пользователя. Новому пользователю присваивается ROLE_USER.
// @Tags        auth
// @Accept      json
// @Produce     plain
// @Param       request body registerRequest true "email, password"
// @Success     201 {string} string "Registration successful"
// @Failure     400 {object} v1.ErrorObject
// @Failure     500 {object} v1.ErrorObject
// @Router      /v1/auth/register [post]
func (h *HandlerRegister) Register(w http.ResponseWriter, r *http.Request) {
	const op = "auth.register"
	reqID := mw.RequestIDFromCtx(r.Context())
	logx.Info(h.Log, reqID, op, "start", "method", r.Method, "path", r.URL.Path)

	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logx.Error(h.Log, reqID, op, "bad json", err)
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}

	// валидация (домен)
	if !domain.ValidEmail(req.Email) || !domain.ValidPassword(req.Password) {
		logx.Error(h.Log, reqID, op, "validation failed", domain.ErrBadParams, "email", req.Email)
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}

	// хэш пароля
	hashStr, err := h.Hasher.Hash(req.Password)
	if err != nil {
		logx.Error(h.Log, reqID, op, "hash failed", err)
		v1.WriteDomainError(w, r, domain.ErrUnexpected)
		return
	}

	u, err := h.Users.CreateUser(r.Context(), req.Email, []byte(hashStr), []string{domain.RoleUser})
	if err != nil {
		logx.Error(h.Log, reqID, op, "create user failed", err, "email", req.Email)
		v1.WriteDomainError(w, r, err)
		return
	}

	logx.Info(h.Log, reqID, op, "ok", "user_id", u.ID, "email", u.Email)
	v1.WriteText(w, r, http.StatusCreated, "Registration successful")
}
