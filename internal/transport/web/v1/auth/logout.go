package auth

import (
	"log"
	"net/http"

	"github.com/EgorLis/hotel-booking/internal/domain"
	"github.com/EgorLis/hotel-booking/internal/transport/web/logx"
	"github.com/EgorLis/hotel-booking/internal/transport/web/mw"
	v1 "github.com/EgorLis/hotel-booking/internal/transport/web/v1"
)

type HandlerLogout struct {
	Log    *log.Logger
	Tokens domain.TokenManager
}

// Logout godoc
// @Summary     Logout (revoke token)
// @Description Завершает сессию: заносит токен из Authorization в блэклист.
// @Description Сессия stateless, кроме отзыва токена гасить на сервере нечего.
// @Tags        auth
// @Produce     plain
// @Success     200 {string} string "Logged out successfully"
// @Failure     400 {object} v1.ErrorObject
// @Failure     500 {object} v1.ErrorObject
// @Router      /v1/auth/logout [post]
func (h *HandlerLogout) Logout(w http.ResponseWriter, r *http.Request) {
	const op = "auth.logout"
	reqID := mw.RequestIDFromCtx(r.Context())
	logx.Info(h.Log, reqID, op, "start", "method", r.Method, "path", r.URL.Path)

	raw := v1.BearerFromRequest(r)
	if raw == "" {
		logx.Error(h.Log, reqID, op, "missing bearer token", domain.ErrBadParams)
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}

	// отзыв идемпотентен: повторный logout того же токена — тот же результат
	if err := h.Tokens.Revoke(r.Context(), domain.Token(raw)); err != nil {
		logx.Error(h.Log, reqID, op, "revoke failed", err)
		v1.WriteDomainError(w, r, domain.ErrUnexpected)
		return
	}

	logx.Info(h.Log, reqID, op, "ok")
	v1.WriteText(w, r, http.StatusOK, "Logged out successfully")
}
