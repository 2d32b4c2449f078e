package user

import (
	"log"
	"net/http"
	"strconv"

	"github.com/EgorLis/hotel-booking/internal/domain"
	"github.com/EgorLis/hotel-booking/internal/transport/web/logx"
	"github.com/EgorLis/hotel-booking/internal/transport/web/mw"
	v1 "github.com/EgorLis/hotel-booking/internal/transport/web/v1"
)

type Handler struct {
	Log   *log.Logger
	Users domain.UsersRepo
}

// List godoc
// @Summary     Get all users
// @Description Только ROLE_ADMIN.
// @Tags        users
// @Produce     json
// @Success     200 {array} domain.User
// @Router      /v1/users [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	const op = "user.list"
	reqID := mw.RequestIDFromCtx(r.Context())

	users, err := h.Users.ListUsers(r.Context())
	if err != nil {
		logx.Error(h.Log, reqID, op, "query failed", err)
		v1.WriteDomainError(w, r, err)
		return
	}
	logx.Info(h.Log, reqID, op, "ok", "count", len(users))
	v1.WriteJSON(w, r, http.StatusOK, users)
}

// ByID godoc
// @Summary     Get user by id
// @Tags        users
// @Produce     json
// @Param       userID path int true "user id"
// @Success     200 {object} domain.User
// @Failure     404 {object} v1.ErrorObject
// @Router      /v1/users/{userID} [get]
func (h *Handler) ByID(w http.ResponseWriter, r *http.Request) {
	const op = "user.by_id"
	reqID := mw.RequestIDFromCtx(r.Context())

	id, err := strconv.ParseInt(r.PathValue("userID"), 10, 64)
	if err != nil {
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}

	u, err := h.Users.UserByID(r.Context(), id)
	if err != nil {
		logx.Error(h.Log, reqID, op, "lookup failed", err, "user_id", id)
		v1.WriteDomainError(w, r, err)
		return
	}
	v1.WriteJSON(w, r, http.StatusOK, u)
}

// Delete godoc
// @Summary     Delete user
// @Description ROLE_ADMIN либо владелец учётной записи.
// @Tags        users
// @Produce     plain
// @Param       userID path int true "user id"
// @Success     200 {string} string "User deleted successfully"
// @Failure     403 {object} v1.ErrorObject
// @Failure     404 {object} v1.ErrorObject
// @Router      /v1/users/{userID} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	const op = "user.delete"
	reqID := mw.RequestIDFromCtx(r.Context())

	id, err := strconv.ParseInt(r.PathValue("userID"), 10, 64)
	if err != nil {
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}

	// админ может удалить любого, пользователь — только себя
	p, ok := domain.PrincipalFromCtx(r.Context())
	if !ok {
		v1.WriteDomainError(w, r, domain.ErrUnauthorized)
		return
	}
	if !p.HasRole(domain.RoleAdmin) && p.ID != id {
		logx.Error(h.Log, reqID, op, "access denied", domain.ErrForbidden, "user_id", id, "principal", p.ID)
		v1.WriteDomainError(w, r, domain.ErrForbidden)
		return
	}

	if err := h.Users.DeleteUser(r.Context(), id); err != nil {
		logx.Error(h.Log, reqID, op, "delete failed", err, "user_id", id)
		v1.WriteDomainError(w, r, err)
		return
	}
	logx.Info(h.Log, reqID, op, "ok", "user_id", id)
	v1.WriteText(w, r, http.StatusOK, "User deleted successfully")
}
