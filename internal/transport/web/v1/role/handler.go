package role

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/EgorLis/hotel-booking/internal/domain"
	"github.com/EgorLis/hotel-booking/internal/transport/web/logx"
	"github.com/EgorLis/hotel-booking/internal/transport/web/mw"
	v1 "github.com/EgorLis/hotel-booking/internal/transport/web/v1"
)

type Handler struct {
	Log   *log.Logger
	Roles domain.RolesRepo
}

type createRoleRequest struct {
	Name string `json:"name"`
}

// List godoc
// @Summary     Get all roles
// @Tags        roles
// @Produce     json
// @Success     200 {array} domain.Role
// @Router      /v1/roles [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	const op = "role.list"
	reqID := mw.RequestIDFromCtx(r.Context())

	roles, err := h.Roles.ListRoles(r.Context())
	if err != nil {
		logx.Error(h.Log, reqID, op, "query failed", err)
		v1.WriteDomainError(w, r, err)
		return
	}
	v1.WriteJSON(w, r, http.StatusOK, roles)
}

// Create godoc
// @Summary     Create role
// @Description Имя приводится к верхнему регистру и получает префикс ROLE_.
// @Tags        roles
// @Accept      json
// @Produce     json
// @Param       request body createRoleRequest true "name"
// @Success     201 {object} domain.Role
// @Failure     400 {object} v1.ErrorObject
// @Router      /v1/roles [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	const op = "role.create"
	reqID := mw.RequestIDFromCtx(r.Context())

	var req createRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		logx.Error(h.Log, reqID, op, "bad json", err)
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}

	name := "ROLE_" + strings.ToUpper(req.Name)
	created, err := h.Roles.CreateRole(r.Context(), name)
	if err != nil {
		logx.Error(h.Log, reqID, op, "create failed", err, "name", name)
		v1.WriteDomainError(w, r, err)
		return
	}

	logx.Info(h.Log, reqID, op, "ok", "role_id", created.ID, "name", created.Name)
	v1.WriteJSON(w, r, http.StatusCreated, created)
}

// Assign godoc
// @Summary     Add role to user
// @Tags        roles
// @Produce     plain
// @Param       roleID path int true "role id"
// @Param       userID path int true "user id"
// @Success     200 {string} string "Role assigned successfully"
// @Failure     404 {object} v1.ErrorObject
// @Router      /v1/roles/{roleID}/users/{userID} [post]
func (h *Handler) Assign(w http.ResponseWriter, r *http.Request) {
	const op = "role.assign"
	reqID := mw.RequestIDFromCtx(r.Context())

	roleID, userID, err := parseIDs(r)
	if err != nil {
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}

	// роль должна существовать — сообщение об этом важнее ошибки FK
	if _, err := h.Roles.RoleByID(r.Context(), roleID); err != nil {
		v1.WriteDomainError(w, r, err)
		return
	}

	if err := h.Roles.AssignRole(r.Context(), userID, roleID); err != nil {
		logx.Error(h.Log, reqID, op, "assign failed", err, "role_id", roleID, "user_id", userID)
		v1.WriteDomainError(w, r, err)
		return
	}
	logx.Info(h.Log, reqID, op, "ok", "role_id", roleID, "user_id", userID)
	v1.WriteText(w, r, http.StatusOK, "Role assigned successfully")
}

// Unassign godoc
// @Summary     Remove role from user
// @Tags        roles
// @Produce     plain
// @Param       roleID path int true "role id"
// @Param       userID path int true "user id"
// @Success     200 {string} string "Role removed successfully"
// @Failure     404 {object} v1.ErrorObject
// @Router      /v1/roles/{roleID}/users/{userID} [delete]
func (h *Handler) Unassign(w http.ResponseWriter, r *http.Request) {
	const op = "role.unassign"
	reqID := mw.RequestIDFromCtx(r.Context())

	roleID, userID, err := parseIDs(r)
	if err != nil {
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}

	if _, err := h.Roles.RoleByID(r.Context(), roleID); err != nil {
		v1.WriteDomainError(w, r, err)
		return
	}

	if err := h.Roles.UnassignRole(r.Context(), userID, roleID); err != nil {
		logx.Error(h.Log, reqID, op, "unassign failed", err, "role_id", roleID, "user_id", userID)
		v1.WriteDomainError(w, r, err)
		return
	}
	logx.Info(h.Log, reqID, op, "ok", "role_id", roleID, "user_id", userID)
	v1.WriteText(w, r, http.StatusOK, "Role removed successfully")
}

// Delete godoc
// @Summary     Delete role
// @Tags        roles
// @Produce     plain
// @Param       roleID path int true "role id"
// @Success     200 {string} string "Role deleted successfully"
// @Failure     404 {object} v1.ErrorObject
// @Router      /v1/roles/{roleID} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	const op = "role.delete"
	reqID := mw.RequestIDFromCtx(r.Context())

	roleID, err := strconv.ParseInt(r.PathValue("roleID"), 10, 64)
	if err != nil {
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}

	if err := h.Roles.DeleteRole(r.Context(), roleID); err != nil {
		logx.Error(h.Log, reqID, op, "delete failed", err, "role_id", roleID)
		v1.WriteDomainError(w, r, err)
		return
	}
	logx.Info(h.Log, reqID, op, "ok", "role_id", roleID)
	v1.WriteText(w, r, http.StatusOK, "Role deleted successfully")
}

func parseIDs(r *http.Request) (roleID, userID int64, err error) {
	roleID, err = strconv.ParseInt(r.PathValue("roleID"), 10, 64)
	if err != nil {
		return 0, 0, err
	}
	userID, err = strconv.ParseInt(r.PathValue("userID"), 10, 64)
	return roleID, userID, err
}
