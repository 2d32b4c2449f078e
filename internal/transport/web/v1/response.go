package v1

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/EgorLis/hotel-booking/internal/domain"
	"github.com/EgorLis/hotel-booking/internal/transport/web/mw"
)

// ErrorObject — исторический формат ошибки для клиентов:
// сообщение, детали ("uri=<путь>") и дата dd-MM-yyyy.
type ErrorObject struct {
	Message   string      `json:"message"`
	Details   string      `json:"details"`
	TimeStamp domain.Date `json:"timeStamp"`
}

// MapDomainError решает HTTP-статус и текст по умолчанию
func MapDomainError(err error) (httpStatus int, fallback string) {
	switch {
	case errors.Is(err, domain.ErrInvalidBookingRange):
		return http.StatusBadRequest, "Check out date cannot be before check in date"
	case errors.Is(err, domain.ErrBadParams):
		return http.StatusBadRequest, "Bad request parameters"
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusBadRequest, "User already exists"
	case errors.Is(err, domain.ErrRoleExists):
		return http.StatusBadRequest, "Role already exists"
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, "Unauthorized"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "Access Denied"
	// доступность дат исторически отдаётся как 404, не 409
	case errors.Is(err, domain.ErrRoomUnavailable):
		return http.StatusNotFound, "Room is not available for the selected dates"
	case errors.Is(err, domain.ErrBookingNotFound):
		return http.StatusNotFound, "Booking is not found"
	case errors.Is(err, domain.ErrRoomNotFound):
		return http.StatusNotFound, "Room is not found"
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, "User is not found"
	case errors.Is(err, domain.ErrRoleNotFound):
		return http.StatusNotFound, "Role is not found"
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "Not found"
	case errors.Is(err, domain.ErrMethodNotAllowed):
		return http.StatusMethodNotAllowed, "Method not allowed"
	default:
		// Таймауты/отмены/сбои инфраструктуры — как 500
		return http.StatusInternalServerError, "Unexpected error"
	}
}

// clientMessage: текст ошибки без технического суффикса-сентинела
func clientMessage(err error, fallback string) string {
	u := errors.Unwrap(err)
	if u == nil {
		return fallback
	}
	return strings.TrimSuffix(err.Error(), ": "+u.Error())
}

// WriteJSON пишет тело; для HEAD — только заголовки
func WriteJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Request-ID", mw.RequestIDFromCtx(r.Context()))
	w.WriteHeader(status)
	if r.Method == http.MethodHead {
		return
	}
	_ = json.NewEncoder(w).Encode(v)
}

// WriteDomainError маппит бизнес-ошибку в ErrorObject
func WriteDomainError(w http.ResponseWriter, r *http.Request, err error) {
	status, fallback := MapDomainError(err)
	WriteJSON(w, r, status, ErrorObject{
		Message:   clientMessage(err, fallback),
		Details:   "uri=" + r.URL.Path,
		TimeStamp: domain.DateOf(time.Now().UTC()),
	})
}

// WriteText — текстовые подтверждения ("Booking deleted successfully" и т.п.)
func WriteText(w http.ResponseWriter, r *http.Request, status int, msg string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Request-ID", mw.RequestIDFromCtx(r.Context()))
	w.WriteHeader(status)
	_, _ = w.Write([]byte(msg))
}
