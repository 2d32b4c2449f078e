package domain

import "errors"

// Бизнес-ошибки (маппинг на HTTP коды — в transport/web/v1)
var (
	ErrBadParams        = errors.New("bad_params")         // 400
	ErrUnauthorized     = errors.New("unauthorized")       // 401
	ErrForbidden        = errors.New("forbidden")          // 403
	ErrNotFound         = errors.New("not_found")          // 404
	ErrMethodNotAllowed = errors.New("method_not_allowed") // 405
	ErrUnexpected       = errors.New("unexpected")         // 500

	// Личность из валидного токена не нашлась в хранилище — единственный
	// отказ верификации, который виден клиенту отдельным сообщением (401)
	ErrIdentityNotFound = errors.New("identity_not_found")

	// Брони
	ErrInvalidBookingRange = errors.New("invalid_booking_range") // 400: выезд раньше заезда
	ErrRoomUnavailable     = errors.New("room_unavailable")      // 404: даты заняты
	ErrBookingNotFound     = errors.New("booking_not_found")     // 404
	ErrRoomNotFound        = errors.New("room_not_found")        // 404

	// Пользователи и роли
	ErrUserExists   = errors.New("user_exists")    // 400
	ErrUserNotFound = errors.New("user_not_found") // 404
	ErrRoleExists   = errors.New("role_exists")    // 400
	ErrRoleNotFound = errors.New("role_not_found") // 404

	// Внутренние классы отказа верификации токена — различаются только
	// в логах, клиенту всегда просто "не аутентифицирован"
	ErrTokenMalformed = errors.New("token_malformed")
	ErrTokenExpired   = errors.New("token_expired")
	ErrTokenRevoked   = errors.New("token_revoked")
)
