package domain

import (
	"time"
)

// Базовые идентификаторы (bigserial в БД)
type UserID = int64
type RoleID = int64
type RoomID = int64
type BookingID = int64

// Пользователь
type User struct {
	ID        UserID    `json:"id"`
	Email     string    `json:"email"`
	PassHash  []byte    `json:"-"` // никогда не отдаём наружу
	Roles     []string  `json:"roles"`
	CreatedAt time.Time `json:"created_at"`
}

// Роль (хранится с префиксом ROLE_)
type Role struct {
	ID   RoleID `json:"id"`
	Name string `json:"name"`
}

const (
	RoleUser  = "ROLE_USER"
	RoleAdmin = "ROLE_ADMIN"
)

// Номер отеля
type Room struct {
	ID       RoomID `json:"id"`
	Type     string `json:"roomType"`
	Price    string `json:"roomPrice"` // decimal как строка, чтобы не терять точность
	IsBooked bool   `json:"isBooked"`

	// Где лежит фото (S3/MinIO); пусто — фото нет
	PhotoKey string `json:"-"`
}

// Бронь. Комната — агрегат для проверки пересечений:
// принятые брони одной комнаты не пересекаются (правила — в internal/booking).
type Booking struct {
	ID               BookingID `json:"bookingId"`
	RoomID           RoomID    `json:"roomId"`
	GuestFullName    string    `json:"guestFullName"`
	GuestEmail       string    `json:"guestEmail"`
	Adults           int       `json:"numOfAdults"`
	Children         int       `json:"numOfChildren"`
	TotalGuests      int       `json:"totalNumOfGuests"`
	CheckIn          Date      `json:"checkInDate"`
	CheckOut         Date      `json:"checkOutDate"`
	ConfirmationCode string    `json:"bookingConfirmationCode"`
}

func (b *Booking) CalcTotalGuests() int {
	b.TotalGuests = b.Adults + b.Children
	return b.TotalGuests
}
