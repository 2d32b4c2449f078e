package domain

import (
	"context"
)

type UsersRepo interface {
	Close()
	Ping(context.Context) error
	CreateUser(ctx context.Context, email string, passHash []byte, roles []string) (User, error)
	UserByEmail(ctx context.Context, email string) (User, error)
	UserByID(ctx context.Context, id UserID) (User, error)
	ListUsers(ctx context.Context) ([]User, error)
	DeleteUser(ctx context.Context, id UserID) error
}

type RolesRepo interface {
	CreateRole(ctx context.Context, name string) (Role, error)
	RoleByID(ctx context.Context, id RoleID) (Role, error)
	ListRoles(ctx context.Context) ([]Role, error)
	DeleteRole(ctx context.Context, id RoleID) error
	AssignRole(ctx context.Context, userID UserID, roleID RoleID) error
	UnassignRole(ctx context.Context, userID UserID, roleID RoleID) error
}

type RoomsRepo interface {
	CreateRoom(ctx context.Context, room Room) (Room, error)
	RoomByID(ctx context.Context, id RoomID) (Room, error)
	ListRooms(ctx context.Context) ([]Room, error)
	UpdateRoom(ctx context.Context, room Room) (Room, error)
	DeleteRoom(ctx context.Context, id RoomID) error
	RoomTypes(ctx context.Context) ([]string, error)
	// Номера заданного типа без броней, пересекающих [checkIn, checkOut]
	AvailableRooms(ctx context.Context, checkIn, checkOut Date, roomType string) ([]Room, error)
}

type BookingsRepo interface {
	ListBookings(ctx context.Context) ([]Booking, error)
	BookingByConfirmationCode(ctx context.Context, code string) (Booking, error)
	BookingsByEmail(ctx context.Context, email string) ([]Booking, error)
	BookingsByRoom(ctx context.Context, roomID RoomID) ([]Booking, error)
	DeleteBooking(ctx context.Context, id BookingID) error
	// Проверка доступности и вставка выполняются под блокировкой строки
	// комнаты — см. postgres.PGRepo.CreateBooking
	CreateBooking(ctx context.Context, b Booking, availCheck func(existing []Booking) error) (Booking, error)
}
