package web

import "github.com/EgorLis/hotel-booking/internal/domain"

type Repos struct {
	Users    domain.UsersRepo
	Roles    domain.RolesRepo
	Rooms    domain.RoomsRepo
	Bookings domain.BookingsRepo
}

type AuthDeps struct {
	Hasher     domain.PasswordHasher
	Tokens     domain.TokenManager
	Principals domain.PrincipalLoader
}
