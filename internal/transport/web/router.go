package web

import (
	"log"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/EgorLis/hotel-booking/internal/docs"
	"github.com/EgorLis/hotel-booking/internal/domain"
	"github.com/EgorLis/hotel-booking/internal/transport/web/mw"
	authv1 "github.com/EgorLis/hotel-booking/internal/transport/web/v1/auth"
	bookingv1 "github.com/EgorLis/hotel-booking/internal/transport/web/v1/booking"
	"github.com/EgorLis/hotel-booking/internal/transport/web/v1/health"
	rolev1 "github.com/EgorLis/hotel-booking/internal/transport/web/v1/role"
	roomv1 "github.com/EgorLis/hotel-booking/internal/transport/web/v1/room"
	userv1 "github.com/EgorLis/hotel-booking/internal/transport/web/v1/user"
)

type handlers struct {
	health   *health.Handler
	login    *authv1.HandlerLogin
	logout   *authv1.HandlerLogout
	register *authv1.HandlerRegister
	bookings *bookingv1.Handler
	rooms    *roomv1.Handler
	users    *userv1.Handler
	roles    *rolev1.Handler
}

func newRouter(h handlers, auth mw.AuthDeps, logger *log.Logger) http.Handler {
	mux := http.NewServeMux()

	admin := func(next http.HandlerFunc) http.HandlerFunc {
		return mw.RequireRole(domain.RoleAdmin, next)
	}

	// health
	mux.HandleFunc("GET /v1/healthz", h.health.Liveness)
	mux.HandleFunc("GET /v1/readyz", h.health.Readiness)

	// auth
	mux.HandleFunc("POST /v1/auth/register", h.register.Register)
	mux.HandleFunc("POST /v1/auth/login", h.login.Login)
	mux.HandleFunc("POST /v1/auth/logout", h.logout.Logout)

	// bookings
	mux.HandleFunc("GET /v1/bookings", admin(h.bookings.List))
	mux.HandleFunc("GET /v1/bookings/confirmation-code/{code}", h.bookings.ByConfirmationCode)
	mux.HandleFunc("GET /v1/bookings/email/{email}", h.bookings.ByEmail)
	mux.HandleFunc("POST /v1/bookings/rooms/{roomID}", h.bookings.Add)
	mux.HandleFunc("DELETE /v1/bookings/{bookingID}", h.bookings.Delete)

	// rooms
	mux.HandleFunc("POST /v1/rooms", admin(limitBody(16<<20, h.rooms.Add)))
	mux.HandleFunc("GET /v1/rooms", h.rooms.List)
	mux.HandleFunc("GET /v1/rooms/types", h.rooms.Types)
	mux.HandleFunc("GET /v1/rooms/available", h.rooms.Available)
	mux.HandleFunc("GET /v1/rooms/{roomID}", h.rooms.ByID)
	mux.HandleFunc("PUT /v1/rooms/{roomID}", admin(limitBody(16<<20, h.rooms.Update)))
	mux.HandleFunc("DELETE /v1/rooms/{roomID}", admin(h.rooms.Delete))
	mux.HandleFunc("GET /v1/rooms/{roomID}/photo", h.rooms.Photo)

	// users
	mux.HandleFunc("GET /v1/users", admin(h.users.List))
	mux.HandleFunc("GET /v1/users/{userID}", h.users.ByID)
	mux.HandleFunc("DELETE /v1/users/{userID}", h.users.Delete)

	// roles
	mux.HandleFunc("GET /v1/roles", h.roles.List)
	mux.HandleFunc("POST /v1/roles", admin(h.roles.Create))
	mux.HandleFunc("POST /v1/roles/{roleID}/users/{userID}", admin(h.roles.Assign))
	mux.HandleFunc("DELETE /v1/roles/{roleID}/users/{userID}", admin(h.roles.Unassign))
	mux.HandleFunc("DELETE /v1/roles/{roleID}", admin(h.roles.Delete))

	// swagger
	mux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	// 🔗 middleware: request id → логирование → аутентификация
	return mw.WithRequestID(mw.Logging(logger)(mw.Authenticate(auth, mux)))
}

func limitBody(n int64, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, n)
		h(w, r)
	}
}
