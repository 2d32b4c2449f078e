package web

import (
	"context"
	"log"
	"net/http"
	"time"

	bookingsvc "github.com/EgorLis/hotel-booking/internal/booking"
	"github.com/EgorLis/hotel-booking/internal/config"
	"github.com/EgorLis/hotel-booking/internal/domain"
	"github.com/EgorLis/hotel-booking/internal/transport/web/mw"
	authv1 "github.com/EgorLis/hotel-booking/internal/transport/web/v1/auth"
	bookingv1 "github.com/EgorLis/hotel-booking/internal/transport/web/v1/booking"
	"github.com/EgorLis/hotel-booking/internal/transport/web/v1/health"
	rolev1 "github.com/EgorLis/hotel-booking/internal/transport/web/v1/role"
	roomv1 "github.com/EgorLis/hotel-booking/internal/transport/web/v1/room"
	userv1 "github.com/EgorLis/hotel-booking/internal/transport/web/v1/user"
)

type Server struct {
	log    *log.Logger
	server *http.Server
	cfg    *config.Config
}

func New(logger *log.Logger, cfg *config.Config, rep Repos, auth AuthDeps, photos domain.PhotoStorage, cache domain.Cache) *Server {
	sub := func(name string) *log.Logger {
		return log.New(logger.Writer(), logger.Prefix()+"["+name+"] ", logger.Flags())
	}

	bookings := bookingsvc.NewService(sub("booking"), rep.Bookings)

	h := handlers{
		health:   &health.Handler{Log: sub("health"), DB: rep.Users, Cache: cache, Storage: photos},
		login:    &authv1.HandlerLogin{Log: sub("auth"), Users: rep.Users, Hasher: auth.Hasher, Tokens: auth.Tokens},
		logout:   &authv1.HandlerLogout{Log: sub("auth"), Tokens: auth.Tokens},
		register: &authv1.HandlerRegister{Log: sub("auth"), Users: rep.Users, Hasher: auth.Hasher},
		bookings: &bookingv1.Handler{Log: sub("booking"), Service: bookings},
		rooms:    &roomv1.Handler{Log: sub("room"), Rooms: rep.Rooms, Photos: photos, Cache: cache},
		users:    &userv1.Handler{Log: sub("user"), Users: rep.Users},
		roles:    &rolev1.Handler{Log: sub("role"), Roles: rep.Roles},
	}

	authMW := mw.AuthDeps{Log: sub("authmw"), Tokens: auth.Tokens, Principals: auth.Principals}

	srv := &http.Server{
		Addr:              cfg.AppPort,
		Handler:           newRouter(h, authMW, logger),
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		MaxHeaderBytes:    1 << 20,
		ReadHeaderTimeout: 2 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return &Server{server: srv, cfg: cfg, log: logger}
}

func (ws *Server) Run() {
	ws.log.Printf("started on %s", ws.server.Addr)
	if err := ws.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		ws.log.Fatalf("error: %v", err)
	}
}

func (ws *Server) Close(ctx context.Context) {
	if err := ws.server.Shutdown(ctx); err != nil {
		ws.log.Printf("forced to shutdown: %v", err)
	}
	ws.log.Println("exited gracefully")
}
