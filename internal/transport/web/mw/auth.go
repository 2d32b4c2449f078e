package mw

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/EgorLis/hotel-booking/internal/domain"
)

type AuthDeps struct {
	Log        *log.Logger
	Tokens     domain.TokenManager
	Principals domain.PrincipalLoader
}

// Authenticate — единый фильтр аутентификации, один проход на запрос.
// Нет заголовка или токен не прошёл Verify — запрос идёт анонимно
// (решения об авторизации принимаются ниже). Валидный токен с
// неизвестным subject — немедленный 401. Иначе принципал прикрепляется
// к контексту запроса и не меняется до его конца.
func Authenticate(deps AuthDeps, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := extractBearer(r.Header.Get("Authorization"))
		if raw == "" {
			next.ServeHTTP(w, r) // без пользователя
			return
		}

		t := domain.Token(raw)
		if !deps.Tokens.Verify(r.Context(), t) {
			next.ServeHTTP(w, r) // не валидный — просто идём как неавторизованный
			return
		}

		subject, err := deps.Tokens.Subject(t)
		if err != nil {
			// после успешного Verify такого быть не должно
			deps.Log.Printf("cannot resolve token subject: %v", err)
			next.ServeHTTP(w, r)
			return
		}

		p, err := deps.Principals.PrincipalByEmail(r.Context(), subject)
		if err != nil {
			if errors.Is(err, domain.ErrIdentityNotFound) {
				deps.Log.Printf("user not found with email: %s", subject)
				WriteUnauthorized(w, r, "User not found with email: "+subject)
				return
			}
			// неожиданный сбой: продолжаем анонимно, но никогда
			// не подставляем фиктивную личность
			deps.Log.Printf("cannot set user authentication: %v", err)
			next.ServeHTTP(w, r)
			return
		}

		next.ServeHTTP(w, r.WithContext(domain.WithPrincipal(r.Context(), p)))
	})
}

// RequireRole — защита отдельных маршрутов по роли принципала
func RequireRole(role string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := domain.PrincipalFromCtx(r.Context())
		if !ok {
			WriteUnauthorized(w, r, "Full authentication is required to access this resource")
			return
		}
		if !p.HasRole(role) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusForbidden)
			_ = json.NewEncoder(w).Encode(map[string]any{
				"status":  http.StatusForbidden,
				"error":   "Forbidden",
				"message": "Access Denied",
				"path":    r.URL.Path,
			})
			return
		}
		next(w, r)
	}
}

// WriteUnauthorized пишет структурный 401 {status, error, message, path}
func WriteUnauthorized(w http.ResponseWriter, r *http.Request, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"status":  http.StatusUnauthorized,
		"error":   "Unauthorized",
		"message": msg,
		"path":    r.URL.Path,
	})
}

func extractBearer(h string) string {
	if len(h) > 7 && strings.EqualFold(h[:7], "Bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}
