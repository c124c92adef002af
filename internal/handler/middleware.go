package handler

import (
	"context"
	"net"
	"net/http"

	"github.com/msomdec/therapy-admin/internal/domain"
	"github.com/msomdec/therapy-admin/internal/service"
)

type contextKey string

const userContextKey contextKey = "user"

const authCookie = "auth_token"

// UserFromContext extracts the authenticated admin from the request context.
// Returns nil if no user is authenticated.
func UserFromContext(ctx context.Context) *domain.User {
	user, _ := ctx.Value(userContextKey).(*domain.User)
	return user
}

// RequireAuth protects admin routes. It reads the auth_token cookie,
// validates the JWT, loads the user and injects it into the request context.
// Unauthenticated requests get a JSON 401.
func RequireAuth(auth *service.AuthService, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := authenticateRequest(r, auth)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "Not authenticated.")
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func authenticateRequest(r *http.Request, auth *service.AuthService) (*domain.User, error) {
	cookie, err := r.Cookie(authCookie)
	if err != nil {
		return nil, err
	}

	userID, err := auth.ValidateToken(cookie.Value)
	if err != nil {
		return nil, err
	}

	return auth.GetUserByID(r.Context(), userID)
}

// SecurityHeaders sets conservative browser security headers on every
// response. Scripts may only come from this origin and the datastar CDN.
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		h.Set("Content-Security-Policy", "default-src 'self'; script-src 'self' https://cdn.jsdelivr.net; style-src 'self' 'unsafe-inline'; connect-src 'self'")
		next.ServeHTTP(w, r)
	})
}

// RateLimit rejects requests with 429 once the client's bucket is empty.
// Clients are keyed by remote IP.
func RateLimit(limiter *service.LoginLimiter, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		host, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			host = r.RemoteAddr
		}
		if !limiter.Allow(host) {
			writeError(w, http.StatusTooManyRequests, "Too many attempts. Please wait and try again.")
			return
		}
		next.ServeHTTP(w, r)
	})
}
