package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"

	"plugshop/internal/auth"
	"plugshop/internal/domain/users"
	"plugshop/internal/ratelimiter"
)

type userKey string

const userCtx userKey = "user"

var errMissingToken = errors.New("authorization header is missing or malformed")

func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "no-referrer")
		h.Set("X-XSS-Protection", "1; mode=block")
		next.ServeHTTP(w, r)
	})
}

// noStore keeps credentials and back-office data out of shared caches.
func noStore(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Cache-Control", "no-store, no-cache, must-revalidate, private")
		h.Set("Pragma", "no-cache")
		h.Set("Expires", "0")
		next.ServeHTTP(w, r)
	})
}

// AuthTokenMiddleware answers 401 when no bearer token is sent and 403 when
// the token does not validate.
func (app *application) AuthTokenMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		parts := strings.Split(authHeader, " ")
		if authHeader == "" || len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			app.unauthorizedErrorResponse(w, r, errMissingToken, "authentication token missing")
			return
		}

		jwtToken, err := app.authenticator.ValidateAccessToken(parts[1])
		if err != nil {
			app.forbiddenResponse(w, r, "invalid or expired token")
			return
		}

		claims, err := auth.ClaimsFrom(jwtToken)
		if err != nil {
			app.forbiddenResponse(w, r, "invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), userCtx, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (app *application) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := getClaimsFromContext(r)
		if !ok || !users.Role(claims.Role).CanAdminister() {
			app.forbiddenResponse(w, r, "access denied, administrator rights required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RateLimiterMiddleware counts requests per client IP. A nil limiter lets
// everything through.
func (app *application) RateLimiterMiddleware(limiter ratelimiter.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if limiter == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if allow, retryAfter := limiter.Allow(clientIP(r)); !allow {
				app.rateLimitExceededResponse(w, r, retryAfter)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func getClaimsFromContext(r *http.Request) (auth.Claims, bool) {
	claims, ok := r.Context().Value(userCtx).(auth.Claims)
	return claims, ok
}

// clientIP strips the port middleware.RealIP leaves on RemoteAddr.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
