package middleware

import (
	"errors"
	"net/http"
	"strings"

	"userhub/internal/adapters/http/response"
	"userhub/internal/domain"
	"userhub/internal/logger"
)

const bearerPrefix = "Bearer "

// Authenticate resolves a bearer token into a user on the request context.
// It never rejects a request; RequireAuth does that downstream.
func Authenticate(tokens domain.TokenVerifier, users domain.UserRepository, log logger.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, bearerPrefix) {
				next.ServeHTTP(w, r)
				return
			}

			ctx := r.Context()
			token := header[len(bearerPrefix):]

			subject, err := tokens.ExtractSubject(token)
			if err != nil {
				log.Warn("auth: cannot extract subject from token", "error", err, "request_id", GetRequestID(ctx))
				next.ServeHTTP(w, r)
				return
			}

			if _, ok := GetUser(ctx); ok || subject == "" {
				next.ServeHTTP(w, r)
				return
			}

			// Deleted users keep valid tokens until expiry, so the store has the final say.
			user, err := users.GetByEmail(ctx, subject)
			if err != nil {
				if errors.Is(err, domain.ErrUserNotFound) {
					log.Warn("auth: token subject not found", "request_id", GetRequestID(ctx))
				} else {
					log.Error("auth: failed to load token subject", "error", err, "request_id", GetRequestID(ctx))
				}
				next.ServeHTTP(w, r)
				return
			}

			valid, err := tokens.Validate(token, user.Email)
			if err != nil {
				log.Warn("auth: token validation failed", "error", err, "request_id", GetRequestID(ctx))
			}
			if valid {
				r = r.WithContext(WithUser(ctx, user))
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireAuth rejects requests that carry no identity.
func RequireAuth(writer response.ResponseWriter) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := GetUser(r.Context()); !ok {
				writer.WriteError(w, http.StatusUnauthorized, response.MsgUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
