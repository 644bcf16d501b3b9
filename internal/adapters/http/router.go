// Package http wires handlers and middleware into the API router.
package http

import (
	"net/http"

	"userhub/internal/adapters/http/middleware"
	"userhub/internal/adapters/http/response"
	"userhub/internal/config"
	"userhub/internal/domain"
	"userhub/internal/logger"
)

type RouterDeps struct {
	Auth *AuthHandler
	User *UserHandler

	Tokens domain.TokenVerifier
	Users  domain.UserRepository
	Writer response.ResponseWriter
	Log    logger.Logger
}

func NewRouter(cfg *config.Config, deps *RouterDeps) http.Handler {
	mux := http.NewServeMux()

	globalMw := middleware.New()
	globalMw.Use(middleware.RequestID())
	globalMw.Use(middleware.Logging(deps.Log))
	globalMw.Use(middleware.Recover(deps.Writer, deps.Log))
	globalMw.Use(middleware.CORS(cfg.AllowedOrigins))
	globalMw.Use(middleware.Authenticate(deps.Tokens, deps.Users, deps.Log))

	userStack := middleware.New()
	userStack.Use(middleware.RequireAuth(deps.Writer))

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	mux.HandleFunc("POST /api/auth/register", deps.Auth.Register)
	mux.HandleFunc("POST /api/auth/login", deps.Auth.Login)
	mux.Handle("GET /api/auth/me", userStack.Then(http.HandlerFunc(deps.Auth.Me)))

	mux.Handle("GET /api/users", userStack.Then(http.HandlerFunc(deps.User.Index)))
	mux.Handle("POST /api/users", userStack.Then(http.HandlerFunc(deps.User.Store)))
	mux.Handle("GET /api/users/{id}", userStack.Then(http.HandlerFunc(deps.User.Show)))
	mux.Handle("PUT /api/users/{id}", userStack.Then(http.HandlerFunc(deps.User.Update)))
	mux.Handle("DELETE /api/users/{id}", userStack.Then(http.HandlerFunc(deps.User.Destroy)))

	return globalMw.Apply(mux)
}
