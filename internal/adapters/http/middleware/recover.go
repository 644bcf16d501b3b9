package middleware

import (
	"net/http"
	"runtime/debug"

	"userhub/internal/adapters/http/response"
	"userhub/internal/logger"
)

func Recover(writer response.ResponseWriter, log logger.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					if rec == http.ErrAbortHandler {
						panic(rec)
					}
					log.Error("http: panic recovered",
						"panic", rec,
						"path", r.URL.Path,
						"request_id", GetRequestID(r.Context()),
						"stack", string(debug.Stack()),
					)
					writer.WriteError(w, http.StatusInternalServerError, response.MsgUnexpected)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
