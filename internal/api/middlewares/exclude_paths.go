package middlewares

import (
	"net/http"
	"strings"
)

type Middleware func(http.Handler) http.Handler

// MiddlewaresExcludePaths wraps a middleware so that the listed paths
// bypass it (login, signup, refresh and other pre-auth endpoints).
func MiddlewaresExcludePaths(mw Middleware, paths ...string) Middleware {
	return func(next http.Handler) http.Handler {
		wrapped := mw(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, path := range paths {
				if strings.HasPrefix(r.URL.Path, path) {
					next.ServeHTTP(w, r)
					return
				}
			}
			wrapped.ServeHTTP(w, r)
		})
	}
}
