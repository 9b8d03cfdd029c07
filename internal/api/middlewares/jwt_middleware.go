package middlewares

import (
	"context"
	"errors"
	"net/http"
	"os"
	"pennywise/pkg/utils"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// JWTMiddleware authenticates requests from the Authorization header
// and places the token claims on the request context. Both
// "Bearer <token>" and a bare token are accepted.
func JWTMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			utils.WriteError(w, "unauthorized: missing bearer token", http.StatusUnauthorized)
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")

		jwtSecret := os.Getenv("JWT_SECRET")
		if jwtSecret == "" {
			utils.Logger.Error("JWT_SECRET is not configured")
			utils.WriteError(w, "internal server error", http.StatusInternalServerError)
			return
		}

		parsedToken, err := jwt.Parse(token, func(token *jwt.Token) (any, error) {
			return []byte(jwtSecret), nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				utils.WriteError(w, "token expired", http.StatusUnauthorized)
				return
			}
			utils.WriteError(w, "invalid login token", http.StatusUnauthorized)
			return
		}

		if !parsedToken.Valid {
			utils.WriteError(w, "invalid login token", http.StatusUnauthorized)
			return
		}

		claims, ok := parsedToken.Claims.(jwt.MapClaims)
		if !ok {
			utils.WriteError(w, "invalid login token", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), utils.ContextKey("userId"), claims["uid"])
		ctx = context.WithValue(ctx, utils.ContextKey("username"), claims["user"])
		ctx = context.WithValue(ctx, utils.ContextKey("email"), claims["email"])
		ctx = context.WithValue(ctx, utils.ContextKey("expiresAt"), claims["exp"])

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
