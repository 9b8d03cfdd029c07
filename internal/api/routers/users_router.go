package routers

import (
	"net/http"
	"pennywise/internal/api/handlers/auth"
)

func usersRouter() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/users/signup", auth.SignupHandler)
	mux.HandleFunc("/users/login", auth.LoginHandler)
	mux.HandleFunc("/users/refresh", auth.RefreshTokenHandler)
	mux.HandleFunc("/users/logout", auth.LogoutHandler)

	mux.HandleFunc("/users/me", auth.GetProfileHandler)
	mux.HandleFunc("/users/name", auth.UpdateNameHandler)
	mux.HandleFunc("/users/email", auth.UpdateEmailHandler)
	mux.HandleFunc("/users/password", auth.UpdatePasswordHandler)

	return mux
}
