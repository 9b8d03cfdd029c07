package auth

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"pennywise/internal/models"
	"pennywise/internal/repositories/sqlconnect"
	"pennywise/pkg/utils"
	"strings"
	"time"
)

// FUNC TO SIGN UP A NEW USER
func SignupHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.WriteError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	db := sqlconnect.DB
	if db == nil {
		utils.Logger.Error("DB is not initialized")
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	type request struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	var req request
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		utils.WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Name == "" || req.Email == "" || req.Password == "" {
		utils.WriteError(w, "name, email and password are required", http.StatusBadRequest)
		return
	}

	hashedPwd, err := utils.HashPassword(req.Password)
	if err != nil {
		utils.Logger.Errorf("failed to hash password: %v", err)
		utils.WriteError(w, "error signing up", http.StatusInternalServerError)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	res, err := db.ExecContext(ctx, "INSERT INTO users (name, email, password) VALUES (?, ?, ?)",
		req.Name, req.Email, hashedPwd)
	if err != nil {
		if strings.Contains(err.Error(), "Duplicate entry") {
			utils.WriteError(w, "user already exists, please login", http.StatusConflict)
			return
		}
		utils.Logger.Errorf("failed to insert user: %v", err)
		utils.WriteError(w, "error signing up", http.StatusInternalServerError)
		return
	}

	id, err := res.LastInsertId()
	if err != nil {
		utils.Logger.Errorf("failed to get last insert ID: %v", err)
		utils.WriteError(w, "error signing up", http.StatusInternalServerError)
		return
	}
	userID := int(id)

	accessToken, refreshToken, err := utils.GenerateTokenPair(userID, req.Name, req.Email)
	if err != nil {
		utils.Logger.Errorf("failed to generate tokens: %v", err)
		utils.WriteError(w, "error signing up", http.StatusInternalServerError)
		return
	}

	if _, err := db.ExecContext(ctx, "UPDATE users SET refresh_token = ? WHERE id = ?", refreshToken, userID); err != nil {
		utils.Logger.Errorf("failed to store refresh token: %v", err)
		utils.WriteError(w, "error signing up", http.StatusInternalServerError)
		return
	}

	go func() {
		if err := utils.SendWelcomeEmail(req.Email, req.Name); err != nil {
			utils.Logger.Errorf("failed to send welcome email to %s: %v", req.Email, err)
		}
	}()

	utils.WriteJSONStatus(w, map[string]interface{}{
		"status":        "success",
		"message":       "signup successful",
		"access_token":  accessToken,
		"refresh_token": refreshToken,
		"data": map[string]interface{}{
			"id":    userID,
			"name":  req.Name,
			"email": req.Email,
		},
	}, http.StatusCreated)
}

// FUNC TO LOG IN A USER
func LoginHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.WriteError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	db := sqlconnect.DB
	if db == nil {
		utils.Logger.Error("DB is not initialized")
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	type request struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	var req request
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		utils.WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var user models.User
	err := db.QueryRowContext(ctx, "SELECT id, name, email, password FROM users WHERE email = ?", req.Email).
		Scan(&user.ID, &user.Name, &user.Email, &user.Password)
	if err != nil {
		if err == sql.ErrNoRows {
			utils.WriteError(w, "email or password is wrong", http.StatusForbidden)
			return
		}
		utils.Logger.Errorf("failed to fetch user: %v", err)
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	if err := utils.VerifyPassword(req.Password, user.Password); err != nil {
		utils.WriteError(w, "email or password is wrong", http.StatusForbidden)
		return
	}

	accessToken, refreshToken, err := utils.GenerateTokenPair(user.ID, user.Name, user.Email)
	if err != nil {
		utils.Logger.Errorf("failed to generate tokens: %v", err)
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	if _, err := db.ExecContext(ctx, "UPDATE users SET refresh_token = ? WHERE id = ?", refreshToken, user.ID); err != nil {
		utils.Logger.Errorf("failed to store refresh token: %v", err)
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, map[string]interface{}{
		"status":        "success",
		"message":       "login successful",
		"access_token":  accessToken,
		"refresh_token": refreshToken,
		"data": map[string]interface{}{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
		},
	})
}

// FUNC TO ROTATE A REFRESH TOKEN
func RefreshTokenHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.WriteError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	db := sqlconnect.DB
	if db == nil {
		utils.Logger.Error("DB is not initialized")
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	type request struct {
		RefreshToken string `json:"refresh_token"`
	}

	var req request
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil || req.RefreshToken == "" {
		utils.WriteError(w, "refresh token is required", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var user models.User
	err := db.QueryRowContext(ctx, "SELECT id, name, email FROM users WHERE refresh_token = ?", req.RefreshToken).
		Scan(&user.ID, &user.Name, &user.Email)
	if err != nil {
		if err == sql.ErrNoRows {
			utils.WriteError(w, "invalid refresh token", http.StatusForbidden)
			return
		}
		utils.Logger.Errorf("failed to look up refresh token: %v", err)
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	uid, err := utils.VerifyRefreshToken(req.RefreshToken)
	if err != nil || uid != user.ID {
		utils.WriteError(w, "invalid refresh token", http.StatusForbidden)
		return
	}

	accessToken, refreshToken, err := utils.GenerateTokenPair(user.ID, user.Name, user.Email)
	if err != nil {
		utils.Logger.Errorf("failed to generate tokens: %v", err)
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	if _, err := db.ExecContext(ctx, "UPDATE users SET refresh_token = ? WHERE id = ?", refreshToken, user.ID); err != nil {
		utils.Logger.Errorf("failed to rotate refresh token: %v", err)
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, map[string]interface{}{
		"status":        "success",
		"access_token":  accessToken,
		"refresh_token": refreshToken,
		"data": map[string]interface{}{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
		},
	})
}

// FUNC TO LOG OUT A USER
func LogoutHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.WriteError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	db := sqlconnect.DB
	if db == nil {
		utils.Logger.Error("DB is not initialized")
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	idFloat, ok := r.Context().Value(utils.ContextKey("userId")).(float64)
	if !ok {
		utils.WriteError(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	userID := int(idFloat)

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if _, err := db.ExecContext(ctx, "UPDATE users SET refresh_token = NULL WHERE id = ?", userID); err != nil {
		utils.Logger.Errorf("failed to clear refresh token: %v", err)
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, map[string]interface{}{
		"status":  "success",
		"message": "logged out",
	})
}
