package auth

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"pennywise/internal/models"
	"pennywise/internal/repositories/sqlconnect"
	"pennywise/pkg/utils"
	"strings"
	"time"
)

const minPasswordLen = 8

// validateNewPassword applies the password policy for profile updates.
func validateNewPassword(password string) error {
	if len(password) < minPasswordLen {
		return errors.New("password must be at least 8 characters")
	}
	return nil
}

func userIDFromContext(r *http.Request) (int, bool) {
	idFloat, ok := r.Context().Value(utils.ContextKey("userId")).(float64)
	if !ok {
		return 0, false
	}
	return int(idFloat), true
}

// FUNC TO GET THE LOGGED IN USER'S PROFILE
func GetProfileHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.WriteError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	db := sqlconnect.DB
	if db == nil {
		utils.Logger.Error("DB is not initialized")
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	userID, ok := userIDFromContext(r)
	if !ok {
		utils.WriteError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var user models.User
	err := db.QueryRowContext(ctx, "SELECT id, name, email, created_at FROM users WHERE id = ?", userID).
		Scan(&user.ID, &user.Name, &user.Email, &user.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			utils.WriteError(w, "user not found", http.StatusNotFound)
			return
		}
		utils.Logger.Errorf("failed to fetch profile: %v", err)
		utils.WriteError(w, "failed to fetch profile", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, map[string]interface{}{
		"status": "success",
		"data":   user,
	})
}

// FUNC TO UPDATE THE LOGGED IN USER'S NAME
func UpdateNameHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		utils.WriteError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	db := sqlconnect.DB
	if db == nil {
		utils.Logger.Error("DB is not initialized")
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	userID, ok := userIDFromContext(r)
	if !ok {
		utils.WriteError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	type request struct {
		Name string `json:"name"`
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
	if req.Name == "" {
		utils.WriteError(w, "name is required", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if _, err := db.ExecContext(ctx, "UPDATE users SET name = ? WHERE id = ?", req.Name, userID); err != nil {
		utils.Logger.Errorf("failed to update name: %v", err)
		utils.WriteError(w, "failed to update name", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, map[string]interface{}{
		"status":  "success",
		"message": "name updated",
		"data": map[string]interface{}{
			"id":   userID,
			"name": req.Name,
		},
	})
}

// FUNC TO UPDATE THE LOGGED IN USER'S EMAIL
func UpdateEmailHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		utils.WriteError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	db := sqlconnect.DB
	if db == nil {
		utils.Logger.Error("DB is not initialized")
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	userID, ok := userIDFromContext(r)
	if !ok {
		utils.WriteError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	type request struct {
		Email string `json:"email"`
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
	if req.Email == "" {
		utils.WriteError(w, "email is required", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if _, err := db.ExecContext(ctx, "UPDATE users SET email = ? WHERE id = ?", req.Email, userID); err != nil {
		if strings.Contains(err.Error(), "Duplicate entry") {
			utils.WriteError(w, "email already in use", http.StatusConflict)
			return
		}
		utils.Logger.Errorf("failed to update email: %v", err)
		utils.WriteError(w, "failed to update email", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, map[string]interface{}{
		"status":  "success",
		"message": "email updated",
		"data": map[string]interface{}{
			"id":    userID,
			"email": req.Email,
		},
	})
}

// FUNC TO UPDATE THE LOGGED IN USER'S PASSWORD
func UpdatePasswordHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		utils.WriteError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	db := sqlconnect.DB
	if db == nil {
		utils.Logger.Error("DB is not initialized")
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	userID, ok := userIDFromContext(r)
	if !ok {
		utils.WriteError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	type request struct {
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

	if err := validateNewPassword(req.Password); err != nil {
		utils.WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}

	hashedPwd, err := utils.HashPassword(req.Password)
	if err != nil {
		utils.Logger.Errorf("failed to hash password: %v", err)
		utils.WriteError(w, "failed to update password", http.StatusInternalServerError)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if _, err := db.ExecContext(ctx, "UPDATE users SET password = ? WHERE id = ?", hashedPwd, userID); err != nil {
		utils.Logger.Errorf("failed to update password: %v", err)
		utils.WriteError(w, "failed to update password", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, map[string]interface{}{
		"status":  "success",
		"message": "password updated",
	})
}
