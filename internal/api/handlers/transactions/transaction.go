package transactions

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"pennywise/internal/category"
	"pennywise/internal/models"
	"pennywise/internal/repositories/sqlconnect"
	"pennywise/pkg/utils"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

func userIDFromContext(r *http.Request) (int, bool) {
	userIdVal := r.Context().Value(utils.ContextKey("userId"))
	userIdFloat, ok := userIdVal.(float64)
	if !ok {
		return 0, false
	}
	return int(userIdFloat), true
}

// FUNC TO RECORD A PERSONAL TRANSACTION
func CreateTransactionHandler(w http.ResponseWriter, r *http.Request) {
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

	userID, ok := userIDFromContext(r)
	if !ok {
		utils.WriteError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	type request struct {
		Type        string          `json:"type"`
		Category    string          `json:"category"`
		Amount      decimal.Decimal `json:"amount"`
		Description string          `json:"description"`
	}

	var req request
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		utils.WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if req.Type != "income" && req.Type != "expense" {
		utils.WriteError(w, "type must be income or expense", http.StatusBadRequest)
		return
	}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		utils.WriteError(w, "amount must be greater than 0", http.StatusBadRequest)
		return
	}

	label := strings.TrimSpace(req.Category)
	key := category.Normalize(req.Category)
	if key == "" {
		utils.WriteError(w, "category is required", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	res, err := db.ExecContext(ctx,
		"INSERT INTO transactions (user_id, txn_type, category_key, category_label, amount, description) VALUES (?, ?, ?, ?, ?, ?)",
		userID, req.Type, key, label, req.Amount, strings.TrimSpace(req.Description),
	)
	if err != nil {
		utils.Logger.Errorf("failed to create transaction: %v", err)
		utils.WriteError(w, "failed to create transaction", http.StatusInternalServerError)
		return
	}

	txnID, _ := res.LastInsertId()

	utils.WriteJSONStatus(w, map[string]interface{}{
		"status":  "success",
		"message": "transaction recorded",
		"data": map[string]interface{}{
			"transaction_id": txnID,
		},
	}, http.StatusCreated)
}

// FUNC TO GET ALL TRANSACTIONS FOR THE LOGGED IN USER
func GetAllUserTransactions(w http.ResponseWriter, r *http.Request) {
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

	page, limit := utils.GetPaginationParams(r)
	offset := (page - 1) * limit

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	query := "SELECT id, user_id, txn_type, category_key, category_label, amount, description, created_at, updated_at FROM transactions WHERE user_id = ?"
	args := []interface{}{userID}

	if txnType := r.URL.Query().Get("type"); txnType != "" {
		if txnType != "income" && txnType != "expense" {
			utils.WriteError(w, "type must be income or expense", http.StatusBadRequest)
			return
		}
		query += " AND txn_type = ?"
		args = append(args, txnType)
	}
	if cat := r.URL.Query().Get("category"); cat != "" {
		query += " AND category_key = ?"
		args = append(args, category.Normalize(cat))
	}

	query = utils.AddSorting(r, query, "created_at", "amount", "category_key", "txn_type")
	query += " LIMIT ? OFFSET ?"
	args = append(args, limit, offset)

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		utils.Logger.Errorf("failed to fetch transactions: %v", err)
		utils.WriteError(w, "failed to fetch transactions", http.StatusInternalServerError)
		return
	}
	defer rows.Close()

	var txns []models.Transaction
	for rows.Next() {
		var t models.Transaction
		if err := rows.Scan(&t.ID, &t.UserID, &t.TxnType, &t.CategoryKey, &t.CategoryLabel, &t.Amount, &t.Description, &t.CreatedAt, &t.UpdatedAt); err != nil {
			utils.Logger.Errorf("error scanning transaction: %v", err)
			utils.WriteError(w, "error reading transactions", http.StatusInternalServerError)
			return
		}
		txns = append(txns, t)
	}
	if err := rows.Err(); err != nil {
		utils.WriteError(w, "error finalizing transactions read", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, map[string]interface{}{
		"status": "success",
		"count":  len(txns),
		"page":   page,
		"limit":  limit,
		"data":   txns,
	})
}

// FUNC TO GET A SINGLE TRANSACTION
func GetTransactionById(w http.ResponseWriter, r *http.Request) {
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

	txnID, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		utils.WriteError(w, "invalid transaction ID", http.StatusBadRequest)
		return
	}

	userID, ok := userIDFromContext(r)
	if !ok {
		utils.WriteError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var t models.Transaction
	err = db.QueryRowContext(ctx,
		"SELECT id, user_id, txn_type, category_key, category_label, amount, description, created_at, updated_at FROM transactions WHERE id = ? AND user_id = ?",
		txnID, userID,
	).Scan(&t.ID, &t.UserID, &t.TxnType, &t.CategoryKey, &t.CategoryLabel, &t.Amount, &t.Description, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			utils.WriteError(w, "transaction not found", http.StatusNotFound)
			return
		}
		utils.Logger.Errorf("failed to fetch transaction: %v", err)
		utils.WriteError(w, "failed to fetch transaction", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, map[string]interface{}{
		"status": "success",
		"data":   t,
	})
}

// FUNC TO UPDATE A TRANSACTION
func UpdateTransactionHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPatch {
		utils.WriteError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	db := sqlconnect.DB
	if db == nil {
		utils.Logger.Error("DB is not initialized")
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	txnID, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		utils.WriteError(w, "invalid transaction ID", http.StatusBadRequest)
		return
	}

	userID, ok := userIDFromContext(r)
	if !ok {
		utils.WriteError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	type request struct {
		Type        *string          `json:"type"`
		Category    *string          `json:"category"`
		Amount      *decimal.Decimal `json:"amount"`
		Description *string          `json:"description"`
	}

	var req request
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		utils.WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	setClauses := []string{}
	args := []interface{}{}

	if req.Type != nil {
		if *req.Type != "income" && *req.Type != "expense" {
			utils.WriteError(w, "type must be income or expense", http.StatusBadRequest)
			return
		}
		setClauses = append(setClauses, "txn_type = ?")
		args = append(args, *req.Type)
	}
	if req.Category != nil {
		key := category.Normalize(*req.Category)
		if key == "" {
			utils.WriteError(w, "category cannot be empty", http.StatusBadRequest)
			return
		}
		setClauses = append(setClauses, "category_key = ?", "category_label = ?")
		args = append(args, key, strings.TrimSpace(*req.Category))
	}
	if req.Amount != nil {
		if req.Amount.LessThanOrEqual(decimal.Zero) {
			utils.WriteError(w, "amount must be greater than 0", http.StatusBadRequest)
			return
		}
		setClauses = append(setClauses, "amount = ?")
		args = append(args, *req.Amount)
	}
	if req.Description != nil {
		setClauses = append(setClauses, "description = ?")
		args = append(args, strings.TrimSpace(*req.Description))
	}

	if len(setClauses) == 0 {
		utils.WriteError(w, "nothing to update", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	query := fmt.Sprintf("UPDATE transactions SET %s WHERE id = ? AND user_id = ?", strings.Join(setClauses, ", "))
	args = append(args, txnID, userID)

	res, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		utils.Logger.Errorf("failed to update transaction: %v", err)
		utils.WriteError(w, "failed to update transaction", http.StatusInternalServerError)
		return
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		utils.WriteError(w, "transaction not found", http.StatusNotFound)
		return
	}

	utils.WriteJSON(w, map[string]interface{}{
		"status":  "success",
		"message": "transaction updated",
	})
}

// FUNC TO DELETE A TRANSACTION
func DeleteTransactionHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		utils.WriteError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	db := sqlconnect.DB
	if db == nil {
		utils.Logger.Error("DB is not initialized")
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	txnID, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		utils.WriteError(w, "invalid transaction ID", http.StatusBadRequest)
		return
	}

	userID, ok := userIDFromContext(r)
	if !ok {
		utils.WriteError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	res, err := db.ExecContext(ctx, "DELETE FROM transactions WHERE id = ? AND user_id = ?", txnID, userID)
	if err != nil {
		utils.Logger.Errorf("failed to delete transaction: %v", err)
		utils.WriteError(w, "failed to delete transaction", http.StatusInternalServerError)
		return
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		utils.WriteError(w, "transaction not found", http.StatusNotFound)
		return
	}

	utils.WriteJSON(w, map[string]interface{}{
		"status":  "success",
		"message": "transaction deleted",
	})
}
