package budgets

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"pennywise/internal/budget"
	"pennywise/internal/category"
	"pennywise/internal/repositories/sqlconnect"
	"pennywise/pkg/utils"
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

func loadLimits(ctx context.Context, db *sql.DB, userID int) ([]budget.Limit, error) {
	rows, err := db.QueryContext(ctx,
		"SELECT category_key, category_label, limit_amount FROM budgets WHERE user_id = ? ORDER BY id", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var limits []budget.Limit
	for rows.Next() {
		var l budget.Limit
		if err := rows.Scan(&l.Key, &l.Label, &l.Amount); err != nil {
			return nil, err
		}
		limits = append(limits, l)
	}
	return limits, rows.Err()
}

func loadExpenseTxns(ctx context.Context, db *sql.DB, userID int) ([]budget.Txn, error) {
	rows, err := db.QueryContext(ctx,
		"SELECT txn_type, category_key, amount FROM transactions WHERE user_id = ?", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var txns []budget.Txn
	for rows.Next() {
		var t budget.Txn
		if err := rows.Scan(&t.Kind, &t.Category, &t.Amount); err != nil {
			return nil, err
		}
		txns = append(txns, t)
	}
	return txns, rows.Err()
}

// FUNC TO GET THE SPENT-VS-LIMIT VIEW FOR EVERY BUDGETED CATEGORY
func GetBudgetsHandler(w http.ResponseWriter, r *http.Request) {
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

	limits, err := loadLimits(ctx, db, userID)
	if err != nil {
		utils.Logger.Errorf("failed to load budgets: %v", err)
		utils.WriteError(w, "failed to load budgets", http.StatusInternalServerError)
		return
	}
	txns, err := loadExpenseTxns(ctx, db, userID)
	if err != nil {
		utils.Logger.Errorf("failed to load transactions: %v", err)
		utils.WriteError(w, "failed to load transactions", http.StatusInternalServerError)
		return
	}

	spends := budget.Aggregate(limits, txns)

	type budgetView struct {
		Category string          `json:"category"`
		Key      string          `json:"key"`
		Limit    decimal.Decimal `json:"limit"`
		Spent    decimal.Decimal `json:"spent"`
		Percent  float64         `json:"percent"`
		Over     bool            `json:"over"`
	}

	views := make([]budgetView, 0, len(spends))
	for _, s := range spends {
		views = append(views, budgetView{
			Category: s.Category,
			Key:      s.Key,
			Limit:    s.Limit,
			Spent:    s.Spent,
			Percent:  budget.Percent(s.Spent, s.Limit),
			Over:     budget.Over(s.Spent, s.Limit),
		})
	}

	utils.WriteJSON(w, map[string]interface{}{
		"status": "success",
		"count":  len(views),
		"data":   views,
	})
}

// FUNC TO CREATE OR REPLACE A CATEGORY BUDGET
func SetBudgetHandler(w http.ResponseWriter, r *http.Request) {
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
		Category string          `json:"category"`
		Limit    decimal.Decimal `json:"limit"`
	}

	var req request
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		utils.WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	label := strings.TrimSpace(req.Category)
	key := category.Normalize(req.Category)
	if key == "" {
		utils.WriteError(w, "category is required", http.StatusBadRequest)
		return
	}
	if req.Limit.LessThanOrEqual(decimal.Zero) {
		utils.WriteError(w, "limit must be greater than 0", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	// setting the same category twice replaces the limit, not adds a row
	_, err := db.ExecContext(ctx,
		`INSERT INTO budgets (user_id, category_key, category_label, limit_amount)
		 VALUES (?, ?, ?, ?)
		 ON DUPLICATE KEY UPDATE category_label = VALUES(category_label), limit_amount = VALUES(limit_amount)`,
		userID, key, label, req.Limit,
	)
	if err != nil {
		utils.Logger.Errorf("failed to set budget: %v", err)
		utils.WriteError(w, "failed to set budget", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, map[string]interface{}{
		"status":  "success",
		"message": "budget saved",
		"data": map[string]interface{}{
			"category": label,
			"key":      key,
			"limit":    req.Limit,
		},
	})
}

// FUNC TO REMOVE A CATEGORY BUDGET
func DeleteBudgetHandler(w http.ResponseWriter, r *http.Request) {
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

	userID, ok := userIDFromContext(r)
	if !ok {
		utils.WriteError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	key := category.Normalize(r.PathValue("category"))
	if key == "" {
		utils.WriteError(w, "category is required", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	res, err := db.ExecContext(ctx, "DELETE FROM budgets WHERE user_id = ? AND category_key = ?", userID, key)
	if err != nil {
		utils.Logger.Errorf("failed to delete budget: %v", err)
		utils.WriteError(w, "failed to delete budget", http.StatusInternalServerError)
		return
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		utils.WriteError(w, "budget not found", http.StatusNotFound)
		return
	}

	utils.WriteJSON(w, map[string]interface{}{
		"status":  "success",
		"message": "budget deleted",
	})
}
