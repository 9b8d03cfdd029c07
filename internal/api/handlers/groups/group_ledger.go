package groups

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"pennywise/internal/ledger"
	"pennywise/internal/repositories/sqlconnect"
	"pennywise/pkg/utils"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type splitView struct {
	MemberID int             `json:"member_id"`
	Name     string          `json:"name"`
	Share    decimal.Decimal `json:"share"`
}

type entryView struct {
	ID          int             `json:"id"`
	Kind        ledger.Kind     `json:"kind"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	PaidBy      int             `json:"paid_by"`
	PaidByName  string          `json:"paid_by_name"`
	Split       []splitView     `json:"split"`
}

// entryViews resolves member names onto entries for display. Entries
// may reference members who have since been removed; those render as
// "unknown member".
func entryViews(members []ledger.Member, entries []ledger.Entry) []entryView {
	names := make(map[int]string, len(members))
	for _, m := range members {
		names[m.ID] = m.Name
	}
	memberName := func(id int) string {
		if name, ok := names[id]; ok {
			return name
		}
		return "unknown member"
	}

	views := make([]entryView, 0, len(entries))
	for _, e := range entries {
		v := entryView{
			ID:          e.ID,
			Kind:        e.Kind,
			Description: e.Description,
			Amount:      e.Amount,
			PaidBy:      e.PaidBy,
			PaidByName:  memberName(e.PaidBy),
		}
		for _, s := range e.Splits {
			v.Split = append(v.Split, splitView{
				MemberID: s.MemberID,
				Name:     memberName(s.MemberID),
				Share:    s.Share,
			})
		}
		views = append(views, v)
	}
	return views
}

// FUNC TO RECORD A SHARED EXPENSE IN A GROUP
func AddGroupExpenseHandler(w http.ResponseWriter, r *http.Request) {
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

	groupID, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		utils.WriteError(w, "invalid group ID", http.StatusBadRequest)
		return
	}

	userID, ok := userIDFromContext(r)
	if !ok {
		utils.WriteError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	type splitPart struct {
		MemberID int             `json:"member_id"`
		Share    decimal.Decimal `json:"share"`
	}
	type request struct {
		Description string          `json:"description"`
		Amount      decimal.Decimal `json:"amount"`
		PaidBy      int             `json:"paid_by"`
		Split       []splitPart     `json:"split"`
	}

	var req request
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		utils.WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	req.Description = strings.TrimSpace(req.Description)
	if req.Description == "" {
		utils.WriteError(w, "description is required", http.StatusBadRequest)
		return
	}

	entry := ledger.Entry{
		Kind:        ledger.KindExpense,
		Description: req.Description,
		Amount:      req.Amount,
		PaidBy:      req.PaidBy,
	}
	for _, s := range req.Split {
		entry.Splits = append(entry.Splits, ledger.Split{MemberID: s.MemberID, Share: s.Share})
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if _, err := fetchOwnedGroup(ctx, db, groupID, userID); err != nil {
		if err == sql.ErrNoRows {
			utils.WriteError(w, "group not found", http.StatusNotFound)
			return
		}
		utils.WriteError(w, "failed to retrieve group", http.StatusInternalServerError)
		return
	}

	members, err := loadMembers(ctx, db, groupID)
	if err != nil {
		utils.Logger.Errorf("failed to load members: %v", err)
		utils.WriteError(w, "failed to load members", http.StatusInternalServerError)
		return
	}

	if err := ledger.ValidateEntry(members, entry); err != nil {
		utils.WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}

	entryID, err := appendEntry(ctx, db, groupID, entry)
	if err != nil {
		utils.Logger.Errorf("failed to record expense: %v", err)
		utils.WriteError(w, "failed to record expense", http.StatusInternalServerError)
		return
	}

	utils.WriteJSONStatus(w, map[string]interface{}{
		"status":  "success",
		"message": "expense recorded",
		"data": map[string]interface{}{
			"entry_id": entryID,
		},
	}, http.StatusCreated)
}

// FUNC TO RECORD A SETTLEMENT BETWEEN TWO MEMBERS
func SettleUpHandler(w http.ResponseWriter, r *http.Request) {
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

	groupID, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		utils.WriteError(w, "invalid group ID", http.StatusBadRequest)
		return
	}

	userID, ok := userIDFromContext(r)
	if !ok {
		utils.WriteError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	type request struct {
		From   int             `json:"from"`
		To     int             `json:"to"`
		Amount decimal.Decimal `json:"amount"`
	}

	var req request
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		utils.WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if req.From == req.To {
		utils.WriteError(w, "cannot settle with yourself", http.StatusBadRequest)
		return
	}

	entry := ledger.NewSettlement(req.From, req.To, req.Amount)

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if _, err := fetchOwnedGroup(ctx, db, groupID, userID); err != nil {
		if err == sql.ErrNoRows {
			utils.WriteError(w, "group not found", http.StatusNotFound)
			return
		}
		utils.WriteError(w, "failed to retrieve group", http.StatusInternalServerError)
		return
	}

	members, err := loadMembers(ctx, db, groupID)
	if err != nil {
		utils.Logger.Errorf("failed to load members: %v", err)
		utils.WriteError(w, "failed to load members", http.StatusInternalServerError)
		return
	}

	if err := ledger.ValidateEntry(members, entry); err != nil {
		utils.WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}

	entryID, err := appendEntry(ctx, db, groupID, entry)
	if err != nil {
		utils.Logger.Errorf("failed to record settlement: %v", err)
		utils.WriteError(w, "failed to record settlement", http.StatusInternalServerError)
		return
	}

	utils.WriteJSONStatus(w, map[string]interface{}{
		"status":  "success",
		"message": "settlement recorded",
		"data": map[string]interface{}{
			"entry_id": entryID,
		},
	}, http.StatusCreated)
}

// FUNC TO LIST A GROUP'S ENTRY HISTORY
func GetGroupEntriesHandler(w http.ResponseWriter, r *http.Request) {
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

	groupID, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		utils.WriteError(w, "invalid group ID", http.StatusBadRequest)
		return
	}

	userID, ok := userIDFromContext(r)
	if !ok {
		utils.WriteError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if _, err := fetchOwnedGroup(ctx, db, groupID, userID); err != nil {
		if err == sql.ErrNoRows {
			utils.WriteError(w, "group not found", http.StatusNotFound)
			return
		}
		utils.WriteError(w, "failed to retrieve group", http.StatusInternalServerError)
		return
	}

	members, err := loadMembers(ctx, db, groupID)
	if err != nil {
		utils.Logger.Errorf("failed to load members: %v", err)
		utils.WriteError(w, "failed to load members", http.StatusInternalServerError)
		return
	}
	entries, err := loadEntries(ctx, db, groupID)
	if err != nil {
		utils.Logger.Errorf("failed to load entries: %v", err)
		utils.WriteError(w, "failed to load entries", http.StatusInternalServerError)
		return
	}

	views := entryViews(members, entries)

	utils.WriteJSON(w, map[string]interface{}{
		"status": "success",
		"count":  len(views),
		"data":   views,
	})
}

// FUNC TO COMPUTE NET BALANCES FOR EACH CURRENT MEMBER
func GetGroupBalancesHandler(w http.ResponseWriter, r *http.Request) {
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

	groupID, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		utils.WriteError(w, "invalid group ID", http.StatusBadRequest)
		return
	}

	userID, ok := userIDFromContext(r)
	if !ok {
		utils.WriteError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if _, err := fetchOwnedGroup(ctx, db, groupID, userID); err != nil {
		if err == sql.ErrNoRows {
			utils.WriteError(w, "group not found", http.StatusNotFound)
			return
		}
		utils.WriteError(w, "failed to retrieve group", http.StatusInternalServerError)
		return
	}

	members, err := loadMembers(ctx, db, groupID)
	if err != nil {
		utils.Logger.Errorf("failed to load members: %v", err)
		utils.WriteError(w, "failed to load members", http.StatusInternalServerError)
		return
	}
	entries, err := loadEntries(ctx, db, groupID)
	if err != nil {
		utils.Logger.Errorf("failed to load entries: %v", err)
		utils.WriteError(w, "failed to load entries", http.StatusInternalServerError)
		return
	}

	balances := ledger.ComputeBalances(members, entries)

	type balanceView struct {
		MemberID int             `json:"member_id"`
		Name     string          `json:"name"`
		Balance  decimal.Decimal `json:"balance"`
	}

	views := make([]balanceView, 0, len(members))
	for _, m := range members {
		views = append(views, balanceView{
			MemberID: m.ID,
			Name:     m.Name,
			Balance:  balances[m.ID],
		})
	}

	utils.WriteJSON(w, map[string]interface{}{
		"status": "success",
		"data":   views,
	})
}
