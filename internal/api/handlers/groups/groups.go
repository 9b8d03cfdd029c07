package groups

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"pennywise/internal/ledger"
	"pennywise/internal/models"
	"pennywise/internal/repositories/sqlconnect"
	"pennywise/pkg/utils"
	"strconv"
	"strings"
	"time"
)

// FUNC TO CREATE A GROUP
func CreateGroupHandler(w http.ResponseWriter, r *http.Request) {
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
		Name    string   `json:"name"`
		Members []string `json:"members"`
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
		utils.WriteError(w, "group name is required", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		utils.Logger.Errorf("failed to start transaction: %v", err)
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	res, err := tx.ExecContext(ctx, "INSERT INTO `groups` (user_id, name) VALUES (?, ?)", userID, req.Name)
	if err != nil {
		tx.Rollback()
		utils.Logger.Errorf("failed to create group: %v", err)
		utils.WriteError(w, "failed to create group", http.StatusInternalServerError)
		return
	}

	groupID, _ := res.LastInsertId()

	for _, name := range req.Members {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, err := tx.ExecContext(ctx, "INSERT INTO group_members (group_id, name) VALUES (?, ?)", groupID, name); err != nil {
			tx.Rollback()
			utils.Logger.Errorf("failed to add member: %v", err)
			utils.WriteError(w, "failed to add member", http.StatusInternalServerError)
			return
		}
	}

	if err := tx.Commit(); err != nil {
		utils.WriteError(w, "failed to commit transaction", http.StatusInternalServerError)
		return
	}

	utils.WriteJSONStatus(w, map[string]interface{}{
		"status":  "success",
		"message": "group created",
		"data": map[string]interface{}{
			"group_id": groupID,
			"name":     req.Name,
		},
	}, http.StatusCreated)
}

// FUNC TO GET ALL GROUPS FOR THE LOGGED IN USER
func GetMyGroupsHandler(w http.ResponseWriter, r *http.Request) {
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

	rows, err := db.QueryContext(ctx, "SELECT id, name, created_at FROM `groups` WHERE user_id = ? ORDER BY id", userID)
	if err != nil {
		utils.Logger.Errorf("failed to fetch groups: %v", err)
		utils.WriteError(w, "failed to fetch groups", http.StatusInternalServerError)
		return
	}
	defer rows.Close()

	var groups []models.Group
	for rows.Next() {
		var g models.Group
		if err := rows.Scan(&g.ID, &g.Name, &g.CreatedAt); err != nil {
			utils.Logger.Errorf("error scanning group: %v", err)
			utils.WriteError(w, "error reading groups", http.StatusInternalServerError)
			return
		}
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		utils.WriteError(w, "error finalizing groups read", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, map[string]interface{}{
		"status": "success",
		"count":  len(groups),
		"data":   groups,
	})
}

// FUNC TO GET ONE GROUP WITH ITS MEMBERS
func GetGroupByIDHandler(w http.ResponseWriter, r *http.Request) {
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

	group, err := fetchOwnedGroup(ctx, db, groupID, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			utils.WriteError(w, "group not found", http.StatusNotFound)
			return
		}
		utils.WriteError(w, "failed to retrieve group", http.StatusInternalServerError)
		return
	}

	rows, err := db.QueryContext(ctx,
		"SELECT id, group_id, name, created_at FROM group_members WHERE group_id = ? ORDER BY id", groupID)
	if err != nil {
		utils.Logger.Errorf("failed to load members: %v", err)
		utils.WriteError(w, "failed to load members", http.StatusInternalServerError)
		return
	}
	defer rows.Close()

	var members []models.GroupMember
	for rows.Next() {
		var m models.GroupMember
		if err := rows.Scan(&m.ID, &m.GroupID, &m.Name, &m.CreatedAt); err != nil {
			utils.Logger.Errorf("error scanning member: %v", err)
			utils.WriteError(w, "error reading members", http.StatusInternalServerError)
			return
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		utils.WriteError(w, "error finalizing members read", http.StatusInternalServerError)
		return
	}

	entries, err := loadEntries(ctx, db, groupID)
	if err != nil {
		utils.Logger.Errorf("failed to load entries: %v", err)
		utils.WriteError(w, "failed to load entries", http.StatusInternalServerError)
		return
	}

	current := make([]ledger.Member, 0, len(members))
	for _, m := range members {
		current = append(current, ledger.Member{ID: m.ID, Name: m.Name})
	}

	utils.WriteJSON(w, map[string]interface{}{
		"status": "success",
		"data": map[string]interface{}{
			"group":   group,
			"members": members,
			"entries": entryViews(current, entries),
		},
	})
}

// FUNC TO RENAME A GROUP
func UpdateGroupHandler(w http.ResponseWriter, r *http.Request) {
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
		utils.WriteError(w, "group name is required", http.StatusBadRequest)
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

	if _, err := db.ExecContext(ctx, "UPDATE `groups` SET name = ? WHERE id = ?", req.Name, groupID); err != nil {
		utils.Logger.Errorf("failed to update group: %v", err)
		utils.WriteError(w, "failed to update group", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, map[string]interface{}{
		"status":  "success",
		"message": "group updated",
		"data": map[string]interface{}{
			"group_id": groupID,
			"name":     req.Name,
		},
	})
}

// FUNC TO DELETE A GROUP AND ITS HISTORY
func DeleteGroupHandler(w http.ResponseWriter, r *http.Request) {
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

	res, err := db.ExecContext(ctx, "DELETE FROM `groups` WHERE id = ? AND user_id = ?", groupID, userID)
	if err != nil {
		utils.Logger.Errorf("failed to delete group: %v", err)
		utils.WriteError(w, "failed to delete group", http.StatusInternalServerError)
		return
	}

	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		utils.WriteError(w, "group not found", http.StatusNotFound)
		return
	}

	utils.WriteJSON(w, map[string]interface{}{
		"status":  "success",
		"message": "group deleted",
	})
}

// FUNC TO ADD A MEMBER TO A GROUP
func AddGroupMemberHandler(w http.ResponseWriter, r *http.Request) {
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
		utils.WriteError(w, "member name is required", http.StatusBadRequest)
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

	res, err := db.ExecContext(ctx, "INSERT INTO group_members (group_id, name) VALUES (?, ?)", groupID, req.Name)
	if err != nil {
		utils.Logger.Errorf("failed to add member: %v", err)
		utils.WriteError(w, "failed to add member", http.StatusInternalServerError)
		return
	}

	memberID, _ := res.LastInsertId()

	utils.WriteJSONStatus(w, map[string]interface{}{
		"status":  "success",
		"message": "member added",
		"data": map[string]interface{}{
			"member_id": memberID,
			"name":      req.Name,
		},
	}, http.StatusCreated)
}

// FUNC TO RENAME OR REMOVE A GROUP MEMBER
//
// Removing a member never touches group entries that reference it:
// history is immutable once recorded, and such entries render the
// member as "unknown member" afterwards.
func GroupMemberHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPatch && r.Method != http.MethodDelete {
		utils.WriteError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	db := sqlconnect.DB
	if db == nil {
		utils.Logger.Error("DB is not initialized")
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	groupID, err := strconv.Atoi(r.PathValue("groupId"))
	if err != nil {
		utils.WriteError(w, "invalid group ID", http.StatusBadRequest)
		return
	}
	memberID, err := strconv.Atoi(r.PathValue("memberId"))
	if err != nil {
		utils.WriteError(w, "invalid member ID", http.StatusBadRequest)
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

	if r.Method == http.MethodDelete {
		res, err := db.ExecContext(ctx, "DELETE FROM group_members WHERE id = ? AND group_id = ?", memberID, groupID)
		if err != nil {
			utils.Logger.Errorf("failed to remove member: %v", err)
			utils.WriteError(w, "failed to remove member", http.StatusInternalServerError)
			return
		}
		rowsAffected, _ := res.RowsAffected()
		if rowsAffected == 0 {
			utils.WriteError(w, "member not found", http.StatusNotFound)
			return
		}

		utils.WriteJSON(w, map[string]interface{}{
			"status":  "success",
			"message": "member removed",
		})
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
		utils.WriteError(w, "member name is required", http.StatusBadRequest)
		return
	}

	res, err := db.ExecContext(ctx, "UPDATE group_members SET name = ? WHERE id = ? AND group_id = ?", req.Name, memberID, groupID)
	if err != nil {
		utils.Logger.Errorf("failed to rename member: %v", err)
		utils.WriteError(w, "failed to rename member", http.StatusInternalServerError)
		return
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		utils.WriteError(w, "member not found", http.StatusNotFound)
		return
	}

	utils.WriteJSON(w, map[string]interface{}{
		"status":  "success",
		"message": "member renamed",
		"data": map[string]interface{}{
			"member_id": memberID,
			"name":      req.Name,
		},
	})
}
