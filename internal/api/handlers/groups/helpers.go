package groups

import (
	"context"
	"database/sql"
	"net/http"
	"pennywise/internal/ledger"
	"pennywise/internal/models"
	"pennywise/pkg/utils"
)

// userIDFromContext pulls the authenticated user id set by the JWT
// middleware. JSON numbers arrive as float64.
func userIDFromContext(r *http.Request) (int, bool) {
	idFloat, ok := r.Context().Value(utils.ContextKey("userId")).(float64)
	if !ok {
		return 0, false
	}
	return int(idFloat), true
}

// fetchOwnedGroup loads a group scoped to its owner. sql.ErrNoRows
// covers both "no such group" and "not yours": callers answer 404
// either way so group ids are not probeable across accounts.
func fetchOwnedGroup(ctx context.Context, db *sql.DB, groupID, userID int) (models.Group, error) {
	var group models.Group
	err := db.QueryRowContext(ctx, "SELECT id, user_id, name, created_at FROM `groups` WHERE id = ? AND user_id = ?", groupID, userID).
		Scan(&group.ID, &group.UserID, &group.Name, &group.CreatedAt)
	return group, err
}

// loadMembers returns the group's current member list in insertion order.
func loadMembers(ctx context.Context, db *sql.DB, groupID int) ([]ledger.Member, error) {
	rows, err := db.QueryContext(ctx, "SELECT id, name FROM group_members WHERE group_id = ? ORDER BY id", groupID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []ledger.Member
	for rows.Next() {
		var m ledger.Member
		if err := rows.Scan(&m.ID, &m.Name); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

// loadEntries returns the group's full entry history, oldest first,
// splits included.
func loadEntries(ctx context.Context, db *sql.DB, groupID int) ([]ledger.Entry, error) {
	rows, err := db.QueryContext(ctx,
		"SELECT id, kind, description, amount, paid_by FROM group_entries WHERE group_id = ? ORDER BY id", groupID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []ledger.Entry
	byID := make(map[int]int)
	for rows.Next() {
		var e ledger.Entry
		var kind string
		if err := rows.Scan(&e.ID, &kind, &e.Description, &e.Amount, &e.PaidBy); err != nil {
			return nil, err
		}
		e.Kind = ledger.Kind(kind)
		byID[e.ID] = len(entries)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return entries, nil
	}

	splitRows, err := db.QueryContext(ctx, `
		SELECT s.entry_id, s.member_id, s.share
		FROM entry_splits s
		JOIN group_entries e ON s.entry_id = e.id
		WHERE e.group_id = ?
		ORDER BY s.id
	`, groupID)
	if err != nil {
		return nil, err
	}
	defer splitRows.Close()

	for splitRows.Next() {
		var entryID int
		var s ledger.Split
		if err := splitRows.Scan(&entryID, &s.MemberID, &s.Share); err != nil {
			return nil, err
		}
		if i, ok := byID[entryID]; ok {
			entries[i].Splits = append(entries[i].Splits, s)
		}
	}
	return entries, splitRows.Err()
}

// appendEntry persists a validated ledger entry and its splits in one
// transaction. Entries are append-only; there is no update counterpart.
func appendEntry(ctx context.Context, db *sql.DB, groupID int, e ledger.Entry) (int, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}

	res, err := tx.ExecContext(ctx,
		"INSERT INTO group_entries (group_id, kind, description, amount, paid_by) VALUES (?, ?, ?, ?, ?)",
		groupID, string(e.Kind), e.Description, e.Amount, e.PaidBy)
	if err != nil {
		tx.Rollback()
		return 0, err
	}

	entryID, err := res.LastInsertId()
	if err != nil {
		tx.Rollback()
		return 0, err
	}

	stmt, err := tx.PrepareContext(ctx, "INSERT INTO entry_splits (entry_id, member_id, share) VALUES (?, ?, ?)")
	if err != nil {
		tx.Rollback()
		return 0, err
	}
	defer stmt.Close()

	for _, s := range e.Splits {
		if _, err := stmt.ExecContext(ctx, entryID, s.MemberID, s.Share); err != nil {
			tx.Rollback()
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return int(entryID), nil
}
