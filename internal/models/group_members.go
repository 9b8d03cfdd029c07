package models

import "database/sql"

// GroupMember is a name-tagged participant within one group. It is not
// a user account; group entries reference it by id only, and those
// references outlive the member's removal.
type GroupMember struct {
	ID        int            `json:"id,omitempty" db:"id,omitempty"`
	GroupID   int            `json:"group_id,omitempty" db:"group_id,omitempty"`
	Name      string         `json:"name,omitempty" db:"name,omitempty"`
	CreatedAt sql.NullString `json:"created_at,omitempty" db:"created_at,omitempty"`
}
