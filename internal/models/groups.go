package models

import "database/sql"

type Group struct {
	ID        int            `json:"id,omitempty" db:"id,omitempty"`
	UserID    int            `json:"user_id,omitempty" db:"user_id,omitempty"`
	Name      string         `json:"name,omitempty" db:"name,omitempty"`
	CreatedAt sql.NullString `json:"created_at,omitempty" db:"created_at,omitempty"`
}
