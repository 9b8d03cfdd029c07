package models

import "database/sql"

type User struct {
	ID           int            `json:"id,omitempty" db:"id,omitempty"`
	Name         string         `json:"name,omitempty" db:"name,omitempty"`
	Email        string         `json:"email,omitempty" db:"email,omitempty"`
	Password     string         `json:"password,omitempty" db:"password,omitempty"`
	RefreshToken sql.NullString `json:"-" db:"refresh_token,omitempty"`
	CreatedAt    sql.NullString `json:"created_at,omitempty" db:"created_at,omitempty"`
}
