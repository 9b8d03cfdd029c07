package models

import (
	"database/sql"

	"github.com/shopspring/decimal"
)

type Transaction struct {
	ID            int             `json:"id,omitempty" db:"id,omitempty"`
	UserID        int             `json:"user_id,omitempty" db:"user_id,omitempty"`
	TxnType       string          `json:"txn_type,omitempty" db:"txn_type,omitempty"`
	CategoryKey   string          `json:"category_key,omitempty" db:"category_key,omitempty"`
	CategoryLabel string          `json:"category,omitempty" db:"category_label,omitempty"`
	Amount        decimal.Decimal `json:"amount,omitempty" db:"amount,omitempty"`
	Description   string          `json:"description,omitempty" db:"description,omitempty"`
	CreatedAt     sql.NullString  `json:"created_at,omitempty" db:"created_at,omitempty"`
	UpdatedAt     sql.NullString  `json:"updated_at,omitempty" db:"updated_at,omitempty"`
}
