// Package budget joins a user's per-category spending limits against
// their transaction history, producing the spent-vs-limit view the
// budgets endpoint and the overspend alert job consume. Pure read-side
// projection; nothing here mutates budgets or transactions.
package budget

import (
	"github.com/shopspring/decimal"

	"pennywise/internal/category"
)

// Limit is one configured budget: a normalized lookup key, the display
// label as the user typed it, and the limit amount.
type Limit struct {
	Key    string
	Label  string
	Amount decimal.Decimal
}

// Txn carries the minimal transaction fields the aggregation needs.
type Txn struct {
	Kind     string // "income" or "expense"
	Category string
	Amount   decimal.Decimal
}

// Spend is the aggregated result for one budgeted category.
type Spend struct {
	Category string          `json:"category"`
	Key      string          `json:"key"`
	Limit    decimal.Decimal `json:"limit"`
	Spent    decimal.Decimal `json:"spent"`
}

// Aggregate sums expense transactions by normalized category and emits
// one row per configured limit, in the order the limits were given.
// Income is ignored. Categories with spend but no limit are absent from
// the output: budgets are opt-in per category.
func Aggregate(limits []Limit, txns []Txn) []Spend {
	spentByKey := make(map[string]decimal.Decimal)
	for _, t := range txns {
		if t.Kind != "expense" {
			continue
		}
		key := category.Normalize(t.Category)
		spentByKey[key] = spentByKey[key].Add(t.Amount.Abs())
	}

	spends := make([]Spend, 0, len(limits))
	for _, l := range limits {
		key := category.Normalize(l.Key)
		spends = append(spends, Spend{
			Category: l.Label,
			Key:      key,
			Limit:    l.Amount,
			Spent:    spentByKey[key],
		})
	}
	return spends
}

// Over reports whether spend has exceeded a positive limit.
func Over(spent, limit decimal.Decimal) bool {
	return limit.IsPositive() && spent.GreaterThan(limit)
}

// Percent returns spend as a percentage of the limit, capped at 100.
// A missing or zero limit yields 0 rather than dividing by zero.
func Percent(spent, limit decimal.Decimal) float64 {
	if !limit.IsPositive() {
		return 0
	}
	pct, _ := spent.Div(limit).Mul(decimal.NewFromInt(100)).Float64()
	if pct > 100 {
		return 100
	}
	return pct
}
