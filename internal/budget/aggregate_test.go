package budget

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestAggregate(t *testing.T) {
	tests := []struct {
		name   string
		limits []Limit
		txns   []Txn
		want   []Spend
	}{
		{
			name:   "case folded sums exclude income",
			limits: []Limit{{Key: "food", Label: "Food", Amount: dec("100")}},
			txns: []Txn{
				{Kind: "expense", Category: "Food", Amount: dec("50")},
				{Kind: "expense", Category: "food", Amount: dec("30")},
				{Kind: "income", Category: "Food", Amount: dec("1000")},
			},
			want: []Spend{{Category: "Food", Key: "food", Limit: dec("100"), Spent: dec("80")}},
		},
		{
			name:   "unbudgeted category is invisible",
			limits: []Limit{{Key: "rent", Label: "Rent", Amount: dec("500")}},
			txns: []Txn{
				{Kind: "expense", Category: "travel", Amount: dec("200")},
			},
			want: []Spend{{Category: "Rent", Key: "rent", Limit: dec("500"), Spent: dec("0")}},
		},
		{
			name:   "budget with no spend reports zero",
			limits: []Limit{{Key: "books", Label: "Books", Amount: dec("40")}},
			txns:   nil,
			want:   []Spend{{Category: "Books", Key: "books", Limit: dec("40"), Spent: dec("0")}},
		},
		{
			name: "multiple limits keep their order and labels",
			limits: []Limit{
				{Key: "food", Label: "Food", Amount: dec("100")},
				{Key: "travel", Label: " Travel ", Amount: dec("250")},
			},
			txns: []Txn{
				{Kind: "expense", Category: " TRAVEL", Amount: dec("60")},
				{Kind: "expense", Category: "food ", Amount: dec("15.50")},
			},
			want: []Spend{
				{Category: "Food", Key: "food", Limit: dec("100"), Spent: dec("15.50")},
				{Category: " Travel ", Key: "travel", Limit: dec("250"), Spent: dec("60")},
			},
		},
		{
			name:   "negative amounts counted by absolute value",
			limits: []Limit{{Key: "food", Label: "food", Amount: dec("100")}},
			txns: []Txn{
				{Kind: "expense", Category: "food", Amount: dec("-25")},
				{Kind: "expense", Category: "food", Amount: dec("25")},
			},
			want: []Spend{{Category: "food", Key: "food", Limit: dec("100"), Spent: dec("50")}},
		},
		{
			name:   "no limits yields empty output regardless of spend",
			limits: nil,
			txns: []Txn{
				{Kind: "expense", Category: "food", Amount: dec("50")},
			},
			want: []Spend{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Aggregate(tt.limits, tt.txns)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d rows, want %d", len(got), len(tt.want))
			}
			for i, w := range tt.want {
				if got[i].Category != w.Category {
					t.Errorf("row %d category = %q, want %q", i, got[i].Category, w.Category)
				}
				if got[i].Key != w.Key {
					t.Errorf("row %d key = %q, want %q", i, got[i].Key, w.Key)
				}
				if !got[i].Limit.Equal(w.Limit) {
					t.Errorf("row %d limit = %s, want %s", i, got[i].Limit, w.Limit)
				}
				if !got[i].Spent.Equal(w.Spent) {
					t.Errorf("row %d spent = %s, want %s", i, got[i].Spent, w.Spent)
				}
			}
		})
	}
}

func TestOver(t *testing.T) {
	if Over(dec("80"), dec("100")) {
		t.Error("80 of 100 should not be over")
	}
	if !Over(dec("120"), dec("100")) {
		t.Error("120 of 100 should be over")
	}
	if Over(dec("100"), dec("100")) {
		t.Error("exactly at the limit is not over")
	}
	if Over(dec("50"), dec("0")) {
		t.Error("zero limit never reports over")
	}
}

func TestPercent(t *testing.T) {
	tests := []struct {
		name  string
		spent string
		limit string
		want  float64
	}{
		{"under", "50", "100", 50},
		{"exact", "100", "100", 100},
		{"capped at 100", "250", "100", 100},
		{"zero limit", "50", "0", 0},
		{"zero spend", "0", "100", 0},
		{"fractional", "33", "66", 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Percent(dec(tt.spent), dec(tt.limit))
			if math.Abs(got-tt.want) > 0.01 {
				t.Errorf("Percent(%s, %s) = %v, want %v", tt.spent, tt.limit, got, tt.want)
			}
		})
	}
}
