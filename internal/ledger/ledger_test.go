package ledger

import (
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

var twoMembers = []Member{
	{ID: 1, Name: "Alice"},
	{ID: 2, Name: "Bob"},
}

func TestComputeBalances(t *testing.T) {
	threeMembers := append(twoMembers, Member{ID: 3, Name: "Carol"})

	tests := []struct {
		name    string
		members []Member
		entries []Entry
		want    map[int]string
	}{
		{
			name:    "no entries",
			members: twoMembers,
			entries: nil,
			want:    map[int]string{1: "0", 2: "0"},
		},
		{
			name:    "single expense paid by one split to other",
			members: twoMembers,
			entries: []Entry{
				{Kind: KindExpense, Amount: dec("100"), PaidBy: 1, Splits: []Split{{MemberID: 2, Share: dec("100")}}},
			},
			want: map[int]string{1: "100", 2: "-100"},
		},
		{
			name:    "settlement inverts the debt",
			members: twoMembers,
			entries: []Entry{
				{Kind: KindExpense, Amount: dec("100"), PaidBy: 1, Splits: []Split{{MemberID: 2, Share: dec("100")}}},
				NewSettlement(2, 1, dec("100")),
			},
			want: map[int]string{1: "0", 2: "0"},
		},
		{
			name:    "three way split including payer",
			members: threeMembers,
			entries: []Entry{
				{Kind: KindExpense, Amount: dec("90"), PaidBy: 1, Splits: []Split{
					{MemberID: 1, Share: dec("30")},
					{MemberID: 2, Share: dec("30")},
					{MemberID: 3, Share: dec("30")},
				}},
			},
			want: map[int]string{1: "60", 2: "-30", 3: "-30"},
		},
		{
			name:    "removed member references are skipped",
			members: twoMembers,
			entries: []Entry{
				// Member 9 left the group; the entry it paid for stays.
				{Kind: KindExpense, Amount: dec("60"), PaidBy: 9, Splits: []Split{
					{MemberID: 1, Share: dec("30")},
					{MemberID: 2, Share: dec("30")},
				}},
				{Kind: KindExpense, Amount: dec("40"), PaidBy: 1, Splits: []Split{
					{MemberID: 9, Share: dec("20")},
					{MemberID: 2, Share: dec("20")},
				}},
			},
			want: map[int]string{1: "10", 2: "-50"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeBalances(tt.members, tt.entries)
			if len(got) != len(tt.want) {
				t.Fatalf("got balances for %d members, want %d", len(got), len(tt.want))
			}
			for id, wantStr := range tt.want {
				want := dec(wantStr)
				if !got[id].Equal(want) {
					t.Errorf("balance[%d] = %s, want %s", id, got[id], want)
				}
			}
		})
	}
}

func TestComputeBalancesConservation(t *testing.T) {
	members := []Member{{ID: 1, Name: "A"}, {ID: 2, Name: "B"}, {ID: 3, Name: "C"}}
	entries := []Entry{
		{Kind: KindExpense, Amount: dec("120"), PaidBy: 1, Splits: []Split{
			{MemberID: 1, Share: dec("40")}, {MemberID: 2, Share: dec("40")}, {MemberID: 3, Share: dec("40")},
		}},
		{Kind: KindExpense, Amount: dec("33.33"), PaidBy: 2, Splits: []Split{
			{MemberID: 1, Share: dec("11.11")}, {MemberID: 2, Share: dec("11.11")}, {MemberID: 3, Share: dec("11.11")},
		}},
		NewSettlement(3, 1, dec("25")),
		{Kind: KindExpense, Amount: dec("9.50"), PaidBy: 3, Splits: []Split{
			{MemberID: 2, Share: dec("9.50")},
		}},
	}

	total := decimal.Zero
	for _, b := range ComputeBalances(members, entries) {
		total = total.Add(b)
	}
	if !total.Equal(decimal.Zero) {
		t.Errorf("balances sum to %s, want 0", total)
	}
}

func TestComputeBalancesOrderIndependent(t *testing.T) {
	members := []Member{{ID: 1, Name: "A"}, {ID: 2, Name: "B"}}
	entries := []Entry{
		{Kind: KindExpense, Amount: dec("100"), PaidBy: 1, Splits: []Split{{MemberID: 2, Share: dec("100")}}},
		{Kind: KindExpense, Amount: dec("30"), PaidBy: 2, Splits: []Split{{MemberID: 1, Share: dec("30")}}},
		NewSettlement(2, 1, dec("70")),
	}
	reversed := []Entry{entries[2], entries[1], entries[0]}

	forward := ComputeBalances(members, entries)
	backward := ComputeBalances(members, reversed)
	for id := range forward {
		if !forward[id].Equal(backward[id]) {
			t.Errorf("balance[%d] differs by entry order: %s vs %s", id, forward[id], backward[id])
		}
	}
}

func TestValidateEntry(t *testing.T) {
	tests := []struct {
		name    string
		entry   Entry
		wantErr bool
	}{
		{
			name: "valid expense",
			entry: Entry{Kind: KindExpense, Amount: dec("50"), PaidBy: 1, Splits: []Split{
				{MemberID: 1, Share: dec("25")}, {MemberID: 2, Share: dec("25")},
			}},
		},
		{
			name:  "valid settlement",
			entry: NewSettlement(2, 1, dec("10")),
		},
		{
			name:    "unknown kind",
			entry:   Entry{Kind: "refund", Amount: dec("10"), PaidBy: 1, Splits: []Split{{MemberID: 2, Share: dec("10")}}},
			wantErr: true,
		},
		{
			name:    "zero amount",
			entry:   Entry{Kind: KindExpense, Amount: dec("0"), PaidBy: 1, Splits: []Split{{MemberID: 2, Share: dec("0")}}},
			wantErr: true,
		},
		{
			name:    "negative amount",
			entry:   Entry{Kind: KindExpense, Amount: dec("-5"), PaidBy: 1, Splits: []Split{{MemberID: 2, Share: dec("-5")}}},
			wantErr: true,
		},
		{
			name:    "no splits",
			entry:   Entry{Kind: KindExpense, Amount: dec("10"), PaidBy: 1},
			wantErr: true,
		},
		{
			name:    "unknown payer",
			entry:   Entry{Kind: KindExpense, Amount: dec("10"), PaidBy: 7, Splits: []Split{{MemberID: 2, Share: dec("10")}}},
			wantErr: true,
		},
		{
			name:    "unknown split member",
			entry:   Entry{Kind: KindExpense, Amount: dec("10"), PaidBy: 1, Splits: []Split{{MemberID: 7, Share: dec("10")}}},
			wantErr: true,
		},
		{
			name: "negative share",
			entry: Entry{Kind: KindExpense, Amount: dec("10"), PaidBy: 1, Splits: []Split{
				{MemberID: 1, Share: dec("20")}, {MemberID: 2, Share: dec("-10")},
			}},
			wantErr: true,
		},
		{
			name:    "shares do not sum to amount",
			entry:   Entry{Kind: KindExpense, Amount: dec("100"), PaidBy: 1, Splits: []Split{{MemberID: 2, Share: dec("60")}}},
			wantErr: true,
		},
		{
			name: "rounding slack within tolerance",
			entry: Entry{Kind: KindExpense, Amount: dec("100"), PaidBy: 1, Splits: []Split{
				{MemberID: 1, Share: dec("33.33")}, {MemberID: 2, Share: dec("66.66")},
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEntry(twoMembers, tt.entry)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateEntry() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewSettlementShape(t *testing.T) {
	e := NewSettlement(2, 1, dec("42.50"))

	if e.Kind != KindSettlement {
		t.Errorf("kind = %q, want %q", e.Kind, KindSettlement)
	}
	if e.PaidBy != 2 {
		t.Errorf("paid_by = %d, want 2", e.PaidBy)
	}
	if len(e.Splits) != 1 {
		t.Fatalf("splits = %d, want 1", len(e.Splits))
	}
	if e.Splits[0].MemberID != 1 {
		t.Errorf("split member = %d, want 1", e.Splits[0].MemberID)
	}
	if !e.Splits[0].Share.Equal(dec("42.50")) {
		t.Errorf("split share = %s, want 42.50", e.Splits[0].Share)
	}
	if err := ValidateEntry(twoMembers, e); err != nil {
		t.Errorf("settlement failed validation: %v", err)
	}
}
