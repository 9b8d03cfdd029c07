// Package ledger computes per-member net balances for a shared-expense
// group by replaying its append-only entry history. It is pure
// computation: loading the group and persisting entries is the caller's
// job.
package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Kind tags the two entry variants. A settlement shares the expense
// shape (payer + splits) rather than being a separate record type, but
// it is distinguished by this tag, never by matching the description.
type Kind string

const (
	KindExpense    Kind = "expense"
	KindSettlement Kind = "settlement"
)

// SettlementDescription is the display text attached to settlement
// entries when they are appended.
const SettlementDescription = "Settlement"

// splitTolerance is how far the sum of split shares may drift from the
// entry amount before an append is rejected (rounding slack only).
var splitTolerance = decimal.NewFromFloat(0.01)

// Member is a participant in a group, identified within that group
// only. Members are name tags, not user accounts.
type Member struct {
	ID   int
	Name string
}

// Split allocates a share of an entry's amount to one member.
type Split struct {
	MemberID int
	Share    decimal.Decimal
}

// Entry is one append-only record in a group's history: a shared
// expense, or a settlement modeled as a degenerate expense whose single
// split pays the full amount to the receiving member.
type Entry struct {
	ID          int
	Kind        Kind
	Description string
	Amount      decimal.Decimal
	PaidBy      int
	Splits      []Split
}

// NewSettlement builds the entry recording that member from repaid
// member to the given amount: payer = from, one split assigning the
// full amount to to. Appending it is purely additive; no prior expense
// is searched for or cancelled.
func NewSettlement(from, to int, amount decimal.Decimal) Entry {
	return Entry{
		Kind:        KindSettlement,
		Description: SettlementDescription,
		Amount:      amount,
		PaidBy:      from,
		Splits:      []Split{{MemberID: to, Share: amount}},
	}
}

// ValidateEntry checks the structural shape of an entry against the
// group's current member list before it is appended. Entries that
// reference unknown members are rejected here so that balance
// computation never has to invent arithmetic for dangling references.
func ValidateEntry(members []Member, e Entry) error {
	if e.Kind != KindExpense && e.Kind != KindSettlement {
		return fmt.Errorf("invalid entry kind %q", e.Kind)
	}
	if e.Amount.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("amount must be greater than 0")
	}
	if len(e.Splits) == 0 {
		return fmt.Errorf("at least one split is required")
	}

	known := make(map[int]bool, len(members))
	for _, m := range members {
		known[m.ID] = true
	}

	if !known[e.PaidBy] {
		return fmt.Errorf("payer %d is not a member of this group", e.PaidBy)
	}

	sum := decimal.Zero
	for _, s := range e.Splits {
		if !known[s.MemberID] {
			return fmt.Errorf("split member %d is not a member of this group", s.MemberID)
		}
		if s.Share.IsNegative() {
			return fmt.Errorf("split share cannot be negative")
		}
		sum = sum.Add(s.Share)
	}

	if sum.Sub(e.Amount).Abs().GreaterThan(splitTolerance) {
		return fmt.Errorf("split shares sum to %s, expected %s", sum, e.Amount)
	}

	return nil
}

// ComputeBalances replays every entry and returns the signed net
// balance for each current member. Positive means the group owes the
// member; negative means the member owes the group.
//
// A reference to a member no longer in the group is skipped: the entry
// still contributes its other legs, but nothing accumulates for the
// departed member. History is never altered by a member's removal, so
// old entries may legitimately carry such references.
func ComputeBalances(members []Member, entries []Entry) map[int]decimal.Decimal {
	balances := make(map[int]decimal.Decimal, len(members))
	for _, m := range members {
		balances[m.ID] = decimal.Zero
	}

	for _, e := range entries {
		for _, s := range e.Splits {
			if b, ok := balances[s.MemberID]; ok {
				balances[s.MemberID] = b.Sub(s.Share)
			}
		}
		if b, ok := balances[e.PaidBy]; ok {
			balances[e.PaidBy] = b.Add(e.Amount)
		}
	}

	return balances
}
