package cron

import (
	"context"
	"database/sql"
	"fmt"
	"pennywise/internal/budget"
	"pennywise/internal/ledger"
	"pennywise/pkg/utils"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/shopspring/decimal"
)

func StartCronJob(db *sql.DB) *cron.Cron {
	c := cron.New()

	// Runs daily at 8am — warn users who have blown a category budget
	_, err := c.AddFunc("0 8 * * *", func() {
		if err := SendOverBudgetAlerts(db); err != nil {
			utils.Logger.Errorf("Cron job failed to send over-budget alerts: %v", err)
		}
	})
	if err != nil {
		utils.Logger.Errorf("Failed to schedule over-budget alert job: %v", err)
	}

	// Runs daily at midnight — remind group owners who still owes whom
	_, err = c.AddFunc("0 0 * * *", func() {
		if err := SendDebtReminders(db); err != nil {
			utils.Logger.Errorf("Cron job failed to send debt reminders: %v", err)
		}
	})
	if err != nil {
		utils.Logger.Errorf("Failed to schedule debt reminder job: %v", err)
	}

	c.Start()
	utils.Logger.Info("Cron jobs started (over-budget alerts daily at 8am, debt reminders daily at midnight)")
	return c
}

// -------------------------------------------------------------
// Alert every user whose spending has exceeded a category limit
// -------------------------------------------------------------
func SendOverBudgetAlerts(db *sql.DB) error {
	ctx, cancel := context.WithTimeout(context.Background(), 45*time.Second)
	defer cancel()

	rows, err := db.QueryContext(ctx, `
		SELECT
			u.email,
			u.name,
			b.category_label,
			b.limit_amount,
			COALESCE(SUM(t.amount), 0) AS spent
		FROM budgets b
		JOIN users u ON b.user_id = u.id
		LEFT JOIN transactions t
			ON t.user_id = b.user_id
			AND t.category_key = b.category_key
			AND t.txn_type = 'expense'
		GROUP BY b.id, u.email, u.name, b.category_label, b.limit_amount
	`)
	if err != nil {
		return err
	}
	defer rows.Close()

	type alert struct {
		email, userName, categoryLabel string
		limit, spent                   string
	}
	var alerts []alert

	for rows.Next() {
		var (
			email, userName, categoryLabel string
			limitDec, spentDec             decimal.Decimal
		)
		if err := rows.Scan(&email, &userName, &categoryLabel, &limitDec, &spentDec); err != nil {
			utils.Logger.Errorf("Failed to scan budget row: %v", err)
			continue
		}

		if !budget.Over(spentDec, limitDec) {
			continue
		}

		alerts = append(alerts, alert{
			email:         email,
			userName:      userName,
			categoryLabel: categoryLabel,
			limit:         limitDec.StringFixed(2),
			spent:         spentDec.StringFixed(2),
		})
	}
	if err := rows.Err(); err != nil {
		utils.Logger.Errorf("Error iterating budget rows: %v", err)
		return err
	}

	for _, e := range sendConcurrently(len(alerts), func(i int) error {
		a := alerts[i]
		if err := utils.SendBudgetAlertEmail(a.email, a.userName, a.categoryLabel, a.limit, a.spent); err != nil {
			return fmt.Errorf("failed to send budget alert to %s: %v", a.email, err)
		}
		utils.Logger.Infof("📧 Sent over-budget alert to %s — %s spent of %s on '%s'",
			a.email, a.spent, a.limit, a.categoryLabel)
		return nil
	}) {
		utils.Logger.Error(e)
	}

	utils.Logger.Info("✅ Finished sending all over-budget alert emails.")
	return nil
}

// sendConcurrently runs send for each index in its own goroutine and
// returns every error produced. The error channel is sized to the job
// count so a failing send never blocks behind a full buffer.
func sendConcurrently(n int, send func(i int) error) []error {
	var wg sync.WaitGroup
	errChan := make(chan error, n)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if err := send(i); err != nil {
				errChan <- err
			}
		}(i)
	}

	wg.Wait()
	close(errChan)

	var errs []error
	for err := range errChan {
		errs = append(errs, err)
	}
	return errs
}

// -------------------------------------------------------------
// Remind each group owner which members still owe the group
// -------------------------------------------------------------
func SendDebtReminders(db *sql.DB) error {
	ctx, cancel := context.WithTimeout(context.Background(), 45*time.Second)
	defer cancel()

	rows, err := db.QueryContext(ctx, `
		SELECT g.id, g.name, u.email, u.name
		FROM `+"`groups`"+` g
		JOIN users u ON g.user_id = u.id
	`)
	if err != nil {
		return err
	}
	defer rows.Close()

	type groupRow struct {
		id                    int
		name, email, userName string
	}
	var groups []groupRow
	for rows.Next() {
		var g groupRow
		if err := rows.Scan(&g.id, &g.name, &g.email, &g.userName); err != nil {
			utils.Logger.Errorf("Failed to scan group row: %v", err)
			continue
		}
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		utils.Logger.Errorf("Error iterating group rows: %v", err)
		return err
	}

	type reminder struct {
		group groupRow
		debts []utils.DebtLine
	}
	var reminders []reminder

	for _, g := range groups {
		members, err := loadGroupMembers(ctx, db, g.id)
		if err != nil {
			utils.Logger.Errorf("Failed to load members for group %d: %v", g.id, err)
			continue
		}
		entries, err := loadGroupEntries(ctx, db, g.id)
		if err != nil {
			utils.Logger.Errorf("Failed to load entries for group %d: %v", g.id, err)
			continue
		}

		balances := ledger.ComputeBalances(members, entries)

		var debts []utils.DebtLine
		for _, m := range members {
			if b := balances[m.ID]; b.IsNegative() {
				debts = append(debts, utils.DebtLine{
					MemberName: m.Name,
					Amount:     b.Neg().StringFixed(2),
				})
			}
		}
		if len(debts) == 0 {
			continue
		}

		reminders = append(reminders, reminder{group: g, debts: debts})
	}

	for _, e := range sendConcurrently(len(reminders), func(i int) error {
		g, debts := reminders[i].group, reminders[i].debts
		if err := utils.SendDebtReminderEmail(g.email, g.userName, g.name, debts); err != nil {
			return fmt.Errorf("failed to send debt reminder to %s: %v", g.email, err)
		}
		utils.Logger.Infof("📧 Sent debt reminder to %s for group '%s' (%d debtors)",
			g.email, g.name, len(debts))
		return nil
	}) {
		utils.Logger.Error(e)
	}

	utils.Logger.Info("✅ Finished sending all debt reminder emails.")
	return nil
}

func loadGroupMembers(ctx context.Context, db *sql.DB, groupID int) ([]ledger.Member, error) {
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

func loadGroupEntries(ctx context.Context, db *sql.DB, groupID int) ([]ledger.Entry, error) {
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
		if idx, ok := byID[entryID]; ok {
			entries[idx].Splits = append(entries[idx].Splits, s)
		}
	}
	return entries, splitRows.Err()
}
