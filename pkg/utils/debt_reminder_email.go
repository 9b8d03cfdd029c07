package utils

import (
	"fmt"
	"strings"
	"time"
)

// DebtLine is one member's outstanding amount in a group, rendered into
// the owner's daily reminder email.
type DebtLine struct {
	MemberName string
	Amount     string
}

func SendDebtReminderEmail(to, name, groupName string, debts []DebtLine) error {
	subject := fmt.Sprintf("💰 Outstanding balances in '%s'", groupName)

	var rows strings.Builder
	for _, d := range debts {
		rows.WriteString(fmt.Sprintf(`<p>%s owes <b>%s</b></p>`, d.MemberName, d.Amount))
	}

	body := fmt.Sprintf(`
	<!DOCTYPE html>
	<html lang="en">
	<head>
	<meta charset="UTF-8">
	<meta name="viewport" content="width=device-width, initial-scale=1.0">
	<title>Balance Reminder</title>
	<style>
		body {
			font-family: 'Segoe UI', Roboto, Arial, sans-serif;
			background-color: #f6f8f7;
			margin: 0;
			padding: 0;
			color: #333;
		}
		.container {
			max-width: 480px;
			margin: 25px auto;
			background: #ffffff;
			border-radius: 12px;
			box-shadow: 0 4px 16px rgba(0, 0, 0, 0.08);
			overflow: hidden;
			border-top: 5px solid #d9534f;
		}
		.header {
			background-color: #d9534f;
			color: #ffffff;
			text-align: center;
			padding: 18px 12px;
		}
		.header h1 {
			margin: 0;
			font-size: 18px;
			font-weight: 600;
		}
		.content {
			padding: 20px 18px;
		}
		.message {
			font-size: 14px;
			line-height: 1.6;
			color: #444;
		}
		.amount-box {
			background: #fff6f6;
			border: 1px solid #f1c1c1;
			border-radius: 8px;
			padding: 12px 14px;
			margin: 16px 0;
		}
		.footer {
			background: #f6f6f6;
			text-align: center;
			padding: 14px;
			font-size: 12px;
			color: #777;
			border-top: 1px solid #e5e5e5;
		}
		.brand {
			color: #0a4d3c;
			font-weight: bold;
		}
	</style>
	</head>

	<body>
		<div class="container">
			<div class="header">
				<h1>Balance Reminder 💬</h1>
			</div>
			<div class="content">
				<p class="message">
					Hi %s,<br><br>
					These members of your group <b>%s</b> still have outstanding
					balances:
				</p>

				<div class="amount-box">
					%s
				</div>

				<p class="message">
					Log in to <b>Pennywise</b> to record a settlement once a
					repayment is made.
				</p>
			</div>
			<div class="footer">
				&copy; %d <span class="brand">Pennywise</span> — Every Penny Counted.
			</div>
		</div>
	</body>
	</html>
	`, name, groupName, rows.String(), time.Now().Year())

	return SendEmail(to, subject, body)
}
