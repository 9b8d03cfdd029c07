package utils

import (
	"fmt"
	"time"
)

func SendBudgetAlertEmail(to, name, categoryLabel, limit, spent string) error {
	subject := fmt.Sprintf("⚠️ Budget Alert: '%s' is over its limit", categoryLabel)

	body := fmt.Sprintf(`
	<!DOCTYPE html>
	<html lang="en">
	<head>
	<meta charset="UTF-8">
	<meta name="viewport" content="width=device-width, initial-scale=1.0">
	<title>Budget Alert</title>
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
			text-align: center;
		}
		.amount-box h3 {
			margin: 0;
			color: #d9534f;
			font-size: 16px;
			font-weight: 700;
		}
		.amount-box p {
			margin: 6px 0 0;
			font-size: 13px;
			color: #555;
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
				<h1>Budget Alert ⚠️</h1>
			</div>
			<div class="content">
				<p class="message">
					Hi %s,<br><br>
					Your spending in <b>%s</b> has gone past the budget you set
					for this category.
				</p>

				<div class="amount-box">
					<h3>%s spent of %s budgeted</h3>
					<p>Category: %s</p>
				</div>

				<p class="message">
					Log in to <b>Pennywise</b> to review your recent expenses or
					adjust the budget.
				</p>
			</div>
			<div class="footer">
				&copy; %d <span class="brand">Pennywise</span> — Every Penny Counted.
			</div>
		</div>
	</body>
	</html>
	`, name, categoryLabel, spent, limit, categoryLabel, time.Now().Year())

	return SendEmail(to, subject, body)
}
