package utils

import (
	"fmt"
	"time"
)

func SendWelcomeEmail(to, name string) error {
	subject := fmt.Sprintf("🎉 Welcome to Pennywise, %s!", name)

	body := fmt.Sprintf(`
	<!DOCTYPE html>
	<html lang="en">
	<head>
	<meta charset="UTF-8">
	<meta name="viewport" content="width=device-width, initial-scale=1.0">
	<title>Welcome to Pennywise</title>
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
			border-top: 5px solid #00795f;
		}
		.header {
			background-color: #00795f;
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
				<h1>Welcome aboard 👋</h1>
			</div>
			<div class="content">
				<p class="message">
					Hi %s,<br><br>
					Your <b>Pennywise</b> account is ready. Record your income and
					expenses, set category budgets, and split shared costs with
					your groups — all in one place.
				</p>
				<p class="message">
					Happy tracking! 💚
				</p>
			</div>
			<div class="footer">
				&copy; %d <span class="brand">Pennywise</span> — Every Penny Counted.
			</div>
		</div>
	</body>
	</html>
	`, name, time.Now().Year())

	return SendEmail(to, subject, body)
}
