package routers

import (
	"net/http"
	"pennywise/internal/api/handlers/budgets"
)

func budgetsRouter() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/budgets/", budgets.GetBudgetsHandler)

	mux.HandleFunc("/budgets/set", budgets.SetBudgetHandler)

	mux.HandleFunc("/budgets/delete/{category}", budgets.DeleteBudgetHandler)

	return mux
}
