package routers

import (
	"net/http"
	"pennywise/internal/api/handlers/transactions"
)

func transactionsRouter() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/transactions/create", transactions.CreateTransactionHandler)

	mux.HandleFunc("/transactions/user", transactions.GetAllUserTransactions)

	mux.HandleFunc("/transactions/{id}/user", transactions.GetTransactionById)

	mux.HandleFunc("/transactions/update/{id}", transactions.UpdateTransactionHandler)

	mux.HandleFunc("/transactions/delete/{id}", transactions.DeleteTransactionHandler)

	return mux
}
