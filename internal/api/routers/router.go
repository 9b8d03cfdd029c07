package routers

import (
	"net/http"
)

func MainRouter() *http.ServeMux {

	mux := http.NewServeMux()

	uRouter := usersRouter()
	mux.Handle("/users/", uRouter)

	gRouter := groupsRouter()
	mux.Handle("/groups/", gRouter)

	tRouter := transactionsRouter()
	mux.Handle("/transactions/", tRouter)

	bRouter := budgetsRouter()
	mux.Handle("/budgets/", bRouter)

	return mux
}
