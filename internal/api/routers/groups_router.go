package routers

import (
	"net/http"
	"pennywise/internal/api/handlers/groups"
)

func groupsRouter() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/groups/create", groups.CreateGroupHandler)

	mux.HandleFunc("/groups/", groups.GetMyGroupsHandler)

	mux.HandleFunc("/groups/{id}", groups.GetGroupByIDHandler)

	mux.HandleFunc("/groups/update/{id}", groups.UpdateGroupHandler)

	mux.HandleFunc("/groups/delete/{id}", groups.DeleteGroupHandler)

	mux.HandleFunc("/groups/{id}/members", groups.AddGroupMemberHandler)

	mux.HandleFunc("/groups/{groupId}/members/{memberId}", groups.GroupMemberHandler)

	mux.HandleFunc("/groups/{id}/expense", groups.AddGroupExpenseHandler)

	mux.HandleFunc("/groups/{id}/settle", groups.SettleUpHandler)

	mux.HandleFunc("/groups/{id}/entries", groups.GetGroupEntriesHandler)

	mux.HandleFunc("/groups/{id}/balances", groups.GetGroupBalancesHandler)

	return mux
}
