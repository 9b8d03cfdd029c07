package utils

import (
	"fmt"
	"net/http"
	"strconv"
)

const (
	defaultPage  = 1
	defaultLimit = 20
	maxLimit     = 100
)

func GetPaginationParams(r *http.Request) (int, int) {
	page := defaultPage
	limit := defaultLimit

	if p, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && p > 0 {
		page = p
	}
	if l, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && l > 0 {
		limit = l
		if limit > maxLimit {
			limit = maxLimit
		}
	}

	return page, limit
}

// AddSorting appends an ORDER BY clause built from the sortBy/sortOrder
// query params. Column names are whitelisted, never interpolated raw.
func AddSorting(r *http.Request, query string, allowedColumns ...string) string {
	sortBy := r.URL.Query().Get("sortBy")
	if sortBy == "" {
		return query
	}

	allowed := false
	for _, col := range allowedColumns {
		if col == sortBy {
			allowed = true
			break
		}
	}
	if !allowed {
		return query
	}

	order := "ASC"
	if r.URL.Query().Get("sortOrder") == "desc" {
		order = "DESC"
	}

	return fmt.Sprintf("%s ORDER BY %s %s", query, sortBy, order)
}
