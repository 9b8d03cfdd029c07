package utils

import (
	"net/http/httptest"
	"testing"
)

func TestGetPaginationParams(t *testing.T) {
	tests := []struct {
		name      string
		url       string
		wantPage  int
		wantLimit int
	}{
		{"defaults", "/transactions/user", 1, 20},
		{"explicit", "/transactions/user?page=3&limit=50", 3, 50},
		{"limit capped", "/transactions/user?limit=500", 1, 100},
		{"zero page ignored", "/transactions/user?page=0", 1, 20},
		{"negative ignored", "/transactions/user?page=-2&limit=-5", 1, 20},
		{"garbage ignored", "/transactions/user?page=abc&limit=xyz", 1, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", tt.url, nil)
			page, limit := GetPaginationParams(r)
			if page != tt.wantPage || limit != tt.wantLimit {
				t.Errorf("got page=%d limit=%d, want page=%d limit=%d", page, limit, tt.wantPage, tt.wantLimit)
			}
		})
	}
}

func TestAddSorting(t *testing.T) {
	base := "SELECT id FROM transactions WHERE user_id = ?"

	tests := []struct {
		name string
		url  string
		want string
	}{
		{"no sort param", "/transactions/user", base},
		{"allowed column asc", "/transactions/user?sortBy=amount", base + " ORDER BY amount ASC"},
		{"allowed column desc", "/transactions/user?sortBy=amount&sortOrder=desc", base + " ORDER BY amount DESC"},
		{"unknown column rejected", "/transactions/user?sortBy=evil;drop", base},
		{"unlisted column rejected", "/transactions/user?sortBy=description", base},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", tt.url, nil)
			got := AddSorting(r, base, "created_at", "amount")
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
