package auth

import "testing"

func TestValidateNewPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"empty", "", true},
		{"too short", "short7!", true},
		{"exactly eight", "eightch8", false},
		{"long", "a-much-longer-passphrase", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateNewPassword(tt.password)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateNewPassword(%q) error = %v, wantErr %v", tt.password, err, tt.wantErr)
			}
		})
	}
}
