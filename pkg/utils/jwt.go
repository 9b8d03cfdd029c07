package utils

import (
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	AccessTokenDuration  = 15 * time.Minute
	RefreshTokenDuration = 7 * 24 * time.Hour
)

// GenerateTokenPair issues the short-lived access token and the
// long-lived refresh token for a user. Claim keys match what the JWT
// middleware reads back out (uid, user, email).
func GenerateTokenPair(userID int, name, email string) (string, string, error) {
	accessSecret := os.Getenv("JWT_SECRET")
	refreshSecret := os.Getenv("JWT_REFRESH_SECRET")
	if accessSecret == "" || refreshSecret == "" {
		return "", "", fmt.Errorf("JWT secrets are not configured")
	}

	now := time.Now()

	accessToken := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"uid":   userID,
		"user":  name,
		"email": email,
		"iat":   now.Unix(),
		"exp":   now.Add(AccessTokenDuration).Unix(),
	})
	access, err := accessToken.SignedString([]byte(accessSecret))
	if err != nil {
		return "", "", fmt.Errorf("failed to sign access token: %w", err)
	}

	refreshToken := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"uid": userID,
		"iat": now.Unix(),
		"exp": now.Add(RefreshTokenDuration).Unix(),
	})
	refresh, err := refreshToken.SignedString([]byte(refreshSecret))
	if err != nil {
		return "", "", fmt.Errorf("failed to sign refresh token: %w", err)
	}

	return access, refresh, nil
}

// VerifyRefreshToken parses a refresh token and returns the user id it
// was issued for.
func VerifyRefreshToken(token string) (int, error) {
	refreshSecret := os.Getenv("JWT_REFRESH_SECRET")
	if refreshSecret == "" {
		return 0, fmt.Errorf("JWT_REFRESH_SECRET is not configured")
	}

	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		return []byte(refreshSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return 0, fmt.Errorf("invalid refresh token: %w", err)
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return 0, fmt.Errorf("invalid refresh token claims")
	}
	uid, ok := claims["uid"].(float64)
	if !ok {
		return 0, fmt.Errorf("refresh token missing uid claim")
	}

	return int(uid), nil
}
