// Package guest mints and verifies the signed cookie that pins an
// anonymous visitor to a stable cart scope before they log in.
package guest

import (
	"fmt"
	"strings"
	"time"

	"github.com/foodhubhq/storefront-gateway/pkg/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var jwtSigningMethod = jwt.SigningMethodHS256

// Claims is the typed JWT carried by the guest cookie.
type Claims struct {
	GuestID string `json:"guest_id"`
	jwt.RegisteredClaims
}

// NewID returns a fresh guest scope identifier.
func NewID() string {
	return "guest_" + uuid.NewString()
}

// Mint issues a signed guest token with the configured TTL.
func Mint(cfg config.GuestConfig, now time.Time, guestID string) (string, error) {
	if cfg.Secret == "" {
		return "", fmt.Errorf("guest secret is required")
	}
	if strings.TrimSpace(guestID) == "" {
		return "", fmt.Errorf("guest id is required")
	}
	if cfg.TTL <= 0 {
		return "", fmt.Errorf("guest ttl must be positive")
	}

	claims := Claims{
		GuestID: guestID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(cfg.TTL)),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwtSigningMethod, claims)
	signed, err := token.SignedString([]byte(cfg.Secret))
	if err != nil {
		return "", fmt.Errorf("signing guest token: %w", err)
	}
	return signed, nil
}

// Parse validates the token string and returns the guest scope identifier.
func Parse(cfg config.GuestConfig, tokenString string) (string, error) {
	if cfg.Secret == "" {
		return "", fmt.Errorf("guest secret is required")
	}

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(
		tokenString,
		claims,
		func(token *jwt.Token) (interface{}, error) {
			if token.Method != jwtSigningMethod {
				return nil, fmt.Errorf("unexpected signing method %s", token.Header["alg"])
			}
			return []byte(cfg.Secret), nil
		},
		jwt.WithValidMethods([]string{jwtSigningMethod.Alg()}),
		jwt.WithIssuer(cfg.Issuer),
	)
	if err != nil {
		return "", fmt.Errorf("parsing guest token: %w", err)
	}
	if strings.TrimSpace(claims.GuestID) == "" {
		return "", fmt.Errorf("guest token missing guest id")
	}
	return claims.GuestID, nil
}
