package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

// Claims carries the tenant scope for every API call. All queries downstream
// are filtered by TenantID, so a token without one is rejected outright.
type Claims struct {
	TenantID string `json:"tenant_id"`
	UserID   string `json:"user_id"`
	Name     string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// Mint signs a token for the given tenant and user. Used by the TUI client
// and by tests; real deployments get tokens from the identity provider.
func Mint(secret, tenantID, userID, name string, ttl time.Duration) (string, error) {
	claims := Claims{
		TenantID: tenantID,
		UserID:   userID,
		Name:     name,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}

	return signed, nil
}

// Parse validates the signature and expiry and returns the claims.
func Parse(secret, tokenStr string) (*Claims, error) {
	var claims Claims

	token, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}

		return []byte(secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidToken, err)
	}

	if !token.Valid || claims.TenantID == "" {
		return nil, ErrInvalidToken
	}

	return &claims, nil
}

type ctxKey int

const claimsKey ctxKey = 0

// WithClaims returns a context carrying the authenticated claims.
func WithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

// FromContext returns the claims stored by the middleware, or nil.
func FromContext(ctx context.Context) *Claims {
	claims, _ := ctx.Value(claimsKey).(*Claims)
	return claims
}

// TenantID is a convenience accessor; empty string means unauthenticated.
func TenantID(ctx context.Context) string {
	if claims := FromContext(ctx); claims != nil {
		return claims.TenantID
	}

	return ""
}
