package token

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

type Metadata struct {
	UserID   string `json:"user_id"`
	TenantID string `json:"tenant_id"`
	Role     string `json:"role"`
	FullName string `json:"full_name"`
}

type Claim struct {
	Metadata Metadata `json:"metadata"`
	jwt.RegisteredClaims
}

var ErrInvalidToken = errors.New("invalid bearer token")

// Verify parses and validates a bearer token with the shared HMAC secret.
func Verify(tokenString, secret string) (*Claim, error) {
	claim := new(Claim)
	parsed, err := jwt.ParseWithClaims(tokenString, claim, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	return claim, nil
}
