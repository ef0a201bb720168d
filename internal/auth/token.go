package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// SessionClaims is what a verified session token asserts: the caller's
// identity-provider id, nothing more. Roles are never trusted from the
// token.
type SessionClaims struct {
	CallerID  string
	TokenID   string
	ExpiresAt time.Time
}

// IssueSessionToken signs a session token for the given caller id.
func IssueSessionToken(secret []byte, callerID string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": callerID,
		"jti": uuid.New().String(),
		"iat": now.Unix(),
		"exp": now.Add(ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, nil
}

// ParseSessionToken verifies the signature and expiry of a session token
// and returns its claims.
func ParseSessionToken(secret []byte, tokenString string) (*SessionClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse session token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid session token")
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return nil, errors.New("session token missing subject")
	}

	out := &SessionClaims{CallerID: sub}
	if jti, ok := claims["jti"].(string); ok {
		out.TokenID = jti
	}
	if exp, ok := claims["exp"].(float64); ok {
		out.ExpiresAt = time.Unix(int64(exp), 0)
	}
	return out, nil
}
