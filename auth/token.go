// Package auth issues and verifies the bearer tokens that prove caller
// identity. Tokens are HS256-signed and valid for one hour from issuance.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

var (
	// ErrMissingCredential means no Authorization header was presented.
	ErrMissingCredential = errors.New("missing credential")
	// ErrInvalidCredential means the token failed verification: bad
	// signature, malformed, or expired.
	ErrInvalidCredential = errors.New("invalid credential")
)

const tokenTTL = time.Hour

// Identity is the verified caller, attached to the request context for
// downstream authorization and ownership checks.
type Identity struct {
	Email string
}

type Manager struct {
	secret []byte
}

func NewManager(secret string) *Manager {
	return &Manager{secret: []byte(secret)}
}

func (m *Manager) Issue(email string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email": email,
		"iat":   now.Unix(),
		"exp":   now.Add(tokenTTL).Unix(),
	})
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify parses an Authorization header value and returns the caller
// identity. The "Bearer " prefix is optional, matching what clients send.
func (m *Manager) Verify(header string) (Identity, error) {
	if header == "" {
		return Identity{}, ErrMissingCredential
	}

	tokenString := header
	if len(tokenString) > 7 && tokenString[:7] == "Bearer " {
		tokenString = tokenString[7:]
	}

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return Identity{}, ErrInvalidCredential
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}, ErrInvalidCredential
	}
	email, _ := claims["email"].(string)
	if email == "" {
		return Identity{}, ErrInvalidCredential
	}

	return Identity{Email: email}, nil
}
