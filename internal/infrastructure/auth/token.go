package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/lexnotes/storefront-service/internal/domain/identity"
)

const tokenType = "session"

// TokenManager issues and verifies the bearer credential shared by both
// transports: the Authorization header and the session cookie resolve
// through the same verification path.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenManager(secret string, ttl time.Duration) (*TokenManager, error) {
	if secret == "" {
		return nil, fmt.Errorf("JWT secret not configured")
	}

	return &TokenManager{
		secret: []byte(secret),
		ttl:    ttl,
	}, nil
}

func (m *TokenManager) TTL() time.Duration {
	return m.ttl
}

func (m *TokenManager) Issue(id *identity.Identity) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub":   id.UserID,
		"email": id.Email,
		"typ":   tokenType,
		"iat":   now.Unix(),
		"exp":   now.Add(m.ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Verify parses the token and returns the identity it carries. Any parse,
// signature, expiry or claim-shape problem is a single opaque error; callers
// treat failure as "not logged in", never as a server fault.
func (m *TokenManager) Verify(tokenStr string) (*identity.Identity, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || token == nil || !token.Valid {
		return nil, fmt.Errorf("invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("invalid token claims")
	}

	if typ, ok := claims["typ"].(string); !ok || typ != tokenType {
		return nil, fmt.Errorf("invalid token type")
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return nil, fmt.Errorf("token missing subject")
	}
	email, _ := claims["email"].(string)

	return &identity.Identity{UserID: sub, Email: email}, nil
}
