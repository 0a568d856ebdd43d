package auth

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidClaims = errors.New("token claims are invalid")

type Authenticator interface {
	GenerateTokens(userID, role string) (string, string, error)
	GenerateAccessToken(userID, role string) (string, error)
	ValidateAccessToken(token string) (*jwt.Token, error)
	ValidateRefreshToken(token string) (*jwt.Token, error)
}

// Claims is what the API needs back from a validated token.
type Claims struct {
	UserID string
	Role   string
}

// ClaimsFrom extracts the subject and role of a validated token.
func ClaimsFrom(token *jwt.Token) (Claims, error) {
	mc, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, ErrInvalidClaims
	}
	sub, err := mc.GetSubject()
	if err != nil || sub == "" {
		return Claims{}, ErrInvalidClaims
	}
	role, _ := mc["role"].(string)
	return Claims{UserID: sub, Role: role}, nil
}
