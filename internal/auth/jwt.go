package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type Config struct {
	Secret        string
	RefreshSecret string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
	Audience      string
	Issuer        string
}

type JWTAuthenticator struct {
	cfg Config
	now func() time.Time
}

func NewJWTAuthenticator(cfg Config) *JWTAuthenticator {
	return &JWTAuthenticator{cfg: cfg, now: time.Now}
}

// GenerateTokens generates both access and refresh tokens
func (a *JWTAuthenticator) GenerateTokens(userID, role string) (string, string, error) {
	accessToken, err := a.GenerateAccessToken(userID, role)
	if err != nil {
		return "", "", err
	}

	refreshToken, err := a.generateTokenWithClaims(a.claims(userID, role, a.cfg.RefreshTTL), a.cfg.RefreshSecret)
	if err != nil {
		return "", "", err
	}

	return accessToken, refreshToken, nil
}

func (a *JWTAuthenticator) GenerateAccessToken(userID, role string) (string, error) {
	return a.generateTokenWithClaims(a.claims(userID, role, a.cfg.AccessTTL), a.cfg.Secret)
}

func (a *JWTAuthenticator) claims(userID, role string, ttl time.Duration) jwt.MapClaims {
	now := a.now()
	return jwt.MapClaims{
		"sub":  userID,
		"role": role,
		"exp":  now.Add(ttl).Unix(),
		"iat":  now.Unix(),
		"nbf":  now.Unix(),
		"iss":  a.cfg.Issuer,
		"aud":  a.cfg.Audience,
	}
}

func (a *JWTAuthenticator) generateTokenWithClaims(claims jwt.Claims, secret string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ValidateAccessToken validates the access token
func (a *JWTAuthenticator) ValidateAccessToken(token string) (*jwt.Token, error) {
	return a.parse(token, a.cfg.Secret)
}

// ValidateRefreshToken validates the refresh token
func (a *JWTAuthenticator) ValidateRefreshToken(token string) (*jwt.Token, error) {
	return a.parse(token, a.cfg.RefreshSecret)
}

func (a *JWTAuthenticator) parse(token, secret string) (*jwt.Token, error) {
	return jwt.Parse(token, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	},
		jwt.WithExpirationRequired(),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithIssuer(a.cfg.Issuer),
		jwt.WithAudience(a.cfg.Audience),
		jwt.WithTimeFunc(a.now),
	)
}
