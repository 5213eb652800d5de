package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type Manager struct {
	Secret     []byte
	AccessTTL  time.Duration
	RefreshTTL time.Duration
	Issuer     string
}

// Session is the identity carried by both cookies.
type Session struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Token types keep the two cookies from standing in for each other: refresh
// tokens only mint new pairs, access tokens only open sessions.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

type Claims struct {
	Role      string `json:"role"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	TokenType string `json:"typ"`
	jwt.RegisteredClaims
}

func (m *Manager) newToken(session Session, ttl time.Duration, tokenType string) (string, error) {
	now := time.Now()
	claims := Claims{
		Role:      "admin",
		Email:     session.Email,
		Name:      session.Name,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   session.ID,
			Issuer:    m.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.Secret)
}

func (m *Manager) NewAccessToken(session Session) (string, error) {
	return m.newToken(session, m.AccessTTL, TokenTypeAccess)
}

func (m *Manager) NewRefreshToken(session Session) (string, error) {
	return m.newToken(session, m.RefreshTTL, TokenTypeRefresh)
}

func (m *Manager) Parse(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return m.Secret, nil
	}, jwt.WithIssuer(m.Issuer), jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}
	if !parsed.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

func (c *Claims) Session() Session {
	return Session{
		ID:    c.Subject,
		Email: c.Email,
		Name:  c.Name,
	}
}
