package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/hostelhub/hostel-api/internal/core/domain"
)

// TokenTTL is the fixed lifetime of a session token.
const TokenTTL = 7 * 24 * time.Hour

// sessionClaims is the signed token payload: registered claims only, with
// the user id as subject. Role is intentionally not embedded; it is
// re-derived from the user record on every request.
type sessionClaims struct {
	jwt.RegisteredClaims
}

// TokenIssuer mints signed, time-bounded session tokens.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenIssuer returns an issuer signing with secret. The secret being
// empty is a configuration fault the caller must reject at startup.
func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	if ttl <= 0 {
		ttl = TokenTTL
	}
	return &TokenIssuer{secret: []byte(secret), ttl: ttl}
}

// Issue signs a token for user with subject = user id and a fixed expiry.
func (i *TokenIssuer) Issue(user *domain.User) (string, error) {
	now := time.Now()
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	})
	return t.SignedString(i.secret)
}

// ParseSubject verifies signature and expiry of a token string and returns
// the embedded subject. Any failure maps to domain.ErrInvalidToken.
func ParseSubject(tokenString, secret string) (string, error) {
	claims := &sessionClaims{}
	t, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil || !t.Valid || claims.Subject == "" {
		return "", domain.ErrInvalidToken
	}
	return claims.Subject, nil
}
